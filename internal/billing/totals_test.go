package billing

import (
	"math"
	"testing"
)

func TestCalculateTotals(t *testing.T) {
	items := []LineItem{
		{Amount: 780},
		{Amount: 780},
		{Amount: 520},
	}

	tests := []struct {
		name         string
		taxRate      float64
		wantSubtotal float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name:         "No tax",
			taxRate:      0,
			wantSubtotal: 2080,
			wantTax:      0,
			wantTotal:    2080,
		},
		{
			name:         "8.5 percent",
			taxRate:      8.5,
			wantSubtotal: 2080,
			wantTax:      176.8,
			wantTotal:    2256.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := CalculateTotals(items, tt.taxRate)

			if totals.Subtotal != tt.wantSubtotal {
				t.Errorf("Subtotal: got %v, want %v", totals.Subtotal, tt.wantSubtotal)
			}
			if math.Abs(totals.Tax-tt.wantTax) > 1e-9 {
				t.Errorf("Tax: got %v, want %v", totals.Tax, tt.wantTax)
			}
			if math.Abs(totals.Total-tt.wantTotal) > 1e-9 {
				t.Errorf("Total: got %v, want %v", totals.Total, tt.wantTotal)
			}
		})
	}
}

func TestCalculateTotals_ThousandAtEightPointFive(t *testing.T) {
	items := []LineItem{{Amount: 600}, {Amount: 400}}

	totals := CalculateTotals(items, 8.5)

	if totals.Subtotal != 1000 {
		t.Errorf("Subtotal: got %v, want 1000", totals.Subtotal)
	}
	if math.Abs(totals.Tax-85) > 1e-9 {
		t.Errorf("Tax: got %v, want 85", totals.Tax)
	}
	if math.Abs(totals.Total-1085) > 1e-9 {
		t.Errorf("Total: got %v, want 1085", totals.Total)
	}
}

func TestCalculateTotals_Empty(t *testing.T) {
	totals := CalculateTotals(nil, 8.5)
	if totals.Subtotal != 0 || totals.Tax != 0 || totals.Total != 0 {
		t.Errorf("Empty items should reduce to zeros, got %+v", totals)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{12, "$12.00"},
		{780.5, "$780.50"},
		{1234.56, "$1,234.56"},
		{1085, "$1,085.00"},
		{1234567.891, "$1,234,567.89"},
		{-42.5, "-$42.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatCurrency(tt.amount); got != tt.want {
				t.Errorf("FormatCurrency(%v): got %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
