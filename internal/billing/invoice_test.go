package billing

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

func fixedAssembler(now time.Time, suffix int) *Assembler {
	return &Assembler{
		Now:  func() time.Time { return now },
		Intn: func(n int) int { return suffix - 1000 },
	}
}

func TestAssemblerGenerate(t *testing.T) {
	now := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC)
	a := fixedAssembler(now, 4821)

	schedule := Schedule{Type: ScheduleDaily, HoursPerDay: 12, DaysPerWeek: 7}
	inv := a.Generate("Sunshine Healthcare Facility", "123 Medical Drive", "Springfield, IL 62701",
		"(555) 123-4567", "billing@sunshinehealthcare.com", 65, schedule)

	if inv.InvoiceNumber != "INV-202602-4821" {
		t.Errorf("InvoiceNumber: got %q, want %q", inv.InvoiceNumber, "INV-202602-4821")
	}
	if inv.InvoiceDate != "February 10, 2026" {
		t.Errorf("InvoiceDate: got %q", inv.InvoiceDate)
	}
	if inv.BillingPeriod != "January 16, 2026 to February 15, 2026" {
		t.Errorf("BillingPeriod: got %q", inv.BillingPeriod)
	}

	// Jan 16 - Feb 15 is a 31-day window; daily schedules bill every day.
	if len(inv.LineItems) != 31 {
		t.Fatalf("Expected 31 line items, got %d", len(inv.LineItems))
	}

	wantSubtotal := 31.0 * 12 * 65
	if math.Abs(inv.Subtotal-wantSubtotal) > 1e-6 {
		t.Errorf("Subtotal: got %v, want %v", inv.Subtotal, wantSubtotal)
	}
	if inv.Tax != 0 {
		t.Errorf("Tax: got %v, want 0", inv.Tax)
	}
	if inv.Total != inv.Subtotal {
		t.Errorf("Total should equal subtotal with no tax: %v vs %v", inv.Total, inv.Subtotal)
	}

	if !strings.HasPrefix(inv.Notes, "Billing: 12 hours/day, 7 days/week.") {
		t.Errorf("Notes: got %q", inv.Notes)
	}
	if !strings.Contains(inv.Notes, "Payment is due within 30 days") {
		t.Errorf("Notes missing payment terms: %q", inv.Notes)
	}

	if inv.FacilityName != "Sunshine Healthcare Facility" || inv.City != "Springfield, IL 62701" {
		t.Errorf("Identity fields not carried through: %+v", inv)
	}
}

func TestAssemblerGenerate_WithTax(t *testing.T) {
	now := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	a := fixedAssembler(now, 1000)
	a.TaxRate = 8.5

	inv := a.Generate("Facility", "Addr", "City", "Phone", "a@b.c", 65,
		Schedule{Type: ScheduleDaily, HoursPerDay: 12})

	wantTax := inv.Subtotal * 0.085
	if math.Abs(inv.Tax-wantTax) > 1e-9 {
		t.Errorf("Tax: got %v, want %v", inv.Tax, wantTax)
	}
	if math.Abs(inv.Total-(inv.Subtotal+inv.Tax)) > 1e-9 {
		t.Errorf("Total: got %v, want %v", inv.Total, inv.Subtotal+inv.Tax)
	}
}

func TestAssemblerGenerate_Deterministic(t *testing.T) {
	now := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	schedule := Schedule{Type: ScheduleCustom, Weekdays: map[string]float64{"Monday": 8, "Thursday": 8}}

	first := fixedAssembler(now, 5555).Generate("F", "A", "C", "P", "E", 70, schedule)
	second := fixedAssembler(now, 5555).Generate("F", "A", "C", "P", "E", 70, schedule)

	if !reflect.DeepEqual(first, second) {
		t.Error("Fixed clock and random source should yield identical invoices")
	}
}

func TestInvoiceNumberFormat(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		suffix int
		want   string
	}{
		{
			name:   "Two-digit month is zero padded",
			now:    time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
			suffix: 1000,
			want:   "INV-202603-1000",
		},
		{
			name:   "December",
			now:    time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
			suffix: 9999,
			want:   "INV-202512-9999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixedAssembler(tt.now, tt.suffix).InvoiceNumber()
			if got != tt.want {
				t.Errorf("InvoiceNumber: got %q, want %q", got, tt.want)
			}
		})
	}
}
