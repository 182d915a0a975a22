package billing

import (
	"fmt"
	"strings"
)

// Totals is the reduced money summary of a line-item sequence.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CalculateTotals sums the stored (already rounded) line-item amounts and
// derives tax and total. taxRate is a percentage, e.g. 8.5 for 8.5%.
//
// The subtotal is a plain float sum and may carry residual floating-point
// error; display formatting re-rounds to 2 decimals.
func CalculateTotals(items []LineItem, taxRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Amount
	}

	tax := subtotal * (taxRate / 100)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// FormatCurrency renders a USD amount with thousands separators,
// e.g. 1234.5 -> "$1,234.50".
func FormatCurrency(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}

	out := "$" + whole + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
