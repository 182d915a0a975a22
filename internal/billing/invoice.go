package billing

import (
	"fmt"
	"math/rand"
	"time"
)

// InvoiceData is the fully assembled billing document, ready to hand to a
// renderer and an email transport. It is created fresh per generation call
// and performs no I/O of its own.
type InvoiceData struct {
	InvoiceNumber string     `json:"invoice_number"`
	InvoiceDate   string     `json:"invoice_date"`
	BillingPeriod string     `json:"billing_period"`
	FacilityName  string     `json:"facility_name"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	LineItems     []LineItem `json:"line_items"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	Notes         string     `json:"notes"`

	// Period carries the resolved window for renderers that need raw dates
	// (timesheets, archive keys). Not part of the printed invoice.
	Period Period `json:"-"`
}

// Assembler builds InvoiceData records. The clock and random source are
// injectable so tests can pin both; NewAssembler wires the real ones.
type Assembler struct {
	Now  func() time.Time
	Intn func(n int) int

	// TaxRate is a percentage (8.5 = 8.5%). Zero means no tax line.
	TaxRate float64
}

// NewAssembler returns an assembler using wall-clock time and a seeded
// random source, with no tax.
func NewAssembler() *Assembler {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Assembler{
		Now:  time.Now,
		Intn: rng.Intn,
	}
}

// Generate assembles a complete invoice for the current billing period:
// resolves the window, walks it into line items, reduces totals, and stamps
// number, date, and schedule notes.
func (a *Assembler) Generate(facilityName, address, city, phone, email string, hourlyRate float64, schedule Schedule) InvoiceData {
	now := a.Now()

	period := ResolveBillingPeriod(now)
	lineItems := GenerateLineItems(period.Start, period.End, hourlyRate, schedule)
	totals := CalculateTotals(lineItems, a.TaxRate)

	return InvoiceData{
		InvoiceNumber: a.InvoiceNumber(),
		InvoiceDate:   FormatDate(now),
		BillingPeriod: period.Formatted,
		FacilityName:  facilityName,
		Address:       address,
		City:          city,
		Phone:         phone,
		Email:         email,
		LineItems:     lineItems,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Notes:         schedule.Describe() + ". Thank you for your business! Payment is due within 30 days.",
		Period:        period,
	}
}

// InvoiceNumber returns "INV-{yyyymm}-{nnnn}" with a 4-digit pseudorandom
// suffix. Not guaranteed unique; callers needing sequential numbers should
// override it from a sequence store after assembly.
func (a *Assembler) InvoiceNumber() string {
	now := a.Now()
	suffix := 1000 + a.Intn(9000)
	return fmt.Sprintf("INV-%d%02d-%d", now.Year(), int(now.Month()), suffix)
}
