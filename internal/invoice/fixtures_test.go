package invoice

import (
	"time"

	"github.com/dtchealth/billing-engine/internal/billing"
)

var testCompany = Company{
	Name:    "Daytocare Health Services",
	Address: "100 Commerce Way, Springfield, IL 62701",
	Email:   "finance@dtchealthservices.com",
	Phone:   "(555) 123-4567",
}

// fixedAssembler pins the clock to March 10, 2026 and the random suffix to
// 4821, so assembled invoices are reproducible: period February 16 to
// March 15, 2026, number INV-202603-4821.
func fixedAssembler() *billing.Assembler {
	a := billing.NewAssembler()
	a.Now = func() time.Time {
		return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	a.Intn = func(n int) int { return 3821 }
	return a
}

// sampleInvoice assembles a 28-day daily invoice at 12 hours and $65/hour.
func sampleInvoice() billing.InvoiceData {
	return fixedAssembler().Generate(
		"Sunshine Healthcare Facility",
		"123 Medical Drive",
		"Springfield, IL 62701",
		"(555) 123-4567",
		"billing@sunshinehealthcare.com",
		65.00,
		billing.Schedule{Type: billing.ScheduleDaily, HoursPerDay: 12, DaysPerWeek: 7},
	)
}
