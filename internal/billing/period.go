package billing

import "time"

const longDateLayout = "January 2, 2006"

// Period is the inclusive date range an invoice covers. Start and End are
// date-granular (midnight UTC, no time-of-day component).
type Period struct {
	Start     time.Time
	End       time.Time
	Formatted string // "December 16, 2025 to January 15, 2026"
}

// ResolveBillingPeriod returns the canonical billing window for the given
// reference date: the 16th of the month before the reference month through
// the 15th of the reference month. A January reference rolls the start back
// into December of the prior year (time.Date normalizes month 0).
func ResolveBillingPeriod(ref time.Time) Period {
	year, month, _ := ref.Date()

	start := time.Date(year, month-1, 16, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)

	return Period{
		Start:     start,
		End:       end,
		Formatted: FormatDate(start) + " to " + FormatDate(end),
	}
}

// Days returns the inclusive day count of the period, 0 when Start is after End.
func (p Period) Days() int {
	return daysInclusive(p.Start, p.End)
}

// FormatDate renders a date in the long form used on invoices,
// e.g. "January 16, 2026".
func FormatDate(t time.Time) string {
	return t.Format(longDateLayout)
}

func daysInclusive(start, end time.Time) int {
	if start.After(end) {
		return 0
	}
	start = atMidnightUTC(start)
	end = atMidnightUTC(end)
	return int(end.Sub(start).Hours()/24) + 1
}

func atMidnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
