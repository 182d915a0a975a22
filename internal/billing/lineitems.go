package billing

import (
	"math"
	"time"
)

// LineItem is one billable day on an invoice. Immutable once created.
type LineItem struct {
	Date        string  `json:"date"`        // long-form date, e.g. "December 16, 2025"
	Description string  `json:"description"` // "Nursing Services - Monday"
	Hours       float64 `json:"hours"`       // rounded to 2 decimals
	Rate        float64 `json:"rate"`        // hourly rate, unrounded
	Amount      float64 `json:"amount"`      // unrounded hours x rate, rounded to 2 decimals
}

// GenerateLineItems walks every calendar day of [start, end] inclusive, in
// ascending order, and emits a line item for each day with billable hours.
// Zero-hour days (custom schedules with unlisted weekdays) are skipped.
// An inverted range yields an empty slice.
//
// The walk uses calendar-date arithmetic (AddDate), so DST shifts in the
// caller's location cannot skip or double a day.
func GenerateLineItems(start, end time.Time, hourlyRate float64, schedule Schedule) []LineItem {
	items := make([]LineItem, 0)

	totalDays := daysInclusive(start, end)

	for d := atMidnightUTC(start); !d.After(atMidnightUTC(end)); d = d.AddDate(0, 0, 1) {
		weekday := d.Weekday().String()
		hours := schedule.HoursForDay(weekday, totalDays)
		if hours <= 0 {
			continue
		}

		items = append(items, LineItem{
			Date:        FormatDate(d),
			Description: "Nursing Services - " + weekday,
			Hours:       round2(hours),
			Rate:        hourlyRate,
			Amount:      round2(hours * hourlyRate),
		})
	}

	return items
}

// round2 rounds half away from zero at 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
