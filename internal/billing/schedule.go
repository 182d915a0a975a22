package billing

import "fmt"

// Schedule types
const (
	ScheduleDaily   = "daily"   // Fixed hours every day
	ScheduleWeekly  = "weekly"  // Hours per week spread across the period
	ScheduleMonthly = "monthly" // Fixed hours for the whole billing period
	ScheduleCustom  = "custom"  // Per-weekday hours
)

// Defaults applied when a schedule field is left unset
const (
	DefaultHoursPerDay   = 12.0
	DefaultHoursPerWeek  = 84.0
	DefaultHoursPerMonth = 360.0
	DefaultDaysPerWeek   = 7
)

// Schedule describes how a client's hours are billed across a period.
// Exactly one variant is in play, selected by Type; the other fields are
// ignored for that variant.
type Schedule struct {
	Type          string             `json:"type"`
	HoursPerDay   float64            `json:"hours_per_day,omitempty"`
	HoursPerWeek  float64            `json:"hours_per_week,omitempty"`
	HoursPerMonth float64            `json:"hours_per_month,omitempty"`
	DaysPerWeek   int                `json:"days_per_week,omitempty"`
	Weekdays      map[string]float64 `json:"weekdays,omitempty"` // "Monday" -> hours
}

// HoursForDay returns the billable hours for a single day of the period.
// weekday is the English weekday name ("Monday"); totalDays is the inclusive
// day count of the billing period and only matters for monthly schedules.
//
// Daily schedules apply HoursPerDay to every calendar day; DaysPerWeek is
// informational and does not gate the walk. Degenerate denominators clamp to
// the documented defaults rather than propagating Inf/NaN.
func (s Schedule) HoursForDay(weekday string, totalDays int) float64 {
	switch s.Type {
	case ScheduleDaily:
		if s.HoursPerDay > 0 {
			return s.HoursPerDay
		}
		return DefaultHoursPerDay

	case ScheduleWeekly:
		daysPerWeek := s.DaysPerWeek
		if daysPerWeek <= 0 {
			daysPerWeek = DefaultDaysPerWeek
		}
		hoursPerWeek := s.HoursPerWeek
		if hoursPerWeek <= 0 {
			hoursPerWeek = DefaultHoursPerWeek
		}
		return hoursPerWeek / float64(daysPerWeek)

	case ScheduleMonthly:
		if totalDays <= 0 {
			return 0
		}
		hoursPerMonth := s.HoursPerMonth
		if hoursPerMonth <= 0 {
			hoursPerMonth = DefaultHoursPerMonth
		}
		return hoursPerMonth / float64(totalDays)

	case ScheduleCustom:
		return s.Weekdays[weekday]

	default:
		return DefaultHoursPerDay
	}
}

// Describe returns the human-readable schedule summary used in invoice notes.
func (s Schedule) Describe() string {
	switch s.Type {
	case ScheduleDaily:
		daysPerWeek := s.DaysPerWeek
		if daysPerWeek <= 0 {
			daysPerWeek = DefaultDaysPerWeek
		}
		return fmt.Sprintf("Billing: %g hours/day, %d days/week", s.HoursPerDay, daysPerWeek)
	case ScheduleWeekly:
		return fmt.Sprintf("Billing: %g hours/week", s.HoursPerWeek)
	case ScheduleMonthly:
		return fmt.Sprintf("Billing: %g hours/month (fixed)", s.HoursPerMonth)
	case ScheduleCustom:
		return "Billing: Custom schedule"
	default:
		return ""
	}
}
