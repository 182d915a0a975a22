package clients

import (
	"context"

	"github.com/dtchealth/billing-engine/internal/billing"
)

// MemoryDirectory serves clients from a fixed slice. Used for dry runs and
// local development when no database is configured.
type MemoryDirectory struct {
	clients []Client
}

// NewMemoryDirectory wraps the given records.
func NewMemoryDirectory(records []Client) *MemoryDirectory {
	return &MemoryDirectory{clients: records}
}

// NewSampleDirectory returns a directory seeded with the three demo
// facilities, one per fixed-schedule variant.
func NewSampleDirectory() *MemoryDirectory {
	return NewMemoryDirectory([]Client{
		{
			ID:           "client-001",
			FacilityName: "Sunshine Healthcare Facility",
			Address:      "123 Medical Drive",
			City:         "Springfield, IL 62701",
			Phone:        "(555) 123-4567",
			Email:        "billing@sunshinehealthcare.com",
			HourlyRate:   65.00,
			BillingDay:   15,
			Schedule: billing.Schedule{
				Type:        billing.ScheduleDaily,
				HoursPerDay: 12,
				DaysPerWeek: 7,
			},
			Active:        true,
			ContactPerson: "VP of Clinical Services",
			Notes:         "Net 30 payment terms - 12 hours daily coverage",
		},
		{
			ID:           "client-002",
			FacilityName: "Green Valley Assisted Living",
			Address:      "456 Care Lane",
			City:         "Riverside, CA 92501",
			Phone:        "(555) 987-6543",
			Email:        "accounts@greenvalley.com",
			HourlyRate:   70.00,
			BillingDay:   15,
			Schedule: billing.Schedule{
				Type:         billing.ScheduleWeekly,
				HoursPerWeek: 84,
				DaysPerWeek:  7,
			},
			Active:        true,
			ContactPerson: "Finance Director",
			Notes:         "Prefers PDF invoices - Weekly billing at 84 hours/week",
		},
		{
			ID:           "client-003",
			FacilityName: "Maple Grove Senior Center",
			Address:      "789 Elder Street",
			City:         "Portland, OR 97201",
			Phone:        "(555) 555-0123",
			Email:        "billing@maplegrove.org",
			HourlyRate:   68.00,
			BillingDay:   15,
			Schedule: billing.Schedule{
				Type:          billing.ScheduleMonthly,
				HoursPerMonth: 360,
			},
			Active:        true,
			ContactPerson: "Billing Manager",
			Notes:         "Monthly flat rate - 360 hours per billing period",
		},
	})
}

// ListActive returns the active clients in insertion order.
func (d *MemoryDirectory) ListActive(ctx context.Context) ([]Client, error) {
	active := make([]Client, 0, len(d.clients))
	for _, c := range d.clients {
		if c.Active {
			active = append(active, c)
		}
	}
	return active, nil
}

// GetByID returns the client with the given id or ErrNotFound.
func (d *MemoryDirectory) GetByID(ctx context.Context, id string) (*Client, error) {
	for _, c := range d.clients {
		if c.ID == id {
			client := c
			return &client, nil
		}
	}
	return nil, ErrNotFound
}
