package clients

import (
	"context"
	"errors"

	"github.com/dtchealth/billing-engine/internal/billing"
)

// ErrNotFound is returned when a client id has no matching record.
var ErrNotFound = errors.New("client not found")

// Client is one billed facility. The billing core consumes these records
// read-only; ownership lives with the directory backing store.
type Client struct {
	ID           string           `json:"id"`
	FacilityName string           `json:"facility_name"`
	Address      string           `json:"address"`
	City         string           `json:"city"`
	Phone        string           `json:"phone"`
	Email        string           `json:"email"`
	HourlyRate   float64          `json:"hourly_rate"`
	BillingDay   int              `json:"billing_day"` // day of month, 1-28
	Schedule     billing.Schedule `json:"billing_schedule"`
	Active       bool             `json:"active"`

	ContactPerson string `json:"contact_person,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Directory is the read-only client lookup the invoicing pipeline depends on.
type Directory interface {
	ListActive(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
}
