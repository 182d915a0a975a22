package clients

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dtchealth/billing-engine/internal/billing"
)

// PostgresDirectory reads client records from the clients table.
//
// Expected schema:
//
//	CREATE TABLE clients (
//	    id               TEXT PRIMARY KEY,
//	    facility_name    TEXT NOT NULL,
//	    address          TEXT NOT NULL,
//	    city             TEXT NOT NULL,
//	    phone            TEXT NOT NULL,
//	    email            TEXT NOT NULL,
//	    hourly_rate      DOUBLE PRECISION NOT NULL,
//	    billing_day      INT NOT NULL DEFAULT 15,
//	    billing_schedule JSONB NOT NULL,
//	    active           BOOLEAN NOT NULL DEFAULT true,
//	    contact_person   TEXT,
//	    notes            TEXT
//	);
type PostgresDirectory struct {
	db *sql.DB
}

// NewPostgresDirectory creates a directory over an open database handle.
func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

const clientColumns = `
	id, facility_name, address, city, phone, email,
	hourly_rate, billing_day, billing_schedule, active,
	contact_person, notes
`

// ListActive returns all active clients ordered by id.
func (d *PostgresDirectory) ListActive(ctx context.Context) ([]Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE active ORDER BY id`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	records := make([]Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return records, nil
}

// GetByID returns one client or ErrNotFound.
func (d *PostgresDirectory) GetByID(ctx context.Context, id string) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(d.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*Client, error) {
	var (
		client       Client
		scheduleJSON []byte
		contact      sql.NullString
		notes        sql.NullString
	)

	err := row.Scan(
		&client.ID, &client.FacilityName, &client.Address, &client.City,
		&client.Phone, &client.Email, &client.HourlyRate, &client.BillingDay,
		&scheduleJSON, &client.Active, &contact, &notes,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	var schedule billing.Schedule
	if err := json.Unmarshal(scheduleJSON, &schedule); err != nil {
		return nil, fmt.Errorf("invalid billing_schedule for client %s: %w", client.ID, err)
	}
	client.Schedule = schedule

	if contact.Valid {
		client.ContactPerson = contact.String
	}
	if notes.Valid {
		client.Notes = notes.String
	}

	return &client, nil
}
