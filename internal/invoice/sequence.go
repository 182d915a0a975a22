package invoice

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SequenceStore hands out per-month invoice sequence numbers. The billing
// core's own pseudorandom suffix does not guarantee uniqueness; when a store
// is available the runner renumbers invoices from it.
type SequenceStore interface {
	Next(ctx context.Context, month time.Time) (int, error)
}

// PostgresSequenceStore keeps one counter row per year-month.
//
// Expected schema:
//
//	CREATE TABLE invoice_sequences (
//	    year_month TEXT PRIMARY KEY, -- "2026-01"
//	    last_value INT NOT NULL
//	);
type PostgresSequenceStore struct {
	db *sql.DB
}

// NewPostgresSequenceStore creates a sequence store over an open handle.
func NewPostgresSequenceStore(db *sql.DB) *PostgresSequenceStore {
	return &PostgresSequenceStore{db: db}
}

// Next atomically increments and returns the counter for the given month.
func (s *PostgresSequenceStore) Next(ctx context.Context, month time.Time) (int, error) {
	yearMonth := month.Format("2006-01")

	query := `
		INSERT INTO invoice_sequences (year_month, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year_month)
		DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value
	`

	var sequence int
	if err := s.db.QueryRowContext(ctx, query, yearMonth).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to advance invoice sequence for %s: %w", yearMonth, err)
	}

	return sequence, nil
}

// SequentialNumber formats a store-issued sequence as an invoice number,
// e.g. "INV-202601-0042".
func SequentialNumber(month time.Time, sequence int) string {
	return fmt.Sprintf("INV-%d%02d-%04d", month.Year(), int(month.Month()), sequence)
}
