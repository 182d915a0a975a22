package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dtchealth/billing-engine/internal/billing"
	"github.com/dtchealth/billing-engine/internal/clients"
)

// Renderer turns an assembled invoice into a binary document.
type Renderer interface {
	Render(inv *billing.InvoiceData) ([]byte, error)
}

// Sender delivers an invoice email with attachments.
type Sender interface {
	SendInvoice(ctx context.Context, inv *billing.InvoiceData, paymentURL string, attachments ...Attachment) error
}

// Uploader archives a rendered invoice PDF and returns its URL.
type Uploader interface {
	UploadPDF(ctx context.Context, clientID string, inv *billing.InvoiceData, pdfData []byte) (string, error)
}

// Linker creates a hosted payment link for an invoice.
type Linker interface {
	CreatePaymentLink(ctx context.Context, c *clients.Client, inv *billing.InvoiceData) (string, error)
}

// Result is the per-client outcome of a billing run.
type Result struct {
	ClientID      string  `json:"client_id"`
	FacilityName  string  `json:"client_name"`
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	Total         float64 `json:"total,omitempty"`
	Success       bool    `json:"success"`
	Error         string  `json:"error,omitempty"`
}

// Summary aggregates a whole billing run.
type Summary struct {
	RunID      string        `json:"run_id"`
	Total      int           `json:"total"`
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Revenue    float64       `json:"revenue"`
	Duration   time.Duration `json:"-"`
	Results    []Result      `json:"results"`
}

// Runner walks clients and produces, renders, and delivers their invoices.
// One client's failure never aborts the batch; the core's pure calculation
// functions leave no shared state to corrupt on partial failure.
type Runner struct {
	directory clients.Directory
	assembler *billing.Assembler

	pdf       Renderer
	timesheet Renderer // nil disables timesheet attachments
	email     Sender   // nil disables delivery
	archive   Uploader // nil disables archiving
	payments  Linker   // nil disables payment links
	sequences SequenceStore

	dryRun bool
	log    zerolog.Logger
}

// RunnerOptions configures optional pipeline stages.
type RunnerOptions struct {
	Timesheet Renderer
	Email     Sender
	Archive   Uploader
	Payments  Linker
	Sequences SequenceStore
	DryRun    bool
}

// NewRunner wires a runner around the required directory, assembler, and PDF
// renderer; everything in opts is optional.
func NewRunner(directory clients.Directory, assembler *billing.Assembler, pdf Renderer, opts RunnerOptions, log zerolog.Logger) *Runner {
	return &Runner{
		directory: directory,
		assembler: assembler,
		pdf:       pdf,
		timesheet: opts.Timesheet,
		email:     opts.Email,
		archive:   opts.Archive,
		payments:  opts.Payments,
		sequences: opts.Sequences,
		dryRun:    opts.DryRun,
		log:       log,
	}
}

// RunAll bills every active client.
func (r *Runner) RunAll(ctx context.Context) (*Summary, error) {
	active, err := r.directory.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active clients: %w", err)
	}
	return r.run(ctx, active), nil
}

// RunOne bills a single client by id.
func (r *Runner) RunOne(ctx context.Context, clientID string) (*Summary, error) {
	c, err := r.directory.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, []clients.Client{*c}), nil
}

func (r *Runner) run(ctx context.Context, batch []clients.Client) *Summary {
	start := time.Now()
	summary := &Summary{
		RunID:   uuid.NewString(),
		Total:   len(batch),
		Results: make([]Result, 0, len(batch)),
	}

	log := r.log.With().Str("run_id", summary.RunID).Logger()
	log.Info().Int("clients", len(batch)).Bool("dry_run", r.dryRun).Msg("billing run started")

	for i := range batch {
		result := r.processClient(ctx, &batch[i], log)
		summary.Results = append(summary.Results, result)

		if result.Success {
			summary.Successful++
			summary.Revenue += result.Total
		} else {
			summary.Failed++
		}
	}

	summary.Duration = time.Since(start)
	log.Info().
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Float64("revenue", summary.Revenue).
		Dur("duration", summary.Duration).
		Msg("billing run finished")

	return summary
}

func (r *Runner) processClient(ctx context.Context, c *clients.Client, log zerolog.Logger) Result {
	log = log.With().Str("client_id", c.ID).Str("facility", c.FacilityName).Logger()

	inv := r.assembler.Generate(c.FacilityName, c.Address, c.City, c.Phone, c.Email, c.HourlyRate, c.Schedule)

	// Swap the display-only random suffix for a real sequence when we have one.
	if r.sequences != nil {
		if seq, err := r.sequences.Next(ctx, inv.Period.End); err != nil {
			log.Warn().Err(err).Msg("sequence store unavailable, keeping random invoice number")
		} else {
			inv.InvoiceNumber = SequentialNumber(inv.Period.End, seq)
		}
	}

	log.Info().
		Str("invoice_number", inv.InvoiceNumber).
		Int("line_items", len(inv.LineItems)).
		Float64("total", inv.Total).
		Msg("invoice assembled")

	if r.dryRun {
		return Result{ClientID: c.ID, FacilityName: c.FacilityName, InvoiceNumber: inv.InvoiceNumber, Total: inv.Total, Success: true}
	}

	pdfData, err := r.pdf.Render(&inv)
	if err != nil {
		log.Error().Err(err).Msg("PDF rendering failed")
		return failure(c, inv.InvoiceNumber, fmt.Errorf("render pdf: %w", err))
	}

	attachments := []Attachment{{
		Name:        PDFFilename(&inv),
		ContentType: "application/pdf",
		Data:        pdfData,
	}}

	if r.timesheet != nil {
		sheet, err := r.timesheet.Render(&inv)
		if err != nil {
			log.Error().Err(err).Msg("timesheet rendering failed")
			return failure(c, inv.InvoiceNumber, fmt.Errorf("render timesheet: %w", err))
		}
		attachments = append(attachments, Attachment{
			Name:        TimesheetFilename(&inv),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        sheet,
		})
	}

	// Archive and payment link are best-effort; a broken bucket or Stripe
	// outage must not block the invoice going out.
	if r.archive != nil {
		if url, err := r.archive.UploadPDF(ctx, c.ID, &inv, pdfData); err != nil {
			log.Warn().Err(err).Msg("archive upload failed")
		} else {
			log.Info().Str("url", url).Msg("invoice archived")
		}
	}

	paymentURL := ""
	if r.payments != nil {
		url, err := r.payments.CreatePaymentLink(ctx, c, &inv)
		if err != nil {
			log.Warn().Err(err).Msg("payment link creation failed")
		} else {
			paymentURL = url
		}
	}

	if r.email != nil {
		if err := r.email.SendInvoice(ctx, &inv, paymentURL, attachments...); err != nil {
			log.Error().Err(err).Msg("email delivery failed")
			return failure(c, inv.InvoiceNumber, fmt.Errorf("send email: %w", err))
		}
		log.Info().Str("to", c.Email).Msg("invoice sent")
	}

	return Result{ClientID: c.ID, FacilityName: c.FacilityName, InvoiceNumber: inv.InvoiceNumber, Total: inv.Total, Success: true}
}

func failure(c *clients.Client, invoiceNumber string, err error) Result {
	return Result{
		ClientID:      c.ID,
		FacilityName:  c.FacilityName,
		InvoiceNumber: invoiceNumber,
		Success:       false,
		Error:         err.Error(),
	}
}
