package invoice

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/dtchealth/billing-engine/internal/billing"
	"github.com/dtchealth/billing-engine/internal/clients"
)

// PaymentLinker mirrors an invoice into Stripe so the email can carry a
// hosted pay-online link. The emailed PDF remains the invoice of record;
// the Stripe invoice is a single-line mirror of the period total.
type PaymentLinker struct {
	api *client.API
}

// NewPaymentLinker creates a payment linker over a configured Stripe client.
func NewPaymentLinker(api *client.API) *PaymentLinker {
	return &PaymentLinker{api: api}
}

// CreatePaymentLink creates (or reuses) the Stripe customer for the client,
// mirrors the invoice total, finalizes it, and returns the hosted invoice URL.
func (pl *PaymentLinker) CreatePaymentLink(ctx context.Context, c *clients.Client, inv *billing.InvoiceData) (string, error) {
	customer, err := pl.customerFor(c)
	if err != nil {
		return "", err
	}

	_, err = pl.api.InvoiceItems.New(&stripe.InvoiceItemParams{
		Customer:    stripe.String(customer.ID),
		Description: stripe.String(fmt.Sprintf("Nursing services, %s", inv.BillingPeriod)),
		Amount:      stripe.Int64(toCents(inv.Total)),
		Currency:    stripe.String("usd"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create invoice item: %w", err)
	}

	stripeInvoice, err := pl.api.Invoices.New(&stripe.InvoiceParams{
		Customer:         stripe.String(customer.ID),
		Description:      stripe.String(fmt.Sprintf("Invoice %s", inv.InvoiceNumber)),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DaysUntilDue:     stripe.Int64(30),
		AutoAdvance:      stripe.Bool(false),
		Metadata: map[string]string{
			"invoice_number": inv.InvoiceNumber,
			"client_id":      c.ID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Stripe invoice: %w", err)
	}

	finalized, err := pl.api.Invoices.FinalizeInvoice(stripeInvoice.ID, &stripe.InvoiceFinalizeInvoiceParams{})
	if err != nil {
		return "", fmt.Errorf("failed to finalize Stripe invoice: %w", err)
	}

	return finalized.HostedInvoiceURL, nil
}

// customerFor finds the Stripe customer tagged with the client id, creating
// one on first use.
func (pl *PaymentLinker) customerFor(c *clients.Client) (*stripe.Customer, error) {
	params := &stripe.CustomerSearchParams{
		SearchParams: stripe.SearchParams{
			Query: fmt.Sprintf("metadata['client_id']:'%s'", c.ID),
		},
	}

	result := pl.api.Customers.Search(params)
	if result.Next() {
		return result.Customer(), nil
	}

	customer, err := pl.api.Customers.New(&stripe.CustomerParams{
		Email: stripe.String(c.Email),
		Name:  stripe.String(c.FacilityName),
		Address: &stripe.AddressParams{
			Line1: stripe.String(c.Address),
			City:  stripe.String(c.City),
		},
		Metadata: map[string]string{
			"client_id": c.ID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Stripe customer: %w", err)
	}

	return customer, nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
