package invoice

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/dtchealth/billing-engine/internal/billing"
)

// Company is the issuer identity printed on documents and emails.
type Company struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// PDFRenderer renders assembled invoices as PDF documents.
type PDFRenderer struct {
	company Company
}

// NewPDFRenderer creates a PDF renderer for the given issuer.
func NewPDFRenderer(company Company) *PDFRenderer {
	return &PDFRenderer{company: company}
}

// Render produces the invoice PDF.
func (p *PDFRenderer) Render(inv *billing.InvoiceData) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("invoice cannot be nil")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	p.addHeader(pdf)
	p.addInvoiceDetails(pdf, inv)
	p.addBillTo(pdf, inv)
	p.addLineItemsTable(pdf, inv.LineItems)
	p.addTotals(pdf, inv)
	p.addFooter(pdf, inv)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func (p *PDFRenderer) addHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 24)
	pdf.CellFormat(190, 10, p.company.Name, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(120, 5, "Professional Healthcare Staffing Solutions", "", 1, "L", false, 0, "")
	if p.company.Address != "" {
		pdf.MultiCell(120, 5, p.company.Address, "", "L", false)
	}
	if p.company.Email != "" {
		pdf.CellFormat(120, 5, "Email: "+p.company.Email, "", 1, "L", false, 0, "")
	}
	if p.company.Phone != "" {
		pdf.CellFormat(120, 5, "Phone: "+p.company.Phone, "", 1, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)
}

func (p *PDFRenderer) addInvoiceDetails(pdf *gofpdf.Fpdf, inv *billing.InvoiceData) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(190, 10, "INVOICE", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)

	rows := []struct{ label, value string }{
		{"Invoice Number:", inv.InvoiceNumber},
		{"Invoice Date:", inv.InvoiceDate},
		{"Billing Period:", inv.BillingPeriod},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 6, row.label, "", 0, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(80, 6, row.value, "", 1, "L", true, 0, "")
	}
	pdf.Ln(8)
}

func (p *PDFRenderer) addBillTo(pdf *gofpdf.Fpdf, inv *billing.InvoiceData) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Bill To:", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 5, inv.FacilityName, "", 1, "L", false, 0, "")
	if inv.Address != "" {
		pdf.CellFormat(190, 5, inv.Address, "", 1, "L", false, 0, "")
	}
	if inv.City != "" {
		pdf.CellFormat(190, 5, inv.City, "", 1, "L", false, 0, "")
	}
	if inv.Phone != "" {
		pdf.CellFormat(190, 5, inv.Phone, "", 1, "L", false, 0, "")
	}
	if inv.Email != "" {
		pdf.CellFormat(190, 5, inv.Email, "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
}

func (p *PDFRenderer) addLineItemsTable(pdf *gofpdf.Fpdf, items []billing.LineItem) {
	const (
		dateWidth   = 40.0
		descWidth   = 60.0
		hoursWidth  = 22.0
		rateWidth   = 30.0
		amountWidth = 38.0
	)

	pdf.SetFillColor(60, 60, 60)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 10)

	pdf.CellFormat(dateWidth, 8, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(descWidth, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(hoursWidth, 8, "Hours", "1", 0, "C", true, 0, "")
	pdf.CellFormat(rateWidth, 8, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(amountWidth, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 9)

	fill := false
	for _, item := range items {
		pdf.CellFormat(dateWidth, 6, item.Date, "LR", 0, "L", fill, 0, "")
		pdf.CellFormat(descWidth, 6, item.Description, "LR", 0, "L", fill, 0, "")
		pdf.CellFormat(hoursWidth, 6, fmt.Sprintf("%.2f", item.Hours), "LR", 0, "C", fill, 0, "")
		pdf.CellFormat(rateWidth, 6, billing.FormatCurrency(item.Rate), "LR", 0, "R", fill, 0, "")
		pdf.CellFormat(amountWidth, 6, billing.FormatCurrency(item.Amount), "LR", 1, "R", fill, 0, "")
		fill = !fill
	}

	pdf.CellFormat(dateWidth+descWidth+hoursWidth+rateWidth+amountWidth, 0, "", "T", 1, "", false, 0, "")
	pdf.Ln(5)
}

func (p *PDFRenderer) addTotals(pdf *gofpdf.Fpdf, inv *billing.InvoiceData) {
	const (
		labelX    = 120.0
		valueX    = 160.0
		lineWidth = 30.0
	)

	pdf.SetFont("Arial", "", 10)

	pdf.SetX(labelX)
	pdf.CellFormat(lineWidth, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.SetX(valueX)
	pdf.CellFormat(lineWidth, 6, billing.FormatCurrency(inv.Subtotal), "", 1, "R", false, 0, "")

	if inv.Tax > 0 {
		pdf.SetX(labelX)
		pdf.CellFormat(lineWidth, 6, "Tax:", "", 0, "R", false, 0, "")
		pdf.SetX(valueX)
		pdf.CellFormat(lineWidth, 6, billing.FormatCurrency(inv.Tax), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.SetX(labelX)
	pdf.CellFormat(lineWidth, 8, "Total Due:", "T", 0, "R", false, 0, "")
	pdf.SetX(valueX)
	pdf.CellFormat(lineWidth, 8, billing.FormatCurrency(inv.Total), "T", 1, "R", false, 0, "")
	pdf.Ln(10)
}

func (p *PDFRenderer) addFooter(pdf *gofpdf.Fpdf, inv *billing.InvoiceData) {
	if inv.Notes != "" {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(190, 6, "Notes:", "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, inv.Notes, "", "L", false)
		pdf.Ln(5)
	}

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(190, 5, "Thank you for your business!", "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 5, fmt.Sprintf("Invoice generated on %s", time.Now().Format("January 2, 2006")), "", 1, "C", false, 0, "")
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// PDFFilename returns the attachment name for an invoice PDF,
// e.g. "INV-202601-4821_Sunshine_Healthcare_Facility.pdf".
func PDFFilename(inv *billing.InvoiceData) string {
	facility := nonAlphanumeric.ReplaceAllString(inv.FacilityName, "_")
	return fmt.Sprintf("%s_%s.pdf", inv.InvoiceNumber, facility)
}
