package invoice

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dtchealth/billing-engine/internal/billing"
)

const timesheetSheet = "Timesheet"

// TimesheetRenderer renders a per-client timesheet workbook alongside the
// invoice: one row per billed day with the hours worked, plus a total row.
type TimesheetRenderer struct {
	company Company
}

// NewTimesheetRenderer creates a timesheet renderer for the given issuer.
func NewTimesheetRenderer(company Company) *TimesheetRenderer {
	return &TimesheetRenderer{company: company}
}

// Render produces the XLSX workbook for an assembled invoice.
func (t *TimesheetRenderer) Render(inv *billing.InvoiceData) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("invoice cannot be nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", timesheetSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.SetColWidth(timesheetSheet, "A", "A", 30); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(timesheetSheet, "B", "B", 15); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 18, Color: "C9354D"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"C9354D"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	f.SetCellValue(timesheetSheet, "A1", t.company.Name)
	f.SetCellStyle(timesheetSheet, "A1", "A1", titleStyle)
	f.SetCellValue(timesheetSheet, "A2", "Bi-Weekly Time Sheet")

	f.SetCellValue(timesheetSheet, "A4", "Community: "+inv.FacilityName)
	f.SetCellStyle(timesheetSheet, "A4", "A4", boldStyle)
	f.SetCellValue(timesheetSheet, "A5", "Cycle Ending Date: "+billing.FormatDate(inv.Period.End))
	f.SetCellValue(timesheetSheet, "A6", "Service Provider: "+t.company.Name)

	f.SetCellValue(timesheetSheet, "A8", "Date")
	f.SetCellValue(timesheetSheet, "B8", "Hours Worked")
	f.SetCellStyle(timesheetSheet, "A8", "B8", headerStyle)

	row := 9
	var totalHours float64
	for _, item := range inv.LineItems {
		f.SetCellValue(timesheetSheet, fmt.Sprintf("A%d", row), item.Date)
		f.SetCellValue(timesheetSheet, fmt.Sprintf("B%d", row), item.Hours)
		totalHours += item.Hours
		row++
	}

	f.SetCellValue(timesheetSheet, fmt.Sprintf("A%d", row), "Total Hours")
	f.SetCellValue(timesheetSheet, fmt.Sprintf("B%d", row), totalHours)
	f.SetCellStyle(timesheetSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), boldStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// TimesheetFilename returns the attachment name for a timesheet workbook.
func TimesheetFilename(inv *billing.InvoiceData) string {
	facility := nonAlphanumeric.ReplaceAllString(inv.FacilityName, "_")
	return fmt.Sprintf("Timesheet_%s_%s.xlsx", facility, inv.Period.End.Format("2006-01-02"))
}
