// Package export renders invoices as XLSX workbooks for sending to the
// billed company.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"haulageBackoffice/internal/billing"
	"haulageBackoffice/models"
)

var statementHeader = []string{
	"Job ID", "Date", "Day", "Driver Hours", "Job Hours",
	"Weight (t)", "Loads", "Gross Amount",
}

// InvoiceStatement builds a one-sheet workbook: invoice metadata on top,
// one row per billed job, then the subtotal/HST/commission/total block.
// The caller owns the returned file and must Close it.
func InvoiceStatement(inv *models.Invoice, jobs []*models.Job) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Invoice"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	meta := [][2]any{
		{"Invoice", inv.Reference},
		{"Date", inv.InvoiceDate},
		{"Billed To", inv.BilledTo},
		{"Email", inv.BilledEmail},
		{"Status", string(inv.Status)},
	}
	row := 1
	for _, kv := range meta {
		if err := setRow(f, sheet, row, kv[0], kv[1]); err != nil {
			return nil, err
		}
		row++
	}
	row++

	headerRow := row
	for col, title := range statementHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	row++

	for _, j := range jobs {
		values := []any{
			j.ID, j.JobDate, j.DayOfJob, j.HoursOfDriver, j.HoursOfJob,
			j.Weight.Sum(), j.Loads, j.JobGrossAmount,
		}
		if err := setRow(f, sheet, row, values...); err != nil {
			return nil, err
		}
		row++
	}
	row++

	commission := inv.SubTotal * inv.Commission.Float64() / 100
	totals := [][2]any{
		{"Subtotal", inv.SubTotal},
		{fmt.Sprintf("HST (%.0f%%)", billing.HSTRate*100), inv.HST},
		{fmt.Sprintf("Commission (%.4g%%)", inv.Commission.Float64()), commission},
		{"Total", inv.Total},
	}
	for _, kv := range totals {
		if err := setRow(f, sheet, row, kv[0], kv[1]); err != nil {
			return nil, err
		}
		row++
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
