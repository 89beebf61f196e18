// Package export writes ledger ranges as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

const (
	transactionsSheet = "Transactions"
	summarySheet      = "Summary"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// amountFormat is the built-in "#,##0.00" number format.
	amountFormat = 4
)

var transactionHeaders = []string{"Date", "Description", "Category", "Type", "Amount"}

// xlsxExporter implements adapter.ReportExporter with excelize.
type xlsxExporter struct{}

// NewXLSXExporter creates a new XLSX report exporter.
func NewXLSXExporter() adapter.ReportExporter {
	return xlsxExporter{}
}

// ContentType returns the XLSX MIME type.
func (xlsxExporter) ContentType() string {
	return xlsxContentType
}

// Write renders one sheet of transactions and one sheet of totals.
func (xlsxExporter) Write(w io.Writer, export *adapter.LedgerExport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	if err := writeTransactions(f, export.Transactions, headerStyle, amountStyle); err != nil {
		return err
	}
	if err := writeSummary(f, export, headerStyle, amountStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTransactions(f *excelize.File, rows []*entity.TransactionWithCategory, headerStyle, amountStyle int) error {
	for i, h := range transactionHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(transactionsSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := f.SetCellStyle(transactionsSheet, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		r := i + 2
		t := row.Transaction
		values := []any{
			t.Date.Format(time.DateOnly),
			t.Description,
			row.CategoryName(),
			string(t.Type),
			t.Amount.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			if err := f.SetCellValue(transactionsSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", r, err)
			}
		}
	}
	if len(rows) > 0 {
		last := fmt.Sprintf("E%d", len(rows)+1)
		if err := f.SetCellStyle(transactionsSheet, "E2", last, amountStyle); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	widths := map[string]float64{"A": 12, "B": 40, "C": 18, "D": 10, "E": 14}
	for col, width := range widths {
		if err := f.SetColWidth(transactionsSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, export *adapter.LedgerExport, headerStyle, amountStyle int) error {
	net := export.TotalIncome.Sub(export.TotalExpense)
	rows := [][]any{
		{"From", export.StartDate.Format(time.DateOnly)},
		{"To", export.EndDate.Format(time.DateOnly)},
		{"Transactions", len(export.Transactions)},
		{"Total income", export.TotalIncome.InexactFloat64()},
		{"Total expense", export.TotalExpense.InexactFloat64()},
		{"Net", net.InexactFloat64()},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "B4", "B6", amountStyle); err != nil {
		return fmt.Errorf("failed to style summary amounts: %w", err)
	}
	return f.SetColWidth(summarySheet, "A", "B", 16)
}
