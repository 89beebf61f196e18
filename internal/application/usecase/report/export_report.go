package report

import (
	"context"
	"fmt"
	"io"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// ExportReportOutput describes the written document.
type ExportReportOutput struct {
	ContentType string
	Filename    string
}

// ExportReportUseCase writes a custom report as a spreadsheet.
type ExportReportUseCase struct {
	report   *CustomReportUseCase
	exporter adapter.ReportExporter
}

// NewExportReportUseCase creates a new ExportReportUseCase instance.
func NewExportReportUseCase(report *CustomReportUseCase, exporter adapter.ReportExporter) *ExportReportUseCase {
	return &ExportReportUseCase{
		report:   report,
		exporter: exporter,
	}
}

// Execute builds the report for the range and encodes it to w.
func (uc *ExportReportUseCase) Execute(ctx context.Context, input CustomReportInput, w io.Writer) (*ExportReportOutput, error) {
	report, err := uc.report.Execute(ctx, input)
	if err != nil {
		return nil, err
	}

	err = uc.exporter.Write(w, &adapter.LedgerExport{
		StartDate:    report.StartDate,
		EndDate:      report.EndDate,
		Transactions: report.Transactions,
		TotalIncome:  report.TotalIncome,
		TotalExpense: report.TotalExpense,
	})
	if err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeReportExportFailed,
			"failed to export report",
			fmt.Errorf("%w: %w", domainerror.ErrReportExportFailed, err),
		)
	}

	return &ExportReportOutput{
		ContentType: uc.exporter.ContentType(),
		Filename:    fmt.Sprintf("report_%s_%s.xlsx", report.StartDate.Format("20060102"), report.EndDate.Format("20060102")),
	}, nil
}
