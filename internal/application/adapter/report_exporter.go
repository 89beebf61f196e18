// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// LedgerExport is the content of an exported ledger range.
type LedgerExport struct {
	StartDate    time.Time
	EndDate      time.Time
	Transactions []*entity.TransactionWithCategory
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

// ReportExporter writes a ledger range as a spreadsheet.
type ReportExporter interface {
	// Write encodes the export to w.
	Write(w io.Writer, export *LedgerExport) error

	// ContentType is the MIME type of the produced document.
	ContentType() string
}
