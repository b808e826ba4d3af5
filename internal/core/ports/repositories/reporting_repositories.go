package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// ReportingRepository provides the read-side aggregates reports are built
// from. Every query filters on POSTED entries only; drafts never surface in
// a report.
type ReportingRepository interface {
	// GetAccountActivity returns one row per account head of the company
	// with debit/credit sums over posted lines dated on or before asOf.
	// Accounts without any activity still appear with zero sums.
	GetAccountActivity(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountActivity, error)

	// GetAccountActivityBefore returns the debit/credit sums for a single
	// account over posted lines dated strictly before the cut-off.
	GetAccountActivityBefore(ctx context.Context, companyID, accountHeadID string, before time.Time) (totalDebit, totalCredit decimal.Decimal, err error)

	// GetLedgerLines returns the posted lines of one account within
	// [dateFrom, dateTo] in chronological order.
	GetLedgerLines(ctx context.Context, companyID, accountHeadID string, dateFrom, dateTo time.Time) ([]domain.LedgerLine, error)
}
