package services

import (
	"context"
	"time"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// ReportingSvc renders the read-side projections of the ledger. All three
// reports derive balances through the same projection algorithm.
type ReportingSvc interface {
	TrialBalance(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.TrialBalanceReport, error)
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)
	GeneralLedger(ctx context.Context, companyID, accountHeadID string, dateFrom, dateTo time.Time, userID string) (*domain.GeneralLedgerReport, error)
}
