package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
	"github.com/tradegate/trading_erp/internal/utils/accounting"
)

// BalanceProjector derives account balances from the opening balance plus
// posted lines. Trial balance, balance sheet, general ledger and ad-hoc
// balance queries all go through it (directly or via
// accounting.ProjectBalance), so the reports cannot disagree on a balance.
type BalanceProjector struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewBalanceProjector creates a balance projector.
func NewBalanceProjector(reportingRepo portsrepo.ReportingRepository) *BalanceProjector {
	return &BalanceProjector{reportingRepo: reportingRepo}
}

// BalanceAsOf projects the balance of one account from posted lines dated on
// or before asOf.
func (p *BalanceProjector) BalanceAsOf(ctx context.Context, companyID string, account *domain.AccountHead, asOf time.Time, precision int32) (decimal.Decimal, error) {
	// The repository sums strictly-before a cut-off; shift by one day to make
	// asOf inclusive. Entry dates carry no time component.
	totalDebit, totalCredit, err := p.reportingRepo.GetAccountActivityBefore(ctx, companyID, account.AccountHeadID, asOf.AddDate(0, 0, 1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate account activity: %w", err)
	}
	return accounting.ProjectBalance(account.AccountType, account.OpeningBalance, totalDebit, totalCredit, precision), nil
}

// BalanceBefore projects the balance of one account from posted lines dated
// strictly before the cut-off (the general ledger opening balance).
func (p *BalanceProjector) BalanceBefore(ctx context.Context, companyID string, account *domain.AccountHead, before time.Time, precision int32) (decimal.Decimal, error) {
	totalDebit, totalCredit, err := p.reportingRepo.GetAccountActivityBefore(ctx, companyID, account.AccountHeadID, before)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate account activity: %w", err)
	}
	return accounting.ProjectBalance(account.AccountType, account.OpeningBalance, totalDebit, totalCredit, precision), nil
}
