package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/utils/accounting"
)

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountHeadRepositoryFacade
	projector     *BalanceProjector
}

// ReportingServiceOption configures the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportingAuthorizer wires the company authorizer.
func WithReportingAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.Authorizer = authorizer
	}
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	accountRepo portsrepo.AccountHeadRepositoryFacade,
	projector *BalanceProjector,
	opts ...ReportingServiceOption,
) portssvc.ReportingSvc {
	svc := &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		projector:     projector,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

func (s *reportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.TrialBalanceReport, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapViewReports); err != nil {
		return nil, err
	}

	activity, err := s.reportingRepo.GetAccountActivity(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account activity", slog.Time("as_of", asOf))
		return nil, fmt.Errorf("failed to aggregate account activity: %w", err)
	}

	report := &domain.TrialBalanceReport{
		AsOfDate:    asOf,
		Rows:        []domain.TrialBalanceRow{},
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
	}

	for _, a := range activity {
		if !includeInTrialBalance(a) {
			continue
		}

		balance := accounting.ProjectBalance(a.AccountType, a.OpeningBalance, a.TotalDebit, a.TotalCredit, accounting.StatementPrecision)
		row := domain.TrialBalanceRow{
			AccountHeadID: a.AccountHeadID,
			Code:          a.Code,
			Name:          a.Name,
			AccountType:   a.AccountType,
			DebitBalance:  decimal.Zero,
			CreditBalance: decimal.Zero,
		}

		// A balance on the account's normal side lands in that column; a
		// negative balance flips to the opposite column as a positive figure.
		onDebitSide := a.AccountType.IsDebitNormal()
		if balance.IsNegative() {
			onDebitSide = !onDebitSide
			balance = balance.Neg()
		}
		if onDebitSide {
			row.DebitBalance = balance
		} else {
			row.CreditBalance = balance
		}

		report.Rows = append(report.Rows, row)
		report.DebitTotal = report.DebitTotal.Add(row.DebitBalance)
		report.CreditTotal = report.CreditTotal.Add(row.CreditBalance)
	}

	report.DebitTotal = accounting.Round(report.DebitTotal, accounting.StatementPrecision)
	report.CreditTotal = accounting.Round(report.CreditTotal, accounting.StatementPrecision)
	report.IsBalanced = accounting.WithinTolerance(report.DebitTotal, report.CreditTotal)

	if !report.IsBalanced {
		s.LogError(ctx, fmt.Errorf("%w: trial balance out of balance", apperrors.ErrInternal),
			"Trial balance does not balance",
			slog.String("debit_total", report.DebitTotal.String()),
			slog.String("credit_total", report.CreditTotal.String()))
	}
	return report, nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapViewReports); err != nil {
		return nil, err
	}

	activity, err := s.reportingRepo.GetAccountActivity(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account activity", slog.Time("as_of", asOf))
		return nil, fmt.Errorf("failed to aggregate account activity: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOfDate:         asOf,
		Assets:           []domain.BalanceSheetLine{},
		Liabilities:      []domain.BalanceSheetLine{},
		Equity:           []domain.BalanceSheetLine{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		RetainedEarnings: decimal.Zero,
	}

	for _, a := range activity {
		balance := accounting.ProjectBalance(a.AccountType, a.OpeningBalance, a.TotalDebit, a.TotalCredit, accounting.StatementPrecision)

		switch a.AccountType {
		case domain.Asset:
			if !balance.IsZero() {
				report.Assets = append(report.Assets, balanceSheetLine(a, balance))
			}
			report.TotalAssets = report.TotalAssets.Add(balance)
		case domain.Liability:
			if !balance.IsZero() {
				report.Liabilities = append(report.Liabilities, balanceSheetLine(a, balance))
			}
			report.TotalLiabilities = report.TotalLiabilities.Add(balance)
		case domain.Equity:
			if !balance.IsZero() {
				report.Equity = append(report.Equity, balanceSheetLine(a, balance))
			}
			report.TotalEquity = report.TotalEquity.Add(balance)
		case domain.Revenue:
			report.RetainedEarnings = report.RetainedEarnings.Add(balance)
		case domain.Expense:
			report.RetainedEarnings = report.RetainedEarnings.Sub(balance)
		}
	}

	report.TotalAssets = accounting.Round(report.TotalAssets, accounting.StatementPrecision)
	report.TotalLiabilities = accounting.Round(report.TotalLiabilities, accounting.StatementPrecision)
	report.TotalEquity = accounting.Round(report.TotalEquity, accounting.StatementPrecision)
	report.RetainedEarnings = accounting.Round(report.RetainedEarnings, accounting.StatementPrecision)
	report.TotalLiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity).Add(report.RetainedEarnings)
	report.IsBalanced = accounting.WithinTolerance(report.TotalAssets, report.TotalLiabilitiesAndEquity)

	return report, nil
}

func (s *reportingService) GeneralLedger(ctx context.Context, companyID, accountHeadID string, dateFrom, dateTo time.Time, userID string) (*domain.GeneralLedgerReport, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapViewReports); err != nil {
		return nil, err
	}
	if dateTo.Before(dateFrom) {
		return nil, fmt.Errorf("%w: dateTo must not precede dateFrom", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountHeadByID(ctx, accountHeadID)
	if err != nil {
		return nil, fmt.Errorf("%w: account head %s", apperrors.ErrNotFound, accountHeadID)
	}
	if account.CompanyID != companyID {
		return nil, fmt.Errorf("%w: account head %s", apperrors.ErrNotFound, accountHeadID)
	}

	opening, err := s.projector.BalanceBefore(ctx, companyID, account, dateFrom, accounting.LedgerPrecision)
	if err != nil {
		return nil, err
	}

	lines, err := s.reportingRepo.GetLedgerLines(ctx, companyID, accountHeadID, dateFrom, dateTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger lines", slog.String("account_head_id", accountHeadID))
		return nil, fmt.Errorf("failed to load ledger lines: %w", err)
	}

	report := &domain.GeneralLedgerReport{
		AccountHeadID:  account.AccountHeadID,
		Code:           account.Code,
		Name:           account.Name,
		DateFrom:       dateFrom,
		DateTo:         dateTo,
		OpeningBalance: opening,
		Entries:        make([]domain.GeneralLedgerEntry, 0, len(lines)),
		TotalDebits:    decimal.Zero,
		TotalCredits:   decimal.Zero,
	}

	running := opening
	for _, l := range lines {
		movement := accounting.NetMovement(account.AccountType, l.DebitAmount, l.CreditAmount)
		running = accounting.Round(running.Add(movement), accounting.LedgerPrecision)

		report.Entries = append(report.Entries, domain.GeneralLedgerEntry{
			JournalEntryID: l.JournalEntryID,
			EntryNumber:    l.EntryNumber,
			EntryDate:      l.EntryDate,
			Description:    l.Description,
			DebitAmount:    l.DebitAmount,
			CreditAmount:   l.CreditAmount,
			RunningBalance: running,
		})
		report.TotalDebits = report.TotalDebits.Add(l.DebitAmount)
		report.TotalCredits = report.TotalCredits.Add(l.CreditAmount)
	}

	report.TotalDebits = accounting.Round(report.TotalDebits, accounting.LedgerPrecision)
	report.TotalCredits = accounting.Round(report.TotalCredits, accounting.LedgerPrecision)
	report.ClosingBalance = running
	return report, nil
}

// includeInTrialBalance keeps active accounts that carry activity or a nonzero
// opening balance. Dormant zero accounts only add noise.
func includeInTrialBalance(a domain.AccountActivity) bool {
	if a.Status != domain.AccountActive {
		return false
	}
	return !a.TotalDebit.IsZero() || !a.TotalCredit.IsZero() || !a.OpeningBalance.IsZero()
}

func balanceSheetLine(a domain.AccountActivity, balance decimal.Decimal) domain.BalanceSheetLine {
	return domain.BalanceSheetLine{
		AccountHeadID: a.AccountHeadID,
		Code:          a.Code,
		Name:          a.Name,
		Balance:       balance,
	}
}
