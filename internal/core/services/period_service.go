package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/utils/accounting"
)

type periodCloseService struct {
	BaseService
	periodRepo    portsrepo.PeriodCloseRepository
	reportingRepo portsrepo.ReportingRepository
}

// PeriodServiceOption configures the period close service.
type PeriodServiceOption func(*periodCloseService)

// WithPeriodAuthorizer wires the company authorizer.
func WithPeriodAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) PeriodServiceOption {
	return func(s *periodCloseService) {
		s.Authorizer = authorizer
	}
}

// NewPeriodCloseService creates a new period close service.
func NewPeriodCloseService(periodRepo portsrepo.PeriodCloseRepository, reportingRepo portsrepo.ReportingRepository, opts ...PeriodServiceOption) portssvc.PeriodCloseSvc {
	svc := &periodCloseService{
		periodRepo:    periodRepo,
		reportingRepo: reportingRepo,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.PeriodCloseSvc = (*periodCloseService)(nil)

// ValidatePeriodNotClosed is the guard every dated write runs through. It is
// intentionally unauthorized: the caller already authorized its own action.
func (s *periodCloseService) ValidatePeriodNotClosed(ctx context.Context, companyID string, date time.Time) error {
	periodDate := domain.LastDayOfMonth(date)

	period, err := s.periodRepo.FindPeriodCloseByDate(ctx, companyID, periodDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "Failed to look up period close", slog.Time("period_date", periodDate))
		return fmt.Errorf("failed to look up period close: %w", err)
	}

	if period.Status == domain.PeriodClosed {
		return fmt.Errorf("%w: period %s %d is closed", apperrors.ErrBadRequest,
			periodDate.Month().String(), periodDate.Year())
	}
	return nil
}

func (s *periodCloseService) CloseMonth(ctx context.Context, companyID string, year int, month time.Month, userID string) (*domain.PeriodClose, error) {
	logger := s.GetLogger(ctx)

	if err := s.Authorize(ctx, userID, companyID, domain.CapClosePeriods); err != nil {
		return nil, err
	}

	periodDate := domain.LastDayOfMonth(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))

	existing, err := s.periodRepo.FindPeriodCloseByDate(ctx, companyID, periodDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up period close", slog.Time("period_date", periodDate))
		return nil, fmt.Errorf("failed to look up period close: %w", err)
	}
	if existing != nil && existing.Status == domain.PeriodClosed {
		return nil, fmt.Errorf("%w: period %s %d is already closed", apperrors.ErrConflict,
			periodDate.Month().String(), periodDate.Year())
	}

	netProfit, err := s.netProfitOfMonth(ctx, companyID, periodDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if existing != nil {
		// A previously reopened month is closed again on the same row so the
		// reopen audit trail survives.
		existing.Status = domain.PeriodClosed
		existing.NetProfit = netProfit
		existing.ClosedBy = userID
		existing.ClosedAt = now
		if err := s.periodRepo.UpdatePeriodClose(ctx, *existing); err != nil {
			s.LogError(ctx, err, "Failed to re-close period", slog.Time("period_date", periodDate))
			return nil, fmt.Errorf("failed to re-close period: %w", err)
		}
		logger.Info("Period re-closed",
			slog.Time("period_date", periodDate),
			slog.String("net_profit", netProfit.String()))
		return existing, nil
	}

	period := domain.PeriodClose{
		PeriodCloseID: uuid.NewString(),
		CompanyID:     companyID,
		PeriodDate:    periodDate,
		Status:        domain.PeriodClosed,
		NetProfit:     netProfit,
		ClosedBy:      userID,
		ClosedAt:      now,
	}
	if err := s.periodRepo.SavePeriodClose(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save period close", slog.Time("period_date", periodDate))
		return nil, fmt.Errorf("failed to save period close: %w", err)
	}

	logger.Info("Period closed",
		slog.Time("period_date", periodDate),
		slog.String("net_profit", netProfit.String()))
	return &period, nil
}

func (s *periodCloseService) ReopenPeriod(ctx context.Context, companyID, periodCloseID, reason string, userID string) (*domain.PeriodClose, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapClosePeriods); err != nil {
		return nil, err
	}

	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a reopen reason is required", apperrors.ErrValidation)
	}

	period, err := s.periodRepo.FindPeriodCloseByID(ctx, periodCloseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: period close %s", apperrors.ErrNotFound, periodCloseID)
		}
		s.LogError(ctx, err, "Failed to find period close", slog.String("period_close_id", periodCloseID))
		return nil, fmt.Errorf("failed to find period close: %w", err)
	}
	if period.CompanyID != companyID {
		return nil, fmt.Errorf("%w: period close %s", apperrors.ErrNotFound, periodCloseID)
	}
	if period.Status != domain.PeriodClosed {
		return nil, fmt.Errorf("%w: period is not closed", apperrors.ErrBadRequest)
	}

	now := time.Now()
	period.Status = domain.PeriodReopened
	period.ReopenReason = &reason
	period.ReopenedBy = &userID
	period.ReopenedAt = &now

	if err := s.periodRepo.UpdatePeriodClose(ctx, *period); err != nil {
		s.LogError(ctx, err, "Failed to reopen period", slog.String("period_close_id", periodCloseID))
		return nil, fmt.Errorf("failed to reopen period: %w", err)
	}

	s.LogInfo(ctx, "Period reopened",
		slog.Time("period_date", period.PeriodDate),
		slog.String("reason", reason))
	return period, nil
}

func (s *periodCloseService) ListPeriods(ctx context.Context, companyID string, userID string) ([]domain.PeriodClose, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapViewReports); err != nil {
		return nil, err
	}

	periods, err := s.periodRepo.ListPeriodCloses(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list period closes")
		return nil, fmt.Errorf("failed to list period closes: %w", err)
	}
	return periods, nil
}

// netProfitOfMonth snapshots the month's P&L as the difference of cumulative
// retained earnings at the month end and at the previous month end.
func (s *periodCloseService) netProfitOfMonth(ctx context.Context, companyID string, periodDate time.Time) (decimal.Decimal, error) {
	atEnd, err := s.retainedEarningsAsOf(ctx, companyID, periodDate)
	if err != nil {
		return decimal.Zero, err
	}

	prevMonthEnd := time.Date(periodDate.Year(), periodDate.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	atStart, err := s.retainedEarningsAsOf(ctx, companyID, prevMonthEnd)
	if err != nil {
		return decimal.Zero, err
	}

	return atEnd.Sub(atStart), nil
}

// retainedEarningsAsOf sums revenue minus expense balances up to asOf.
func (s *periodCloseService) retainedEarningsAsOf(ctx context.Context, companyID string, asOf time.Time) (decimal.Decimal, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account activity", slog.Time("as_of", asOf))
		return decimal.Zero, fmt.Errorf("failed to aggregate account activity: %w", err)
	}

	total := decimal.Zero
	for _, a := range activity {
		switch a.AccountType {
		case domain.Revenue:
			total = total.Add(accounting.ProjectBalance(a.AccountType, a.OpeningBalance, a.TotalDebit, a.TotalCredit, accounting.StatementPrecision))
		case domain.Expense:
			total = total.Sub(accounting.ProjectBalance(a.AccountType, a.OpeningBalance, a.TotalDebit, a.TotalCredit, accounting.StatementPrecision))
		}
	}
	return total, nil
}
