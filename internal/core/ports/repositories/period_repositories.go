package repositories

import (
	"context"
	"time"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// PeriodCloseRepository persists monthly period locks.
type PeriodCloseRepository interface {
	// FindPeriodCloseByDate looks up the lock row for the exact period date
	// (last calendar day of a month). Returns apperrors.ErrNotFound when the
	// month was never closed.
	FindPeriodCloseByDate(ctx context.Context, companyID string, periodDate time.Time) (*domain.PeriodClose, error)

	// FindPeriodCloseByID retrieves a period close row.
	FindPeriodCloseByID(ctx context.Context, periodCloseID string) (*domain.PeriodClose, error)

	// SavePeriodClose inserts a new period close row.
	SavePeriodClose(ctx context.Context, period domain.PeriodClose) error

	// UpdatePeriodClose updates status and reopen/close metadata.
	UpdatePeriodClose(ctx context.Context, period domain.PeriodClose) error

	// ListPeriodCloses returns all period close rows for a company, newest
	// period first.
	ListPeriodCloses(ctx context.Context, companyID string) ([]domain.PeriodClose, error)
}
