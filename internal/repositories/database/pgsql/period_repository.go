package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
)

const periodCloseColumns = `
	period_close_id, company_id, period_date, status, net_profit,
	closed_by, closed_at, reopen_reason, reopened_by, reopened_at`

type PgxPeriodCloseRepository struct {
	BaseRepository
}

// newPgxPeriodCloseRepository creates a new repository for period locks.
func newPgxPeriodCloseRepository(pool *pgxpool.Pool) portsrepo.PeriodCloseRepository {
	return &PgxPeriodCloseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PeriodCloseRepository = (*PgxPeriodCloseRepository)(nil)

func scanPeriodClose(row pgx.Row) (*domain.PeriodClose, error) {
	var p domain.PeriodClose
	err := row.Scan(
		&p.PeriodCloseID, &p.CompanyID, &p.PeriodDate, &p.Status, &p.NetProfit,
		&p.ClosedBy, &p.ClosedAt, &p.ReopenReason, &p.ReopenedBy, &p.ReopenedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPeriodCloseByDate looks up the lock row for the exact period date.
func (r *PgxPeriodCloseRepository) FindPeriodCloseByDate(ctx context.Context, companyID string, periodDate time.Time) (*domain.PeriodClose, error) {
	query := `SELECT ` + periodCloseColumns + ` FROM period_closes WHERE company_id = $1 AND period_date = $2;`
	period, err := scanPeriodClose(r.Pool.QueryRow(ctx, query, companyID, periodDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("period close for " + periodDate.Format("2006-01-02") + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query period close by date", err)
	}
	return period, nil
}

// FindPeriodCloseByID retrieves a period close row.
func (r *PgxPeriodCloseRepository) FindPeriodCloseByID(ctx context.Context, periodCloseID string) (*domain.PeriodClose, error) {
	query := `SELECT ` + periodCloseColumns + ` FROM period_closes WHERE period_close_id = $1;`
	period, err := scanPeriodClose(r.Pool.QueryRow(ctx, query, periodCloseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("period close " + periodCloseID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query period close "+periodCloseID, err)
	}
	return period, nil
}

// SavePeriodClose inserts a new period close row.
func (r *PgxPeriodCloseRepository) SavePeriodClose(ctx context.Context, period domain.PeriodClose) error {
	query := `
		INSERT INTO period_closes (` + periodCloseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		period.PeriodCloseID,
		period.CompanyID,
		period.PeriodDate,
		period.Status,
		period.NetProfit,
		period.ClosedBy,
		period.ClosedAt,
		period.ReopenReason,
		period.ReopenedBy,
		period.ReopenedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert period close "+period.PeriodCloseID, err)
	}
	return nil
}

// UpdatePeriodClose updates status and reopen/close metadata.
func (r *PgxPeriodCloseRepository) UpdatePeriodClose(ctx context.Context, period domain.PeriodClose) error {
	query := `
		UPDATE period_closes
		SET status = $2, net_profit = $3, closed_by = $4, closed_at = $5,
		    reopen_reason = $6, reopened_by = $7, reopened_at = $8
		WHERE period_close_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		period.PeriodCloseID,
		period.Status,
		period.NetProfit,
		period.ClosedBy,
		period.ClosedAt,
		period.ReopenReason,
		period.ReopenedBy,
		period.ReopenedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update period close "+period.PeriodCloseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("period close " + period.PeriodCloseID + " not found")
	}
	return nil
}

// ListPeriodCloses returns all period close rows, newest period first.
func (r *PgxPeriodCloseRepository) ListPeriodCloses(ctx context.Context, companyID string) ([]domain.PeriodClose, error) {
	query := `SELECT ` + periodCloseColumns + ` FROM period_closes WHERE company_id = $1 ORDER BY period_date DESC;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list period closes", err)
	}
	defer rows.Close()

	periods := make([]domain.PeriodClose, 0)
	for rows.Next() {
		period, err := scanPeriodClose(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period close row", err)
		}
		periods = append(periods, *period)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate period close rows", err)
	}
	return periods, nil
}
