package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for report aggregates.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAccountActivity aggregates posted debit/credit sums per account head up
// to and including asOf. The LEFT JOIN keeps accounts without any posted
// lines in the result with zero sums.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountActivity, error) {
	// Lines whose entry fails the status/date condition join with a NULL j
	// row; the FILTER keeps them out of the sums while the LEFT JOIN keeps
	// zero-activity accounts in the result.
	query := `
		SELECT a.account_head_id, a.code, a.name, a.account_type, a.status, a.opening_balance,
		       COALESCE(SUM(l.debit_amount) FILTER (WHERE j.journal_entry_id IS NOT NULL), 0) AS total_debit,
		       COALESCE(SUM(l.credit_amount) FILTER (WHERE j.journal_entry_id IS NOT NULL), 0) AS total_credit
		FROM account_heads a
		LEFT JOIN journal_entry_lines l ON l.account_head_id = a.account_head_id
		LEFT JOIN journal_entries j ON j.journal_entry_id = l.journal_entry_id
		       AND j.status = 'POSTED' AND j.entry_date <= $2
		WHERE a.company_id = $1
		GROUP BY a.account_head_id, a.code, a.name, a.account_type, a.status, a.opening_balance
		ORDER BY a.code ASC;
	`

	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate account activity", err)
	}
	defer rows.Close()

	activity := make([]domain.AccountActivity, 0)
	for rows.Next() {
		var a domain.AccountActivity
		if err := rows.Scan(&a.AccountHeadID, &a.Code, &a.Name, &a.AccountType, &a.Status,
			&a.OpeningBalance, &a.TotalDebit, &a.TotalCredit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", err)
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account activity rows", err)
	}
	return activity, nil
}

// GetAccountActivityBefore sums posted debits/credits of one account strictly
// before the cut-off date.
func (r *PgxReportingRepository) GetAccountActivityBefore(ctx context.Context, companyID, accountHeadID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)
		FROM journal_entry_lines l
		JOIN journal_entries j ON j.journal_entry_id = l.journal_entry_id
		WHERE j.company_id = $1 AND l.account_head_id = $2
		  AND j.status = 'POSTED' AND j.entry_date < $3;
	`
	var totalDebit, totalCredit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID, accountHeadID, before).Scan(&totalDebit, &totalCredit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to aggregate account activity before cut-off", err)
	}
	return totalDebit, totalCredit, nil
}

// GetLedgerLines returns the posted lines of one account within the window in
// chronological order. Ties on the same date resolve by posting time then
// entry number, matching the order balances were applied.
func (r *PgxReportingRepository) GetLedgerLines(ctx context.Context, companyID, accountHeadID string, dateFrom, dateTo time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT j.journal_entry_id, j.entry_number, j.entry_date,
		       COALESCE(NULLIF(l.description, ''), j.description) AS description,
		       l.debit_amount, l.credit_amount
		FROM journal_entry_lines l
		JOIN journal_entries j ON j.journal_entry_id = l.journal_entry_id
		WHERE j.company_id = $1 AND l.account_head_id = $2
		  AND j.status = 'POSTED' AND j.entry_date >= $3 AND j.entry_date <= $4
		ORDER BY j.entry_date ASC, j.posted_at ASC, j.entry_number ASC, l.line_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, accountHeadID, dateFrom, dateTo)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger lines", err)
	}
	defer rows.Close()

	lines := make([]domain.LedgerLine, 0)
	for rows.Next() {
		var l domain.LedgerLine
		if err := rows.Scan(&l.JournalEntryID, &l.EntryNumber, &l.EntryDate, &l.Description,
			&l.DebitAmount, &l.CreditAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger line row", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate ledger line rows", err)
	}
	return lines, nil
}
