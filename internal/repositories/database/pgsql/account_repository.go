package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
)

const accountHeadColumns = `
	account_head_id, company_id, code, name, account_type, parent_account_id,
	opening_balance, current_balance, status, is_system_account,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountHeadRepository struct {
	BaseRepository
}

// newPgxAccountHeadRepository creates a new repository for chart-of-accounts data.
func newPgxAccountHeadRepository(pool *pgxpool.Pool) portsrepo.AccountHeadRepositoryFacade {
	return &PgxAccountHeadRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountHeadRepositoryFacade = (*PgxAccountHeadRepository)(nil)

func scanAccountHead(row pgx.Row) (*domain.AccountHead, error) {
	var a domain.AccountHead
	var parentID *string
	err := row.Scan(
		&a.AccountHeadID, &a.CompanyID, &a.Code, &a.Name, &a.AccountType, &parentID,
		&a.OpeningBalance, &a.CurrentBalance, &a.Status, &a.IsSystemAccount,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		a.ParentAccountID = *parentID
	}
	return &a, nil
}

// SaveAccountHead inserts a new account head.
func (r *PgxAccountHeadRepository) SaveAccountHead(ctx context.Context, account domain.AccountHead) error {
	query := `
		INSERT INTO account_heads (` + accountHeadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountHeadID,
		account.CompanyID,
		account.Code,
		account.Name,
		account.AccountType,
		nullableString(account.ParentAccountID),
		account.OpeningBalance,
		account.CurrentBalance,
		account.Status,
		account.IsSystemAccount,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert account head "+account.AccountHeadID, err)
	}
	return nil
}

// UpdateAccountHead updates the mutable columns of an account head.
func (r *PgxAccountHeadRepository) UpdateAccountHead(ctx context.Context, account domain.AccountHead) error {
	query := `
		UPDATE account_heads
		SET name = $2, status = $3, parent_account_id = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE account_head_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountHeadID,
		account.Name,
		account.Status,
		nullableString(account.ParentAccountID),
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account head "+account.AccountHeadID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account head " + account.AccountHeadID + " not found")
	}
	return nil
}

// DeleteAccountHead removes an account head row.
func (r *PgxAccountHeadRepository) DeleteAccountHead(ctx context.Context, accountHeadID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM account_heads WHERE account_head_id = $1;`, accountHeadID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete account head "+accountHeadID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account head " + accountHeadID + " not found")
	}
	return nil
}

// FindAccountHeadByID retrieves an account head by its ID.
func (r *PgxAccountHeadRepository) FindAccountHeadByID(ctx context.Context, accountHeadID string) (*domain.AccountHead, error) {
	query := `SELECT ` + accountHeadColumns + ` FROM account_heads WHERE account_head_id = $1;`
	account, err := scanAccountHead(r.Pool.QueryRow(ctx, query, accountHeadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account head " + accountHeadID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query account head "+accountHeadID, err)
	}
	return account, nil
}

// FindAccountHeadsByIDs retrieves several account heads keyed by ID.
func (r *PgxAccountHeadRepository) FindAccountHeadsByIDs(ctx context.Context, accountHeadIDs []string) (map[string]domain.AccountHead, error) {
	if len(accountHeadIDs) == 0 {
		return map[string]domain.AccountHead{}, nil
	}

	query := `SELECT ` + accountHeadColumns + ` FROM account_heads WHERE account_head_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountHeadIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account heads by ids", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.AccountHead, len(accountHeadIDs))
	for rows.Next() {
		account, err := scanAccountHead(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account head row", err)
		}
		accounts[account.AccountHeadID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account head rows", err)
	}
	return accounts, nil
}

// FindAccountHeadByCode retrieves an account head by code within a company.
func (r *PgxAccountHeadRepository) FindAccountHeadByCode(ctx context.Context, companyID, code string) (*domain.AccountHead, error) {
	query := `SELECT ` + accountHeadColumns + ` FROM account_heads WHERE company_id = $1 AND code = $2;`
	account, err := scanAccountHead(r.Pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account head with code " + code + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query account head by code "+code, err)
	}
	return account, nil
}

// ListAccountHeads returns all account heads of a company ordered by code.
func (r *PgxAccountHeadRepository) ListAccountHeads(ctx context.Context, companyID string) ([]domain.AccountHead, error) {
	query := `SELECT ` + accountHeadColumns + ` FROM account_heads WHERE company_id = $1 ORDER BY code ASC;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list account heads", err)
	}
	defer rows.Close()

	accounts := make([]domain.AccountHead, 0)
	for rows.Next() {
		account, err := scanAccountHead(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account head row", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account head rows", err)
	}
	return accounts, nil
}

// HasChildren reports whether any account references this one as parent.
func (r *PgxAccountHeadRepository) HasChildren(ctx context.Context, accountHeadID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM account_heads WHERE parent_account_id = $1);`,
		accountHeadID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check account children", err)
	}
	return exists, nil
}

// HasJournalLines reports whether any journal line references the account.
func (r *PgxAccountHeadRepository) HasJournalLines(ctx context.Context, accountHeadID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM journal_entry_lines WHERE account_head_id = $1);`,
		accountHeadID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check account journal lines", err)
	}
	return exists, nil
}

// FindAccountHeadsByIDsForUpdate locks the account rows with FOR UPDATE. The
// row locks hold until the caller's transaction finishes, serializing
// concurrent postings that touch the same accounts.
func (r *PgxAccountHeadRepository) FindAccountHeadsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountHeadIDs []string) (map[string]domain.AccountHead, error) {
	if len(accountHeadIDs) == 0 {
		return map[string]domain.AccountHead{}, nil
	}

	query := `SELECT ` + accountHeadColumns + ` FROM account_heads WHERE account_head_id = ANY($1) FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountHeadIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock account heads", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.AccountHead, len(accountHeadIDs))
	for rows.Next() {
		account, err := scanAccountHead(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked account head row", err)
		}
		accounts[account.AccountHeadID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate locked account head rows", err)
	}

	if len(accounts) != len(accountHeadIDs) {
		for _, id := range accountHeadIDs {
			if _, ok := accounts[id]; !ok {
				return nil, apperrors.NewNotFoundError("account head " + id + " not found")
			}
		}
	}
	return accounts, nil
}

// UpdateAccountBalancesInTx applies signed balance deltas to the locked rows.
func (r *PgxAccountHeadRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE account_heads
		SET current_balance = current_balance + $2,
		    last_updated_at = $3, last_updated_by = $4
		WHERE account_head_id = $1;
	`
	batch := &pgx.Batch{}
	for accountHeadID, delta := range changes {
		batch.Queue(query, accountHeadID, delta, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to apply account balance changes", err)
	}
	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
