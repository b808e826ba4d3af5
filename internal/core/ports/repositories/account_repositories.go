package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// AccountHeadReader defines read operations for the chart of accounts.
type AccountHeadReader interface {
	// FindAccountHeadByID retrieves a single account head.
	FindAccountHeadByID(ctx context.Context, accountHeadID string) (*domain.AccountHead, error)

	// FindAccountHeadsByIDs retrieves several account heads keyed by ID.
	FindAccountHeadsByIDs(ctx context.Context, accountHeadIDs []string) (map[string]domain.AccountHead, error)

	// FindAccountHeadByCode retrieves an account head by its unique code
	// within a company. Returns apperrors.ErrNotFound when absent.
	FindAccountHeadByCode(ctx context.Context, companyID, code string) (*domain.AccountHead, error)

	// ListAccountHeads returns all account heads of a company ordered by code.
	ListAccountHeads(ctx context.Context, companyID string) ([]domain.AccountHead, error)

	// HasChildren reports whether any account references this one as parent.
	HasChildren(ctx context.Context, accountHeadID string) (bool, error)

	// HasJournalLines reports whether any journal line references the account.
	HasJournalLines(ctx context.Context, accountHeadID string) (bool, error)
}

// AccountHeadWriter defines write operations for the chart of accounts.
type AccountHeadWriter interface {
	SaveAccountHead(ctx context.Context, account domain.AccountHead) error
	UpdateAccountHead(ctx context.Context, account domain.AccountHead) error

	// DeleteAccountHead removes an account head. Callers must verify the
	// children/journal-line preconditions first.
	DeleteAccountHead(ctx context.Context, accountHeadID string) error
}

// AccountBalanceWriter maintains the cached current_balance column inside an
// enclosing database transaction (the posting transaction).
type AccountBalanceWriter interface {
	// FindAccountHeadsByIDsForUpdate locks the account rows with
	// SELECT ... FOR UPDATE and returns them keyed by ID.
	FindAccountHeadsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountHeadIDs []string) (map[string]domain.AccountHead, error)

	// UpdateAccountBalancesInTx applies signed balance deltas to the locked rows.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountHeadRepositoryFacade combines all account repository interfaces.
type AccountHeadRepositoryFacade interface {
	AccountHeadReader
	AccountHeadWriter
	AccountBalanceWriter
}
