package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindJournalEntryByID retrieves an entry together with its lines.
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entries for a company using
	// token-based pagination, newest first.
	ListJournalEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entries. The entry
// and its lines are one aggregate: every method is atomic over both.
type JournalEntryWriter interface {
	// SaveJournalEntry persists a DRAFT entry with its lines, assigning the
	// entry number from the per-day document sequence inside the same
	// transaction.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// UpdateJournalEntry replaces the header fields and lines of a DRAFT
	// entry. Status checks belong to the service layer.
	UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// PostJournalEntry flips DRAFT to POSTED and applies the balance-cache
	// deltas to the affected accounts, all in one transaction. It returns
	// apperrors.ErrBadRequest when the entry is not in DRAFT status.
	PostJournalEntry(ctx context.Context, journalEntryID string, balanceChanges map[string]decimal.Decimal, postedBy string, postedAt time.Time) error

	// SavePostedJournalEntry persists an entry directly in POSTED status with
	// its balance-cache deltas (used for reversals).
	SavePostedJournalEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error)

	// DeleteDraftJournalEntry removes a DRAFT entry and its lines.
	DeleteDraftJournalEntry(ctx context.Context, journalEntryID string) error
}

// JournalEntryRepositoryFacade combines all journal repository interfaces.
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
