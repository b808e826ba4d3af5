package services

import (
	"context"
	"time"

	"github.com/tradegate/trading_erp/internal/core/domain"
	"github.com/tradegate/trading_erp/internal/dto"
)

// JournalEntrySvc drives the journal entry lifecycle: DRAFT -> POSTED, with
// POSTED terminal. Reversal of a posted entry is a new compensating entry.
type JournalEntrySvc interface {
	// CreateJournalEntry validates balance and period lock, assigns the entry
	// number and persists the entry as DRAFT.
	CreateJournalEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// GetJournalEntryByID retrieves an entry with its lines.
	GetJournalEntryByID(ctx context.Context, companyID, journalEntryID string, userID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entries, newest first.
	ListJournalEntries(ctx context.Context, companyID string, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// UpdateJournalEntry amends a DRAFT entry, re-validating balance and
	// period lock.
	UpdateJournalEntry(ctx context.Context, companyID, journalEntryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostJournalEntry transitions DRAFT -> POSTED, making the entry
	// immutable and visible to reports.
	PostJournalEntry(ctx context.Context, companyID, journalEntryID string, userID string) (*domain.JournalEntry, error)

	// DeleteJournalEntry removes a DRAFT entry. POSTED entries are permanent.
	DeleteJournalEntry(ctx context.Context, companyID, journalEntryID string, userID string) error

	// ReverseJournalEntry posts a compensating entry with debit and credit
	// sides swapped, referencing the original.
	ReverseJournalEntry(ctx context.Context, companyID, journalEntryID string, userID string) (*domain.JournalEntry, error)
}

// JournalBridgeSvc is the narrow contract source-document modules (invoicing,
// payments, credit notes, goods receipts) depend on to record their financial
// effect. Callers set ReferenceType and ReferenceID on the request so the
// entry stays traceable to its originating document. Satisfied by any
// JournalEntrySvc.
type JournalBridgeSvc interface {
	CreateJournalEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)
	PostJournalEntry(ctx context.Context, companyID, journalEntryID string, userID string) (*domain.JournalEntry, error)
	ReverseJournalEntry(ctx context.Context, companyID, journalEntryID string, userID string) (*domain.JournalEntry, error)
}

var _ JournalBridgeSvc = (JournalEntrySvc)(nil)

// PeriodGuardSvc is the period lock contract honored by every module that
// creates or amends dated financial records.
type PeriodGuardSvc interface {
	// ValidatePeriodNotClosed fails with apperrors.ErrBadRequest when the
	// month containing date is closed.
	ValidatePeriodNotClosed(ctx context.Context, companyID string, date time.Time) error
}

// PeriodCloseSvc manages monthly period locks.
type PeriodCloseSvc interface {
	PeriodGuardSvc

	// CloseMonth locks a calendar month, snapshotting its net profit.
	CloseMonth(ctx context.Context, companyID string, year int, month time.Month, userID string) (*domain.PeriodClose, error)

	// ReopenPeriod unlocks a closed month, recording the audit reason.
	ReopenPeriod(ctx context.Context, companyID, periodCloseID, reason string, userID string) (*domain.PeriodClose, error)

	// ListPeriods returns the close/reopen history of a company.
	ListPeriods(ctx context.Context, companyID string, userID string) ([]domain.PeriodClose, error)
}
