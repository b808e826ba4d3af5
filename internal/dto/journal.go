package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// JournalEntryLineRequest is one line of a create/update request. Amounts are
// non-negative; the entry-level balance invariant is checked in the service.
type JournalEntryLineRequest struct {
	AccountHeadID string          `json:"accountHeadID" binding:"required"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description"`
}

// CreateJournalEntryRequest defines the data needed to create a journal
// entry. At least two lines are required.
type CreateJournalEntryRequest struct {
	Date          time.Time                 `json:"date" binding:"required" time_format:"2006-01-02"`
	Description   string                    `json:"description" binding:"required"`
	Lines         []JournalEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
	ReferenceType *domain.ReferenceType     `json:"referenceType" binding:"omitempty,oneof=INVOICE PAYMENT CREDIT_NOTE GRN EXPENSE JOURNAL_REVERSAL"`
	ReferenceID   *string                   `json:"referenceID"`
}

// UpdateJournalEntryRequest amends a DRAFT entry. Nil fields are unchanged;
// when Lines is present it replaces the whole line set.
type UpdateJournalEntryRequest struct {
	Date        *time.Time                `json:"date" time_format:"2006-01-02"`
	Description *string                   `json:"description"`
	Lines       []JournalEntryLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// JournalEntryLineResponse mirrors a persisted line.
type JournalEntryLineResponse struct {
	LineID        string          `json:"lineID"`
	AccountHeadID string          `json:"accountHeadID"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description"`
}

// JournalEntryResponse mirrors a persisted entry with its lines.
type JournalEntryResponse struct {
	JournalEntryID string                     `json:"journalEntryID"`
	EntryNumber    string                     `json:"entryNumber"`
	Date           time.Time                  `json:"date"`
	Description    string                     `json:"description"`
	ReferenceType  *domain.ReferenceType      `json:"referenceType,omitempty"`
	ReferenceID    *string                    `json:"referenceID,omitempty"`
	Status         domain.JournalStatus       `json:"status"`
	PostedAt       *time.Time                 `json:"postedAt,omitempty"`
	Lines          []JournalEntryLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time                  `json:"createdAt"`
	CreatedBy      string                     `json:"createdBy"`
}

// ListJournalEntriesParams holds query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalEntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalEntryLineResponse{
			LineID:        l.LineID,
			AccountHeadID: l.AccountHeadID,
			DebitAmount:   l.DebitAmount,
			CreditAmount:  l.CreditAmount,
			Description:   l.Description,
		}
	}
	return JournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		EntryNumber:    e.EntryNumber,
		Date:           e.EntryDate,
		Description:    e.Description,
		ReferenceType:  e.ReferenceType,
		ReferenceID:    e.ReferenceID,
		Status:         e.Status,
		PostedAt:       e.PostedAt,
		Lines:          lines,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}
