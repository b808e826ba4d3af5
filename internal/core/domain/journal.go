package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
// POSTED is terminal: a posted entry is immutable and can only be undone by
// an explicit compensating entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// ReferenceType names the business document that originated a journal entry.
type ReferenceType string

const (
	RefInvoice         ReferenceType = "INVOICE"
	RefPayment         ReferenceType = "PAYMENT"
	RefCreditNote      ReferenceType = "CREDIT_NOTE"
	RefGoodsReceipt    ReferenceType = "GRN"
	RefExpense         ReferenceType = "EXPENSE"
	RefJournalReversal ReferenceType = "JOURNAL_REVERSAL"
)

// JournalEntry is a single balanced financial event. Entry and lines form one
// aggregate: they are created, posted and deleted together.
type JournalEntry struct {
	JournalEntryID string             `json:"journalEntryID"` // Primary key (UUID)
	CompanyID      string             `json:"companyID"`
	EntryNumber    string             `json:"entryNumber"` // JE-YYYYMMDD-NNN, daily-reset sequence
	EntryDate      time.Time          `json:"entryDate"`
	Description    string             `json:"description"`
	ReferenceType  *ReferenceType     `json:"referenceType,omitempty"` // Link to originating document
	ReferenceID    *string            `json:"referenceID,omitempty"`
	Status         JournalStatus      `json:"status"`
	PostedAt       *time.Time         `json:"postedAt,omitempty"`
	PostedBy       *string            `json:"postedBy,omitempty"`
	Lines          []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

// JournalEntryLine is a single line of a journal entry affecting one account.
// Both amounts are non-negative; the entry-level sum invariant
// (sum of debits == sum of credits) is enforced, not a per-line exclusivity.
type JournalEntryLine struct {
	LineID         string          `json:"lineID"` // Primary key (UUID)
	JournalEntryID string          `json:"journalEntryID"`
	AccountHeadID  string          `json:"accountHeadID"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	Description    string          `json:"description"`
}

// TotalDebits sums the debit side of the entry.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// TotalCredits sums the credit side of the entry.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}
