package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity carries an account head together with its posted debit and
// credit sums up to a report cut-off. It is the raw input of every report.
type AccountActivity struct {
	AccountHeadID  string
	Code           string
	Name           string
	AccountType    AccountType
	Status         AccountStatus
	OpeningBalance decimal.Decimal
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
}

// LedgerLine is one posted journal line with its entry header, as consumed by
// the general ledger report.
type LedgerLine struct {
	JournalEntryID string
	EntryNumber    string
	EntryDate      time.Time
	Description    string
	DebitAmount    decimal.Decimal
	CreditAmount   decimal.Decimal
}

// TrialBalanceRow is one account's closing balance split into its debit or
// credit column.
type TrialBalanceRow struct {
	AccountHeadID string          `json:"accountHeadID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalanceReport lists every active account with activity or a nonzero
// opening balance. DebitTotal == CreditTotal is the core correctness
// invariant of the ledger.
type TrialBalanceReport struct {
	AsOfDate    time.Time         `json:"asOfDate"`
	Rows        []TrialBalanceRow `json:"rows"`
	DebitTotal  decimal.Decimal   `json:"debitTotal"`
	CreditTotal decimal.Decimal   `json:"creditTotal"`
	IsBalanced  bool              `json:"isBalanced"`
}

// BalanceSheetLine is one account balance inside a balance sheet section.
type BalanceSheetLine struct {
	AccountHeadID string          `json:"accountHeadID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
}

// BalanceSheetReport groups asset, liability and equity balances as of a
// date. Retained earnings bridge the revenue/expense accounts into equity.
type BalanceSheetReport struct {
	AsOfDate                  time.Time          `json:"asOfDate"`
	Assets                    []BalanceSheetLine `json:"assets"`
	Liabilities               []BalanceSheetLine `json:"liabilities"`
	Equity                    []BalanceSheetLine `json:"equity"`
	TotalAssets               decimal.Decimal    `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal    `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal    `json:"totalEquity"`
	RetainedEarnings          decimal.Decimal    `json:"retainedEarnings"`
	TotalLiabilitiesAndEquity decimal.Decimal    `json:"totalLiabilitiesAndEquity"`
	IsBalanced                bool               `json:"isBalanced"`
}

// GeneralLedgerEntry is one report row with the balance after the line.
type GeneralLedgerEntry struct {
	JournalEntryID string          `json:"journalEntryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerReport walks one account's posted lines across a date window.
type GeneralLedgerReport struct {
	AccountHeadID  string               `json:"accountHeadID"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	DateFrom       time.Time            `json:"dateFrom"`
	DateTo         time.Time            `json:"dateTo"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	Entries        []GeneralLedgerEntry `json:"entries"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
	TotalDebits    decimal.Decimal      `json:"totalDebits"`
	TotalCredits   decimal.Decimal      `json:"totalCredits"`
}
