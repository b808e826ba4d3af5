package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account head.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsDebitNormal reports whether balances of this type grow with debits.
// Asset and Expense accounts are debit-normal; Liability, Equity and Revenue
// accounts are credit-normal.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// AccountStatus flags whether an account head accepts new postings.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// AccountHead is a node in the chart of accounts.
// CurrentBalance is a cached value maintained at posting time; the balance
// projection over posted lines remains the source of truth.
type AccountHead struct {
	AccountHeadID   string          `json:"accountHeadID"` // Primary key (UUID)
	CompanyID       string          `json:"companyID"`     // Tenant scope
	Code            string          `json:"code"`          // Unique numeric string, 4-10 digits, hierarchical prefix
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"` // Immutable after creation
	ParentAccountID string          `json:"parentAccountID"` // Empty for root accounts
	OpeningBalance  decimal.Decimal `json:"openingBalance"`  // Signed per normal side
	CurrentBalance  decimal.Decimal `json:"currentBalance"`  // Cached derived value
	Status          AccountStatus   `json:"status"`
	IsSystemAccount bool            `json:"isSystemAccount"` // Seed accounts, protected from deletion
	AuditFields
}
