package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatus indicates whether a monthly accounting period is locked.
// REOPENED is distinct from never-closed so the audit trail survives.
type PeriodStatus string

const (
	PeriodClosed   PeriodStatus = "CLOSED"
	PeriodReopened PeriodStatus = "REOPENED"
)

// PeriodClose locks a calendar month against new or amended postings.
// PeriodDate is always the last calendar day of the closed month.
type PeriodClose struct {
	PeriodCloseID string          `json:"periodCloseID"` // Primary key (UUID)
	CompanyID     string          `json:"companyID"`
	PeriodDate    time.Time       `json:"periodDate"` // Last calendar day of the month
	Status        PeriodStatus    `json:"status"`
	NetProfit     decimal.Decimal `json:"netProfit"` // P&L snapshot taken at close time
	ClosedBy      string          `json:"closedBy"`
	ClosedAt      time.Time       `json:"closedAt"`
	ReopenReason  *string         `json:"reopenReason,omitempty"`
	ReopenedBy    *string         `json:"reopenedBy,omitempty"`
	ReopenedAt    *time.Time      `json:"reopenedAt,omitempty"`
}

// LastDayOfMonth returns the last calendar day of the month containing d,
// truncated to midnight UTC.
func LastDayOfMonth(d time.Time) time.Time {
	firstOfNext := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
