package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// ClosePeriodRequest names the calendar month to lock.
type ClosePeriodRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=2200"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// ReopenPeriodRequest unlocks a closed month; the reason is mandatory and
// kept for audit.
type ReopenPeriodRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PeriodCloseResponse mirrors domain.PeriodClose.
type PeriodCloseResponse struct {
	PeriodCloseID string              `json:"periodCloseID"`
	PeriodDate    time.Time           `json:"periodDate"`
	Status        domain.PeriodStatus `json:"status"`
	NetProfit     decimal.Decimal     `json:"netProfit"`
	ClosedBy      string              `json:"closedBy"`
	ClosedAt      time.Time           `json:"closedAt"`
	ReopenReason  *string             `json:"reopenReason,omitempty"`
	ReopenedBy    *string             `json:"reopenedBy,omitempty"`
	ReopenedAt    *time.Time          `json:"reopenedAt,omitempty"`
}

// ToPeriodCloseResponse converts a domain.PeriodClose to its response DTO.
func ToPeriodCloseResponse(p *domain.PeriodClose) PeriodCloseResponse {
	return PeriodCloseResponse{
		PeriodCloseID: p.PeriodCloseID,
		PeriodDate:    p.PeriodDate,
		Status:        p.Status,
		NetProfit:     p.NetProfit,
		ClosedBy:      p.ClosedBy,
		ClosedAt:      p.ClosedAt,
		ReopenReason:  p.ReopenReason,
		ReopenedBy:    p.ReopenedBy,
		ReopenedAt:    p.ReopenedAt,
	}
}

// ToPeriodCloseResponses converts a slice of period closes.
func ToPeriodCloseResponses(periods []domain.PeriodClose) []PeriodCloseResponse {
	res := make([]PeriodCloseResponse, len(periods))
	for i, p := range periods {
		res[i] = ToPeriodCloseResponse(&p)
	}
	return res
}
