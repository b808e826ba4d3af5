package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// CreateAccountHeadRequest defines the data needed to create an account head.
// The accountcode rule enforces the 4-10 digit numeric code format.
type CreateAccountHeadRequest struct {
	Code            string              `json:"code" binding:"required,accountcode"`
	Name            string              `json:"name" binding:"required"`
	AccountType     domain.AccountType  `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string             `json:"parentAccountID"` // Optional, pointer for nullability
	OpeningBalance  decimal.Decimal     `json:"openingBalance"`
	IsSystemAccount bool                `json:"isSystemAccount"`
}

// UpdateAccountHeadRequest defines the fields allowed to change after
// creation. AccountType is deliberately absent: it is immutable.
type UpdateAccountHeadRequest struct {
	Name            *string               `json:"name"`
	Status          *domain.AccountStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	ParentAccountID *string               `json:"parentAccountID"`
}

// AccountHeadResponse mirrors domain.AccountHead for API responses.
type AccountHeadResponse struct {
	AccountHeadID   string               `json:"accountHeadID"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	ParentAccountID string               `json:"parentAccountID"`
	OpeningBalance  decimal.Decimal      `json:"openingBalance"`
	CurrentBalance  decimal.Decimal      `json:"currentBalance"`
	Status          domain.AccountStatus `json:"status"`
	IsSystemAccount bool                 `json:"isSystemAccount"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
}

// AccountTreeNode is one chart-of-accounts node with its children nested,
// ordered by code ascending at every level.
type AccountTreeNode struct {
	AccountHeadID  string               `json:"accountHeadID"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	AccountType    domain.AccountType   `json:"accountType"`
	Status         domain.AccountStatus `json:"status"`
	CurrentBalance decimal.Decimal      `json:"currentBalance"`
	Children       []AccountTreeNode    `json:"children"`
}

// AccountBalanceParams selects the cut-off date for a balance projection.
type AccountBalanceParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02"`
}

// ToAccountHeadResponse converts a domain.AccountHead to its response DTO.
func ToAccountHeadResponse(a *domain.AccountHead) AccountHeadResponse {
	return AccountHeadResponse{
		AccountHeadID:   a.AccountHeadID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     a.AccountType,
		ParentAccountID: a.ParentAccountID,
		OpeningBalance:  a.OpeningBalance,
		CurrentBalance:  a.CurrentBalance,
		Status:          a.Status,
		IsSystemAccount: a.IsSystemAccount,
		CreatedAt:       a.CreatedAt,
		CreatedBy:       a.CreatedBy,
	}
}

// ToAccountHeadResponses converts a slice of account heads.
func ToAccountHeadResponses(accounts []domain.AccountHead) []AccountHeadResponse {
	res := make([]AccountHeadResponse, len(accounts))
	for i, a := range accounts {
		res[i] = ToAccountHeadResponse(&a)
	}
	return res
}
