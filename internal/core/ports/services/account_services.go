package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/core/domain"
	"github.com/tradegate/trading_erp/internal/dto"
)

// AccountHeadSvc manages the chart of accounts.
type AccountHeadSvc interface {
	// CreateAccountHead registers a new chart-of-accounts node.
	CreateAccountHead(ctx context.Context, companyID string, req dto.CreateAccountHeadRequest, userID string) (*domain.AccountHead, error)

	// GetAccountHeadByID retrieves one account head.
	GetAccountHeadByID(ctx context.Context, companyID, accountHeadID string, userID string) (*domain.AccountHead, error)

	// ListAccountHeads returns all account heads ordered by code.
	ListAccountHeads(ctx context.Context, companyID string, userID string) ([]domain.AccountHead, error)

	// GetAccountTree returns the chart of accounts as a nested tree, children
	// ordered by code ascending at every level.
	GetAccountTree(ctx context.Context, companyID string, userID string) ([]dto.AccountTreeNode, error)

	// UpdateAccountHead changes name, status or parent. The account type is
	// immutable after creation.
	UpdateAccountHead(ctx context.Context, companyID, accountHeadID string, req dto.UpdateAccountHeadRequest, userID string) (*domain.AccountHead, error)

	// DeleteAccountHead removes an account head without children, journal
	// lines or system-account protection.
	DeleteAccountHead(ctx context.Context, companyID, accountHeadID string, userID string) error

	// GetAccountBalance projects the account balance as of a date from the
	// opening balance and posted lines.
	GetAccountBalance(ctx context.Context, companyID, accountHeadID string, req dto.AccountBalanceParams, userID string) (decimal.Decimal, error)
}
