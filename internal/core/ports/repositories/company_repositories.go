package repositories

import (
	"context"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// CompanyMemberRepository resolves a user's membership within a company.
type CompanyMemberRepository interface {
	// FindMember returns the membership row, or apperrors.ErrNotFound when
	// the user does not belong to the company.
	FindMember(ctx context.Context, userID, companyID string) (*domain.CompanyMember, error)
}
