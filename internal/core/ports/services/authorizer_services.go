package services

import (
	"context"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// CompanyAuthorizerSvc decides whether a user may perform an operation class
// within a company. Implementations resolve the user's role once and consult
// the capability matrix.
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction returns apperrors.ErrNotFound when the user is not
	// a member of the company and apperrors.ErrForbidden when the role lacks
	// the capability.
	AuthorizeUserAction(ctx context.Context, userID, companyID string, capability domain.Capability) error
}
