package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
)

// companyAuthorizer resolves a user's role within a company and evaluates the
// capability matrix. One lookup per call, no inline role checks anywhere else.
type companyAuthorizer struct {
	memberRepo portsrepo.CompanyMemberRepository
}

// NewCompanyAuthorizer creates the authorizer used by all services.
func NewCompanyAuthorizer(memberRepo portsrepo.CompanyMemberRepository) portssvc.CompanyAuthorizerSvc {
	return &companyAuthorizer{memberRepo: memberRepo}
}

var _ portssvc.CompanyAuthorizerSvc = (*companyAuthorizer)(nil)

func (a *companyAuthorizer) AuthorizeUserAction(ctx context.Context, userID, companyID string, capability domain.Capability) error {
	member, err := a.memberRepo.FindMember(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Obscure company existence from non-members.
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to resolve company membership: %w", err)
	}

	if !member.Role.Can(capability) {
		return fmt.Errorf("%w: role %s lacks capability %s", apperrors.ErrForbidden, member.Role, capability)
	}
	return nil
}
