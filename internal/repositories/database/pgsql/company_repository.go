package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
)

type PgxCompanyMemberRepository struct {
	BaseRepository
}

// newPgxCompanyMemberRepository creates a new repository for company memberships.
func newPgxCompanyMemberRepository(pool *pgxpool.Pool) portsrepo.CompanyMemberRepository {
	return &PgxCompanyMemberRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyMemberRepository = (*PgxCompanyMemberRepository)(nil)

// FindMember returns the membership row for a user within a company.
func (r *PgxCompanyMemberRepository) FindMember(ctx context.Context, userID, companyID string) (*domain.CompanyMember, error) {
	query := `SELECT user_id, company_id, role FROM company_members WHERE user_id = $1 AND company_id = $2;`
	var m domain.CompanyMember
	err := r.Pool.QueryRow(ctx, query, userID, companyID).Scan(&m.UserID, &m.CompanyID, &m.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user is not a member of the company")
		}
		return nil, apperrors.NewAppError(500, "failed to query company membership", err)
	}
	return &m, nil
}
