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

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for company settings.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

// FindSetting retrieves one setting.
func (r *PgxSettingsRepository) FindSetting(ctx context.Context, companyID, key string) (*domain.Setting, error) {
	query := `SELECT company_id, key, value, updated_at, updated_by FROM settings WHERE company_id = $1 AND key = $2;`
	var s domain.Setting
	err := r.Pool.QueryRow(ctx, query, companyID, key).Scan(&s.CompanyID, &s.Key, &s.Value, &s.UpdatedAt, &s.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("setting " + key + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query setting "+key, err)
	}
	return &s, nil
}

// UpsertSetting inserts or replaces a setting value.
func (r *PgxSettingsRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	query := `
		INSERT INTO settings (company_id, key, value, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by;
	`
	_, err := r.Pool.Exec(ctx, query, setting.CompanyID, setting.Key, setting.Value, setting.UpdatedAt, setting.UpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert setting "+setting.Key, err)
	}
	return nil
}

// ListSettings returns all settings of a company ordered by key.
func (r *PgxSettingsRepository) ListSettings(ctx context.Context, companyID string) ([]domain.Setting, error) {
	query := `SELECT company_id, key, value, updated_at, updated_by FROM settings WHERE company_id = $1 ORDER BY key ASC;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list settings", err)
	}
	defer rows.Close()

	settings := make([]domain.Setting, 0)
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.CompanyID, &s.Key, &s.Value, &s.UpdatedAt, &s.UpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan setting row", err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate setting rows", err)
	}
	return settings, nil
}
