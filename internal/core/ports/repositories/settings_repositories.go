package repositories

import (
	"context"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// SettingsRepository persists company-scoped configuration entries.
type SettingsRepository interface {
	// FindSetting retrieves one setting. Returns apperrors.ErrNotFound when
	// the key is absent.
	FindSetting(ctx context.Context, companyID, key string) (*domain.Setting, error)

	// UpsertSetting inserts or replaces a setting value.
	UpsertSetting(ctx context.Context, setting domain.Setting) error

	// ListSettings returns all settings of a company.
	ListSettings(ctx context.Context, companyID string) ([]domain.Setting, error)
}
