package services

import (
	"context"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// SettingsSvc serves company configuration through a TTL cache.
type SettingsSvc interface {
	// GetSetting returns a setting value, from cache when fresh.
	GetSetting(ctx context.Context, companyID, key string, userID string) (*domain.Setting, error)

	// SetSetting writes a setting and invalidates its cache entry.
	SetSetting(ctx context.Context, companyID, key, value string, userID string) (*domain.Setting, error)

	// ListSettings returns all settings of a company, bypassing the cache.
	ListSettings(ctx context.Context, companyID string, userID string) ([]domain.Setting, error)
}
