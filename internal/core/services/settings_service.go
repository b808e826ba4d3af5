package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
)

type settingsCacheEntry struct {
	setting   domain.Setting
	fetchedAt time.Time
}

// SettingsCache is an in-process TTL cache over company settings. Entries are
// invalidated on write, so a stale read lasts at most one TTL and only on
// instances other than the writer.
type SettingsCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]settingsCacheEntry
	now     func() time.Time
}

// NewSettingsCache creates a settings cache with the given TTL.
func NewSettingsCache(ttl time.Duration) *SettingsCache {
	return &SettingsCache{
		ttl:     ttl,
		entries: make(map[string]settingsCacheEntry),
		now:     time.Now,
	}
}

func settingsCacheKey(companyID, key string) string {
	return companyID + "/" + key
}

func (c *SettingsCache) get(companyID, key string) (domain.Setting, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[settingsCacheKey(companyID, key)]
	if !ok || c.now().Sub(entry.fetchedAt) > c.ttl {
		return domain.Setting{}, false
	}
	return entry.setting, true
}

func (c *SettingsCache) put(setting domain.Setting) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[settingsCacheKey(setting.CompanyID, setting.Key)] = settingsCacheEntry{
		setting:   setting,
		fetchedAt: c.now(),
	}
}

func (c *SettingsCache) invalidate(companyID, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, settingsCacheKey(companyID, key))
}

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepository
	cache        *SettingsCache
}

// SettingsServiceOption configures the settings service.
type SettingsServiceOption func(*settingsService)

// WithSettingsAuthorizer wires the company authorizer.
func WithSettingsAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) SettingsServiceOption {
	return func(s *settingsService) {
		s.Authorizer = authorizer
	}
}

// NewSettingsService creates a new settings service around the given cache.
func NewSettingsService(settingsRepo portsrepo.SettingsRepository, cache *SettingsCache, opts ...SettingsServiceOption) portssvc.SettingsSvc {
	svc := &settingsService{
		settingsRepo: settingsRepo,
		cache:        cache,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.SettingsSvc = (*settingsService)(nil)

func (s *settingsService) GetSetting(ctx context.Context, companyID, key string, userID string) (*domain.Setting, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapViewReports); err != nil {
		return nil, err
	}

	if cached, ok := s.cache.get(companyID, key); ok {
		s.LogDebug(ctx, "Settings cache hit", slog.String("key", key))
		return &cached, nil
	}

	setting, err := s.settingsRepo.FindSetting(ctx, companyID, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: setting %s", apperrors.ErrNotFound, key)
		}
		s.LogError(ctx, err, "Failed to find setting", slog.String("key", key))
		return nil, fmt.Errorf("failed to find setting: %w", err)
	}

	s.cache.put(*setting)
	return setting, nil
}

func (s *settingsService) SetSetting(ctx context.Context, companyID, key, value string, userID string) (*domain.Setting, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapManageSettings); err != nil {
		return nil, err
	}

	setting := domain.Setting{
		CompanyID: companyID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
		UpdatedBy: userID,
	}

	if err := s.settingsRepo.UpsertSetting(ctx, setting); err != nil {
		s.LogError(ctx, err, "Failed to upsert setting", slog.String("key", key))
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}

	s.cache.invalidate(companyID, key)

	s.LogInfo(ctx, "Setting updated", slog.String("key", key))
	return &setting, nil
}

func (s *settingsService) ListSettings(ctx context.Context, companyID string, userID string) ([]domain.Setting, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapViewReports); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.ListSettings(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list settings")
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}
