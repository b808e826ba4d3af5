package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
)

// stubSettingsRepository counts repository hits so cache behavior is
// observable through the service.
type stubSettingsRepository struct {
	settings  map[string]domain.Setting
	findCalls int
}

func newStubSettingsRepository() *stubSettingsRepository {
	return &stubSettingsRepository{settings: make(map[string]domain.Setting)}
}

func (r *stubSettingsRepository) FindSetting(ctx context.Context, companyID, key string) (*domain.Setting, error) {
	r.findCalls++
	setting, ok := r.settings[companyID+"/"+key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &setting, nil
}

func (r *stubSettingsRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	r.settings[setting.CompanyID+"/"+setting.Key] = setting
	return nil
}

func (r *stubSettingsRepository) ListSettings(ctx context.Context, companyID string) ([]domain.Setting, error) {
	var out []domain.Setting
	for _, s := range r.settings {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestSettingsCache_HitWithinTTL(t *testing.T) {
	repo := newStubSettingsRepository()
	repo.settings["c1/"+domain.SettingTaxRate] = domain.Setting{
		CompanyID: "c1",
		Key:       domain.SettingTaxRate,
		Value:     "18",
	}

	clock := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	cache := NewSettingsCache(5 * time.Minute)
	cache.now = func() time.Time { return clock }

	svc := NewSettingsService(repo, cache)
	ctx := context.Background()

	first, err := svc.GetSetting(ctx, "c1", domain.SettingTaxRate, "u1")
	require.NoError(t, err)
	assert.Equal(t, "18", first.Value)
	assert.Equal(t, 1, repo.findCalls)

	// Just inside the TTL: served from cache.
	clock = clock.Add(4 * time.Minute)
	second, err := svc.GetSetting(ctx, "c1", domain.SettingTaxRate, "u1")
	require.NoError(t, err)
	assert.Equal(t, "18", second.Value)
	assert.Equal(t, 1, repo.findCalls)
}

func TestSettingsCache_ExpiryRefetches(t *testing.T) {
	repo := newStubSettingsRepository()
	repo.settings["c1/"+domain.SettingCurrency] = domain.Setting{
		CompanyID: "c1",
		Key:       domain.SettingCurrency,
		Value:     "USD",
	}

	clock := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	cache := NewSettingsCache(5 * time.Minute)
	cache.now = func() time.Time { return clock }

	svc := NewSettingsService(repo, cache)
	ctx := context.Background()

	_, err := svc.GetSetting(ctx, "c1", domain.SettingCurrency, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls)

	clock = clock.Add(6 * time.Minute)
	_, err = svc.GetSetting(ctx, "c1", domain.SettingCurrency, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.findCalls)
}

func TestSettingsCache_InvalidatedOnWrite(t *testing.T) {
	repo := newStubSettingsRepository()
	repo.settings["c1/"+domain.SettingTaxRate] = domain.Setting{
		CompanyID: "c1",
		Key:       domain.SettingTaxRate,
		Value:     "18",
	}

	cache := NewSettingsCache(time.Hour)
	svc := NewSettingsService(repo, cache)
	ctx := context.Background()

	first, err := svc.GetSetting(ctx, "c1", domain.SettingTaxRate, "u1")
	require.NoError(t, err)
	assert.Equal(t, "18", first.Value)

	_, err = svc.SetSetting(ctx, "c1", domain.SettingTaxRate, "20", "u1")
	require.NoError(t, err)

	// The write dropped the cached entry, so the new value is visible at once.
	after, err := svc.GetSetting(ctx, "c1", domain.SettingTaxRate, "u1")
	require.NoError(t, err)
	assert.Equal(t, "20", after.Value)
}

func TestSettingsCache_ScopedPerCompany(t *testing.T) {
	cache := NewSettingsCache(time.Hour)
	cache.put(domain.Setting{CompanyID: "c1", Key: domain.SettingTaxRate, Value: "18"})
	cache.put(domain.Setting{CompanyID: "c2", Key: domain.SettingTaxRate, Value: "7"})

	s1, ok := cache.get("c1", domain.SettingTaxRate)
	require.True(t, ok)
	assert.Equal(t, "18", s1.Value)

	s2, ok := cache.get("c2", domain.SettingTaxRate)
	require.True(t, ok)
	assert.Equal(t, "7", s2.Value)

	cache.invalidate("c1", domain.SettingTaxRate)
	_, ok = cache.get("c1", domain.SettingTaxRate)
	assert.False(t, ok)
	_, ok = cache.get("c2", domain.SettingTaxRate)
	assert.True(t, ok)
}

func TestGetSetting_UnknownKey(t *testing.T) {
	repo := newStubSettingsRepository()
	svc := NewSettingsService(repo, NewSettingsCache(time.Minute))

	_, err := svc.GetSetting(context.Background(), "c1", "no_such_key", "u1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
