package settings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	"github.com/sejacapricho/printshop-backend/pkg/enums"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
)

type stubRepo struct {
	entries map[string]models.SystemConfig
	saved   []models.SystemConfig
	findErr error
}

func newStubRepo(entries ...models.SystemConfig) *stubRepo {
	m := map[string]models.SystemConfig{}
	for _, e := range entries {
		m[e.Key] = e
	}
	return &stubRepo{entries: m}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) FindAll(ctx context.Context) ([]models.SystemConfig, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	out := make([]models.SystemConfig, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out, nil
}

func (s *stubRepo) FindByKey(ctx context.Context, key string) (*models.SystemConfig, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	entry, ok := s.entries[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &entry, nil
}

func (s *stubRepo) Upsert(ctx context.Context, entry *models.SystemConfig) error {
	if s.entries == nil {
		s.entries = map[string]models.SystemConfig{}
	}
	s.entries[entry.Key] = *entry
	s.saved = append(s.saved, *entry)
	return nil
}

type stubCache struct {
	values  map[string]string
	deleted []string
}

func (c *stubCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return "", gorm.ErrRecordNotFound
}

func (c *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.values == nil {
		c.values = map[string]string{}
	}
	c.values[key] = value.(string)
	return nil
}

func (c *stubCache) Del(ctx context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *stubCache) SettingsKey(key string) string { return "ps:settings:" + key }

func TestPricingConfigUsesStoredValues(t *testing.T) {
	repo := newStubRepo(
		models.SystemConfig{Key: KeyDTFPricePerMeter, Value: "95.5", ValueType: enums.ConfigValueTypeNumber},
		models.SystemConfig{Key: KeyRollWidth, Value: "60", ValueType: enums.ConfigValueTypeNumber},
	)
	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	cfg, err := svc.PricingConfig(context.Background())
	require.NoError(t, err)

	assert.True(t, cfg.DTFPricePerLinearMeter.Equal(decimal.RequireFromString("95.5")))
	assert.True(t, cfg.RollWidthCm.Equal(decimal.RequireFromString("60")))
	// Keys without a stored row resolve to the shipped defaults.
	assert.True(t, cfg.RollHeightCm.Equal(decimal.RequireFromString("100")))
	assert.True(t, cfg.DefaultMarginPercent.Equal(decimal.RequireFromString("50.0")))
	assert.True(t, cfg.TransportCost.Equal(decimal.RequireFromString("2.0")))
}

func TestGetNumberFallsBackOnGarbage(t *testing.T) {
	repo := newStubRepo(models.SystemConfig{Key: KeyDefaultMargin, Value: "not-a-number", ValueType: enums.ConfigValueTypeNumber})
	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	value, err := svc.GetNumber(context.Background(), KeyDefaultMargin)
	require.NoError(t, err)
	assert.True(t, value.Equal(decimal.RequireFromString("50.0")))
}

func TestGetStringUnknownKeyNotFound(t *testing.T) {
	svc, err := NewService(newStubRepo(), nil)
	require.NoError(t, err)

	_, err = svc.GetString(context.Background(), "nonexistent_key")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeRecordNotFound, pkgerrors.As(err).Code())
}

func TestGetStringPopulatesAndReadsCache(t *testing.T) {
	repo := newStubRepo(models.SystemConfig{Key: KeyRollWidth, Value: "58.0", ValueType: enums.ConfigValueTypeNumber})
	cache := &stubCache{}
	svc, err := NewService(repo, cache)
	require.NoError(t, err)

	value, err := svc.GetString(context.Background(), KeyRollWidth)
	require.NoError(t, err)
	assert.Equal(t, "58.0", value)
	assert.Equal(t, "58.0", cache.values[cache.SettingsKey(KeyRollWidth)])

	// Second read is served from the cache even if the row changes underneath.
	repo.entries[KeyRollWidth] = models.SystemConfig{Key: KeyRollWidth, Value: "99"}
	value, err = svc.GetString(context.Background(), KeyRollWidth)
	require.NoError(t, err)
	assert.Equal(t, "58.0", value)
}

func TestUpdateRejectsBatchWithAnyInvalidValue(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	err = svc.Update(context.Background(), []UpdateInput{
		{Key: KeyDefaultMargin, Value: "45"},
		{Key: KeyRollWidth, Value: "0"},
		{Key: KeyEnergyCost, Value: "abc"},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Empty(t, repo.saved, "no writes may happen when validation fails")
}

func TestUpdateWritesAndInvalidatesCache(t *testing.T) {
	repo := newStubRepo()
	cache := &stubCache{values: map[string]string{"ps:settings:" + KeyDefaultMargin: "50.0"}}
	svc, err := NewService(repo, cache)
	require.NoError(t, err)

	err = svc.Update(context.Background(), []UpdateInput{
		{Key: KeyDefaultMargin, Value: "42.5"},
	})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "42.5", repo.saved[0].Value)
	assert.Equal(t, enums.ConfigValueTypeNumber, repo.saved[0].ValueType)
	assert.Equal(t, "pricing", repo.saved[0].Category)
	assert.Contains(t, cache.deleted, cache.SettingsKey(KeyDefaultMargin))
}

func TestUpdateRejectsEmptyBatch(t *testing.T) {
	svc, err := NewService(newStubRepo(), nil)
	require.NoError(t, err)

	err = svc.Update(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
