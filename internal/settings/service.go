package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/internal/pricing"
	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	"github.com/sejacapricho/printshop-backend/pkg/enums"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
)

// Pricing and fixed-cost keys in system_config.
const (
	KeyDTFPricePerMeter = "dtf_price_per_meter"
	KeyRollWidth        = "roll_width"
	KeyRollHeight       = "roll_height"
	KeyDefaultMargin    = "default_margin"
	KeyEnergyCost       = "energy_cost_value"
	KeyTransportCost    = "transport_cost_value"
	KeyPackagingCost    = "packaging_cost_value"

	KeyEnergyCostLabel    = "energy_cost_label"
	KeyTransportCostLabel = "transport_cost_label"
	KeyPackagingCostLabel = "packaging_cost_label"
)

const cacheTTL = 5 * time.Minute

type defaultEntry struct {
	Value       string
	ValueType   enums.ConfigValueType
	Category    string
	Description string
}

// defaults mirror the seed rows shipped with the migrations. A missing or
// unparseable row falls back here instead of failing a quote.
var defaults = map[string]defaultEntry{
	KeyDTFPricePerMeter: {"80.0", enums.ConfigValueTypeNumber, "pricing", "Price of one linear meter of DTF film"},
	KeyRollWidth:        {"58.0", enums.ConfigValueTypeNumber, "pricing", "DTF roll width in centimeters"},
	KeyRollHeight:       {"100", enums.ConfigValueTypeNumber, "pricing", "DTF roll height in centimeters"},
	KeyDefaultMargin:    {"50.0", enums.ConfigValueTypeNumber, "pricing", "Default profit margin percent"},
	KeyEnergyCost:       {"1.0", enums.ConfigValueTypeNumber, "fixed_costs", "Shop-wide energy cost per unit"},
	KeyTransportCost:    {"2.0", enums.ConfigValueTypeNumber, "fixed_costs", "Shop-wide transport cost per unit"},
	KeyPackagingCost:    {"1.0", enums.ConfigValueTypeNumber, "fixed_costs", "Shop-wide packaging cost per unit"},

	KeyEnergyCostLabel:    {"Energy (R$)", enums.ConfigValueTypeString, "fixed_costs", "Display label for the energy cost field"},
	KeyTransportCostLabel: {"Transport (R$)", enums.ConfigValueTypeString, "fixed_costs", "Display label for the transport cost field"},
	KeyPackagingCostLabel: {"Packaging (R$)", enums.ConfigValueTypeString, "fixed_costs", "Display label for the packaging cost field"},
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SettingsKey(key string) string
}

// UpdateInput is one key/value pair submitted by the settings screen.
type UpdateInput struct {
	Key         string
	Value       string
	ValueType   enums.ConfigValueType
	Category    string
	Description string
}

// Service exposes typed access to shop-wide configuration.
type Service interface {
	List(ctx context.Context) ([]models.SystemConfig, error)
	GetString(ctx context.Context, key string) (string, error)
	GetNumber(ctx context.Context, key string) (decimal.Decimal, error)
	PricingConfig(ctx context.Context) (pricing.Config, error)
	Update(ctx context.Context, inputs []UpdateInput) error
}

type service struct {
	repo  Repository
	cache cacheStore
}

// NewService builds a settings service. The cache is optional; a nil cache
// reads straight through to the database.
func NewService(repo Repository, cache cacheStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo, cache: cache}, nil
}

func (s *service) List(ctx context.Context) ([]models.SystemConfig, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list system config")
	}
	return entries, nil
}

// GetString resolves a key through the cache, the database, then the default
// table, in that order.
func (s *service) GetString(ctx context.Context, key string) (string, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, s.cache.SettingsKey(key))
		if err == nil {
			return cached, nil
		}
		// A miss and cache trouble read the same here: fall through to the DB.
	}

	entry, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if def, ok := defaults[key]; ok {
				return def.Value, nil
			}
			return "", pkgerrors.New(pkgerrors.CodeRecordNotFound, fmt.Sprintf("config key %q not found", key))
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load system config")
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, s.cache.SettingsKey(key), entry.Value, cacheTTL)
	}
	return entry.Value, nil
}

func (s *service) GetNumber(ctx context.Context, key string) (decimal.Decimal, error) {
	raw, err := s.GetString(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		if def, ok := defaults[key]; ok {
			return decimal.RequireFromString(def.Value), nil
		}
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("config key %q is not numeric", key))
	}
	return value, nil
}

// PricingConfig assembles the engine configuration from system_config.
func (s *service) PricingConfig(ctx context.Context) (pricing.Config, error) {
	cfg := pricing.Config{}
	fields := []struct {
		key    string
		target *decimal.Decimal
	}{
		{KeyDTFPricePerMeter, &cfg.DTFPricePerLinearMeter},
		{KeyRollWidth, &cfg.RollWidthCm},
		{KeyRollHeight, &cfg.RollHeightCm},
		{KeyDefaultMargin, &cfg.DefaultMarginPercent},
		{KeyEnergyCost, &cfg.EnergyCost},
		{KeyTransportCost, &cfg.TransportCost},
		{KeyPackagingCost, &cfg.PackagingCost},
	}
	for _, field := range fields {
		value, err := s.GetNumber(ctx, field.key)
		if err != nil {
			return pricing.Config{}, err
		}
		*field.target = value
	}
	return cfg, nil
}

// Update validates every submitted pair before writing any of them, so a batch
// either applies fully or reports all problems at once.
func (s *service) Update(ctx context.Context, inputs []UpdateInput) error {
	if len(inputs) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no settings provided")
	}

	var verr error
	for _, in := range inputs {
		verr = multierr.Append(verr, validateInput(in))
	}
	if verr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, verr, "invalid settings")
	}

	cacheKeys := make([]string, 0, len(inputs))
	for _, in := range inputs {
		entry := &models.SystemConfig{
			Key:         strings.TrimSpace(in.Key),
			Value:       strings.TrimSpace(in.Value),
			ValueType:   resolveValueType(in),
			Category:    resolveCategory(in),
			Description: resolveDescription(in),
		}
		if err := s.repo.Upsert(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save system config")
		}
		if s.cache != nil {
			cacheKeys = append(cacheKeys, s.cache.SettingsKey(entry.Key))
		}
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, cacheKeys...)
	}
	return nil
}

func validateInput(in UpdateInput) error {
	key := strings.TrimSpace(in.Key)
	if key == "" {
		return fmt.Errorf("config key cannot be empty")
	}
	value := strings.TrimSpace(in.Value)

	valueType := in.ValueType
	if def, ok := defaults[key]; ok {
		valueType = def.ValueType
	}

	switch valueType {
	case enums.ConfigValueTypeNumber:
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", key, value)
		}
		if parsed.IsNegative() {
			return fmt.Errorf("%s: value cannot be negative", key)
		}
		if (key == KeyRollWidth || key == KeyRollHeight) && !parsed.IsPositive() {
			return fmt.Errorf("%s: roll dimensions must be positive", key)
		}
	case enums.ConfigValueTypeBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s: %q is not a boolean", key, value)
		}
	}
	return nil
}

func resolveValueType(in UpdateInput) enums.ConfigValueType {
	if def, ok := defaults[strings.TrimSpace(in.Key)]; ok {
		return def.ValueType
	}
	if in.ValueType.IsValid() {
		return in.ValueType
	}
	return enums.ConfigValueTypeString
}

func resolveCategory(in UpdateInput) string {
	if def, ok := defaults[strings.TrimSpace(in.Key)]; ok && in.Category == "" {
		return def.Category
	}
	if in.Category == "" {
		return "general"
	}
	return in.Category
}

func resolveDescription(in UpdateInput) string {
	if def, ok := defaults[strings.TrimSpace(in.Key)]; ok && in.Description == "" {
		return def.Description
	}
	return in.Description
}
