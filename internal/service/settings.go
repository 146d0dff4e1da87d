package service

import (
	"context"

	"github.com/flexprice/tuition/internal/api/dto"
	"github.com/flexprice/tuition/internal/cache"
	"github.com/flexprice/tuition/internal/domain/settings"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	typesSettings "github.com/flexprice/tuition/internal/types/settings"
)

// SettingsService is the key-value settings accessor of the billing engine.
// Keys that were never set resolve to their registered default.
type SettingsService interface {
	GetPaymentDueDay(ctx context.Context) (int, error)
	GetDaysUntilOverdue(ctx context.Context) (int, error)
	GetSettingByKey(ctx context.Context, key types.SettingKey) (*dto.SettingResponse, error)
	UpdateSettingByKey(ctx context.Context, key types.SettingKey, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error)
	DeleteSettingByKey(ctx context.Context, key types.SettingKey) error
}

type settingsService struct {
	ServiceParams
	registry *typesSettings.SettingRegistry
}

// cachedSetting is what the settings cache stores for a key
type cachedSetting[T any] struct {
	value     T
	isDefault bool
}

func NewSettingsService(params ServiceParams) SettingsService {
	registry := typesSettings.NewSettingRegistry()

	typesSettings.Register(
		registry,
		types.SettingKeyPaymentDueDay,
		params.Config.Billing.PaymentDueDay,
		types.ValidatePaymentDueDay,
		"Day of month tuition falls due",
	)

	typesSettings.Register(
		registry,
		types.SettingKeyDaysUntilOverdue,
		params.Config.Billing.DaysUntilOverdue,
		validateNonNegativeDays,
		"Days after the due date before a balance is overdue",
	)

	typesSettings.Register(
		registry,
		types.SettingKeySearchSimilarityThreshold,
		0.3,
		validateSimilarityThreshold,
		"Minimum similarity score for fuzzy search matches",
	)

	typesSettings.Register(
		registry,
		types.SettingKeySoftDeleteRetentionDays,
		30,
		validateNonNegativeDays,
		"Days soft deleted rows are kept before permanent removal",
	)

	return &settingsService{
		ServiceParams: params,
		registry:      registry,
	}
}

func validateNonNegativeDays(days int) error {
	if days < 0 {
		return ierr.NewErrorf("days must be zero or more, got %d", days).
			WithHint("Day counts cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func validateSimilarityThreshold(threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return ierr.NewErrorf("similarity threshold %v is out of range", threshold).
			WithHint("Similarity threshold must be between 0 and 1").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func settingCacheKey(key types.SettingKey) string {
	return cache.Key(cache.PrefixSettings, key.String())
}

// GetSetting retrieves a setting with compile-time type safety.
// The boolean reports whether the registered default was returned.
func GetSetting[T any](
	s *settingsService,
	ctx context.Context,
	key types.SettingKey,
) (T, bool, error) {
	var zero T

	settingType, err := typesSettings.GetType[T](s.registry, key)
	if err != nil {
		return zero, false, ierr.WithError(err).
			WithHintf("Unknown setting type for key %s", key).
			Mark(ierr.ErrValidation)
	}

	if s.Cache != nil {
		if cached, found := s.Cache.Get(ctx, settingCacheKey(key)); found {
			if v, ok := cached.(cachedSetting[T]); ok {
				return v.value, v.isDefault, nil
			}
		}
	}

	setting, err := s.SettingsRepo.GetByKey(ctx, key)
	if ierr.IsNotFound(err) {
		s.cacheSetting(ctx, key, cachedSetting[T]{value: settingType.DefaultValue, isDefault: true})
		return settingType.DefaultValue, true, nil
	}
	if err != nil {
		return zero, false, err
	}

	typedValue, err := typesSettings.ConvertToType(setting.Value, settingType.DefaultValue)
	if err != nil {
		return zero, false, ierr.WithError(err).
			WithHintf("Failed to convert setting %s", key).
			Mark(ierr.ErrValidation)
	}

	if err := settingType.Validate(typedValue); err != nil {
		return zero, false, ierr.WithError(err).
			WithHintf("Stored value of setting %s is invalid", key).
			Mark(ierr.ErrValidation)
	}

	s.cacheSetting(ctx, key, cachedSetting[T]{value: typedValue})
	return typedValue, false, nil
}

func (s *settingsService) cacheSetting(ctx context.Context, key types.SettingKey, value interface{}) {
	if s.Cache == nil {
		return
	}
	s.Cache.Set(ctx, settingCacheKey(key), value, cache.DefaultExpiration)
}

func (s *settingsService) invalidate(ctx context.Context, key types.SettingKey) {
	if s.Cache == nil {
		return
	}
	s.Cache.Delete(ctx, settingCacheKey(key))
}

func (s *settingsService) GetPaymentDueDay(ctx context.Context) (int, error) {
	day, _, err := GetSetting[int](s, ctx, types.SettingKeyPaymentDueDay)
	return day, err
}

func (s *settingsService) GetDaysUntilOverdue(ctx context.Context) (int, error) {
	days, _, err := GetSetting[int](s, ctx, types.SettingKeyDaysUntilOverdue)
	return days, err
}

// getSettingByKey is a generic helper that gets a setting and converts it to DTO
func getSettingByKey[T any](s *settingsService, ctx context.Context, key types.SettingKey) (*dto.SettingResponse, error) {
	value, isDefault, err := GetSetting[T](s, ctx, key)
	if err != nil {
		return nil, err
	}
	settingType, err := typesSettings.GetType[T](s.registry, key)
	if err != nil {
		return nil, err
	}
	return &dto.SettingResponse{
		Key:         key.String(),
		Value:       value,
		IsDefault:   isDefault,
		Description: settingType.Description,
	}, nil
}

func (s *settingsService) GetSettingByKey(ctx context.Context, key types.SettingKey) (*dto.SettingResponse, error) {
	switch key {
	case types.SettingKeyPaymentDueDay, types.SettingKeyDaysUntilOverdue, types.SettingKeySoftDeleteRetentionDays:
		return getSettingByKey[int](s, ctx, key)
	case types.SettingKeySearchSimilarityThreshold:
		return getSettingByKey[float64](s, ctx, key)
	default:
		return nil, ierr.NewErrorf("unknown setting key: %s", key).Mark(ierr.ErrValidation)
	}
}

// UpdateSetting stores a value with compile-time type safety
func UpdateSetting[T any](
	s *settingsService,
	ctx context.Context,
	key types.SettingKey,
	value T,
) error {
	settingType, err := typesSettings.GetType[T](s.registry, key)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Unknown setting type for key %s", key).
			Mark(ierr.ErrValidation)
	}

	if err := settingType.Validate(value); err != nil {
		return ierr.WithError(err).
			WithHintf("Validation failed for setting %s", key).
			Mark(ierr.ErrValidation)
	}

	raw, err := typesSettings.ConvertFromType(value)
	if err != nil {
		return err
	}

	setting := &settings.Setting{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTING),
		Key:       key,
		Value:     raw,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	if existing, err := s.SettingsRepo.GetByKey(ctx, key); err == nil {
		setting.ID = existing.ID
		setting.CreatedAt = existing.CreatedAt
		setting.CreatedBy = existing.CreatedBy
	} else if !ierr.IsNotFound(err) {
		return err
	}

	if err := s.SettingsRepo.Upsert(ctx, setting); err != nil {
		return err
	}

	s.invalidate(ctx, key)
	s.Logger.Infow("setting updated", "key", key, "value", raw)
	return nil
}

// updateSettingByKey decodes the request into T and stores it
func updateSettingByKey[T any](s *settingsService, ctx context.Context, key types.SettingKey, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	var zero T
	value, err := typesSettings.ConvertToType(req.Value, zero)
	if err != nil {
		return nil, err
	}
	if err := UpdateSetting(s, ctx, key, value); err != nil {
		return nil, err
	}
	return s.GetSettingByKey(ctx, key)
}

func (s *settingsService) UpdateSettingByKey(ctx context.Context, key types.SettingKey, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	if err := req.Validate(key); err != nil {
		return nil, err
	}

	switch key {
	case types.SettingKeyPaymentDueDay, types.SettingKeyDaysUntilOverdue, types.SettingKeySoftDeleteRetentionDays:
		return updateSettingByKey[int](s, ctx, key, req)
	case types.SettingKeySearchSimilarityThreshold:
		return updateSettingByKey[float64](s, ctx, key, req)
	default:
		return nil, ierr.NewErrorf("unknown setting key: %s", key).Mark(ierr.ErrValidation)
	}
}

// DeleteSettingByKey removes a stored value so the key resolves to its default again
func (s *settingsService) DeleteSettingByKey(ctx context.Context, key types.SettingKey) error {
	if !s.registry.Has(key) {
		return ierr.NewErrorf("unknown setting key: %s", key).Mark(ierr.ErrValidation)
	}

	if err := s.SettingsRepo.DeleteByKey(ctx, key); err != nil {
		return err
	}

	s.invalidate(ctx, key)
	return nil
}
