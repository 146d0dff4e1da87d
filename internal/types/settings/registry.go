package settings

import (
	"sort"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
)

// SettingType describes one tunable of the billing engine: its key, the value
// used while nothing is stored, and the check a stored value must pass.
type SettingType[T any] struct {
	Key          types.SettingKey
	DefaultValue T
	Validator    func(T) error
	Description  string
}

func (s SettingType[T]) Validate(value T) error {
	if s.Validator == nil {
		return nil
	}
	return s.Validator(value)
}

// SettingRegistry holds the known settings keyed by SettingKey. It is filled
// while the settings service is built and read-only afterwards.
type SettingRegistry struct {
	types map[types.SettingKey]interface{}
}

func NewSettingRegistry() *SettingRegistry {
	return &SettingRegistry{types: make(map[types.SettingKey]interface{})}
}

// Register adds the definition of key with its default and validator
func Register[T any](r *SettingRegistry, key types.SettingKey, defaultValue T, validator func(T) error, description string) {
	r.types[key] = SettingType[T]{
		Key:          key,
		DefaultValue: defaultValue,
		Validator:    validator,
		Description:  description,
	}
}

// GetType looks up key and asserts it was registered with value type T
func GetType[T any](r *SettingRegistry, key types.SettingKey) (SettingType[T], error) {
	typ, exists := r.types[key]
	if !exists {
		return SettingType[T]{}, ierr.NewErrorf("unknown setting key: %s", key).
			WithHintf("Setting %s is not supported", key).
			Mark(ierr.ErrValidation)
	}

	settingType, ok := typ.(SettingType[T])
	if !ok {
		return SettingType[T]{}, ierr.NewErrorf("setting %s is registered as %T", key, typ).
			Mark(ierr.ErrSystem)
	}
	return settingType, nil
}

func (r *SettingRegistry) Has(key types.SettingKey) bool {
	_, exists := r.types[key]
	return exists
}

// Keys returns the registered keys in lexical order
func (r *SettingRegistry) Keys() []types.SettingKey {
	keys := lo.Keys(r.types)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
