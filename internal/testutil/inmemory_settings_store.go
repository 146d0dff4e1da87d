package testutil

import (
	"context"

	domainSettings "github.com/flexprice/tuition/internal/domain/settings"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
)

// InMemorySettingsStore implements an in-memory settings repository for testing.
// Settings are keyed by their setting key.
type InMemorySettingsStore struct {
	*InMemoryStore[*domainSettings.Setting]
}

// NewInMemorySettingsStore creates a new in-memory settings store
func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		InMemoryStore: NewInMemoryStore[*domainSettings.Setting](),
	}
}

// GetByKey retrieves a setting by key
func (s *InMemorySettingsStore) GetByKey(ctx context.Context, key types.SettingKey) (*domainSettings.Setting, error) {
	setting, err := s.InMemoryStore.Get(ctx, key.String())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Setting %s has not been set", key).
			Mark(ierr.ErrNotFound)
	}
	return clone(setting), nil
}

// Upsert creates or replaces the setting stored under setting.Key
func (s *InMemorySettingsStore) Upsert(_ context.Context, setting *domainSettings.Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[setting.Key.String()] = clone(setting)
	return nil
}

// DeleteByKey removes a setting so that the key falls back to its default
func (s *InMemorySettingsStore) DeleteByKey(_ context.Context, key types.SettingKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key.String()]; !exists {
		return ierr.NewError("setting not found").
			WithHintf("Setting %s was not found", key).
			WithReportableDetails(map[string]any{
				"key": key,
			}).
			Mark(ierr.ErrNotFound)
	}
	delete(s.items, key.String())
	return nil
}

// List returns every stored setting ordered by key
func (s *InMemorySettingsStore) List(ctx context.Context) ([]*domainSettings.Setting, error) {
	items, err := s.InMemoryStore.List(ctx, nil, nil, func(a, b *domainSettings.Setting) bool {
		return a.Key < b.Key
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}
