package testutil

import (
	"context"
	"sort"
	"sync"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
)

// FilterFunc is a generic filter function type
type FilterFunc[T any] func(ctx context.Context, item T, filter interface{}) bool

// SortFunc is a generic sort function type
type SortFunc[T any] func(i, j T) bool

// SoftDeletable is implemented by every entity through the embedded types.BaseModel
type SoftDeletable interface {
	IsDeleted() bool
}

// InMemoryStore implements a generic in-memory store.
// Soft deleted items are invisible to Get, Update and List unless the list filter
// asks for deleted rows, mirroring the postgres repositories.
type InMemoryStore[T SoftDeletable] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewInMemoryStore creates a new InMemoryStore
func NewInMemoryStore[T SoftDeletable]() *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items: make(map[string]T),
	}
}

// Create adds a new item to the store
func (s *InMemoryStore[T]) Create(_ context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ierr.NewErrorf("item %s already exists", id).
			Mark(ierr.ErrAlreadyExists)
	}

	s.items[id] = item
	return nil
}

// CreateUnique adds item unless a live item already matches conflict
func (s *InMemoryStore[T]) CreateUnique(_ context.Context, id string, item T, conflict func(existing T) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ierr.NewErrorf("item %s already exists", id).
			Mark(ierr.ErrAlreadyExists)
	}
	for _, existing := range s.items {
		if !existing.IsDeleted() && conflict(existing) {
			return ierr.NewError("a live item with the same unique key already exists").
				WithHint("The value must be unique").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	s.items[id] = item
	return nil
}

// Get retrieves a live item by ID
func (s *InMemoryStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if item, exists := s.items[id]; exists && !item.IsDeleted() {
		return item, nil
	}

	var zero T
	return zero, ierr.NewErrorf("item %s not found", id).
		Mark(ierr.ErrNotFound)
}

// List retrieves items based on filter
func (s *InMemoryStore[T]) List(ctx context.Context, filter interface{}, filterFn FilterFunc[T], sortFn SortFunc[T]) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	includeDeleted := false
	if f, ok := filter.(types.BaseFilter); ok {
		includeDeleted = f.GetIncludeDeleted()
	}

	result := make([]T, 0)
	for _, item := range s.items {
		if item.IsDeleted() && !includeDeleted {
			continue
		}
		if filterFn == nil || filterFn(ctx, item, filter) {
			result = append(result, item)
		}
	}

	if sortFn != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return sortFn(result[i], result[j])
		})
	}

	// Apply pagination if filter implements BaseFilter
	if f, ok := filter.(types.BaseFilter); ok && !f.IsUnlimited() {
		start := f.GetOffset()
		if start >= len(result) {
			return []T{}, nil
		}

		end := start + f.GetLimit()
		if end > len(result) {
			end = len(result)
		}
		return result[start:end], nil
	}

	return result, nil
}

// Update updates an existing live item
func (s *InMemoryStore[T]) Update(_ context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.items[id]; !exists || existing.IsDeleted() {
		return ierr.NewErrorf("item %s not found", id).
			Mark(ierr.ErrNotFound)
	}

	s.items[id] = item
	return nil
}

// SoftDelete marks a live item as deleted through markDeleted
func (s *InMemoryStore[T]) SoftDelete(_ context.Context, id string, markDeleted func(item T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists || item.IsDeleted() {
		return ierr.NewErrorf("item %s not found", id).
			Mark(ierr.ErrNotFound)
	}

	markDeleted(item)
	return nil
}

// HardDelete removes an item that was soft deleted before
func (s *InMemoryStore[T]) HardDelete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists {
		return ierr.NewErrorf("item %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	if !item.IsDeleted() {
		return ierr.NewErrorf("item %s is not soft deleted", id).
			WithHint("Delete the record before removing it permanently").
			Mark(ierr.ErrInvalidOperation)
	}

	delete(s.items, id)
	return nil
}

// Clear removes all items from the store
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}

// clone returns a shallow copy so callers cannot mutate stored items
func clone[E any](item *E) *E {
	if item == nil {
		return nil
	}
	c := *item
	return &c
}

func cloneAll[E any](items []*E) []*E {
	out := make([]*E, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}

// markDeleted stamps the soft delete time on a base model
func markDeleted(ctx context.Context, base *types.BaseModel) {
	now := timeNow()
	base.DeletedAt = &now
	base.UpdatedAt = now
	base.UpdatedBy = types.GetUserID(ctx)
}

// newestFirst orders by creation time descending, then id descending
func newestFirst(aCreated, bCreated types.BaseModel, aID, bID string) bool {
	if !aCreated.CreatedAt.Equal(bCreated.CreatedAt) {
		return aCreated.CreatedAt.After(bCreated.CreatedAt)
	}
	return aID > bID
}
