package testutil

import (
	"context"

	"github.com/flexprice/tuition/internal/domain/schoolyear"
	"github.com/flexprice/tuition/internal/types"
)

// InMemorySchoolYearStore implements schoolyear.Repository
type InMemorySchoolYearStore struct {
	*InMemoryStore[*schoolyear.SchoolYear]
}

func NewInMemorySchoolYearStore() *InMemorySchoolYearStore {
	return &InMemorySchoolYearStore{
		InMemoryStore: NewInMemoryStore[*schoolyear.SchoolYear](),
	}
}

func (s *InMemorySchoolYearStore) Create(ctx context.Context, y *schoolyear.SchoolYear) error {
	if err := y.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, y.ID, clone(y))
}

func (s *InMemorySchoolYearStore) Get(ctx context.Context, id string) (*schoolyear.SchoolYear, error) {
	y, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clone(y), nil
}

func (s *InMemorySchoolYearStore) List(ctx context.Context, filter *types.QueryFilter) ([]*schoolyear.SchoolYear, error) {
	items, err := s.InMemoryStore.List(ctx, types.QueryFilterOrDefault(filter), nil, func(a, b *schoolyear.SchoolYear) bool {
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.After(b.StartDate)
		}
		return a.ID > b.ID
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemorySchoolYearStore) Update(ctx context.Context, y *schoolyear.SchoolYear) error {
	if err := y.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, y.ID, clone(y))
}

func (s *InMemorySchoolYearStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.SoftDelete(ctx, id, func(y *schoolyear.SchoolYear) {
		markDeleted(ctx, &y.BaseModel)
	})
}
