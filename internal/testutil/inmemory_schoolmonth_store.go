package testutil

import (
	"context"

	"github.com/flexprice/tuition/internal/domain/schoolmonth"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
)

// InMemorySchoolMonthStore implements schoolmonth.Repository
type InMemorySchoolMonthStore struct {
	*InMemoryStore[*schoolmonth.SchoolMonth]
}

func NewInMemorySchoolMonthStore() *InMemorySchoolMonthStore {
	return &InMemorySchoolMonthStore{
		InMemoryStore: NewInMemoryStore[*schoolmonth.SchoolMonth](),
	}
}

func (s *InMemorySchoolMonthStore) Create(ctx context.Context, m *schoolmonth.SchoolMonth) error {
	return s.InMemoryStore.CreateUnique(ctx, m.ID, clone(m), func(existing *schoolmonth.SchoolMonth) bool {
		return existing.SchoolYearID == m.SchoolYearID && existing.MonthNumber == m.MonthNumber
	})
}

func (s *InMemorySchoolMonthStore) Get(ctx context.Context, id string) (*schoolmonth.SchoolMonth, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clone(m), nil
}

func (s *InMemorySchoolMonthStore) List(ctx context.Context, filter *types.SchoolMonthFilter) ([]*schoolmonth.SchoolMonth, error) {
	if filter == nil {
		filter = types.NewSchoolMonthFilter()
	}
	filter.QueryFilter = types.QueryFilterOrDefault(filter.QueryFilter)

	items, err := s.InMemoryStore.List(ctx, filter, schoolMonthFilterFn, func(a, b *schoolmonth.SchoolMonth) bool {
		if a.SchoolYearID != b.SchoolYearID {
			return a.SchoolYearID < b.SchoolYearID
		}
		return a.MonthNumber < b.MonthNumber
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemorySchoolMonthStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.SoftDelete(ctx, id, func(m *schoolmonth.SchoolMonth) {
		markDeleted(ctx, &m.BaseModel)
	})
}

func schoolMonthFilterFn(_ context.Context, m *schoolmonth.SchoolMonth, filter interface{}) bool {
	f, ok := filter.(*types.SchoolMonthFilter)
	if !ok {
		return true
	}
	if f.SchoolYearID != "" && m.SchoolYearID != f.SchoolYearID {
		return false
	}
	if len(f.SchoolMonthIDs) > 0 && !lo.Contains(f.SchoolMonthIDs, m.ID) {
		return false
	}
	return true
}
