package testutil

import (
	"context"
	"strings"

	"github.com/flexprice/tuition/internal/domain/monthlyfee"
	"github.com/flexprice/tuition/internal/types"
)

// InMemoryMonthlyFeeStore implements monthlyfee.Repository
type InMemoryMonthlyFeeStore struct {
	*InMemoryStore[*monthlyfee.MonthlyFee]
}

func NewInMemoryMonthlyFeeStore() *InMemoryMonthlyFeeStore {
	return &InMemoryMonthlyFeeStore{
		InMemoryStore: NewInMemoryStore[*monthlyfee.MonthlyFee](),
	}
}

func (s *InMemoryMonthlyFeeStore) Create(ctx context.Context, f *monthlyfee.MonthlyFee) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.CreateUnique(ctx, f.ID, clone(f), func(existing *monthlyfee.MonthlyFee) bool {
		return strings.EqualFold(existing.Description, f.Description)
	})
}

func (s *InMemoryMonthlyFeeStore) Get(ctx context.Context, id string) (*monthlyfee.MonthlyFee, error) {
	f, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clone(f), nil
}

func (s *InMemoryMonthlyFeeStore) List(ctx context.Context, filter *types.QueryFilter) ([]*monthlyfee.MonthlyFee, error) {
	items, err := s.InMemoryStore.List(ctx, types.QueryFilterOrDefault(filter), nil, func(a, b *monthlyfee.MonthlyFee) bool {
		return newestFirst(a.BaseModel, b.BaseModel, a.ID, b.ID)
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryMonthlyFeeStore) Update(ctx context.Context, f *monthlyfee.MonthlyFee) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, f.ID, clone(f))
}

func (s *InMemoryMonthlyFeeStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.SoftDelete(ctx, id, func(f *monthlyfee.MonthlyFee) {
		markDeleted(ctx, &f.BaseModel)
	})
}

// InMemoryFeeOnGradeStore implements monthlyfee.AssignmentRepository
type InMemoryFeeOnGradeStore struct {
	*InMemoryStore[*monthlyfee.FeeOnGrade]
}

func NewInMemoryFeeOnGradeStore() *InMemoryFeeOnGradeStore {
	return &InMemoryFeeOnGradeStore{
		InMemoryStore: NewInMemoryStore[*monthlyfee.FeeOnGrade](),
	}
}

func (s *InMemoryFeeOnGradeStore) Create(ctx context.Context, a *monthlyfee.FeeOnGrade) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, a.ID, clone(a))
}

func (s *InMemoryFeeOnGradeStore) Get(ctx context.Context, id string) (*monthlyfee.FeeOnGrade, error) {
	a, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clone(a), nil
}

func (s *InMemoryFeeOnGradeStore) List(ctx context.Context, filter *types.FeeOnGradeFilter) ([]*monthlyfee.FeeOnGrade, error) {
	if filter == nil {
		filter = types.NewFeeOnGradeFilter()
	}
	filter.QueryFilter = types.QueryFilterOrDefault(filter.QueryFilter)

	items, err := s.InMemoryStore.List(ctx, filter, feeOnGradeFilterFn, func(a, b *monthlyfee.FeeOnGrade) bool {
		return newestFirst(a.BaseModel, b.BaseModel, a.ID, b.ID)
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryFeeOnGradeStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.SoftDelete(ctx, id, func(a *monthlyfee.FeeOnGrade) {
		markDeleted(ctx, &a.BaseModel)
	})
}

func feeOnGradeFilterFn(_ context.Context, a *monthlyfee.FeeOnGrade, filter interface{}) bool {
	f, ok := filter.(*types.FeeOnGradeFilter)
	if !ok {
		return true
	}
	if f.GradeID != "" && a.GradeID != f.GradeID {
		return false
	}
	if f.MonthlyFeeID != "" && a.MonthlyFeeID != f.MonthlyFeeID {
		return false
	}
	return true
}
