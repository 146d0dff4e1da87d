package testutil

import (
	"context"
	"strings"

	"github.com/flexprice/tuition/internal/domain/discount"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
)

// InMemoryDiscountStore implements discount.Repository
type InMemoryDiscountStore struct {
	*InMemoryStore[*discount.Discount]
}

func NewInMemoryDiscountStore() *InMemoryDiscountStore {
	return &InMemoryDiscountStore{
		InMemoryStore: NewInMemoryStore[*discount.Discount](),
	}
}

func (s *InMemoryDiscountStore) Create(ctx context.Context, d *discount.Discount) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.CreateUnique(ctx, d.ID, clone(d), func(existing *discount.Discount) bool {
		return strings.EqualFold(existing.Name, d.Name)
	})
}

func (s *InMemoryDiscountStore) Get(ctx context.Context, id string) (*discount.Discount, error) {
	d, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clone(d), nil
}

func (s *InMemoryDiscountStore) GetByIDs(ctx context.Context, ids []string) ([]*discount.Discount, error) {
	if len(ids) == 0 {
		return []*discount.Discount{}, nil
	}
	items, err := s.InMemoryStore.List(ctx, types.NewNoLimitQueryFilter(), func(_ context.Context, d *discount.Discount, _ interface{}) bool {
		return lo.Contains(ids, d.ID)
	}, nil)
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryDiscountStore) List(ctx context.Context, filter *types.QueryFilter) ([]*discount.Discount, error) {
	items, err := s.InMemoryStore.List(ctx, types.QueryFilterOrDefault(filter), nil, func(a, b *discount.Discount) bool {
		return a.Name < b.Name
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryDiscountStore) Update(ctx context.Context, d *discount.Discount) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, d.ID, clone(d))
}

func (s *InMemoryDiscountStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.SoftDelete(ctx, id, func(d *discount.Discount) {
		markDeleted(ctx, &d.BaseModel)
	})
}

// InMemoryStudentDiscountStore implements discount.StudentDiscountRepository
type InMemoryStudentDiscountStore struct {
	*InMemoryStore[*discount.StudentDiscount]
}

func NewInMemoryStudentDiscountStore() *InMemoryStudentDiscountStore {
	return &InMemoryStudentDiscountStore{
		InMemoryStore: NewInMemoryStore[*discount.StudentDiscount](),
	}
}

func (s *InMemoryStudentDiscountStore) Create(ctx context.Context, sd *discount.StudentDiscount) error {
	if err := sd.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, sd.ID, clone(sd))
}

func (s *InMemoryStudentDiscountStore) Get(ctx context.Context, id string) (*discount.StudentDiscount, error) {
	sd, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clone(sd), nil
}

func (s *InMemoryStudentDiscountStore) List(ctx context.Context, filter *types.StudentDiscountFilter) ([]*discount.StudentDiscount, error) {
	if filter == nil {
		filter = types.NewStudentDiscountFilter()
	}
	filter.QueryFilter = types.QueryFilterOrDefault(filter.QueryFilter)

	items, err := s.InMemoryStore.List(ctx, filter, studentDiscountFilterFn, func(a, b *discount.StudentDiscount) bool {
		return a.ID < b.ID
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryStudentDiscountStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.SoftDelete(ctx, id, func(sd *discount.StudentDiscount) {
		markDeleted(ctx, &sd.BaseModel)
	})
}

func studentDiscountFilterFn(_ context.Context, sd *discount.StudentDiscount, filter interface{}) bool {
	f, ok := filter.(*types.StudentDiscountFilter)
	if !ok {
		return true
	}
	if f.StudentID != "" && sd.StudentID != f.StudentID {
		return false
	}
	if len(f.StudentIDs) > 0 && !lo.Contains(f.StudentIDs, sd.StudentID) {
		return false
	}
	if f.DiscountID != "" && sd.DiscountID != f.DiscountID {
		return false
	}
	return true
}
