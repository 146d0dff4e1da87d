package testutil

import (
	"context"

	"github.com/flexprice/tuition/internal/domain/payment"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Payment]
}

func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.Payment](),
	}
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, p.ID, clone(p))
}

func (s *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clone(p), nil
}

func (s *InMemoryPaymentStore) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	if filter == nil {
		filter = types.NewPaymentFilter()
	}
	filter.QueryFilter = types.QueryFilterOrDefault(filter.QueryFilter)

	items, err := s.InMemoryStore.List(ctx, filter, paymentFilterFn, func(a, b *payment.Payment) bool {
		return newestFirst(a.BaseModel, b.BaseModel, a.ID, b.ID)
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryPaymentStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.SoftDelete(ctx, id, func(p *payment.Payment) {
		markDeleted(ctx, &p.BaseModel)
	})
}

func paymentFilterFn(_ context.Context, p *payment.Payment, filter interface{}) bool {
	f, ok := filter.(*types.PaymentFilter)
	if !ok {
		return true
	}
	if f.StudentID != "" && p.StudentID != f.StudentID {
		return false
	}
	if f.SchoolMonthID != "" && p.SchoolMonthID != f.SchoolMonthID {
		return false
	}
	if len(f.SchoolMonthIDs) > 0 && !lo.Contains(f.SchoolMonthIDs, p.SchoolMonthID) {
		return false
	}
	if f.VerifiedOnly && !p.CountsTowardRevenue() {
		return false
	}
	return true
}

// InMemoryPaymentMethodStore implements payment.MethodRepository
type InMemoryPaymentMethodStore struct {
	*InMemoryStore[*payment.PaymentMethod]
}

func NewInMemoryPaymentMethodStore() *InMemoryPaymentMethodStore {
	return &InMemoryPaymentMethodStore{
		InMemoryStore: NewInMemoryStore[*payment.PaymentMethod](),
	}
}

func (s *InMemoryPaymentMethodStore) Create(ctx context.Context, m *payment.PaymentMethod) error {
	return s.InMemoryStore.Create(ctx, m.ID, clone(m))
}

func (s *InMemoryPaymentMethodStore) Get(ctx context.Context, id string) (*payment.PaymentMethod, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clone(m), nil
}

func (s *InMemoryPaymentMethodStore) List(ctx context.Context, filter *types.QueryFilter) ([]*payment.PaymentMethod, error) {
	items, err := s.InMemoryStore.List(ctx, types.QueryFilterOrDefault(filter), nil, func(a, b *payment.PaymentMethod) bool {
		return a.Name < b.Name
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryPaymentMethodStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.SoftDelete(ctx, id, func(m *payment.PaymentMethod) {
		markDeleted(ctx, &m.BaseModel)
	})
}
