package testutil

import (
	"context"
	"strings"

	"github.com/flexprice/tuition/internal/domain/student"
	"github.com/flexprice/tuition/internal/types"
)

// InMemoryStudentStore implements student.Repository
type InMemoryStudentStore struct {
	*InMemoryStore[*student.Student]
}

func NewInMemoryStudentStore() *InMemoryStudentStore {
	return &InMemoryStudentStore{
		InMemoryStore: NewInMemoryStore[*student.Student](),
	}
}

func (s *InMemoryStudentStore) Create(ctx context.Context, st *student.Student) error {
	if err := st.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.CreateUnique(ctx, st.ID, clone(st), func(existing *student.Student) bool {
		return strings.EqualFold(existing.Name, st.Name)
	})
}

func (s *InMemoryStudentStore) Get(ctx context.Context, id string) (*student.Student, error) {
	st, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clone(st), nil
}

func (s *InMemoryStudentStore) List(ctx context.Context, filter *types.QueryFilter) ([]*student.Student, error) {
	items, err := s.InMemoryStore.List(ctx, types.QueryFilterOrDefault(filter), nil, func(a, b *student.Student) bool {
		return a.Name < b.Name
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryStudentStore) Update(ctx context.Context, st *student.Student) error {
	if err := st.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, st.ID, clone(st))
}

func (s *InMemoryStudentStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.SoftDelete(ctx, id, func(st *student.Student) {
		markDeleted(ctx, &st.BaseModel)
	})
}
