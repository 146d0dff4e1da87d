package testutil

import (
	"context"
	"strings"

	"github.com/flexprice/tuition/internal/domain/grade"
	"github.com/flexprice/tuition/internal/types"
)

// InMemoryGradeStore implements grade.Repository
type InMemoryGradeStore struct {
	*InMemoryStore[*grade.Grade]
}

func NewInMemoryGradeStore() *InMemoryGradeStore {
	return &InMemoryGradeStore{
		InMemoryStore: NewInMemoryStore[*grade.Grade](),
	}
}

func (s *InMemoryGradeStore) Create(ctx context.Context, g *grade.Grade) error {
	if err := g.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.CreateUnique(ctx, g.ID, clone(g), func(existing *grade.Grade) bool {
		return strings.EqualFold(existing.Name, g.Name)
	})
}

func (s *InMemoryGradeStore) Get(ctx context.Context, id string) (*grade.Grade, error) {
	g, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clone(g), nil
}

func (s *InMemoryGradeStore) List(ctx context.Context, filter *types.QueryFilter) ([]*grade.Grade, error) {
	items, err := s.InMemoryStore.List(ctx, types.QueryFilterOrDefault(filter), nil, func(a, b *grade.Grade) bool {
		return a.Name < b.Name
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryGradeStore) Update(ctx context.Context, g *grade.Grade) error {
	if err := g.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, g.ID, clone(g))
}

func (s *InMemoryGradeStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.SoftDelete(ctx, id, func(g *grade.Grade) {
		markDeleted(ctx, &g.BaseModel)
	})
}
