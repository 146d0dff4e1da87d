package testutil

import (
	"context"

	"github.com/flexprice/tuition/internal/domain/enrollment"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
)

// InMemoryEnrollmentStore implements enrollment.Repository
type InMemoryEnrollmentStore struct {
	*InMemoryStore[*enrollment.StudentGrade]
}

func NewInMemoryEnrollmentStore() *InMemoryEnrollmentStore {
	return &InMemoryEnrollmentStore{
		InMemoryStore: NewInMemoryStore[*enrollment.StudentGrade](),
	}
}

func (s *InMemoryEnrollmentStore) Create(ctx context.Context, e *enrollment.StudentGrade) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.InMemoryStore.CreateUnique(ctx, e.ID, clone(e), func(existing *enrollment.StudentGrade) bool {
		return existing.StudentID == e.StudentID && existing.SchoolYearID == e.SchoolYearID
	})
}

func (s *InMemoryEnrollmentStore) Get(ctx context.Context, id string) (*enrollment.StudentGrade, error) {
	e, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clone(e), nil
}

func (s *InMemoryEnrollmentStore) List(ctx context.Context, filter *types.EnrollmentFilter) ([]*enrollment.StudentGrade, error) {
	if filter == nil {
		filter = types.NewEnrollmentFilter()
	}
	filter.QueryFilter = types.QueryFilterOrDefault(filter.QueryFilter)

	items, err := s.InMemoryStore.List(ctx, filter, enrollmentFilterFn, func(a, b *enrollment.StudentGrade) bool {
		return a.ID < b.ID
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryEnrollmentStore) GetByStudentAndYear(ctx context.Context, studentID, schoolYearID string) (*enrollment.StudentGrade, error) {
	filter := types.NewEnrollmentFilter()
	filter.StudentID = studentID
	filter.SchoolYearID = schoolYearID

	items, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewErrorf("student %s is not enrolled in school year %s", studentID, schoolYearID).
			WithHint("The student has no grade for this school year").
			Mark(ierr.ErrNotFound)
	}
	return items[0], nil
}

func (s *InMemoryEnrollmentStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.SoftDelete(ctx, id, func(e *enrollment.StudentGrade) {
		markDeleted(ctx, &e.BaseModel)
	})
}

func enrollmentFilterFn(_ context.Context, e *enrollment.StudentGrade, filter interface{}) bool {
	f, ok := filter.(*types.EnrollmentFilter)
	if !ok {
		return true
	}
	if f.SchoolYearID != "" && e.SchoolYearID != f.SchoolYearID {
		return false
	}
	if f.StudentID != "" && e.StudentID != f.StudentID {
		return false
	}
	if f.GradeID != "" && e.GradeID != f.GradeID {
		return false
	}
	if len(f.StudentIDs) > 0 && !lo.Contains(f.StudentIDs, e.StudentID) {
		return false
	}
	return true
}
