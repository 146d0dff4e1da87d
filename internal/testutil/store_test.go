package testutil

import (
	"testing"

	"github.com/flexprice/tuition/internal/domain/enrollment"
	"github.com/flexprice/tuition/internal/domain/grade"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_SoftDeleteLifecycle(t *testing.T) {
	ctx := SetupContext()
	store := NewInMemoryGradeStore()

	g := &grade.Grade{ID: "grade_1", Name: "Grade 1", BaseModel: types.GetDefaultBaseModel(ctx)}
	require.NoError(t, store.Create(ctx, g))

	err := store.HardDelete(ctx, g.ID)
	assert.True(t, ierr.IsInvalidOperation(err), "hard delete of a live row: %v", err)

	require.NoError(t, store.Delete(ctx, g.ID))
	_, err = store.Get(ctx, g.ID)
	assert.True(t, ierr.IsNotFound(err))
	assert.True(t, ierr.IsNotFound(store.Delete(ctx, g.ID)))

	live, err := store.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, live)

	all, err := store.List(ctx, types.NewNoLimitQueryFilter().WithDeleted())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].DeletedAt)
	assert.Equal(t, types.DefaultUserID, all[0].UpdatedBy)

	// the name is free again once the old row is deleted
	require.NoError(t, store.Create(ctx, &grade.Grade{ID: "grade_2", Name: "grade 1", BaseModel: types.GetDefaultBaseModel(ctx)}))

	require.NoError(t, store.HardDelete(ctx, g.ID))
	assert.True(t, ierr.IsNotFound(store.HardDelete(ctx, g.ID)))
}

func TestInMemoryStore_Uniqueness(t *testing.T) {
	ctx := SetupContext()
	store := NewInMemoryGradeStore()

	require.NoError(t, store.Create(ctx, &grade.Grade{ID: "grade_1", Name: "Grade 1"}))
	assert.True(t, ierr.IsAlreadyExists(store.Create(ctx, &grade.Grade{ID: "grade_1", Name: "Grade 2"})))
	assert.True(t, ierr.IsAlreadyExists(store.Create(ctx, &grade.Grade{ID: "grade_3", Name: "GRADE 1"})))
	assert.True(t, ierr.IsValidation(store.Create(ctx, &grade.Grade{ID: "grade_4", Name: " "})))
}

func TestInMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := SetupContext()
	store := NewInMemoryGradeStore()
	require.NoError(t, store.Create(ctx, &grade.Grade{ID: "grade_1", Name: "Grade 1"}))

	got, err := store.Get(ctx, "grade_1")
	require.NoError(t, err)
	got.Name = "Changed"

	again, err := store.Get(ctx, "grade_1")
	require.NoError(t, err)
	assert.Equal(t, "Grade 1", again.Name)
}

func TestInMemoryStore_Pagination(t *testing.T) {
	ctx := SetupContext()
	store := NewInMemoryGradeStore()
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		require.NoError(t, store.Create(ctx, &grade.Grade{ID: "grade_" + name, Name: name}))
	}

	filter := types.NewDefaultQueryFilter()
	filter.Limit = lo.ToPtr(2)
	filter.Offset = lo.ToPtr(3)

	page, err := store.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "E"}, lo.Map(page, func(g *grade.Grade, _ int) string { return g.Name }))

	filter.Offset = lo.ToPtr(10)
	page, err = store.List(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestInMemoryEnrollmentStore_OneLiveEnrollmentPerYear(t *testing.T) {
	ctx := SetupContext()
	store := NewInMemoryEnrollmentStore()

	first := &enrollment.StudentGrade{ID: "enr_1", StudentID: "stu_1", GradeID: "grade_1", SchoolYearID: "sy_1"}
	require.NoError(t, store.Create(ctx, first))
	assert.True(t, ierr.IsAlreadyExists(store.Create(ctx, &enrollment.StudentGrade{
		ID: "enr_2", StudentID: "stu_1", GradeID: "grade_2", SchoolYearID: "sy_1",
	})))

	got, err := store.GetByStudentAndYear(ctx, "stu_1", "sy_1")
	require.NoError(t, err)
	assert.Equal(t, "grade_1", got.GradeID)

	require.NoError(t, store.Delete(ctx, first.ID))
	_, err = store.GetByStudentAndYear(ctx, "stu_1", "sy_1")
	assert.True(t, ierr.IsNotFound(err))

	require.NoError(t, store.Create(ctx, &enrollment.StudentGrade{
		ID: "enr_2", StudentID: "stu_1", GradeID: "grade_2", SchoolYearID: "sy_1",
	}))
}
