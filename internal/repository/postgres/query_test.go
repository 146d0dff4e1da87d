package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueryBuild(t *testing.T) {
	tests := []struct {
		name     string
		query    func() *listQuery
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name: "live rows only by default",
			query: func() *listQuery {
				return newListQuery("grades", "name ASC", types.NewNoLimitQueryFilter())
			},
			wantSQL:  "SELECT * FROM grades WHERE deleted_at IS NULL ORDER BY name ASC",
			wantArgs: []interface{}{},
		},
		{
			name: "include deleted drops the soft delete condition",
			query: func() *listQuery {
				return newListQuery("grades", "name ASC", types.NewNoLimitQueryFilter().WithDeleted())
			},
			wantSQL:  "SELECT * FROM grades ORDER BY name ASC",
			wantArgs: []interface{}{},
		},
		{
			name: "empty values are ignored",
			query: func() *listQuery {
				return newListQuery("payments", "created_at DESC, id DESC", nil).
					WhereEq("student_id", "").
					WhereIn("school_month_id", nil)
			},
			wantSQL:  "SELECT * FROM payments WHERE deleted_at IS NULL ORDER BY created_at DESC, id DESC",
			wantArgs: []interface{}{},
		},
		{
			name: "conditions and pagination",
			query: func() *listQuery {
				filter := &types.QueryFilter{Limit: lo.ToPtr(10), Offset: lo.ToPtr(20)}
				return newListQuery("payments", "created_at DESC, id DESC", filter).
					WhereEq("student_id", "stu_1").
					WhereIn("school_month_id", []string{"smo_1", "smo_2"})
			},
			wantSQL: "SELECT * FROM payments WHERE student_id = ? AND school_month_id IN (?, ?) AND deleted_at IS NULL" +
				" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
			wantArgs: []interface{}{"stu_1", "smo_1", "smo_2", 10, 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.query().Build()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestMapError(t *testing.T) {
	t.Run("no rows is not found", func(t *testing.T) {
		err := mapError(sql.ErrNoRows, "grade", "grd_1")
		assert.True(t, ierr.IsNotFound(err))
	})

	t.Run("unique violation is already exists", func(t *testing.T) {
		err := mapError(&pq.Error{Code: uniqueViolation, Constraint: "uq_grades_name"}, "grade", "grd_1")
		assert.True(t, ierr.IsAlreadyExists(err))
	})

	t.Run("cancelled context is incomplete", func(t *testing.T) {
		for _, cause := range []error{context.Canceled, context.DeadlineExceeded} {
			err := mapError(fmt.Errorf("pq: %w", cause), "enrollment", "")
			assert.True(t, ierr.IsIncomplete(err), "got %v", err)
			assert.False(t, ierr.IsDatabase(err))
		}
	})

	t.Run("anything else is a database error", func(t *testing.T) {
		err := mapError(&pq.Error{Code: "23503"}, "payment", "pay_1")
		assert.True(t, ierr.IsDatabase(err))
		assert.False(t, ierr.IsAlreadyExists(err))
	})
}
