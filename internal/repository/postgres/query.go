package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/postgres"
	"github.com/flexprice/tuition/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// listQuery builds the SELECT of a List call. Soft deleted rows are excluded
// unless the filter asks for them, and the order is fixed per repository.
type listQuery struct {
	table  string
	order  string
	filter types.BaseFilter
	where  []string
	args   []interface{}
	err    error
}

func newListQuery(table, order string, filter types.BaseFilter) *listQuery {
	return &listQuery{table: table, order: order, filter: filter}
}

// Where adds a condition using ? placeholders
func (q *listQuery) Where(cond string, args ...interface{}) *listQuery {
	q.where = append(q.where, cond)
	q.args = append(q.args, args...)
	return q
}

// WhereEq adds column = value when value is not empty
func (q *listQuery) WhereEq(column, value string) *listQuery {
	if value == "" {
		return q
	}
	return q.Where(column+" = ?", value)
}

// WhereIn adds column IN (values) when values is not empty
func (q *listQuery) WhereIn(column string, values []string) *listQuery {
	if len(values) == 0 {
		return q
	}
	cond, args, err := sqlx.In(column+" IN (?)", values)
	if err != nil {
		q.err = err
		return q
	}
	return q.Where(cond, args...)
}

// Build returns the query with ? placeholders and its arguments
func (q *listQuery) Build() (string, []interface{}, error) {
	if q.err != nil {
		return "", nil, q.err
	}

	conds := append([]string{}, q.where...)
	if q.filter == nil || !q.filter.GetIncludeDeleted() {
		conds = append(conds, "deleted_at IS NULL")
	}

	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(q.table)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(q.order)

	args := append([]interface{}{}, q.args...)
	if q.filter != nil && !q.filter.IsUnlimited() {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, q.filter.GetLimit(), q.filter.GetOffset())
	}
	return b.String(), args, nil
}

// selectAll runs a list query and scans every row into T
func selectAll[T any](ctx context.Context, db *postgres.DB, entity string, q *listQuery) ([]*T, error) {
	query, args, err := q.Build()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to build %s query", entity).
			Mark(ierr.ErrDatabase)
	}

	querier := db.GetQuerier(ctx)
	items := make([]*T, 0)
	if err := querier.SelectContext(ctx, &items, querier.Rebind(query), args...); err != nil {
		return nil, mapError(err, entity, "")
	}
	return items, nil
}

// getByID loads a live row by primary key
func getByID[T any](ctx context.Context, db *postgres.DB, table, entity, id string) (*T, error) {
	var item T
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1 AND deleted_at IS NULL", table)
	if err := db.GetQuerier(ctx).GetContext(ctx, &item, query, id); err != nil {
		return nil, mapError(err, entity, id)
	}
	return &item, nil
}

// namedExec runs a named statement and fails with ErrNotFound when no live row matched
func namedExec(ctx context.Context, db *postgres.DB, entity, id, query string, arg interface{}) error {
	result, err := db.GetQuerier(ctx).NamedExecContext(ctx, query, arg)
	if err != nil {
		return mapError(err, entity, id)
	}
	return requireAffected(result, entity, id)
}

// softDelete stamps deleted_at on a live row
func softDelete(ctx context.Context, db *postgres.DB, table, entity, id string) error {
	now := time.Now().UTC()
	query := fmt.Sprintf(`
		UPDATE %s SET
			deleted_at = $1,
			updated_at = $1,
			updated_by = $2
		WHERE id = $3 AND deleted_at IS NULL`, table)

	result, err := db.GetQuerier(ctx).ExecContext(ctx, query, now, types.GetUserID(ctx), id)
	if err != nil {
		return mapError(err, entity, id)
	}
	return requireAffected(result, entity, id)
}

// hardDelete removes a row that was soft deleted before
func hardDelete(ctx context.Context, db *postgres.DB, table, entity, id string) error {
	querier := db.GetQuerier(ctx)
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND deleted_at IS NOT NULL", table)
	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return mapError(err, entity, id)
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	var exists bool
	query = fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)
	if err := querier.GetContext(ctx, &exists, query, id); err != nil {
		return mapError(err, entity, id)
	}
	if !exists {
		return notFound(entity, id)
	}
	return ierr.NewErrorf("%s %s is not soft deleted", entity, id).
		WithHint("Delete the record before removing it permanently").
		Mark(ierr.ErrInvalidOperation)
}

func requireAffected(result sql.Result, entity, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if n == 0 {
		return notFound(entity, id)
	}
	return nil
}

func notFound(entity, id string) error {
	return ierr.NewErrorf("%s %s not found", entity, id).
		WithHintf("The %s does not exist or has been deleted", entity).
		WithReportableDetails(map[string]any{
			"id": id,
		}).
		Mark(ierr.ErrNotFound)
}

// mapError translates driver errors into the error kinds services branch on
func mapError(err error, entity, id string) error {
	if err == sql.ErrNoRows {
		return notFound(entity, id)
	}

	// the driver surfaces a cancelled or expired ctx as the ctx error
	if ierr.Is(err, context.Canceled) || ierr.Is(err, context.DeadlineExceeded) {
		return ierr.WithError(err).
			WithHintf("Reading %s was cancelled", entity).
			Mark(ierr.ErrIncomplete)
	}

	var pqErr *pq.Error
	if ierr.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ierr.WithError(err).
			WithHintf("A %s with the same unique value already exists", entity).
			WithReportableDetails(map[string]any{
				"constraint": pqErr.Constraint,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	return ierr.WithError(err).
		WithHintf("Database operation on %s failed", entity).
		Mark(ierr.ErrDatabase)
}
