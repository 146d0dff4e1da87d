package postgres

import (
	"context"

	"github.com/flexprice/tuition/internal/domain/schoolmonth"
	"github.com/flexprice/tuition/internal/domain/schoolyear"
	"github.com/flexprice/tuition/internal/logger"
	"github.com/flexprice/tuition/internal/postgres"
	"github.com/flexprice/tuition/internal/types"
)

type schoolYearRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSchoolYearRepository(db *postgres.DB, logger *logger.Logger) schoolyear.Repository {
	return &schoolYearRepository{db: db, logger: logger}
}

func (r *schoolYearRepository) Create(ctx context.Context, year *schoolyear.SchoolYear) error {
	if err := year.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO school_years (
			id, name, start_date, end_date, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :start_date, :end_date, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating school year", "school_year_id", year.ID, "name", year.Name)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, year); err != nil {
		return mapError(err, "school year", year.ID)
	}
	return nil
}

func (r *schoolYearRepository) Get(ctx context.Context, id string) (*schoolyear.SchoolYear, error) {
	return getByID[schoolyear.SchoolYear](ctx, r.db, "school_years", "school year", id)
}

func (r *schoolYearRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*schoolyear.SchoolYear, error) {
	q := newListQuery("school_years", "start_date DESC, id DESC", types.QueryFilterOrDefault(filter))
	return selectAll[schoolyear.SchoolYear](ctx, r.db, "school year", q)
}

func (r *schoolYearRepository) Update(ctx context.Context, year *schoolyear.SchoolYear) error {
	if err := year.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE school_years SET
			name = :name,
			start_date = :start_date,
			end_date = :end_date,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND deleted_at IS NULL`

	r.logger.Debugw("updating school year", "school_year_id", year.ID)
	return namedExec(ctx, r.db, "school year", year.ID, query, year)
}

func (r *schoolYearRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting school year", "school_year_id", id)
	return softDelete(ctx, r.db, "school_years", "school year", id)
}

func (r *schoolYearRepository) HardDelete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.db, "school_years", "school year", id)
}

type schoolMonthRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSchoolMonthRepository(db *postgres.DB, logger *logger.Logger) schoolmonth.Repository {
	return &schoolMonthRepository{db: db, logger: logger}
}

// Create checks the month number against the owning school year before inserting
func (r *schoolMonthRepository) Create(ctx context.Context, month *schoolmonth.SchoolMonth) error {
	year, err := getByID[schoolyear.SchoolYear](ctx, r.db, "school_years", "school year", month.SchoolYearID)
	if err != nil {
		return err
	}
	if err := month.Validate(year); err != nil {
		return err
	}

	query := `
		INSERT INTO school_months (
			id, school_year_id, month_number, name, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :school_year_id, :month_number, :name, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating school month",
		"school_month_id", month.ID,
		"school_year_id", month.SchoolYearID,
		"month_number", month.MonthNumber)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, month); err != nil {
		return mapError(err, "school month", month.ID)
	}
	return nil
}

func (r *schoolMonthRepository) Get(ctx context.Context, id string) (*schoolmonth.SchoolMonth, error) {
	return getByID[schoolmonth.SchoolMonth](ctx, r.db, "school_months", "school month", id)
}

func (r *schoolMonthRepository) List(ctx context.Context, filter *types.SchoolMonthFilter) ([]*schoolmonth.SchoolMonth, error) {
	if filter == nil {
		filter = types.NewSchoolMonthFilter()
	}
	q := newListQuery("school_months", "school_year_id ASC, month_number ASC", types.QueryFilterOrDefault(filter.QueryFilter)).
		WhereEq("school_year_id", filter.SchoolYearID).
		WhereIn("id", filter.SchoolMonthIDs)
	return selectAll[schoolmonth.SchoolMonth](ctx, r.db, "school month", q)
}

func (r *schoolMonthRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting school month", "school_month_id", id)
	return softDelete(ctx, r.db, "school_months", "school month", id)
}

func (r *schoolMonthRepository) HardDelete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.db, "school_months", "school month", id)
}
