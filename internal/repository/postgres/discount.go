package postgres

import (
	"context"

	"github.com/flexprice/tuition/internal/domain/discount"
	"github.com/flexprice/tuition/internal/logger"
	"github.com/flexprice/tuition/internal/postgres"
	"github.com/flexprice/tuition/internal/types"
)

type discountRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewDiscountRepository(db *postgres.DB, logger *logger.Logger) discount.Repository {
	return &discountRepository{db: db, logger: logger}
}

func (r *discountRepository) Create(ctx context.Context, d *discount.Discount) error {
	if err := d.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO discounts (
			id, name, description, amount, is_percentage, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :description, :amount, :is_percentage, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating discount",
		"discount_id", d.ID,
		"amount", d.Amount.String(),
		"is_percentage", d.IsPercentage)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, d); err != nil {
		return mapError(err, "discount", d.ID)
	}
	return nil
}

func (r *discountRepository) Get(ctx context.Context, id string) (*discount.Discount, error) {
	return getByID[discount.Discount](ctx, r.db, "discounts", "discount", id)
}

func (r *discountRepository) GetByIDs(ctx context.Context, ids []string) ([]*discount.Discount, error) {
	if len(ids) == 0 {
		return []*discount.Discount{}, nil
	}
	q := newListQuery("discounts", "id ASC", types.NewNoLimitQueryFilter()).
		WhereIn("id", ids)
	return selectAll[discount.Discount](ctx, r.db, "discount", q)
}

func (r *discountRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*discount.Discount, error) {
	q := newListQuery("discounts", "name ASC", types.QueryFilterOrDefault(filter))
	return selectAll[discount.Discount](ctx, r.db, "discount", q)
}

func (r *discountRepository) Update(ctx context.Context, d *discount.Discount) error {
	if err := d.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE discounts SET
			name = :name,
			description = :description,
			amount = :amount,
			is_percentage = :is_percentage,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND deleted_at IS NULL`

	r.logger.Debugw("updating discount", "discount_id", d.ID)
	return namedExec(ctx, r.db, "discount", d.ID, query, d)
}

func (r *discountRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting discount", "discount_id", id)
	return softDelete(ctx, r.db, "discounts", "discount", id)
}

func (r *discountRepository) HardDelete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.db, "discounts", "discount", id)
}

type studentDiscountRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewStudentDiscountRepository(db *postgres.DB, logger *logger.Logger) discount.StudentDiscountRepository {
	return &studentDiscountRepository{db: db, logger: logger}
}

func (r *studentDiscountRepository) Create(ctx context.Context, sd *discount.StudentDiscount) error {
	if err := sd.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO student_discounts (
			id, student_id, discount_id, school_year_id, school_month_id,
			created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :student_id, :discount_id, :school_year_id, :school_month_id,
			:created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("attaching discount to student",
		"student_id", sd.StudentID,
		"discount_id", sd.DiscountID,
		"scope", sd.Scope())

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, sd); err != nil {
		return mapError(err, "student discount", sd.ID)
	}
	return nil
}

func (r *studentDiscountRepository) Get(ctx context.Context, id string) (*discount.StudentDiscount, error) {
	return getByID[discount.StudentDiscount](ctx, r.db, "student_discounts", "student discount", id)
}

func (r *studentDiscountRepository) List(ctx context.Context, filter *types.StudentDiscountFilter) ([]*discount.StudentDiscount, error) {
	if filter == nil {
		filter = types.NewStudentDiscountFilter()
	}
	q := newListQuery("student_discounts", "id ASC", types.QueryFilterOrDefault(filter.QueryFilter)).
		WhereEq("student_id", filter.StudentID).
		WhereIn("student_id", filter.StudentIDs).
		WhereEq("discount_id", filter.DiscountID)
	return selectAll[discount.StudentDiscount](ctx, r.db, "student discount", q)
}

func (r *studentDiscountRepository) Delete(ctx context.Context, id string) error {
	return softDelete(ctx, r.db, "student_discounts", "student discount", id)
}

func (r *studentDiscountRepository) HardDelete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.db, "student_discounts", "student discount", id)
}
