package postgres

import (
	"context"

	"github.com/flexprice/tuition/internal/domain/monthlyfee"
	"github.com/flexprice/tuition/internal/logger"
	"github.com/flexprice/tuition/internal/postgres"
	"github.com/flexprice/tuition/internal/types"
)

type monthlyFeeRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewMonthlyFeeRepository(db *postgres.DB, logger *logger.Logger) monthlyfee.Repository {
	return &monthlyFeeRepository{db: db, logger: logger}
}

func (r *monthlyFeeRepository) Create(ctx context.Context, fee *monthlyfee.MonthlyFee) error {
	if err := fee.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO monthly_fees (
			id, description, amount, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :description, :amount, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating monthly fee",
		"monthly_fee_id", fee.ID,
		"amount", fee.Amount.String())

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, fee); err != nil {
		return mapError(err, "monthly fee", fee.ID)
	}
	return nil
}

func (r *monthlyFeeRepository) Get(ctx context.Context, id string) (*monthlyfee.MonthlyFee, error) {
	return getByID[monthlyfee.MonthlyFee](ctx, r.db, "monthly_fees", "monthly fee", id)
}

func (r *monthlyFeeRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*monthlyfee.MonthlyFee, error) {
	q := newListQuery("monthly_fees", "created_at DESC, id DESC", types.QueryFilterOrDefault(filter))
	return selectAll[monthlyfee.MonthlyFee](ctx, r.db, "monthly fee", q)
}

func (r *monthlyFeeRepository) Update(ctx context.Context, fee *monthlyfee.MonthlyFee) error {
	if err := fee.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE monthly_fees SET
			description = :description,
			amount = :amount,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND deleted_at IS NULL`

	r.logger.Debugw("updating monthly fee", "monthly_fee_id", fee.ID)
	return namedExec(ctx, r.db, "monthly fee", fee.ID, query, fee)
}

func (r *monthlyFeeRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting monthly fee", "monthly_fee_id", id)
	return softDelete(ctx, r.db, "monthly_fees", "monthly fee", id)
}

func (r *monthlyFeeRepository) HardDelete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.db, "monthly_fees", "monthly fee", id)
}

type feeOnGradeRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewFeeOnGradeRepository(db *postgres.DB, logger *logger.Logger) monthlyfee.AssignmentRepository {
	return &feeOnGradeRepository{db: db, logger: logger}
}

func (r *feeOnGradeRepository) Create(ctx context.Context, a *monthlyfee.FeeOnGrade) error {
	if err := a.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO fee_on_grades (
			id, grade_id, monthly_fee_id, effective_from_month_id,
			created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :grade_id, :monthly_fee_id, :effective_from_month_id,
			:created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("assigning monthly fee to grade",
		"grade_id", a.GradeID,
		"monthly_fee_id", a.MonthlyFeeID,
		"effective_from_month_id", a.EffectiveFromMonthID)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, a); err != nil {
		return mapError(err, "fee assignment", a.ID)
	}
	return nil
}

func (r *feeOnGradeRepository) Get(ctx context.Context, id string) (*monthlyfee.FeeOnGrade, error) {
	return getByID[monthlyfee.FeeOnGrade](ctx, r.db, "fee_on_grades", "fee assignment", id)
}

func (r *feeOnGradeRepository) List(ctx context.Context, filter *types.FeeOnGradeFilter) ([]*monthlyfee.FeeOnGrade, error) {
	if filter == nil {
		filter = types.NewFeeOnGradeFilter()
	}
	q := newListQuery("fee_on_grades", "created_at DESC, id DESC", types.QueryFilterOrDefault(filter.QueryFilter)).
		WhereEq("grade_id", filter.GradeID).
		WhereEq("monthly_fee_id", filter.MonthlyFeeID)
	return selectAll[monthlyfee.FeeOnGrade](ctx, r.db, "fee assignment", q)
}

func (r *feeOnGradeRepository) Delete(ctx context.Context, id string) error {
	return softDelete(ctx, r.db, "fee_on_grades", "fee assignment", id)
}

func (r *feeOnGradeRepository) HardDelete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.db, "fee_on_grades", "fee assignment", id)
}
