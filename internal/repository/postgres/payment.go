package postgres

import (
	"context"

	"github.com/flexprice/tuition/internal/domain/payment"
	"github.com/flexprice/tuition/internal/logger"
	"github.com/flexprice/tuition/internal/postgres"
	"github.com/flexprice/tuition/internal/types"
)

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

// Create checks the reference and verification fields against the payment method
func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	method, err := getByID[payment.PaymentMethod](ctx, r.db, "payment_methods", "payment method", p.PaymentMethodID)
	if err != nil {
		return err
	}
	if err := p.ValidateAgainst(method); err != nil {
		return err
	}

	query := `
		INSERT INTO payments (
			id, student_id, school_month_id, payment_type, amount, payment_method_id,
			reference, verified, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :student_id, :school_month_id, :payment_type, :amount, :payment_method_id,
			:reference, :verified, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("recording payment",
		"payment_id", p.ID,
		"student_id", p.StudentID,
		"school_month_id", p.SchoolMonthID,
		"amount", p.Amount.String())

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p); err != nil {
		return mapError(err, "payment", p.ID)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	return getByID[payment.Payment](ctx, r.db, "payments", "payment", id)
}

func (r *paymentRepository) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	if filter == nil {
		filter = types.NewPaymentFilter()
	}
	q := newListQuery("payments", "created_at DESC, id DESC", types.QueryFilterOrDefault(filter.QueryFilter)).
		WhereEq("student_id", filter.StudentID).
		WhereEq("school_month_id", filter.SchoolMonthID).
		WhereIn("school_month_id", filter.SchoolMonthIDs)
	if filter.VerifiedOnly {
		q = q.Where("(verified IS NULL OR verified)")
	}
	return selectAll[payment.Payment](ctx, r.db, "payment", q)
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting payment", "payment_id", id)
	return softDelete(ctx, r.db, "payments", "payment", id)
}

func (r *paymentRepository) HardDelete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.db, "payments", "payment", id)
}

type paymentMethodRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentMethodRepository(db *postgres.DB, logger *logger.Logger) payment.MethodRepository {
	return &paymentMethodRepository{db: db, logger: logger}
}

func (r *paymentMethodRepository) Create(ctx context.Context, m *payment.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (
			id, name, requires_manual_verification, requires_reference_id,
			created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :requires_manual_verification, :requires_reference_id,
			:created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, m); err != nil {
		return mapError(err, "payment method", m.ID)
	}
	return nil
}

func (r *paymentMethodRepository) Get(ctx context.Context, id string) (*payment.PaymentMethod, error) {
	return getByID[payment.PaymentMethod](ctx, r.db, "payment_methods", "payment method", id)
}

func (r *paymentMethodRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*payment.PaymentMethod, error) {
	q := newListQuery("payment_methods", "name ASC", types.QueryFilterOrDefault(filter))
	return selectAll[payment.PaymentMethod](ctx, r.db, "payment method", q)
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id string) error {
	return softDelete(ctx, r.db, "payment_methods", "payment method", id)
}

func (r *paymentMethodRepository) HardDelete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.db, "payment_methods", "payment method", id)
}
