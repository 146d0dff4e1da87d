package service

import (
	"context"
	"sort"
	"time"

	"github.com/flexprice/tuition/internal/domain/discount"
	"github.com/flexprice/tuition/internal/domain/monthlyfee"
	"github.com/flexprice/tuition/internal/domain/payment"
	"github.com/flexprice/tuition/internal/domain/schoolmonth"
	"github.com/flexprice/tuition/internal/domain/schoolyear"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// billingReader loads the live rows billing computations are built from.
// Every billing service embeds it.
type billingReader struct {
	ServiceParams
}

// monthScope is a school month together with the school year it is numbered against
type monthScope struct {
	Month *schoolmonth.SchoolMonth
	Year  *schoolyear.SchoolYear
}

// effectiveFee is the fee assignment in force for a grade in a month
type effectiveFee struct {
	Fee           *monthlyfee.MonthlyFee
	Assignment    *monthlyfee.FeeOnGrade
	EffectiveFrom *schoolmonth.SchoolMonth
}

func (r billingReader) loadMonthScope(ctx context.Context, schoolMonthID string) (*monthScope, error) {
	month, err := r.SchoolMonthRepo.Get(ctx, schoolMonthID)
	if err != nil {
		return nil, err
	}

	year, err := r.SchoolYearRepo.Get(ctx, month.SchoolYearID)
	if ierr.IsNotFound(err) {
		return nil, ierr.WithError(err).
			WithHintf("The school year of school month %s could not be determined", schoolMonthID).
			WithReportableDetails(map[string]any{
				"school_month_id": month.ID,
				"school_year_id":  month.SchoolYearID,
			}).
			Mark(ierr.ErrInconsistentData)
	}
	if err != nil {
		return nil, err
	}

	if err := month.Validate(year); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("School month %s does not fit its school year", schoolMonthID).
			Mark(ierr.ErrInconsistentData)
	}

	return &monthScope{Month: month, Year: year}, nil
}

// resolveEffectiveFee picks, among the live assignments of the grade effective at
// or before the target month of the same school year, the one with the latest
// effective month. Equal effective months are broken by the greatest assignment
// id, which is the most recently created one.
func (r billingReader) resolveEffectiveFee(ctx context.Context, gradeID string, scope *monthScope) (*effectiveFee, error) {
	filter := types.NewFeeOnGradeFilter()
	filter.GradeID = gradeID

	assignments, err := r.FeeOnGradeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var monthsByID map[string]*schoolmonth.SchoolMonth
	if len(assignments) > 0 {
		monthFilter := types.NewSchoolMonthFilter()
		monthFilter.SchoolMonthIDs = lo.Uniq(lo.Map(assignments, func(a *monthlyfee.FeeOnGrade, _ int) string {
			return a.EffectiveFromMonthID
		}))
		months, err := r.SchoolMonthRepo.List(ctx, monthFilter)
		if err != nil {
			return nil, err
		}
		monthsByID = lo.KeyBy(months, func(m *schoolmonth.SchoolMonth) string { return m.ID })
	}

	candidates := lo.Filter(assignments, func(a *monthlyfee.FeeOnGrade, _ int) bool {
		from, ok := monthsByID[a.EffectiveFromMonthID]
		return ok &&
			from.SchoolYearID == scope.Month.SchoolYearID &&
			from.MonthNumber <= scope.Month.MonthNumber
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		mi := monthsByID[candidates[i].EffectiveFromMonthID].MonthNumber
		mj := monthsByID[candidates[j].EffectiveFromMonthID].MonthNumber
		if mi != mj {
			return mi > mj
		}
		return candidates[i].ID > candidates[j].ID
	})

	for _, assignment := range candidates {
		fee, err := r.MonthlyFeeRepo.Get(ctx, assignment.MonthlyFeeID)
		if ierr.IsNotFound(err) {
			// assignment of a deleted fee
			continue
		}
		if err != nil {
			return nil, err
		}
		return &effectiveFee{
			Fee:           fee,
			Assignment:    assignment,
			EffectiveFrom: monthsByID[assignment.EffectiveFromMonthID],
		}, nil
	}

	return nil, ierr.NewErrorf("grade %s has no fee effective in school month %s", gradeID, scope.Month.ID).
		WithHint("Assign a monthly fee to the grade effective at or before this month").
		WithReportableDetails(map[string]any{
			"grade_id":        gradeID,
			"school_month_id": scope.Month.ID,
			"month_number":    scope.Month.MonthNumber,
		}).
		Mark(ierr.ErrNoEffectiveFee)
}

// applicableDiscounts returns the live discounts of the student whose scope covers
// the month. A discount attached at several scopes counts once.
func (r billingReader) applicableDiscounts(ctx context.Context, studentID string, month *schoolmonth.SchoolMonth) ([]*discount.Discount, error) {
	filter := types.NewStudentDiscountFilter()
	filter.StudentID = studentID

	associations, err := r.StudentDiscountRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	discountIDs := lo.Uniq(lo.FilterMap(associations, func(a *discount.StudentDiscount, _ int) (string, bool) {
		return a.DiscountID, a.AppliesTo(month)
	}))
	if len(discountIDs) == 0 {
		return []*discount.Discount{}, nil
	}

	return r.DiscountRepo.GetByIDs(ctx, discountIDs)
}

// paidAmount sums the payments of the student for the month that count toward revenue
func (r billingReader) paidAmount(ctx context.Context, studentID, schoolMonthID string) (decimal.Decimal, error) {
	filter := types.NewPaymentFilter()
	filter.StudentID = studentID
	filter.SchoolMonthID = schoolMonthID
	return r.sumVerifiedPayments(ctx, filter)
}

// monthRevenue sums every verified payment recorded against the month
func (r billingReader) monthRevenue(ctx context.Context, schoolMonthID string) (decimal.Decimal, error) {
	filter := types.NewPaymentFilter()
	filter.SchoolMonthID = schoolMonthID
	return r.sumVerifiedPayments(ctx, filter)
}

func (r billingReader) sumVerifiedPayments(ctx context.Context, filter *types.PaymentFilter) (decimal.Decimal, error) {
	filter.VerifiedOnly = true

	payments, err := r.PaymentRepo.List(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}
	return types.SumAmounts(lo.Map(payments, func(p *payment.Payment, _ int) decimal.Decimal {
		return p.Amount
	})...), nil
}

// dueWindow computes the due and overdue dates of the month from the settings
func (r billingReader) dueWindow(ctx context.Context, settings SettingsService, scope *monthScope) (dueDate, overdueDate time.Time, err error) {
	dueDay, err := settings.GetPaymentDueDay(ctx)
	if err != nil {
		return
	}
	graceDays, err := settings.GetDaysUntilOverdue(ctx)
	if err != nil {
		return
	}

	dueDate, err = types.DueDateInMonth(scope.Month.StartDate(scope.Year), dueDay)
	if err != nil {
		return
	}
	overdueDate, err = types.OverdueDate(dueDate, graceDays)
	return
}

func (r billingReader) currencySymbol() string {
	return types.GetCurrencySymbol(r.Config.Billing.Currency)
}
