package service

import (
	"context"
	"sort"

	"github.com/flexprice/tuition/internal/api/dto"
	"github.com/flexprice/tuition/internal/domain/discount"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AppliedDiscount is one discount and the currency amount it removed from the fee
type AppliedDiscount struct {
	Discount *discount.Discount
	Amount   decimal.Decimal
}

// DiscountStack is the outcome of stacking discounts on a fee
type DiscountStack struct {
	OriginalFee decimal.Decimal
	// PercentageSum is the sum of the percentage discounts before capping
	PercentageSum decimal.Decimal
	// PercentageApplied is PercentageSum capped at 100
	PercentageApplied  decimal.Decimal
	PercentageDiscount decimal.Decimal
	FixedSum           decimal.Decimal
	// FixedDiscount is the part of FixedSum that was actually subtracted
	FixedDiscount decimal.Decimal
	Total         decimal.Decimal
	Applied       []AppliedDiscount
}

// DiscountAmount is how much the discounts took off the original fee
func (s DiscountStack) DiscountAmount() decimal.Decimal {
	return s.OriginalFee.Sub(s.Total)
}

// Labels renders the applied discounts in stacking order
func (s DiscountStack) Labels(currencySymbol string) []string {
	return lo.Map(s.Applied, func(a AppliedDiscount, _ int) string {
		return a.Discount.Label(currencySymbol)
	})
}

// StackDiscounts applies the percentage discounts first and the fixed ones second.
// Both are measured against the original fee: the percentages are summed, capped
// at 100 and taken off the fee, then the fixed amounts are subtracted and the
// result is floored at zero.
func StackDiscounts(fee decimal.Decimal, discounts []*discount.Discount) DiscountStack {
	ordered := make([]*discount.Discount, len(discounts))
	copy(ordered, discounts)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].IsPercentage != ordered[j].IsPercentage {
			return ordered[i].IsPercentage
		}
		if ordered[i].Name != ordered[j].Name {
			return ordered[i].Name < ordered[j].Name
		}
		return ordered[i].ID < ordered[j].ID
	})

	stack := DiscountStack{
		OriginalFee:        fee,
		PercentageSum:      decimal.Zero,
		PercentageApplied:  decimal.Zero,
		PercentageDiscount: decimal.Zero,
		FixedSum:           decimal.Zero,
		FixedDiscount:      decimal.Zero,
		Applied:            make([]AppliedDiscount, 0, len(ordered)),
	}

	for _, d := range ordered {
		if d.IsPercentage {
			stack.PercentageSum = stack.PercentageSum.Add(d.Amount)
		} else {
			stack.FixedSum = stack.FixedSum.Add(d.Amount)
		}
	}

	afterPercentage := fee
	if stack.PercentageSum.IsPositive() {
		stack.PercentageApplied = types.ClampPercent(stack.PercentageSum)
		stack.PercentageDiscount = types.PercentOf(fee, stack.PercentageApplied)
		afterPercentage = fee.Sub(stack.PercentageDiscount)
	}

	total := afterPercentage
	if stack.FixedSum.IsPositive() {
		total = afterPercentage.Sub(stack.FixedSum)
	}
	stack.Total = types.FloorZero(total)
	stack.FixedDiscount = afterPercentage.Sub(stack.Total)

	// attribute the removed amount to the individual discounts in stacking order
	remaining := fee
	for _, d := range ordered {
		share := d.Amount
		if d.IsPercentage {
			share = types.PercentOf(fee, d.Amount)
		}
		share = decimal.Min(share, remaining)
		remaining = remaining.Sub(share)
		stack.Applied = append(stack.Applied, AppliedDiscount{Discount: d, Amount: share})
	}

	return stack
}

// DiscountEngine computes the discounted fee of a student
type DiscountEngine interface {
	GetStudentTotalFee(ctx context.Context, gradeID, studentID, schoolMonthID string) (*dto.StudentTotalFeeResponse, error)
}

type discountEngine struct {
	billingReader
}

func NewDiscountEngine(params ServiceParams) DiscountEngine {
	return &discountEngine{
		billingReader: billingReader{ServiceParams: params},
	}
}

func (s *discountEngine) GetStudentTotalFee(ctx context.Context, gradeID, studentID, schoolMonthID string) (*dto.StudentTotalFeeResponse, error) {
	scope, err := s.loadMonthScope(ctx, schoolMonthID)
	if err != nil {
		return nil, err
	}

	if _, err := s.GradeRepo.Get(ctx, gradeID); err != nil {
		return nil, err
	}
	if _, err := s.StudentRepo.Get(ctx, studentID); err != nil {
		return nil, err
	}

	stack, err := s.studentStack(ctx, gradeID, studentID, scope)
	if err != nil {
		return nil, err
	}

	return &dto.StudentTotalFeeResponse{
		GradeID:            gradeID,
		StudentID:          studentID,
		SchoolMonthID:      scope.Month.ID,
		OriginalFee:        stack.OriginalFee,
		PercentageApplied:  stack.PercentageApplied,
		PercentageDiscount: stack.PercentageDiscount,
		FixedDiscount:      stack.FixedDiscount,
		TotalFee:           stack.Total,
		Discounts:          toAppliedDiscountResponses(stack, s.currencySymbol()),
	}, nil
}

// studentStack resolves the fee of the grade and stacks the student's discounts on it
func (r billingReader) studentStack(ctx context.Context, gradeID, studentID string, scope *monthScope) (DiscountStack, error) {
	resolved, err := r.resolveEffectiveFee(ctx, gradeID, scope)
	if err != nil {
		return DiscountStack{}, err
	}
	return r.stackForFee(ctx, resolved, studentID, scope)
}

func (r billingReader) stackForFee(ctx context.Context, resolved *effectiveFee, studentID string, scope *monthScope) (DiscountStack, error) {
	discounts, err := r.applicableDiscounts(ctx, studentID, scope.Month)
	if err != nil {
		return DiscountStack{}, err
	}
	return StackDiscounts(resolved.Fee.Amount, discounts), nil
}

func toAppliedDiscountResponses(stack DiscountStack, currencySymbol string) []*dto.AppliedDiscountResponse {
	return lo.Map(stack.Applied, func(a AppliedDiscount, _ int) *dto.AppliedDiscountResponse {
		return &dto.AppliedDiscountResponse{
			DiscountID:    a.Discount.ID,
			Name:          a.Discount.Name,
			Label:         a.Discount.Label(currencySymbol),
			IsPercentage:  a.Discount.IsPercentage,
			Amount:        a.Discount.Amount,
			AppliedAmount: a.Amount,
		}
	})
}
