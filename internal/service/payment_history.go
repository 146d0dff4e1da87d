package service

import (
	"context"
	"sort"

	"github.com/flexprice/tuition/internal/api/dto"
	"github.com/flexprice/tuition/internal/domain/enrollment"
	"github.com/flexprice/tuition/internal/domain/grade"
	"github.com/flexprice/tuition/internal/domain/payment"
	"github.com/flexprice/tuition/internal/domain/schoolmonth"
	"github.com/flexprice/tuition/internal/domain/schoolyear"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PaymentHistoryService builds the payment statement of a student
type PaymentHistoryService interface {
	// GetPaymentHistory orders entries by school year start descending, then month
	// number ascending, then payment creation time descending. Payments of a year
	// the student had no grade in are left out.
	GetPaymentHistory(ctx context.Context, studentID string, schoolYearID *string) (*dto.PaymentHistoryResponse, error)
}

type paymentHistoryService struct {
	billingReader
}

func NewPaymentHistoryService(params ServiceParams) PaymentHistoryService {
	return &paymentHistoryService{
		billingReader: billingReader{ServiceParams: params},
	}
}

// monthFee is the discounted fee of the student for one month, nil fee when none was effective
type monthFee struct {
	total  *decimal.Decimal
	labels []string
}

func (s *paymentHistoryService) GetPaymentHistory(ctx context.Context, studentID string, schoolYearID *string) (*dto.PaymentHistoryResponse, error) {
	if _, err := s.StudentRepo.Get(ctx, studentID); err != nil {
		return nil, err
	}
	if schoolYearID != nil {
		if _, err := s.SchoolYearRepo.Get(ctx, *schoolYearID); err != nil {
			return nil, err
		}
	}

	paymentFilter := types.NewPaymentFilter()
	paymentFilter.StudentID = studentID
	payments, err := s.PaymentRepo.List(ctx, paymentFilter)
	if err != nil {
		return nil, err
	}

	resp := &dto.PaymentHistoryResponse{
		StudentID:    studentID,
		SchoolYearID: schoolYearID,
		Items:        []*dto.PaymentHistoryEntry{},
	}
	if len(payments) == 0 {
		return resp, nil
	}

	monthFilter := types.NewSchoolMonthFilter()
	monthFilter.SchoolMonthIDs = lo.Uniq(lo.Map(payments, func(p *payment.Payment, _ int) string { return p.SchoolMonthID }))
	if schoolYearID != nil {
		monthFilter.SchoolYearID = *schoolYearID
	}
	months, err := s.SchoolMonthRepo.List(ctx, monthFilter)
	if err != nil {
		return nil, err
	}
	monthsByID := lo.KeyBy(months, func(m *schoolmonth.SchoolMonth) string { return m.ID })

	years, err := s.SchoolYearRepo.List(ctx, types.NewNoLimitQueryFilter())
	if err != nil {
		return nil, err
	}
	yearsByID := lo.KeyBy(years, func(y *schoolyear.SchoolYear) string { return y.ID })

	enrollmentFilter := types.NewEnrollmentFilter()
	enrollmentFilter.StudentID = studentID
	enrollments, err := s.EnrollmentRepo.List(ctx, enrollmentFilter)
	if err != nil {
		return nil, err
	}
	enrollmentsByYear := lo.KeyBy(enrollments, func(e *enrollment.StudentGrade) string { return e.SchoolYearID })

	grades := make(map[string]*grade.Grade)
	methods := make(map[string]*payment.PaymentMethod)
	fees := make(map[string]*monthFee)

	for _, p := range payments {
		month, ok := monthsByID[p.SchoolMonthID]
		if !ok {
			continue
		}
		year, ok := yearsByID[month.SchoolYearID]
		if !ok {
			continue
		}
		enrolled, ok := enrollmentsByYear[year.ID]
		if !ok {
			s.Logger.Debugw("student has no grade in the school year of the payment, skipping",
				"student_id", studentID,
				"payment_id", p.ID,
				"school_year_id", year.ID)
			continue
		}

		g, ok := grades[enrolled.GradeID]
		if !ok {
			g, err = s.GradeRepo.Get(ctx, enrolled.GradeID)
			if ierr.IsNotFound(err) {
				continue
			}
			if err != nil {
				return nil, err
			}
			grades[enrolled.GradeID] = g
		}

		method, ok := methods[p.PaymentMethodID]
		if !ok {
			method, err = s.PaymentMethodRepo.Get(ctx, p.PaymentMethodID)
			if err != nil && !ierr.IsNotFound(err) {
				return nil, err
			}
			methods[p.PaymentMethodID] = method
		}

		fee, ok := fees[month.ID]
		if !ok {
			fee, err = s.feeForMonth(ctx, g.ID, studentID, &monthScope{Month: month, Year: year})
			if err != nil {
				return nil, err
			}
			fees[month.ID] = fee
		}

		entry := &dto.PaymentHistoryEntry{
			PaymentID:           p.ID,
			SchoolYearID:        year.ID,
			SchoolYearName:      year.Name,
			SchoolYearStartDate: year.StartDate,
			SchoolMonthID:       month.ID,
			MonthNumber:         month.MonthNumber,
			MonthName:           month.DisplayName(year),
			GradeID:             g.ID,
			GradeName:           g.Name,
			PaymentType:         p.PaymentType,
			Amount:              p.Amount,
			Verified:            p.Verified,
			CountsTowardRevenue: p.CountsTowardRevenue(),
			Reference:           p.Reference,
			PaymentMethodID:     p.PaymentMethodID,
			MonthlyFee:          fee.total,
			DiscountLabels:      fee.labels,
			CreatedAt:           p.CreatedAt,
		}
		if method != nil {
			entry.PaymentMethodName = method.Name
		}
		resp.Items = append(resp.Items, entry)
	}

	sortPaymentHistory(resp.Items)
	resp.Total = len(resp.Items)
	return resp, nil
}

func (s *paymentHistoryService) feeForMonth(ctx context.Context, gradeID, studentID string, scope *monthScope) (*monthFee, error) {
	stack, err := s.studentStack(ctx, gradeID, studentID, scope)
	if ierr.IsNoEffectiveFee(err) {
		return &monthFee{labels: []string{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &monthFee{
		total:  lo.ToPtr(stack.Total),
		labels: stack.Labels(s.currencySymbol()),
	}, nil
}

// sortPaymentHistory orders by school year start descending, month ascending and
// newest payment first. Year and payment ids break remaining ties.
func sortPaymentHistory(items []*dto.PaymentHistoryEntry) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.SchoolYearStartDate.Equal(b.SchoolYearStartDate) {
			return a.SchoolYearStartDate.After(b.SchoolYearStartDate)
		}
		if a.SchoolYearID != b.SchoolYearID {
			return a.SchoolYearID > b.SchoolYearID
		}
		if a.MonthNumber != b.MonthNumber {
			return a.MonthNumber < b.MonthNumber
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.PaymentID > b.PaymentID
	})
}
