package service

import (
	"context"
	"sort"

	"github.com/flexprice/tuition/internal/api/dto"
	"github.com/flexprice/tuition/internal/domain/enrollment"
	"github.com/flexprice/tuition/internal/domain/grade"
	"github.com/flexprice/tuition/internal/domain/student"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// BillingReportService aggregates fees, discounts and payments over the students of a school month
type BillingReportService interface {
	GetMonthRevenue(ctx context.Context, schoolMonthID string) (*dto.MonthRevenueResponse, error)
	GetStudentDue(ctx context.Context, schoolMonthID, studentID string) (*dto.StudentDueResponse, error)
	GetStudentsInOverdue(ctx context.Context, schoolMonthID string) (*dto.ListStudentsInOverdueResponse, error)
	GetDiscountReport(ctx context.Context, schoolMonthID string) (*dto.DiscountReportResponse, error)
}

type billingReportService struct {
	billingReader
	settings SettingsService
}

func NewBillingReportService(params ServiceParams, settings SettingsService) BillingReportService {
	return &billingReportService{
		billingReader: billingReader{ServiceParams: params},
		settings:      settings,
	}
}

// studentBilling is the computed position of one enrolled student for a month
type studentBilling struct {
	Enrollment *enrollment.StudentGrade
	Student    *student.Student
	Grade      *grade.Grade
	// Skipped is set when the grade has no effective fee in the month
	Skipped bool
	Stack   DiscountStack
	Paid    decimal.Decimal
}

// monthPopulation computes every live enrollment of the month's school year.
// Students of a grade without an effective fee are marked skipped instead of
// failing the whole computation.
func (s *billingReportService) monthPopulation(ctx context.Context, scope *monthScope, withPayments bool) (_ []*studentBilling, err error) {
	ctx, cancel := s.reportContext(ctx)
	defer cancel()
	// runs before cancel so only a deadline or the caller ends ctx
	defer func() { err = interrupted(ctx, err) }()

	filter := types.NewEnrollmentFilter()
	filter.SchoolYearID = scope.Year.ID

	enrollments, err := s.EnrollmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return []*studentBilling{}, nil
	}

	students, err := s.StudentRepo.List(ctx, types.NewNoLimitQueryFilter())
	if err != nil {
		return nil, err
	}
	studentsByID := lo.KeyBy(students, func(st *student.Student) string { return st.ID })

	grades, err := s.GradeRepo.List(ctx, types.NewNoLimitQueryFilter())
	if err != nil {
		return nil, err
	}
	gradesByID := lo.KeyBy(grades, func(g *grade.Grade) string { return g.ID })

	// enrollments of deleted students or grades are not billed
	enrollments = lo.Filter(enrollments, func(e *enrollment.StudentGrade, _ int) bool {
		_, hasStudent := studentsByID[e.StudentID]
		_, hasGrade := gradesByID[e.GradeID]
		return hasStudent && hasGrade
	})
	sort.SliceStable(enrollments, func(i, j int) bool {
		a, b := studentsByID[enrollments[i].StudentID], studentsByID[enrollments[j].StudentID]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	// fees depend on the grade only, resolve each grade once before fanning out
	fees := make(map[string]*effectiveFee)
	for _, gradeID := range lo.Uniq(lo.Map(enrollments, func(e *enrollment.StudentGrade, _ int) string { return e.GradeID })) {
		resolved, err := s.resolveEffectiveFee(ctx, gradeID, scope)
		if ierr.IsNoEffectiveFee(err) {
			s.Logger.Debugw("grade has no effective fee, skipping its students",
				"grade_id", gradeID,
				"school_month_id", scope.Month.ID)
			continue
		}
		if err != nil {
			return nil, err
		}
		fees[gradeID] = resolved
	}

	return fanOut(ctx, s.reportConcurrency(), enrollments, func(ctx context.Context, e *enrollment.StudentGrade) (*studentBilling, error) {
		row := &studentBilling{
			Enrollment: e,
			Student:    studentsByID[e.StudentID],
			Grade:      gradesByID[e.GradeID],
			Paid:       decimal.Zero,
		}

		resolved, ok := fees[e.GradeID]
		if !ok {
			row.Skipped = true
			return row, nil
		}

		stack, err := s.stackForFee(ctx, resolved, e.StudentID, scope)
		if err != nil {
			return nil, err
		}
		row.Stack = stack

		if withPayments {
			paid, err := s.paidAmount(ctx, e.StudentID, scope.Month.ID)
			if err != nil {
				return nil, err
			}
			row.Paid = paid
		}
		return row, nil
	})
}

func (s *billingReportService) GetMonthRevenue(ctx context.Context, schoolMonthID string) (_ *dto.MonthRevenueResponse, err error) {
	defer func() { err = interrupted(ctx, err) }()

	scope, err := s.loadMonthScope(ctx, schoolMonthID)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := s.monthRevenue(ctx, scope.Month.ID)
	if err != nil {
		return nil, err
	}

	population, err := s.monthPopulation(ctx, scope, false)
	if err != nil {
		return nil, err
	}

	resp := &dto.MonthRevenueResponse{
		SchoolMonthID:           scope.Month.ID,
		ExpectedRevenue:         decimal.Zero,
		TotalRevenue:            totalRevenue,
		OriginalExpectedRevenue: decimal.Zero,
		TotalDiscountsApplied:   decimal.Zero,
		EnrolledStudents:        len(population),
		SkippedStudentIDs:       []string{},
	}

	for _, row := range population {
		if row.Skipped {
			resp.SkippedStudentIDs = append(resp.SkippedStudentIDs, row.Student.ID)
			continue
		}
		resp.OriginalExpectedRevenue = resp.OriginalExpectedRevenue.Add(row.Stack.OriginalFee)
		resp.ExpectedRevenue = resp.ExpectedRevenue.Add(row.Stack.Total)
		resp.TotalDiscountsApplied = resp.TotalDiscountsApplied.Add(row.Stack.DiscountAmount())
	}
	resp.CollectionRate = types.RatioPercent(resp.TotalRevenue, resp.ExpectedRevenue)

	s.Logger.Infow("computed month revenue",
		"school_month_id", scope.Month.ID,
		"expected_revenue", types.FormatAmount(resp.ExpectedRevenue),
		"total_revenue", types.FormatAmount(resp.TotalRevenue),
		"collection_rate", types.FormatAmount(resp.CollectionRate),
		"skipped_students", len(resp.SkippedStudentIDs))

	return resp, nil
}

func (s *billingReportService) GetStudentDue(ctx context.Context, schoolMonthID, studentID string) (_ *dto.StudentDueResponse, err error) {
	defer func() { err = interrupted(ctx, err) }()

	scope, err := s.loadMonthScope(ctx, schoolMonthID)
	if err != nil {
		return nil, err
	}

	if _, err := s.StudentRepo.Get(ctx, studentID); err != nil {
		return nil, err
	}

	enrolled, err := s.EnrollmentRepo.GetByStudentAndYear(ctx, studentID, scope.Year.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.GradeRepo.Get(ctx, enrolled.GradeID); err != nil {
		return nil, err
	}

	stack, err := s.studentStack(ctx, enrolled.GradeID, studentID, scope)
	if err != nil {
		return nil, err
	}

	paid, err := s.paidAmount(ctx, studentID, scope.Month.ID)
	if err != nil {
		return nil, err
	}

	dueDate, overdueDate, err := s.dueWindow(ctx, s.settings, scope)
	if err != nil {
		return nil, err
	}

	resp := &dto.StudentDueResponse{
		SchoolMonthID:   scope.Month.ID,
		StudentID:       studentID,
		GradeID:         enrolled.GradeID,
		TotalMonthlyFee: stack.Total,
		TotalPaid:       paid,
		Due:             stack.Total.Sub(paid),
		DueDate:         dueDate,
		OverdueDate:     overdueDate,
	}

	if resp.Due.IsPositive() {
		classification := types.ClassifyDueStatus(s.now(), dueDate, overdueDate)
		resp.Status = lo.ToPtr(classification.Status)
		resp.DaysPastDue = classification.DaysPastDue
		resp.DaysOverdue = classification.DaysOverdue
	}

	return resp, nil
}

func (s *billingReportService) GetStudentsInOverdue(ctx context.Context, schoolMonthID string) (_ *dto.ListStudentsInOverdueResponse, err error) {
	defer func() { err = interrupted(ctx, err) }()

	scope, err := s.loadMonthScope(ctx, schoolMonthID)
	if err != nil {
		return nil, err
	}

	dueDate, overdueDate, err := s.dueWindow(ctx, s.settings, scope)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListStudentsInOverdueResponse{
		SchoolMonthID: scope.Month.ID,
		Items:         []*dto.OverdueStudentResponse{},
	}

	// the window is the same for every student of the month
	classification := types.ClassifyDueStatus(s.now(), dueDate, overdueDate)
	if classification.Status == types.DueStatusCurrent {
		return resp, nil
	}

	population, err := s.monthPopulation(ctx, scope, true)
	if err != nil {
		return nil, err
	}

	for _, row := range population {
		if row.Skipped || row.Paid.GreaterThanOrEqual(row.Stack.Total) {
			continue
		}
		resp.Items = append(resp.Items, &dto.OverdueStudentResponse{
			StudentID:     row.Student.ID,
			StudentName:   row.Student.Name,
			GradeID:       row.Grade.ID,
			GradeName:     row.Grade.Name,
			DiscountedFee: row.Stack.Total,
			TotalPaid:     row.Paid,
			Due:           row.Stack.Total.Sub(row.Paid),
			Status:        classification.Status,
			DueDate:       dueDate,
			OverdueDate:   overdueDate,
			DaysPastDue:   classification.DaysPastDue,
			DaysOverdue:   classification.DaysOverdue,
		})
	}
	resp.Total = len(resp.Items)

	s.Logger.Infow("computed students in overdue",
		"school_month_id", scope.Month.ID,
		"status", classification.Status,
		"students", resp.Total)

	return resp, nil
}

func (s *billingReportService) GetDiscountReport(ctx context.Context, schoolMonthID string) (_ *dto.DiscountReportResponse, err error) {
	defer func() { err = interrupted(ctx, err) }()

	scope, err := s.loadMonthScope(ctx, schoolMonthID)
	if err != nil {
		return nil, err
	}

	population, err := s.monthPopulation(ctx, scope, false)
	if err != nil {
		return nil, err
	}

	symbol := s.currencySymbol()
	resp := &dto.DiscountReportResponse{
		SchoolMonthID:         scope.Month.ID,
		Students:              []*dto.StudentDiscountSummary{},
		Breakdown:             make(map[string]*dto.DiscountBreakdownEntry),
		TotalOriginalAmount:   decimal.Zero,
		TotalDiscountedAmount: decimal.Zero,
		TotalDiscountAmount:   decimal.Zero,
	}

	for _, row := range population {
		if row.Skipped {
			continue
		}

		resp.TotalStudents++
		resp.TotalOriginalAmount = resp.TotalOriginalAmount.Add(row.Stack.OriginalFee)
		resp.TotalDiscountedAmount = resp.TotalDiscountedAmount.Add(row.Stack.Total)
		resp.TotalDiscountAmount = resp.TotalDiscountAmount.Add(row.Stack.DiscountAmount())

		resp.Students = append(resp.Students, &dto.StudentDiscountSummary{
			StudentID:      row.Student.ID,
			StudentName:    row.Student.Name,
			GradeID:        row.Grade.ID,
			OriginalAmount: row.Stack.OriginalFee,
			DiscountedFee:  row.Stack.Total,
			DiscountAmount: row.Stack.DiscountAmount(),
			Discounts:      row.Stack.Labels(symbol),
		})

		if len(row.Stack.Applied) == 0 {
			continue
		}
		resp.StudentsWithDiscounts++

		for _, applied := range row.Stack.Applied {
			label := applied.Discount.Label(symbol)
			entry, ok := resp.Breakdown[label]
			if !ok {
				entry = &dto.DiscountBreakdownEntry{
					Label:      label,
					Total:      decimal.Zero,
					StudentIDs: []string{},
				}
				resp.Breakdown[label] = entry
			}
			entry.Count++
			entry.Total = entry.Total.Add(applied.Amount)
			entry.StudentIDs = append(entry.StudentIDs, row.Student.ID)
		}
	}

	resp.DiscountPercentage = types.RatioPercent(resp.TotalDiscountAmount, resp.TotalOriginalAmount)
	resp.StudentsWithDiscountsPercentage = types.RatioPercent(
		decimal.NewFromInt(int64(resp.StudentsWithDiscounts)),
		decimal.NewFromInt(int64(resp.TotalStudents)),
	)
	resp.AverageDiscountPerStudent = types.SafeDiv(
		resp.TotalDiscountAmount,
		decimal.NewFromInt(int64(resp.StudentsWithDiscounts)),
	)

	return resp, nil
}
