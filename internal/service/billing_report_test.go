package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/flexprice/tuition/internal/api/dto"
	"github.com/flexprice/tuition/internal/domain/enrollment"
	"github.com/flexprice/tuition/internal/domain/student"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type BillingReportServiceSuite struct {
	billingSuite
	service BillingReportService
}

func TestBillingReportService(t *testing.T) {
	suite.Run(t, new(BillingReportServiceSuite))
}

func (s *BillingReportServiceSuite) SetupTest() {
	s.billingSuite.SetupTest()
	s.service = NewBillingReportService(s.params, s.settings)
}

func (s *BillingReportServiceSuite) TestGetMonthRevenue() {
	cash := s.createMethod("Cash", false, false)
	transfer := s.createMethod("Transfer", true, true)

	g := s.createGrade("Grade 1")
	s.assignFee("", g, s.createFee("Tuition", "100"), s.months[1])

	ana := s.createStudent("Ana")
	ben := s.createStudent("Ben")
	s.enroll(ana, g, s.year)
	s.enroll(ben, g, s.year)
	s.attachDiscount(ana, s.createDiscount("Early", "20", true), nil, nil)

	s.pay(ana, s.months[3], transfer, types.PaymentTypeFull, "80", lo.ToPtr(true))
	s.pay(ben, s.months[3], transfer, types.PaymentTypePartial, "50", lo.ToPtr(false))
	s.pay(ben, s.months[3], cash, types.PaymentTypePartial, "30", nil)
	// other months do not count
	s.pay(ben, s.months[2], cash, types.PaymentTypeFull, "100", nil)

	resp, err := s.service.GetMonthRevenue(s.GetContext(), s.months[3].ID)
	s.Require().NoError(err)

	assertAmount(s.T(), "200", resp.OriginalExpectedRevenue)
	assertAmount(s.T(), "180", resp.ExpectedRevenue)
	assertAmount(s.T(), "20", resp.TotalDiscountsApplied)
	assertAmount(s.T(), "110", resp.TotalRevenue)
	assertAmount(s.T(), "61.11", resp.CollectionRate)
	s.Equal(2, resp.EnrolledStudents)
	s.Empty(resp.SkippedStudentIDs)
}

func (s *BillingReportServiceSuite) TestGetMonthRevenue_CollectionRateBounds() {
	cash := s.createMethod("Cash", false, false)

	s.Run("zero expected revenue", func() {
		st := s.createStudent("Walk-in")
		s.pay(st, s.months[1], cash, types.PaymentTypeFull, "40", nil)

		resp, err := s.service.GetMonthRevenue(s.GetContext(), s.months[1].ID)
		s.Require().NoError(err)
		assertAmount(s.T(), "0", resp.ExpectedRevenue)
		assertAmount(s.T(), "40", resp.TotalRevenue)
		assertAmount(s.T(), "0", resp.CollectionRate)
	})

	s.Run("fully collected", func() {
		g := s.createGrade("Grade 2")
		s.assignFee("", g, s.createFee("Tuition", "33.33"), s.months[1])
		st := s.createStudent("Cleo")
		s.enroll(st, g, s.year)
		s.pay(st, s.months[5], cash, types.PaymentTypePartial, "13.33", nil)
		s.pay(st, s.months[5], cash, types.PaymentTypePartial, "20", nil)

		resp, err := s.service.GetMonthRevenue(s.GetContext(), s.months[5].ID)
		s.Require().NoError(err)
		s.True(resp.TotalRevenue.Equal(resp.ExpectedRevenue))
		assertAmount(s.T(), "100", resp.CollectionRate)
	})
}

func (s *BillingReportServiceSuite) TestGetMonthRevenue_SkipsGradeWithoutFee() {
	priced := s.createGrade("Grade 1")
	unpriced := s.createGrade("Grade 2")
	s.assignFee("", priced, s.createFee("Tuition", "100"), s.months[1])

	ana := s.createStudent("Ana")
	ben := s.createStudent("Ben")
	s.enroll(ana, priced, s.year)
	s.enroll(ben, unpriced, s.year)

	resp, err := s.service.GetMonthRevenue(s.GetContext(), s.months[3].ID)
	s.Require().NoError(err)
	assertAmount(s.T(), "100", resp.ExpectedRevenue)
	s.Equal(2, resp.EnrolledStudents)
	s.Equal([]string{ben.ID}, resp.SkippedStudentIDs)

	// the same student fails on a single student call
	_, err = s.service.GetStudentDue(s.GetContext(), s.months[3].ID, ben.ID)
	s.True(ierr.IsNoEffectiveFee(err), "got %v", err)
}

func (s *BillingReportServiceSuite) TestGradeWithoutFeeIsLeftOutOfReports() {
	cash := s.createMethod("Cash", false, false)
	priced := s.createGrade("Grade 1")
	unpriced := s.createGrade("Grade 2")
	s.assignFee("", priced, s.createFee("Tuition", "100"), s.months[1])

	ana := s.createStudent("Ana")
	ben := s.createStudent("Ben")
	s.enroll(ana, priced, s.year)
	s.enroll(ben, unpriced, s.year)
	s.attachDiscount(ben, s.createDiscount("Sibling", "10", false), nil, nil)
	s.pay(ana, s.months[3], cash, types.PaymentTypePartial, "30", nil)

	s.Run("students in overdue", func() {
		resp, err := s.service.GetStudentsInOverdue(s.GetContext(), s.months[3].ID)
		s.Require().NoError(err)
		s.Require().Equal(1, resp.Total)
		s.Equal(ana.ID, resp.Items[0].StudentID)
	})

	s.Run("discount report", func() {
		resp, err := s.service.GetDiscountReport(s.GetContext(), s.months[3].ID)
		s.Require().NoError(err)
		s.Equal(1, resp.TotalStudents)
		s.Equal(0, resp.StudentsWithDiscounts)
		s.Require().Len(resp.Students, 1)
		s.Equal(ana.ID, resp.Students[0].StudentID)
		s.Empty(resp.Breakdown)
		assertAmount(s.T(), "100", resp.TotalOriginalAmount)
	})
}

func (s *BillingReportServiceSuite) TestGetMonthRevenue_ExcludesDeletedRows() {
	g := s.createGrade("Grade 1")
	s.assignFee("", g, s.createFee("Tuition", "100"), s.months[1])

	ana := s.createStudent("Ana")
	ben := s.createStudent("Ben")
	cleo := s.createStudent("Cleo")
	s.enroll(ana, g, s.year)
	s.enroll(ben, g, s.year)
	withdrawn := s.enroll(cleo, g, s.year)

	s.Require().NoError(s.GetStores().StudentRepo.Delete(s.GetContext(), ben.ID))
	s.Require().NoError(s.GetStores().EnrollmentRepo.Delete(s.GetContext(), withdrawn.ID))

	resp, err := s.service.GetMonthRevenue(s.GetContext(), s.months[3].ID)
	s.Require().NoError(err)
	s.Equal(1, resp.EnrolledStudents)
	assertAmount(s.T(), "100", resp.ExpectedRevenue)
}

func (s *BillingReportServiceSuite) TestGetMonthRevenue_OnlyEnrollmentsOfTheMonthsYear() {
	g := s.createGrade("Grade 1")
	s.assignFee("", g, s.createFee("Tuition", "100"), s.months[1])

	previous := s.createYear("2022-2023",
		time.Date(2022, time.September, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC))
	s.createMonths(previous)

	s.enroll(s.createStudent("Ana"), g, s.year)
	s.enroll(s.createStudent("Ben"), g, previous)

	resp, err := s.service.GetMonthRevenue(s.GetContext(), s.months[3].ID)
	s.Require().NoError(err)
	s.Equal(1, resp.EnrolledStudents)
}

func (s *BillingReportServiceSuite) TestGetMonthRevenue_CancelledIsIncomplete() {
	g := s.createGrade("Grade 1")
	s.assignFee("", g, s.createFee("Tuition", "100"), s.months[1])
	for _, name := range []string{"Ana", "Ben", "Cleo", "Dan"} {
		s.enroll(s.createStudent(name), g, s.year)
	}

	ctx, cancel := context.WithCancel(s.GetContext())
	cancel()

	resp, err := s.service.GetMonthRevenue(ctx, s.months[3].ID)
	s.Nil(resp)
	s.True(ierr.IsIncomplete(err), "got %v", err)

	_, err = s.service.GetDiscountReport(ctx, s.months[3].ID)
	s.True(ierr.IsIncomplete(err), "got %v", err)
}

// ctxEnrollmentStore fails reads on an ended ctx the way the postgres
// repository does before its driver error is classified
type ctxEnrollmentStore struct {
	enrollment.Repository
}

func (r ctxEnrollmentStore) List(ctx context.Context, filter *types.EnrollmentFilter) ([]*enrollment.StudentGrade, error) {
	if err := ctx.Err(); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return r.Repository.List(ctx, filter)
}

func (r ctxEnrollmentStore) GetByStudentAndYear(ctx context.Context, studentID, schoolYearID string) (*enrollment.StudentGrade, error) {
	if err := ctx.Err(); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return r.Repository.GetByStudentAndYear(ctx, studentID, schoolYearID)
}

func (s *BillingReportServiceSuite) TestReports_CancelledStoreReadIsIncomplete() {
	g := s.createGrade("Grade 1")
	s.assignFee("", g, s.createFee("Tuition", "100"), s.months[1])
	ana := s.createStudent("Ana")
	s.enroll(ana, g, s.year)

	params := s.params
	params.EnrollmentRepo = ctxEnrollmentStore{Repository: s.GetStores().EnrollmentRepo}
	service := NewBillingReportService(params, s.settings)

	ctx, cancel := context.WithCancel(s.GetContext())
	cancel()

	tests := []struct {
		name string
		run  func() error
	}{
		{
			name: "month revenue",
			run: func() error {
				_, err := service.GetMonthRevenue(ctx, s.months[3].ID)
				return err
			},
		},
		{
			name: "students in overdue",
			run: func() error {
				_, err := service.GetStudentsInOverdue(ctx, s.months[3].ID)
				return err
			},
		},
		{
			name: "discount report",
			run: func() error {
				_, err := service.GetDiscountReport(ctx, s.months[3].ID)
				return err
			},
		},
		{
			name: "student due",
			run: func() error {
				_, err := service.GetStudentDue(ctx, s.months[3].ID, ana.ID)
				return err
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := tt.run()
			s.True(ierr.IsIncomplete(err), "got %v", err)
			s.Equal(http.StatusServiceUnavailable, ierr.HTTPStatusFromErr(err))
		})
	}

	// a live ctx keeps the store error untouched
	_, err := service.GetStudentDue(s.GetContext(), s.months[3].ID, "stu_missing")
	s.True(ierr.IsNotFound(err), "got %v", err)
}

// overdueFixture enrolls Ana, who owes 80 after a 20% discount and paid it all,
// and Ben, who owes 100 and paid 30
func (s *BillingReportServiceSuite) overdueFixture() (ana, ben string) {
	cash := s.createMethod("Cash", false, false)
	g := s.createGrade("Grade 1")
	s.assignFee("", g, s.createFee("Tuition", "100"), s.months[1])

	a := s.createStudent("Ana")
	b := s.createStudent("Ben")
	s.enroll(a, g, s.year)
	s.enroll(b, g, s.year)
	s.attachDiscount(a, s.createDiscount("Early", "20", true), nil, nil)

	for _, month := range []int{2, 3} {
		s.pay(a, s.months[month], cash, types.PaymentTypePartial, "50", nil)
		s.pay(a, s.months[month], cash, types.PaymentTypePartial, "30", nil)
		s.pay(b, s.months[month], cash, types.PaymentTypePartial, "30", nil)
	}
	return a.ID, b.ID
}

func (s *BillingReportServiceSuite) TestGetStudentsInOverdue_Due() {
	_, ben := s.overdueFixture()

	resp, err := s.service.GetStudentsInOverdue(s.GetContext(), s.months[3].ID)
	s.Require().NoError(err)
	s.Require().Equal(1, resp.Total)

	item := resp.Items[0]
	s.Equal(ben, item.StudentID)
	s.Equal("Ben", item.StudentName)
	s.Equal("Grade 1", item.GradeName)
	s.Equal(types.DueStatusDue, item.Status)
	s.Equal(2, item.DaysPastDue)
	s.Equal(0, item.DaysOverdue)
	s.Equal(time.Date(2023, time.November, 5, 0, 0, 0, 0, time.UTC), item.DueDate)
	s.Equal(time.Date(2023, time.November, 10, 0, 0, 0, 0, time.UTC), item.OverdueDate)
	assertAmount(s.T(), "100", item.DiscountedFee)
	assertAmount(s.T(), "30", item.TotalPaid)
	assertAmount(s.T(), "70", item.Due)
}

func (s *BillingReportServiceSuite) TestGetStudentsInOverdue_Overdue() {
	_, ben := s.overdueFixture()

	resp, err := s.service.GetStudentsInOverdue(s.GetContext(), s.months[2].ID)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal(ben, resp.Items[0].StudentID)
	s.Equal(types.DueStatusOverdue, resp.Items[0].Status)
	s.Equal(28, resp.Items[0].DaysOverdue)
}

func (s *BillingReportServiceSuite) TestGetStudentsInOverdue_Boundaries() {
	s.overdueFixture()

	tests := []struct {
		name       string
		now        time.Time
		wantStatus *types.DueStatus
	}{
		{
			name: "instant before due date",
			now:  time.Date(2023, time.November, 4, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:       "at due date",
			now:        time.Date(2023, time.November, 5, 0, 0, 0, 0, time.UTC),
			wantStatus: lo.ToPtr(types.DueStatusDue),
		},
		{
			name:       "instant before overdue date",
			now:        time.Date(2023, time.November, 9, 23, 59, 59, 0, time.UTC),
			wantStatus: lo.ToPtr(types.DueStatusDue),
		},
		{
			name:       "at overdue date",
			now:        time.Date(2023, time.November, 10, 0, 0, 0, 0, time.UTC),
			wantStatus: lo.ToPtr(types.DueStatusOverdue),
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetNow(tt.now)
			resp, err := s.service.GetStudentsInOverdue(s.GetContext(), s.months[3].ID)
			s.Require().NoError(err)
			if tt.wantStatus == nil {
				s.Empty(resp.Items)
				s.Equal(0, resp.Total)
				return
			}
			s.Require().Len(resp.Items, 1)
			s.Equal(*tt.wantStatus, resp.Items[0].Status)
		})
	}
}

func (s *BillingReportServiceSuite) TestGetStudentsInOverdue_UsesStoredSettings() {
	s.overdueFixture()

	_, err := s.settings.UpdateSettingByKey(s.GetContext(), types.SettingKeyPaymentDueDay, &dto.UpdateSettingRequest{Value: "10"})
	s.Require().NoError(err)

	resp, err := s.service.GetStudentsInOverdue(s.GetContext(), s.months[3].ID)
	s.Require().NoError(err)
	s.Empty(resp.Items)

	_, err = s.settings.UpdateSettingByKey(s.GetContext(), types.SettingKeyPaymentDueDay, &dto.UpdateSettingRequest{Value: "1"})
	s.Require().NoError(err)
	_, err = s.settings.UpdateSettingByKey(s.GetContext(), types.SettingKeyDaysUntilOverdue, &dto.UpdateSettingRequest{Value: "0"})
	s.Require().NoError(err)

	resp, err = s.service.GetStudentsInOverdue(s.GetContext(), s.months[3].ID)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal(types.DueStatusOverdue, resp.Items[0].Status)
	s.Equal(6, resp.Items[0].DaysOverdue)
}

func (s *BillingReportServiceSuite) TestGetStudentDue() {
	ana, ben := s.overdueFixture()

	s.Run("fully paid has no status", func() {
		resp, err := s.service.GetStudentDue(s.GetContext(), s.months[3].ID, ana)
		s.Require().NoError(err)
		assertAmount(s.T(), "80", resp.TotalMonthlyFee)
		assertAmount(s.T(), "80", resp.TotalPaid)
		assertAmount(s.T(), "0", resp.Due)
		s.Nil(resp.Status)
	})

	s.Run("partial payment is due", func() {
		resp, err := s.service.GetStudentDue(s.GetContext(), s.months[3].ID, ben)
		s.Require().NoError(err)
		assertAmount(s.T(), "70", resp.Due)
		s.Require().NotNil(resp.Status)
		s.Equal(types.DueStatusDue, *resp.Status)
		s.Equal(2, resp.DaysPastDue)
		s.Equal(time.Date(2023, time.November, 5, 0, 0, 0, 0, time.UTC), resp.DueDate)
	})

	s.Run("no payments at all", func() {
		resp, err := s.service.GetStudentDue(s.GetContext(), s.months[4].ID, ben)
		s.Require().NoError(err)
		assertAmount(s.T(), "100", resp.Due)
		s.Require().NotNil(resp.Status)
		s.Equal(types.DueStatusCurrent, *resp.Status)
	})
}

func (s *BillingReportServiceSuite) TestGetStudentDue_Overpaid() {
	cash := s.createMethod("Cash", false, false)
	g := s.createGrade("Grade 1")
	s.assignFee("", g, s.createFee("Tuition", "100"), s.months[1])
	st := s.createStudent("Ana")
	s.enroll(st, g, s.year)
	s.pay(st, s.months[3], cash, types.PaymentTypeFull, "120", nil)

	resp, err := s.service.GetStudentDue(s.GetContext(), s.months[3].ID, st.ID)
	s.Require().NoError(err)
	assertAmount(s.T(), "-20", resp.Due)
	s.Nil(resp.Status)
}

func (s *BillingReportServiceSuite) TestGetStudentDue_Errors() {
	g := s.createGrade("Grade 1")
	s.assignFee("", g, s.createFee("Tuition", "100"), s.months[1])
	st := s.createStudent("Ana")

	_, err := s.service.GetStudentDue(s.GetContext(), s.months[3].ID, st.ID)
	s.True(ierr.IsNotFound(err), "student without enrollment: %v", err)

	_, err = s.service.GetStudentDue(s.GetContext(), s.months[3].ID, "stu_missing")
	s.True(ierr.IsNotFound(err))

	_, err = s.service.GetStudentDue(s.GetContext(), "sm_missing", st.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *BillingReportServiceSuite) TestGetDiscountReport() {
	g := s.createGrade("Grade 1")
	s.assignFee("", g, s.createFee("Tuition", "100"), s.months[1])

	ana := s.createStudent("Ana")
	ben := s.createStudent("Ben")
	cleo := s.createStudent("Cleo")
	for _, st := range []*student.Student{ana, ben, cleo} {
		s.enroll(st, g, s.year)
	}
	early := s.createDiscount("Early", "20", true)
	s.attachDiscount(ana, early, nil, nil)
	s.attachDiscount(ben, early, nil, lo.ToPtr(s.months[3].ID))
	s.attachDiscount(ben, s.createDiscount("Sibling", "10", false), lo.ToPtr(s.year.ID), nil)

	resp, err := s.service.GetDiscountReport(s.GetContext(), s.months[3].ID)
	s.Require().NoError(err)

	s.Equal(3, resp.TotalStudents)
	s.Equal(2, resp.StudentsWithDiscounts)
	assertAmount(s.T(), "300", resp.TotalOriginalAmount)
	assertAmount(s.T(), "250", resp.TotalDiscountedAmount)
	assertAmount(s.T(), "50", resp.TotalDiscountAmount)
	assertAmount(s.T(), "16.67", resp.DiscountPercentage)
	assertAmount(s.T(), "66.67", resp.StudentsWithDiscountsPercentage)
	assertAmount(s.T(), "25", resp.AverageDiscountPerStudent)

	s.Require().Len(resp.Students, 3)
	s.Equal([]string{"Ana", "Ben", "Cleo"}, lo.Map(resp.Students, func(r *dto.StudentDiscountSummary, _ int) string { return r.StudentName }))
	s.Equal([]string{"Early(20%)"}, resp.Students[0].Discounts)
	s.Equal([]string{"Early(20%)", "Sibling($10)"}, resp.Students[1].Discounts)
	s.Empty(resp.Students[2].Discounts)
	assertAmount(s.T(), "70", resp.Students[1].DiscountedFee)

	s.Require().Len(resp.Breakdown, 2)
	earlyEntry := resp.Breakdown["Early(20%)"]
	s.Require().NotNil(earlyEntry)
	s.Equal(2, earlyEntry.Count)
	assertAmount(s.T(), "40", earlyEntry.Total)
	s.Equal([]string{ana.ID, ben.ID}, earlyEntry.StudentIDs)

	siblingEntry := resp.Breakdown["Sibling($10)"]
	s.Require().NotNil(siblingEntry)
	s.Equal(1, siblingEntry.Count)
	assertAmount(s.T(), "10", siblingEntry.Total)
}

func (s *BillingReportServiceSuite) TestGetDiscountReport_NoDiscounts() {
	g := s.createGrade("Grade 1")
	s.assignFee("", g, s.createFee("Tuition", "100"), s.months[1])
	s.enroll(s.createStudent("Ana"), g, s.year)

	resp, err := s.service.GetDiscountReport(s.GetContext(), s.months[3].ID)
	s.Require().NoError(err)
	s.Equal(1, resp.TotalStudents)
	s.Equal(0, resp.StudentsWithDiscounts)
	assertAmount(s.T(), "0", resp.AverageDiscountPerStudent)
	assertAmount(s.T(), "0", resp.StudentsWithDiscountsPercentage)
	s.Empty(resp.Breakdown)
}
