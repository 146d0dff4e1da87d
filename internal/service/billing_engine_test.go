package service

import (
	"testing"

	"github.com/flexprice/tuition/internal/interfaces"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type BillingEngineSuite struct {
	billingSuite
	engine interfaces.BillingEngine
}

func TestBillingEngine(t *testing.T) {
	suite.Run(t, new(BillingEngineSuite))
}

func (s *BillingEngineSuite) SetupTest() {
	s.billingSuite.SetupTest()
	s.engine = NewBillingEngine(s.params, s.settings)
}

// One student walked through every operation the engine exposes
func (s *BillingEngineSuite) TestOperationsAgreeWithEachOther() {
	cash := s.createMethod("Cash", false, false)
	g := s.createGrade("Grade 1")
	s.assignFee("", g, s.createFee("Tuition", "100.00"), s.months[1])
	st := s.createStudent("Ana")
	s.enroll(st, g, s.year)
	s.attachDiscount(st, s.createDiscount("Early", "20", true), nil, nil)
	s.attachDiscount(st, s.createDiscount("Sibling", "10", false), nil, nil)
	s.pay(st, s.months[3], cash, types.PaymentTypePartial, "30", nil)

	ctx := s.GetContext()
	month := s.months[3].ID

	fee, err := s.engine.GetEffectiveFee(ctx, g.ID, month)
	s.Require().NoError(err)
	assertAmount(s.T(), "100", fee.Amount)

	total, err := s.engine.GetStudentTotalFee(ctx, g.ID, st.ID, month)
	s.Require().NoError(err)
	assertAmount(s.T(), "70", total.TotalFee)

	revenue, err := s.engine.GetMonthRevenue(ctx, month)
	s.Require().NoError(err)
	s.True(revenue.ExpectedRevenue.Equal(total.TotalFee))

	due, err := s.engine.GetStudentDue(ctx, month, st.ID)
	s.Require().NoError(err)
	assertAmount(s.T(), "40", due.Due)

	overdue, err := s.engine.GetStudentsInOverdue(ctx, month)
	s.Require().NoError(err)
	s.Require().Len(overdue.Items, 1)
	s.True(overdue.Items[0].Due.Equal(due.Due))

	report, err := s.engine.GetDiscountReport(ctx, month)
	s.Require().NoError(err)
	s.True(report.TotalDiscountAmount.Equal(revenue.TotalDiscountsApplied))

	history, err := s.engine.GetPaymentHistory(ctx, st.ID, lo.ToPtr(s.year.ID))
	s.Require().NoError(err)
	s.Require().Len(history.Items, 1)
	s.Require().NotNil(history.Items[0].MonthlyFee)
	s.True(history.Items[0].MonthlyFee.Equal(total.TotalFee))
}
