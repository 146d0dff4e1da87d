package service

import (
	"time"

	"github.com/flexprice/tuition/internal/domain/discount"
	"github.com/flexprice/tuition/internal/domain/enrollment"
	"github.com/flexprice/tuition/internal/domain/grade"
	"github.com/flexprice/tuition/internal/domain/monthlyfee"
	"github.com/flexprice/tuition/internal/domain/payment"
	"github.com/flexprice/tuition/internal/domain/schoolmonth"
	"github.com/flexprice/tuition/internal/domain/schoolyear"
	"github.com/flexprice/tuition/internal/domain/student"
	"github.com/flexprice/tuition/internal/testutil"
	"github.com/flexprice/tuition/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// billingSuite seeds a 2023-2024 school year starting on 2023-09-01 with ten
// school months. Month 3 is November 2023 and the suite clock reads 2023-11-07.
type billingSuite struct {
	testutil.BaseServiceTestSuite
	params   ServiceParams
	settings SettingsService
	year     *schoolyear.SchoolYear
	months   map[int]*schoolmonth.SchoolMonth
}

func (s *billingSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.params = ServiceParams{
		Logger:              s.GetLogger(),
		Config:              s.GetConfig(),
		Cache:               s.GetCache(),
		Now:                 s.Clock(),
		SchoolYearRepo:      stores.SchoolYearRepo,
		SchoolMonthRepo:     stores.SchoolMonthRepo,
		GradeRepo:           stores.GradeRepo,
		StudentRepo:         stores.StudentRepo,
		EnrollmentRepo:      stores.EnrollmentRepo,
		MonthlyFeeRepo:      stores.MonthlyFeeRepo,
		FeeOnGradeRepo:      stores.FeeOnGradeRepo,
		DiscountRepo:        stores.DiscountRepo,
		StudentDiscountRepo: stores.StudentDiscountRepo,
		PaymentRepo:         stores.PaymentRepo,
		PaymentMethodRepo:   stores.PaymentMethodRepo,
		SettingsRepo:        stores.SettingsRepo,
	}
	s.settings = NewSettingsService(s.params)

	s.year = s.createYear("2023-2024",
		time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC))
	s.months = s.createMonths(s.year)
}

func (s *billingSuite) createYear(name string, start, end time.Time) *schoolyear.SchoolYear {
	y := &schoolyear.SchoolYear{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SCHOOL_YEAR),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().SchoolYearRepo.Create(s.GetContext(), y))
	return y
}

func (s *billingSuite) createMonths(y *schoolyear.SchoolYear) map[int]*schoolmonth.SchoolMonth {
	months := make(map[int]*schoolmonth.SchoolMonth, y.MonthCount())
	for n := 1; n <= y.MonthCount(); n++ {
		m := &schoolmonth.SchoolMonth{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SCHOOL_MONTH),
			SchoolYearID: y.ID,
			MonthNumber:  n,
			BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
		}
		s.Require().NoError(s.GetStores().SchoolMonthRepo.Create(s.GetContext(), m))
		months[n] = m
	}
	return months
}

func (s *billingSuite) createGrade(name string) *grade.Grade {
	g := &grade.Grade{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_GRADE),
		Name:      name,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().GradeRepo.Create(s.GetContext(), g))
	return g
}

func (s *billingSuite) createStudent(name string) *student.Student {
	st := &student.Student{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STUDENT),
		Name:      name,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().StudentRepo.Create(s.GetContext(), st))
	return st
}

func (s *billingSuite) enroll(st *student.Student, g *grade.Grade, y *schoolyear.SchoolYear) *enrollment.StudentGrade {
	e := &enrollment.StudentGrade{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STUDENT_GRADE),
		StudentID:    st.ID,
		GradeID:      g.ID,
		SchoolYearID: y.ID,
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().EnrollmentRepo.Create(s.GetContext(), e))
	return e
}

func (s *billingSuite) createFee(description, amount string) *monthlyfee.MonthlyFee {
	f := &monthlyfee.MonthlyFee{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MONTHLY_FEE),
		Description: description,
		Amount:      types.MustParseAmount(amount),
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().MonthlyFeeRepo.Create(s.GetContext(), f))
	return f
}

// assignFee makes fee effective for the grade from month on. An empty id gets a generated one.
func (s *billingSuite) assignFee(id string, g *grade.Grade, f *monthlyfee.MonthlyFee, from *schoolmonth.SchoolMonth) *monthlyfee.FeeOnGrade {
	if id == "" {
		id = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_FEE_ON_GRADE)
	}
	a := &monthlyfee.FeeOnGrade{
		ID:                   id,
		GradeID:              g.ID,
		MonthlyFeeID:         f.ID,
		EffectiveFromMonthID: from.ID,
		BaseModel:            types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().FeeOnGradeRepo.Create(s.GetContext(), a))
	return a
}

func (s *billingSuite) createDiscount(name, amount string, isPercentage bool) *discount.Discount {
	d := &discount.Discount{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DISCOUNT),
		Name:         name,
		Amount:       types.MustParseAmount(amount),
		IsPercentage: isPercentage,
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().DiscountRepo.Create(s.GetContext(), d))
	return d
}

// attachDiscount links a discount to a student, scoped to a year, a month or neither
func (s *billingSuite) attachDiscount(st *student.Student, d *discount.Discount, schoolYearID, schoolMonthID *string) *discount.StudentDiscount {
	sd := &discount.StudentDiscount{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STUDENT_DISCOUNT),
		StudentID:     st.ID,
		DiscountID:    d.ID,
		SchoolYearID:  schoolYearID,
		SchoolMonthID: schoolMonthID,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().StudentDiscountRepo.Create(s.GetContext(), sd))
	return sd
}

func (s *billingSuite) createMethod(name string, manualVerification, referenceID bool) *payment.PaymentMethod {
	m := &payment.PaymentMethod{
		ID:                         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT_METHOD),
		Name:                       name,
		RequiresManualVerification: manualVerification,
		RequiresReferenceID:        referenceID,
		BaseModel:                  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().PaymentMethodRepo.Create(s.GetContext(), m))
	return m
}

func (s *billingSuite) pay(st *student.Student, month *schoolmonth.SchoolMonth, method *payment.PaymentMethod, paymentType types.PaymentType, amount string, verified *bool) *payment.Payment {
	return s.payAt(st, month, method, paymentType, amount, verified, time.Now().UTC())
}

func (s *billingSuite) payAt(st *student.Student, month *schoolmonth.SchoolMonth, method *payment.PaymentMethod, paymentType types.PaymentType, amount string, verified *bool, createdAt time.Time) *payment.Payment {
	p := &payment.Payment{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		StudentID:       st.ID,
		SchoolMonthID:   month.ID,
		PaymentType:     paymentType,
		Amount:          types.MustParseAmount(amount),
		PaymentMethodID: method.ID,
		Verified:        verified,
		BaseModel:       types.GetDefaultBaseModel(s.GetContext()),
	}
	p.CreatedAt = createdAt
	if method.RequiresReferenceID {
		p.Reference = lo.ToPtr("REF-" + p.ID)
	}
	s.Require().NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), p))
	return p
}

func assertAmount(t assert.TestingT, expected string, actual decimal.Decimal) bool {
	return assert.Truef(t, types.MustParseAmount(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}
