package service

import (
	"time"

	"github.com/flexprice/tuition/internal/cache"
	"github.com/flexprice/tuition/internal/config"
	"github.com/flexprice/tuition/internal/domain/discount"
	"github.com/flexprice/tuition/internal/domain/enrollment"
	"github.com/flexprice/tuition/internal/domain/grade"
	"github.com/flexprice/tuition/internal/domain/monthlyfee"
	"github.com/flexprice/tuition/internal/domain/payment"
	"github.com/flexprice/tuition/internal/domain/schoolmonth"
	"github.com/flexprice/tuition/internal/domain/schoolyear"
	"github.com/flexprice/tuition/internal/domain/settings"
	"github.com/flexprice/tuition/internal/domain/student"
	"github.com/flexprice/tuition/internal/logger"
)

// Clock returns the current time. Reports classify due dates against it.
type Clock func() time.Time

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache
	Now    Clock

	// Repositories
	SchoolYearRepo      schoolyear.Repository
	SchoolMonthRepo     schoolmonth.Repository
	GradeRepo           grade.Repository
	StudentRepo         student.Repository
	EnrollmentRepo      enrollment.Repository
	MonthlyFeeRepo      monthlyfee.Repository
	FeeOnGradeRepo      monthlyfee.AssignmentRepository
	DiscountRepo        discount.Repository
	StudentDiscountRepo discount.StudentDiscountRepository
	PaymentRepo         payment.Repository
	PaymentMethodRepo   payment.MethodRepository
	SettingsRepo        settings.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	schoolYearRepo schoolyear.Repository,
	schoolMonthRepo schoolmonth.Repository,
	gradeRepo grade.Repository,
	studentRepo student.Repository,
	enrollmentRepo enrollment.Repository,
	monthlyFeeRepo monthlyfee.Repository,
	feeOnGradeRepo monthlyfee.AssignmentRepository,
	discountRepo discount.Repository,
	studentDiscountRepo discount.StudentDiscountRepository,
	paymentRepo payment.Repository,
	paymentMethodRepo payment.MethodRepository,
	settingsRepo settings.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:              logger,
		Config:              config,
		Cache:               cache,
		Now:                 SystemClock,
		SchoolYearRepo:      schoolYearRepo,
		SchoolMonthRepo:     schoolMonthRepo,
		GradeRepo:           gradeRepo,
		StudentRepo:         studentRepo,
		EnrollmentRepo:      enrollmentRepo,
		MonthlyFeeRepo:      monthlyFeeRepo,
		FeeOnGradeRepo:      feeOnGradeRepo,
		DiscountRepo:        discountRepo,
		StudentDiscountRepo: studentDiscountRepo,
		PaymentRepo:         paymentRepo,
		PaymentMethodRepo:   paymentMethodRepo,
		SettingsRepo:        settingsRepo,
	}
}

// SystemClock is the wall clock in UTC
func SystemClock() time.Time {
	return time.Now().UTC()
}

func (p ServiceParams) now() time.Time {
	if p.Now == nil {
		return SystemClock()
	}
	return p.Now().UTC()
}
