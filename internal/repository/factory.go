package repository

import (
	"github.com/flexprice/tuition/internal/domain/discount"
	"github.com/flexprice/tuition/internal/domain/enrollment"
	"github.com/flexprice/tuition/internal/domain/grade"
	"github.com/flexprice/tuition/internal/domain/monthlyfee"
	"github.com/flexprice/tuition/internal/domain/payment"
	"github.com/flexprice/tuition/internal/domain/schoolmonth"
	"github.com/flexprice/tuition/internal/domain/schoolyear"
	domainSettings "github.com/flexprice/tuition/internal/domain/settings"
	"github.com/flexprice/tuition/internal/domain/student"
	"github.com/flexprice/tuition/internal/logger"
	"github.com/flexprice/tuition/internal/postgres"
	postgresRepo "github.com/flexprice/tuition/internal/repository/postgres"
	"go.uber.org/fx"
)

// Module provides every repository backed by postgres
var Module = fx.Options(
	fx.Provide(
		NewSchoolYearRepository,
		NewSchoolMonthRepository,
		NewGradeRepository,
		NewStudentRepository,
		NewEnrollmentRepository,
		NewMonthlyFeeRepository,
		NewFeeOnGradeRepository,
		NewDiscountRepository,
		NewStudentDiscountRepository,
		NewPaymentRepository,
		NewPaymentMethodRepository,
		NewSettingsRepository,
	),
)

func NewSchoolYearRepository(db *postgres.DB, logger *logger.Logger) schoolyear.Repository {
	return postgresRepo.NewSchoolYearRepository(db, logger)
}

func NewSchoolMonthRepository(db *postgres.DB, logger *logger.Logger) schoolmonth.Repository {
	return postgresRepo.NewSchoolMonthRepository(db, logger)
}

func NewGradeRepository(db *postgres.DB, logger *logger.Logger) grade.Repository {
	return postgresRepo.NewGradeRepository(db, logger)
}

func NewStudentRepository(db *postgres.DB, logger *logger.Logger) student.Repository {
	return postgresRepo.NewStudentRepository(db, logger)
}

func NewEnrollmentRepository(db *postgres.DB, logger *logger.Logger) enrollment.Repository {
	return postgresRepo.NewEnrollmentRepository(db, logger)
}

func NewMonthlyFeeRepository(db *postgres.DB, logger *logger.Logger) monthlyfee.Repository {
	return postgresRepo.NewMonthlyFeeRepository(db, logger)
}

func NewFeeOnGradeRepository(db *postgres.DB, logger *logger.Logger) monthlyfee.AssignmentRepository {
	return postgresRepo.NewFeeOnGradeRepository(db, logger)
}

func NewDiscountRepository(db *postgres.DB, logger *logger.Logger) discount.Repository {
	return postgresRepo.NewDiscountRepository(db, logger)
}

func NewStudentDiscountRepository(db *postgres.DB, logger *logger.Logger) discount.StudentDiscountRepository {
	return postgresRepo.NewStudentDiscountRepository(db, logger)
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(db, logger)
}

func NewPaymentMethodRepository(db *postgres.DB, logger *logger.Logger) payment.MethodRepository {
	return postgresRepo.NewPaymentMethodRepository(db, logger)
}

func NewSettingsRepository(db *postgres.DB, logger *logger.Logger) domainSettings.Repository {
	return postgresRepo.NewSettingsRepository(db, logger)
}
