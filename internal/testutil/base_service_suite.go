package testutil

import (
	"context"
	"time"

	"github.com/flexprice/tuition/internal/cache"
	"github.com/flexprice/tuition/internal/config"
	"github.com/flexprice/tuition/internal/logger"
	"github.com/flexprice/tuition/internal/types"
	"github.com/flexprice/tuition/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories for testing
type Stores struct {
	SchoolYearRepo      *InMemorySchoolYearStore
	SchoolMonthRepo     *InMemorySchoolMonthStore
	GradeRepo           *InMemoryGradeStore
	StudentRepo         *InMemoryStudentStore
	EnrollmentRepo      *InMemoryEnrollmentStore
	MonthlyFeeRepo      *InMemoryMonthlyFeeStore
	FeeOnGradeRepo      *InMemoryFeeOnGradeStore
	DiscountRepo        *InMemoryDiscountStore
	StudentDiscountRepo *InMemoryStudentDiscountStore
	PaymentRepo         *InMemoryPaymentStore
	PaymentMethodRepo   *InMemoryPaymentMethodStore
	SettingsRepo        *InMemorySettingsStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	cache  *cache.InMemoryCache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.now = time.Date(2023, time.November, 7, 0, 0, 0, 0, time.UTC)
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		SchoolYearRepo:      NewInMemorySchoolYearStore(),
		SchoolMonthRepo:     NewInMemorySchoolMonthStore(),
		GradeRepo:           NewInMemoryGradeStore(),
		StudentRepo:         NewInMemoryStudentStore(),
		EnrollmentRepo:      NewInMemoryEnrollmentStore(),
		MonthlyFeeRepo:      NewInMemoryMonthlyFeeStore(),
		FeeOnGradeRepo:      NewInMemoryFeeOnGradeStore(),
		DiscountRepo:        NewInMemoryDiscountStore(),
		StudentDiscountRepo: NewInMemoryStudentDiscountStore(),
		PaymentRepo:         NewInMemoryPaymentStore(),
		PaymentMethodRepo:   NewInMemoryPaymentMethodStore(),
		SettingsRepo:        NewInMemorySettingsStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.SchoolYearRepo.Clear()
	s.stores.SchoolMonthRepo.Clear()
	s.stores.GradeRepo.Clear()
	s.stores.StudentRepo.Clear()
	s.stores.EnrollmentRepo.Clear()
	s.stores.MonthlyFeeRepo.Clear()
	s.stores.FeeOnGradeRepo.Clear()
	s.stores.DiscountRepo.Clear()
	s.stores.StudentDiscountRepo.Clear()
	s.stores.PaymentRepo.Clear()
	s.stores.PaymentMethodRepo.Clear()
	s.stores.SettingsRepo.Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetCache returns the per-test cache
func (s *BaseServiceTestSuite) GetCache() *cache.InMemoryCache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the fixed test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// SetNow moves the fixed test time
func (s *BaseServiceTestSuite) SetNow(now time.Time) {
	s.now = now.UTC()
}

// Clock returns a clock reading the suite's current test time
func (s *BaseServiceTestSuite) Clock() func() time.Time {
	return func() time.Time { return s.now }
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
