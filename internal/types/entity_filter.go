package types

// SchoolMonthFilter filters school months
type SchoolMonthFilter struct {
	*QueryFilter
	SchoolYearID   string   `json:"school_year_id,omitempty" form:"school_year_id"`
	SchoolMonthIDs []string `json:"school_month_ids,omitempty" form:"school_month_ids"`
}

func NewSchoolMonthFilter() *SchoolMonthFilter {
	return &SchoolMonthFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *SchoolMonthFilter) Validate() error {
	return QueryFilterOrDefault(f.QueryFilter).Validate()
}

// EnrollmentFilter filters student grade enrollments
type EnrollmentFilter struct {
	*QueryFilter
	SchoolYearID string   `json:"school_year_id,omitempty" form:"school_year_id"`
	StudentID    string   `json:"student_id,omitempty" form:"student_id"`
	GradeID      string   `json:"grade_id,omitempty" form:"grade_id"`
	StudentIDs   []string `json:"student_ids,omitempty" form:"student_ids"`
}

func NewEnrollmentFilter() *EnrollmentFilter {
	return &EnrollmentFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *EnrollmentFilter) Validate() error {
	return QueryFilterOrDefault(f.QueryFilter).Validate()
}

// FeeOnGradeFilter filters fee assignments
type FeeOnGradeFilter struct {
	*QueryFilter
	GradeID      string `json:"grade_id,omitempty" form:"grade_id"`
	MonthlyFeeID string `json:"monthly_fee_id,omitempty" form:"monthly_fee_id"`
}

func NewFeeOnGradeFilter() *FeeOnGradeFilter {
	return &FeeOnGradeFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *FeeOnGradeFilter) Validate() error {
	return QueryFilterOrDefault(f.QueryFilter).Validate()
}

// StudentDiscountFilter filters discount associations of students
type StudentDiscountFilter struct {
	*QueryFilter
	StudentID  string   `json:"student_id,omitempty" form:"student_id"`
	StudentIDs []string `json:"student_ids,omitempty" form:"student_ids"`
	DiscountID string   `json:"discount_id,omitempty" form:"discount_id"`
}

func NewStudentDiscountFilter() *StudentDiscountFilter {
	return &StudentDiscountFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *StudentDiscountFilter) Validate() error {
	return QueryFilterOrDefault(f.QueryFilter).Validate()
}

// PaymentFilter filters payments
type PaymentFilter struct {
	*QueryFilter
	StudentID      string   `json:"student_id,omitempty" form:"student_id"`
	SchoolMonthID  string   `json:"school_month_id,omitempty" form:"school_month_id"`
	SchoolMonthIDs []string `json:"school_month_ids,omitempty" form:"school_month_ids"`
	// VerifiedOnly keeps payments whose verified flag is not explicitly false
	VerifiedOnly bool `json:"verified_only,omitempty" form:"verified_only"`
}

func NewPaymentFilter() *PaymentFilter {
	return &PaymentFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *PaymentFilter) Validate() error {
	return QueryFilterOrDefault(f.QueryFilter).Validate()
}
