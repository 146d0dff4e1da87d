package dto

import (
	"time"

	"github.com/flexprice/tuition/internal/types"
	"github.com/shopspring/decimal"
)

// Currency and percentage fields are decimal.Decimal, which marshals to a JSON string.

// EffectiveFeeResponse is the fee in force for a grade in a school month
type EffectiveFeeResponse struct {
	GradeID                  string          `json:"grade_id"`
	SchoolMonthID            string          `json:"school_month_id"`
	MonthlyFeeID             string          `json:"monthly_fee_id"`
	FeeOnGradeID             string          `json:"fee_on_grade_id"`
	Description              string          `json:"description"`
	Amount                   decimal.Decimal `json:"amount" swaggertype:"string"`
	EffectiveFromMonthID     string          `json:"effective_from_month_id"`
	EffectiveFromMonthNumber int             `json:"effective_from_month_number"`
}

// AppliedDiscountResponse is one discount and the part of the fee it removed
type AppliedDiscountResponse struct {
	DiscountID   string          `json:"discount_id"`
	Name         string          `json:"name"`
	Label        string          `json:"label"`
	IsPercentage bool            `json:"is_percentage"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string"`
	// AppliedAmount is the currency amount this discount took off the fee
	AppliedAmount decimal.Decimal `json:"applied_amount" swaggertype:"string"`
}

// StudentTotalFeeResponse is the discounted fee of a student for a school month
type StudentTotalFeeResponse struct {
	GradeID       string          `json:"grade_id"`
	StudentID     string          `json:"student_id"`
	SchoolMonthID string          `json:"school_month_id"`
	OriginalFee   decimal.Decimal `json:"original_fee" swaggertype:"string"`
	// PercentageApplied is the stacked percentage after capping at 100
	PercentageApplied  decimal.Decimal            `json:"percentage_applied" swaggertype:"string"`
	PercentageDiscount decimal.Decimal            `json:"percentage_discount" swaggertype:"string"`
	FixedDiscount      decimal.Decimal            `json:"fixed_discount" swaggertype:"string"`
	TotalFee           decimal.Decimal            `json:"total_fee" swaggertype:"string"`
	Discounts          []*AppliedDiscountResponse `json:"discounts"`
}

// MonthRevenueResponse summarizes expected and collected revenue of a school month
type MonthRevenueResponse struct {
	SchoolMonthID           string          `json:"school_month_id"`
	ExpectedRevenue         decimal.Decimal `json:"expected_revenue" swaggertype:"string"`
	TotalRevenue            decimal.Decimal `json:"total_revenue" swaggertype:"string"`
	OriginalExpectedRevenue decimal.Decimal `json:"original_expected_revenue" swaggertype:"string"`
	TotalDiscountsApplied   decimal.Decimal `json:"total_discounts_applied" swaggertype:"string"`
	CollectionRate          decimal.Decimal `json:"collection_rate" swaggertype:"string"`
	EnrolledStudents        int             `json:"enrolled_students"`
	// SkippedStudentIDs lists enrolled students whose grade has no effective fee
	SkippedStudentIDs []string `json:"skipped_student_ids"`
}

// StudentDueResponse is what a student owes for a school month
type StudentDueResponse struct {
	SchoolMonthID   string          `json:"school_month_id"`
	StudentID       string          `json:"student_id"`
	GradeID         string          `json:"grade_id"`
	TotalMonthlyFee decimal.Decimal `json:"total_monthly_fee" swaggertype:"string"`
	TotalPaid       decimal.Decimal `json:"total_paid" swaggertype:"string"`
	// Due is negative when the student paid more than the fee
	Due         decimal.Decimal  `json:"due" swaggertype:"string"`
	DueDate     time.Time        `json:"due_date"`
	OverdueDate time.Time        `json:"overdue_date"`
	Status      *types.DueStatus `json:"status,omitempty"`
	DaysPastDue int              `json:"days_past_due"`
	DaysOverdue int              `json:"days_overdue"`
}

// OverdueStudentResponse is a student with an outstanding balance past the due date
type OverdueStudentResponse struct {
	StudentID     string          `json:"student_id"`
	StudentName   string          `json:"student_name"`
	GradeID       string          `json:"grade_id"`
	GradeName     string          `json:"grade_name"`
	DiscountedFee decimal.Decimal `json:"discounted_fee" swaggertype:"string"`
	TotalPaid     decimal.Decimal `json:"total_paid" swaggertype:"string"`
	Due           decimal.Decimal `json:"due" swaggertype:"string"`
	Status        types.DueStatus `json:"status"`
	DueDate       time.Time       `json:"due_date"`
	OverdueDate   time.Time       `json:"overdue_date"`
	DaysPastDue   int             `json:"days_past_due"`
	DaysOverdue   int             `json:"days_overdue"`
}

// ListStudentsInOverdueResponse holds the DUE and OVERDUE students of a school month
type ListStudentsInOverdueResponse struct {
	SchoolMonthID string                    `json:"school_month_id"`
	Items         []*OverdueStudentResponse `json:"items"`
	Total         int                       `json:"total"`
}

// StudentDiscountSummary is one student row of the discount report
type StudentDiscountSummary struct {
	StudentID      string          `json:"student_id"`
	StudentName    string          `json:"student_name"`
	GradeID        string          `json:"grade_id"`
	OriginalAmount decimal.Decimal `json:"original_amount" swaggertype:"string"`
	DiscountedFee  decimal.Decimal `json:"discounted_fee" swaggertype:"string"`
	DiscountAmount decimal.Decimal `json:"discount_amount" swaggertype:"string"`
	Discounts      []string        `json:"discounts"`
}

// DiscountBreakdownEntry aggregates one discount label across students
type DiscountBreakdownEntry struct {
	Label      string          `json:"label"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total" swaggertype:"string"`
	StudentIDs []string        `json:"student_ids"`
}

// DiscountReportResponse shows how much discounts reduced the revenue of a school month
type DiscountReportResponse struct {
	SchoolMonthID                   string                             `json:"school_month_id"`
	Students                        []*StudentDiscountSummary          `json:"students"`
	Breakdown                       map[string]*DiscountBreakdownEntry `json:"breakdown"`
	TotalOriginalAmount             decimal.Decimal                    `json:"total_original_amount" swaggertype:"string"`
	TotalDiscountedAmount           decimal.Decimal                    `json:"total_discounted_amount" swaggertype:"string"`
	TotalDiscountAmount             decimal.Decimal                    `json:"total_discount_amount" swaggertype:"string"`
	DiscountPercentage              decimal.Decimal                    `json:"discount_percentage" swaggertype:"string"`
	TotalStudents                   int                                `json:"total_students"`
	StudentsWithDiscounts           int                                `json:"students_with_discounts"`
	StudentsWithDiscountsPercentage decimal.Decimal                    `json:"students_with_discounts_percentage" swaggertype:"string"`
	AverageDiscountPerStudent       decimal.Decimal                    `json:"average_discount_per_student" swaggertype:"string"`
}

// PaymentHistoryEntry is one payment joined with its school calendar slot and grade
type PaymentHistoryEntry struct {
	PaymentID           string            `json:"payment_id"`
	SchoolYearID        string            `json:"school_year_id"`
	SchoolYearName      string            `json:"school_year_name"`
	SchoolYearStartDate time.Time         `json:"school_year_start_date"`
	SchoolMonthID       string            `json:"school_month_id"`
	MonthNumber         int               `json:"month_number"`
	MonthName           string            `json:"month_name"`
	GradeID             string            `json:"grade_id"`
	GradeName           string            `json:"grade_name"`
	PaymentType         types.PaymentType `json:"payment_type"`
	Amount              decimal.Decimal   `json:"amount" swaggertype:"string"`
	Verified            *bool             `json:"verified,omitempty"`
	CountsTowardRevenue bool              `json:"counts_toward_revenue"`
	Reference           *string           `json:"reference,omitempty"`
	PaymentMethodID     string            `json:"payment_method_id"`
	PaymentMethodName   string            `json:"payment_method_name"`
	// MonthlyFee is the discounted fee of the month, absent when the grade had no effective fee
	MonthlyFee     *decimal.Decimal `json:"monthly_fee,omitempty" swaggertype:"string"`
	DiscountLabels []string         `json:"discount_labels"`
	CreatedAt      time.Time        `json:"created_at"`
}

// PaymentHistoryResponse is the ordered payment statement of a student
type PaymentHistoryResponse struct {
	StudentID    string                 `json:"student_id"`
	SchoolYearID *string                `json:"school_year_id,omitempty"`
	Items        []*PaymentHistoryEntry `json:"items"`
	Total        int                    `json:"total"`
}
