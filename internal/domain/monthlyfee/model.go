package monthlyfee

import (
	"strings"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/shopspring/decimal"
)

// MonthlyFee is a tuition amount that can be assigned to grades
type MonthlyFee struct {
	ID          string          `db:"id" json:"id"`
	Description string          `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount" swaggertype:"string"`

	types.BaseModel
}

func (f *MonthlyFee) Validate() error {
	if strings.TrimSpace(f.Description) == "" {
		return ierr.NewError("monthly fee description is required").
			WithHint("Please provide a description for the monthly fee").
			Mark(ierr.ErrValidation)
	}
	if !f.Amount.IsPositive() {
		return ierr.NewError("monthly fee amount must be greater than zero").
			WithHint("Amount must be a positive decimal").
			WithReportableDetails(map[string]any{
				"amount": f.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// FeeOnGrade assigns a monthly fee to a grade starting at a school month.
// It stays in force until an assignment with a later effective month exists for the grade.
type FeeOnGrade struct {
	ID                   string `db:"id" json:"id"`
	GradeID              string `db:"grade_id" json:"grade_id"`
	MonthlyFeeID         string `db:"monthly_fee_id" json:"monthly_fee_id"`
	EffectiveFromMonthID string `db:"effective_from_month_id" json:"effective_from_month_id"`

	types.BaseModel
}

func (a *FeeOnGrade) Validate() error {
	if a.GradeID == "" || a.MonthlyFeeID == "" || a.EffectiveFromMonthID == "" {
		return ierr.NewError("fee assignment is missing required fields").
			WithHint("Grade, monthly fee and effective school month are required").
			WithReportableDetails(map[string]any{
				"grade_id":                a.GradeID,
				"monthly_fee_id":          a.MonthlyFeeID,
				"effective_from_month_id": a.EffectiveFromMonthID,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
