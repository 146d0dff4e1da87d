package discount

import (
	"fmt"
	"strings"

	"github.com/flexprice/tuition/internal/domain/schoolmonth"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/shopspring/decimal"
)

// Discount is either a percentage of the monthly fee or a fixed currency amount
type Discount struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	// Amount is a percent when IsPercentage is set, a currency amount otherwise
	Amount       decimal.Decimal `db:"amount" json:"amount" swaggertype:"string"`
	IsPercentage bool            `db:"is_percentage" json:"is_percentage"`

	types.BaseModel
}

func (d *Discount) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ierr.NewError("discount name is required").
			WithHint("Please provide a name for the discount").
			Mark(ierr.ErrValidation)
	}
	if !d.Amount.IsPositive() {
		return ierr.NewError("discount amount must be greater than zero").
			WithHint("Amount must be a positive decimal").
			WithReportableDetails(map[string]any{
				"amount": d.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if d.IsPercentage && d.Amount.GreaterThan(types.Hundred) {
		return ierr.NewError("percentage discount cannot exceed 100").
			WithHint("Percentage discounts are expressed between 0 and 100").
			WithReportableDetails(map[string]any{
				"amount": d.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Label renders the discount as "name(20%)" or "name($10)"
func (d *Discount) Label(currencySymbol string) string {
	if d.IsPercentage {
		return fmt.Sprintf("%s(%s%%)", d.Name, d.Amount.String())
	}
	return fmt.Sprintf("%s(%s%s)", d.Name, currencySymbol, d.Amount.String())
}

// StudentDiscount attaches a discount to a student. Leaving both scope ids empty
// applies it to every month, SchoolYearID limits it to the months of one school
// year and SchoolMonthID to a single month.
type StudentDiscount struct {
	ID            string  `db:"id" json:"id"`
	StudentID     string  `db:"student_id" json:"student_id"`
	DiscountID    string  `db:"discount_id" json:"discount_id"`
	SchoolYearID  *string `db:"school_year_id" json:"school_year_id,omitempty"`
	SchoolMonthID *string `db:"school_month_id" json:"school_month_id,omitempty"`

	types.BaseModel
}

// Scope returns the granularity the discount was attached at
func (sd *StudentDiscount) Scope() types.DiscountScope {
	switch {
	case sd.SchoolMonthID != nil:
		return types.DiscountScopeMonth
	case sd.SchoolYearID != nil:
		return types.DiscountScopePeriod
	default:
		return types.DiscountScopeStudent
	}
}

// AppliesTo reports whether the association covers the given school month
func (sd *StudentDiscount) AppliesTo(month *schoolmonth.SchoolMonth) bool {
	if month == nil {
		return false
	}
	switch sd.Scope() {
	case types.DiscountScopeMonth:
		return *sd.SchoolMonthID == month.ID
	case types.DiscountScopePeriod:
		return *sd.SchoolYearID == month.SchoolYearID
	default:
		return true
	}
}

func (sd *StudentDiscount) Validate() error {
	if sd.StudentID == "" || sd.DiscountID == "" {
		return ierr.NewError("student discount is missing required fields").
			WithHint("Student and discount are required").
			Mark(ierr.ErrValidation)
	}
	if sd.SchoolYearID != nil && sd.SchoolMonthID != nil {
		return ierr.NewError("student discount cannot be scoped to both a school year and a school month").
			WithHint("Set either the school year or the school month, not both").
			Mark(ierr.ErrValidation)
	}
	return nil
}
