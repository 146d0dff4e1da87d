package schoolmonth

import (
	"time"

	"github.com/flexprice/tuition/internal/domain/schoolyear"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
)

// SchoolMonth is a month granularity slot of a school year. Fees become effective
// at a school month and payments are recorded against one.
type SchoolMonth struct {
	ID           string `db:"id" json:"id"`
	SchoolYearID string `db:"school_year_id" json:"school_year_id"`
	// MonthNumber is 1-based and relative to the start month of the school year
	MonthNumber int     `db:"month_number" json:"month_number"`
	Name        *string `db:"name" json:"name,omitempty"`

	types.BaseModel
}

// DisplayName returns the configured name or the calendar month of the slot
func (m *SchoolMonth) DisplayName(year *schoolyear.SchoolYear) string {
	if m.Name != nil && *m.Name != "" {
		return *m.Name
	}
	if year == nil {
		return ""
	}
	return m.StartDate(year).Format("January 2006")
}

// StartDate is the first calendar day of the slot
func (m *SchoolMonth) StartDate(year *schoolyear.SchoolYear) time.Time {
	return types.RelativeMonthDate(year.StartDate, m.MonthNumber)
}

// Validate checks the slot against the school year it belongs to
func (m *SchoolMonth) Validate(year *schoolyear.SchoolYear) error {
	if year == nil || year.ID != m.SchoolYearID {
		return ierr.NewError("school month does not belong to the given school year").
			WithHint("The school year of the month could not be determined").
			WithReportableDetails(map[string]any{
				"school_month_id": m.ID,
				"school_year_id":  m.SchoolYearID,
			}).
			Mark(ierr.ErrInconsistentData)
	}

	if !year.ContainsMonthNumber(m.MonthNumber) {
		return ierr.NewErrorf("month number %d is outside the school year", m.MonthNumber).
			WithHintf("Month number must be between 1 and %d", year.MonthCount()).
			WithReportableDetails(map[string]any{
				"month_number":   m.MonthNumber,
				"school_year_id": year.ID,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
