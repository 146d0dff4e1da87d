package schoolyear

import (
	"strings"
	"time"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
)

// SchoolYear is the academic calendar container that school months are numbered against
type SchoolYear struct {
	// ID is the unique identifier for the school year
	ID string `db:"id" json:"id"`

	// Name is the display name, e.g. "2023-2024"
	Name string `db:"name" json:"name"`

	// StartDate is the first day of the school year. Month 1 is the calendar month of this date.
	StartDate time.Time `db:"start_date" json:"start_date"`

	// EndDate is the last day of the school year and must be after StartDate
	EndDate time.Time `db:"end_date" json:"end_date"`

	types.BaseModel
}

// MonthCount is the number of calendar months the year touches, which bounds month numbers
func (y *SchoolYear) MonthCount() int {
	return types.MonthsBetween(y.StartDate, y.EndDate)
}

// ContainsMonthNumber reports whether monthNumber is a valid slot of this year
func (y *SchoolYear) ContainsMonthNumber(monthNumber int) bool {
	return monthNumber >= 1 && monthNumber <= y.MonthCount()
}

func (y *SchoolYear) Validate() error {
	if strings.TrimSpace(y.Name) == "" {
		return ierr.NewError("school year name is required").
			WithHint("Please provide a name for the school year").
			Mark(ierr.ErrValidation)
	}

	if !y.EndDate.After(y.StartDate) {
		return ierr.NewError("school year must end after it starts").
			WithHint("End date must be after start date").
			WithReportableDetails(map[string]any{
				"start_date": y.StartDate,
				"end_date":   y.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
