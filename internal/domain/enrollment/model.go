package enrollment

import (
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
)

// StudentGrade enrolls a student into one grade for one school year.
// A student has at most one live enrollment per school year.
type StudentGrade struct {
	ID           string `db:"id" json:"id"`
	StudentID    string `db:"student_id" json:"student_id"`
	GradeID      string `db:"grade_id" json:"grade_id"`
	SchoolYearID string `db:"school_year_id" json:"school_year_id"`

	types.BaseModel
}

func (e *StudentGrade) Validate() error {
	missing := make([]string, 0, 3)
	if e.StudentID == "" {
		missing = append(missing, "student_id")
	}
	if e.GradeID == "" {
		missing = append(missing, "grade_id")
	}
	if e.SchoolYearID == "" {
		missing = append(missing, "school_year_id")
	}
	if len(missing) > 0 {
		return ierr.NewError("enrollment is missing required fields").
			WithHint("Student, grade and school year are required").
			WithReportableDetails(map[string]any{
				"missing": missing,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
