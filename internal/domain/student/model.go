package student

import (
	"strings"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
)

// Student is billed monthly according to the grade they are enrolled in
type Student struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`

	types.BaseModel
}

func (s *Student) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ierr.NewError("student name is required").
			WithHint("Please provide the student's name").
			Mark(ierr.ErrValidation)
	}
	return nil
}
