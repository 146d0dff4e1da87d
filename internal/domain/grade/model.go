package grade

import (
	"strings"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
)

// Grade is a class level students are enrolled into. Names are unique among live grades.
type Grade struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`

	types.BaseModel
}

func (g *Grade) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ierr.NewError("grade name is required").
			WithHint("Please provide a name for the grade").
			Mark(ierr.ErrValidation)
	}
	return nil
}
