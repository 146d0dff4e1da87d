package settings

import (
	"github.com/flexprice/tuition/internal/types"
)

// Setting is an explicitly stored value for a setting key. Keys without a row
// resolve to their registered default.
type Setting struct {
	ID    string           `db:"id" json:"id"`
	Key   types.SettingKey `db:"key" json:"key"`
	Value string           `db:"value" json:"value"`

	types.BaseModel
}
