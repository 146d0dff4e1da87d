package settings

import (
	"encoding/json"
	"strings"

	ierr "github.com/flexprice/tuition/internal/errors"
)

// Setting values are stored as JSON text so one column holds ints, decimals and strings.

// ConvertToType decodes a stored value into T, returning defaultValue for a blank value
func ConvertToType[T any](value string, defaultValue T) (T, error) {
	if strings.TrimSpace(value) == "" {
		return defaultValue, nil
	}

	var result T
	if err := json.Unmarshal([]byte(value), &result); err != nil {
		return result, ierr.WithError(err).
			WithHintf("Setting value %q cannot be read as %T", value, result).
			Mark(ierr.ErrValidation)
	}
	return result, nil
}

// ConvertFromType encodes value for storage
func ConvertFromType[T any](value T) (string, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to encode setting value").
			Mark(ierr.ErrValidation)
	}
	return string(raw), nil
}
