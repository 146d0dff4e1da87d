package dto

import (
	"strings"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/flexprice/tuition/internal/validator"
)

// SettingResponse represents a setting in API responses
type SettingResponse struct {
	Key         string      `json:"key"`
	Value       interface{} `json:"value"`
	IsDefault   bool        `json:"is_default"`
	Description string      `json:"description,omitempty"`
}

// UpdateSettingRequest carries the new value as a JSON literal, e.g. "10" or "0.25"
type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required"`
}

func (r *UpdateSettingRequest) Validate(key types.SettingKey) error {
	if !types.IsValidSettingKey(key.String()) {
		return ierr.NewErrorf("unknown setting key: %s", key).
			WithHint("Please provide a valid setting key").
			Mark(ierr.ErrValidation)
	}
	r.Value = strings.TrimSpace(r.Value)
	return validator.ValidateRequest(r)
}
