package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// Error kinds surfaced by the billing engine. Callers map them to transport
// status codes with HTTPStatusFromErr.
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrNoEffectiveFee   = new(ErrCodeNoEffectiveFee, "no effective fee")
	ErrInconsistentData = new(ErrCodeInconsistentData, "inconsistent data")
	ErrIncomplete       = new(ErrCodeIncomplete, "computation incomplete")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystemError, "system error")
	// maps errors to http status codes, most specific kind first so that an
	// error carrying several marks always resolves to the same one
	statusCodes = []struct {
		kind   *InternalError
		status int
	}{
		{ErrIncomplete, http.StatusServiceUnavailable},
		{ErrInconsistentData, http.StatusInternalServerError},
		{ErrNoEffectiveFee, http.StatusInternalServerError},
		{ErrNotFound, http.StatusNotFound},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrInvalidOperation, http.StatusBadRequest},
		{ErrValidation, http.StatusBadRequest},
		{ErrDatabase, http.StatusInternalServerError},
		{ErrSystem, http.StatusInternalServerError},
	}
)

const (
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeNoEffectiveFee   = "no_effective_fee"
	ErrCodeInconsistentData = "inconsistent_data"
	ErrCodeIncomplete       = "incomplete"
	ErrCodeDatabase         = "database_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// new creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsNoEffectiveFee checks if a grade had no fee in force for the requested month
func IsNoEffectiveFee(err error) bool {
	return errors.Is(err, ErrNoEffectiveFee)
}

// IsInconsistentData checks if the stored data contradicts itself
func IsInconsistentData(err error) bool {
	return errors.Is(err, ErrInconsistentData)
}

// IsIncomplete checks if a computation was cut off before finishing
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

// IsDatabase checks if an error came from the data store
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

func HTTPStatusFromErr(err error) int {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.kind) {
			return sc.status
		}
	}
	return http.StatusInternalServerError
}

// Code returns the machine readable code of the first known kind the error is marked with
func Code(err error) string {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.kind) {
			return sc.kind.Code
		}
	}
	return ErrCodeSystemError
}

// ToResponse builds the standard error payload from an error chain
func ToResponse(err error) ErrorResponse {
	display := strings.Join(errors.GetAllHints(err), "; ")
	if display == "" {
		display = err.Error()
	}

	var details []string
	for _, payload := range errors.GetAllSafeDetails(err) {
		for _, detail := range payload.SafeDetails {
			if json, ok := strings.CutPrefix(detail, reportableDetailsPrefix); ok {
				details = append(details, json)
			}
		}
	}

	return ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:          Code(err),
			Display:       display,
			InternalError: err.Error(),
			Details:       details,
		},
	}
}
