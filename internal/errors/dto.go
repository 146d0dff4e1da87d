package errors

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code          string   `json:"code"`
	Display       string   `json:"message"`
	InternalError string   `json:"internal_error,omitempty"`
	Details       []string `json:"details,omitempty"`
}
