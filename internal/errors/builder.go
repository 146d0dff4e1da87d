package errors

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

const reportableDetailsPrefix = "__json__:"

// ErrorBuilder assembles an error step by step. It is not an error itself:
// every chain ends with Mark, which attaches the kind callers branch on.
type ErrorBuilder struct {
	err error
}

// NewError starts a new error builder chain
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// NewErrorf starts a new error builder chain with a formatted message
func NewErrorf(format string, args ...any) *ErrorBuilder {
	return &ErrorBuilder{err: errors.Newf(format, args...)}
}

// WithError starts a builder chain with an existing error
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithErrorf starts a builder chain wrapping an existing error with a formatted message
func WithErrorf(err error, format string, args ...any) *ErrorBuilder {
	return &ErrorBuilder{err: errors.Wrapf(err, format, args...)}
}

// WithHint adds the caller facing message shown by ToResponse
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

// WithHintf is a helper for WithHint that allows for formatting
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails attaches details that are safe to show to callers.
// They travel as a JSON safe detail so they survive wrapping and redaction.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	marshaled, err := json.Marshal(details)
	if err != nil {
		return b
	}
	b.err = errors.WithSafeDetails(b.err, reportableDetailsPrefix+"%s", errors.Safe(string(marshaled)))
	return b
}

// Mark tags the error with one of the kinds declared in errors.go
func (b *ErrorBuilder) Mark(reference error) error {
	b.err = errors.Mark(b.err, reference)
	return b.err
}

// Error returns the error without a kind; HTTPStatusFromErr treats it as a system error
func (b *ErrorBuilder) Error() error {
	return b.err
}
