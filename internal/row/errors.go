package row

import (
	"errors"
	"fmt"
)

// ErrUnfixable marks documents that cannot be represented as a row.
var ErrUnfixable = errors.New("unfixable row")

// UnfixableError reports why a document could not be coerced into shape.
type UnfixableError struct {
	// Field is the dotted path of the offending field, empty for document-level problems.
	Field  string
	Reason string
	Err    error
}

func (e *UnfixableError) Error() string {
	msg := e.Reason
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnfixableError) Is(target error) bool { return target == ErrUnfixable }

func (e *UnfixableError) Unwrap() error { return e.Err }

func unfixable(field, format string, args ...any) *UnfixableError {
	return &UnfixableError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
