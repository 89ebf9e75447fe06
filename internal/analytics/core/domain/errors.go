package domain

import (
	"errors"
	"fmt"
)

// Error codes double as the machine readable "code" of HTTP error bodies.
const (
	CodeInvalidFilter = "invalid_filter"
	CodeTimeRange     = "invalid_time_range"
	CodeDataNotFound  = "data_not_found"
	CodeDatabaseQuery = "database_error"
)

var (
	ErrInvalidFilter = &Error{Code: CodeInvalidFilter, Message: "Invalid filter parameters provided."}
	ErrTimeRange     = &Error{Code: CodeTimeRange, Message: "Invalid time range specified."}
	ErrDataNotFound  = &Error{Code: CodeDataNotFound, Message: "No data found for the specified criteria."}
	ErrDatabaseQuery = &Error{Code: CodeDatabaseQuery, Message: "Database query error."}
)

// Error is the analytics failure taxonomy. errors.Is matches on Code, so a
// detailed instance matches its sentinel.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func InvalidFilter(format string, args ...any) error {
	return &Error{Code: CodeInvalidFilter, Message: fmt.Sprintf(format, args...)}
}

func TimeRange(format string, args ...any) error {
	return &Error{Code: CodeTimeRange, Message: fmt.Sprintf(format, args...)}
}

func DataNotFound(format string, args ...any) error {
	return &Error{Code: CodeDataNotFound, Message: fmt.Sprintf(format, args...)}
}

// DatabaseQuery wraps a storage failure, keeping its message for diagnostics.
func DatabaseQuery(cause error) error {
	return &Error{
		Code:    CodeDatabaseQuery,
		Message: fmt.Sprintf("Database query error: %v", cause),
		Err:     cause,
	}
}

// IsKnown reports whether err already belongs to the taxonomy and must be
// propagated as is.
func IsKnown(err error) bool {
	return errors.Is(err, ErrInvalidFilter) ||
		errors.Is(err, ErrTimeRange) ||
		errors.Is(err, ErrDataNotFound)
}
