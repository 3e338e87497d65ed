package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conversion error taxonomy.
var (
	// Row level: the row is rejected, the file continues.
	ErrInvalidValue         = errors.New("invalid value")
	ErrInvalidDate          = errors.New("invalid date")
	ErrMissingRequiredField = errors.New("missing required field")

	// File level: the file is skipped, the run continues.
	ErrMissingHeader = errors.New("missing header column")
	ErrUnknownFormat = errors.New("unknown file format")

	// Structural: the run aborts.
	ErrNotDirectory = errors.New("not a directory")
)

// InvalidValueError reports a cell that does not parse as its field's type.
type InvalidValueError struct {
	Field string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %q", e.Field, e.Value)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// InvalidDateError reports an unusable Date/Time pair.
type InvalidDateError struct {
	Date   string
	Time   string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid timestamp %q %q: %s", e.Date, e.Time, e.Reason)
}

func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// MissingFieldError reports an empty mandatory cell.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %s", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// HeaderError reports a header row the parser cannot work with.
type HeaderError struct {
	Column string
	Reason error // ErrMissingHeader or ErrUnknownFormat
}

func (e *HeaderError) Error() string {
	if e.Column == "" {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%v: %s", e.Reason, e.Column)
}

func (e *HeaderError) Unwrap() error { return e.Reason }
