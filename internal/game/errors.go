package game

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrFieldType    = errors.New("wrong field type")
)

// MissingFieldError names a required field that was absent while decoding.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// FieldTypeError reports a field that is present but holds the wrong kind of value.
type FieldTypeError struct {
	Field string
	Want  string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("field %q: expected %s", e.Field, e.Want)
}

func (e *FieldTypeError) Is(target error) bool {
	return target == ErrFieldType
}
