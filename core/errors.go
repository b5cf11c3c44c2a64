package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// DeserializationError reports a document that could not be decoded into the expected shape.
type DeserializationError struct {
	Err error
}

func NewDeserializationError(err error) error {
	return &DeserializationError{err}
}

func (err DeserializationError) Error() string {
	if err.Err == nil {
		return "invalid document"
	}
	return "invalid document: " + err.Err.Error()
}

func (err DeserializationError) Unwrap() error { return err.Err }

func IsDeserialization(err error) bool {
	_, ok := errors.Cause(err).(*DeserializationError)
	return ok
}

func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}
