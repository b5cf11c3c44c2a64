package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateValidation(t *testing.T) {
	validate, translator := NewValidator()

	type input struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"omitempty,email"`
		Skip  string `json:"-" validate:"omitempty,email"`
	}

	err := TranslateValidation(validate.Struct(input{Email: "nope"}), translator)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "got %v", err)
	assert.Equal(t, []FieldError{
		{Field: "name", Error: "this field is required"},
		{Field: "email", Error: "email must be a valid email address"},
	}, vErr.Fields)

	assert.NoError(t, validate.Struct(input{Name: "Ann"}))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "A. Perera", CleanString("  A. Perera \n"))
	assert.Equal(t, "aperera@sttoms.edu", CleanString(" APerera@STTOMS.edu ", true))
}
