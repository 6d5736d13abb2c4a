package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestBindingErrorMessage(t *testing.T) {
	type payload struct {
		Description string `validate:"required,max=10"`
		Urgency     string `validate:"required,oneof=low medium high"`
	}

	validate := validator.New()

	err := validate.Struct(payload{Description: "way too long for the limit", Urgency: "extreme"})
	msg := BindingErrorMessage(err)
	assert.Contains(t, msg, "description must be at most 10 characters long")
	assert.Contains(t, msg, "urgency must be one of [low medium high]")

	err = validate.Struct(payload{})
	msg = BindingErrorMessage(err)
	assert.Contains(t, msg, "description is required")
	assert.Contains(t, msg, "urgency is required")
}

func TestBindingErrorMessagePassthrough(t *testing.T) {
	err := errors.New("unexpected EOF")
	assert.Equal(t, "unexpected EOF", BindingErrorMessage(err))
}
