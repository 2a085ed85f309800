package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMalformedCommandError(t *testing.T) {
	err := fmt.Errorf("parse: %w", NewMalformedCommand("amount", "must be positive"))

	assert.ErrorIs(t, err, ErrMalformedCommand)
	assert.NotErrorIs(t, err, ErrValidation)

	var mce *MalformedCommandError
	assert.True(t, errors.As(err, &mce))
	assert.Equal(t, "amount", mce.Field)
	assert.Equal(t, "malformed command: amount: must be positive", mce.Error())
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")
	err := StoreError("failed to list", cause)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.Code)
}
