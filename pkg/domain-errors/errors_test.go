package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesCode(t *testing.T) {
	err := New(CodeConflict, "id is taken")
	assert.True(t, Is(err, CodeConflict))
	assert.False(t, Is(err, CodeValidation))
	assert.False(t, Is(nil, CodeConflict))
}

func TestIsSearchesWrappedChains(t *testing.T) {
	inner := New(CodeReference, "missing product type")
	wrapped := fmt.Errorf("create event type: %w", inner)
	assert.True(t, Is(wrapped, CodeReference))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "read state")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "read state")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "bad field")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("uncoded")))
}
