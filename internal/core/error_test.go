package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(StorageError, "flush", "sink write failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "storage")
	assert.Contains(t, err.Error(), "flush")
	assert.Contains(t, err.Error(), "disk full")
}

func TestErrorWithoutCause(t *testing.T) {
	err := NewError(TransformError, "decode", "unknown device kind")
	assert.Nil(t, err.Unwrap())
	assert.Contains(t, err.Error(), "transform")
}

func TestResultOkAndFailed(t *testing.T) {
	ok := Ok(42)
	v, err := ok.Unwrap()
	assert.Equal(t, 42, v)
	assert.NoError(t, err)
	assert.True(t, ok.IsOk())

	failed := Failed[int](errors.New("boom"))
	_, err = failed.Unwrap()
	assert.Error(t, err)
	assert.False(t, failed.IsOk())
}
