package pvrecorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorDisplay(t *testing.T) {
	err := argumentError("frame_length must be greater than 0, got: %d", -10)
	assert.Contains(t, err.Error(), "frame_length must be greater than 0, got: -10")
	assert.Contains(t, err.Error(), "argument")
}

func TestNativeErrorCarriesStatus(t *testing.T) {
	err := nativeError("pv_recorder_start", StatusInvalidState)
	assert.Equal(t, ErrorNativeStatus, err.Kind())
	assert.Equal(t, StatusInvalidState, err.Status())
	assert.Contains(t, err.Error(), "INVALID_STATE")
	assert.True(t, IsInvalidState(err))
}

func TestIsInvalidStateRejectsOtherErrors(t *testing.T) {
	assert.False(t, IsInvalidState(nil))
	assert.False(t, IsInvalidState(ErrRecorderClosed))
	assert.False(t, IsInvalidState(nativeError("pv_recorder_start", StatusIOError)))
	assert.False(t, IsInvalidState(argumentError("bad")))
}
