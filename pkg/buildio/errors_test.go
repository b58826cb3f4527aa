package buildio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIOError_Message(t *testing.T) {
	err := NewWriteError(KindFile, "/out/app.js", errors.New("disk full"))
	assert.Equal(t, "failed to write to file '/out/app.js': disk full", err.Error())

	err = NewReadError(KindDirectory, "/src", nil)
	assert.Equal(t, "failed to read from directory '/src'", err.Error())
}

func TestIOError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewReadError(KindFile, "/etc/shadow", cause)

	assert.True(t, errors.Is(err, cause))

	var ioErr *IOError
	assert.True(t, errors.As(error(err), &ioErr))
	assert.Equal(t, ActionReadFrom, ioErr.Action)
	assert.Equal(t, KindFile, ioErr.Kind)
	assert.Equal(t, "/etc/shadow", ioErr.Path)
}

func TestIOError_Cause(t *testing.T) {
	assert.Equal(t, "timeout", NewWriteError(KindDirectory, "/build", errors.New("timeout")).Cause())
	assert.Equal(t, "", NewWriteError(KindDirectory, "/build", nil).Cause())
}
