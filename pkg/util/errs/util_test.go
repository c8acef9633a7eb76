package errs

import (
	"errors"
	"fmt"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConnClosedErr(t *testing.T) {
	assert.False(t, IsConnClosedErr(nil))
	assert.False(t, IsConnClosedErr(errors.New("boom")))
	assert.True(t, IsConnClosedErr(io.EOF))
	assert.True(t, IsConnClosedErr(fmt.Errorf("read: %w", net.ErrClosed)))
	assert.True(t, IsConnClosedErr(io.ErrClosedPipe))
}

func TestSilentError(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewSilentErr("kicked: %s", "bye"))
	assert.True(t, IsSilent(err))
	assert.EqualError(t, err, "outer: kicked: bye")
	assert.False(t, IsSilent(errors.New("x")))

	inner := errors.New("inner")
	assert.ErrorIs(t, &SilentError{inner}, inner)
}
