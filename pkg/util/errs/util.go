package errs

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

var (
	ErrMissingConfig = errors.New("config is missing")
)

// SilentError is an error wrapper type that silences an
// error and only logs it in the debug log.
//
// It is used for errors the remote end is expected to cause,
// like a server closing the connection after a kick.
type SilentError struct{ error }

func (e *SilentError) Error() string {
	return e.error.Error()
}

func NewSilentErr(format string, a ...any) error {
	return &SilentError{fmt.Errorf(format, a...)}
}

func (e *SilentError) Unwrap() error { return e.error }

// IsSilent reports whether err or any error it wraps is a SilentError.
func IsSilent(err error) bool {
	var s *SilentError
	return errors.As(err, &s)
}

// IsConnClosedErr reports whether err is the result of a closed or reset connection.
// see https://github.com/golang/go/issues/4373 for details
func IsConnClosedErr(err error) bool {
	return err != nil &&
		(errors.Is(err, net.ErrClosed) ||
			errors.Is(err, io.EOF) ||
			errors.Is(err, io.ErrClosedPipe) ||
			errors.Is(err, syscall.ECONNRESET))
}
