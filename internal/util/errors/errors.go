package errors

import (
	"github.com/pkg/errors"
)

// Errors shared between the services and their transports.
// Transports compare against these after unwrapping with errors.Cause.
var (
	ErrUnknown         = errors.New("unknown error")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoNetwork       = errors.New("no paths near start point, try a different start point")
	ErrTimeout         = errors.New("route generation timed out")
)

// Cause returns the sentinel at the root of a wrapped error chain.
func Cause(err error) error {
	return errors.Cause(err)
}

// IsUserFacing reports whether the error text may be shown to the caller as is.
func IsUserFacing(err error) bool {
	switch errors.Cause(err) {
	case ErrInvalidArgument, ErrNoNetwork, ErrTimeout, ErrUnknown:
		return true
	}
	return false
}

// Wrap annotates err with a message, keeping its cause.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
