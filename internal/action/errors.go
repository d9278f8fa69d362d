package action

import (
	"errors"
	"fmt"
)

// FatalError marks a failure that must end the whole process rather than be
// reported as an ordinary step failure. The CLI driver maps it to a distinct
// exit status.
type FatalError struct {
	Msg string
	Err error
}

func (e *FatalError) Error() string { return e.Msg }

func (e *FatalError) Unwrap() error { return e.Err }

// Fatal returns a FatalError with msg.
func Fatal(msg string) error {
	return &FatalError{Msg: msg}
}

// Fatalf returns a FatalError with a formatted message. A %w verb is kept
// as the wrapped cause.
func Fatalf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return &FatalError{Msg: err.Error(), Err: errors.Unwrap(err)}
}

// IsFatal reports whether err is or wraps a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
