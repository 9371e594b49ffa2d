package session

import "errors"

// UsageError is a rejected command line. Its text is shown to the user as is.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

var (
	ErrTooManyArguments = &UsageError{msg: "ERROR: Too many arguments."}
	ErrNoName           = &UsageError{msg: "ERROR: No name given. "}
	ErrNoSuchCommand    = &UsageError{msg: "ERROR: No such command. "}
)

func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
