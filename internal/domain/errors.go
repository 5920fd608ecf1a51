package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel every MeetingError unwraps to.
// Callers check for it with errors.Is to tell domain rule violations
// apart from infrastructure failures.
var ErrValidation = errors.New("validation failed")

// MeetingError reports a violated meeting invariant. Message is safe to show
// to end users.
type MeetingError struct {
	Message string
}

// Error implements the error interface.
func (e *MeetingError) Error() string {
	return e.Message
}

// Unwrap makes errors.Is(err, ErrValidation) hold for every MeetingError.
func (e *MeetingError) Unwrap() error {
	return ErrValidation
}

func newMeetingError(format string, args ...any) error {
	return &MeetingError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is, or wraps, a MeetingError.
func IsValidationError(err error) bool {
	var meetingErr *MeetingError
	return errors.As(err, &meetingErr)
}
