package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by MeetingService. The API layer maps them to
// HTTP status codes.
var (
	// ErrMeetingNotFound indicates the meeting does not exist. Maps to 404.
	ErrMeetingNotFound = errors.New("meeting not found")

	// ErrCommentNotFound indicates the comment does not exist on the meeting. Maps to 404.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrTagNotFound indicates the tag does not exist on the meeting. Maps to 404.
	ErrTagNotFound = errors.New("tag not found")

	// ErrNotHost indicates the caller is not the meeting host. Maps to 403.
	ErrNotHost = errors.New("only the meeting host can do this")

	// ErrNotCommentAuthor indicates the caller may not change the comment. Maps to 403.
	ErrNotCommentAuthor = errors.New("only the comment author can do this")

	// ErrMeetingExists indicates a meeting with the generated id already exists. Maps to 409.
	ErrMeetingExists = errors.New("meeting already exists")
)

// MeetingServiceError wraps unexpected failures with the operation that
// produced them.
type MeetingServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for MeetingServiceError.
func (e *MeetingServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("meeting service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("meeting service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *MeetingServiceError) Unwrap() error {
	return e.Err
}

// NewMeetingServiceError creates a new MeetingServiceError.
func NewMeetingServiceError(operation, message string, err error) *MeetingServiceError {
	return &MeetingServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
