package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/spotly/meeting-api/internal/api/shared"
	"github.com/spotly/meeting-api/internal/domain"
	"github.com/spotly/meeting-api/internal/service"
	"github.com/spotly/meeting-api/internal/service/auth"
	"github.com/spotly/meeting-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrNotHost),
		errors.Is(err, service.ErrNotCommentAuthor):
		return http.StatusForbidden

	case errors.Is(err, service.ErrMeetingNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrTagNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, service.ErrMeetingExists),
		store.IsDuplicateError(err):
		return http.StatusConflict

	case domain.IsValidationError(err):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message shown to clients for err.
// Domain rule violations are shown verbatim since they describe the input,
// not the system.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var meetingErr *domain.MeetingError
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrNotHost):
		return "Only the meeting host can do this"
	case errors.Is(err, service.ErrNotCommentAuthor):
		return "Only the comment author can do this"

	case errors.Is(err, service.ErrMeetingNotFound), store.IsNotFoundError(err):
		return "Meeting not found"
	case errors.Is(err, service.ErrCommentNotFound):
		return "Comment not found"
	case errors.Is(err, service.ErrTagNotFound):
		return "Tag not found"

	case errors.Is(err, service.ErrMeetingExists), store.IsDuplicateError(err):
		return "Meeting already exists"

	case errors.As(err, &meetingErr):
		return meetingErr.Error()

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// fallback replaces the safe message for 500 responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "required_without":
		return "required field"
	case "gte", "lte", "min", "max":
		return "out of range"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
