package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spotly/meeting-api/internal/api/shared"
	"github.com/spotly/meeting-api/internal/domain"
	"github.com/spotly/meeting-api/internal/platform/logger"
)

var errInvalidPathID = errors.New("invalid path id")

// domainID is any of the typed domain identifiers.
type domainID interface {
	UUID() uuid.UUID
}

// getPathID parses the named chi URL parameter with a domain id parser.
func getPathID[T domainID](r *http.Request, paramName string, parse func(string) (T, error)) (uuid.UUID, error) {
	id, err := parse(chi.URLParam(r, paramName))
	if err != nil {
		return uuid.Nil, errInvalidPathID
	}
	return id.UUID(), nil
}

// handleUserIDAndPathUUID extracts the caller from the context and a
// meeting id from the path. It writes an error response and returns false if either is
// missing or invalid.
func handleUserIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
) (uuid.UUID, uuid.UUID, bool) {
	log := logger.FromContext(r.Context())

	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathID(r, paramName, domain.ParseMeetingID)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+paramName)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// decodeAndValidate decodes the JSON body into v and validates it, writing
// a 400 response and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// queryParticipantID parses an optional participant id query parameter.
func queryParticipantID(r *http.Request, name string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := domain.ParseParticipantID(raw)
	if err != nil {
		return nil, false
	}
	return lo.ToPtr(id.UUID()), true
}
