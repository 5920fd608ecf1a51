package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spotly/meeting-api/internal/api/shared"
	"github.com/spotly/meeting-api/internal/domain"
	"github.com/spotly/meeting-api/internal/platform/logger"
	"github.com/spotly/meeting-api/internal/service"
	"github.com/spotly/meeting-api/internal/store"
)

// MeetingHandler serves the /meetings endpoints.
type MeetingHandler struct {
	meetingService service.MeetingService
	logger         *slog.Logger
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(meetingService service.MeetingService, logger *slog.Logger) *MeetingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MeetingHandler{
		meetingService: meetingService,
		logger:         logger.With(slog.String("component", "meeting_handler")),
	}
}

// RegisterRoutes mounts the meeting endpoints on r. Callers are expected to
// have applied authentication already.
func (h *MeetingHandler) RegisterRoutes(r chi.Router) {
	r.Route("/meetings", func(r chi.Router) {
		r.Post("/", h.CreateMeeting)
		r.Get("/", h.ListMeetings)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetMeeting)
			r.Patch("/", h.UpdateDetails)
			r.Delete("/", h.DeleteMeeting)
			r.Put("/information", h.UpdateInformation)
			r.Post("/status", h.ChangeStatus)

			r.Post("/participants", h.JoinMeeting)
			r.Delete("/participants", h.LeaveMeeting)

			r.Post("/comments", h.AddComment)
			r.Put("/comments/{commentID}", h.EditComment)
			r.Delete("/comments/{commentID}", h.DeleteComment)

			r.Post("/tags", h.AddTag)
			r.Delete("/tags/{tagID}", h.RemoveTag)
		})
	})
}

// CreateMeeting handles POST /meetings.
func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateMeetingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	meeting, err := h.meetingService.CreateMeeting(r.Context(), userID, req.toParams())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create meeting")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("meeting created",
		slog.String("meeting_id", meeting.ID().String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, newMeetingResponse(meeting))
}

// ListMeetings handles GET /meetings?status=&host_id=&participant_id=&limit=&offset=.
func (h *MeetingHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	var filter store.MeetingFilter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseMeetingStatus(raw)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid status", err)
			return
		}
		filter.Status = &status
	}

	var ok bool
	if filter.HostID, ok = queryParticipantID(r, "host_id"); !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid host_id")
		return
	}
	if filter.ParticipantID, ok = queryParticipantID(r, "participant_id"); !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid participant_id")
		return
	}
	if filter.Limit, ok = queryInt(r, "limit"); !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
		return
	}
	if filter.Offset, ok = queryInt(r, "offset"); !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid offset")
		return
	}
	filter = filter.Normalized()

	meetings, err := h.meetingService.ListMeetings(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list meetings")
		return
	}

	resp := MeetingListResponse{
		Meetings: make([]MeetingResponse, 0, len(meetings)),
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	for _, m := range meetings {
		resp.Meetings = append(resp.Meetings, newMeetingResponse(m))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetMeeting handles GET /meetings/{id}.
func (h *MeetingHandler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	_, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	meeting, err := h.meetingService.GetMeeting(r.Context(), meetingID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get meeting")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newMeetingResponse(meeting))
}

// UpdateDetails handles PATCH /meetings/{id}.
func (h *MeetingHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	userID, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateDetailsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	meeting, err := h.meetingService.UpdateDetails(r.Context(), userID, meetingID, service.UpdateDetailsParams{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update meeting")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newMeetingResponse(meeting))
}

// UpdateInformation handles PUT /meetings/{id}/information.
func (h *MeetingHandler) UpdateInformation(w http.ResponseWriter, r *http.Request) {
	userID, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateInformationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	meeting, err := h.meetingService.UpdateInformation(r.Context(), userID, meetingID, service.UpdateInformationParams{
		Location:        req.Location.params(),
		MaxParticipants: req.MaxParticipants,
		IsPrivate:       req.IsPrivate,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update meeting information")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newMeetingResponse(meeting))
}

// DeleteMeeting handles DELETE /meetings/{id}.
func (h *MeetingHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	userID, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.meetingService.DeleteMeeting(r.Context(), userID, meetingID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete meeting")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("meeting deleted",
		slog.String("meeting_id", meetingID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// ChangeStatus handles POST /meetings/{id}/status.
func (h *MeetingHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	userID, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	action, err := domain.ParseStatusAction(req.Action)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid action", err)
		return
	}

	meeting, err := h.meetingService.ChangeStatus(r.Context(), userID, meetingID, action)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to change meeting status")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newMeetingResponse(meeting))
}

// JoinMeeting handles POST /meetings/{id}/participants.
func (h *MeetingHandler) JoinMeeting(w http.ResponseWriter, r *http.Request) {
	userID, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	meeting, err := h.meetingService.JoinMeeting(r.Context(), userID, meetingID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to join meeting")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newMeetingResponse(meeting))
}

// LeaveMeeting handles DELETE /meetings/{id}/participants.
func (h *MeetingHandler) LeaveMeeting(w http.ResponseWriter, r *http.Request) {
	userID, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	meeting, err := h.meetingService.LeaveMeeting(r.Context(), userID, meetingID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to leave meeting")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newMeetingResponse(meeting))
}

// AddComment handles POST /meetings/{id}/comments.
func (h *MeetingHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.meetingService.AddComment(r.Context(), userID, meetingID, req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add comment")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, newCommentResponse(comment))
}

// EditComment handles PUT /meetings/{id}/comments/{commentID}.
func (h *MeetingHandler) EditComment(w http.ResponseWriter, r *http.Request) {
	userID, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	commentID, err := getPathID(r, "commentID", domain.ParseMeetingCommentID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid commentID")
		return
	}

	var req CommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.meetingService.EditComment(r.Context(), userID, meetingID, commentID, req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to edit comment")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newCommentResponse(comment))
}

// DeleteComment handles DELETE /meetings/{id}/comments/{commentID}.
func (h *MeetingHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	commentID, err := getPathID(r, "commentID", domain.ParseMeetingCommentID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid commentID")
		return
	}

	if err := h.meetingService.DeleteComment(r.Context(), userID, meetingID, commentID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTag handles POST /meetings/{id}/tags.
func (h *MeetingHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	userID, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req TagRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tag, err := h.meetingService.AddTag(r.Context(), userID, meetingID, req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add tag")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, newTagResponse(tag))
}

// RemoveTag handles DELETE /meetings/{id}/tags/{tagID}.
func (h *MeetingHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	userID, meetingID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	tagID, err := getPathID(r, "tagID", domain.ParseMeetingTagID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid tagID")
		return
	}

	if err := h.meetingService.RemoveTag(r.Context(), userID, meetingID, tagID); err != nil {
		HandleAPIError(w, r, err, "Failed to remove tag")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
