package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spotly/meeting-api/internal/domain"
	"github.com/spotly/meeting-api/internal/service"
)

// LocationRequest describes a meeting address.
type LocationRequest struct {
	Country     string  `json:"country"      validate:"required"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	Street      string  `json:"street"`
	HouseNumber string  `json:"house_number"`
	Apartment   string  `json:"apartment"`
	Latitude    float64 `json:"latitude"     validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude"    validate:"gte=-180,lte=180"`
	ProviderID  string  `json:"provider_id"`
}

func (l *LocationRequest) params() *domain.LocationParams {
	if l == nil {
		return nil
	}
	return &domain.LocationParams{
		Country:     l.Country,
		Region:      l.Region,
		City:        l.City,
		Street:      l.Street,
		HouseNumber: l.HouseNumber,
		Apartment:   l.Apartment,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		ProviderID:  l.ProviderID,
	}
}

// CreateMeetingRequest defines the payload for creating a meeting.
// Text rules are enforced by the domain and reported as 422.
type CreateMeetingRequest struct {
	Title           string           `json:"title"            validate:"required"`
	Description     string           `json:"description"      validate:"required"`
	StartAt         time.Time        `json:"start_at"         validate:"required"`
	EndAt           time.Time        `json:"end_at"           validate:"required"`
	Location        *LocationRequest `json:"location"`
	MaxParticipants int              `json:"max_participants" validate:"gte=0"`
	IsPrivate       bool             `json:"is_private"`
}

// UpdateDetailsRequest defines the payload for changing title and/or description.
type UpdateDetailsRequest struct {
	Title       *string `json:"title"       validate:"required_without=Description"`
	Description *string `json:"description" validate:"required_without=Title"`
}

// UpdateInformationRequest replaces location, capacity and privacy.
type UpdateInformationRequest struct {
	Location        *LocationRequest `json:"location"`
	MaxParticipants int              `json:"max_participants" validate:"gte=0"`
	IsPrivate       bool             `json:"is_private"`
}

// CommentRequest carries comment text for create and edit.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// TagRequest carries the text of a new tag.
type TagRequest struct {
	Text string `json:"text" validate:"required"`
}

// StatusRequest names a lifecycle action.
type StatusRequest struct {
	Action string `json:"action" validate:"required,oneof=schedule start finish cancel"`
}

// LocationResponse is the API form of a meeting location.
type LocationResponse struct {
	Formatted   string  `json:"formatted"`
	Country     string  `json:"country"`
	Region      string  `json:"region,omitempty"`
	City        string  `json:"city,omitempty"`
	Street      string  `json:"street,omitempty"`
	HouseNumber string  `json:"house_number,omitempty"`
	Apartment   string  `json:"apartment,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ProviderID  string  `json:"provider_id,omitempty"`
}

// CommentResponse is the API form of a meeting comment.
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	MeetingID uuid.UUID `json:"meeting_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagResponse is the API form of a meeting tag.
type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	MeetingID uuid.UUID `json:"meeting_id"`
	Text      string    `json:"text"`
}

// MeetingResponse is the API form of a meeting.
type MeetingResponse struct {
	ID              uuid.UUID         `json:"id"`
	HostID          uuid.UUID         `json:"host_id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	StartAt         time.Time         `json:"start_at"`
	EndAt           time.Time         `json:"end_at"`
	Location        *LocationResponse `json:"location,omitempty"`
	MaxParticipants int               `json:"max_participants"`
	IsPrivate       bool              `json:"is_private"`
	Status          string            `json:"status"`
	Participants    []uuid.UUID       `json:"participants"`
	Comments        []CommentResponse `json:"comments"`
	Tags            []TagResponse     `json:"tags"`
}

// MeetingListResponse is a page of meetings.
type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

func (r CreateMeetingRequest) toParams() service.CreateMeetingParams {
	return service.CreateMeetingParams{
		Title:           r.Title,
		Description:     r.Description,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		Location:        r.Location.params(),
		MaxParticipants: r.MaxParticipants,
		IsPrivate:       r.IsPrivate,
	}
}

func newMeetingResponse(m *domain.Meeting) MeetingResponse {
	resp := MeetingResponse{
		ID:              m.ID().UUID(),
		HostID:          m.HostID().UUID(),
		Title:           m.Title().Value(),
		Description:     m.Description().Value(),
		StartAt:         m.StartAt().Time(),
		EndAt:           m.EndAt().Time(),
		MaxParticipants: m.MaxParticipants(),
		IsPrivate:       m.IsPrivate(),
		Status:          m.Status().String(),
		Participants:    lo.Map(m.Participants(), func(p domain.ParticipantID, _ int) uuid.UUID { return p.UUID() }),
		Comments:        lo.Map(m.Comments(), func(c domain.MeetingComment, _ int) CommentResponse { return newCommentResponse(c) }),
		Tags:            lo.Map(m.Tags(), func(t domain.MeetingTag, _ int) TagResponse { return newTagResponse(t) }),
	}

	if loc, ok := m.Location(); ok {
		resp.Location = &LocationResponse{
			Formatted:   loc.Formatted(),
			Country:     loc.Country(),
			Region:      loc.Region(),
			City:        loc.City(),
			Street:      loc.Street(),
			HouseNumber: loc.HouseNumber(),
			Apartment:   loc.Apartment(),
			Latitude:    loc.Latitude(),
			Longitude:   loc.Longitude(),
			ProviderID:  loc.ProviderID(),
		}
	}
	return resp
}

func newCommentResponse(c domain.MeetingComment) CommentResponse {
	return CommentResponse{
		ID:        c.ID().UUID(),
		MeetingID: c.MeetingID().UUID(),
		AuthorID:  c.AuthorID().UUID(),
		Text:      c.Text().Value(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func newTagResponse(t domain.MeetingTag) TagResponse {
	return TagResponse{
		ID:        t.ID().UUID(),
		MeetingID: t.MeetingID().UUID(),
		Text:      t.Text().Value(),
	}
}
