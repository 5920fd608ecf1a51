package domain

import (
	"net/url"
	"strings"
)

// MeetingURL is an absolute http or https link, such as an online meeting
// room. No length limit is enforced.
type MeetingURL struct {
	value string
}

// NewMeetingURL validates that value parses as an absolute HTTP/HTTPS URL.
func NewMeetingURL(value string) (MeetingURL, error) {
	if strings.TrimSpace(value) == "" {
		return MeetingURL{}, newMeetingError("meeting url can't be empty")
	}

	parsed, err := url.Parse(value)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" ||
		(parsed.Scheme != "http" && parsed.Scheme != "https") {
		return MeetingURL{}, newMeetingError("meeting url must be a valid absolute HTTP/HTTPS link")
	}

	return MeetingURL{value: value}, nil
}

func (u MeetingURL) Value() string  { return u.value }
func (u MeetingURL) String() string { return u.value }
func (u MeetingURL) IsZero() bool   { return u.value == "" }

func (u MeetingURL) Compare(other MeetingURL) int {
	return strings.Compare(u.value, other.value)
}
