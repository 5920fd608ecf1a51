package domain

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
)

// LocationParams carries the raw parts of an address. Empty strings mark
// absent optional parts.
type LocationParams struct {
	Country     string
	Region      string
	City        string
	Street      string
	HouseNumber string
	Apartment   string
	Latitude    float64
	Longitude   float64
	ProviderID  string
}

// MeetingLocation is a structured address with coordinates and an optional
// reference into an external geocoding provider.
type MeetingLocation struct {
	formatted   string
	country     string
	region      string
	city        string
	street      string
	houseNumber string
	apartment   string
	latitude    float64
	longitude   float64
	providerID  string
}

// NewMeetingLocation validates p and derives the formatted address.
func NewMeetingLocation(p LocationParams) (MeetingLocation, error) {
	if strings.TrimSpace(p.Country) == "" {
		return MeetingLocation{}, newMeetingError("meeting location country can't be empty")
	}
	if !isFinite(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return MeetingLocation{}, newMeetingError("meeting location latitude must be between -90 and 90")
	}
	if !isFinite(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return MeetingLocation{}, newMeetingError("meeting location longitude must be between -180 and 180")
	}

	return MeetingLocation{
		formatted:   FormatLocation(p.Country, p.Region, p.City, p.Street, p.HouseNumber, p.Apartment),
		country:     p.Country,
		region:      p.Region,
		city:        p.City,
		street:      p.Street,
		houseNumber: p.HouseNumber,
		apartment:   p.Apartment,
		latitude:    p.Latitude,
		longitude:   p.Longitude,
		providerID:  p.ProviderID,
	}, nil
}

// FormatLocation joins the non-blank address parts as
// "country, region, city, street house, кв. apartment".
func FormatLocation(country, region, city, street, houseNumber, apartment string) string {
	parts := make([]string, 0, 5)

	for _, part := range []string{country, region, city} {
		if !isBlank(part) {
			parts = append(parts, part)
		}
	}

	if !isBlank(street) || !isBlank(houseNumber) {
		parts = append(parts, strings.TrimSpace(strings.TrimSpace(street)+" "+strings.TrimSpace(houseNumber)))
	}

	if !isBlank(apartment) {
		parts = append(parts, "кв. "+apartment)
	}

	// A part may itself end in punctuation; the result never ends in a separator.
	return strings.TrimRight(strings.Join(parts, ", "), ", ")
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (l MeetingLocation) Formatted() string   { return l.formatted }
func (l MeetingLocation) Country() string     { return l.country }
func (l MeetingLocation) Region() string      { return l.region }
func (l MeetingLocation) City() string        { return l.city }
func (l MeetingLocation) Street() string      { return l.street }
func (l MeetingLocation) HouseNumber() string { return l.houseNumber }
func (l MeetingLocation) Apartment() string   { return l.apartment }
func (l MeetingLocation) Latitude() float64   { return l.latitude }
func (l MeetingLocation) Longitude() float64  { return l.longitude }
func (l MeetingLocation) ProviderID() string  { return l.providerID }
func (l MeetingLocation) String() string      { return l.formatted }

// Params returns the raw parts l was built from.
func (l MeetingLocation) Params() LocationParams {
	return LocationParams{
		Country:     l.country,
		Region:      l.region,
		City:        l.city,
		Street:      l.street,
		HouseNumber: l.houseNumber,
		Apartment:   l.apartment,
		Latitude:    l.latitude,
		Longitude:   l.longitude,
		ProviderID:  l.providerID,
	}
}

// Equal compares every address part, the coordinates and the provider id.
func (l MeetingLocation) Equal(other MeetingLocation) bool {
	return l.Params() == other.Params()
}

// Compare orders locations by their formatted address, ignoring case.
func (l MeetingLocation) Compare(other MeetingLocation) int {
	fold := cases.Fold()
	return strings.Compare(fold.String(l.formatted), fold.String(other.formatted))
}
