package domain

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by SearchParams.
const DateLayout = "2006-01-02"

// MaxPassengers is the largest party a single search may request.
const MaxPassengers = 9

// SearchParams defines the parameters for a flight search request.
type SearchParams struct {
	// Origin is the code of the departure airport (e.g., "CMB")
	Origin string `json:"origin"`

	// Destination is the code of the arrival airport (e.g., "DXB")
	Destination string `json:"destination"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the optional return date in YYYY-MM-DD format
	ReturnDate string `json:"returnDate,omitempty"`

	// Passengers is the number of travellers; boundaries default it to 1 when absent
	Passengers int `json:"passengers"`

	// Class is the requested travel class (default: Economy)
	Class TravelClass `json:"class"`
}

var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// SetDefaults applies default values to empty optional fields.
func (p *SearchParams) SetDefaults() {
	p.Origin = strings.ToUpper(strings.TrimSpace(p.Origin))
	p.Destination = strings.ToUpper(strings.TrimSpace(p.Destination))
	if p.Class == "" {
		p.Class = ClassEconomy
	}
}

// Validate checks the params against the calendar day today.
// It returns a *ValidationError, which wraps ErrInvalidRequest.
func (p SearchParams) Validate(today time.Time) error {
	if p.Origin == "" {
		return NewValidationError("origin", "origin is required")
	}
	if !airportCodeRegex.MatchString(p.Origin) {
		return NewValidationError("origin", "origin must be a 3-letter airport code")
	}
	if p.Destination == "" {
		return NewValidationError("destination", "destination is required")
	}
	if !airportCodeRegex.MatchString(p.Destination) {
		return NewValidationError("destination", "destination must be a 3-letter airport code")
	}
	if p.Origin == p.Destination {
		return NewValidationError("destination", "origin and destination must be different")
	}

	departure, err := p.Departure()
	if err != nil {
		return NewValidationError("departureDate", "departureDate must be a valid YYYY-MM-DD date")
	}
	if departure.Before(startOfDay(today)) {
		return NewValidationError("departureDate", "departureDate cannot be in the past")
	}

	if p.ReturnDate != "" {
		ret, err := time.Parse(DateLayout, p.ReturnDate)
		if err != nil {
			return NewValidationError("returnDate", "returnDate must be a valid YYYY-MM-DD date")
		}
		if ret.Before(departure) {
			return NewValidationError("returnDate", "returnDate cannot be before departureDate")
		}
	}

	if p.Passengers < 1 {
		return NewValidationError("passengers", "passengers must be at least 1")
	}
	if p.Passengers > MaxPassengers {
		return NewValidationError("passengers", "passengers cannot exceed 9")
	}

	if !p.Class.IsValid() {
		return NewValidationError("class", "class must be one of: Economy, Business, First")
	}

	return nil
}

// Departure parses DepartureDate.
func (p SearchParams) Departure() (time.Time, error) {
	return time.Parse(DateLayout, p.DepartureDate)
}

// startOfDay returns midnight of t's calendar day, expressed in UTC so it can
// be compared with dates parsed by time.Parse.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
