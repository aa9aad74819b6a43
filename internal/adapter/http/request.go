package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

var (
	airportCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern        = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// validSortOptions lists accepted sortBy values.
var validSortOptions = map[string]bool{
	"":          true, // Empty is valid (defaults to price)
	"price":     true,
	"duration":  true,
	"departure": true,
	"arrival":   true,
	"best":      true,
}

// SearchFlightsRequest is the body of POST /api/v1/flights/search.
type SearchFlightsRequest struct {
	Origin        string     `json:"origin" example:"CMB"`
	Destination   string     `json:"destination" example:"DXB"`
	DepartureDate string     `json:"departureDate" example:"2026-10-19"`
	ReturnDate    string     `json:"returnDate,omitempty" example:""`
	Passengers    *int       `json:"passengers,omitempty" example:"1"`
	Class         string     `json:"class" example:"Economy"`
	SortBy        string     `json:"sortBy,omitempty" example:"price"`
	Filters       *FilterDTO `json:"filters,omitempty"`
}

// FilterDTO is the wire form of domain.FilterState.
type FilterDTO struct {
	PriceRange         *PriceRangeDTO `json:"priceRange,omitempty"`
	Airlines           []string       `json:"airlines,omitempty"`
	Stops              []int          `json:"stops,omitempty"`
	Classes            []string       `json:"classes,omitempty"`
	DepartureTimeRange *TimeRangeDTO  `json:"departureTimeRange,omitempty"`
}

// PriceRangeDTO is an inclusive price band.
type PriceRangeDTO struct {
	Min float64 `json:"min" example:"0"`
	Max float64 `json:"max" example:"500"`
}

// TimeRangeDTO is a time-of-day window in HH:MM format (UTC).
type TimeRangeDTO struct {
	Start string `json:"start" example:"06:00"`
	End   string `json:"end" example:"12:00"`
}

// RefineRequest is the body of POST /api/v1/flights/refine.
type RefineRequest struct {
	Flights []FlightDTO `json:"flights"`
	SortBy  string      `json:"sortBy,omitempty" example:"duration"`
	Filters *FilterDTO  `json:"filters,omitempty"`
}

// CreateAlertRequest is the body of POST /api/v1/alerts.
type CreateAlertRequest struct {
	FlightID    string  `json:"flightId" example:"api-1"`
	TargetPrice float64 `json:"targetPrice" example:"350"`

	// CurrentPrice is looked up from the flight's price history when omitted
	CurrentPrice float64    `json:"currentPrice,omitempty" example:"412"`
	Currency     string     `json:"currency,omitempty" example:"USD"`
	Contact      ContactDTO `json:"contact"`
}

// ContactDTO is where a triggered alert is delivered.
type ContactDTO struct {
	Email              string `json:"email" example:"traveller@example.com"`
	Phone              string `json:"phone,omitempty" example:"+94 77 123 4567"`
	EmailNotifications bool   `json:"emailNotifications" example:"true"`
	SMSNotifications   bool   `json:"smsNotifications" example:"false"`
}

// EvaluateAlertsRequest is the body of POST /api/v1/alerts/evaluate.
type EvaluateAlertsRequest struct {
	FlightID     string  `json:"flightId" example:"api-1"`
	CurrentPrice float64 `json:"currentPrice" example:"340"`
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate checks the request shape and normalizes codes to upper case.
// Calendar checks against today are left to the search use case.
func (r *SearchFlightsRequest) Validate() error {
	errs := &ValidationErrors{}

	r.Origin = validateAirportCode(errs, "origin", r.Origin)
	r.Destination = validateAirportCode(errs, "destination", r.Destination)
	if r.Origin != "" && r.Origin == r.Destination {
		errs.Add("destination", "origin and destination must be different")
	}

	r.validateDates(errs)

	if r.Passengers != nil && (*r.Passengers < 1 || *r.Passengers > domain.MaxPassengers) {
		errs.Add("passengers", fmt.Sprintf("passengers must be between 1 and %d", domain.MaxPassengers))
	}

	if r.Class != "" {
		if _, err := domain.ParseTravelClass(r.Class); err != nil {
			errs.Add("class", "class must be one of: Economy, Business, First")
		}
	}

	validateSortBy(errs, r.SortBy)
	validateFilters(errs, r.Filters)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchFlightsRequest) validateDates(errs *ValidationErrors) {
	if r.DepartureDate == "" {
		errs.Add("departureDate", "departureDate is required")
	} else if !isValidDate(r.DepartureDate) {
		errs.Add("departureDate", "departureDate must be a valid date in YYYY-MM-DD format")
	}

	if r.ReturnDate != "" && !isValidDate(r.ReturnDate) {
		errs.Add("returnDate", "returnDate must be a valid date in YYYY-MM-DD format")
	}
}

// Validate checks the refine request.
func (r *RefineRequest) Validate() error {
	errs := &ValidationErrors{}

	if r.Flights == nil {
		errs.Add("flights", "flights is required")
	}
	validateSortBy(errs, r.SortBy)
	validateFilters(errs, r.Filters)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateAirportCode(errs *ValidationErrors, field, code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		errs.Add(field, field+" is required")
		return ""
	}
	if !airportCodePattern.MatchString(code) {
		errs.Add(field, field+" must be a valid 3-letter airport code")
		return code
	}
	return strings.ToUpper(code)
}

func validateSortBy(errs *ValidationErrors, sortBy string) {
	if !validSortOptions[strings.ToLower(sortBy)] {
		errs.Add("sortBy", "sortBy must be one of: price, duration, departure, arrival, best")
	}
}

func validateFilters(errs *ValidationErrors, f *FilterDTO) {
	if f == nil {
		return
	}

	if pr := f.PriceRange; pr != nil {
		if pr.Min < 0 || pr.Max < 0 {
			errs.Add("filters.priceRange", "price bounds must be non-negative")
		} else if pr.Min > pr.Max {
			errs.Add("filters.priceRange", "min must be less than or equal to max")
		}
	}

	for i, s := range f.Stops {
		if s < 0 {
			errs.Add(fmt.Sprintf("filters.stops[%d]", i), "stop counts must be non-negative")
		}
	}

	for i, c := range f.Classes {
		if _, err := domain.ParseTravelClass(c); err != nil {
			errs.Add(fmt.Sprintf("filters.classes[%d]", i), "class must be one of: Economy, Business, First")
		}
	}

	if tr := f.DepartureTimeRange; tr != nil {
		if !isValidTimeFormat(tr.Start) {
			errs.Add("filters.departureTimeRange.start", "start must be in HH:MM format with valid hours (00-23) and minutes (00-59)")
		}
		if !isValidTimeFormat(tr.End) {
			errs.Add("filters.departureTimeRange.end", "end must be in HH:MM format with valid hours (00-23) and minutes (00-59)")
		}
	}
}

func isValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(domain.DateLayout, s)
	return err == nil
}

// isValidTimeFormat validates that a time string is in HH:MM format with valid values.
func isValidTimeFormat(timeStr string) bool {
	if !timePattern.MatchString(timeStr) {
		return false
	}
	_, err := time.Parse("15:04", timeStr)
	return err == nil
}
