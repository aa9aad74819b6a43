// Package domain contains the core business entities and rules for the flight search system.
// These entities are source-agnostic: every adapter maps its own payload into them.
package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Flight is the canonical record every source is normalized into.
// Values are built once by an adapter and never mutated afterwards.
type Flight struct {
	// ID identifies the record within a single aggregated result set
	ID string `json:"id"`

	// Airline is the operating airline's display name (e.g., "Emirates")
	Airline string `json:"airline"`

	// FlightNumber is the marketing flight number (e.g., "EK 651")
	FlightNumber string `json:"flightNumber"`

	// Origin is the departure airport
	Origin Airport `json:"origin"`

	// Destination is the arrival airport
	Destination Airport `json:"destination"`

	// DepartureTime is the scheduled departure, normalized to UTC
	DepartureTime time.Time `json:"departureTime"`

	// ArrivalTime is the scheduled arrival, normalized to UTC
	ArrivalTime time.Time `json:"arrivalTime"`

	// DurationMinutes is the total journey time in minutes
	DurationMinutes int `json:"durationMinutes"`

	// Price is the fare for the requested cabin
	Price Price `json:"price"`

	// Stops is the number of intermediate stops (0 = direct)
	Stops int `json:"stops"`

	// AvailableSeats is the number of seats left; 0 is a legal value
	AvailableSeats int `json:"availableSeats"`

	// Class is the travel class of the fare
	Class TravelClass `json:"class"`

	// Source names the adapter that produced this record
	Source string `json:"source"`
}

// Airport is one end of a flight.
type Airport struct {
	// City is the served city name (e.g., "Colombo")
	City string `json:"city"`

	// Code is the IATA-like airport code (e.g., "CMB")
	Code string `json:"code"`

	// Terminal is the terminal identifier, when the source knows it
	Terminal string `json:"terminal,omitempty"`
}

// Price is a fare amount in a given currency.
type Price struct {
	// Amount is the non-negative fare value
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 currency code (e.g., "USD")
	Currency string `json:"currency"`
}

// DedupKey identifies "the same flight" across sources.
type DedupKey struct {
	Airline      string
	FlightNumber string
	Departure    int64
	Origin       string
	Destination  string
}

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// DedupKey returns the key used to collapse duplicate itineraries.
func (f Flight) DedupKey() DedupKey {
	return DedupKey{
		Airline:      f.Airline,
		FlightNumber: f.FlightNumber,
		Departure:    f.DepartureTime.UnixNano(),
		Origin:       f.Origin.Code,
		Destination:  f.Destination.Code,
	}
}

// FormattedDuration renders DurationMinutes for display (e.g., "2h 5m").
func (f Flight) FormattedDuration() string {
	return FormatDuration(f.DurationMinutes)
}

// Validate checks the record invariants. Adapters drop records that fail it.
func (f Flight) Validate() error {
	switch {
	case f.Airline == "":
		return &ParseError{Field: "airline", Err: errMissingValue}
	case f.FlightNumber == "":
		return &ParseError{Field: "flightNumber", Err: errMissingValue}
	case f.Origin.Code == "":
		return &ParseError{Field: "origin.code", Err: errMissingValue}
	case f.Destination.Code == "":
		return &ParseError{Field: "destination.code", Err: errMissingValue}
	case f.DepartureTime.IsZero():
		return &ParseError{Field: "departureTime", Err: errMissingValue}
	case f.ArrivalTime.IsZero():
		return &ParseError{Field: "arrivalTime", Err: errMissingValue}
	}

	if math.IsNaN(f.Price.Amount) || math.IsInf(f.Price.Amount, 0) || f.Price.Amount < 0 {
		return &ParseError{Field: "price.amount", Value: fmt.Sprint(f.Price.Amount), Err: errOutOfRange}
	}
	if !currencyCodeRegex.MatchString(f.Price.Currency) {
		return &ParseError{Field: "price.currency", Value: f.Price.Currency, Err: errOutOfRange}
	}
	if f.Stops < 0 {
		return &ParseError{Field: "stops", Value: strconv.Itoa(f.Stops), Err: errOutOfRange}
	}
	if f.AvailableSeats < 0 {
		return &ParseError{Field: "availableSeats", Value: strconv.Itoa(f.AvailableSeats), Err: errOutOfRange}
	}
	if f.DurationMinutes <= 0 {
		return &ParseError{Field: "duration", Value: strconv.Itoa(f.DurationMinutes), Err: errOutOfRange}
	}
	if !f.Class.IsValid() {
		return &ParseError{Field: "class", Value: string(f.Class), Err: errOutOfRange}
	}
	return nil
}

// FormatDuration formats total minutes as "Xh Ym", "Xh" or "Ym".
func FormatDuration(totalMinutes int) string {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	switch {
	case hours > 0 && mins > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
	case hours > 0:
		return strconv.Itoa(hours) + "h"
	default:
		return strconv.Itoa(mins) + "m"
	}
}
