package flightapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/normalize"
)

// envelope is the response wrapper the flight API puts around every payload.
type envelope struct {
	Data      []json.RawMessage `json:"data"`
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
}

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexAmount is a price amount sent as a JSON string or number. Numbers are
// rewritten in plain decimal form, so "1e3" reaches the price parser as "1000".
type flexAmount string

func (f *flexAmount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && (b[0] == '"' || bytes.Equal(b, []byte("null"))) {
		var s flexString
		if err := s.UnmarshalJSON(b); err != nil {
			return err
		}
		*f = flexAmount(s)
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = flexAmount(strconv.FormatFloat(v, 'f', -1, 64))
	return nil
}

type wireAirport struct {
	City     flexString `json:"city"`
	Code     flexString `json:"code"`
	Terminal flexString `json:"terminal"`
}

type wirePrice struct {
	Amount   flexAmount `json:"amount"`
	Currency flexString `json:"currency"`
}

type wireFlight struct {
	ID             flexString  `json:"id"`
	Airline        flexString  `json:"airline"`
	FlightNumber   flexString  `json:"flightNumber"`
	Origin         wireAirport `json:"origin"`
	Destination    wireAirport `json:"destination"`
	DepartureTime  flexString  `json:"departureTime"`
	ArrivalTime    flexString  `json:"arrivalTime"`
	Duration       flexString  `json:"duration"`
	Price          wirePrice   `json:"price"`
	Stops          flexString  `json:"stops"`
	AvailableSeats flexString  `json:"available_seats"`
	Class          flexString  `json:"class"`
}

func (w wireFlight) listing() normalize.Listing {
	return normalize.Listing{
		ID:                  string(w.ID),
		Airline:             string(w.Airline),
		FlightNumber:        string(w.FlightNumber),
		OriginCity:          string(w.Origin.City),
		OriginCode:          string(w.Origin.Code),
		OriginTerminal:      string(w.Origin.Terminal),
		DestinationCity:     string(w.Destination.City),
		DestinationCode:     string(w.Destination.Code),
		DestinationTerminal: string(w.Destination.Terminal),
		Departure:           string(w.DepartureTime),
		Arrival:             string(w.ArrivalTime),
		Duration:            string(w.Duration),
		Price:               string(w.Price.Amount),
		Currency:            strings.ToUpper(strings.TrimSpace(string(w.Price.Currency))),
		Stops:               string(w.Stops),
		Seats:               string(w.AvailableSeats),
		Class:               string(w.Class),
	}
}
