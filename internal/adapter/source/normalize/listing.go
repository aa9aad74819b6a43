package normalize

import (
	"errors"
	"strings"
	"time"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

// Listing is one flight as a source presents it: every field still raw text.
type Listing struct {
	// ID may be empty; the aggregator assigns one when merging.
	ID           string
	Airline      string
	FlightNumber string

	OriginCity     string
	OriginCode     string
	OriginTerminal string

	DestinationCity     string
	DestinationCode     string
	DestinationTerminal string

	Departure string
	Arrival   string

	// Duration may be empty; it is then derived from Departure and Arrival.
	Duration string

	Price string

	// Currency is a source-level hint used when Price carries no code or symbol.
	Currency string

	Stops string
	Seats string

	// Class may be empty; Defaults.Class applies then.
	Class string
}

// Defaults carries the per-source context a Listing is interpreted in.
type Defaults struct {
	Source   string
	Currency string
	Class    domain.TravelClass
	Location *time.Location
	Airlines *AirlineDirectory
}

// ToFlight converts the listing into a validated Flight. Any failure is a
// *domain.ParseError naming the offending field.
func (l Listing) ToFlight(d Defaults) (domain.Flight, error) {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}

	departure, err := ParseTimestamp(l.Departure, loc)
	if err != nil {
		return domain.Flight{}, domain.NewParseError("departureTime", l.Departure, err)
	}
	arrival, err := ParseTimestamp(l.Arrival, loc)
	if err != nil {
		return domain.Flight{}, domain.NewParseError("arrivalTime", l.Arrival, err)
	}

	var minutes int
	if strings.TrimSpace(l.Duration) == "" {
		minutes = int(arrival.Sub(departure) / time.Minute)
	} else if minutes, err = ParseDuration(l.Duration); err != nil {
		return domain.Flight{}, domain.NewParseError("duration", l.Duration, err)
	}

	currency := l.Currency
	if currency == "" {
		currency = d.Currency
	}
	price, err := ParsePrice(l.Price, currency)
	if err != nil {
		return domain.Flight{}, domain.NewParseError("price", l.Price, err)
	}

	stops, err := ParseCount(l.Stops)
	if err != nil {
		return domain.Flight{}, domain.NewParseError("stops", l.Stops, err)
	}
	seats, err := ParseCount(l.Seats)
	if err != nil {
		return domain.Flight{}, domain.NewParseError("availableSeats", l.Seats, err)
	}

	class := d.Class
	if strings.TrimSpace(l.Class) != "" {
		if class, err = domain.ParseTravelClass(l.Class); err != nil {
			return domain.Flight{}, domain.NewParseError("class", l.Class, errors.Join(ErrMalformed, err))
		}
	}

	f := domain.Flight{
		ID:           strings.TrimSpace(l.ID),
		Airline:      d.Airlines.Canonical(l.Airline),
		FlightNumber: strings.ToUpper(collapseSpaces(l.FlightNumber)),
		Origin: domain.Airport{
			City:     collapseSpaces(l.OriginCity),
			Code:     strings.ToUpper(strings.TrimSpace(l.OriginCode)),
			Terminal: strings.TrimSpace(l.OriginTerminal),
		},
		Destination: domain.Airport{
			City:     collapseSpaces(l.DestinationCity),
			Code:     strings.ToUpper(strings.TrimSpace(l.DestinationCode)),
			Terminal: strings.TrimSpace(l.DestinationTerminal),
		},
		DepartureTime:   departure,
		ArrivalTime:     arrival,
		DurationMinutes: minutes,
		Price:           price,
		Stops:           stops,
		AvailableSeats:  seats,
		Class:           class,
		Source:          d.Source,
	}

	if err := f.Validate(); err != nil {
		return domain.Flight{}, err
	}
	return f, nil
}
