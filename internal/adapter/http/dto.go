package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/usecase"
)

// SearchResponseDTO is the data transfer object for search responses.
// Fields are snake_case to match the public API format.
type SearchResponseDTO struct {
	Status         string            `json:"status"`
	SearchCriteria SearchCriteriaDTO `json:"search_criteria"`
	Metadata       MetadataDTO       `json:"metadata"`
	Flights        []FlightDTO       `json:"flights"`
	Failures       []FailureDTO      `json:"failures"`
}

// SearchCriteriaDTO echoes the normalized search parameters.
type SearchCriteriaDTO struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Passengers    int    `json:"passengers"`
	CabinClass    string `json:"cabin_class"`
}

// MetadataDTO contains metadata about the search execution.
type MetadataDTO struct {
	TotalResults   int      `json:"total_results"`
	SourcesQueried []string `json:"sources_queried"`
	SourcesFailed  []string `json:"sources_failed"`
	UsedFallback   bool     `json:"used_fallback"`
	SkippedRecords int      `json:"skipped_records"`
	SearchTimeMs   int64    `json:"search_time_ms"`
}

// FailureDTO describes one source that failed.
type FailureDTO struct {
	Source     string `json:"source"`
	Kind       string `json:"kind"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
	DurationMs int64  `json:"duration_ms"`
}

// FlightDTO is the data transfer object for flight responses.
type FlightDTO struct {
	ID             string         `json:"id"`
	Source         string         `json:"source"`
	Airline        string         `json:"airline"`
	FlightNumber   string         `json:"flight_number"`
	Departure      FlightPointDTO `json:"departure"`
	Arrival        FlightPointDTO `json:"arrival"`
	Duration       DurationDTO    `json:"duration"`
	Stops          int            `json:"stops"`
	Price          PriceDTO       `json:"price"`
	AvailableSeats int            `json:"available_seats"`
	CabinClass     string         `json:"cabin_class"`
}

// FlightPointDTO represents a departure or arrival point.
type FlightPointDTO struct {
	Airport   string `json:"airport"`
	City      string `json:"city,omitempty"`
	Terminal  string `json:"terminal,omitempty"`
	DateTime  string `json:"datetime"`
	Timestamp int64  `json:"timestamp"`
}

// DurationDTO represents flight duration.
type DurationDTO struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

// PriceDTO represents price information.
type PriceDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// RefineResponseDTO is the result of re-filtering and re-sorting a flight list.
type RefineResponseDTO struct {
	TotalResults int         `json:"total_results"`
	Flights      []FlightDTO `json:"flights"`
}

// AlertDTO is the data transfer object for price alerts.
type AlertDTO struct {
	ID           string          `json:"id"`
	FlightID     string          `json:"flight_id"`
	TargetPrice  float64         `json:"target_price"`
	CurrentPrice float64         `json:"current_price"`
	Currency     string          `json:"currency"`
	State        string          `json:"state"`
	Hints        []string        `json:"hints"`
	Armed        bool            `json:"armed"`
	Contact      AlertContactDTO `json:"contact"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// AlertContactDTO is the contact block of an AlertDTO.
type AlertContactDTO struct {
	Email              string `json:"email"`
	Phone              string `json:"phone,omitempty"`
	EmailNotifications bool   `json:"email_notifications"`
	SMSNotifications   bool   `json:"sms_notifications"`
}

// EvaluateAlertsResponseDTO lists the alerts an evaluation triggered.
type EvaluateAlertsResponseDTO struct {
	Triggered []AlertDTO `json:"triggered"`
}

// ToSearchResponseDTO converts an outcome and its presented flights to the API shape.
func ToSearchResponseDTO(params domain.SearchParams, outcome *domain.AggregateOutcome, flights []domain.Flight) SearchResponseDTO {
	failures := make([]FailureDTO, 0, len(outcome.Failures))
	for _, f := range outcome.Failures {
		failures = append(failures, toFailureDTO(f))
	}

	return SearchResponseDTO{
		Status: string(outcome.Status),
		SearchCriteria: SearchCriteriaDTO{
			Origin:        params.Origin,
			Destination:   params.Destination,
			DepartureDate: params.DepartureDate,
			ReturnDate:    params.ReturnDate,
			Passengers:    params.Passengers,
			CabinClass:    string(params.Class),
		},
		Metadata: MetadataDTO{
			TotalResults:   len(flights),
			SourcesQueried: nonNil(outcome.SourcesQueried),
			SourcesFailed:  outcome.FailedSources(),
			UsedFallback:   outcome.UsedFallback,
			SkippedRecords: outcome.SkippedRecords,
			SearchTimeMs:   outcome.Elapsed.Milliseconds(),
		},
		Flights:  ToFlightDTOs(flights),
		Failures: failures,
	}
}

func toFailureDTO(r domain.SourceResult) FailureDTO {
	dto := FailureDTO{
		Source:     r.Source,
		DurationMs: r.Duration.Milliseconds(),
	}
	if r.Err != nil {
		dto.Kind = string(r.Err.Kind)
		dto.StatusCode = r.Err.StatusCode
		dto.Message = r.Err.Error()
	}
	return dto
}

// ToFlightDTOs converts a slice of domain flights. It never returns nil.
func ToFlightDTOs(flights []domain.Flight) []FlightDTO {
	dtos := make([]FlightDTO, 0, len(flights))
	for _, f := range flights {
		dtos = append(dtos, ToFlightDTO(f))
	}
	return dtos
}

// ToFlightDTO converts a domain.Flight to a FlightDTO.
func ToFlightDTO(f domain.Flight) FlightDTO {
	return FlightDTO{
		ID:           f.ID,
		Source:       f.Source,
		Airline:      f.Airline,
		FlightNumber: f.FlightNumber,
		Departure:    toFlightPointDTO(f.Origin, f.DepartureTime),
		Arrival:      toFlightPointDTO(f.Destination, f.ArrivalTime),
		Duration: DurationDTO{
			TotalMinutes: f.DurationMinutes,
			Formatted:    f.FormattedDuration(),
		},
		Stops: f.Stops,
		Price: PriceDTO{
			Amount:   f.Price.Amount,
			Currency: f.Price.Currency,
		},
		AvailableSeats: f.AvailableSeats,
		CabinClass:     string(f.Class),
	}
}

func toFlightPointDTO(a domain.Airport, t time.Time) FlightPointDTO {
	return FlightPointDTO{
		Airport:   a.Code,
		City:      a.City,
		Terminal:  a.Terminal,
		DateTime:  t.UTC().Format(time.RFC3339),
		Timestamp: t.Unix(),
	}
}

// ToDomainFlight converts a FlightDTO posted by a client back to a domain.Flight.
// The result is validated like any record coming from a source.
func ToDomainFlight(dto FlightDTO) (domain.Flight, error) {
	departure, err := time.Parse(time.RFC3339, dto.Departure.DateTime)
	if err != nil {
		return domain.Flight{}, domain.NewValidationError("departure.datetime", "datetime must be RFC 3339")
	}
	arrival, err := time.Parse(time.RFC3339, dto.Arrival.DateTime)
	if err != nil {
		return domain.Flight{}, domain.NewValidationError("arrival.datetime", "datetime must be RFC 3339")
	}
	class, err := domain.ParseTravelClass(dto.CabinClass)
	if err != nil {
		return domain.Flight{}, domain.NewValidationError("cabin_class", "class must be one of: Economy, Business, First")
	}

	f := domain.Flight{
		ID:           dto.ID,
		Airline:      dto.Airline,
		FlightNumber: dto.FlightNumber,
		Origin: domain.Airport{
			City:     dto.Departure.City,
			Code:     dto.Departure.Airport,
			Terminal: dto.Departure.Terminal,
		},
		Destination: domain.Airport{
			City:     dto.Arrival.City,
			Code:     dto.Arrival.Airport,
			Terminal: dto.Arrival.Terminal,
		},
		DepartureTime:   departure.UTC(),
		ArrivalTime:     arrival.UTC(),
		DurationMinutes: dto.Duration.TotalMinutes,
		Price: domain.Price{
			Amount:   dto.Price.Amount,
			Currency: dto.Price.Currency,
		},
		Stops:          dto.Stops,
		AvailableSeats: dto.AvailableSeats,
		Class:          class,
		Source:         dto.Source,
	}

	if err := f.Validate(); err != nil {
		var pe *domain.ParseError
		if errors.As(err, &pe) {
			return domain.Flight{}, domain.NewValidationError(pe.Field, fmt.Sprintf("invalid %s", pe.Field))
		}
		return domain.Flight{}, err
	}
	return f, nil
}

// ToAlertDTO converts a domain.Alert to an AlertDTO.
func ToAlertDTO(a domain.Alert) AlertDTO {
	hints := make([]string, 0, len(a.Hints))
	for _, h := range a.Hints {
		hints = append(hints, string(h))
	}

	return AlertDTO{
		ID:           string(a.Handle),
		FlightID:     a.FlightID,
		TargetPrice:  a.TargetPrice,
		CurrentPrice: a.CurrentPrice,
		Currency:     a.Currency,
		State:        string(a.State),
		Hints:        hints,
		Armed:        a.Armed,
		Contact: AlertContactDTO{
			Email:              a.Contact.Email,
			Phone:              a.Contact.Phone,
			EmailNotifications: a.Contact.EmailNotifications,
			SMSNotifications:   a.Contact.SMSNotifications,
		},
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ToAlertDTOs converts a slice of alerts. It never returns nil.
func ToAlertDTOs(alerts []domain.Alert) []AlertDTO {
	dtos := make([]AlertDTO, 0, len(alerts))
	for _, a := range alerts {
		dtos = append(dtos, ToAlertDTO(a))
	}
	return dtos
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// PriceHistoryDTO is the fare history of one flight.
type PriceHistoryDTO struct {
	FlightID string          `json:"flight_id"`
	Latest   float64         `json:"latest"`
	Lowest   float64         `json:"lowest"`
	Points   []PricePointDTO `json:"points"`
}

// PricePointDTO is one day of a PriceHistoryDTO.
type PricePointDTO struct {
	Date        string  `json:"date"`
	Price       float64 `json:"price"`
	LowestPrice float64 `json:"lowest_price"`
}

// PopularDestinationsDTO lists featured destinations.
type PopularDestinationsDTO struct {
	Destinations []PopularDestinationDTO `json:"destinations"`
}

// PopularDestinationDTO is one featured destination.
type PopularDestinationDTO struct {
	ID       string   `json:"id"`
	City     string   `json:"city"`
	Country  string   `json:"country"`
	Code     string   `json:"code"`
	Price    PriceDTO `json:"price"`
	ImageURL string   `json:"image_url,omitempty"`
	Deals    DealsDTO `json:"deals"`
}

// DealsDTO summarizes the offers for a destination.
type DealsDTO struct {
	Count          int     `json:"count"`
	LowestDiscount float64 `json:"lowest_discount"`
}

// ToPriceHistoryDTO converts a usecase.PriceHistory to a PriceHistoryDTO.
func ToPriceHistoryDTO(h usecase.PriceHistory) PriceHistoryDTO {
	points := make([]PricePointDTO, 0, len(h.Points))
	for _, p := range h.Points {
		points = append(points, PricePointDTO{Date: p.Date, Price: p.Price, LowestPrice: p.LowestPrice})
	}
	return PriceHistoryDTO{
		FlightID: h.FlightID,
		Latest:   h.Latest,
		Lowest:   h.Lowest,
		Points:   points,
	}
}

// ToPopularDestinationsDTO converts destinations to a PopularDestinationsDTO.
func ToPopularDestinationsDTO(dests []domain.PopularDestination) PopularDestinationsDTO {
	out := make([]PopularDestinationDTO, 0, len(dests))
	for _, d := range dests {
		out = append(out, PopularDestinationDTO{
			ID:       d.ID,
			City:     d.City,
			Country:  d.Country,
			Code:     d.Code,
			Price:    PriceDTO{Amount: d.Price.Amount, Currency: d.Price.Currency},
			ImageURL: d.ImageURL,
			Deals:    DealsDTO{Count: d.Deals.Count, LowestDiscount: d.Deals.LowestDiscount},
		})
	}
	return PopularDestinationsDTO{Destinations: out}
}
