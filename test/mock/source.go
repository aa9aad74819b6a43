// Package mock provides test doubles for the flight aggregator.
// These doubles are designed for integration testing where we need
// configurable behavior (delays, errors, panics, specific batches).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

// Source is a configurable implementation of domain.FlightSource.
// It supports delays, errors and panics for testing timeouts and partial
// failures.
type Source struct {
	name     string
	flights  []domain.Flight
	skipped  int
	err      error
	delay    time.Duration
	panicMsg string

	mu         sync.Mutex
	callCount  int
	lastParams domain.SearchParams
}

var _ domain.FlightSource = (*Source)(nil)

// NewSource creates a source with the given name that returns nothing.
// Configure it with the builder methods.
func NewSource(name string) *Source {
	return &Source{name: name}
}

// WithFlights configures the source to return the given flights.
func (s *Source) WithFlights(flights []domain.Flight) *Source {
	s.flights = flights
	return s
}

// WithSkipped configures how many malformed records the batch reports.
func (s *Source) WithSkipped(n int) *Source {
	s.skipped = n
	return s
}

// WithError configures the source to fail with err.
func (s *Source) WithError(err error) *Source {
	s.err = err
	return s
}

// WithDelay makes the source wait d before answering, unless its context
// ends first.
func (s *Source) WithDelay(d time.Duration) *Source {
	s.delay = d
	return s
}

// WithPanic makes Fetch panic with msg.
func (s *Source) WithPanic(msg string) *Source {
	s.panicMsg = msg
	return s
}

// Name returns the source's unique identifier.
func (s *Source) Name() string {
	return s.name
}

// Fetch implements domain.FlightSource.
func (s *Source) Fetch(ctx context.Context, params domain.SearchParams) (domain.SourceBatch, error) {
	s.mu.Lock()
	s.callCount++
	s.lastParams = params
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return domain.SourceBatch{}, domain.NewTimeoutError(s.name, ctx.Err())
		case <-time.After(s.delay):
		}
	}

	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.err != nil {
		return domain.SourceBatch{}, s.err
	}

	flights := make([]domain.Flight, len(s.flights))
	copy(flights, s.flights)
	return domain.SourceBatch{Flights: flights, Skipped: s.skipped}, nil
}

// CallCount returns the number of times Fetch was called.
func (s *Source) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// LastParams returns the params of the most recent Fetch.
func (s *Source) LastParams() domain.SearchParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastParams
}

// Reset resets the call count to zero.
func (s *Source) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount = 0
}

// Carrier is one airline used by SampleFlights.
type Carrier struct {
	Name string
	Code string
}

var carriers = []Carrier{
	{Name: "Emirates", Code: "EK"},
	{Name: "SriLankan Airlines", Code: "UL"},
	{Name: "Qatar Airways", Code: "QR"},
	{Name: "flydubai", Code: "FZ"},
}

// SampleFlights returns count CMB to DXB flights on 2026-10-19 tagged with
// source. Flight i is operated by carrier i%4, departs at 02:00 + 2h*i and
// costs 300 + 25*i USD. Flight numbers depend only on i, so two sources with
// overlapping samples produce duplicates.
func SampleFlights(source string, count int) []domain.Flight {
	flights := make([]domain.Flight, count)
	base := time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		c := carriers[i%len(carriers)]
		dep := base.Add(time.Duration(i*2) * time.Hour)

		flights[i] = domain.Flight{
			ID:              fmt.Sprintf("%s-%d", source, i+1),
			Airline:         c.Name,
			FlightNumber:    fmt.Sprintf("%s %d", c.Code, 600+i),
			Origin:          domain.Airport{City: "Colombo", Code: "CMB"},
			Destination:     domain.Airport{City: "Dubai", Code: "DXB", Terminal: "3"},
			DepartureTime:   dep,
			ArrivalTime:     dep.Add(275 * time.Minute),
			DurationMinutes: 275,
			Price:           domain.Price{Amount: 300 + float64(i*25), Currency: "USD"},
			Stops:           i % 2,
			AvailableSeats:  9 - i%9,
			Class:           domain.ClassEconomy,
			Source:          source,
		}
	}

	return flights
}

// Repriced returns a copy of f with a new price and source, for building
// cross-source duplicates.
func Repriced(f domain.Flight, source string, amount float64) domain.Flight {
	f.Source = source
	f.ID = source + "-" + f.FlightNumber
	f.Price.Amount = amount
	return f
}
