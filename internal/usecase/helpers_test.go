package usecase

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/timeutil"
)

// testToday is the frozen "now" of every test in this package.
var testToday = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func testClock() *timeutil.MockClock {
	return timeutil.NewMockClock(testToday)
}

func cmbToDxb() domain.SearchParams {
	return domain.SearchParams{
		Origin:        "CMB",
		Destination:   "DXB",
		DepartureDate: "2026-10-19",
		Passengers:    1,
		Class:         domain.ClassEconomy,
	}
}

// createTestFlight creates a CMB-DXB flight departing departureHour UTC on
// the searched day.
func createTestFlight(id, source, flightNumber string, price float64, durationMin, stops, departureHour int) domain.Flight {
	dep := time.Date(2026, 10, 19, departureHour, 0, 0, 0, time.UTC)
	return domain.Flight{
		ID:              id,
		Airline:         "Emirates",
		FlightNumber:    flightNumber,
		Origin:          domain.Airport{City: "Colombo", Code: "CMB"},
		Destination:     domain.Airport{City: "Dubai", Code: "DXB"},
		DepartureTime:   dep,
		ArrivalTime:     dep.Add(time.Duration(durationMin) * time.Minute),
		DurationMinutes: durationMin,
		Price:           domain.Price{Amount: price, Currency: "USD"},
		Stops:           stops,
		AvailableSeats:  9,
		Class:           domain.ClassEconomy,
		Source:          source,
	}
}

// flightsFor creates n distinct flights for source, numbered from first.
func flightsFor(source string, first, n int) []domain.Flight {
	flights := make([]domain.Flight, 0, n)
	for i := first; i < first+n; i++ {
		num := strconv.Itoa(600 + i)
		flights = append(flights, createTestFlight(source+"-"+num, source, "EK "+num, float64(300+i*10), 270, 0, i%24))
	}
	return flights
}

// sequentialIDs returns an ID generator yielding gen-1, gen-2, ...
func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string {
		return "gen-" + strconv.FormatInt(n.Add(1), 10)
	}
}

// setupMockSource creates a mock source answering every call with batch/err.
func setupMockSource(ctrl *gomock.Controller, name string, flights []domain.Flight, err error) *domain.MockFlightSource {
	mock := domain.NewMockFlightSource(ctrl)
	mock.EXPECT().Name().Return(name).AnyTimes()
	mock.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(domain.SourceBatch{Flights: flights}, err).Times(1)
	return mock
}

// setupUncalledSource creates a mock source that fails the test if fetched.
func setupUncalledSource(ctrl *gomock.Controller, name string) *domain.MockFlightSource {
	mock := domain.NewMockFlightSource(ctrl)
	mock.EXPECT().Name().Return(name).AnyTimes()
	mock.EXPECT().Fetch(gomock.Any(), gomock.Any()).Times(0)
	return mock
}

// setupBlockingSource creates a mock source that only returns when its
// context is done.
func setupBlockingSource(ctrl *gomock.Controller, name string) *domain.MockFlightSource {
	mock := domain.NewMockFlightSource(ctrl)
	mock.EXPECT().Name().Return(name).AnyTimes()
	mock.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.SearchParams) (domain.SourceBatch, error) {
			<-ctx.Done()
			return domain.SourceBatch{}, ctx.Err()
		},
	).Times(1)
	return mock
}

// setupSlowSource creates a mock source that answers after delay unless its
// context ends first.
func setupSlowSource(ctrl *gomock.Controller, name string, flights []domain.Flight, delay time.Duration) *domain.MockFlightSource {
	mock := domain.NewMockFlightSource(ctrl)
	mock.EXPECT().Name().Return(name).AnyTimes()
	mock.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.SearchParams) (domain.SourceBatch, error) {
			select {
			case <-time.After(delay):
				return domain.SourceBatch{Flights: flights}, nil
			case <-ctx.Done():
				return domain.SourceBatch{}, ctx.Err()
			}
		},
	).Times(1)
	return mock
}

// setupPanickingSource creates a mock source that panics when fetched.
func setupPanickingSource(ctrl *gomock.Controller, name, msg string) *domain.MockFlightSource {
	mock := domain.NewMockFlightSource(ctrl)
	mock.EXPECT().Name().Return(name).AnyTimes()
	mock.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.SearchParams) (domain.SourceBatch, error) {
			panic(msg)
		},
	).Times(1)
	return mock
}
