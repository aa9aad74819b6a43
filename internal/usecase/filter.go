package usecase

import (
	"strings"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

// ApplyFilters returns the flights that pass every restriction in f.
//
// Behavior:
//   - Order is preserved; the result is a subset of flights
//   - Empty sets and nil pointers do not restrict their dimension
//   - Airline names match case-insensitively
//   - Applying the same filter twice yields the same result
//   - Does NOT mutate the original flights slice
func ApplyFilters(flights []domain.Flight, f domain.FilterState) []domain.Flight {
	result := make([]domain.Flight, 0, len(flights))
	if f.IsEmpty() {
		return append(result, flights...)
	}

	airlines := buildAirlineSet(f.SelectedAirlines)
	stops := buildSet(f.Stops)
	classes := buildSet(f.Classes)

	for _, fl := range flights {
		if passesAllFilters(fl, f, airlines, stops, classes) {
			result = append(result, fl)
		}
	}
	return result
}

// passesAllFilters ANDs every predicate. A nil set means "no restriction".
func passesAllFilters(fl domain.Flight, f domain.FilterState, airlines map[string]struct{}, stops map[int]struct{}, classes map[domain.TravelClass]struct{}) bool {
	if !f.PriceRange.Contains(fl.Price.Amount) {
		return false
	}
	if airlines != nil && !isAirlineInSet(fl.Airline, airlines) {
		return false
	}
	if stops != nil {
		if _, ok := stops[fl.Stops]; !ok {
			return false
		}
	}
	if classes != nil {
		if _, ok := classes[fl.Class]; !ok {
			return false
		}
	}
	return f.DepartureWindow.Contains(fl.DepartureTime)
}

// buildAirlineSet creates a case-insensitive lookup set of airline names.
func buildAirlineSet(airlines []string) map[string]struct{} {
	if len(airlines) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(airlines))
	for _, name := range airlines {
		set[normalizeAirline(name)] = struct{}{}
	}
	return set
}

func isAirlineInSet(name string, set map[string]struct{}) bool {
	_, exists := set[normalizeAirline(name)]
	return exists
}

func normalizeAirline(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func buildSet[T comparable](values []T) map[T]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// FilterByPriceRange keeps flights priced within r. A nil range keeps all.
func FilterByPriceRange(flights []domain.Flight, r *domain.PriceRange) []domain.Flight {
	return ApplyFilters(flights, domain.FilterState{PriceRange: r})
}

// FilterByAirlines keeps flights of the named airlines. An empty list keeps all.
func FilterByAirlines(flights []domain.Flight, airlines []string) []domain.Flight {
	return ApplyFilters(flights, domain.FilterState{SelectedAirlines: airlines})
}

// FilterByStops keeps flights whose stop count is listed. An empty list keeps all.
func FilterByStops(flights []domain.Flight, stops []int) []domain.Flight {
	return ApplyFilters(flights, domain.FilterState{Stops: stops})
}
