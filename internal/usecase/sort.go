package usecase

import (
	"sort"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

// Sort returns a sorted copy of flights.
//
// Sort keys:
//   - SortByPrice (default): ascending by Price.Amount
//   - SortByDuration: ascending by DurationMinutes, never by the display string
//   - SortByDeparture: ascending by DepartureTime
//   - SortByArrival: ascending by ArrivalTime
//   - SortByBestValue: ascending by BestValueScores
//
// The sort is stable: ties keep their input order, so sorting twice by the
// same key yields the same sequence. An empty or unknown key sorts by price.
// Does NOT mutate the original flights slice.
func Sort(flights []domain.Flight, key domain.SortKey) []domain.Flight {
	result := make([]domain.Flight, len(flights))
	copy(result, flights)
	if len(result) < 2 {
		return result
	}

	if !key.IsValid() {
		key = domain.SortByPrice
	}

	switch key {
	case domain.SortByDuration:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].DurationMinutes < result[j].DurationMinutes
		})
	case domain.SortByDeparture:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].DepartureTime.Before(result[j].DepartureTime)
		})
	case domain.SortByArrival:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].ArrivalTime.Before(result[j].ArrivalTime)
		})
	case domain.SortByBestValue:
		sortByScore(result)
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.Amount < result[j].Price.Amount
		})
	}

	return result
}

// sortByScore orders flights by best-value score. Scores are computed once
// and carried alongside the flights while they move.
func sortByScore(flights []domain.Flight) {
	scores := BestValueScores(flights)

	type scored struct {
		flight domain.Flight
		score  float64
	}
	pairs := make([]scored, len(flights))
	for i := range flights {
		pairs[i] = scored{flights[i], scores[i]}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score < pairs[j].score
	})

	for i := range pairs {
		flights[i] = pairs[i].flight
	}
}
