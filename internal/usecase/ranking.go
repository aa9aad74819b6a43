package usecase

import (
	"math"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

// Ranking algorithm weights. They sum to 1.0.
const (
	weightPrice    = 0.5
	weightDuration = 0.3
	weightStops    = 0.2
)

// BestValueScores returns one score per flight, index-aligned with flights:
//
//	Score = (0.5 × NormalizedPrice) + (0.3 × NormalizedDuration) + (0.2 × NormalizedStops)
//
// Normalized values lie in [0, 1] across the given set, 0 being the best
// (cheapest, shortest, fewest stops). Lower score = better value.
// A single flight, or a set where a dimension is uniform, scores 0 on that
// dimension. Scores are relative to the set and are not stored on the flights.
func BestValueScores(flights []domain.Flight) []float64 {
	scores := make([]float64, len(flights))
	if len(flights) == 0 {
		return scores
	}

	minPrice, maxPrice := findRange(flights, func(f domain.Flight) float64 { return f.Price.Amount })
	minDuration, maxDuration := findRange(flights, func(f domain.Flight) float64 { return float64(f.DurationMinutes) })
	minStops, maxStops := findRange(flights, func(f domain.Flight) float64 { return float64(f.Stops) })

	for i, f := range flights {
		scores[i] = weightPrice*normalizeValue(f.Price.Amount, minPrice, maxPrice) +
			weightDuration*normalizeValue(float64(f.DurationMinutes), minDuration, maxDuration) +
			weightStops*normalizeValue(float64(f.Stops), minStops, maxStops)
	}
	return scores
}

// normalizeValue maps value into [0, 1]. Returns 0 when min == max.
func normalizeValue(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min)
}

func findRange(flights []domain.Flight, value func(domain.Flight) float64) (min, max float64) {
	min, max = math.MaxFloat64, -math.MaxFloat64
	for _, f := range flights {
		v := value(f)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
