// Package usecase contains the business logic of the aggregator: the
// two-phase search across sources, the merge, the filter and sort engine and
// the price alert registry.
package usecase

import "github.com/flight-search/fallback-flight-aggregator/internal/domain"

// SearchOptions contains the presentation-side transforms a caller may ask
// for alongside a search. They are applied to a copy of the outcome's flights,
// never baked into the fetch.
type SearchOptions struct {
	// Filters restricts the result set; the zero value restricts nothing
	Filters domain.FilterState

	// SortBy specifies how to sort the results (default: price)
	SortBy domain.SortKey
}

// DefaultSearchOptions returns SearchOptions with sensible defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		SortBy: domain.SortByPrice,
	}
}

// Present applies opts to flights: filter first, then sort.
func Present(flights []domain.Flight, opts SearchOptions) []domain.Flight {
	return Sort(ApplyFilters(flights, opts.Filters), opts.SortBy)
}
