package usecase

import (
	"github.com/google/uuid"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

// Merge unions the flights of the successful results, in result order, and
// collapses duplicates. Two records are duplicates when their DedupKey
// matches; the one with the lower price survives at the position of the
// first one seen, and on equal prices the first one seen is kept. Prices in
// different currencies are not compared: the first one seen is kept.
//
// IDs are then made unique: an empty ID gets a fresh one from newID and an ID
// already used earlier in the set is rewritten to "<source>:<id>".
// Failed results are ignored. The input is never modified.
func Merge(results []domain.SourceResult, newID func() string) []domain.Flight {
	if newID == nil {
		newID = uuid.NewString
	}

	total := 0
	for _, r := range results {
		if r.IsSuccess() {
			total += len(r.Flights)
		}
	}

	merged := make([]domain.Flight, 0, total)
	index := make(map[domain.DedupKey]int, total)

	for _, r := range results {
		if !r.IsSuccess() {
			continue
		}
		for _, f := range r.Flights {
			if f.Source == "" {
				f.Source = r.Source
			}

			key := f.DedupKey()
			i, dup := index[key]
			if !dup {
				index[key] = len(merged)
				merged = append(merged, f)
				continue
			}
			if cheaper(f, merged[i]) {
				merged[i] = f
			}
		}
	}

	assignIDs(merged, newID)
	return merged
}

func cheaper(candidate, kept domain.Flight) bool {
	return candidate.Price.Currency == kept.Price.Currency &&
		candidate.Price.Amount < kept.Price.Amount
}

// assignIDs rewrites IDs in place so that each is unique within flights.
func assignIDs(flights []domain.Flight, newID func() string) {
	used := make(map[string]struct{}, len(flights))

	for i := range flights {
		id := flights[i].ID
		if id != "" {
			if _, taken := used[id]; taken {
				id = flights[i].Source + ":" + id
			}
		}
		for {
			if id == "" {
				id = newID()
			}
			if _, taken := used[id]; !taken {
				break
			}
			id = ""
		}

		used[id] = struct{}{}
		flights[i].ID = id
	}
}
