package domain

import "context"

//go:generate mockgen -source=source.go -destination=mock_source.go -package=domain

// FlightSource is the capability every upstream adapter implements.
// Adding a source means adding an implementer; the orchestrator never branches
// on the concrete type.
type FlightSource interface {
	// Name returns the unique identifier of the source.
	Name() string

	// Fetch queries the upstream and returns normalized flights.
	// A failure is returned as a *FetchError; malformed individual records are
	// dropped and counted in SourceBatch.Skipped instead.
	Fetch(ctx context.Context, params SearchParams) (SourceBatch, error)
}
