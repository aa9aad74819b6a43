package domain

import "time"

// OutcomeStatus summarizes how a search went.
type OutcomeStatus string

// Outcome statuses.
const (
	// StatusOK means flights were found and no source failed.
	StatusOK OutcomeStatus = "ok"

	// StatusDegraded means flights were found but at least one source failed.
	StatusDegraded OutcomeStatus = "degraded"

	// StatusFailed means the merged result is empty. Failures tell whether
	// sources errored or simply had nothing to offer.
	StatusFailed OutcomeStatus = "failed"
)

// SourceBatch is what a source returns on success.
type SourceBatch struct {
	// Flights are the records that passed normalization
	Flights []Flight

	// Skipped counts records dropped because of ParseErrors
	Skipped int
}

// SourceResult is the settled outcome of a single source call.
type SourceResult struct {
	// Source is the name of the adapter
	Source string `json:"source"`

	// Flights contains the records returned on success
	Flights []Flight `json:"-"`

	// Skipped counts records the adapter dropped
	Skipped int `json:"skipped,omitempty"`

	// Err is set when the source failed
	Err *FetchError `json:"-"`

	// Duration is how long the call took
	Duration time.Duration `json:"-"`
}

// IsSuccess returns true if the source call succeeded.
func (r SourceResult) IsSuccess() bool {
	return r.Err == nil
}

// AggregateOutcome is the single result of a search call, owned by the caller.
type AggregateOutcome struct {
	// Status is ok, degraded or failed
	Status OutcomeStatus

	// Flights is the merged, deduplicated record set
	Flights []Flight

	// Failures lists the sources that failed, in query order
	Failures []SourceResult

	// SourcesQueried lists every source that was asked, in query order
	SourcesQueried []string

	// UsedFallback is true when the scraper phase ran
	UsedFallback bool

	// SkippedRecords totals the records dropped by successful sources
	SkippedRecords int

	// Elapsed is the wall time of the search
	Elapsed time.Duration
}

// FailedSources returns the names of the failed sources.
func (o *AggregateOutcome) FailedSources() []string {
	names := make([]string, 0, len(o.Failures))
	for _, f := range o.Failures {
		names = append(names, f.Source)
	}
	return names
}

// DeriveStatus computes the outcome status from the merged size and failure count.
func DeriveStatus(mergedCount, failureCount int) OutcomeStatus {
	switch {
	case mergedCount == 0:
		return StatusFailed
	case failureCount > 0:
		return StatusDegraded
	default:
		return StatusOK
	}
}
