package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/timeutil"
)

// Default timeout values.
const (
	DefaultDeadline      = 8 * time.Second
	DefaultSourceTimeout = 3 * time.Second
)

var tracer = otel.Tracer("github.com/flight-search/fallback-flight-aggregator/internal/usecase")

// FlightSearchUseCase defines the interface for flight search operations.
type FlightSearchUseCase interface {
	// Search validates params, asks the primary source and, when it fails or
	// comes back empty, every fallback source concurrently.
	// The error is non-nil only for invalid params.
	Search(ctx context.Context, params domain.SearchParams) (*domain.AggregateOutcome, error)
}

// Config contains the timeouts of a search.
type Config struct {
	// Deadline bounds the whole search, both phases included
	Deadline time.Duration

	// SourceTimeout bounds a single source call
	SourceTimeout time.Duration

	// SourceTimeouts overrides SourceTimeout per source name
	SourceTimeouts map[string]time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Deadline:      DefaultDeadline,
		SourceTimeout: DefaultSourceTimeout,
	}
}

// Aggregator implements FlightSearchUseCase with a primary-then-fallback strategy.
type Aggregator struct {
	primary  domain.FlightSource
	scrapers []domain.FlightSource
	cfg      Config
	clock    timeutil.Clock
	log      *logger.Logger
	newID    func() string
}

var _ FlightSearchUseCase = (*Aggregator)(nil)

// NewAggregator creates an Aggregator. scrapers are queried, and merged, in
// the given order. It returns ErrInvalidConfig for a nil source, duplicate
// source names or negative timeouts. Zero timeouts take the defaults.
func NewAggregator(primary domain.FlightSource, scrapers []domain.FlightSource, cfg Config, clock timeutil.Clock, log *logger.Logger) (*Aggregator, error) {
	if primary == nil {
		return nil, fmt.Errorf("%w: primary source is required", domain.ErrInvalidConfig)
	}

	seen := map[string]struct{}{primary.Name(): {}}
	for i, s := range scrapers {
		if s == nil {
			return nil, fmt.Errorf("%w: scraper %d is nil", domain.ErrInvalidConfig, i)
		}
		if _, dup := seen[s.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate source name %q", domain.ErrInvalidConfig, s.Name())
		}
		seen[s.Name()] = struct{}{}
	}

	if cfg.Deadline < 0 || cfg.SourceTimeout < 0 {
		return nil, fmt.Errorf("%w: timeouts must not be negative", domain.ErrInvalidConfig)
	}
	if cfg.Deadline == 0 {
		cfg.Deadline = DefaultDeadline
	}
	if cfg.SourceTimeout == 0 {
		cfg.SourceTimeout = DefaultSourceTimeout
	}
	for name, d := range cfg.SourceTimeouts {
		if _, ok := seen[name]; !ok {
			return nil, fmt.Errorf("%w: timeout override for unknown source %q", domain.ErrInvalidConfig, name)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%w: timeout override for %q must be positive", domain.ErrInvalidConfig, name)
		}
	}

	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Aggregator{
		primary:  primary,
		scrapers: append([]domain.FlightSource(nil), scrapers...),
		cfg:      cfg,
		clock:    clock,
		log:      log.WithComponent("aggregator"),
		newID:    uuid.NewString,
	}, nil
}

// Sources returns the primary source name and the scraper names in query order.
func (a *Aggregator) Sources() (primary string, scrapers []string) {
	scrapers = make([]string, 0, len(a.scrapers))
	for _, s := range a.scrapers {
		scrapers = append(scrapers, s.Name())
	}
	return a.primary.Name(), scrapers
}

// Search implements FlightSearchUseCase.Search.
func (a *Aggregator) Search(ctx context.Context, params domain.SearchParams) (*domain.AggregateOutcome, error) {
	started := time.Now()

	params.SetDefaults()
	if err := params.Validate(a.clock.Now()); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Deadline)
	defer cancel()

	ctx, span := tracer.Start(ctx, "aggregator.Search", trace.WithAttributes(
		attribute.String("search.origin", params.Origin),
		attribute.String("search.destination", params.Destination),
		attribute.String("search.date", params.DepartureDate),
	))
	defer span.End()

	log := logger.FromContext(ctx, a.log)

	// Phase 1: primary, alone.
	primary := a.fetch(ctx, a.primary, params)
	results := []domain.SourceResult{primary}

	usedFallback := !primary.IsSuccess() || len(primary.Flights) == 0
	if usedFallback {
		ev := log.Info().Str("primary", primary.Source)
		if primary.Err != nil {
			ev = ev.Str("reason", string(primary.Err.Kind))
		} else {
			ev = ev.Str("reason", "empty")
		}
		ev.Int("scrapers", len(a.scrapers)).Msg("primary unusable, falling back to scrapers")

		// Phase 2: every scraper, settle-all.
		results = append(results, a.fanOut(ctx, params)...)
	}

	out := a.outcome(results, usedFallback, time.Since(started))

	for _, f := range out.Failures {
		log.Warn().Str("source", f.Source).Err(f.Err).Dur("took", f.Duration).Msg("source failed")
	}
	if out.SkippedRecords > 0 {
		log.Debug().Int("skipped", out.SkippedRecords).Msg("malformed records dropped")
	}
	log.Info().
		Str("status", string(out.Status)).
		Int("flights", len(out.Flights)).
		Int("failures", len(out.Failures)).
		Bool("fallback", out.UsedFallback).
		Dur("elapsed", out.Elapsed).
		Msg("search completed")

	span.SetAttributes(
		attribute.String("search.status", string(out.Status)),
		attribute.Int("search.flights", len(out.Flights)),
		attribute.Bool("search.fallback", out.UsedFallback),
	)
	if out.Status == domain.StatusFailed {
		span.SetStatus(codes.Error, "no flights")
	}

	return out, nil
}

// fanOut queries every scraper concurrently and returns their results in
// configured order once all of them have settled.
func (a *Aggregator) fanOut(ctx context.Context, params domain.SearchParams) []domain.SourceResult {
	ctx, span := tracer.Start(ctx, "aggregator.fallback",
		trace.WithAttributes(attribute.Int("sources", len(a.scrapers))))
	defer span.End()

	results := make([]domain.SourceResult, len(a.scrapers))

	var wg sync.WaitGroup
	for i, s := range a.scrapers {
		wg.Add(1)
		go func(i int, s domain.FlightSource) {
			defer wg.Done()
			results[i] = a.fetch(ctx, s, params)
		}(i, s)
	}
	wg.Wait()

	return results
}

// fetch runs one source under its own timeout. It returns no later than that
// timeout or the search deadline, whichever comes first; a source still
// running then is abandoned and reported as a Timeout. A source is not called
// at all once the deadline has passed. Panics become Transport failures.
func (a *Aggregator) fetch(ctx context.Context, src domain.FlightSource, params domain.SearchParams) domain.SourceResult {
	name := src.Name()
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return domain.SourceResult{Source: name, Err: domain.NewTimeoutError(name, err)}
	}

	ctx, span := tracer.Start(ctx, "source.Fetch", trace.WithAttributes(attribute.String("source", name)))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, a.timeoutFor(name))
	defer cancel()

	done := make(chan domain.SourceResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- domain.SourceResult{Err: domain.NewTransportError(name, fmt.Errorf("source panic: %v", r))}
			}
		}()

		batch, err := src.Fetch(ctx, params)
		if err != nil {
			done <- domain.SourceResult{Err: domain.AsFetchError(name, err)}
			return
		}
		done <- domain.SourceResult{Flights: batch.Flights, Skipped: batch.Skipped}
	}()

	var res domain.SourceResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res = domain.SourceResult{Err: domain.NewTimeoutError(name, ctx.Err())}
	}
	res.Source = name
	res.Duration = time.Since(start)

	span.SetAttributes(attribute.Int("flights", len(res.Flights)), attribute.Int("skipped", res.Skipped))
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, string(res.Err.Kind))
	}
	return res
}

func (a *Aggregator) timeoutFor(name string) time.Duration {
	if d, ok := a.cfg.SourceTimeouts[name]; ok {
		return d
	}
	return a.cfg.SourceTimeout
}

// outcome merges settled results. It runs on the calling goroutine only.
func (a *Aggregator) outcome(results []domain.SourceResult, usedFallback bool, elapsed time.Duration) *domain.AggregateOutcome {
	out := &domain.AggregateOutcome{
		SourcesQueried: make([]string, 0, len(results)),
		UsedFallback:   usedFallback,
	}

	for _, r := range results {
		out.SourcesQueried = append(out.SourcesQueried, r.Source)
		if !r.IsSuccess() {
			out.Failures = append(out.Failures, r)
			continue
		}
		out.SkippedRecords += r.Skipped
	}

	out.Flights = Merge(results, a.newID)
	out.Status = domain.DeriveStatus(len(out.Flights), len(out.Failures))
	out.Elapsed = elapsed
	return out
}
