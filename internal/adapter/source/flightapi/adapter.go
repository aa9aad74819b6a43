// Package flightapi is the adapter for the primary structured flight API.
package flightapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/normalize"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/retry"
)

// SourceName is the unique identifier of the primary source.
const SourceName = "flightapi"

// SearchPath is the endpoint flights are requested from.
const SearchPath = "/flights/search"

// DefaultTimeout applies when Config.Timeout is zero.
const DefaultTimeout = 3 * time.Second

// Config configures the primary adapter.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Retry     retry.Config
	UserAgent string

	// Currency applies to prices that come without one
	Currency string

	// Location interprets timezone-naive timestamps
	Location *time.Location

	Airlines *normalize.AirlineDirectory
}

// Adapter implements domain.FlightSource for the primary API.
type Adapter struct {
	client  *resty.Client
	timeout time.Duration
	retry   retry.Config
	cfg     Config
	log     *logger.Logger
}

var _ domain.FlightSource = (*Adapter)(nil)

// New creates the primary adapter.
func New(cfg Config, log *logger.Logger) *Adapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if log == nil {
		log = logger.Nop()
	}

	a := &Adapter{
		client: source.NewClient(source.ClientConfig{
			Name:      SourceName,
			BaseURL:   cfg.BaseURL,
			UserAgent: cfg.UserAgent,
		}),
		timeout: cfg.Timeout,
		cfg:     cfg,
		log:     log.WithSource(SourceName),
	}

	a.retry = cfg.Retry.
		WithRetryIf(source.Retryable).
		WithOnRetry(func(attempt int, err error, wait time.Duration) {
			a.log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("retrying primary source")
		})
	return a
}

// Name returns the source identifier.
func (a *Adapter) Name() string {
	return SourceName
}

// Fetch posts the search to the API and normalizes each returned element on
// its own. Elements that fail to decode or validate are skipped and counted.
func (a *Adapter) Fetch(ctx context.Context, params domain.SearchParams) (domain.SourceBatch, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	env, err := retry.DoWithResult(ctx, func() (envelope, error) {
		return a.call(ctx, params)
	}, a.retry)
	if err != nil {
		return domain.SourceBatch{}, domain.AsFetchError(SourceName, err)
	}

	defaults := normalize.Defaults{
		Source:   SourceName,
		Currency: a.cfg.Currency,
		Class:    params.Class,
		Location: a.cfg.Location,
		Airlines: a.cfg.Airlines,
	}

	batch := domain.SourceBatch{Flights: make([]domain.Flight, 0, len(env.Data))}
	for i, raw := range env.Data {
		f, err := decodeFlight(raw, defaults)
		if err != nil {
			batch.Skipped++
			a.log.Debug().Err(err).Int("index", i).Msg("skipping malformed flight")
			continue
		}
		batch.Flights = append(batch.Flights, f)
	}

	return batch, nil
}

func (a *Adapter) call(ctx context.Context, params domain.SearchParams) (envelope, error) {
	res, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(params).
		Post(SearchPath)
	return readEnvelope(res, err)
}

// readEnvelope classifies a response and unwraps its envelope. An envelope
// reporting a failure status is rejected even on HTTP 200.
func readEnvelope(res *resty.Response, err error) (envelope, error) {
	if fe := source.Classify(SourceName, res, err); fe != nil {
		return envelope{}, fe
	}

	var env envelope
	if err := json.Unmarshal(res.Body(), &env); err != nil {
		return envelope{}, retry.NewPermanent(
			domain.NewUpstreamRejectedError(SourceName, res.StatusCode(), fmt.Errorf("decode envelope: %w", err)),
		)
	}
	if env.Status >= http.StatusBadRequest {
		return envelope{}, domain.NewUpstreamRejectedError(SourceName, env.Status, fmt.Errorf("upstream reported: %s", env.Message))
	}
	return env, nil
}

func decodeFlight(raw json.RawMessage, defaults normalize.Defaults) (domain.Flight, error) {
	var w wireFlight
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.Flight{}, domain.NewParseError("data", "", err)
	}
	return w.listing().ToFlight(defaults)
}
