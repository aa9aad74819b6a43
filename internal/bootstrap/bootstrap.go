// Package bootstrap builds the application graph from configuration:
// sources, orchestrator, fare insights, alert store and registry.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/notifier"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/cardsite"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/flightapi"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/htmlscrape"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/normalize"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/tablesite"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/store/memory"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/store/redisstore"
	"github.com/flight-search/fallback-flight-aggregator/internal/config"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/ratelimit"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/retry"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/timeutil"
	"github.com/flight-search/fallback-flight-aggregator/internal/usecase"
)

// App is the wired application.
type App struct {
	Aggregator *usecase.Aggregator
	Alerts     *usecase.AlertRegistry
	Insights   *usecase.InsightsService

	closers []func() error
}

// Close releases external connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Option overrides a collaborator Build would otherwise create.
type Option func(*options)

type options struct {
	clock    timeutil.Clock
	store    domain.AlertStore
	notifier domain.Notifier
}

// WithClock sets the clock used for date validation and alert timestamps.
func WithClock(c timeutil.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithAlertStore replaces the store selected by ALERT_STORE.
func WithAlertStore(s domain.AlertStore) Option {
	return func(o *options) { o.store = s }
}

// WithNotifier replaces the log notifier.
func WithNotifier(n domain.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// Build validates cfg and wires every component. Invalid configuration
// yields an error wrapping domain.ErrInvalidConfig.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", domain.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if log == nil {
		log = logger.Nop()
	}

	o := options{clock: timeutil.NewRealClock()}
	for _, opt := range opts {
		opt(&o)
	}

	primary, scrapers, err := buildSources(cfg, log)
	if err != nil {
		return nil, err
	}

	insights, err := usecase.NewInsightsService(primary, log)
	if err != nil {
		return nil, err
	}

	agg, err := usecase.NewAggregator(primary, scrapers, usecase.Config{
		Deadline:       cfg.Search.Deadline,
		SourceTimeout:  cfg.Search.SourceTimeout,
		SourceTimeouts: cfg.SourceTimeouts(flightapi.SourceName, cardsite.SourceName, tablesite.SourceName),
	}, o.clock, log)
	if err != nil {
		return nil, err
	}

	app := &App{Aggregator: agg, Insights: insights}

	store := o.store
	if store == nil {
		store, err = buildStore(ctx, cfg, app)
		if err != nil {
			return nil, err
		}
	}

	n := o.notifier
	if n == nil {
		n = notifier.NewLogNotifier(log)
	}

	app.Alerts, err = usecase.NewAlertRegistry(store, n, o.clock, log)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Alerts.SetPriceReference(insights)

	primaryName, scraperNames := agg.Sources()
	log.Info().
		Str("primary", primaryName).
		Strs("scrapers", scraperNames).
		Str("alert_store", cfg.Alerts.Store).
		Dur("deadline", cfg.Search.Deadline).
		Msg("Application wired")

	return app, nil
}

// buildSources returns the primary adapter concretely since it also serves
// fare insights.
func buildSources(cfg *config.Config, log *logger.Logger) (*flightapi.Adapter, []domain.FlightSource, error) {
	loc, err := timeutil.GetLocation(cfg.Scrapers.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	airlines := normalize.NewAirlineDirectory(cfg.Scrapers.KnownAirlines)

	primary := flightapi.New(flightapi.Config{
		BaseURL:   cfg.Primary.BaseURL,
		Timeout:   timeoutOr(cfg.Primary.Timeout, cfg.Search.SourceTimeout),
		Retry:     retry.SourceConfig.WithMaxAttempts(cfg.Primary.MaxAttempts),
		UserAgent: cfg.Scrapers.UserAgent,
		Location:  loc,
		Airlines:  airlines,
	}, log)

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerSecond: cfg.Scrapers.RateLimit,
		Burst:             cfg.Scrapers.Burst,
	})

	scraperCfg := func(baseURL string, timeout time.Duration) htmlscrape.Config {
		return htmlscrape.Config{
			BaseURL:   baseURL,
			Timeout:   timeoutOr(timeout, cfg.Search.SourceTimeout),
			UserAgent: cfg.Scrapers.UserAgent,
			Location:  loc,
			Airlines:  airlines,
			Limiter:   limiter,
		}
	}

	var scrapers []domain.FlightSource
	if cfg.Scrapers.CardsiteBaseURL != "" {
		s, err := cardsite.New(scraperCfg(cfg.Scrapers.CardsiteBaseURL, cfg.Scrapers.CardsiteTimeout), log)
		if err != nil {
			return nil, nil, err
		}
		scrapers = append(scrapers, s)
	}
	if cfg.Scrapers.TablesiteBaseURL != "" {
		s, err := tablesite.New(scraperCfg(cfg.Scrapers.TablesiteBaseURL, cfg.Scrapers.TablesiteTimeout), log)
		if err != nil {
			return nil, nil, err
		}
		scrapers = append(scrapers, s)
	}

	return primary, scrapers, nil
}

func buildStore(ctx context.Context, cfg *config.Config, app *App) (domain.AlertStore, error) {
	switch cfg.Alerts.Store {
	case config.AlertStoreRedis:
		store, err := redisstore.New(ctx, redisstore.Config{
			Addr:      cfg.Alerts.RedisAddr,
			Password:  cfg.Alerts.RedisPassword,
			DB:        cfg.Alerts.RedisDB,
			KeyPrefix: cfg.Alerts.RedisPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect alert store: %w", err)
		}
		app.closers = append(app.closers, store.Close)
		return store, nil
	default:
		return memory.NewAlertStore(), nil
	}
}

func timeoutOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
