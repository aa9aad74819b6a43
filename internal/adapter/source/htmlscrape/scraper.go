// Package htmlscrape is the engine shared by the HTML fallback sources.
// A Layout knows one site's request shape and markup; the Scraper does the
// transport, rate limiting, parsing and per-row normalization.
package htmlscrape

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/normalize"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/ratelimit"
)

// DefaultTimeout applies when Config.Timeout is zero.
const DefaultTimeout = 3 * time.Second

// Request describes the HTTP call a layout needs.
type Request struct {
	Method string
	Path   string
	Query  map[string]string

	// Body is sent as JSON when set
	Body any
}

// Layout adapts the engine to one site's markup.
type Layout interface {
	// Request builds the call for the given search.
	Request(params domain.SearchParams) Request

	// Rows selects one node per flight listing.
	Rows(doc *goquery.Document) *goquery.Selection

	// Extract reads the raw fields of a single row.
	Extract(row *goquery.Selection) normalize.Listing
}

// Config configures a Scraper.
type Config struct {
	Name      string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// Currency applies to prices that carry no code or symbol
	Currency string

	// Location interprets timezone-naive timestamps
	Location *time.Location

	Airlines *normalize.AirlineDirectory
	Limiter  *ratelimit.SourceLimiter
}

// Scraper implements domain.FlightSource on top of a Layout.
type Scraper struct {
	name    string
	client  *resty.Client
	timeout time.Duration
	layout  Layout
	cfg     Config
	log     *logger.Logger
}

var _ domain.FlightSource = (*Scraper)(nil)

// New creates a Scraper. Name, BaseURL and layout are required.
func New(cfg Config, layout Layout, log *logger.Logger) (*Scraper, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: scraper name is required", domain.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: %s base URL is required", domain.ErrInvalidConfig, cfg.Name)
	}
	if layout == nil {
		return nil, fmt.Errorf("%w: %s layout is required", domain.ErrInvalidConfig, cfg.Name)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Scraper{
		name: cfg.Name,
		client: source.NewClient(source.ClientConfig{
			Name:      cfg.Name,
			BaseURL:   cfg.BaseURL,
			UserAgent: cfg.UserAgent,
		}),
		timeout: cfg.Timeout,
		layout:  layout,
		cfg:     cfg,
		log:     log.WithSource(cfg.Name),
	}, nil
}

// Name returns the source identifier.
func (s *Scraper) Name() string {
	return s.name
}

// Fetch downloads the results page and converts each row. Rows that fail to
// normalize are skipped and counted. Scrapers are never retried.
func (s *Scraper) Fetch(ctx context.Context, params domain.SearchParams) (domain.SourceBatch, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.cfg.Limiter != nil {
		if err := s.cfg.Limiter.Wait(ctx, s.name); err != nil {
			return domain.SourceBatch{}, domain.NewTimeoutError(s.name, fmt.Errorf("rate limit wait: %w", err))
		}
	}

	doc, err := s.download(ctx, s.layout.Request(params))
	if err != nil {
		return domain.SourceBatch{}, err
	}

	defaults := normalize.Defaults{
		Source:   s.name,
		Currency: s.cfg.Currency,
		Class:    params.Class,
		Location: s.cfg.Location,
		Airlines: s.cfg.Airlines,
	}

	var batch domain.SourceBatch
	s.layout.Rows(doc).Each(func(i int, row *goquery.Selection) {
		f, err := s.layout.Extract(row).ToFlight(defaults)
		if err != nil {
			batch.Skipped++
			s.log.Debug().Err(err).Int("row", i).Msg("skipping malformed listing")
			return
		}
		batch.Flights = append(batch.Flights, f)
	})

	return batch, nil
}

func (s *Scraper) download(ctx context.Context, req Request) (*goquery.Document, error) {
	r := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		SetQueryParams(req.Query)
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	method := req.Method
	if method == "" {
		method = resty.MethodGet
	}

	res, err := r.Execute(method, req.Path)
	if fe := source.Classify(s.name, res, err); fe != nil {
		return nil, fe
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, domain.NewUpstreamRejectedError(s.name, res.StatusCode(), fmt.Errorf("parse html: %w", err))
	}
	return doc, nil
}

// Text returns the trimmed, whitespace-collapsed text of the first match of
// selector inside sel.
func Text(sel *goquery.Selection, selector string) string {
	return strings.Join(strings.Fields(sel.Find(selector).First().Text()), " ")
}

// Attr returns the trimmed attribute of the first match of selector inside
// sel. An empty selector reads the attribute from sel itself.
func Attr(sel *goquery.Selection, selector, attr string) string {
	target := sel
	if selector != "" {
		target = sel.Find(selector).First()
	}
	v, _ := target.Attr(attr)
	return strings.TrimSpace(v)
}
