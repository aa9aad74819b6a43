package commands

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flight-search/fallback-flight-aggregator/internal/bootstrap"
	"github.com/flight-search/fallback-flight-aggregator/internal/config"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
	"github.com/flight-search/fallback-flight-aggregator/internal/usecase"
)

var errAllSourcesFailed = errors.New("every queried source failed")

// searcher opens a search use case and returns its release function.
type searcher func(ctx context.Context) (usecase.FlightSearchUseCase, func() error, error)

// defaultSearcher wires the sources from the environment. Logs go to stderr
// so --json output stays machine-readable.
func defaultSearcher(ctx context.Context) (usecase.FlightSearchUseCase, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logger.NewWithOutput(logger.Config{Level: cfg.Logging.Level, Format: "console"}, os.Stderr)
	app, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return app.Aggregator, app.Close, nil
}

type searchFlags struct {
	from       string
	to         string
	date       string
	returnDate string
	passengers int
	class      string
	sortBy     string
	minPrice   float64
	maxPrice   float64
	airlines   []string
	stops      []int
	window     string
	asJSON     bool
}

func newSearchCmd(open searcher) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:     "search",
		Short:   "Searches the primary source, falling back to the scrapers when it fails or finds nothing.",
		Example: "  flightctl search --from CMB --to DXB --date 2026-10-19 --sort duration --max-price 500 --stops 0",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, opts, err := f.build(cmd)
			if err != nil {
				return err
			}

			uc, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = release() }()

			outcome, err := uc.Search(cmd.Context(), params)
			if err != nil {
				return err
			}
			params.SetDefaults()
			flights := usecase.Present(outcome.Flights, opts)

			out := cmd.OutOrStdout()
			if f.asJSON {
				if err := renderJSON(out, params, outcome, flights); err != nil {
					return err
				}
			} else {
				renderTable(out, outcome, flights)
			}

			if outcome.Status == domain.StatusFailed && len(outcome.Failures) > 0 {
				return errAllSourcesFailed
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.from, "from", "", "origin airport code (required)")
	fl.StringVar(&f.to, "to", "", "destination airport code (required)")
	fl.StringVar(&f.date, "date", "", "departure date, YYYY-MM-DD (required)")
	fl.StringVar(&f.returnDate, "return", "", "return date, YYYY-MM-DD")
	fl.IntVar(&f.passengers, "passengers", 1, "number of travellers (1-9)")
	fl.StringVar(&f.class, "class", "Economy", "travel class: Economy, Business or First")
	fl.StringVar(&f.sortBy, "sort", string(domain.SortByPrice), "sort key: price, duration, departure, arrival or best")
	fl.Float64Var(&f.minPrice, "min-price", 0, "lowest fare to show")
	fl.Float64Var(&f.maxPrice, "max-price", 0, "highest fare to show")
	fl.StringSliceVar(&f.airlines, "airline", nil, "only show these airlines (repeatable)")
	fl.IntSliceVar(&f.stops, "stops", nil, "only show these stop counts (repeatable)")
	fl.StringVar(&f.window, "depart-between", "", "departure time-of-day window in UTC, HH:MM-HH:MM")
	fl.BoolVar(&f.asJSON, "json", false, "print the API response shape as JSON")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

// build turns the flags into search params and presentation options.
func (f *searchFlags) build(cmd *cobra.Command) (domain.SearchParams, usecase.SearchOptions, error) {
	class, err := domain.ParseTravelClass(f.class)
	if err != nil {
		return domain.SearchParams{}, usecase.SearchOptions{}, err
	}

	params := domain.SearchParams{
		Origin:        strings.ToUpper(strings.TrimSpace(f.from)),
		Destination:   strings.ToUpper(strings.TrimSpace(f.to)),
		DepartureDate: f.date,
		ReturnDate:    f.returnDate,
		Passengers:    f.passengers,
		Class:         class,
	}

	key := domain.SortKey(strings.ToLower(f.sortBy))
	if !key.IsValid() {
		return params, usecase.SearchOptions{}, fmt.Errorf("unknown sort key %q", f.sortBy)
	}

	filters := domain.FilterState{
		SelectedAirlines: f.airlines,
		Stops:            f.stops,
	}

	minSet, maxSet := cmd.Flags().Changed("min-price"), cmd.Flags().Changed("max-price")
	if minSet || maxSet {
		r := &domain.PriceRange{Min: f.minPrice, Max: math.MaxFloat64}
		if maxSet {
			r.Max = f.maxPrice
		}
		filters.PriceRange = r
	}

	if f.window != "" {
		start, end, ok := strings.Cut(f.window, "-")
		if !ok {
			return params, usecase.SearchOptions{}, fmt.Errorf("--depart-between must look like 06:00-12:00")
		}
		filters.DepartureWindow = &domain.TimeWindow{Start: start, End: end}
	}

	if err := filters.Validate(); err != nil {
		return params, usecase.SearchOptions{}, err
	}

	return params, usecase.SearchOptions{Filters: filters, SortBy: key}, nil
}
