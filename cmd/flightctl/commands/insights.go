package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	flighthttp "github.com/flight-search/fallback-flight-aggregator/internal/adapter/http"
	"github.com/flight-search/fallback-flight-aggregator/internal/bootstrap"
	"github.com/flight-search/fallback-flight-aggregator/internal/config"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
	"github.com/flight-search/fallback-flight-aggregator/internal/usecase"
)

// insightsOpener opens the fare insights use case and returns its release function.
type insightsOpener func(ctx context.Context) (usecase.InsightsUseCase, func() error, error)

func defaultInsights(ctx context.Context) (usecase.InsightsUseCase, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logger.NewWithOutput(logger.Config{Level: cfg.Logging.Level, Format: "console"}, os.Stderr)
	app, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return app.Insights, app.Close, nil
}

func newPricesCmd(open insightsOpener) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "prices <flight-id>",
		Short:   "Shows the daily fare history of a flight from the primary source.",
		Example: "  flightctl prices EK651-20261019",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = release() }()

			history, err := uc.PriceHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return encodeJSON(cmd.OutOrStdout(), flighthttp.ToPriceHistoryDTO(history))
			}
			renderPriceHistory(cmd.OutOrStdout(), history)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API response shape as JSON")
	return cmd
}

func newDestinationsCmd(open insightsOpener) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "destinations",
		Short: "Lists the popular destinations featured by the primary source.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			uc, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = release() }()

			dests, err := uc.PopularDestinations(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				return encodeJSON(cmd.OutOrStdout(), flighthttp.ToPopularDestinationsDTO(dests))
			}
			renderDestinations(cmd.OutOrStdout(), dests)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many destinations (0 shows all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API response shape as JSON")
	return cmd
}

func renderPriceHistory(w io.Writer, h usecase.PriceHistory) {
	t := newTable(w)
	t.SetTitle(h.FlightID)
	t.AppendHeader(table.Row{"Date", "Price", "Lowest"})
	for _, p := range h.Points {
		t.AppendRow(table.Row{p.Date, fmt.Sprintf("%.2f", p.Price), fmt.Sprintf("%.2f", p.LowestPrice)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.AppendFooter(table.Row{"latest / lowest", fmt.Sprintf("%.2f", h.Latest), fmt.Sprintf("%.2f", h.Lowest)})
	t.Render()
}

func renderDestinations(w io.Writer, dests []domain.PopularDestination) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Code", "City", "Country", "From", "Deals"})
	for i, d := range dests {
		t.AppendRow(table.Row{
			i + 1,
			d.Code,
			d.City,
			d.Country,
			fmt.Sprintf("%.2f %s", d.Price.Amount, d.Price.Currency),
			d.Deals.Count,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
