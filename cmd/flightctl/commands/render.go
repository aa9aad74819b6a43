package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	flighthttp "github.com/flight-search/fallback-flight-aggregator/internal/adapter/http"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

const clock = "2006-01-02 15:04"

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// renderTable prints the flights, a summary line and any source failures.
func renderTable(w io.Writer, outcome *domain.AggregateOutcome, flights []domain.Flight) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Flight", "Airline", "Route", "Departs (UTC)", "Arrives (UTC)", "Duration", "Stops", "Price", "Seats", "Class", "Source"})
	for i, f := range flights {
		t.AppendRow(table.Row{
			i + 1,
			f.FlightNumber,
			f.Airline,
			f.Origin.Code + " → " + f.Destination.Code,
			f.DepartureTime.UTC().Format(clock),
			f.ArrivalTime.UTC().Format(clock),
			f.FormattedDuration(),
			stopsLabel(f.Stops),
			fmt.Sprintf("%.2f %s", f.Price.Amount, f.Price.Currency),
			f.AvailableSeats,
			string(f.Class),
			f.Source,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 9, Align: text.AlignRight},
		{Number: 10, Align: text.AlignRight},
	})
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "", fmt.Sprintf("%d shown", len(flights))})
	t.Render()

	fmt.Fprintf(w, "status=%s sources=%s fallback=%t skipped=%d elapsed=%s\n",
		outcome.Status,
		strings.Join(outcome.SourcesQueried, ","),
		outcome.UsedFallback,
		outcome.SkippedRecords,
		outcome.Elapsed.Round(time.Millisecond),
	)

	if len(outcome.Failures) == 0 {
		return
	}

	ft := newTable(w)
	ft.AppendHeader(table.Row{"Source", "Kind", "Status", "Error", "Took"})
	for _, f := range outcome.Failures {
		row := table.Row{f.Source, "", "", "", f.Duration.Round(time.Millisecond)}
		if f.Err != nil {
			row[1] = string(f.Err.Kind)
			if f.Err.StatusCode != 0 {
				row[2] = f.Err.StatusCode
			}
			row[3] = f.Err.Error()
		}
		ft.AppendRow(row)
	}
	ft.Render()
}

// renderJSON prints the same document the HTTP search endpoint returns.
func renderJSON(w io.Writer, params domain.SearchParams, outcome *domain.AggregateOutcome, flights []domain.Flight) error {
	return encodeJSON(w, flighthttp.ToSearchResponseDTO(params, outcome, flights))
}

func stopsLabel(n int) string {
	switch n {
	case 0:
		return "direct"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", n)
	}
}
