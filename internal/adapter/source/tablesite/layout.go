// Package tablesite scrapes a results page that lists fares as table rows
// and keeps most machine-readable values in data attributes.
package tablesite

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/htmlscrape"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/normalize"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
)

// SourceName is the default identifier of the table-layout source.
const SourceName = "tablesite"

// SearchPath is the results page.
const SearchPath = "/search"

// Layout implements htmlscrape.Layout for fare tables.
type Layout struct{}

var _ htmlscrape.Layout = Layout{}

// New creates the table-layout scraper. An empty cfg.Name becomes SourceName.
func New(cfg htmlscrape.Config, log *logger.Logger) (*htmlscrape.Scraper, error) {
	if cfg.Name == "" {
		cfg.Name = SourceName
	}
	return htmlscrape.New(cfg, Layout{}, log)
}

// Request asks for the results page with the search in the query string.
func (Layout) Request(params domain.SearchParams) htmlscrape.Request {
	return htmlscrape.Request{
		Method: "GET",
		Path:   SearchPath,
		Query: map[string]string{
			"from":   params.Origin,
			"to":     params.Destination,
			"date":   params.DepartureDate,
			"adults": strconv.Itoa(params.Passengers),
			"cabin":  strings.ToLower(string(params.Class)),
		},
	}
}

// Rows selects the fare rows of the results table.
func (Layout) Rows(doc *goquery.Document) *goquery.Selection {
	return doc.Find("table.results tbody tr.fare-row")
}

// Extract reads one fare row.
func (Layout) Extract(row *goquery.Selection) normalize.Listing {
	route := row.Find("td.route").First()

	return normalize.Listing{
		ID:                  htmlscrape.Attr(row, "", "data-ref"),
		Airline:             htmlscrape.Text(row, "td.carrier .name"),
		FlightNumber:        htmlscrape.Text(row, "td.carrier span.code"),
		OriginCity:          htmlscrape.Attr(route, "", "data-from-city"),
		OriginCode:          htmlscrape.Attr(route, "", "data-from"),
		OriginTerminal:      htmlscrape.Attr(route, "", "data-from-terminal"),
		DestinationCity:     htmlscrape.Attr(route, "", "data-to-city"),
		DestinationCode:     htmlscrape.Attr(route, "", "data-to"),
		DestinationTerminal: htmlscrape.Attr(route, "", "data-to-terminal"),
		Departure:           htmlscrape.Attr(row, "td.dep time", "datetime"),
		Arrival:             htmlscrape.Attr(row, "td.arr time", "datetime"),
		Duration:            htmlscrape.Text(row, "td.length"),
		Price:               htmlscrape.Text(row, "td.fare"),
		Currency:            strings.ToUpper(htmlscrape.Attr(row, "td.fare", "data-currency")),
		Stops:               htmlscrape.Text(row, "td.legs"),
		Seats:               htmlscrape.Text(row, "td.avail"),
		Class:               htmlscrape.Text(row, "td.cabin"),
	}
}
