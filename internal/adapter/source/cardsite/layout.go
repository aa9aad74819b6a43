// Package cardsite scrapes a results page that renders each flight as a card
// (".flight-item" blocks with one element per field).
package cardsite

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/htmlscrape"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/normalize"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
)

// SourceName is the default identifier of the card-layout source.
const SourceName = "cardsite"

// ScrapePath is the endpoint the search is posted to.
const ScrapePath = "/scrape/source1"

// Layout implements htmlscrape.Layout for card pages.
type Layout struct{}

var _ htmlscrape.Layout = Layout{}

// New creates the card-layout scraper. An empty cfg.Name becomes SourceName.
func New(cfg htmlscrape.Config, log *logger.Logger) (*htmlscrape.Scraper, error) {
	if cfg.Name == "" {
		cfg.Name = SourceName
	}
	return htmlscrape.New(cfg, Layout{}, log)
}

// Request posts the search params as JSON.
func (Layout) Request(params domain.SearchParams) htmlscrape.Request {
	return htmlscrape.Request{
		Method: "POST",
		Path:   ScrapePath,
		Body:   params,
	}
}

// Rows selects the flight cards.
func (Layout) Rows(doc *goquery.Document) *goquery.Selection {
	return doc.Find(".flight-item")
}

// Extract reads one card.
func (Layout) Extract(row *goquery.Selection) normalize.Listing {
	return normalize.Listing{
		ID:                  htmlscrape.Attr(row, "", "data-flight-id"),
		Airline:             htmlscrape.Text(row, ".airline-name"),
		FlightNumber:        htmlscrape.Text(row, ".flight-number"),
		OriginCity:          htmlscrape.Text(row, ".origin-city"),
		OriginCode:          htmlscrape.Text(row, ".origin-code"),
		OriginTerminal:      htmlscrape.Text(row, ".origin-terminal"),
		DestinationCity:     htmlscrape.Text(row, ".destination-city"),
		DestinationCode:     htmlscrape.Text(row, ".destination-code"),
		DestinationTerminal: htmlscrape.Text(row, ".destination-terminal"),
		Departure:           htmlscrape.Text(row, ".departure-time"),
		Arrival:             htmlscrape.Text(row, ".arrival-time"),
		Duration:            htmlscrape.Text(row, ".duration"),
		Price:               htmlscrape.Text(row, ".price"),
		Stops:               htmlscrape.Text(row, ".stops"),
		Seats:               htmlscrape.Text(row, ".seats"),
		Class:               htmlscrape.Text(row, ".cabin-class"),
	}
}
