package testutil

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

// PrimaryEnvelope renders flights the way the primary API answers a search.
func PrimaryEnvelope(flights []domain.Flight) []byte {
	data := make([]map[string]interface{}, 0, len(flights))
	for _, f := range flights {
		data = append(data, map[string]interface{}{
			"id":           f.ID,
			"airline":      f.Airline,
			"flightNumber": f.FlightNumber,
			"origin": map[string]string{
				"city":     f.Origin.City,
				"code":     f.Origin.Code,
				"terminal": f.Origin.Terminal,
			},
			"destination": map[string]string{
				"city":     f.Destination.City,
				"code":     f.Destination.Code,
				"terminal": f.Destination.Terminal,
			},
			"departureTime": f.DepartureTime.Format(time.RFC3339),
			"arrivalTime":   f.ArrivalTime.Format(time.RFC3339),
			"duration":      f.FormattedDuration(),
			"price": map[string]interface{}{
				"amount":   f.Price.Amount,
				"currency": f.Price.Currency,
			},
			"stops":           f.Stops,
			"available_seats": f.AvailableSeats,
			"class":           string(f.Class),
		})
	}

	return Envelope(data)
}

// Envelope wraps data in the primary API's response envelope.
func Envelope(data interface{}) []byte {
	body, err := json.Marshal(map[string]interface{}{
		"data":      data,
		"status":    200,
		"message":   "OK",
		"timestamp": "2026-10-18T09:00:00Z",
	})
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal envelope: %v", err))
	}
	return body
}

// CardsitePage renders flights as a card-layout results page.
func CardsitePage(flights []domain.Flight) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><body>\n<div class=\"results\">\n")
	for _, f := range flights {
		fmt.Fprintf(&b, "<div class=\"flight-item\" data-flight-id=\"%s\">\n", esc(f.ID))
		field(&b, "airline-name", f.Airline)
		field(&b, "flight-number", f.FlightNumber)
		field(&b, "origin-city", f.Origin.City)
		field(&b, "origin-code", f.Origin.Code)
		field(&b, "origin-terminal", f.Origin.Terminal)
		field(&b, "destination-city", f.Destination.City)
		field(&b, "destination-code", f.Destination.Code)
		field(&b, "destination-terminal", f.Destination.Terminal)
		field(&b, "departure-time", f.DepartureTime.Format(time.RFC3339))
		field(&b, "arrival-time", f.ArrivalTime.Format(time.RFC3339))
		field(&b, "duration", f.FormattedDuration())
		field(&b, "price", fmt.Sprintf("%s %.2f", f.Price.Currency, f.Price.Amount))
		field(&b, "stops", StopsText(f.Stops))
		field(&b, "seats", fmt.Sprintf("%d seats", f.AvailableSeats))
		field(&b, "cabin-class", string(f.Class))
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n</body></html>\n")
	return b.String()
}

// TablesitePage renders flights as a fare-table results page.
func TablesitePage(flights []domain.Flight) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><body>\n<table class=\"results\">\n<tbody>\n")
	for _, f := range flights {
		fmt.Fprintf(&b, "<tr class=\"fare-row\" data-ref=\"%s\">\n", esc(f.ID))
		fmt.Fprintf(&b, "<td class=\"carrier\"><span class=\"name\">%s</span> <span class=\"code\">%s</span></td>\n",
			esc(f.Airline), esc(f.FlightNumber))
		fmt.Fprintf(&b, "<td class=\"route\" data-from=\"%s\" data-from-city=\"%s\" data-from-terminal=\"%s\" data-to=\"%s\" data-to-city=\"%s\" data-to-terminal=\"%s\">%s - %s</td>\n",
			esc(f.Origin.Code), esc(f.Origin.City), esc(f.Origin.Terminal),
			esc(f.Destination.Code), esc(f.Destination.City), esc(f.Destination.Terminal),
			esc(f.Origin.Code), esc(f.Destination.Code))
		fmt.Fprintf(&b, "<td class=\"dep\"><time datetime=\"%s\">%s</time></td>\n",
			f.DepartureTime.Format(time.RFC3339), f.DepartureTime.Format("15:04"))
		fmt.Fprintf(&b, "<td class=\"arr\"><time datetime=\"%s\">%s</time></td>\n",
			f.ArrivalTime.Format(time.RFC3339), f.ArrivalTime.Format("15:04"))
		fmt.Fprintf(&b, "<td class=\"length\">%s</td>\n", esc(f.FormattedDuration()))
		fmt.Fprintf(&b, "<td class=\"legs\">%s</td>\n", StopsText(f.Stops))
		fmt.Fprintf(&b, "<td class=\"fare\" data-currency=\"%s\">%.2f</td>\n", esc(f.Price.Currency), f.Price.Amount)
		fmt.Fprintf(&b, "<td class=\"avail\">%d</td>\n", f.AvailableSeats)
		fmt.Fprintf(&b, "<td class=\"cabin\">%s</td>\n", esc(string(f.Class)))
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n</body></html>\n")
	return b.String()
}

// StopsText renders a stop count the way result pages print it.
func StopsText(stops int) string {
	switch stops {
	case 0:
		return "Non-stop"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

func field(b *strings.Builder, class, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "  <span class=\"%s\">%s</span>\n", class, esc(value))
}

func esc(s string) string {
	return html.EscapeString(s)
}
