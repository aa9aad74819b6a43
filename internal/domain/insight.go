package domain

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"
)

//go:generate mockgen -source=insight.go -destination=mock_insight.go -package=domain

// PricePoint is one day of a flight's fare history.
type PricePoint struct {
	// Date is the calendar day in DateLayout
	Date string `json:"date"`

	// Price is the fare observed that day
	Price float64 `json:"price"`

	// LowestPrice is the cheapest fare observed up to that day
	LowestPrice float64 `json:"lowestPrice"`
}

// Validate checks the point has a real date and finite non-negative prices.
func (p PricePoint) Validate() error {
	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return &ParseError{Field: "date", Value: p.Date, Err: err}
	}
	if !isNonNegative(p.Price) {
		return &ParseError{Field: "price", Value: fmt.Sprint(p.Price), Err: errOutOfRange}
	}
	if !isNonNegative(p.LowestPrice) {
		return &ParseError{Field: "lowestPrice", Value: fmt.Sprint(p.LowestPrice), Err: errOutOfRange}
	}
	return nil
}

// Deals summarizes the offers running for a destination.
type Deals struct {
	Count          int     `json:"count"`
	LowestDiscount float64 `json:"lowestDiscount"`
}

// PopularDestination is a featured destination with its starting fare.
type PopularDestination struct {
	ID       string `json:"id"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Code     string `json:"code"`
	Price    Price  `json:"price"`
	ImageURL string `json:"imageUrl"`
	Deals    Deals  `json:"deals"`
}

// Validate checks the destination carries a code, a city and a usable price.
func (d PopularDestination) Validate() error {
	switch {
	case !airportCodeRegex.MatchString(d.Code):
		return &ParseError{Field: "code", Value: d.Code, Err: errOutOfRange}
	case d.City == "":
		return &ParseError{Field: "city", Err: errMissingValue}
	case !isNonNegative(d.Price.Amount):
		return &ParseError{Field: "price.amount", Value: fmt.Sprint(d.Price.Amount), Err: errOutOfRange}
	case !currencyCodeRegex.MatchString(d.Price.Currency):
		return &ParseError{Field: "price.currency", Value: d.Price.Currency, Err: errOutOfRange}
	case d.Deals.Count < 0:
		return &ParseError{Field: "deals.count", Value: strconv.Itoa(d.Deals.Count), Err: errOutOfRange}
	}
	return nil
}

func isNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// FlightInsights is served by sources that know more than the current fares.
type FlightInsights interface {
	// PriceHistory returns the fare history of flightID.
	// An unknown flight is a *FetchError with status 404.
	PriceHistory(ctx context.Context, flightID string) ([]PricePoint, error)

	// PopularDestinations returns the featured destinations.
	PopularDestinations(ctx context.Context) ([]PopularDestination, error)
}
