package flightapi

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/source/normalize"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/retry"
)

// Insight endpoints of the flight API.
const (
	PriceHistoryPath        = "/flights/{id}/prices"
	PopularDestinationsPath = "/destinations/popular"
)

var _ domain.FlightInsights = (*Adapter)(nil)

type wirePricePoint struct {
	Date        flexString `json:"date"`
	Price       flexAmount `json:"price"`
	LowestPrice flexAmount `json:"lowestPrice"`
}

type wireDestination struct {
	ID       flexString `json:"id"`
	City     flexString `json:"city"`
	Country  flexString `json:"country"`
	Code     flexString `json:"code"`
	Price    wirePrice  `json:"price"`
	ImageURL flexString `json:"imageUrl"`
	Deals    struct {
		Count          flexString `json:"count"`
		LowestDiscount flexAmount `json:"lowestDiscount"`
	} `json:"deals"`
}

// PriceHistory fetches the fare history of flightID, oldest day first.
// Points that fail to decode or validate are skipped.
func (a *Adapter) PriceHistory(ctx context.Context, flightID string) ([]domain.PricePoint, error) {
	env, err := a.get(ctx, PriceHistoryPath, map[string]string{"id": flightID})
	if err != nil {
		return nil, err
	}

	points := make([]domain.PricePoint, 0, len(env.Data))
	for i, raw := range env.Data {
		p, err := a.decodePricePoint(raw)
		if err != nil {
			a.log.Debug().Err(err).Int("index", i).Str("flight", flightID).Msg("skipping malformed price point")
			continue
		}
		points = append(points, p)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points, nil
}

// PopularDestinations fetches the featured destinations in upstream order.
// Destinations that fail to decode or validate are skipped.
func (a *Adapter) PopularDestinations(ctx context.Context) ([]domain.PopularDestination, error) {
	env, err := a.get(ctx, PopularDestinationsPath, nil)
	if err != nil {
		return nil, err
	}

	dests := make([]domain.PopularDestination, 0, len(env.Data))
	for i, raw := range env.Data {
		d, err := a.decodeDestination(raw)
		if err != nil {
			a.log.Debug().Err(err).Int("index", i).Msg("skipping malformed destination")
			continue
		}
		dests = append(dests, d)
	}
	return dests, nil
}

// get issues a GET under the adapter timeout and retry policy.
func (a *Adapter) get(ctx context.Context, path string, pathParams map[string]string) (envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	env, err := retry.DoWithResult(ctx, func() (envelope, error) {
		res, err := a.client.R().
			SetContext(ctx).
			SetPathParams(pathParams).
			Get(path)
		return readEnvelope(res, err)
	}, a.retry)
	if err != nil {
		return envelope{}, domain.AsFetchError(SourceName, err)
	}
	return env, nil
}

func (a *Adapter) decodePricePoint(raw json.RawMessage) (domain.PricePoint, error) {
	var w wirePricePoint
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.PricePoint{}, domain.NewParseError("data", "", err)
	}

	day, err := parseDay(string(w.Date), a.cfg.Location)
	if err != nil {
		return domain.PricePoint{}, domain.NewParseError("date", string(w.Date), err)
	}
	price, err := normalize.ParsePrice(string(w.Price), a.cfg.Currency)
	if err != nil {
		return domain.PricePoint{}, domain.NewParseError("price", string(w.Price), err)
	}

	p := domain.PricePoint{Date: day, Price: price.Amount, LowestPrice: price.Amount}
	if w.LowestPrice != "" {
		lowest, err := normalize.ParsePrice(string(w.LowestPrice), a.cfg.Currency)
		if err != nil {
			return domain.PricePoint{}, domain.NewParseError("lowestPrice", string(w.LowestPrice), err)
		}
		p.LowestPrice = lowest.Amount
	}
	return p, p.Validate()
}

func (a *Adapter) decodeDestination(raw json.RawMessage) (domain.PopularDestination, error) {
	var w wireDestination
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.PopularDestination{}, domain.NewParseError("data", "", err)
	}

	currency := strings.ToUpper(strings.TrimSpace(string(w.Price.Currency)))
	if currency == "" {
		currency = a.cfg.Currency
	}
	price, err := normalize.ParsePrice(string(w.Price.Amount), currency)
	if err != nil {
		return domain.PopularDestination{}, domain.NewParseError("price", string(w.Price.Amount), err)
	}

	d := domain.PopularDestination{
		ID:       strings.TrimSpace(string(w.ID)),
		City:     strings.TrimSpace(string(w.City)),
		Country:  strings.TrimSpace(string(w.Country)),
		Code:     strings.ToUpper(strings.TrimSpace(string(w.Code))),
		Price:    price,
		ImageURL: strings.TrimSpace(string(w.ImageURL)),
	}
	if w.Deals.Count != "" {
		if d.Deals.Count, err = normalize.ParseCount(string(w.Deals.Count)); err != nil {
			return domain.PopularDestination{}, domain.NewParseError("deals.count", string(w.Deals.Count), err)
		}
	}
	if w.Deals.LowestDiscount != "" {
		discount, err := normalize.ParsePrice(string(w.Deals.LowestDiscount), currency)
		if err != nil {
			return domain.PopularDestination{}, domain.NewParseError("deals.lowestDiscount", string(w.Deals.LowestDiscount), err)
		}
		d.Deals.LowestDiscount = discount.Amount
	}
	return d, d.Validate()
}

// parseDay accepts a calendar date or a full timestamp and returns the date
// in domain.DateLayout.
func parseDay(raw string, loc *time.Location) (string, error) {
	s := strings.TrimSpace(raw)
	if d, err := time.Parse(domain.DateLayout, s); err == nil {
		return d.Format(domain.DateLayout), nil
	}
	t, err := normalize.ParseTimestamp(s, loc)
	if err != nil {
		return "", err
	}
	return t.Format(domain.DateLayout), nil
}
