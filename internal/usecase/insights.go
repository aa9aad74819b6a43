package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
)

var flightIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _:.\-]{0,63}$`)

// PriceHistory is the fare history of one flight with its headline figures.
type PriceHistory struct {
	FlightID string
	Points   []domain.PricePoint

	// Latest is the price of the most recent point; zero when Points is empty
	Latest float64

	// Lowest is the smallest LowestPrice across Points; zero when Points is empty
	Lowest float64
}

// InsightsUseCase defines the read-only fare insight operations.
type InsightsUseCase interface {
	PriceHistory(ctx context.Context, flightID string) (PriceHistory, error)
	PopularDestinations(ctx context.Context, limit int) ([]domain.PopularDestination, error)
}

// PriceReference resolves the reference price an alert is registered against.
type PriceReference interface {
	LatestPrice(ctx context.Context, flightID string) (float64, error)
}

// InsightsService serves price history and popular destinations from the
// primary source. Upstream failures are returned as *domain.FetchError.
type InsightsService struct {
	source domain.FlightInsights
	log    *logger.Logger
}

var (
	_ InsightsUseCase = (*InsightsService)(nil)
	_ PriceReference  = (*InsightsService)(nil)
)

// NewInsightsService creates an InsightsService. source is required.
func NewInsightsService(source domain.FlightInsights, log *logger.Logger) (*InsightsService, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: insights source is required", domain.ErrInvalidConfig)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InsightsService{source: source, log: log.WithComponent("insights")}, nil
}

// PriceHistory returns the fare history of flightID, oldest day first.
func (s *InsightsService) PriceHistory(ctx context.Context, flightID string) (PriceHistory, error) {
	flightID = strings.TrimSpace(flightID)
	if !flightIDRegex.MatchString(flightID) {
		return PriceHistory{}, domain.NewValidationError("flightId", "flightId must be 1-64 letters, digits or separators")
	}

	points, err := s.source.PriceHistory(ctx, flightID)
	if err != nil {
		s.log.Warn().Err(err).Str("flight", flightID).Msg("price history unavailable")
		return PriceHistory{}, err
	}

	h := PriceHistory{FlightID: flightID, Points: points}
	for i, p := range points {
		if i == 0 || p.LowestPrice < h.Lowest {
			h.Lowest = p.LowestPrice
		}
	}
	if len(points) > 0 {
		h.Latest = points[len(points)-1].Price
	}
	return h, nil
}

// PopularDestinations returns at most limit featured destinations.
// A limit of zero or less returns all of them.
func (s *InsightsService) PopularDestinations(ctx context.Context, limit int) ([]domain.PopularDestination, error) {
	dests, err := s.source.PopularDestinations(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("popular destinations unavailable")
		return nil, err
	}
	if limit > 0 && len(dests) > limit {
		dests = dests[:limit]
	}
	return dests, nil
}

// LatestPrice returns the most recent fare of flightID. A flight without
// history is a validation error on currentPrice, since no reference exists.
func (s *InsightsService) LatestPrice(ctx context.Context, flightID string) (float64, error) {
	h, err := s.PriceHistory(ctx, flightID)
	if err != nil {
		return 0, err
	}
	if len(h.Points) == 0 || h.Latest <= 0 {
		return 0, domain.NewValidationError("currentPrice", "currentPrice is required: no price history for this flight")
	}
	return h.Latest, nil
}
