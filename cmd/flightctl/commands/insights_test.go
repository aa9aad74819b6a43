package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flighthttp "github.com/flight-search/fallback-flight-aggregator/internal/adapter/http"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/usecase"
)

type stubInsights struct {
	history  usecase.PriceHistory
	dests    []domain.PopularDestination
	err      error
	gotID    string
	gotLimit int
}

func (s *stubInsights) PriceHistory(_ context.Context, flightID string) (usecase.PriceHistory, error) {
	s.gotID = flightID
	return s.history, s.err
}

func (s *stubInsights) PopularDestinations(_ context.Context, limit int) ([]domain.PopularDestination, error) {
	s.gotLimit = limit
	return s.dests, s.err
}

func runInsights(t *testing.T, newCmd func(insightsOpener) *cobra.Command, stub *stubInsights, args ...string) (string, error) {
	t.Helper()
	cmd := newCmd(func(context.Context) (usecase.InsightsUseCase, func() error, error) {
		return stub, func() error { return nil }, nil
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func sampleHistory() usecase.PriceHistory {
	return usecase.PriceHistory{
		FlightID: "EK651-1",
		Points: []domain.PricePoint{
			{Date: "2026-10-16", Price: 450, LowestPrice: 430},
			{Date: "2026-10-17", Price: 420, LowestPrice: 415},
		},
		Latest: 420,
		Lowest: 415,
	}
}

func TestPrices_TableOutput(t *testing.T) {
	stub := &stubInsights{history: sampleHistory()}

	out, err := runInsights(t, newPricesCmd, stub, "EK651-1")
	require.NoError(t, err)

	assert.Equal(t, "EK651-1", stub.gotID)
	assert.Contains(t, out, "2026-10-16")
	assert.Contains(t, out, "450.00")
	assert.Contains(t, out, "415.00")
}

func TestPrices_JSONOutput(t *testing.T) {
	stub := &stubInsights{history: sampleHistory()}

	out, err := runInsights(t, newPricesCmd, stub, "EK651-1", "--json")
	require.NoError(t, err)

	var dto flighthttp.PriceHistoryDTO
	require.NoError(t, json.Unmarshal([]byte(out), &dto), out)
	assert.Equal(t, 420.0, dto.Latest)
	assert.Len(t, dto.Points, 2)
}

func TestPrices_RequiresFlightID(t *testing.T) {
	_, err := runInsights(t, newPricesCmd, &stubInsights{})
	assert.Error(t, err)
}

func TestPrices_UpstreamError(t *testing.T) {
	stub := &stubInsights{err: domain.NewTransportError("flightapi", errors.New("connection refused"))}

	_, err := runInsights(t, newPricesCmd, stub, "EK651-1")
	assert.ErrorIs(t, err, domain.ErrSourceTransport)
}

func TestDestinations_TableOutput(t *testing.T) {
	stub := &stubInsights{dests: []domain.PopularDestination{
		{ID: "dxb", City: "Dubai", Country: "United Arab Emirates", Code: "DXB", Price: domain.Price{Amount: 289, Currency: "USD"}, Deals: domain.Deals{Count: 4}},
	}}

	out, err := runInsights(t, newDestinationsCmd, stub, "--limit", "3")
	require.NoError(t, err)

	assert.Equal(t, 3, stub.gotLimit)
	assert.Contains(t, out, "DXB")
	assert.Contains(t, out, "289.00 USD")
}

func TestDestinations_NegativeLimit(t *testing.T) {
	_, err := runInsights(t, newDestinationsCmd, &stubInsights{}, "--limit", "-1")
	assert.ErrorContains(t, err, "--limit")
}
