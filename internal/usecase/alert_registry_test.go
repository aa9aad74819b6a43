package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/store/memory"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
)

func validAlertRequest() AlertRequest {
	return AlertRequest{
		FlightID:     "EK651-1",
		TargetPrice:  350,
		CurrentPrice: 412.5,
		Currency:     "usd",
		Contact: domain.ContactInfo{
			Email:              "traveller@example.com",
			EmailNotifications: true,
		},
	}
}

func newTestRegistry(t *testing.T, store domain.AlertStore, notifier domain.Notifier) *AlertRegistry {
	t.Helper()
	r, err := NewAlertRegistry(store, notifier, testClock(), logger.Nop())
	require.NoError(t, err)
	r.newID = sequentialIDs()
	return r
}

func TestNewAlertRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := NewAlertRegistry(nil, domain.NewMockNotifier(ctrl), nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = NewAlertRegistry(memory.NewAlertStore(), nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	r, err := NewAlertRegistry(memory.NewAlertStore(), domain.NewMockNotifier(ctrl), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestAlertRegistry_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := memory.NewAlertStore()
	r := newTestRegistry(t, store, domain.NewMockNotifier(ctrl))

	alert, err := r.Register(context.Background(), validAlertRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.AlertHandle("gen-1"), alert.Handle)
	assert.Equal(t, domain.AlertActive, alert.State)
	assert.Equal(t, "USD", alert.Currency)
	assert.Empty(t, alert.Hints)
	assert.True(t, alert.Armed)
	assert.Equal(t, testToday, alert.CreatedAt)

	stored, err := r.Get(context.Background(), alert.Handle)
	require.NoError(t, err)
	assert.Equal(t, alert, stored)
}

func TestAlertRegistry_Register_PersistsDraftFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockAlertStore(ctrl)

	gomock.InOrder(
		store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a domain.Alert) error {
			assert.Equal(t, domain.AlertDraft, a.State)
			return nil
		}),
		store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a domain.Alert) error {
			assert.Equal(t, domain.AlertActive, a.State)
			return nil
		}),
	)

	r := newTestRegistry(t, store, domain.NewMockNotifier(ctrl))
	_, err := r.Register(context.Background(), validAlertRequest())
	require.NoError(t, err)
}

func TestAlertRegistry_Register_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockAlertStore(ctrl)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	r := newTestRegistry(t, store, domain.NewMockNotifier(ctrl))
	_, err := r.Register(context.Background(), validAlertRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
	assert.False(t, domain.IsInvalidRequest(err))
}

func TestAlertRegistry_Register_AboveCurrentPriceIsFlagged(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRegistry(t, memory.NewAlertStore(), domain.NewMockNotifier(ctrl))

	req := validAlertRequest()
	req.TargetPrice = 500

	alert, err := r.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertActive, alert.State)
	assert.True(t, alert.HasHint(domain.HintAboveCurrentPrice))
}

func TestAlertRegistry_Register_ActivationFailureDiscardsDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockAlertStore(ctrl)

	gomock.InOrder(
		store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
		store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down")),
		store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a domain.Alert) error {
			assert.Equal(t, domain.AlertWithdrawn, a.State)
			assert.Equal(t, domain.AlertHandle("gen-1"), a.Handle)
			return nil
		}),
	)

	r := newTestRegistry(t, store, domain.NewMockNotifier(ctrl))
	_, err := r.Register(context.Background(), validAlertRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activate alert")
}

func TestAlertRegistry_Evaluate_AboveCurrentPriceWaitsForRise(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := domain.NewMockNotifier(ctrl)
	store := memory.NewAlertStore()
	r := newTestRegistry(t, store, notifier)
	ctx := context.Background()

	req := validAlertRequest()
	req.TargetPrice = 500
	alert, err := r.Register(ctx, req)
	require.NoError(t, err)
	assert.False(t, alert.Armed)

	// Unchanged and lower prices leave the alert dormant.
	for _, price := range []float64{412.5, 380, 500} {
		triggered, err := r.Evaluate(ctx, "EK651-1", price)
		require.NoError(t, err)
		assert.Empty(t, triggered, "price %v", price)
	}

	got, err := r.Get(ctx, alert.Handle)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertActive, got.State)
	assert.False(t, got.Armed)

	// The price rises past the target and arms the alert.
	triggered, err := r.Evaluate(ctx, "EK651-1", 540)
	require.NoError(t, err)
	assert.Empty(t, triggered)

	got, err = r.Get(ctx, alert.Handle)
	require.NoError(t, err)
	assert.True(t, got.Armed)
	assert.Equal(t, 540.0, got.CurrentPrice)

	// Falling back to the target fires it.
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), 495.0).Return(nil)
	triggered, err = r.Evaluate(ctx, "EK651-1", 495)
	require.NoError(t, err)
	require.Len(t, triggered, 1)
	assert.Equal(t, domain.AlertTriggered, triggered[0].State)
}

func TestAlertRegistry_Register_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRegistry(t, domain.NewMockAlertStore(ctrl), domain.NewMockNotifier(ctrl))

	tests := []struct {
		name      string
		modify    func(*AlertRequest)
		wantField string
	}{
		{name: "missing flight", modify: func(r *AlertRequest) { r.FlightID = " " }, wantField: "flightId"},
		{name: "zero target", modify: func(r *AlertRequest) { r.TargetPrice = 0 }, wantField: "targetPrice"},
		{name: "negative target", modify: func(r *AlertRequest) { r.TargetPrice = -10 }, wantField: "targetPrice"},
		{name: "NaN target", modify: func(r *AlertRequest) { r.TargetPrice = math.NaN() }, wantField: "targetPrice"},
		{name: "infinite target", modify: func(r *AlertRequest) { r.TargetPrice = math.Inf(1) }, wantField: "targetPrice"},
		{name: "zero current price", modify: func(r *AlertRequest) { r.CurrentPrice = 0 }, wantField: "currentPrice"},
		{name: "bad currency", modify: func(r *AlertRequest) { r.Currency = "dollars" }, wantField: "currency"},
		{name: "unknown currency code", modify: func(r *AlertRequest) { r.Currency = "QQQ" }, wantField: "currency"},
		{name: "missing email", modify: func(r *AlertRequest) { r.Contact.Email = "" }, wantField: "contact.email"},
		{name: "malformed email", modify: func(r *AlertRequest) { r.Contact.Email = "traveller@" }, wantField: "contact.email"},
		{name: "display name email", modify: func(r *AlertRequest) { r.Contact.Email = "Traveller <t@example.com>" }, wantField: "contact.email"},
		{name: "sms without phone", modify: func(r *AlertRequest) { r.Contact.SMSNotifications = true }, wantField: "contact.phone"},
		{name: "malformed phone", modify: func(r *AlertRequest) { r.Contact.Phone = "call me" }, wantField: "contact.phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validAlertRequest()
			tt.modify(&req)

			_, err := r.Register(context.Background(), req)
			require.Error(t, err)
			assert.True(t, domain.IsInvalidRequest(err))

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestAlertRegistry_Register_AcceptsPhoneForSMS(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRegistry(t, memory.NewAlertStore(), domain.NewMockNotifier(ctrl))

	req := validAlertRequest()
	req.Contact.SMSNotifications = true
	req.Contact.Phone = "+94 77 123 4567"

	alert, err := r.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "+94 77 123 4567", alert.Contact.Phone)
}

func TestAlertRegistry_Withdraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRegistry(t, memory.NewAlertStore(), domain.NewMockNotifier(ctrl))
	ctx := context.Background()

	alert, err := r.Register(ctx, validAlertRequest())
	require.NoError(t, err)

	withdrawn, err := r.Withdraw(ctx, alert.Handle)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertWithdrawn, withdrawn.State)

	_, err = r.Withdraw(ctx, alert.Handle)
	assert.ErrorIs(t, err, domain.ErrInvalidAlertTransition)

	_, err = r.Withdraw(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrAlertNotFound)
}

func TestAlertRegistry_Evaluate(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := memory.NewAlertStore()
	notifier := domain.NewMockNotifier(ctrl)
	clock := testClock()

	r, err := NewAlertRegistry(store, notifier, clock, logger.Nop())
	require.NoError(t, err)
	r.newID = sequentialIDs()
	ctx := context.Background()

	low := validAlertRequest()
	low.TargetPrice = 300
	high := validAlertRequest()
	high.TargetPrice = 400
	otherFlight := validAlertRequest()
	otherFlight.FlightID = "UL225-1"

	lowAlert, err := r.Register(ctx, low)
	require.NoError(t, err)
	highAlert, err := r.Register(ctx, high)
	require.NoError(t, err)
	_, err = r.Register(ctx, otherFlight)
	require.NoError(t, err)

	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), 380.0).DoAndReturn(
		func(_ context.Context, a domain.Alert, _ float64) error {
			assert.Equal(t, highAlert.Handle, a.Handle)
			return nil
		},
	).Times(1)

	clock.Advance(time.Hour)
	triggered, err := r.Evaluate(ctx, "EK651-1", 380)
	require.NoError(t, err)
	require.Len(t, triggered, 1)
	assert.Equal(t, highAlert.Handle, triggered[0].Handle)
	assert.Equal(t, domain.AlertTriggered, triggered[0].State)
	assert.Equal(t, 380.0, triggered[0].CurrentPrice)
	assert.Equal(t, testToday.Add(time.Hour), triggered[0].UpdatedAt)

	stillActive, err := r.Get(ctx, lowAlert.Handle)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertActive, stillActive.State)

	// Triggered is terminal: the same price does not fire it again.
	again, err := r.Evaluate(ctx, "EK651-1", 380)
	require.NoError(t, err)
	assert.Empty(t, again)

	_, err = r.Withdraw(ctx, highAlert.Handle)
	assert.ErrorIs(t, err, domain.ErrInvalidAlertTransition)
}

func TestAlertRegistry_Evaluate_TargetEqualToPriceFires(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := domain.NewMockNotifier(ctrl)
	r := newTestRegistry(t, memory.NewAlertStore(), notifier)
	ctx := context.Background()

	_, err := r.Register(ctx, validAlertRequest())
	require.NoError(t, err)

	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), 350.0).Return(nil)
	triggered, err := r.Evaluate(ctx, "EK651-1", 350)
	require.NoError(t, err)
	assert.Len(t, triggered, 1)
}

func TestAlertRegistry_Evaluate_NotifierFailureKeepsAlertActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := domain.NewMockNotifier(ctrl)
	r := newTestRegistry(t, memory.NewAlertStore(), notifier)
	ctx := context.Background()

	alert, err := r.Register(ctx, validAlertRequest())
	require.NoError(t, err)

	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), 300.0).Return(errors.New("smtp timeout"))
	triggered, err := r.Evaluate(ctx, "EK651-1", 300)
	require.NoError(t, err)
	assert.Empty(t, triggered)

	got, err := r.Get(ctx, alert.Handle)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertActive, got.State)

	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), 300.0).Return(nil)
	triggered, err = r.Evaluate(ctx, "EK651-1", 300)
	require.NoError(t, err)
	assert.Len(t, triggered, 1)
}

func TestAlertRegistry_Evaluate_SkipsWithdrawn(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := domain.NewMockNotifier(ctrl)
	r := newTestRegistry(t, memory.NewAlertStore(), notifier)
	ctx := context.Background()

	alert, err := r.Register(ctx, validAlertRequest())
	require.NoError(t, err)
	_, err = r.Withdraw(ctx, alert.Handle)
	require.NoError(t, err)

	triggered, err := r.Evaluate(ctx, "EK651-1", 100)
	require.NoError(t, err)
	assert.Empty(t, triggered)
}

func TestAlertRegistry_Evaluate_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRegistry(t, domain.NewMockAlertStore(ctrl), domain.NewMockNotifier(ctrl))

	_, err := r.Evaluate(context.Background(), "", 100)
	assert.True(t, domain.IsInvalidRequest(err))

	_, err = r.Evaluate(context.Background(), "EK651-1", 0)
	assert.True(t, domain.IsInvalidRequest(err))

	_, err = r.Evaluate(context.Background(), "EK651-1", math.NaN())
	assert.True(t, domain.IsInvalidRequest(err))
}

func TestAlertRegistry_Register_ResolvesCurrentPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	insights := domain.NewMockFlightInsights(ctrl)
	insights.EXPECT().PriceHistory(gomock.Any(), "EK651-1").Return([]domain.PricePoint{
		{Date: "2026-10-16", Price: 450, LowestPrice: 430},
		{Date: "2026-10-17", Price: 420, LowestPrice: 420},
	}, nil)

	svc, err := NewInsightsService(insights, logger.Nop())
	require.NoError(t, err)

	r := newTestRegistry(t, memory.NewAlertStore(), domain.NewMockNotifier(ctrl))
	r.SetPriceReference(svc)

	req := validAlertRequest()
	req.CurrentPrice = 0

	alert, err := r.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 420.0, alert.CurrentPrice)
	assert.True(t, alert.Armed)
}

func TestAlertRegistry_Register_ReferenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	insights := domain.NewMockFlightInsights(ctrl)

	svc, err := NewInsightsService(insights, logger.Nop())
	require.NoError(t, err)

	r := newTestRegistry(t, domain.NewMockAlertStore(ctrl), domain.NewMockNotifier(ctrl))
	r.SetPriceReference(svc)

	t.Run("no history", func(t *testing.T) {
		insights.EXPECT().PriceHistory(gomock.Any(), "EK651-1").Return(nil, nil)

		req := validAlertRequest()
		req.CurrentPrice = 0
		_, err := r.Register(context.Background(), req)

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "currentPrice", ve.Field)
	})

	t.Run("upstream down", func(t *testing.T) {
		insights.EXPECT().PriceHistory(gomock.Any(), "EK651-1").
			Return(nil, domain.NewTransportError("flightapi", errors.New("connection refused")))

		req := validAlertRequest()
		req.CurrentPrice = 0
		_, err := r.Register(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrSourceTransport)
	})

	t.Run("invalid contact is rejected before the lookup", func(t *testing.T) {
		req := validAlertRequest()
		req.CurrentPrice = 0
		req.Contact.Email = "not-an-address"
		_, err := r.Register(context.Background(), req)

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "contact.email", ve.Field)
	})
}
