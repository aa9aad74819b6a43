package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

func newAlert(handle, flightID string, created time.Time) domain.Alert {
	return domain.Alert{
		Handle:      domain.AlertHandle(handle),
		FlightID:    flightID,
		TargetPrice: 300,
		Currency:    "USD",
		Contact:     domain.ContactInfo{Email: "traveller@example.com", EmailNotifications: true},
		State:       domain.AlertActive,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestAlertStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewAlertStore()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	a := newAlert("a1", "EK651", base)
	require.NoError(t, store.Save(ctx, a))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	a.State = domain.AlertWithdrawn
	require.NoError(t, store.Save(ctx, a))
	got, err = store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.AlertWithdrawn, got.State)
}

func TestAlertStore_GetUnknown(t *testing.T) {
	_, err := NewAlertStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrAlertNotFound)
}

func TestAlertStore_ListByFlight(t *testing.T) {
	ctx := context.Background()
	store := NewAlertStore()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, newAlert("late", "EK651", base.Add(time.Hour))))
	require.NoError(t, store.Save(ctx, newAlert("early", "EK651", base)))
	require.NoError(t, store.Save(ctx, newAlert("other", "UL225", base)))

	alerts, err := store.ListByFlight(ctx, "EK651")
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, domain.AlertHandle("early"), alerts[0].Handle)
	assert.Equal(t, domain.AlertHandle("late"), alerts[1].Handle)

	none, err := store.ListByFlight(ctx, "QR669")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAlertStore_MovesIndexWhenFlightChanges(t *testing.T) {
	ctx := context.Background()
	store := NewAlertStore()
	a := newAlert("a1", "EK651", time.Now())
	require.NoError(t, store.Save(ctx, a))

	a.FlightID = "EK653"
	require.NoError(t, store.Save(ctx, a))

	old, _ := store.ListByFlight(ctx, "EK651")
	assert.Empty(t, old)
	moved, _ := store.ListByFlight(ctx, "EK653")
	assert.Len(t, moved, 1)
}

func TestAlertStore_HintsAreCopied(t *testing.T) {
	ctx := context.Background()
	store := NewAlertStore()
	a := newAlert("a1", "EK651", time.Now())
	a.Hints = []domain.AlertHint{domain.HintAboveCurrentPrice}
	require.NoError(t, store.Save(ctx, a))

	a.Hints[0] = "changed"
	got, _ := store.Get(ctx, "a1")
	assert.Equal(t, domain.HintAboveCurrentPrice, got.Hints[0])
}

func TestAlertStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewAlertStore()
	base := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := string(rune('a' + i%26))
			_ = store.Save(ctx, newAlert(h+time.Duration(i).String(), "EK651", base))
			_, _ = store.ListByFlight(ctx, "EK651")
		}(i)
	}
	wg.Wait()

	alerts, err := store.ListByFlight(ctx, "EK651")
	require.NoError(t, err)
	assert.Len(t, alerts, 50)
}
