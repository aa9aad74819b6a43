package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
)

func TestLogNotifier_Notify(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "info", Format: "json"}, &buf)

	n := NewLogNotifier(log)
	err := n.Notify(context.Background(), domain.Alert{
		Handle:      "a1",
		FlightID:    "EK651",
		TargetPrice: 400,
		Currency:    "USD",
		Contact:     domain.ContactInfo{Email: "a@example.com", EmailNotifications: true, SMSNotifications: true, Phone: "+94771234567"},
	}, 389)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "price alert delivered", entry["message"])
	assert.Equal(t, "a1", entry["alert"])
	assert.Equal(t, 389.0, entry["price"])
	assert.Equal(t, []any{"email", "sms"}, entry["channels"])
	assert.Equal(t, "notifier", entry["component"])
}

func TestLogNotifier_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLogNotifier(nil).Notify(ctx, domain.Alert{Handle: "a1"}, 100)
	assert.ErrorIs(t, err, context.Canceled)
}
