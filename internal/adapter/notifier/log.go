// Package notifier holds the Notifier used until a real email/SMS transport
// is wired in: it records each delivery as a structured log line.
package notifier

import (
	"context"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
)

// LogNotifier writes triggered alerts to the logger.
type LogNotifier struct {
	log *logger.Logger
}

var _ domain.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a LogNotifier. A nil logger discards everything.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log.WithComponent("notifier")}
}

// Notify logs the delivery on every channel the contact opted into.
func (n *LogNotifier) Notify(ctx context.Context, alert domain.Alert, currentPrice float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	channels := make([]string, 0, 2)
	if alert.Contact.EmailNotifications {
		channels = append(channels, "email")
	}
	if alert.Contact.SMSNotifications {
		channels = append(channels, "sms")
	}

	n.log.Info().
		Str("alert", string(alert.Handle)).
		Str("flight", alert.FlightID).
		Float64("target", alert.TargetPrice).
		Float64("price", currentPrice).
		Str("currency", alert.Currency).
		Strs("channels", channels).
		Msg("price alert delivered")
	return nil
}
