package mock

import (
	"context"
	"sync"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

// Notification is one recorded Notify call.
type Notification struct {
	Alert        domain.Alert
	CurrentPrice float64
}

// Notifier records deliveries and can be told to fail.
type Notifier struct {
	mu    sync.Mutex
	err   error
	sent  []Notification
	calls int
}

var _ domain.Notifier = (*Notifier)(nil)

// NewNotifier creates a Notifier that accepts every delivery.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// WithError makes every delivery fail with err.
func (n *Notifier) WithError(err error) *Notifier {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
	return n
}

// Notify implements domain.Notifier.
func (n *Notifier) Notify(_ context.Context, alert domain.Alert, currentPrice float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls++
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, Notification{Alert: alert, CurrentPrice: currentPrice})
	return nil
}

// Sent returns the successful deliveries in call order.
func (n *Notifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.sent...)
}

// CallCount returns the number of Notify calls, failed ones included.
func (n *Notifier) CallCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}
