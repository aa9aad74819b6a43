package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=alert.go -destination=mock_alert.go -package=domain

// AlertState is the lifecycle state of a price alert.
type AlertState string

// Alert states. Triggered and Withdrawn are terminal.
const (
	AlertDraft     AlertState = "draft"
	AlertActive    AlertState = "active"
	AlertTriggered AlertState = "triggered"
	AlertWithdrawn AlertState = "withdrawn"
)

// alertTransitions lists the legal moves out of each state.
var alertTransitions = map[AlertState][]AlertState{
	AlertDraft:  {AlertActive, AlertWithdrawn},
	AlertActive: {AlertTriggered, AlertWithdrawn},
}

// IsTerminal reports whether no further transition is possible.
func (s AlertState) IsTerminal() bool {
	return s == AlertTriggered || s == AlertWithdrawn
}

// CanTransitionTo reports whether s may move to next.
func (s AlertState) CanTransitionTo(next AlertState) bool {
	for _, allowed := range alertTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AlertHint is advisory information attached to a registered alert.
type AlertHint string

// HintAboveCurrentPrice marks an alert whose target already exceeds the
// reference price; it only fires after the price rises and falls back again.
const HintAboveCurrentPrice AlertHint = "target_above_current_price"

// AlertHandle is the opaque identifier returned to callers.
type AlertHandle string

// ContactInfo describes where the external notifier should deliver.
type ContactInfo struct {
	Email              string `json:"email"`
	Phone              string `json:"phone,omitempty"`
	EmailNotifications bool   `json:"emailNotifications"`
	SMSNotifications   bool   `json:"smsNotifications"`
}

// Alert is a registered price-watch intent.
type Alert struct {
	Handle       AlertHandle `json:"id"`
	FlightID     string      `json:"flightId"`
	TargetPrice  float64     `json:"targetPrice"`
	CurrentPrice float64     `json:"currentPrice"`
	Currency     string      `json:"currency"`
	Contact      ContactInfo `json:"contact"`
	State        AlertState  `json:"state"`
	Hints        []AlertHint `json:"hints,omitempty"`

	// Armed is false while the target is above every price seen so far.
	// Only armed alerts trigger.
	Armed bool `json:"armed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Transition returns a copy of the alert moved to next.
func (a Alert) Transition(next AlertState, at time.Time) (Alert, error) {
	if !a.State.CanTransitionTo(next) {
		return a, fmt.Errorf("%w: %s -> %s", ErrInvalidAlertTransition, a.State, next)
	}
	a.State = next
	a.UpdatedAt = at
	return a, nil
}

// Observe records currentPrice on an active alert and reports whether the
// alert should trigger. A dormant alert arms once the price rises above its
// target and triggers on a later observation at or below it.
func (a *Alert) Observe(currentPrice float64) bool {
	if a.State != AlertActive {
		return false
	}
	if !a.Armed {
		if currentPrice > a.TargetPrice {
			a.Armed = true
			a.CurrentPrice = currentPrice
		}
		return false
	}
	return a.TargetPrice >= currentPrice
}

// HasHint reports whether h is attached to the alert.
func (a Alert) HasHint(h AlertHint) bool {
	for _, hint := range a.Hints {
		if hint == h {
			return true
		}
	}
	return false
}

// Notifier delivers triggered alerts. Email/SMS transport lives outside this module.
type Notifier interface {
	Notify(ctx context.Context, alert Alert, currentPrice float64) error
}

// AlertStore persists alerts.
type AlertStore interface {
	// Save inserts or replaces the alert.
	Save(ctx context.Context, alert Alert) error

	// Get returns the alert or ErrAlertNotFound.
	Get(ctx context.Context, handle AlertHandle) (Alert, error)

	// ListByFlight returns every alert registered for flightID.
	ListByFlight(ctx context.Context, flightID string) ([]Alert, error)
}
