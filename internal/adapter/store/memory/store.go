// Package memory is the process-local AlertStore. Alerts are lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

// AlertStore keeps alerts in a map guarded by a RWMutex.
type AlertStore struct {
	mu       sync.RWMutex
	alerts   map[domain.AlertHandle]domain.Alert
	byFlight map[string]map[domain.AlertHandle]struct{}
}

var _ domain.AlertStore = (*AlertStore)(nil)

// NewAlertStore creates an empty store.
func NewAlertStore() *AlertStore {
	return &AlertStore{
		alerts:   make(map[domain.AlertHandle]domain.Alert),
		byFlight: make(map[string]map[domain.AlertHandle]struct{}),
	}
}

// Save inserts or replaces the alert.
func (s *AlertStore) Save(_ context.Context, alert domain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.alerts[alert.Handle]; ok && prev.FlightID != alert.FlightID {
		delete(s.byFlight[prev.FlightID], alert.Handle)
	}

	alert.Hints = append([]domain.AlertHint(nil), alert.Hints...)
	s.alerts[alert.Handle] = alert

	set, ok := s.byFlight[alert.FlightID]
	if !ok {
		set = make(map[domain.AlertHandle]struct{})
		s.byFlight[alert.FlightID] = set
	}
	set[alert.Handle] = struct{}{}
	return nil
}

// Get returns the alert or ErrAlertNotFound.
func (s *AlertStore) Get(_ context.Context, handle domain.AlertHandle) (domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alert, ok := s.alerts[handle]
	if !ok {
		return domain.Alert{}, domain.ErrAlertNotFound
	}
	return alert, nil
}

// ListByFlight returns the alerts of flightID ordered by creation time.
func (s *AlertStore) ListByFlight(_ context.Context, flightID string) ([]domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := make([]domain.Alert, 0, len(s.byFlight[flightID]))
	for handle := range s.byFlight[flightID] {
		alerts = append(alerts, s.alerts[handle])
	}
	sortByCreation(alerts)
	return alerts, nil
}

func sortByCreation(alerts []domain.Alert) {
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].CreatedAt.Equal(alerts[j].CreatedAt) {
			return alerts[i].Handle < alerts[j].Handle
		}
		return alerts[i].CreatedAt.Before(alerts[j].CreatedAt)
	})
}
