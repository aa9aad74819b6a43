// Package redisstore is the durable AlertStore. Each alert is a JSON value
// under "<prefix>alert:<handle>"; "<prefix>flight:<id>" is a set of the
// handles registered for a flight.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

// DefaultKeyPrefix namespaces every key written by the store.
const DefaultKeyPrefix = "flightagg:"

// Config configures the Redis connection.
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// AlertStore implements domain.AlertStore on Redis.
type AlertStore struct {
	client *redis.Client
	prefix string
}

var _ domain.AlertStore = (*AlertStore)(nil)

// New connects to Redis and pings it.
func New(ctx context.Context, cfg Config) (*AlertStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}

	return NewWithClient(client, cfg.KeyPrefix), nil
}

// NewWithClient wraps an existing client. An empty prefix becomes DefaultKeyPrefix.
func NewWithClient(client *redis.Client, prefix string) *AlertStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &AlertStore{client: client, prefix: prefix}
}

// Close closes the underlying client.
func (s *AlertStore) Close() error {
	return s.client.Close()
}

// Save writes the alert and indexes it under its flight.
func (s *AlertStore) Save(ctx context.Context, alert domain.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}

	prev, err := s.Get(ctx, alert.Handle)
	if err != nil && !errors.Is(err, domain.ErrAlertNotFound) {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if prev.Handle != "" && prev.FlightID != alert.FlightID {
			pipe.SRem(ctx, s.flightKey(prev.FlightID), string(alert.Handle))
		}
		pipe.Set(ctx, s.alertKey(alert.Handle), data, 0)
		pipe.SAdd(ctx, s.flightKey(alert.FlightID), string(alert.Handle))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save alert %s: %w", alert.Handle, err)
	}
	return nil
}

// Get returns the alert or ErrAlertNotFound.
func (s *AlertStore) Get(ctx context.Context, handle domain.AlertHandle) (domain.Alert, error) {
	data, err := s.client.Get(ctx, s.alertKey(handle)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Alert{}, domain.ErrAlertNotFound
	}
	if err != nil {
		return domain.Alert{}, fmt.Errorf("get alert %s: %w", handle, err)
	}

	var alert domain.Alert
	if err := json.Unmarshal(data, &alert); err != nil {
		return domain.Alert{}, fmt.Errorf("decode alert %s: %w", handle, err)
	}
	return alert, nil
}

// ListByFlight returns the alerts of flightID ordered by creation time.
// Index entries whose value has disappeared are skipped.
func (s *AlertStore) ListByFlight(ctx context.Context, flightID string) ([]domain.Alert, error) {
	handles, err := s.client.SMembers(ctx, s.flightKey(flightID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list alerts of %s: %w", flightID, err)
	}

	alerts := make([]domain.Alert, 0, len(handles))
	for _, h := range handles {
		alert, err := s.Get(ctx, domain.AlertHandle(h))
		if errors.Is(err, domain.ErrAlertNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	sortByCreation(alerts)
	return alerts, nil
}

func (s *AlertStore) alertKey(handle domain.AlertHandle) string {
	return s.prefix + "alert:" + string(handle)
}

func (s *AlertStore) flightKey(flightID string) string {
	return s.prefix + "flight:" + flightID
}
