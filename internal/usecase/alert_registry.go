package usecase

import (
	"context"
	"fmt"
	"math"
	"net/mail"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/timeutil"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)

// AlertRequest is the input of AlertRegistry.Register.
type AlertRequest struct {
	FlightID string

	// TargetPrice is the price at or below which the alert fires
	TargetPrice float64

	// CurrentPrice is the reference price the alert is registered against.
	// Zero asks the registry's PriceReference, when one is set.
	CurrentPrice float64

	// Currency defaults to USD
	Currency string

	Contact domain.ContactInfo
}

// AlertUseCase defines the price-alert operations exposed to callers.
type AlertUseCase interface {
	Register(ctx context.Context, req AlertRequest) (domain.Alert, error)
	Withdraw(ctx context.Context, handle domain.AlertHandle) (domain.Alert, error)
	Get(ctx context.Context, handle domain.AlertHandle) (domain.Alert, error)
	Evaluate(ctx context.Context, flightID string, currentPrice float64) ([]domain.Alert, error)
}

// AlertRegistry owns the alert state machine. Delivery is delegated to the
// injected Notifier.
type AlertRegistry struct {
	store    domain.AlertStore
	notifier domain.Notifier
	clock    timeutil.Clock
	log      *logger.Logger
	newID    func() string

	// reference fills in a missing CurrentPrice; optional
	reference PriceReference

	// mu serializes read-modify-write cycles on alerts
	mu sync.Mutex
}

var _ AlertUseCase = (*AlertRegistry)(nil)

// NewAlertRegistry creates an AlertRegistry. store and notifier are required.
func NewAlertRegistry(store domain.AlertStore, notifier domain.Notifier, clock timeutil.Clock, log *logger.Logger) (*AlertRegistry, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: alert store is required", domain.ErrInvalidConfig)
	}
	if notifier == nil {
		return nil, fmt.Errorf("%w: notifier is required", domain.ErrInvalidConfig)
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AlertRegistry{
		store:    store,
		notifier: notifier,
		clock:    clock,
		log:      log.WithComponent("alerts"),
		newID:    uuid.NewString,
	}, nil
}

// SetPriceReference makes Register look up the current price of requests
// that come without one.
func (r *AlertRegistry) SetPriceReference(ref PriceReference) {
	r.reference = ref
}

// Register validates req, stores a draft and activates it.
// A target above the current price is accepted and flagged with
// HintAboveCurrentPrice.
func (r *AlertRegistry) Register(ctx context.Context, req AlertRequest) (domain.Alert, error) {
	req.FlightID = strings.TrimSpace(req.FlightID)
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = "USD"
	}
	req.Contact.Email = strings.TrimSpace(req.Contact.Email)
	req.Contact.Phone = strings.TrimSpace(req.Contact.Phone)

	if err := validateAlertRequest(req); err != nil {
		return domain.Alert{}, err
	}
	if req.CurrentPrice == 0 && r.reference != nil {
		current, err := r.reference.LatestPrice(ctx, req.FlightID)
		if err != nil {
			return domain.Alert{}, err
		}
		req.CurrentPrice = current
	}
	if !isPositive(req.CurrentPrice) {
		return domain.Alert{}, domain.NewValidationError("currentPrice", "currentPrice must be a positive number")
	}

	now := r.clock.Now().UTC()
	alert := domain.Alert{
		Handle:       domain.AlertHandle(r.newID()),
		FlightID:     req.FlightID,
		TargetPrice:  req.TargetPrice,
		CurrentPrice: req.CurrentPrice,
		Currency:     req.Currency,
		Contact:      req.Contact,
		State:        domain.AlertDraft,
		Armed:        req.TargetPrice <= req.CurrentPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !alert.Armed {
		alert.Hints = append(alert.Hints, domain.HintAboveCurrentPrice)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Save(ctx, alert); err != nil {
		return domain.Alert{}, fmt.Errorf("save draft alert: %w", err)
	}

	active, err := alert.Transition(domain.AlertActive, now)
	if err != nil {
		return domain.Alert{}, err
	}
	if err := r.store.Save(ctx, active); err != nil {
		r.discardDraft(ctx, alert, now)
		return domain.Alert{}, fmt.Errorf("activate alert: %w", err)
	}

	r.log.Info().
		Str("alert", string(active.Handle)).
		Str("flight", active.FlightID).
		Float64("target", active.TargetPrice).
		Bool("above_current", active.HasHint(domain.HintAboveCurrentPrice)).
		Msg("alert registered")

	return active, nil
}

// discardDraft withdraws a draft whose activation could not be stored, so no
// draft outlives a failed Register.
func (r *AlertRegistry) discardDraft(ctx context.Context, draft domain.Alert, now time.Time) {
	withdrawn, err := draft.Transition(domain.AlertWithdrawn, now)
	if err == nil {
		err = r.store.Save(ctx, withdrawn)
	}
	if err != nil {
		r.log.Warn().Err(err).Str("alert", string(draft.Handle)).Msg("failed to discard draft alert")
	}
}

// Withdraw moves the alert to withdrawn. Terminal alerts are rejected with
// ErrInvalidAlertTransition; unknown handles with ErrAlertNotFound.
func (r *AlertRegistry) Withdraw(ctx context.Context, handle domain.AlertHandle) (domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert, err := r.store.Get(ctx, handle)
	if err != nil {
		return domain.Alert{}, err
	}

	withdrawn, err := alert.Transition(domain.AlertWithdrawn, r.clock.Now().UTC())
	if err != nil {
		return domain.Alert{}, err
	}
	if err := r.store.Save(ctx, withdrawn); err != nil {
		return domain.Alert{}, fmt.Errorf("withdraw alert: %w", err)
	}

	r.log.Info().Str("alert", string(handle)).Msg("alert withdrawn")
	return withdrawn, nil
}

// Get returns the alert or ErrAlertNotFound.
func (r *AlertRegistry) Get(ctx context.Context, handle domain.AlertHandle) (domain.Alert, error) {
	return r.store.Get(ctx, handle)
}

// Evaluate checks every active alert of flightID against currentPrice and
// triggers the armed ones whose target is at or above it. Alerts registered
// above the current price stay dormant until a price above their target is
// observed. An alert whose notification fails stays active and is retried on
// the next evaluation.
// It returns the alerts that were triggered.
func (r *AlertRegistry) Evaluate(ctx context.Context, flightID string, currentPrice float64) ([]domain.Alert, error) {
	if strings.TrimSpace(flightID) == "" {
		return nil, domain.NewValidationError("flightId", "flightId is required")
	}
	if !isPositive(currentPrice) {
		return nil, domain.NewValidationError("currentPrice", "currentPrice must be a positive number")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	alerts, err := r.store.ListByFlight(ctx, flightID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	triggered := make([]domain.Alert, 0)
	for _, alert := range alerts {
		wasArmed := alert.Armed
		if !alert.Observe(currentPrice) {
			if alert.Armed != wasArmed {
				alert.UpdatedAt = r.clock.Now().UTC()
				if err := r.store.Save(ctx, alert); err != nil {
					return triggered, fmt.Errorf("arm alert: %w", err)
				}
				r.log.Debug().Str("alert", string(alert.Handle)).Float64("price", currentPrice).Msg("alert armed")
			}
			continue
		}

		if err := r.notifier.Notify(ctx, alert, currentPrice); err != nil {
			r.log.Warn().Err(err).Str("alert", string(alert.Handle)).Msg("notification failed, alert stays active")
			continue
		}

		fired, err := alert.Transition(domain.AlertTriggered, r.clock.Now().UTC())
		if err != nil {
			return triggered, err
		}
		fired.CurrentPrice = currentPrice
		if err := r.store.Save(ctx, fired); err != nil {
			return triggered, fmt.Errorf("trigger alert: %w", err)
		}
		triggered = append(triggered, fired)
	}

	if len(triggered) > 0 {
		r.log.Info().Str("flight", flightID).Int("triggered", len(triggered)).Msg("alerts triggered")
	}
	return triggered, nil
}

func validateAlertRequest(req AlertRequest) error {
	if req.FlightID == "" {
		return domain.NewValidationError("flightId", "flightId is required")
	}
	if !isPositive(req.TargetPrice) {
		return domain.NewValidationError("targetPrice", "targetPrice must be a positive number")
	}
	if _, err := currency.ParseISO(req.Currency); err != nil || len(req.Currency) != 3 {
		return domain.NewValidationError("currency", "currency must be an ISO 4217 code")
	}
	if req.Contact.Email == "" {
		return domain.NewValidationError("contact.email", "email is required")
	}
	if addr, err := mail.ParseAddress(req.Contact.Email); err != nil || addr.Address != req.Contact.Email {
		return domain.NewValidationError("contact.email", "email must be a valid address")
	}
	if req.Contact.SMSNotifications && req.Contact.Phone == "" {
		return domain.NewValidationError("contact.phone", "phone is required for SMS notifications")
	}
	if req.Contact.Phone != "" && !phoneRegex.MatchString(req.Contact.Phone) {
		return domain.NewValidationError("contact.phone", "phone must be a valid number")
	}
	return nil
}

func isPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
