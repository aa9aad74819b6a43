package domain

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors. Check them with errors.Is.
var (
	// ErrInvalidRequest is wrapped by every search parameter validation failure.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidConfig signals a wiring mistake (nil source, duplicate names, bad timeouts).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceTimeout is matched by timeout FetchErrors.
	ErrSourceTimeout = errors.New("source timed out")

	// ErrSourceTransport is matched by network/connection FetchErrors.
	ErrSourceTransport = errors.New("source transport failure")

	// ErrUpstreamRejected is matched by FetchErrors for non-success upstream responses.
	ErrUpstreamRejected = errors.New("source rejected request")

	// ErrAlertNotFound is returned when an alert handle is unknown.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrInvalidAlertTransition is returned when an alert cannot move to the requested state.
	ErrInvalidAlertTransition = errors.New("invalid alert state transition")

	errMissingValue = errors.New("missing value")
	errOutOfRange   = errors.New("value out of range")
)

// FetchErrorKind classifies why a source call failed.
type FetchErrorKind string

// Fetch failure kinds.
const (
	FetchTimeout          FetchErrorKind = "timeout"
	FetchTransport        FetchErrorKind = "transport"
	FetchUpstreamRejected FetchErrorKind = "upstream_rejected"
)

// FetchError is the per-source failure that flows to the orchestrator as data.
type FetchError struct {
	Source     string
	Kind       FetchErrorKind
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	msg := fmt.Sprintf("source %s: %s", e.Source, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrSourceTimeout:
		return e.Kind == FetchTimeout
	case ErrSourceTransport:
		return e.Kind == FetchTransport
	case ErrUpstreamRejected:
		return e.Kind == FetchUpstreamRejected
	}
	return false
}

// NewTimeoutError creates a timeout FetchError for the given source.
func NewTimeoutError(source string, err error) *FetchError {
	return &FetchError{Source: source, Kind: FetchTimeout, Err: err}
}

// NewTransportError creates a transport FetchError for the given source.
func NewTransportError(source string, err error) *FetchError {
	return &FetchError{Source: source, Kind: FetchTransport, Err: err}
}

// NewUpstreamRejectedError creates a FetchError for a non-success upstream status.
func NewUpstreamRejectedError(source string, statusCode int, err error) *FetchError {
	return &FetchError{Source: source, Kind: FetchUpstreamRejected, StatusCode: statusCode, Err: err}
}

// AsFetchError classifies any error returned by a source.
// FetchErrors pass through with the source name filled in; context deadlines
// become timeouts and everything else is a transport failure.
func AsFetchError(source string, err error) *FetchError {
	if err == nil {
		return nil
	}

	var fe *FetchError
	if errors.As(err, &fe) {
		if fe.Source == "" {
			cp := *fe
			cp.Source = source
			return &cp
		}
		return fe
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(source, err)
	}
	return NewTransportError(source, err)
}

// IsTimeout checks whether err is a source timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrSourceTimeout)
}

// IsInvalidRequest checks whether err is a search validation failure.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// ParseError describes a malformed field in a single source record.
// It never escapes an adapter: the record is dropped and counted.
type ParseError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("parse %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError for the given field.
func NewParseError(field, value string, err error) *ParseError {
	return &ParseError{Field: field, Value: value, Err: err}
}

// ValidationError is a field-level rejection of caller input.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap makes every ValidationError match ErrInvalidRequest.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
