package model

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel kinds for errors.Is on LookupError and DispatchError.
var (
	ErrTimeout           = errors.New("timeout")
	ErrProviderHTTP      = errors.New("provider http error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrUnavailable       = errors.New("provider unavailable")
	ErrAuthMisconfigured = errors.New("provider credentials missing")
)

// LookupError is a per-city weather failure.
type LookupError struct {
	City   string
	Kind   error
	Status int
	Body   string
	Err    error
}

func (e *LookupError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrProviderHTTP):
		return fmt.Sprintf("weather lookup for %q: %v (status %d)", e.City, e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("weather lookup for %q: %v: %v", e.City, e.Kind, e.Err)
	default:
		return fmt.Sprintf("weather lookup for %q: %v", e.City, e.Kind)
	}
}

func (e *LookupError) Is(target error) bool {
	return target == e.Kind
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// DispatchError is a per-city push failure, or a run-level one for ErrAuthMisconfigured.
type DispatchError struct {
	City   string
	Kind   error
	Status int
	Body   string
	Err    error
}

func (e *DispatchError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrProviderHTTP):
		return fmt.Sprintf("push dispatch for %q: %v (status %d)", e.City, e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("push dispatch for %q: %v: %v", e.City, e.Kind, e.Err)
	default:
		return fmt.Sprintf("push dispatch for %q: %v", e.City, e.Kind)
	}
}

func (e *DispatchError) Is(target error) bool {
	return target == e.Kind
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// IsTimeout reports deadline and network timeout errors.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Registry errors returned by the user detail gateways.
var (
	ErrUserDetailNotFound    = errors.New("user detail not found")
	ErrDuplicatedDeviceToken = errors.New("device token already registered")
	ErrDeviceTokenRequired   = errors.New("device token is required")
)
