// Package apperr defines the error taxonomy shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers absent records and owner mismatches alike, so a
	// non-owner can never distinguish "exists" from "does not exist".
	ErrNotFound = errors.New("not found")

	// ErrConflict covers duplicate realm names, usernames and coupon codes.
	ErrConflict = errors.New("already exists")

	// ErrValidation covers malformed input, plan-ineligible coupons and
	// blocked disposable email domains.
	ErrValidation = errors.New("validation failed")
)

// EntitlementError reports a denied feature or exhausted limit. The request
// must not retry the mutation: a deny is final for that request.
type EntitlementError struct {
	// Name is the feature flag or limit that triggered the denial.
	Name string
	// Limit is the resolved numeric limit; zero for pure feature denials.
	Limit int
	// Feature marks whether the denial came from a boolean flag.
	Feature bool
}

func (e *EntitlementError) Error() string {
	if e.Feature {
		return fmt.Sprintf("feature '%s' requires plan upgrade", e.Name)
	}
	return fmt.Sprintf("limit reached: %s (%d)", e.Name, e.Limit)
}

// UpstreamError wraps an identity-provider failure that should surface to the
// caller as a retryable service error.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("identity provider %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Upstream wraps err as an UpstreamError unless it already carries taxonomy
// meaning (conflict, not found) that must pass through untouched.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}

// IsEntitlement reports whether err is an entitlement denial.
func IsEntitlement(err error) bool {
	var ee *EntitlementError
	return errors.As(err, &ee)
}

// IsUpstream reports whether err is a retryable upstream failure.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
