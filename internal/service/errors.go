package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrAuthDenied          = errors.New("instagram authorization denied")
	ErrMissingCode         = errors.New("authorization code missing")
	ErrMissingCorrelation  = errors.New("user correlation token missing or invalid")
	ErrTokenExchangeFailed = errors.New("code exchange failed")
	ErrTokenUpgradeFailed  = errors.New("long-lived token exchange failed")
	ErrProfileFetchFailed  = errors.New("instagram profile fetch failed")
	ErrPersistenceFailed   = errors.New("failed to save linked account")
	ErrNotLinked           = errors.New("instagram not connected")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrUpgradeRequired     = errors.New("upgrade required")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("conflict")
)

// DeniedError is a policy refusal carrying the message shown to the caller.
// Upgrade marks refusals a higher plan would lift.
type DeniedError struct {
	Reason  string
	Upgrade bool
	Details map[string]any
}

func (e *DeniedError) Error() string { return e.Reason }

func (e *DeniedError) Unwrap() error {
	if e.Upgrade {
		return ErrUpgradeRequired
	}
	return ErrForbidden
}

// FailedError is an unexpected failure. Message is what the caller sees; Err
// is kept for the logs.
type FailedError struct {
	Message string
	Err     error
}

func (e *FailedError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *FailedError) Unwrap() error { return e.Err }

func failed(message string, err error) error {
	return &FailedError{Message: message, Err: err}
}

func upgradeRequired(reason string) error {
	return &DeniedError{Reason: reason, Upgrade: true}
}

// Callback outcome codes carried in the front-end redirect.
const (
	CodeConnected  = "connected"
	CodeAuthDenied = "instagram_auth_denied"
	CodeNoCode     = "no_code"
	CodeNoUserID   = "no_user_id"
	CodeSaveFailed = "save_failed"
	CodeAuthFailed = "instagram_auth_failed"
)

// CallbackCode maps a callback error to its redirect code.
func CallbackCode(err error) string {
	switch {
	case err == nil:
		return CodeConnected
	case errors.Is(err, ErrAuthDenied):
		return CodeAuthDenied
	case errors.Is(err, ErrMissingCode):
		return CodeNoCode
	case errors.Is(err, ErrMissingCorrelation):
		return CodeNoUserID
	case errors.Is(err, ErrPersistenceFailed):
		return CodeSaveFailed
	default:
		return CodeAuthFailed
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
