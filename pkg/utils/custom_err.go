package utils

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrAccountNotFound      = errors.New("user not found")
	ErrAccountBlocked       = errors.New("user account is blocked")
	ErrPlanNotFound         = errors.New("user plan not found")
	ErrItineraryNotFound    = errors.New("itinerary not found")
	ErrNotItineraryOwner    = errors.New("unauthorized access")
	ErrInsufficientCredits  = errors.New("insufficient ai credits")
	ErrAIServiceUnavailable = errors.New("ai service error")
	ErrInvalidModelOutput   = errors.New("ai returned invalid json")
	ErrInvalidResetToken    = errors.New("invalid or expired token")
	ErrInvalidPlanType      = errors.New("invalid plan type")
	ErrCheckoutLocked       = errors.New("checkout already in progress")
	ErrInvalidWebhookEvent  = errors.New("invalid webhook event")
	ErrDatabaseError        = errors.New("database error")
)

// ValidationError names the request fields that were missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please provide %s", strings.Join(e.Fields, ", "))
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ModelOutputError carries a bounded preview of the raw model text so that
// malformed-output incidents can be diagnosed without logging full responses.
type ModelOutputError struct {
	Preview string
}

const rawPreviewLimit = 300

func NewModelOutputError(raw string) *ModelOutputError {
	if len(raw) > rawPreviewLimit {
		cut := rawPreviewLimit
		// Back off to a rune boundary so the preview stays valid UTF-8.
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut] + "..."
	}
	return &ModelOutputError{Preview: raw}
}

func (e *ModelOutputError) Error() string {
	return ErrInvalidModelOutput.Error()
}

func (e *ModelOutputError) Unwrap() error {
	return ErrInvalidModelOutput
}
