package qrcode

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required input is empty after trimming.
	ErrMissingField = errors.New("missing required field")

	// ErrGeolocationUnavailable is returned when no location capability exists or it was denied.
	ErrGeolocationUnavailable = errors.New("geolocation unavailable")

	// ErrEncoding wraps any failure of the matrix encoder.
	ErrEncoding = errors.New("encoding failed")

	// ErrNoResult is returned by exports requested before a successful generation.
	ErrNoResult = errors.New("no result available")

	// ErrTriggerDisabled is returned when generation is triggered during the cooldown window.
	ErrTriggerDisabled = errors.New("generate trigger is disabled")

	ErrUnknownStyle   = errors.New("unknown style")
	ErrUnknownFrame   = errors.New("unknown frame")
	ErrUnknownLevel   = errors.New("unknown recovery level")
	ErrUnknownFormat  = errors.New("unknown export format")
	ErrUnknownEncoder = errors.New("unknown encoder")
)

// FieldError names the record field that failed validation.
type FieldError struct {
	Kind  Kind
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Kind, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}

func missing(kind Kind, field string) error {
	return &FieldError{Kind: kind, Field: field}
}
