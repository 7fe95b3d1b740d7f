package stateplane

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a coordinate pair outside the accepted range.
	ErrInvalidInput = errors.New("invalid input coordinate")
	// ErrProjection reports that the engine could not compute a transform.
	ErrProjection = errors.New("projection failure")
	// ErrUnsupportedFrame reports an unknown datum, zone, engine or check policy.
	ErrUnsupportedFrame = errors.New("unsupported reference frame")
)

// RangeError is returned when an input pair fails a converter's range check.
type RangeError struct {
	Op     string // "project" or "unproject"
	Reason string
	A, B   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s(%v, %v): %s: %s", e.Op, e.A, e.B, ErrInvalidInput, e.Reason)
}

// Unwrap makes RangeError match ErrInvalidInput.
func (e *RangeError) Unwrap() error {
	return ErrInvalidInput
}
