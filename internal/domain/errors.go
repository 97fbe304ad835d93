package domain

import (
	"errors"
	"fmt"
)

// ErrImageUnavailable is the single failure kind of a flip cycle.
var ErrImageUnavailable = errors.New("image unavailable")

// Reason tells whether an image could not be fetched or could not be shown.
type Reason string

const (
	ReasonFetch  Reason = "fetch"
	ReasonDecode Reason = "decode"
)

// ImageUnavailableError carries the pet category and the underlying cause.
// It matches ErrImageUnavailable with errors.Is.
type ImageUnavailableError struct {
	Category Category
	Reason   Reason
	Err      error
}

// NewImageUnavailable wraps cause as a fetch or decode failure for c.
func NewImageUnavailable(c Category, r Reason, cause error) *ImageUnavailableError {
	return &ImageUnavailableError{Category: c, Reason: r, Err: cause}
}

// Message is the text shown to the user.
func (e *ImageUnavailableError) Message() string {
	verb := "fetch"
	if e.Reason == ReasonDecode {
		verb = "load"
	}
	return fmt.Sprintf("Failed to %s %s image. Please try again.", verb, e.Category)
}

func (e *ImageUnavailableError) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return fmt.Sprintf("%s: %v", e.Message(), e.Err)
}

func (e *ImageUnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrImageUnavailable}
	}
	return []error{ErrImageUnavailable, e.Err}
}

// MsgFlipInterrupted is shown when a cycle stops before its image lookup.
const MsgFlipInterrupted = "Flip interrupted. Please try again."

var (
	ErrFlipInProgress = errors.New("a flip is already in progress")
	ErrStaleCycle     = errors.New("cycle is not the settled flip")
)
