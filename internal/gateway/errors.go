package gateway

import (
	"errors"
	"fmt"
)

// ErrGenerationFailed matches every failure surfaced by scans, recipe
// generation and meal planning.
var ErrGenerationFailed = errors.New("generation failed")

// ErrNoIngredients is returned when recipes are requested for an empty
// inventory. It also matches ErrGenerationFailed.
var ErrNoIngredients = errors.New("no ingredients to cook with")

// Failure reasons
const (
	ReasonTransport = "transport"
	ReasonEmpty     = "empty"
	ReasonParse     = "parse"
	ReasonInvalid   = "invalid"
	ReasonInput     = "input"
)

// GenerationError describes why a capability produced no usable result.
type GenerationError struct {
	Capability string
	Reason     string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s: %s", e.Capability, ErrGenerationFailed, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s: %v", e.Capability, ErrGenerationFailed, e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

func failure(capability, reason string, err error) *GenerationError {
	return &GenerationError{Capability: capability, Reason: reason, Err: err}
}
