package models

import (
	"errors"
	"fmt"
)

// Error kinds of the prediction pipeline. Match with errors.Is.
var (
	// ErrClientInput covers malformed requests, bad history and unknown horizons.
	ErrClientInput = errors.New("client input error")
	// ErrForecaster covers failures raised by, or malformed output from, the forecaster.
	ErrForecaster = errors.New("forecaster error")
	// ErrInvariant marks an internal contract failure of the pipeline itself.
	ErrInvariant = errors.New("orchestration invariant violation")
)

// PipelineError carries a kind, a caller-safe reason and the underlying cause.
type PipelineError struct {
	Kind   error
	Reason string
	Err    error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *PipelineError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ClientError builds an ErrClientInput error.
func ClientError(reason string, cause error) *PipelineError {
	return &PipelineError{Kind: ErrClientInput, Reason: reason, Err: cause}
}

// ForecasterError builds an ErrForecaster error.
func ForecasterError(reason string, cause error) *PipelineError {
	return &PipelineError{Kind: ErrForecaster, Reason: reason, Err: cause}
}

// InvariantError builds an ErrInvariant error.
func InvariantError(format string, a ...interface{}) *PipelineError {
	return &PipelineError{Kind: ErrInvariant, Reason: fmt.Sprintf(format, a...)}
}

// ReasonOf returns the caller-safe reason of a pipeline error, or "" if err is
// not one.
func ReasonOf(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return ""
}
