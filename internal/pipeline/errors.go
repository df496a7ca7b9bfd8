package pipeline

import "errors"

// ErrSessionNotFound surfaces to the caller per spec.md §4.C9's error
// handling policy: every other stage has a local fallback.
var ErrSessionNotFound = errors.New("pipeline: session not found")

// TurnError is the pipeline's fatal/retryable error envelope, mirroring
// the orchestrator's error taxonomy: a failed turn is either worth
// retrying (transient store/timeout) or not (bad input, missing session).
type TurnError struct {
	Err       error
	Retryable bool
}

func (e *TurnError) Error() string {
	return e.Err.Error()
}

func (e *TurnError) Unwrap() error {
	return e.Err
}

// NewRetryableError wraps a transient failure (e.g. a storage timeout).
func NewRetryableError(err error) *TurnError {
	return &TurnError{Err: err, Retryable: true}
}

// NewFatalError wraps a failure the caller cannot usefully retry.
func NewFatalError(err error) *TurnError {
	return &TurnError{Err: err, Retryable: false}
}
