package playback

import (
	"errors"
	"fmt"
)

// ErrContentNotFound is returned when navigation targets an id that is not
// part of the session. Callers treat it as a no-op signal, never a crash;
// content lists may change between render and user action.
var ErrContentNotFound = errors.New("content not found in session")

// InvalidStateError reports an operation invoked from a state that does not
// permit it, e.g. Play while still loading.
type InvalidStateError struct {
	Op    string
	State Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("playback: %s not valid in state %s", e.Op, e.State)
}

// LoadError wraps a media load failure. Retryable failures keep the
// controller in the errored state until an explicit Load retry; there is no
// automatic retry loop.
type LoadError struct {
	Source    string
	Retryable bool
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("playback: failed to load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
