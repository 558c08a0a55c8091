package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEngine rejects administrative calls naming an engine the
// router does not hold. No state is mutated.
var ErrUnknownEngine = errors.New("unknown engine")

// FailureKind distinguishes why an adapter call failed. Both kinds
// trigger fallback; they are logged differently because a response-invalid
// usually means a prompt/schema mismatch rather than an outage.
type FailureKind string

const (
	// FailureUnavailable is a transport-level failure: connection refused,
	// DNS, timeout.
	FailureUnavailable FailureKind = "unavailable"
	// FailureResponseInvalid means the backend answered but the output
	// could not be parsed into the expected result shape.
	FailureResponseInvalid FailureKind = "response_invalid"
)

// EngineError is the only error type adapters return from Invoke.
type EngineError struct {
	Engine ID
	Op     Operation
	Kind   FailureKind
	Err    error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine %s %s during %s: %v", e.Engine, e.Kind, e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// Unavailable wraps a transport failure for the given engine.
func Unavailable(engine ID, op Operation, err error) *EngineError {
	return &EngineError{Engine: engine, Op: op, Kind: FailureUnavailable, Err: err}
}

// ResponseInvalid wraps a parse failure for the given engine.
func ResponseInvalid(engine ID, op Operation, err error) *EngineError {
	return &EngineError{Engine: engine, Op: op, Kind: FailureResponseInvalid, Err: err}
}

// AllUnavailableError is the terminal routing failure: every candidate
// engine in the selection order failed. It carries the last error from
// each attempted adapter so callers can log meaningfully.
type AllUnavailableError struct {
	Op       Operation
	Attempts []*EngineError
}

func (e *AllUnavailableError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Engine, a.Err))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("no engine available for %s", e.Op)
	}
	return fmt.Sprintf("all engines failed for %s (%s)", e.Op, strings.Join(parts, "; "))
}

// IsAllUnavailable reports whether err is a terminal routing failure.
func IsAllUnavailable(err error) bool {
	var target *AllUnavailableError
	return errors.As(err, &target)
}
