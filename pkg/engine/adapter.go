package engine

import "context"

// Adapter translates the router's generic operation interface into one
// backend's request/response format. Implementations do not retry;
// retry and fallback belong to the router alone.
type Adapter interface {
	// ID reports which engine this adapter fronts.
	ID() ID

	// Invoke serializes the payload for op, performs one bounded network
	// call, and parses the response into the expected result shape.
	// Failures are *EngineError values: transport problems are
	// FailureUnavailable, unparseable output is FailureResponseInvalid
	// (never silently coerced into a default result).
	Invoke(ctx context.Context, op Operation, payload Payload) (Result, error)

	// HealthCheck performs a lightweight reachability probe (list-models
	// or equivalent) without spending a full operation call.
	HealthCheck(ctx context.Context) Health
}

// Invoker is the slice of the router that domain services consume.
// *Router satisfies it; tests substitute scripted fakes.
type Invoker interface {
	Invoke(ctx context.Context, op Operation, payload Payload) (Result, error)
}
