package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/careerforge/careerforge/pkg/Logger"
)

// Router routes operations across the registered engines: it picks a
// candidate order from preferences and cached health, executes adapters
// sequentially with fallback on failure, and keeps health plus usage
// statistics. One long-lived Router serves the whole process; tests
// construct a fresh one each.
//
// The mutex guards preferences, health, and stats only. Network calls
// always happen outside the lock so a slow backend never blocks status
// reads or other invocations' routing decisions.
type Router struct {
	mu       sync.Mutex
	defaults Preferences
	prefs    Preferences
	adapters map[ID]Adapter
	order    []ID
	health   map[ID]Health
	stats    Stats
	logger   *Logger.Logger
}

// New builds a router over the given adapters. The first registered
// adapter becomes the preference of last resort when the configured
// preferred engine is not registered.
func New(prefs Preferences, logger *Logger.Logger, adapters ...Adapter) (*Router, error) {
	if len(adapters) == 0 {
		return nil, fmt.Errorf("engine router needs at least one adapter")
	}

	r := &Router{
		adapters: make(map[ID]Adapter, len(adapters)),
		health:   make(map[ID]Health, len(adapters)),
		stats:    Stats{RequestsByEngine: make(map[ID]int64, len(adapters))},
		logger:   logger,
	}
	for _, a := range adapters {
		id := a.ID()
		if _, dup := r.adapters[id]; dup {
			return nil, fmt.Errorf("duplicate adapter for engine %s", id)
		}
		r.adapters[id] = a
		r.order = append(r.order, id)
		// Until the first attempt says otherwise, assume reachable.
		r.health[id] = Health{Available: true}
		r.stats.RequestsByEngine[id] = 0
	}

	if _, ok := r.adapters[prefs.Preferred]; !ok {
		if prefs.Preferred != "" {
			logger.Warnf("preferred engine %s not registered, using %s", prefs.Preferred, r.order[0])
		}
		prefs.Preferred = r.order[0]
	}
	r.prefs = prefs
	r.defaults = prefs

	logger.Infof("engine router initialized - preferred: %s, fallback: %v, engines: %v",
		prefs.Preferred, prefs.FallbackEnabled, r.order)
	return r, nil
}

// Engines returns the registered engine IDs in registration order.
func (r *Router) Engines() []ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// Invoke executes op on the best candidate engine, falling back in order
// on failure. On success statistics are attributed to the engine that
// produced the result; if every candidate fails the caller receives an
// *AllUnavailableError carrying each attempt's last error.
func (r *Router) Invoke(ctx context.Context, op Operation, payload Payload) (Result, error) {
	candidates := r.candidates()

	var attempts []*EngineError
	for i, id := range candidates {
		last := i == len(candidates)-1

		// Cached health is advisory: skip a known-bad engine while an
		// alternative remains, but never let a stale flag cause total
		// failure when this is the only option left.
		if !last && !r.currentHealth(id).Available {
			r.recordSkip(id, op)
			continue
		}

		adapter := r.adapters[id]
		result, err := adapter.Invoke(ctx, op, payload)
		if err == nil {
			r.recordSuccess(id)
			return result, nil
		}

		ee := asEngineError(id, op, err)
		r.recordFailure(id, op, ee, !last)
		attempts = append(attempts, ee)
	}

	return Result{}, &AllUnavailableError{Op: op, Attempts: attempts}
}

// ForceSelect makes engine the preferred candidate for subsequent calls.
// In-flight invocations are unaffected.
func (r *Router) ForceSelect(engine ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.adapters[engine]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
	r.prefs.Preferred = engine
	r.logger.Infof("engine selection forced: %s", engine)
	return nil
}

// ResetPreferences restores the preferences the router was constructed with.
func (r *Router) ResetPreferences() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs = r.defaults
	r.logger.Info("engine preferences reset to defaults")
}

// Status returns a read-only snapshot of preferences, per-engine health,
// and usage statistics. Safe to call concurrently with invocations.
func (r *Router) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	engines := make(map[ID]Health, len(r.health))
	for id, h := range r.health {
		engines[id] = h
	}
	requests := make(map[ID]int64, len(r.stats.RequestsByEngine))
	for id, n := range r.stats.RequestsByEngine {
		requests[id] = n
	}

	return Status{
		Preferences: r.prefs,
		Engines:     engines,
		Stats: Stats{
			RequestsByEngine: requests,
			FallbackCount:    r.stats.FallbackCount,
			LastEngineUsed:   r.stats.LastEngineUsed,
		},
	}
}

// CheckHealth actively probes every registered engine, refreshes the
// cached health entries, and returns the probe results. Probes run
// outside the lock.
func (r *Router) CheckHealth(ctx context.Context) map[ID]Health {
	ids := r.Engines()

	probed := make(map[ID]Health, len(ids))
	for _, id := range ids {
		probed[id] = r.adapters[id].HealthCheck(ctx)
	}

	r.mu.Lock()
	for id, h := range probed {
		r.health[id] = h
	}
	r.mu.Unlock()

	return probed
}

// candidates builds the ordered engine list for one invocation:
// preferred first, then the remaining engines in registration order, or
// just the preferred engine when fallback is disabled.
func (r *Router) candidates() []ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []ID{r.prefs.Preferred}
	if !r.prefs.FallbackEnabled {
		return out
	}
	for _, id := range r.order {
		if id != r.prefs.Preferred {
			out = append(out, id)
		}
	}
	return out
}

func (r *Router) currentHealth(id ID) Health {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.health[id]
}

func (r *Router) recordSuccess(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.health[id] = Health{Available: true, LastCheckedAt: time.Now()}
	r.stats.RequestsByEngine[id]++
	r.stats.LastEngineUsed = id
}

func (r *Router) recordFailure(id ID, op Operation, ee *EngineError, hasNext bool) {
	r.mu.Lock()
	r.health[id] = Health{
		Available:     false,
		LastCheckedAt: time.Now(),
		LastError:     ee.Err.Error(),
	}
	if hasNext {
		r.stats.FallbackCount++
	}
	r.mu.Unlock()

	if hasNext {
		r.logger.Warnf("engine %s failed (%s) during %s, falling back: %v", id, ee.Kind, op, ee.Err)
	} else {
		r.logger.Errorf("engine %s failed (%s) during %s, no candidates left: %v", id, ee.Kind, op, ee.Err)
	}
}

// recordSkip counts a health-based pre-filter skip as a fallback event,
// matching how invoke-failure fallbacks are counted.
func (r *Router) recordSkip(id ID, op Operation) {
	r.mu.Lock()
	r.stats.FallbackCount++
	r.mu.Unlock()
	r.logger.Warnf("skipping engine %s for %s: marked unavailable", id, op)
}

func asEngineError(id ID, op Operation, err error) *EngineError {
	if ee, ok := err.(*EngineError); ok {
		return ee
	}
	// Adapters should only return *EngineError; treat anything else as a
	// transport failure.
	return Unavailable(id, op, err)
}
