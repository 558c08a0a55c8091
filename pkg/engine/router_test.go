package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/careerforge/careerforge/pkg/Logger"
)

// fakeAdapter returns scripted outcomes in order, repeating the last one
// when the script runs out.
type fakeAdapter struct {
	id     ID
	script []error
	health Health

	mu    sync.Mutex
	calls int
}

func (f *fakeAdapter) ID() ID { return f.id }

func (f *fakeAdapter) Invoke(ctx context.Context, op Operation, payload Payload) (Result, error) {
	f.mu.Lock()
	idx := f.calls
	f.calls++
	f.mu.Unlock()
	if idx >= len(f.script) {
		idx = len(f.script) - 1
	}
	if len(f.script) == 0 || f.script[idx] == nil {
		return Result{Question: &Question{ID: "q1", Text: string(f.id)}}, nil
	}
	return Result{}, f.script[idx]
}

func (f *fakeAdapter) HealthCheck(ctx context.Context) Health { return f.health }

func newTestRouter(t *testing.T, prefs Preferences, adapters ...Adapter) *Router {
	t.Helper()
	r, err := New(prefs, Logger.NewNop(), adapters...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestNewRejectsEmptyAndDuplicateAdapters(t *testing.T) {
	if _, err := New(Preferences{}, Logger.NewNop()); err == nil {
		t.Fatal("expected error for zero adapters")
	}
	_, err := New(Preferences{}, Logger.NewNop(),
		&fakeAdapter{id: Local}, &fakeAdapter{id: Local})
	if err == nil {
		t.Fatal("expected error for duplicate adapters")
	}
}

func TestInvokePreferredSucceeds(t *testing.T) {
	local := &fakeAdapter{id: Local}
	cloud := &fakeAdapter{id: Cloud}
	r := newTestRouter(t, Preferences{Preferred: Local, FallbackEnabled: true}, local, cloud)

	result, err := r.Invoke(context.Background(), OpFirstQuestion, Payload{})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if result.Question.Text != string(Local) {
		t.Fatalf("wrong engine answered: %q", result.Question.Text)
	}
	if cloud.calls != 0 {
		t.Fatal("fallback engine was called despite preferred success")
	}

	status := r.Status()
	if status.Stats.RequestsByEngine[Local] != 1 {
		t.Fatalf("requests[local] = %d, want 1", status.Stats.RequestsByEngine[Local])
	}
	if status.Stats.FallbackCount != 0 {
		t.Fatalf("fallback count = %d, want 0", status.Stats.FallbackCount)
	}
	if status.Stats.LastEngineUsed != Local {
		t.Fatalf("last engine = %s, want %s", status.Stats.LastEngineUsed, Local)
	}
}

func TestInvokeFallsBackOnFailure(t *testing.T) {
	boom := errors.New("connection refused")
	local := &fakeAdapter{id: Local, script: []error{Unavailable(Local, OpFirstQuestion, boom)}}
	cloud := &fakeAdapter{id: Cloud}
	r := newTestRouter(t, Preferences{Preferred: Local, FallbackEnabled: true}, local, cloud)

	result, err := r.Invoke(context.Background(), OpFirstQuestion, Payload{})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if result.Question.Text != string(Cloud) {
		t.Fatalf("wrong engine answered: %q", result.Question.Text)
	}

	status := r.Status()
	if status.Stats.FallbackCount != 1 {
		t.Fatalf("fallback count = %d, want 1", status.Stats.FallbackCount)
	}
	if status.Stats.RequestsByEngine[Local] != 0 {
		t.Fatal("failed attempt must not count as a request")
	}
	if status.Stats.RequestsByEngine[Cloud] != 1 {
		t.Fatal("successful fallback must count for the engine that answered")
	}
	if h := status.Engines[Local]; h.Available {
		t.Fatal("failed engine should be marked unavailable")
	}
	if h := status.Engines[Cloud]; !h.Available {
		t.Fatal("successful engine should be marked available")
	}
}

func TestInvokeAllUnavailable(t *testing.T) {
	localErr := Unavailable(Local, OpAnswerEvaluation, errors.New("dial tcp: refused"))
	cloudErr := ResponseInvalid(Cloud, OpAnswerEvaluation, errors.New("no json in response"))
	local := &fakeAdapter{id: Local, script: []error{localErr}}
	cloud := &fakeAdapter{id: Cloud, script: []error{cloudErr}}
	r := newTestRouter(t, Preferences{Preferred: Local, FallbackEnabled: true}, local, cloud)

	_, err := r.Invoke(context.Background(), OpAnswerEvaluation, Payload{})
	if err == nil {
		t.Fatal("expected terminal error")
	}
	var all *AllUnavailableError
	if !errors.As(err, &all) {
		t.Fatalf("expected AllUnavailableError, got %T", err)
	}
	if len(all.Attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(all.Attempts))
	}
	if all.Attempts[0].Engine != Local || all.Attempts[1].Engine != Cloud {
		t.Fatalf("attempt order wrong: %s, %s", all.Attempts[0].Engine, all.Attempts[1].Engine)
	}
	if all.Attempts[1].Kind != FailureResponseInvalid {
		t.Fatalf("kind = %s, want %s", all.Attempts[1].Kind, FailureResponseInvalid)
	}

	// Last-candidate failure has no next, so only one fallback counted.
	if fc := r.Status().Stats.FallbackCount; fc != 1 {
		t.Fatalf("fallback count = %d, want 1", fc)
	}
}

func TestInvokeFallbackDisabledTriesOnlyPreferred(t *testing.T) {
	local := &fakeAdapter{id: Local, script: []error{Unavailable(Local, OpFirstQuestion, errors.New("down"))}}
	cloud := &fakeAdapter{id: Cloud}
	r := newTestRouter(t, Preferences{Preferred: Local, FallbackEnabled: false}, local, cloud)

	_, err := r.Invoke(context.Background(), OpFirstQuestion, Payload{})
	var all *AllUnavailableError
	if !errors.As(err, &all) {
		t.Fatalf("expected AllUnavailableError, got %v", err)
	}
	if len(all.Attempts) != 1 {
		t.Fatalf("attempts = %d, want 1", len(all.Attempts))
	}
	if cloud.calls != 0 {
		t.Fatal("fallback engine must not be tried when fallback is disabled")
	}
	if fc := r.Status().Stats.FallbackCount; fc != 0 {
		t.Fatalf("fallback count = %d, want 0", fc)
	}
}

func TestInvokeSkipsCachedUnhealthyCandidate(t *testing.T) {
	local := &fakeAdapter{id: Local, script: []error{Unavailable(Local, OpFirstQuestion, errors.New("down"))}}
	cloud := &fakeAdapter{id: Cloud}
	r := newTestRouter(t, Preferences{Preferred: Local, FallbackEnabled: true}, local, cloud)

	// First call marks local unhealthy and answers from cloud.
	if _, err := r.Invoke(context.Background(), OpFirstQuestion, Payload{}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	// Second call should pre-filter local without invoking it.
	if _, err := r.Invoke(context.Background(), OpFirstQuestion, Payload{}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if local.calls != 1 {
		t.Fatalf("unhealthy engine invoked %d times, want 1", local.calls)
	}
	if fc := r.Status().Stats.FallbackCount; fc != 2 {
		t.Fatalf("fallback count = %d, want 2 (one failure, one skip)", fc)
	}
}

func TestInvokeNeverSkipsLastCandidate(t *testing.T) {
	// Single engine, marked unhealthy by a prior failure: it must still
	// be attempted rather than pre-filtered into total failure.
	local := &fakeAdapter{id: Local, script: []error{Unavailable(Local, OpFirstQuestion, errors.New("down")), nil}}
	r := newTestRouter(t, Preferences{Preferred: Local, FallbackEnabled: true}, local)

	if _, err := r.Invoke(context.Background(), OpFirstQuestion, Payload{}); err == nil {
		t.Fatal("expected first call to fail")
	}
	result, err := r.Invoke(context.Background(), OpFirstQuestion, Payload{})
	if err != nil {
		t.Fatalf("second call should reach the engine: %v", err)
	}
	if result.Question == nil {
		t.Fatal("expected a result from the recovered engine")
	}
	if h := r.Status().Engines[Local]; !h.Available {
		t.Fatal("a single success must clear the unhealthy flag")
	}
}

func TestForceSelect(t *testing.T) {
	local := &fakeAdapter{id: Local}
	cloud := &fakeAdapter{id: Cloud}
	r := newTestRouter(t, Preferences{Preferred: Local, FallbackEnabled: true}, local, cloud)

	if err := r.ForceSelect(Cloud); err != nil {
		t.Fatalf("ForceSelect: %v", err)
	}
	result, err := r.Invoke(context.Background(), OpFirstQuestion, Payload{})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if result.Question.Text != string(Cloud) {
		t.Fatalf("forced engine not used: %q", result.Question.Text)
	}

	if err := r.ForceSelect("claude"); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine, got %v", err)
	}

	r.ResetPreferences()
	if got := r.Status().Preferences.Preferred; got != Local {
		t.Fatalf("preferred after reset = %s, want %s", got, Local)
	}
}

func TestNewDowngradesUnregisteredPreferred(t *testing.T) {
	cloud := &fakeAdapter{id: Cloud}
	r := newTestRouter(t, Preferences{Preferred: Local, FallbackEnabled: true}, cloud)
	if got := r.Status().Preferences.Preferred; got != Cloud {
		t.Fatalf("preferred = %s, want %s", got, Cloud)
	}
}

func TestCheckHealthRefreshesCache(t *testing.T) {
	local := &fakeAdapter{id: Local, health: Health{Available: false, LastError: "no models"}}
	cloud := &fakeAdapter{id: Cloud, health: Health{Available: true}}
	r := newTestRouter(t, Preferences{Preferred: Local, FallbackEnabled: true}, local, cloud)

	probed := r.CheckHealth(context.Background())
	if probed[Local].Available {
		t.Fatal("probe result should report local unavailable")
	}
	if got := r.Status().Engines[Local]; got.Available || got.LastError != "no models" {
		t.Fatalf("cached health not refreshed: %+v", got)
	}
}

func TestStatusSnapshotIsDetached(t *testing.T) {
	local := &fakeAdapter{id: Local}
	r := newTestRouter(t, Preferences{Preferred: Local}, local)

	status := r.Status()
	status.Stats.RequestsByEngine[Local] = 99
	status.Engines[Local] = Health{Available: false}

	fresh := r.Status()
	if fresh.Stats.RequestsByEngine[Local] != 0 {
		t.Fatal("mutating a snapshot must not affect router state")
	}
	if !fresh.Engines[Local].Available {
		t.Fatal("mutating a snapshot's health map must not affect router state")
	}
}

func TestInvokeConcurrent(t *testing.T) {
	local := &fakeAdapter{id: Local}
	cloud := &fakeAdapter{id: Cloud}
	r := newTestRouter(t, Preferences{Preferred: Local, FallbackEnabled: true}, local, cloud)

	const n = 32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = r.Invoke(context.Background(), OpNextQuestion, Payload{})
			_ = r.Status()
		}()
	}
	wg.Wait()

	if got := r.Status().Stats.RequestsByEngine[Local]; got != n {
		t.Fatalf("requests[local] = %d, want %d", got, n)
	}
}
