package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	mu      sync.Mutex
	taken   map[string]bool
	err     error
	calls   []string
	ctxErrs []error

	// when gate is set each call blocks until it is closed, or until ctx is
	// done unless ignoreCtx is true
	gate      chan struct{}
	ignoreCtx bool
	started   chan string
}

func newFakeLookup(taken ...string) *fakeLookup {
	f := &fakeLookup{taken: map[string]bool{}, started: make(chan string, 16)}
	for _, u := range taken {
		f.taken[u] = true
	}
	return f
}

func (f *fakeLookup) UsernameTaken(ctx context.Context, name string) (bool, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	gate, ignoreCtx := f.gate, f.ignoreCtx
	f.mu.Unlock()
	f.started <- name

	if gate != nil {
		if ignoreCtx {
			<-gate
		} else {
			select {
			case <-gate:
			case <-ctx.Done():
				f.mu.Lock()
				f.ctxErrs = append(f.ctxErrs, ctx.Err())
				f.mu.Unlock()
				return false, ctx.Err()
			}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.taken[name], nil
}

func (f *fakeLookup) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func await(t *testing.T, c *Checker) Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	snap, err := c.Await(ctx)
	require.NoError(t, err)
	return snap
}

func newTestChecker(l Lookup, opts ...Option) (*Checker, *manualClock) {
	clock := newManualClock()
	c := New(l, append([]Option{WithClock(clock)}, opts...)...)
	return c, clock
}

func TestChecker_InitialState(t *testing.T) {
	c, _ := newTestChecker(newFakeLookup())
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, VerdictUnknown, c.Verdict())
	assert.Empty(t, c.Candidate())
	assert.False(t, c.CanSubmit())
}

func TestChecker_TooShortIsSynchronous(t *testing.T) {
	lookup := newFakeLookup()
	c, clock := newTestChecker(lookup)

	c.Edit("ab")

	assert.Equal(t, VerdictTooShort, c.Verdict())
	assert.Equal(t, StateInvalid, c.State())
	assert.False(t, c.CanSubmit())
	assert.Zero(t, clock.Pending())

	clock.Advance(time.Hour)
	assert.Empty(t, lookup.Calls())
}

func TestChecker_ShortCandidatesNeverLookedUp(t *testing.T) {
	lookup := newFakeLookup()
	c, clock := newTestChecker(lookup)

	for _, in := range []string{"", "a", "ab", "A!", "x y", "..", "é1"} {
		c.Edit(in)
		assert.Equal(t, VerdictTooShort, c.Verdict(), in)
		clock.Advance(DefaultQuietPeriod)
	}
	assert.Empty(t, lookup.Calls())
}

func TestChecker_Available(t *testing.T) {
	lookup := newFakeLookup()
	c, clock := newTestChecker(lookup)

	c.Edit("neo_user_01")
	assert.Equal(t, StateTyping, c.State())
	assert.Equal(t, VerdictUnknown, c.Verdict())

	clock.Advance(DefaultQuietPeriod)
	snap := await(t, c)

	assert.Equal(t, StateResolved, snap.State)
	assert.Equal(t, VerdictAvailable, snap.Verdict)
	assert.True(t, snap.CanSubmit())
	assert.True(t, c.CanSubmit())
	assert.Equal(t, []string{"neo_user_01"}, lookup.Calls())
}

func TestChecker_Taken(t *testing.T) {
	lookup := newFakeLookup("neo_user_01")
	c, clock := newTestChecker(lookup)

	c.Edit("neo_user_01")
	clock.Advance(DefaultQuietPeriod)
	snap := await(t, c)

	assert.Equal(t, VerdictTaken, snap.Verdict)
	assert.False(t, c.CanSubmit())
	assert.Len(t, lookup.Calls(), 1)
}

func TestChecker_NoLookupBeforeQuietPeriod(t *testing.T) {
	lookup := newFakeLookup()
	c, clock := newTestChecker(lookup)

	c.Edit("neo")
	clock.Advance(DefaultQuietPeriod - time.Millisecond)
	assert.Equal(t, StateTyping, c.State())
	assert.Empty(t, lookup.Calls())

	clock.Advance(time.Millisecond)
	await(t, c)
	assert.Equal(t, []string{"neo"}, lookup.Calls())
}

func TestChecker_RapidEditsCoalesce(t *testing.T) {
	lookup := newFakeLookup()
	c, clock := newTestChecker(lookup)

	for _, in := range []string{"n", "ne", "neo", "neo_"} {
		c.Edit(in)
		clock.Advance(100 * time.Millisecond)
	}
	assert.Empty(t, lookup.Calls())

	clock.Advance(DefaultQuietPeriod)
	snap := await(t, c)

	assert.Equal(t, []string{"neo_"}, lookup.Calls())
	assert.Equal(t, "neo_", snap.Candidate)
	assert.Equal(t, VerdictAvailable, snap.Verdict)
}

func TestChecker_ShortEditDisarmsTimer(t *testing.T) {
	lookup := newFakeLookup()
	c, clock := newTestChecker(lookup)

	c.Edit("neo")
	c.Edit("ne")
	clock.Advance(DefaultQuietPeriod)

	assert.Equal(t, VerdictTooShort, c.Verdict())
	assert.Empty(t, lookup.Calls())
}

func TestChecker_LookupErrorIsUnknown(t *testing.T) {
	lookup := newFakeLookup()
	lookup.err = errors.New("backend down")
	c, clock := newTestChecker(lookup)

	c.Edit("neo_user_01")
	clock.Advance(DefaultQuietPeriod)
	snap := await(t, c)

	assert.Equal(t, StateResolved, snap.State)
	assert.Equal(t, VerdictUnknown, snap.Verdict)
	assert.False(t, c.CanSubmit())

	// not retried on its own
	clock.Advance(10 * DefaultQuietPeriod)
	assert.Len(t, lookup.Calls(), 1)
}

func TestChecker_StaleResultCancelledAndIgnored(t *testing.T) {
	lookup := newFakeLookup("alpha")
	lookup.gate = make(chan struct{})
	c, clock := newTestChecker(lookup)

	c.Edit("alpha")
	clock.Advance(DefaultQuietPeriod)
	assert.Equal(t, "alpha", <-lookup.started)
	assert.Equal(t, StateChecking, c.State())

	c.Edit("bravo")
	c.inflight.Wait()

	lookup.mu.Lock()
	require.Len(t, lookup.ctxErrs, 1)
	assert.ErrorIs(t, lookup.ctxErrs[0], context.Canceled)
	lookup.mu.Unlock()

	assert.Equal(t, StateTyping, c.State())
	assert.Equal(t, VerdictUnknown, c.Verdict())

	close(lookup.gate)
	clock.Advance(DefaultQuietPeriod)
	snap := await(t, c)

	assert.Equal(t, "bravo", snap.Candidate)
	assert.Equal(t, VerdictAvailable, snap.Verdict)
	assert.Equal(t, []string{"alpha", "bravo"}, lookup.Calls())
}

func TestChecker_LateResultIgnoredWhenLookupIgnoresContext(t *testing.T) {
	lookup := newFakeLookup("alpha")
	gate := make(chan struct{})
	lookup.gate = gate
	lookup.ignoreCtx = true
	c, clock := newTestChecker(lookup)

	c.Edit("alpha")
	clock.Advance(DefaultQuietPeriod)
	<-lookup.started

	// only the alpha call stays blocked
	lookup.mu.Lock()
	lookup.gate = nil
	lookup.mu.Unlock()

	c.Edit("bravo")
	clock.Advance(DefaultQuietPeriod)
	assert.Equal(t, "bravo", <-lookup.started)

	snap := await(t, c)
	require.Equal(t, VerdictAvailable, snap.Verdict)

	close(gate)
	c.inflight.Wait()

	assert.Equal(t, "bravo", c.Candidate())
	assert.Equal(t, VerdictAvailable, c.Verdict())
}

func TestChecker_Normalizes(t *testing.T) {
	lookup := newFakeLookup()
	c, clock := newTestChecker(lookup)

	c.Edit("Neo User!")
	assert.Equal(t, "neouser", c.Candidate())

	clock.Advance(DefaultQuietPeriod)
	await(t, c)
	assert.Equal(t, []string{"neouser"}, lookup.Calls())
}

func TestChecker_SameCandidateSameVerdict(t *testing.T) {
	lookup := newFakeLookup("morpheus")
	c, clock := newTestChecker(lookup)

	var verdicts []Verdict
	for i := 0; i < 2; i++ {
		c.Edit("morpheus")
		clock.Advance(DefaultQuietPeriod)
		verdicts = append(verdicts, await(t, c).Verdict)
		c.Edit("x")
	}
	assert.Equal(t, []Verdict{VerdictTaken, VerdictTaken}, verdicts)
}

func TestChecker_CustomQuietPeriod(t *testing.T) {
	lookup := newFakeLookup()
	c, clock := newTestChecker(lookup, WithQuietPeriod(2*time.Second))

	c.Edit("trinity")
	clock.Advance(DefaultQuietPeriod)
	assert.Empty(t, lookup.Calls())

	clock.Advance(2 * time.Second)
	await(t, c)
	assert.Len(t, lookup.Calls(), 1)
}

func TestChecker_CloseBeforeTimer(t *testing.T) {
	lookup := newFakeLookup()
	c, clock := newTestChecker(lookup)

	c.Edit("neo")
	c.Close()
	clock.Advance(DefaultQuietPeriod)

	assert.Empty(t, lookup.Calls())
	assert.Equal(t, StateClosed, c.State())
	assert.False(t, c.CanSubmit())

	c.Edit("another")
	assert.Equal(t, StateClosed, c.State())
	assert.Empty(t, c.Candidate())
	assert.Zero(t, clock.Pending())

	// closing twice is fine
	c.Close()
}

func TestChecker_CloseCancelsInFlight(t *testing.T) {
	lookup := newFakeLookup()
	lookup.gate = make(chan struct{})
	c, clock := newTestChecker(lookup)

	c.Edit("neo")
	clock.Advance(DefaultQuietPeriod)
	<-lookup.started

	c.Close()

	lookup.mu.Lock()
	require.Len(t, lookup.ctxErrs, 1)
	lookup.mu.Unlock()
	assert.Equal(t, StateClosed, c.State())
	assert.Equal(t, VerdictUnknown, c.Verdict())

	snap := await(t, c)
	assert.Equal(t, StateClosed, snap.State)
}

func TestChecker_LookupTimeout(t *testing.T) {
	lookup := newFakeLookup()
	lookup.gate = make(chan struct{})
	c, clock := newTestChecker(lookup, WithLookupTimeout(20*time.Millisecond))

	c.Edit("neo")
	clock.Advance(DefaultQuietPeriod)
	snap := await(t, c)

	assert.Equal(t, VerdictUnknown, snap.Verdict)
	lookup.mu.Lock()
	require.Len(t, lookup.ctxErrs, 1)
	assert.ErrorIs(t, lookup.ctxErrs[0], context.DeadlineExceeded)
	lookup.mu.Unlock()
}

func TestChecker_AwaitHonoursContext(t *testing.T) {
	c, _ := newTestChecker(newFakeLookup())
	c.Edit("neo")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	snap, err := c.Await(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateTyping, snap.State)
}

func TestChecker_InstancesAreIndependent(t *testing.T) {
	lookup := newFakeLookup("taken_one")
	a, clockA := newTestChecker(lookup)
	b, clockB := newTestChecker(lookup)

	a.Edit("taken_one")
	b.Edit("free_one")
	clockA.Advance(DefaultQuietPeriod)
	clockB.Advance(DefaultQuietPeriod)

	assert.Equal(t, VerdictTaken, await(t, a).Verdict)
	assert.Equal(t, VerdictAvailable, await(t, b).Verdict)
}

func TestChecker_OnChange(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []Snapshot
	)
	lookup := newFakeLookup()
	c, clock := newTestChecker(lookup, WithOnChange(func(s Snapshot) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	}))

	c.Edit("ab")
	c.Edit("abc")
	clock.Advance(DefaultQuietPeriod)
	await(t, c)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 4
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	states := make([]State, 0, len(seen))
	for _, s := range seen {
		states = append(states, s.State)
	}
	assert.Equal(t, []State{StateInvalid, StateTyping, StateChecking, StateResolved}, states)
	assert.Equal(t, VerdictAvailable, seen[len(seen)-1].Verdict)
}

func TestChecker_CloseFromOnChange(t *testing.T) {
	tests := []struct {
		name    string
		closeOn State
	}{
		{"while checking", StateChecking},
		{"once resolved", StateResolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := newFakeLookup()
			if tt.closeOn == StateChecking {
				lookup.gate = make(chan struct{})
			}

			done := make(chan struct{})
			var (
				once sync.Once
				c    *Checker
			)
			c, clock := newTestChecker(lookup, WithOnChange(func(s Snapshot) {
				if s.State != tt.closeOn {
					return
				}
				c.Close()
				once.Do(func() { close(done) })
			}))

			c.Edit("morpheus")
			go clock.Advance(DefaultQuietPeriod)

			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("Close called from onChange did not return")
			}
			assert.Equal(t, StateClosed, c.State())
			assert.Equal(t, []string{"morpheus"}, lookup.Calls())
		})
	}
}

func TestChecker_RealClock(t *testing.T) {
	lookup := newFakeLookup("oracle")
	c := New(lookup, WithQuietPeriod(5*time.Millisecond))
	defer c.Close()

	c.Edit("oracle")
	snap := await(t, c)
	assert.Equal(t, VerdictTaken, snap.Verdict)
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "unknown", VerdictUnknown.String())
	assert.Equal(t, "too_short", VerdictTooShort.String())
	assert.Equal(t, "taken", VerdictTaken.String())
	assert.Equal(t, "available", VerdictAvailable.String())
	assert.Equal(t, "checking", StateChecking.String())
}
