package availability

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/loopin/internal/logging"
	"github.com/dmitrijs2005/loopin/internal/username"
)

// Checker tracks one registration form's username field. It is safe for
// concurrent use; all transitions are serialised under mu.
type Checker struct {
	lookup        Lookup
	clock         Clock
	quiet         time.Duration
	lookupTimeout time.Duration
	log           logging.Logger
	onChange      func(Snapshot)

	mu        sync.Mutex
	candidate string
	state     State
	verdict   Verdict
	gen       uint64
	timer     Timer
	cancel    context.CancelFunc
	changed   chan struct{}
	inflight  sync.WaitGroup
}

func New(lookup Lookup, opts ...Option) *Checker {
	c := &Checker{
		lookup:  lookup,
		clock:   realClock{},
		quiet:   DefaultQuietPeriod,
		log:     logging.Nop(),
		changed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("module", "availability")
	return c
}

// Edit replaces the candidate with the normalised form of raw.
func (c *Checker) Edit(raw string) {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}

	c.gen++
	c.stopLocked()
	c.candidate = username.Normalize(raw)

	if len(c.candidate) < username.MinLength {
		c.state = StateInvalid
		c.verdict = VerdictTooShort
	} else {
		c.state = StateTyping
		c.verdict = VerdictUnknown
		gen := c.gen
		c.timer = c.clock.AfterFunc(c.quiet, func() { c.fire(gen) })
	}

	snap := c.transitionLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// fire runs when the quiet period of generation gen elapses.
func (c *Checker) fire(gen uint64) {
	c.mu.Lock()
	if c.state == StateClosed || gen != c.gen {
		c.mu.Unlock()
		return
	}

	c.timer = nil
	c.state = StateChecking

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.lookupTimeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), c.lookupTimeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	c.cancel = cancel
	value := c.candidate

	c.inflight.Add(1)
	snap := c.transitionLocked()
	c.mu.Unlock()

	go c.run(ctx, gen, value)
	c.notify(snap)
}

// run resolves one lookup. inflight is released before onChange runs so the
// callback may call Close.
func (c *Checker) run(ctx context.Context, gen uint64, value string) {
	taken, err := c.lookup.UsernameTaken(ctx, value)

	c.mu.Lock()
	if c.state == StateClosed || gen != c.gen {
		c.mu.Unlock()
		c.inflight.Done()
		c.log.Debug(ctx, "stale lookup result dropped", "username", value)
		return
	}

	c.cancel()
	c.cancel = nil
	c.state = StateResolved
	switch {
	case err != nil:
		c.verdict = VerdictUnknown
	case taken:
		c.verdict = VerdictTaken
	default:
		c.verdict = VerdictAvailable
	}
	snap := c.transitionLocked()
	c.mu.Unlock()
	c.inflight.Done()

	if err != nil {
		c.log.Warn(ctx, "username lookup failed", "username", value, "error", err)
	}
	c.notify(snap)
}

// Verdict returns the current verdict.
func (c *Checker) Verdict() Verdict {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verdict
}

func (c *Checker) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Checker) Candidate() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.candidate
}

// CanSubmit is true only when the current candidate was found available.
func (c *Checker) CanSubmit() bool {
	return c.Verdict() == VerdictAvailable
}

func (c *Checker) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Await blocks until the current candidate has a verdict, the checker is
// closed, or ctx is done. It returns the snapshot at that point together
// with ctx.Err() when ctx ended the wait.
func (c *Checker) Await(ctx context.Context) (Snapshot, error) {
	for {
		c.mu.Lock()
		snap := c.snapshotLocked()
		ch := c.changed
		c.mu.Unlock()

		if !snap.State.pending() {
			return snap, nil
		}

		select {
		case <-ch:
		case <-ctx.Done():
			return snap, ctx.Err()
		}
	}
}

// Close stops the timer, cancels any in-flight lookup and makes the checker
// ignore every later edit or result. It waits for the lookup goroutine,
// which returns promptly once its context is canceled. Close is safe to call
// from the onChange callback.
func (c *Checker) Close() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.gen++
	c.stopLocked()
	c.state = StateClosed
	c.candidate = ""
	c.verdict = VerdictUnknown
	snap := c.transitionLocked()
	c.mu.Unlock()

	c.inflight.Wait()
	c.notify(snap)
}

func (c *Checker) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// transitionLocked wakes Await callers and returns the new snapshot.
func (c *Checker) transitionLocked() Snapshot {
	close(c.changed)
	c.changed = make(chan struct{})
	return c.snapshotLocked()
}

func (c *Checker) snapshotLocked() Snapshot {
	return Snapshot{Candidate: c.candidate, State: c.state, Verdict: c.verdict}
}

func (c *Checker) notify(s Snapshot) {
	if c.onChange != nil {
		c.onChange(s)
	}
}
