package availability

import (
	"time"

	"github.com/dmitrijs2005/loopin/internal/logging"
)

// DefaultQuietPeriod is how long input must stay unchanged before a lookup.
const DefaultQuietPeriod = 500 * time.Millisecond

type Option func(*Checker)

func WithQuietPeriod(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.quiet = d
		}
	}
}

// WithLookupTimeout bounds a single lookup. Zero means no bound.
func WithLookupTimeout(d time.Duration) Option {
	return func(c *Checker) { c.lookupTimeout = d }
}

func WithClock(clock Clock) Option {
	return func(c *Checker) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.log = l
		}
	}
}

// WithOnChange registers a callback invoked after every transition. It is
// called without the checker lock held, from whichever goroutine made the
// transition.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Checker) { c.onChange = fn }
}
