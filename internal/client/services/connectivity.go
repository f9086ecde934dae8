package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/loopin/internal/logging"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Connectivity pings the server on an interval and tracks whether the
// client is online.
type Connectivity struct {
	pinger   pinger
	interval time.Duration
	timeout  time.Duration
	logger   logging.Logger
	online   atomic.Bool
	onChange func(online bool)
}

func NewConnectivity(p pinger, interval time.Duration, l logging.Logger) *Connectivity {
	timeout := interval
	if timeout > 2*time.Second {
		timeout = 2 * time.Second
	}
	return &Connectivity{pinger: p, interval: interval, timeout: timeout, logger: l.With("module", "connectivity")}
}

// OnChange sets a callback run on every online/offline transition. Call
// before Run.
func (c *Connectivity) OnChange(fn func(online bool)) {
	c.onChange = fn
}

func (c *Connectivity) Online() bool {
	return c.online.Load()
}

// Check pings once and records the result.
func (c *Connectivity) Check(ctx context.Context) bool {
	pctx, cancel := context.WithTimeout(ctx, c.timeout)
	err := c.pinger.Ping(pctx)
	cancel()

	now := err == nil
	if c.online.Swap(now) != now {
		c.logger.Info(ctx, "connectivity changed", "online", now)
		if c.onChange != nil {
			c.onChange(now)
		}
	}
	return now
}

// Run checks immediately and then every interval until ctx is done.
func (c *Connectivity) Run(ctx context.Context) {
	c.Check(ctx)

	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Check(ctx)
		}
	}
}
