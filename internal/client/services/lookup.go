package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/loopin/internal/availability"
	"github.com/dmitrijs2005/loopin/internal/client/client"
	"github.com/dmitrijs2005/loopin/internal/logging"
	"github.com/sony/gobreaker"
)

type usernameChecker interface {
	CheckUsername(ctx context.Context, username string) (bool, error)
}

// BreakerSettings tune the username lookup circuit breaker.
type BreakerSettings struct {
	// Failures in a row that open the breaker.
	MaxFailures uint32
	// How long the breaker stays open before letting one probe through.
	OpenTimeout time.Duration
}

var DefaultBreakerSettings = BreakerSettings{MaxFailures: 3, OpenTimeout: 10 * time.Second}

type usernameLookup struct {
	client usernameChecker
	cb     *gobreaker.CircuitBreaker
}

// NewUsernameLookup wraps the server's CheckUsername in a circuit breaker.
// While the breaker is open lookups fail at once and the checker shows
// "unknown" instead of waiting on a dead server.
func NewUsernameLookup(c usernameChecker, bs BreakerSettings, l logging.Logger) availability.Lookup {
	l = l.With("module", "username_lookup")
	st := gobreaker.Settings{
		Name:        "CheckUsername",
		MaxRequests: 1,
		Timeout:     bs.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, client.ErrInvalid)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warn(context.Background(), "circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &usernameLookup{client: c, cb: gobreaker.NewCircuitBreaker(st)}
}

func (u *usernameLookup) UsernameTaken(ctx context.Context, username string) (bool, error) {
	res, err := u.cb.Execute(func() (interface{}, error) {
		return u.client.CheckUsername(ctx, username)
	})
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}
