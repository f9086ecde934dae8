package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/loopin/internal/availability"
	"github.com/dmitrijs2005/loopin/internal/client/client"
	"github.com/dmitrijs2005/loopin/internal/client/config"
	"github.com/dmitrijs2005/loopin/internal/client/repositories/session"
	"github.com/dmitrijs2005/loopin/internal/client/services"
	"github.com/dmitrijs2005/loopin/internal/logging"
	"github.com/dmitrijs2005/loopin/internal/username"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	logger logging.Logger

	auth   services.AuthService
	forum  services.ForumService
	lookup availability.Lookup
	conn   *services.Connectivity

	reader *bufio.Reader
	out    io.Writer

	closers []io.Closer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr, logging.ParseLevel(c.LogLevel)).With("app", "client")

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:  c,
		logger:  logger,
		auth:    services.NewAuthService(apiClient, session.NewSQLiteRepository(db), logger),
		forum:   services.NewForumService(apiClient, logger),
		lookup:  services.NewUsernameLookup(apiClient, services.DefaultBreakerSettings, logger),
		conn:    services.NewConnectivity(apiClient, c.OnlineCheckInterval, logger),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closers: []io.Closer{apiClient, db},
	}, nil
}

func (a *App) mode() Mode {
	if a.conn != nil && a.conn.Online() {
		return ModeOnline
	}
	return ModeOffline
}

func (a *App) isLoggedIn() bool {
	return a.auth.Session() != nil
}

// status is shown in the prompt: identity and connectivity mode.
func (a *App) status() string {
	name := username.FormatIdentity("")
	if s := a.auth.Session(); s != nil {
		name = s.Display()
	}
	return fmt.Sprintf("(%s %s)", name, a.mode())
}

// resume restores a stored session. A server that cannot be reached is not
// an error here; the connectivity watcher retries once it is back.
func (a *App) resume(ctx context.Context) {
	s, err := a.auth.Resume(ctx)
	switch {
	case err == nil && s != nil:
		fmt.Fprintf(a.out, "Welcome back, %s\n", s.Display())
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, working offline")
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(a.out, "Saved session expired, please log in")
	case err != nil:
		a.logger.Warn(ctx, "resume failed", "error", err)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to Loopin (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	a.resume(ctx)

	if a.conn != nil {
		a.conn.OnChange(func(online bool) {
			if online && !a.isLoggedIn() {
				a.resume(ctx)
			}
		})
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.conn.Run(ctx)
		}()
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
}
