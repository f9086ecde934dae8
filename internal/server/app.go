// Package server wires the Loopin backend together: it opens PostgreSQL,
// applies migrations, starts the change feed and serves the gRPC API until
// the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/loopin/internal/logging"
	"github.com/dmitrijs2005/loopin/internal/server/config"
	"github.com/dmitrijs2005/loopin/internal/server/feed"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/loopin/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/loopin/internal/server/grpc"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// openDB is replaced in tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	broker   *feed.Broker
	listener *feed.PGListener
	server   *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, logging.ParseLevel(c.LogLevel))
	return newApp(ctx, c, logger, repomanager.NewPostgresRepositoryManager())
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, rm repomanager.RepositoryManager) (*App, error) {
	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	if err := feed.ConfigureChannel(ctx, db, c.FeedChannel); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("feed channel error: %w", err)
	}

	broker := feed.NewBroker(c.FeedBufferSize, logger)

	server := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, gs.Services{
		Users:         services.NewUserService(db, rm, c, logger),
		Posts:         services.NewPostService(db, rm, logger),
		Notifications: services.NewNotificationService(db, rm),
		Attachments:   services.NewAttachmentService(db, rm, c, logger),
		Feed:          broker,
	}, c.SecretKey)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		broker:   broker,
		listener: feed.NewPGListener(c.DatabaseDSN, c.FeedChannel, broker, c.FeedReconnectDelay, logger),
		server:   server,
	}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM/SIGQUIT arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")
	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close error", "error", err)
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.listener.Run(ctx) })
	g.Go(func() error { return app.server.Run(ctx) })

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}
