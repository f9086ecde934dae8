package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/loopin/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// notificationConn is the part of *pgx.Conn the listener needs.
type notificationConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

type connectFunc func(ctx context.Context) (notificationConn, error)

// PGListener holds a dedicated connection in LISTEN mode and publishes
// every notification to the broker.
type PGListener struct {
	connect        connectFunc
	channel        string
	reconnectDelay time.Duration
	broker         *Broker
	logger         logging.Logger
}

// NewPGListener listens on channel, which must match the one stored by
// ConfigureChannel.
func NewPGListener(dsn, channel string, broker *Broker, reconnectDelay time.Duration, l logging.Logger) *PGListener {
	return &PGListener{
		connect: func(ctx context.Context) (notificationConn, error) {
			return pgx.Connect(ctx, dsn)
		},
		channel:        channel,
		reconnectDelay: reconnectDelay,
		broker:         broker,
		logger:         l.With("module", "feed_listener"),
	}
}

// Run listens until ctx is cancelled, reconnecting after reconnectDelay
// whenever the connection fails.
func (l *PGListener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			l.logger.Info(ctx, "change feed listener stopped")
			return nil
		}
		l.logger.Warn(ctx, "change feed connection lost", "error", err, "retry_in", l.reconnectDelay.String())

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.reconnectDelay):
		}
	}
}

func (l *PGListener) listen(ctx context.Context) error {
	conn, err := l.connect(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = conn.Close(context.Background()) }()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	l.logger.Info(ctx, "listening for changes", "channel", l.channel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait: %w", err)
		}

		e, err := DecodeEvent(n.Payload)
		if err != nil {
			l.logger.Warn(ctx, "bad change payload", "error", err)
			continue
		}
		l.broker.Publish(ctx, e)
	}
}
