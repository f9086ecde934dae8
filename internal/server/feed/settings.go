package feed

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/loopin/internal/dbx"
)

// ConfigureChannel stores the NOTIFY channel the change triggers publish to.
// The listener must LISTEN on the same name.
func ConfigureChannel(ctx context.Context, db dbx.DBTX, channel string) error {
	if channel == "" {
		return fmt.Errorf("feed channel is empty")
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO feed_settings (id, channel) VALUES (TRUE, $1)
		 ON CONFLICT (id) DO UPDATE SET channel = EXCLUDED.channel`, channel)
	if err != nil {
		return fmt.Errorf("store feed channel: %w", err)
	}
	return nil
}
