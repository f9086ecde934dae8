// Package feed delivers row-level change events to live subscribers. The
// database publishes events with pg_notify; a PGListener relays them to an
// in-process Broker that fans them out per collection and key.
package feed

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	CollectionComments      = "comments"
	CollectionNotifications = "notifications"
)

// Event announces that RowID changed in Collection. Key is the post id for
// comments and the recipient id for notifications.
type Event struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	Op         string    `json:"op"`
	Key        string    `json:"key"`
	RowID      string    `json:"row_id"`
	At         time.Time `json:"at"`
}

func (e Event) topic() topic {
	return topic{collection: e.Collection, key: e.Key}
}

// DecodeEvent parses a pg_notify payload.
func DecodeEvent(payload string) (Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Collection == "" || e.Key == "" {
		return Event{}, fmt.Errorf("decode event: missing collection or key")
	}
	return e, nil
}
