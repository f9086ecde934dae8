package feed

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/loopin/internal/logging"
	"github.com/google/uuid"
)

const DefaultBufferSize = 64

type topic struct {
	collection string
	key        string
}

// Broker fans events out to subscribers of the same collection and key.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.RWMutex
	subs   map[topic]map[*Subscription]struct{}
	buffer int
	logger logging.Logger
}

func NewBroker(buffer int, l logging.Logger) *Broker {
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}
	return &Broker{
		subs:   make(map[topic]map[*Subscription]struct{}),
		buffer: buffer,
		logger: l.With("module", "feed_broker"),
	}
}

// Subscription receives events in publish order until Unsubscribe.
type Subscription struct {
	ID     string
	ch     chan Event
	topic  topic
	broker *Broker
	once   sync.Once
}

// C is closed after Unsubscribe.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		b := s.broker
		b.mu.Lock()
		if set, ok := b.subs[s.topic]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(b.subs, s.topic)
			}
		}
		close(s.ch)
		b.mu.Unlock()
	})
}

func (b *Broker) Subscribe(collection, key string) *Subscription {
	s := &Subscription{
		ID:     uuid.NewString(),
		ch:     make(chan Event, b.buffer),
		topic:  topic{collection: collection, key: key},
		broker: b,
	}

	b.mu.Lock()
	set, ok := b.subs[s.topic]
	if !ok {
		set = make(map[*Subscription]struct{})
		b.subs[s.topic] = set
	}
	set[s] = struct{}{}
	b.mu.Unlock()

	return s
}

// Publish delivers e to every current subscriber of its topic and returns
// how many received it.
func (b *Broker) Publish(ctx context.Context, e Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for s := range b.subs[e.topic()] {
		select {
		case s.ch <- e:
			delivered++
		default:
			b.logger.Warn(ctx, "subscriber buffer full, event dropped",
				"subscription", s.ID, "collection", e.Collection, "row_id", e.RowID)
		}
	}
	return delivered
}

// Subscribers counts the live subscriptions of a topic.
func (b *Broker) Subscribers(collection, key string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic{collection: collection, key: key}])
}
