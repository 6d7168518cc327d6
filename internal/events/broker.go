// Package events fans mirror changes out to live subscribers such as
// Server-Sent Events streams.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/chartboard/internal/domain"
)

const defaultBuffer = 64

// Broker delivers every published change to every current subscriber.
// Publish never blocks: a subscriber whose buffer is full misses the change.
type Broker struct {
	log    *slog.Logger
	buffer int

	mu     sync.RWMutex
	subs   map[string]chan domain.Change
	closed bool
}

// NewBroker creates a Broker. A buffer of zero or less uses the default.
func NewBroker(logger *slog.Logger, buffer int) *Broker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Broker{
		log:    logger.With("component", "events"),
		buffer: buffer,
		subs:   make(map[string]chan domain.Change),
	}
}

// Subscribe registers a subscriber. The returned channel is closed when ctx
// ends or the broker is closed.
func (b *Broker) Subscribe(ctx context.Context) <-chan domain.Change {
	ch := make(chan domain.Change, b.buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	id := uuid.NewString()
	b.subs[id] = ch
	count := len(b.subs)
	b.mu.Unlock()

	b.log.DebugContext(ctx, "subscriber connected", slog.String("subscriber_id", id), slog.Int("subscribers", count))

	context.AfterFunc(ctx, func() { b.remove(id) })

	return ch
}

// Publish delivers change to every subscriber without blocking.
func (b *Broker) Publish(change domain.Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- change:
		default:
			b.log.Warn("dropped change for slow subscriber",
				slog.String("subscriber_id", id),
				slog.String("kind", change.Kind.String()),
				slog.Uint64("version", change.Version),
			)
		}
	}
}

// Subscribers returns the number of live subscribers.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Later subscriptions get a closed channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}

func (b *Broker) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		close(ch)
		delete(b.subs, id)
	}
}
