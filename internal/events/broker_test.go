package events

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/chartboard/internal/domain"
)

func TestBroker_FanOut(t *testing.T) {
	t.Parallel()

	b := NewBroker(slog.Default(), 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := b.Subscribe(ctx)
	c := b.Subscribe(ctx)
	require.Equal(t, 2, b.Subscribers())

	change := domain.Change{Version: 3, Kind: domain.ChangeTopicCreated, TopicID: 7}
	b.Publish(change)

	assert.Equal(t, change, <-a)
	assert.Equal(t, change, <-c)
}

func TestBroker_SlowSubscriberDropsWithoutBlocking(t *testing.T) {
	t.Parallel()

	b := NewBroker(slog.Default(), 1)
	ch := b.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		b.Publish(domain.Change{Version: 1})
		b.Publish(domain.Change{Version: 2})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	assert.Equal(t, uint64(1), (<-ch).Version)
	assert.Empty(t, ch)
}

func TestBroker_UnsubscribeOnContextEnd(t *testing.T) {
	t.Parallel()

	b := NewBroker(slog.Default(), 0)
	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)

	cancel()

	require.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, time.Millisecond)
	_, open := <-ch
	assert.False(t, open)
}

func TestBroker_Close(t *testing.T) {
	t.Parallel()

	b := NewBroker(slog.Default(), 0)
	ch := b.Subscribe(context.Background())

	b.Close()
	b.Close()

	_, open := <-ch
	assert.False(t, open)

	late := b.Subscribe(context.Background())
	_, open = <-late
	assert.False(t, open)
	assert.NotPanics(t, func() { b.Publish(domain.Change{Version: 1}) })
}
