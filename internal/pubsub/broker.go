// Package pubsub provides a small generic publish/subscribe broker used to
// push decoration updates from the engine to the UI without polling.
package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 16

// Event wraps a published payload with the time it was published.
type Event[T any] struct {
	Payload T
	Time    time.Time
}

// Broker fans events out to subscribers. Publishing never blocks: events are
// dropped for subscribers whose channel is full.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[chan Event[T]]struct{}
	closed bool
}

// NewBroker creates an empty broker.
func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{subs: make(map[chan Event[T]]struct{})}
}

// Subscribe returns a channel receiving every event published after the
// call. The subscription is removed and the channel closed when ctx is
// cancelled.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	sub := make(chan Event[T], defaultBufferSize)
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed {
			return
		}
		delete(b.subs, sub)
		close(sub)
	}()

	return sub
}

// Publish delivers payload to all current subscribers.
func (b *Broker[T]) Publish(payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	ev := Event[T]{Payload: payload, Time: time.Now()}
	for sub := range b.subs {
		select {
		case sub <- ev:
		default:
			// Subscriber is behind; drop rather than block the publisher.
		}
	}
}

// Close shuts the broker down and closes all subscriber channels.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}
