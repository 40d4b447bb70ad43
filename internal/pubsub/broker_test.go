package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroker_PublishReachesSubscriber(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := b.Subscribe(ctx)

	b.Publish("hello")

	select {
	case ev := <-sub:
		require.Equal(t, "hello", ev.Payload)
		require.False(t, ev.Time.IsZero())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroker_FansOutToAllSubscribers(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	first := b.Subscribe(ctx)
	second := b.Subscribe(ctx)

	b.Publish(42)

	for _, sub := range []<-chan Event[int]{first, second} {
		select {
		case ev := <-sub:
			require.Equal(t, 42, ev.Payload)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBroker_PublishNeverBlocks(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := b.Subscribe(ctx)

	// Far more events than the subscriber buffer holds; the excess drops.
	for i := 0; i < defaultBufferSize*3; i++ {
		b.Publish(i)
	}

	received := 0
	for {
		select {
		case <-sub:
			received++
		default:
			require.Equal(t, defaultBufferSize, received, "buffer fills, the rest drop")
			return
		}
	}
}

func TestBroker_CancelClosesSubscription(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-sub:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond, "cancelled subscription channel must close")
}

func TestBroker_CloseClosesAllSubscribers(t *testing.T) {
	b := NewBroker[int]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := b.Subscribe(ctx)

	b.Close()

	_, ok := <-sub
	require.False(t, ok)
}

func TestBroker_PublishAfterCloseIsNoop(t *testing.T) {
	b := NewBroker[int]()
	b.Close()
	b.Publish(1) // must not panic
	b.Close()    // idempotent
}

func TestBroker_SubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	b := NewBroker[int]()
	b.Close()

	sub := b.Subscribe(context.Background())
	_, ok := <-sub
	require.False(t, ok)
}

func TestListenCmd_DeliversEvent(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewListener(ctx, b)

	b.Publish("ping")

	msg := l.Listen()()
	ev, ok := msg.(Event[string])
	require.True(t, ok, "expected an Event message, got %T", msg)
	require.Equal(t, "ping", ev.Payload)
}

func TestListenCmd_NilOnCancel(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	l := NewListener(ctx, b)
	cancel()

	require.Nil(t, l.Listen()())
}
