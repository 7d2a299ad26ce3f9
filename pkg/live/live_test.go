package live

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionUnsubscribeIsIdempotent(t *testing.T) {
	calls := 0
	sub := NewSubscription(func() { calls++ })

	sub.Unsubscribe()
	sub.Unsubscribe()

	assert.Equal(t, 1, calls)
	select {
	case <-sub.Done():
	default:
		t.Fatal("done channel must be closed after unsubscribe")
	}
}

func TestRegistryReplaceTearsDownPrevious(t *testing.T) {
	reg := NewRegistry()
	var first, second int
	s1 := NewSubscription(func() { first++ })
	s2 := NewSubscription(func() { second++ })

	reg.Replace("cart:1", s1)
	reg.Replace("cart:1", s2)

	assert.Equal(t, 1, first)
	assert.Equal(t, 0, second)
	assert.Equal(t, 1, reg.Active())

	// Release старой подписки не должен снимать новую
	reg.Release("cart:1", s1)
	assert.Equal(t, 1, reg.Active())

	reg.Release("cart:1", s2)
	assert.Equal(t, 1, second)
	assert.Equal(t, 0, reg.Active())
}

func TestRegistryCloseAll(t *testing.T) {
	reg := NewRegistry()
	closed := 0
	reg.Replace("a", NewSubscription(func() { closed++ }))
	reg.Replace("b", NewSubscription(func() { closed++ }))

	reg.CloseAll()

	assert.Equal(t, 2, closed)
	assert.Equal(t, 0, reg.Active())
}

func TestLocalFeedPublishAndUnsubscribe(t *testing.T) {
	feed := NewLocalFeed()
	got := 0
	cancel := feed.Subscribe("products", func() { got++ })

	require.NoError(t, feed.Publish(context.Background(), "products"))
	require.NoError(t, feed.Publish(context.Background(), "orders"))
	assert.Equal(t, 1, got)

	cancel()
	cancel()
	require.NoError(t, feed.Publish(context.Background(), "products"))
	assert.Equal(t, 1, got)
	assert.Equal(t, 0, feed.Topics())
}

func TestLocalFeedHandlerMayUnsubscribeItself(t *testing.T) {
	feed := NewLocalFeed()
	got := 0
	var cancel func()
	cancel = feed.Subscribe("orders", func() {
		got++
		cancel()
	})

	feed.Dispatch("orders")
	feed.Dispatch("orders")

	assert.Equal(t, 1, got)
}

func TestRegistryDrop(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	reg.Replace("anonymous:c1", NewSubscription(func() { calls++ }))

	reg.Drop("anonymous:c1")
	reg.Drop("anonymous:c1")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, reg.Active())
}

func TestRegistryForgetKeepsReplacement(t *testing.T) {
	reg := NewRegistry()
	first := NewSubscription(nil)
	second := NewSubscription(nil)
	reg.Replace("customer:u1", first)
	reg.Replace("customer:u1", second)

	reg.Forget("customer:u1", first)
	assert.Equal(t, 1, reg.Active())

	reg.Forget("customer:u1", second)
	assert.Equal(t, 0, reg.Active())

	select {
	case <-second.Done():
		t.Fatal("forget must not close subscription")
	default:
	}
}
