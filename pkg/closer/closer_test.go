package closer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseRunsInReverseOrder(t *testing.T) {
	c := NewCloser(0)

	var order []string
	for _, name := range []string{"db", "redis", "http"} {
		c.AddFunc(name, func() { order = append(order, name) })
	}

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"http", "redis", "db"}, order)
}

func TestCloseCollectsErrorsAndRunsOnce(t *testing.T) {
	c := NewCloser(0)
	calls := 0
	c.Add("kafka", func(context.Context) error {
		calls++
		return errors.New("broker gone")
	})
	c.AddFunc("cache", func() { calls++ })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka: broker gone")

	assert.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 2, calls)
}

func TestCloseForcesRemainingAfterTimeout(t *testing.T) {
	c := NewCloser(100 * time.Millisecond)

	var (
		mu     sync.Mutex
		closed []string
	)
	mark := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		closed = append(closed, name)
	}

	c.AddFunc("db", func() { mark("db") })
	c.Add("stuck", func(ctx context.Context) error {
		<-ctx.Done()
		mark("stuck")
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interrupted after 0/2")

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, closed, "db")
}

func TestOnClosedReportsEachResource(t *testing.T) {
	c := NewCloser(0)
	var names []string
	c.OnClosed(func(name string, _ time.Duration, _ error) { names = append(names, name) })
	c.AddFunc("a", func() {})
	c.AddFunc("b", func() {})

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"b", "a"}, names)
}
