package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/nest-store/internal/repository/memory"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	mu   sync.Mutex
	fail error
	sent []usecase.WriteRawMessageReq
}

func (p *fakeProducer) WriteRawMessage(_ context.Context, req *usecase.WriteRawMessageReq) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.sent = append(p.sent, *req)
	return nil
}

func (p *fakeProducer) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := make([]string, 0, len(p.sent))
	for _, m := range p.sent {
		res = append(res, m.Key)
	}
	return res
}

func seedOutbox(t *testing.T, repo *memory.OutboxEventRepo, orderIDs ...string) {
	t.Helper()
	for i, id := range orderIDs {
		_, err := repo.Create(context.Background(), usecase.NewOutboxEvent(
			"evt-"+id+"-"+string(rune('a'+i)), usecase.OrderCreated, id, []byte(id),
		))
		require.NoError(t, err)
	}
}

func TestProcessBatchDeliversInOrder(t *testing.T) {
	repo := memory.NewOutboxEventRepo(memory.NewStore())
	producer := &fakeProducer{}
	worker := NewOutboxWorker(repo, logger.Nop(), producer, "", "outbox_pending", time.Second)
	worker.batchSize = 2

	seedOutbox(t, repo, "o-1", "o-2", "o-3")

	hasMore, err := worker.processBatch(context.Background())
	require.NoError(t, err)
	assert.True(t, hasMore)

	hasMore, err = worker.processBatch(context.Background())
	require.NoError(t, err)
	assert.False(t, hasMore)

	assert.Equal(t, []string{"o-1", "o-2", "o-3"}, producer.keys())

	pending, err := repo.Pending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestProcessBatchReturnsFailedEventsToPending(t *testing.T) {
	repo := memory.NewOutboxEventRepo(memory.NewStore())
	producer := &fakeProducer{fail: errors.New("dial tcp: connection refused")}
	worker := NewOutboxWorker(repo, logger.Nop(), producer, "", "outbox_pending", time.Second)

	seedOutbox(t, repo, "o-1", "o-2")

	hasMore, err := worker.processBatch(context.Background())
	require.NoError(t, err)
	assert.False(t, hasMore)
	assert.Equal(t, 1, worker.failures)
	assert.Greater(t, worker.nextDelay(), time.Second)

	// оба события снова доступны для отправки
	producer.fail = nil
	_, err = worker.processBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"o-1", "o-2"}, producer.keys())
	assert.Zero(t, worker.failures)
}

func TestProcessBatchMarksRejectedEventsFailed(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOutboxEventRepo(memory.NewStore())
	producer := &fakeProducer{fail: errors.New("message too large")}
	worker := NewOutboxWorker(repo, logger.Nop(), producer, "", "outbox_pending", time.Second)

	seedOutbox(t, repo, "o-1", "o-2")

	hasMore, err := worker.processBatch(ctx)
	require.NoError(t, err)
	assert.False(t, hasMore)
	assert.Zero(t, worker.failures)

	failed, err := repo.Failed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, failed)

	// отклоненные события не блокируют очередь
	producer.fail = nil
	seedOutbox(t, repo, "o-3")
	_, err = worker.processBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"o-3"}, producer.keys())

	pending, err := repo.Pending(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestProcessBatchKeepsEventsOnCancel(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOutboxEventRepo(memory.NewStore())
	producer := &fakeProducer{fail: context.Canceled}
	worker := NewOutboxWorker(repo, logger.Nop(), producer, "", "outbox_pending", time.Second)

	seedOutbox(t, repo, "o-1")

	_, err := worker.processBatch(ctx)
	require.NoError(t, err)

	failed, err := repo.Failed(ctx)
	require.NoError(t, err)
	assert.Zero(t, failed)

	pending, err := repo.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}

func TestOutboxWorkerNotify(t *testing.T) {
	repo := memory.NewOutboxEventRepo(memory.NewStore())
	producer := &fakeProducer{}
	worker := NewOutboxWorker(repo, logger.Nop(), producer, "", "outbox_pending", time.Hour)

	worker.Start(context.Background())
	defer worker.Stop()

	seedOutbox(t, repo, "o-9")
	worker.Notify()

	assert.Eventually(t, func() bool {
		return len(producer.keys()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("read: Connection Reset by peer")))
	assert.False(t, isRetryableError(errors.New("message too large")))
	assert.False(t, isRetryableError(nil))
	assert.True(t, isRetryableError(fmt.Errorf("write: %w", context.DeadlineExceeded)))
}
