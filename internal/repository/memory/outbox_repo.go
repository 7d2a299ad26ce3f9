package memory

import (
	"context"
	"time"

	"github.com/DRSN-tech/nest-store/internal/usecase"
)

type OutboxEventRepo struct {
	store *Store
}

func NewOutboxEventRepo(store *Store) *OutboxEventRepo {
	return &OutboxEventRepo{store: store}
}

func (r *OutboxEventRepo) Create(ctx context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	var res usecase.OutboxEvent
	err := r.store.run(ctx, func() error {
		r.store.outboxSeq++
		res = *event
		res.ID = r.store.outboxSeq
		res.Status = usecase.Pending
		if res.CreatedAt.IsZero() {
			res.CreatedAt = time.Now().UTC()
		}
		r.store.outbox = append(r.store.outbox, res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

// GetAndMarkAsProcessing забирает до limit ожидающих событий в порядке записи.
func (r *OutboxEventRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	var res []*usecase.OutboxEvent
	err := r.store.run(ctx, func() error {
		for i := range r.store.outbox {
			if len(res) == limit {
				break
			}
			if r.store.outbox[i].Status != usecase.Pending {
				continue
			}
			r.store.outbox[i].Status = usecase.Processing
			event := r.store.outbox[i]
			res = append(res, &event)
		}
		return nil
	})
	return res, err
}

func (r *OutboxEventRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return r.setStatus(ctx, id, usecase.Processing, usecase.Processed)
}

func (r *OutboxEventRepo) ReturnToPending(ctx context.Context, id int64) error {
	return r.setStatus(ctx, id, usecase.Processing, usecase.Pending)
}

func (r *OutboxEventRepo) MarkAsFailed(ctx context.Context, id int64) error {
	return r.setStatus(ctx, id, usecase.Processing, usecase.Failed)
}

// Pending возвращает число еще не отправленных событий без учета отклоненных.
func (r *OutboxEventRepo) Pending(ctx context.Context) (int, error) {
	var n int
	err := r.store.run(ctx, func() error {
		for _, ev := range r.store.outbox {
			if ev.Status == usecase.Pending || ev.Status == usecase.Processing {
				n++
			}
		}
		return nil
	})
	return n, err
}

// Failed возвращает число отклоненных брокером событий.
func (r *OutboxEventRepo) Failed(ctx context.Context) (int, error) {
	var n int
	err := r.store.run(ctx, func() error {
		for _, ev := range r.store.outbox {
			if ev.Status == usecase.Failed {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *OutboxEventRepo) setStatus(ctx context.Context, id int64, from, to usecase.OutboxStatus) error {
	return r.store.run(ctx, func() error {
		for i := range r.store.outbox {
			ev := &r.store.outbox[i]
			if ev.ID != id || ev.Status != from {
				continue
			}
			ev.Status = to
			if to == usecase.Processed {
				now := time.Now().UTC()
				ev.ProcessedAt = &now
			}
			return nil
		}
		// событие уже обработано или не существует
		return nil
	})
}
