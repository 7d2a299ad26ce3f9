package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
)

// reloadTimeout ограничивает перечитывание данных по событию ленты.
const reloadTimeout = 5 * time.Second

// watcher связывает ленту изменений с реестром подписок: на каждое событие topic
// данные перечитываются и отдаются подписчику.
type watcher struct {
	feed     ChangeFeed
	registry *live.Registry
	logger   logger.Logger
}

func newWatcher(feed ChangeFeed, registry *live.Registry, logger logger.Logger) watcher {
	return watcher{
		feed:     feed,
		registry: registry,
		logger:   logger,
	}
}

// watch снимает предыдущую подписку scope, подписывается на topic и сразу отдает текущее состояние.
// После возврата Unsubscribe push больше не вызывается, поэтому push не должен сам вызывать Unsubscribe.
func (w *watcher) watch(ctx context.Context, scope, topic string, push func(ctx context.Context) error) (live.Subscription, error) {
	w.registry.Drop(scope)

	var (
		mu     sync.Mutex
		closed bool
	)
	cancel := w.feed.Subscribe(topic, func() {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}

		reloadCtx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()

		if err := push(reloadCtx); err != nil {
			w.logger.Warnf("Failed to reload %s for %s: %v", topic, scope, err)
		}
	})

	var sub live.Subscription
	sub = live.NewSubscription(func() {
		cancel()
		mu.Lock()
		closed = true
		mu.Unlock()
		w.registry.Forget(scope, sub)
	})

	mu.Lock()
	err := push(ctx)
	mu.Unlock()
	if err != nil {
		sub.Unsubscribe()
		return nil, err
	}

	w.registry.Replace(scope, sub)
	return sub, nil
}

// publish уведомляет об изменении после коммита. Ошибка ленты не откатывает запись.
func (w *watcher) publish(ctx context.Context, topics ...string) {
	for _, topic := range topics {
		if err := w.feed.Publish(ctx, topic); err != nil {
			w.logger.Warnf("Failed to publish change of %s: %v", topic, err)
		}
	}
}
