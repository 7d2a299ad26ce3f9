package redis

import (
	"context"
	"strings"

	"github.com/DRSN-tech/nest-store/pkg/clients"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// ChangeFeed — лента изменений поверх Redis Pub/Sub.
// Все инстансы подписаны на prefix*, входящие сообщения раздаются локальным обработчикам.
type ChangeFeed struct {
	client *clients.RedisClient
	prefix string
	local  *live.LocalFeed
	logger logger.Logger

	pubsub *r.PubSub
	done   chan struct{}
}

func NewChangeFeed(client *clients.RedisClient, prefix string, logger logger.Logger) *ChangeFeed {
	return &ChangeFeed{
		client: client,
		prefix: prefix,
		local:  live.NewLocalFeed(),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start подписывается на каналы ленты и запускает раздачу сообщений.
func (f *ChangeFeed) Start(ctx context.Context) error {
	f.pubsub = f.client.Client.PSubscribe(ctx, f.prefix+"*")

	// ждем подтверждения подписки, иначе первые публикации могут потеряться
	if _, err := f.pubsub.Receive(ctx); err != nil {
		_ = f.pubsub.Close()
		return e.Wrap(whereami.WhereAmI(), err)
	}

	go f.run()
	return nil
}

func (f *ChangeFeed) run() {
	defer close(f.done)

	for msg := range f.pubsub.Channel() {
		topic := strings.TrimPrefix(msg.Channel, f.prefix)
		f.logger.Debugf("change feed: %s", topic)
		f.local.Dispatch(topic)
	}
}

func (f *ChangeFeed) Publish(ctx context.Context, topic string) error {
	if err := f.client.Client.Publish(ctx, f.prefix+topic, topic).Err(); err != nil {
		return e.Store(whereami.WhereAmI(), err)
	}

	return nil
}

func (f *ChangeFeed) Subscribe(topic string, fn func()) func() {
	return f.local.Subscribe(topic, fn)
}

// Close закрывает подписку и дожидается остановки раздачи.
func (f *ChangeFeed) Close(ctx context.Context) error {
	if f.pubsub == nil {
		return nil
	}

	if err := f.pubsub.Close(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return e.Wrap(whereami.WhereAmI(), ctx.Err())
	}
}
