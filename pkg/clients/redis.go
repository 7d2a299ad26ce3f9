package clients

import (
	"context"

	"github.com/DRSN-tech/nest-store/internal/cfg"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const redisClientName = "nest-store"

// RedisClient держит кэш рейтинга вишлистов и канал ленты изменений.
type RedisClient struct {
	Client *r.Client
}

func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	client := r.NewClient(&r.Options{
		Addr:       cfg.Addr,
		ClientName: redisClientName,
		Username:   cfg.User,
		Password:   cfg.Password,
		DB:         cfg.DB,
		MaxRetries: cfg.MaxRetries,

		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		// дедлайны из ctx (health-check, запросы) важнее таймаутов клиента
		ContextTimeoutEnabled: true,
	})

	return &RedisClient{Client: client}
}

// Ping проверяет соединение. Ошибка помечается как недоступность хранилища.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Store(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}
