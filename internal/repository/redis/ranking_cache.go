package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/repository/redis/converter"
	"github.com/DRSN-tech/nest-store/pkg/clients"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const rankingKey = "wishlist:ranking"

// RankingCache хранит подсчет вишлистов в Redis одной JSON-записью с TTL.
type RankingCache struct {
	client *clients.RedisClient
	conv   converter.TallyConverter
	ttl    time.Duration
	logger logger.Logger
}

func NewRankingCache(client *clients.RedisClient, conv converter.TallyConverter,
	ttl time.Duration, logger logger.Logger) *RankingCache {
	return &RankingCache{
		client: client,
		conv:   conv,
		ttl:    ttl,
		logger: logger,
	}
}

// GetTallies возвращает закэшированный рейтинг. Битая запись удаляется и считается промахом.
func (c *RankingCache) GetTallies(ctx context.Context) ([]domain.ProductTally, bool, error) {
	data, err := c.client.Client.Get(ctx, rankingKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, false, nil // cache miss
		}
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.TallyRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(ctx, rankingKey).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false, nil
	}

	return c.conv.ToArrDomain(models), true, nil
}

func (c *RankingCache) SetTallies(ctx context.Context, tallies []domain.ProductTally) error {
	data, err := json.Marshal(c.conv.ToArrRedisModel(tallies))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, rankingKey, data, c.ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *RankingCache) InvalidateTallies(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, rankingKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
