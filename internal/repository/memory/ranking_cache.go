package memory

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
)

// RankingCache — кэш рейтинга вишлистов с TTL для режима без Redis.
type RankingCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	tallies   []domain.ProductTally
	expiresAt time.Time
	now       func() time.Time
}

func NewRankingCache(ttl time.Duration) *RankingCache {
	return &RankingCache{ttl: ttl, now: time.Now}
}

func (c *RankingCache) GetTallies(context.Context) ([]domain.ProductTally, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tallies == nil || !c.now().Before(c.expiresAt) {
		return nil, false, nil
	}

	return append([]domain.ProductTally(nil), c.tallies...), true, nil
}

func (c *RankingCache) SetTallies(_ context.Context, tallies []domain.ProductTally) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tallies = append(make([]domain.ProductTally, 0, len(tallies)), tallies...)
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

func (c *RankingCache) InvalidateTallies(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tallies = nil
	return nil
}
