package app

import (
	"context"
	"errors"
	"testing"
	"time"

	config "github.com/DRSN-tech/nest-store/internal/cfg"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Store: &config.StoreCfg{
			Driver:      config.DriverMemory,
			RankingTTL:  time.Minute,
			SeedOnStart: true,
			OutboxPoll:  time.Second,
		},
		Auth: &config.AuthCfg{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Http: &config.HTTPConfig{Port: "0", ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second},
		Grpc: &config.GRPCConfig{Port: "0", NetworkMode: "tcp"},
	}
}

func TestNewAppMemoryDriver(t *testing.T) {
	a, err := NewApp(memoryConfig(), logger.Nop())
	require.NoError(t, err)

	require.Len(t, a.pings, 1)
	assert.NoError(t, a.pingStores(context.Background()))
	assert.Equal(t, int64(defaultMaxImageSize), a.maxImageSize())

	assert.NoError(t, a.shutdown())
}

func TestPingStoresStopsAtFirstFailure(t *testing.T) {
	calls := 0
	a := &App{pings: []func(context.Context) error{
		func(context.Context) error { calls++; return e.Store("postgres", errors.New("refused")) },
		func(context.Context) error { calls++; return nil },
	}}

	err := a.pingStores(context.Background())
	assert.ErrorIs(t, err, e.ErrStoreUnavailable)
	assert.Equal(t, 1, calls)
}

func TestMaxImageSizeFromConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Minio = &config.MinIOCfg{MaxImageSize: 1 << 20}

	a := &App{cfg: cfg}
	assert.Equal(t, int64(1<<20), a.maxImageSize())
}
