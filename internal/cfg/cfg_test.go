package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMemoryDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_EMAIL", " Admin@Nest.Test ")
	t.Setenv("RANKING_TTL", "30s")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("BUCKET_NAME", "")

	config, err := Load(logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, config.Store.Driver)
	assert.Equal(t, 30*time.Second, config.Store.RankingTTL)
	assert.True(t, config.Store.SeedOnStart)
	assert.Equal(t, "admin@nest.test", config.Auth.AdminEmail)
	assert.Nil(t, config.Db)
	assert.Nil(t, config.Redis)
	assert.Nil(t, config.Kafka)
	assert.False(t, config.Minio.Enabled())
}

func TestLoadPostgresRequiresCredentials(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("POSTGRES_USER", "")

	_, err := Load(logger.Nop())
	assert.Error(t, err)

	t.Setenv("POSTGRES_USER", "nest")
	t.Setenv("POSTGRES_PASSWORD", "nest")
	t.Setenv("POSTGRES_DB", "nest")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	config, err := Load(logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, config.Db)
	require.NotNil(t, config.Redis)
	assert.Equal(t, "nest:", config.Redis.ChannelPrefix)
	require.NotNil(t, config.Kafka)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "nest.orders", config.Kafka.Topic)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load(logger.Nop())
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "")

	_, err := Load(logger.Nop())
	assert.Error(t, err)
}

func TestMinIOPublicURL(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "cdn.local:9000")
	t.Setenv("BUCKET_NAME", "products")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_PUBLIC_URL", "")

	config, err := loadMinIOCfg(logger.Nop())
	require.NoError(t, err)
	assert.True(t, config.Enabled())
	assert.Equal(t, "https://cdn.local:9000/products", config.PublicURL)

	t.Setenv("MINIO_PUBLIC_URL", "https://img.nest.test/")
	config, err = loadMinIOCfg(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "https://img.nest.test", config.PublicURL)
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	v, err := parseIntEnv("SOME_INT", 7)
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
	assert.Equal(t, 7, v)
}
