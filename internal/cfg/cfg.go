package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/jimlawless/whereami"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Store *StoreCfg
	Auth  *AuthCfg
	Minio *MinIOCfg
	Http  *HTTPConfig
	Grpc  *GRPCConfig
	Db    *PGDBCfg  // nil при STORE_DRIVER=memory
	Redis *RedisCfg // nil при STORE_DRIVER=memory без REDIS_ADDR
	Kafka *KafkaCfg // nil, если KAFKA_BROKERS не задан
}

type StoreCfg struct {
	Driver      string
	RankingTTL  time.Duration // время жизни кэша рейтинга вишлистов
	SeedOnStart bool
	OutboxPoll  time.Duration // интервал опроса outbox без LISTEN/NOTIFY
}

type AuthCfg struct {
	JWTSecret  string
	AdminEmail string
	TokenTTL   time.Duration // срок жизни токенов, выпускаемых nestctl
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Название бакета с изображениями товаров
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	PublicURL         string // базовый URL, по которому изображения отдаются клиентам
	MaxImageSize      int64  // байты
}

// Enabled сообщает, настроено ли хранилище изображений.
func (c *MinIOCfg) Enabled() bool {
	return c != nil && c.BucketName != ""
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCfg struct {
	Addr          string
	Password      string
	User          string
	DB            int
	MaxRetries    int
	DialTimeout   time.Duration
	Timeout       time.Duration
	ChannelPrefix string // префикс каналов Pub/Sub ленты изменений
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	store, err := loadStoreCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	auth, err := loadAuthCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	config := &Config{
		Store: store,
		Auth:  auth,
		Minio: minio,
		Http:  http,
		Grpc:  loadGRPCConfig(),
		Kafka: kafka,
	}

	if store.Driver == DriverPostgres || getEnv("REDIS_ADDR") != "" {
		if config.Redis, err = loadRedisCfg(log); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	if store.Driver == DriverPostgres {
		if config.Db, err = LoadPGDBCfg(log); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return config, nil
}

func loadStoreCfg(log logger.Logger) (*StoreCfg, error) {
	const (
		defaultRankingTTL = time.Minute
		defaultOutboxPoll = 2 * time.Second
	)

	driver := strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverPostgres))
	if driver != DriverPostgres && driver != DriverMemory {
		err := fmt.Errorf("%w: STORE_DRIVER must be %q or %q, got %q", e.ErrIncorrectEnvVariable, DriverPostgres, DriverMemory, driver)
		log.Errorf(err, "invalid STORE_DRIVER")
		return nil, err
	}

	rankingTTL, err := parseDurationEnv("RANKING_TTL", defaultRankingTTL)
	if err != nil {
		log.Errorf(err, "invalid RANKING_TTL")
		return nil, err
	}

	outboxPoll, err := parseDurationEnv("OUTBOX_POLL_INTERVAL", defaultOutboxPoll)
	if err != nil {
		log.Errorf(err, "invalid OUTBOX_POLL_INTERVAL")
		return nil, err
	}

	seed, err := strconv.ParseBool(getEnvOrDefault("SEED_ON_START", "true"))
	if err != nil {
		log.Errorf(err, "invalid SEED_ON_START")
		return nil, err
	}

	return &StoreCfg{
		Driver:      driver,
		RankingTTL:  rankingTTL,
		SeedOnStart: seed,
		OutboxPoll:  outboxPoll,
	}, nil
}

// LoadAuthCfg загружает настройки JWT. Используется и сервером, и nestctl.
func LoadAuthCfg(log logger.Logger) (*AuthCfg, error) {
	return loadAuthCfg(log)
}

func loadAuthCfg(log logger.Logger) (*AuthCfg, error) {
	const defaultTokenTTL = 24 * time.Hour

	secret := getEnv("JWT_SECRET")
	if secret == "" {
		err := fmt.Errorf("JWT_SECRET is required")
		log.Errorf(err, "missing JWT_SECRET")
		return nil, err
	}

	tokenTTL, err := parseDurationEnv("TOKEN_TTL", defaultTokenTTL)
	if err != nil {
		log.Errorf(err, "invalid TOKEN_TTL")
		return nil, err
	}

	return &AuthCfg{
		JWTSecret:  secret,
		AdminEmail: strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL"))),
		TokenTTL:   tokenTTL,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultTopic             = "nest.orders"
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}
	brokers := strings.Split(brokerStr, ",")

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL       = false
		defaultEndpoint     = "minio:9000"
		defaultMaxImageSize = 5 << 20
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	maxSize, err := parseIntEnv("MAX_IMAGE_SIZE", defaultMaxImageSize)
	if err != nil {
		log.Errorf(err, "invalid MAX_IMAGE_SIZE")
		return nil, err
	}

	endpoint := getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint)
	bucket := getEnv("BUCKET_NAME")

	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	publicURL := getEnvOrDefault("MINIO_PUBLIC_URL", fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket))

	return &MinIOCfg{
		MinioEndpoint:     endpoint,
		BucketName:        bucket,
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		PublicURL:         strings.TrimRight(publicURL, "/"),
		MaxImageSize:      int64(maxSize),
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	// SSE-потоки держат соединение открытым, поэтому 0 отключает таймаут записи
	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

// LoadPGDBCfg загружает параметры подключения к PostgreSQL.
func LoadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr          = "localhost:6379"
		defaultDB            = 0
		defaultMaxRetries    = 3
		defaultDialTimeout   = 5 * time.Second
		defaultReadTimeout   = 3 * time.Second
		defaultWriteTimeout  = 3 * time.Second
		defaultChannelPrefix = "nest:"
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	return &RedisCfg{
		Addr:          getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:      getEnv("REDIS_PASSWORD"),
		User:          getEnv("REDIS_USER"),
		DB:            db,
		MaxRetries:    maxRetries,
		DialTimeout:   dialTimeout,
		Timeout:       max(readTimeout, writeTimeout),
		ChannelPrefix: getEnvOrDefault("REDIS_CHANNEL_PREFIX", defaultChannelPrefix),
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
