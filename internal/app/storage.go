package app

import (
	"context"
	"time"

	config "github.com/DRSN-tech/nest-store/internal/cfg"
	"github.com/DRSN-tech/nest-store/internal/repository/memory"
	"github.com/DRSN-tech/nest-store/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/nest-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/nest-store/internal/repository/redis"
	redisConv "github.com/DRSN-tech/nest-store/internal/repository/redis/converter"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/clients"
	"github.com/DRSN-tech/nest-store/pkg/closer"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/DRSN-tech/nest-store/pkg/postgres"
	"github.com/DRSN-tech/nest-store/pkg/tr"
	"github.com/jimlawless/whereami"
)

const redisPingTimeout = 5 * time.Second

// Storage — репозитории выбранного драйвера и транзакции над ними.
type Storage struct {
	Txm      usecase.TxManager
	Products usecase.ProductRepository
	Markers  usecase.MarkerRepository
	Carts    usecase.CartRepository
	Wishlist usecase.WishlistRepository
	Orders   usecase.OrderRepository
	Outbox   usecase.OutboxRepository

	// Ping проверяет доступность хранилища для health-check
	Ping func(ctx context.Context) error
	// DSN для LISTEN воркера outbox, пустой в режиме memory
	DSN  string
}

// OpenStorage подключает хранилище по STORE_DRIVER. В режиме postgres применяет миграции.
func OpenStorage(ctx context.Context, cfg *config.Config, log logger.Logger, cl *closer.Closer) (*Storage, error) {
	if cfg.Store.Driver == config.DriverMemory {
		log.Warnf("STORE_DRIVER=memory: data is kept in process and lost on restart")
		return memoryStorage(), nil
	}

	db, err := postgres.Connect(ctx, cfg.Db, log)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.AddFunc("postgres", db.Close)

	if err := db.RunMigrations(log, postgres.DefaultMigrations); err != nil {
		log.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Storage{
		Txm:      tr.NewManager(db.Pool),
		Products: pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter()),
		Markers:  pgdb.NewMarkerRepo(db.Pool),
		Carts:    pgdb.NewCartRepo(db.Pool, pgdbConv.NewCartItemConverter()),
		Wishlist: pgdb.NewWishlistRepo(db.Pool, pgdbConv.NewWishlistItemConverter()),
		Orders:   pgdb.NewOrderRepo(db.Pool, pgdbConv.NewOrderConverter()),
		Outbox:   pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter()),
		Ping:     db.Ping,
		DSN:      db.Dsn,
	}, nil
}

func memoryStorage() *Storage {
	store := memory.NewStore()
	return &Storage{
		Txm:      memory.NewTxManager(store),
		Products: memory.NewProductRepo(store),
		Markers:  memory.NewMarkerRepo(store),
		Carts:    memory.NewCartRepo(store),
		Wishlist: memory.NewWishlistRepo(store),
		Orders:   memory.NewOrderRepo(store),
		Outbox:   memory.NewOutboxEventRepo(store),
		Ping:     func(context.Context) error { return nil },
	}
}

// sharedState — лента изменений и кэш рейтинга.
type sharedState struct {
	feed    usecase.ChangeFeed
	ranking usecase.RankingCache
	// ping равен nil, если Redis не используется
	ping func(ctx context.Context) error
}

// openFeed выбирает ленту изменений и кэш рейтинга.
// С Redis лента общая для всех инстансов, без него работает только внутри процесса.
func openFeed(ctx context.Context, cfg *config.Config, log logger.Logger, cl *closer.Closer) (*sharedState, error) {
	if cfg.Redis == nil {
		log.Infof("REDIS_ADDR is not set, using in-process change feed")
		return &sharedState{
			feed:    live.NewLocalFeed(),
			ranking: memory.NewRankingCache(cfg.Store.RankingTTL),
		}, nil
	}

	client := clients.NewRedisClient(cfg.Redis)
	cl.Add("redis", func(context.Context) error { return client.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	feed := redis.NewChangeFeed(client, cfg.Redis.ChannelPrefix, log)
	if err := feed.Start(ctx); err != nil {
		log.Errorf(err, "failed to subscribe to change feed")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add("redis change feed", feed.Close)

	return &sharedState{
		feed:    feed,
		ranking: redis.NewRankingCache(client, redisConv.NewTallyConverter(), cfg.Store.RankingTTL, log),
		ping:    client.Ping,
	}, nil
}
