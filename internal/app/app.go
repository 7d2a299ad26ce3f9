package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/nest-store/internal/auth"
	config "github.com/DRSN-tech/nest-store/internal/cfg"
	v1Grpc "github.com/DRSN-tech/nest-store/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/nest-store/internal/delivery/v1/http"
	"github.com/DRSN-tech/nest-store/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/nest-store/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/nest-store/internal/repository/minio"
	"github.com/DRSN-tech/nest-store/internal/repository/pgdb"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/clients"
	"github.com/DRSN-tech/nest-store/pkg/closer"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	startupTimeout      = 30 * time.Second
	shutdownTimeout     = 15 * time.Second
	healthCheckInterval = 10 * time.Second
	kafkaTopicTimeout   = 10 * time.Second
	defaultMaxImageSize = 5 << 20
)

// App связывает хранилище, ленту изменений, usecase и серверы в один процесс.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	// ctx живет до начала остановки, на нем работают фоновые горутины
	ctx    context.Context
	cancel context.CancelFunc

	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	pings   []func(ctx context.Context) error
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
		ctx:    ctx,
		cancel: cancel,
	}
	a.closer.OnClosed(func(name string, took time.Duration, err error) {
		if err != nil {
			log.Errorf(err, "failed to close %s", name)
			return
		}
		log.Infof("%s closed in %s", name, took)
	})

	if err := a.init(); err != nil {
		cancel()
		_ = a.shutdown()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

// init собирает зависимости. Ресурсы регистрируются в closer в порядке, обратном остановке.
func (a *App) init() error {
	startCtx, cancel := context.WithTimeout(a.ctx, startupTimeout)
	defer cancel()

	store, err := OpenStorage(startCtx, a.cfg, a.logger, a.closer)
	if err != nil {
		return err
	}
	a.pings = append(a.pings, store.Ping)

	shared, err := openFeed(a.ctx, a.cfg, a.logger, a.closer)
	if err != nil {
		return err
	}
	if shared.ping != nil {
		a.pings = append(a.pings, shared.ping)
	}
	feed := shared.feed

	imagesInfra, err := a.initImages(startCtx)
	if err != nil {
		return err
	}

	encoder := kafka.NewEventEncoder()
	if err := a.initOutbox(store, feed); err != nil {
		return err
	}

	catalog := usecase.NewCatalogUC(store.Products, store.Markers, store.Txm, imagesInfra, feed, a.logger)
	if !a.cfg.Store.SeedOnStart {
		catalog.DisableSeed()
	}
	cart := usecase.NewCartUC(store.Carts, store.Products, store.Txm, feed, a.logger)
	wishlist := usecase.NewWishlistUC(store.Wishlist, store.Products, catalog, shared.ranking, store.Txm, feed, a.logger)
	orders := usecase.NewOrderUC(store.Orders, store.Carts, store.Outbox, encoder, store.Txm, feed, a.logger)

	if err := catalog.Start(startCtx); err != nil {
		a.logger.Errorf(err, "failed to load catalog")
		return err
	}

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger).Init(v1Http.Deps{
		Catalog:      catalog,
		Cart:         cart,
		Wishlist:     wishlist,
		Orders:       orders,
		Auth:         auth.NewAuthenticator(a.cfg.Auth),
		MaxImageSize: a.maxImageSize(),
	})

	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)
	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.closer.Add("grpc server", a.grpcSrv.Stop)
	a.closer.Add("http server", a.httpSrv.Stop)

	// потоки SSE держат HTTP-соединения, поэтому подписки закрываются раньше сервера
	a.closer.AddFunc("subscriptions", func() {
		catalog.Stop()
		cart.Stop()
		wishlist.Stop()
		orders.Stop()
	})

	return nil
}

// initImages подключает MinIO. Без MINIO_BUCKET_NAME товары создаются без загрузки изображений.
func (a *App) initImages(ctx context.Context) (usecase.ImagesInfra, error) {
	if !a.cfg.Minio.Enabled() {
		a.logger.Warnf("MinIO is not configured, product images are disabled")
		return nil, nil
	}

	client, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return nil, err
	}

	if err := clients.EnsureBucket(ctx, client, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return nil, err
	}

	infra := minioInfra.NewMinioInfrastructure(s3Repo.NewImageRepo(client, a.cfg.Minio.BucketName), a.cfg.Minio, a.logger, a.ctx)
	a.closer.Add("minio cleanup", infra.WaitForCleanup)

	return infra, nil
}

// initOutbox запускает доставку событий заказов в Kafka.
// Без KAFKA_BROKERS события копятся в outbox до следующего запуска с Kafka.
func (a *App) initOutbox(store *Storage, feed usecase.ChangeFeed) error {
	if a.cfg.Kafka == nil {
		a.logger.Warnf("KAFKA_BROKERS is not set, order events stay in outbox")
		return nil
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })

	if err := producer.EnsureTopic(kafkaTopicTimeout); err != nil {
		a.logger.Errorf(err, "failed to ensure kafka topic")
		return err
	}

	worker := kafka.NewOutboxWorker(store.Outbox, a.logger, producer, store.DSN, pgdb.OutboxChannel, a.cfg.Store.OutboxPoll)
	worker.Start(a.ctx)
	a.closer.AddFunc("outbox worker", worker.Stop)

	// в режиме memory нет LISTEN/NOTIFY, воркер будят оформления заказов
	if store.DSN == "" {
		a.closer.AddFunc("outbox wakeup", feed.Subscribe(usecase.TopicOrders, worker.Notify))
	}

	return nil
}

func (a *App) maxImageSize() int64 {
	if a.cfg.Minio != nil && a.cfg.Minio.MaxImageSize > 0 {
		return a.cfg.Minio.MaxImageSize
	}
	return defaultMaxImageSize
}

// pingStores проверяет все внешние хранилища. Инстанс без Redis не может раздавать ленту изменений.
func (a *App) pingStores(ctx context.Context) error {
	for _, ping := range a.pings {
		if err := ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Run запускает серверы и блокируется до сигнала остановки или ошибки сервера.
func (a *App) Run() error {
	errCh := make(chan error, 2)

	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			errCh <- e.Wrap("grpc server", err)
		}
	}()
	go a.grpcSrv.WatchStore(a.ctx, a.pingStores, healthCheckInterval)

	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			errCh <- e.Wrap("http server", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case sig := <-shutdown:
		a.logger.Infof("Received %s, stopping gracefully...", sig)
	}

	if err := a.shutdown(); err != nil && appErr == nil {
		appErr = err
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func (a *App) shutdown() error {
	a.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		return err
	}
	return nil
}
