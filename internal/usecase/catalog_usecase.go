package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/google/uuid"
)

// CatalogUseCase держит снимок каталога в памяти и обновляет его по ленте изменений.
// Чтение витрины идет из снимка, записи администратора идут в хранилище.
type CatalogUseCase struct {
	productRepo ProductRepository
	markerRepo  MarkerRepository
	txm         TxManager
	imagesInfra ImagesInfra
	feed        ChangeFeed
	logger      logger.Logger

	// bus уведомляет подписчиков уже после обновления снимка
	bus  *live.LocalFeed
	subs watcher

	refreshMu sync.Mutex
	mu        sync.RWMutex
	snapshot  []domain.Product
	stopFeed  func()
	seed      []domain.Product
}

func NewCatalogUC(
	productRepo ProductRepository,
	markerRepo MarkerRepository,
	txm TxManager,
	imagesInfra ImagesInfra,
	feed ChangeFeed,
	logger logger.Logger,
) *CatalogUseCase {
	bus := live.NewLocalFeed()
	return &CatalogUseCase{
		productRepo: productRepo,
		markerRepo:  markerRepo,
		txm:         txm,
		imagesInfra: imagesInfra,
		feed:        feed,
		logger:      logger,
		bus:         bus,
		subs:        newWatcher(bus, live.NewRegistry(), logger),
		seed:        domain.DefaultCatalog(),
	}
}

// DisableSeed отключает начальное заполнение каталога в Start.
func (c *CatalogUseCase) DisableSeed() {
	c.seed = nil
}

// Start заполняет пустой каталог при первом запуске, загружает снимок и подписывается на изменения.
func (c *CatalogUseCase) Start(ctx context.Context) error {
	const op = "CatalogUseCase.Start"

	if c.seed != nil {
		seeded, err := c.SeedIfEmpty(ctx, c.seed)
		if err != nil {
			return e.Wrap(op, err)
		}
		if seeded {
			c.logger.Infof("Catalog seeded with default products")
		}
	}

	c.stopFeed = c.feed.Subscribe(TopicProducts, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()

		if err := c.Refresh(ctx); err != nil {
			c.logger.Warnf("Failed to refresh catalog snapshot: %v", err)
		}
	})

	if err := c.Refresh(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Stop отписывается от ленты и закрывает все подписки витрины.
func (c *CatalogUseCase) Stop() {
	if c.stopFeed != nil {
		c.stopFeed()
	}
	c.subs.registry.CloseAll()
}

// Refresh перечитывает каталог и уведомляет подписчиков.
func (c *CatalogUseCase) Refresh(ctx context.Context) error {
	const op = "CatalogUseCase.Refresh"

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	products, err := c.productRepo.List(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	sortByName(products)

	c.mu.Lock()
	c.snapshot = products
	c.mu.Unlock()

	c.bus.Dispatch(TopicProducts)
	return nil
}

// sortByName упорядочивает витрину по названию без учета регистра, при равных названиях по id.
func sortByName(products []domain.Product) {
	slices.SortStableFunc(products, func(a, b domain.Product) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// List возвращает товары снимка, подходящие под фильтр, по названию.
func (c *CatalogUseCase) List(filter domain.ProductFilter) []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]domain.Product, 0, len(c.snapshot))
	for i := range c.snapshot {
		if filter.Match(&c.snapshot[i]) {
			res = append(res, c.snapshot[i])
		}
	}

	return res
}

// GetByID ищет товар в снимке.
func (c *CatalogUseCase) GetByID(id string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.snapshot {
		if p.ID == id {
			return p, true
		}
	}

	return domain.Product{}, false
}

// Subscribe отдает отфильтрованный каталог сразу и после каждого обновления снимка.
func (c *CatalogUseCase) Subscribe(ctx context.Context, identity domain.Identity, filter domain.ProductFilter, onChange func([]domain.Product)) (live.Subscription, error) {
	return c.subs.watch(ctx, identity.Key(), TopicProducts, func(context.Context) error {
		onChange(c.List(filter))
		return nil
	})
}

// SeedIfEmpty заполняет каталог один раз за все время жизни хранилища.
// Если маркер уже стоит, ничего не делает. Если товары есть, а маркера нет, только ставит маркер.
func (c *CatalogUseCase) SeedIfEmpty(ctx context.Context, products []domain.Product) (bool, error) {
	const op = "CatalogUseCase.SeedIfEmpty"

	var seeded bool
	err := c.txm.Do(ctx, func(ctx context.Context) error {
		if err := c.markerRepo.Lock(ctx, domain.CatalogSeededMarker); err != nil {
			return err
		}

		done, err := c.markerRepo.Exists(ctx, domain.CatalogSeededMarker)
		if err != nil || done {
			return err
		}

		count, err := c.productRepo.Count(ctx)
		if err != nil {
			return err
		}

		if count == 0 {
			now := time.Now().UTC()
			for i := range products {
				p := products[i]
				p.CreatedAt = now
				if _, err := c.productRepo.Create(ctx, &p); err != nil {
					return err
				}
			}
			seeded = true
		}

		return c.markerRepo.Set(ctx, domain.CatalogSeededMarker)
	})
	if err != nil {
		return false, e.Wrap(op, err)
	}

	if seeded {
		c.publishChange(ctx)
	}

	return seeded, nil
}

// Create добавляет товар. Изображение загружается до транзакции и удаляется, если запись не удалась.
func (c *CatalogUseCase) Create(ctx context.Context, actor domain.Identity, req *CreateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.Create"

	if !actor.IsAdmin() {
		return nil, e.Wrap(op, e.ErrForbidden)
	}

	product := domain.Product{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		HasDiscount:        req.HasDiscount,
		OriginalPrice:      req.OriginalPrice,
		DiscountPercentage: req.DiscountPercentage,
		Stock:              req.Stock,
		Category:           req.Category,
		Audience:           req.Audience,
		Featured:           req.Featured,
		ImageURL:           req.ImageURL,
		CreatedAt:          time.Now().UTC(),
	}
	product.Normalize()

	if err := product.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}
	if req.Image == nil {
		if err := product.RequireImage(); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	uploaded, err := c.uploadImage(ctx, product.Name, req.Image)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if uploaded != nil {
		product.ImageURL = uploaded.URL
	}

	var created *domain.Product
	err = c.txm.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = c.productRepo.Create(ctx, &product)
		return err
	})
	if err != nil {
		c.cleanupImage(uploaded, product.Name, err)
		return nil, e.Wrap(op, err)
	}

	c.publishChange(ctx)
	return created, nil
}

// Update сливает patch с текущим товаром под блокировкой строки и проверяет результат целиком.
func (c *CatalogUseCase) Update(ctx context.Context, actor domain.Identity, id string, req *UpdateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.Update"

	if !actor.IsAdmin() {
		return nil, e.Wrap(op, e.ErrForbidden)
	}

	patch := req.Patch
	uploaded, err := c.uploadImage(ctx, id, req.Image)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if uploaded != nil {
		patch.ImageURL = &uploaded.URL
	}

	var updated *domain.Product
	err = c.txm.Do(ctx, func(ctx context.Context) error {
		current, err := c.productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		merged := current.Apply(patch)
		if err := merged.Validate(); err != nil {
			return err
		}
		if err := merged.RequireImage(); err != nil {
			return err
		}

		updated, err = c.productRepo.Update(ctx, &merged)
		return err
	})
	if err != nil {
		c.cleanupImage(uploaded, id, err)
		return nil, e.Wrap(op, err)
	}

	c.publishChange(ctx)
	return updated, nil
}

// Delete удаляет товар. Позиции корзин и вишлистов с этим товаром остаются и обрабатываются при следующем обращении.
func (c *CatalogUseCase) Delete(ctx context.Context, actor domain.Identity, id string) error {
	const op = "CatalogUseCase.Delete"

	if !actor.IsAdmin() {
		return e.Wrap(op, e.ErrForbidden)
	}

	err := c.txm.Do(ctx, func(ctx context.Context) error {
		return c.productRepo.Delete(ctx, id)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	c.publishChange(ctx)
	return nil
}

func (c *CatalogUseCase) publishChange(ctx context.Context) {
	if err := c.feed.Publish(ctx, TopicProducts); err != nil {
		c.logger.Warnf("Failed to publish catalog change: %v", err)
	}
}

func (c *CatalogUseCase) uploadImage(ctx context.Context, name string, image *ProductImage) (*UploadImageRes, error) {
	if image == nil {
		return nil, nil
	}
	if c.imagesInfra == nil {
		return nil, fmt.Errorf("%w: image storage is not configured", e.ErrUploadFailed)
	}

	res, err := c.imagesInfra.UploadImage(ctx, NewUploadImageReq(name, *image))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", e.ErrUploadFailed, err)
	}

	return res, nil
}

func (c *CatalogUseCase) cleanupImage(uploaded *UploadImageRes, name string, cause error) {
	if uploaded == nil || c.imagesInfra == nil {
		return
	}

	c.logger.Warnf("Cleaning up orphaned image after failed write. product: %s, error: %v", name, cause)
	c.imagesInfra.CleanupImages([]string{uploaded.Key})
}
