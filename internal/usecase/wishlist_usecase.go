package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
)

// ProductLookup — чтение товара из снимка каталога.
type ProductLookup interface {
	GetByID(id string) (domain.Product, bool)
}

// WishlistUseCase ведет вишлисты покупателей и денормализованный счетчик товара.
// Администратор вишлиста не имеет, анонимный посетитель должен войти.
type WishlistUseCase struct {
	wishlistRepo WishlistRepository
	productRepo  ProductRepository
	catalog      ProductLookup
	cache        RankingCache
	txm          TxManager
	logger       logger.Logger
	watcher

	snapshots *memberSnapshots
}

func NewWishlistUC(
	wishlistRepo WishlistRepository,
	productRepo ProductRepository,
	catalog ProductLookup,
	cache RankingCache,
	txm TxManager,
	feed ChangeFeed,
	logger logger.Logger,
) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		catalog:      catalog,
		cache:        cache,
		txm:          txm,
		logger:       logger,
		watcher:      newWatcher(feed, live.NewRegistry(), logger),
		snapshots:    newMemberSnapshots(maxIdleWishlists),
	}
}

// Stop закрывает все подписки на вишлисты.
func (w *WishlistUseCase) Stop() {
	w.registry.CloseAll()
}

// Toggle добавляет товар в вишлист или убирает его. Членство и счетчик товара меняются в одной транзакции.
// Для администратора операция ничего не делает.
func (w *WishlistUseCase) Toggle(ctx context.Context, identity domain.Identity, productID string) (*ToggleRes, error) {
	const op = "WishlistUseCase.Toggle"

	switch {
	case identity.IsAdmin():
		return &ToggleRes{}, nil
	case !identity.IsAuthenticated():
		return nil, e.Wrap(op, e.ErrLoginRequired)
	}

	userID := identity.ID
	res := &ToggleRes{}
	err := w.txm.Do(ctx, func(ctx context.Context) error {
		// блокировка товара сериализует конкурирующие переключения
		product, err := w.productRepo.GetForUpdate(ctx, productID)
		if err != nil && !errors.Is(err, e.ErrProductNotFound) {
			return err
		}

		member, existsErr := w.wishlistRepo.Exists(ctx, userID, productID)
		if existsErr != nil {
			return existsErr
		}

		if product == nil {
			// товар удален: устаревшее членство снимается, счетчика уже нет
			if member {
				return w.wishlistRepo.Remove(ctx, userID, productID)
			}
			return err
		}

		if member {
			if err := w.wishlistRepo.Remove(ctx, userID, productID); err != nil {
				return err
			}
			res.WishlistCount, err = w.productRepo.IncrementWishlistCount(ctx, productID, -1)
			return err
		}

		if err := w.wishlistRepo.Add(ctx, domain.NewWishlistItem(userID, product)); err != nil {
			return err
		}
		res.Member = true
		res.WishlistCount, err = w.productRepo.IncrementWishlistCount(ctx, productID, 1)
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	w.snapshots.set(userID, productID, res.Member)

	if err := w.cache.InvalidateTallies(ctx); err != nil {
		w.logger.Warnf("Failed to invalidate wishlist ranking: %v", e.Wrap(op, err))
	}

	w.publish(ctx, wishlistTopic(userID), TopicProducts)
	return res, nil
}

// IsMember проверяет членство по последнему загруженному снимку вишлиста.
func (w *WishlistUseCase) IsMember(identity domain.Identity, productID string) bool {
	if identity.IsAdmin() || !identity.IsAuthenticated() {
		return false
	}

	return w.snapshots.has(identity.ID, productID)
}

// List читает вишлист из хранилища и обновляет снимок.
func (w *WishlistUseCase) List(ctx context.Context, identity domain.Identity) ([]domain.WishlistItem, error) {
	const op = "WishlistUseCase.List"

	switch {
	case identity.IsAdmin():
		return []domain.WishlistItem{}, nil
	case !identity.IsAuthenticated():
		return nil, e.Wrap(op, e.ErrLoginRequired)
	}

	items, err := w.load(ctx, identity.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return items, nil
}

// Subscribe отдает вишлист сразу и после каждого изменения.
func (w *WishlistUseCase) Subscribe(ctx context.Context, identity domain.Identity, onChange func([]domain.WishlistItem)) (live.Subscription, error) {
	const op = "WishlistUseCase.Subscribe"

	switch {
	case identity.IsAdmin():
		return nil, e.Wrap(op, e.ErrForbidden)
	case !identity.IsAuthenticated():
		return nil, e.Wrap(op, e.ErrLoginRequired)
	}

	userID := identity.ID
	sub, err := w.watch(ctx, identity.Key(), wishlistTopic(userID), func(ctx context.Context) error {
		items, err := w.load(ctx, userID)
		if err != nil {
			return err
		}
		onChange(items)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	w.snapshots.acquire(userID)
	go func() {
		<-sub.Done()
		w.snapshots.release(userID)
	}()

	return sub, nil
}

// RankMostWished возвращает товары каталога по убыванию числа вишлистов, при равенстве по ID.
// Товары, которых уже нет в каталоге, пропускаются.
func (w *WishlistUseCase) RankMostWished(ctx context.Context, actor domain.Identity) ([]domain.MostWishedItem, error) {
	const op = "WishlistUseCase.RankMostWished"

	if !actor.IsAdmin() {
		return nil, e.Wrap(op, e.ErrForbidden)
	}

	tallies, err := w.tallies(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := make([]domain.MostWishedItem, 0, len(tallies))
	for _, t := range tallies {
		product, ok := w.catalog.GetByID(t.ProductID)
		if !ok {
			continue
		}
		res = append(res, domain.MostWishedItem{Product: product, WishlistCount: t.Count})
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].WishlistCount != res[j].WishlistCount {
			return res[i].WishlistCount > res[j].WishlistCount
		}
		return res[i].Product.ID < res[j].Product.ID
	})

	return res, nil
}

// tallies читает подсчет из кэша, при промахе считает по хранилищу и кладет в кэш.
func (w *WishlistUseCase) tallies(ctx context.Context) ([]domain.ProductTally, error) {
	const op = "WishlistUseCase.tallies"

	cached, ok, err := w.cache.GetTallies(ctx)
	if err != nil {
		w.logger.Warnf("Failed to read wishlist ranking from cache: %v", e.Wrap(op, err))
	}
	if ok {
		return cached, nil
	}

	tallies, err := w.wishlistRepo.CountByProduct(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := w.cache.SetTallies(ctx, tallies); err != nil {
		w.logger.Warnf("Failed to cache wishlist ranking: %v", e.Wrap(op, err))
	}

	return tallies, nil
}

func (w *WishlistUseCase) load(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	items, err := w.wishlistRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	members := make(map[string]struct{}, len(items))
	for _, item := range items {
		members[item.ProductID] = struct{}{}
	}

	w.snapshots.store(userID, members)

	return items, nil
}
