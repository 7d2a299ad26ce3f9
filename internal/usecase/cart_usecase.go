package usecase

import (
	"context"
	"errors"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
)

// CartUseCase держит корзину идентичности согласованной с остатками товаров.
// Все чтения товара для записи в корзину идут под блокировкой строки товара.
type CartUseCase struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	txm         TxManager
	logger      logger.Logger
	watcher
}

func NewCartUC(
	cartRepo CartRepository,
	productRepo ProductRepository,
	txm TxManager,
	feed ChangeFeed,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		txm:         txm,
		logger:      logger,
		watcher:     newWatcher(feed, live.NewRegistry(), logger),
	}
}

// Stop закрывает все подписки на корзины.
func (c *CartUseCase) Stop() {
	c.registry.CloseAll()
}

func cartID(identity domain.Identity) (string, error) {
	if identity.ID == "" {
		return "", e.ErrCartIDRequired
	}
	return identity.ID, nil
}

// Get возвращает корзину идентичности.
func (c *CartUseCase) Get(ctx context.Context, identity domain.Identity) (*domain.Cart, error) {
	const op = "CartUseCase.Get"

	id, err := cartID(identity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items, err := c.cartRepo.ListItems(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &domain.Cart{ID: id, Items: items}, nil
}

// AddItem увеличивает количество товара в корзине на единицу, но не выше остатка.
func (c *CartUseCase) AddItem(ctx context.Context, identity domain.Identity, productID string) (*domain.CartItem, error) {
	const op = "CartUseCase.AddItem"

	id, err := cartID(identity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var item *domain.CartItem
	err = c.txm.Do(ctx, func(ctx context.Context) error {
		product, err := c.productRepo.GetForUpdate(ctx, productID)
		if errors.Is(err, e.ErrProductNotFound) {
			return e.ErrOutOfStock
		}
		if err != nil {
			return err
		}
		if product.Stock <= 0 {
			return e.ErrOutOfStock
		}

		quantity := 1
		existing, err := c.cartRepo.GetItem(ctx, id, productID)
		switch {
		case err == nil:
			quantity = existing.Quantity + 1
		case !errors.Is(err, e.ErrCartItemNotFound):
			return err
		}

		if quantity > product.Stock {
			return e.ErrStockLimitExceeded
		}

		item = domain.NewCartItem(product, quantity)
		return c.cartRepo.UpsertItem(ctx, id, item)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.publish(ctx, cartTopic(id))
	return item, nil
}

// SetQuantity устанавливает количество. quantity <= 0 удаляет позицию,
// количество выше остатка урезается до остатка с флагом Clamped.
func (c *CartUseCase) SetQuantity(ctx context.Context, identity domain.Identity, productID string, quantity int) (*SetQuantityRes, error) {
	const op = "CartUseCase.SetQuantity"

	if quantity <= 0 {
		if err := c.RemoveItem(ctx, identity, productID); err != nil {
			return nil, e.Wrap(op, err)
		}
		return &SetQuantityRes{}, nil
	}

	id, err := cartID(identity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := &SetQuantityRes{Quantity: quantity}
	err = c.txm.Do(ctx, func(ctx context.Context) error {
		product, err := c.productRepo.GetForUpdate(ctx, productID)
		if err != nil && !errors.Is(err, e.ErrProductNotFound) {
			return err
		}

		// товар удален или закончился
		if product == nil || product.Stock <= 0 {
			res.Quantity = 0
			res.Clamped = true
			return c.cartRepo.DeleteItem(ctx, id, productID)
		}

		if res.Quantity > product.Stock {
			res.Quantity = product.Stock
			res.Clamped = true
		}

		res.Item = domain.NewCartItem(product, res.Quantity)
		return c.cartRepo.UpsertItem(ctx, id, res.Item)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.publish(ctx, cartTopic(id))
	return res, nil
}

// RemoveItem удаляет позицию. Отсутствующая позиция не считается ошибкой.
func (c *CartUseCase) RemoveItem(ctx context.Context, identity domain.Identity, productID string) error {
	const op = "CartUseCase.RemoveItem"

	id, err := cartID(identity)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = c.txm.Do(ctx, func(ctx context.Context) error {
		return c.cartRepo.DeleteItem(ctx, id, productID)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	c.publish(ctx, cartTopic(id))
	return nil
}

// Clear удаляет все позиции одной атомарной операцией.
func (c *CartUseCase) Clear(ctx context.Context, identity domain.Identity) error {
	const op = "CartUseCase.Clear"

	id, err := cartID(identity)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = c.txm.Do(ctx, func(ctx context.Context) error {
		return c.cartRepo.DeleteCart(ctx, id)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	c.publish(ctx, cartTopic(id))
	return nil
}

// MergeOnLogin переносит анонимную корзину в корзину пользователя и удаляет анонимную.
// Совпадающие товары перезаписываются позицией из анонимной корзины. Возвращает число перенесенных позиций.
func (c *CartUseCase) MergeOnLogin(ctx context.Context, from domain.Identity, to domain.Identity) (int, error) {
	const op = "CartUseCase.MergeOnLogin"

	if from.Role != domain.RoleAnonymous {
		return 0, e.Wrap(op, e.ErrMergeSource)
	}
	if !to.IsAuthenticated() {
		return 0, e.Wrap(op, e.ErrLoginRequired)
	}
	if from.ID == "" || from.ID == to.ID {
		return 0, nil
	}

	var merged int
	err := c.txm.Do(ctx, func(ctx context.Context) error {
		items, err := c.cartRepo.ListItems(ctx, from.ID)
		if err != nil {
			return err
		}

		for i := range items {
			if err := c.cartRepo.UpsertItem(ctx, to.ID, &items[i]); err != nil {
				return err
			}
		}
		merged = len(items)

		return c.cartRepo.DeleteCart(ctx, from.ID)
	})
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	// анонимная корзина больше не существует
	c.registry.Drop(from.Key())
	c.publish(ctx, cartTopic(from.ID), cartTopic(to.ID))

	c.logger.Debugf("Merged %d cart items from %s into %s", merged, from.ID, to.ID)
	return merged, nil
}

// Subscribe отдает корзину сразу и после каждого ее изменения.
func (c *CartUseCase) Subscribe(ctx context.Context, identity domain.Identity, onChange func(*domain.Cart)) (live.Subscription, error) {
	const op = "CartUseCase.Subscribe"

	id, err := cartID(identity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	sub, err := c.watch(ctx, identity.Key(), cartTopic(id), func(ctx context.Context) error {
		items, err := c.cartRepo.ListItems(ctx, id)
		if err != nil {
			return err
		}
		onChange(&domain.Cart{ID: id, Items: items})
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return sub, nil
}
