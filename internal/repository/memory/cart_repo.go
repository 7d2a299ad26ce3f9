package memory

import (
	"context"
	"sort"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/e"
)

type CartRepo struct {
	store *Store
}

func NewCartRepo(store *Store) *CartRepo {
	return &CartRepo{store: store}
}

func (r *CartRepo) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	var res []domain.CartItem
	err := r.store.run(ctx, func() error {
		items := r.store.carts[cartID]
		res = make([]domain.CartItem, 0, len(items))
		for _, item := range items {
			res = append(res, item)
		}
		return nil
	})

	sort.Slice(res, func(i, j int) bool { return res[i].ProductID < res[j].ProductID })
	return res, err
}

func (r *CartRepo) GetItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error) {
	var res domain.CartItem
	err := r.store.run(ctx, func() error {
		item, ok := r.store.carts[cartID][productID]
		if !ok {
			return e.ErrCartItemNotFound
		}
		res = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *CartRepo) UpsertItem(ctx context.Context, cartID string, item *domain.CartItem) error {
	return r.store.run(ctx, func() error {
		items, ok := r.store.carts[cartID]
		if !ok {
			items = make(map[string]domain.CartItem)
			r.store.carts[cartID] = items
		}
		items[item.ProductID] = *item
		return nil
	})
}

func (r *CartRepo) DeleteItem(ctx context.Context, cartID, productID string) error {
	return r.store.run(ctx, func() error {
		items := r.store.carts[cartID]
		delete(items, productID)
		if len(items) == 0 {
			delete(r.store.carts, cartID)
		}
		return nil
	})
}

func (r *CartRepo) DeleteCart(ctx context.Context, cartID string) error {
	return r.store.run(ctx, func() error {
		delete(r.store.carts, cartID)
		return nil
	})
}
