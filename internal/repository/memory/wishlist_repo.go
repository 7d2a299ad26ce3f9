package memory

import (
	"context"
	"sort"

	"github.com/DRSN-tech/nest-store/internal/domain"
)

type WishlistRepo struct {
	store *Store
}

func NewWishlistRepo(store *Store) *WishlistRepo {
	return &WishlistRepo{store: store}
}

// List возвращает вишлист пользователя, последние добавленные первыми.
func (r *WishlistRepo) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	var res []domain.WishlistItem
	err := r.store.run(ctx, func() error {
		items := r.store.wishlists[userID]
		res = make([]domain.WishlistItem, 0, len(items))
		for _, item := range items {
			res = append(res, item)
		}
		return nil
	})

	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ProductID < res[j].ProductID
	})

	return res, err
}

func (r *WishlistRepo) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var ok bool
	err := r.store.run(ctx, func() error {
		_, ok = r.store.wishlists[userID][productID]
		return nil
	})
	return ok, err
}

func (r *WishlistRepo) Add(ctx context.Context, item *domain.WishlistItem) error {
	return r.store.run(ctx, func() error {
		items, ok := r.store.wishlists[item.UserID]
		if !ok {
			items = make(map[string]domain.WishlistItem)
			r.store.wishlists[item.UserID] = items
		}
		items[item.ProductID] = *item
		return nil
	})
}

func (r *WishlistRepo) Remove(ctx context.Context, userID, productID string) error {
	return r.store.run(ctx, func() error {
		items := r.store.wishlists[userID]
		delete(items, productID)
		if len(items) == 0 {
			delete(r.store.wishlists, userID)
		}
		return nil
	})
}

// CountByProduct считает членства по всем пользователям.
func (r *WishlistRepo) CountByProduct(ctx context.Context) ([]domain.ProductTally, error) {
	counts := make(map[string]int)
	err := r.store.run(ctx, func() error {
		for _, items := range r.store.wishlists {
			for productID := range items {
				counts[productID]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := make([]domain.ProductTally, 0, len(counts))
	for productID, count := range counts {
		res = append(res, domain.ProductTally{ProductID: productID, Count: count})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ProductID < res[j].ProductID })

	return res, nil
}
