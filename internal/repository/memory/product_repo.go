package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/e"
)

type ProductRepo struct {
	store *Store
}

func NewProductRepo(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// List возвращает товары в порядке создания.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var res []domain.Product
	err := r.store.run(ctx, func() error {
		res = make([]domain.Product, 0, len(r.store.products))
		for _, p := range r.store.products {
			res = append(res, cloneProduct(p))
		}
		return nil
	})

	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})

	return res, err
}

func (r *ProductRepo) Get(ctx context.Context, id string) (*domain.Product, error) {
	var res *domain.Product
	err := r.store.run(ctx, func() error {
		p, ok := r.store.products[id]
		if !ok {
			return e.ErrProductNotFound
		}
		cp := cloneProduct(p)
		res = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// GetForUpdate в памяти совпадает с Get: транзакции и так выполняются по одной.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*domain.Product, error) {
	return r.Get(ctx, id)
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.store.run(ctx, func() error {
		n = len(r.store.products)
		return nil
	})
	return n, err
}

func (r *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var res domain.Product
	err := r.store.run(ctx, func() error {
		if _, ok := r.store.products[product.ID]; ok {
			return fmt.Errorf("product %s already exists", product.ID)
		}
		res = cloneProduct(*product)
		if res.CreatedAt.IsZero() {
			res.CreatedAt = time.Now().UTC()
		}
		r.store.products[res.ID] = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := cloneProduct(res)
	return &out, nil
}

// Update перезаписывает поля товара, счетчик вишлистов и дата создания сохраняются.
func (r *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var res domain.Product
	err := r.store.run(ctx, func() error {
		current, ok := r.store.products[product.ID]
		if !ok {
			return e.ErrProductNotFound
		}

		now := time.Now().UTC()
		res = cloneProduct(*product)
		res.WishlistCount = current.WishlistCount
		res.CreatedAt = current.CreatedAt
		res.UpdatedAt = &now
		r.store.products[res.ID] = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := cloneProduct(res)
	return &out, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.store.run(ctx, func() error {
		if _, ok := r.store.products[id]; !ok {
			return e.ErrProductNotFound
		}
		delete(r.store.products, id)
		return nil
	})
}

// IncrementWishlistCount меняет счетчик на delta, не опуская его ниже нуля.
func (r *ProductRepo) IncrementWishlistCount(ctx context.Context, id string, delta int) (int, error) {
	var count int
	err := r.store.run(ctx, func() error {
		p, ok := r.store.products[id]
		if !ok {
			return e.ErrProductNotFound
		}
		p.WishlistCount = max(p.WishlistCount+delta, 0)
		r.store.products[id] = p
		count = p.WishlistCount
		return nil
	})
	return count, err
}

func cloneProduct(p domain.Product) domain.Product {
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		p.OriginalPrice = &v
	}
	if p.DiscountPercentage != nil {
		v := *p.DiscountPercentage
		p.DiscountPercentage = &v
	}
	if p.UpdatedAt != nil {
		v := *p.UpdatedAt
		p.UpdatedAt = &v
	}
	return p
}
