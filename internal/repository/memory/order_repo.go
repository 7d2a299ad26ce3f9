package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/e"
)

type OrderRepo struct {
	store *Store
}

func NewOrderRepo(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	err := r.store.run(ctx, func() error {
		if _, ok := r.store.orders[order.ID]; ok {
			return fmt.Errorf("order %s already exists", order.ID)
		}
		r.store.orders[order.ID] = cloneOrder(*order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := cloneOrder(*order)
	return &res, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	var res domain.Order
	err := r.store.run(ctx, func() error {
		o, ok := r.store.orders[id]
		if !ok {
			return e.ErrOrderNotFound
		}
		res = cloneOrder(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

// List возвращает заказы по фильтру, новые первыми.
func (r *OrderRepo) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	res := make([]domain.Order, 0)
	err := r.store.run(ctx, func() error {
		for _, o := range r.store.orders {
			if filter.UserID != nil && (o.UserID == nil || *o.UserID != *filter.UserID) {
				continue
			}
			if filter.Status != nil && o.Status != *filter.Status {
				continue
			}
			res = append(res, cloneOrder(o))
		}
		return nil
	})

	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})

	return res, err
}

// UpdateStatus меняет статус, только если текущий равен from.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	var updated bool
	err := r.store.run(ctx, func() error {
		o, ok := r.store.orders[id]
		if !ok {
			return e.ErrOrderNotFound
		}
		if o.Status != from {
			return nil
		}

		now := time.Now().UTC()
		o.Status = to
		o.UpdatedAt = &now
		r.store.orders[id] = o
		updated = true
		return nil
	})
	return updated, err
}

func cloneOrder(o domain.Order) domain.Order {
	if o.UserID != nil {
		v := *o.UserID
		o.UserID = &v
	}
	if o.UpdatedAt != nil {
		v := *o.UpdatedAt
		o.UpdatedAt = &v
	}
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return o
}
