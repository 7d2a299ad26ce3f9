package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const orderColumns = `id, user_id, shipping, items, total, status, created_at, updated_at`

type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	m, err := o.conv.ToModel(order)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO orders (id, user_id, shipping, items, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := tx.Exec(ctx, query, m.ID, m.UserID, m.Shipping, m.Items, m.Total, m.Status, m.CreatedAt); err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: order with id %s already exists", whereami.WhereAmI(), order.ID)
		}
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	return order, nil
}

func (o *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := o.collect(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, e.ErrOrderNotFound
	}

	return &orders[0], nil
}

// List возвращает заказы по фильтру, новые первыми.
func (o *OrderRepo) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var (
		conds []string
		args  []any
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`

	return o.collect(ctx, query, args...)
}

// UpdateStatus выполняет compare-and-set статуса заказа.
func (o *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	tag, err := tr.QuerierFromCtx(ctx, o.pool).Exec(ctx, query, id, string(from), string(to))
	if err != nil {
		return false, e.Store(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	if _, err := o.Get(ctx, id); err != nil {
		return false, err
	}

	return false, nil
}

func (o *OrderRepo) collect(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := tr.QuerierFromCtx(ctx, o.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.OrderModel])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	res := make([]domain.Order, 0, len(models))
	for i := range models {
		order, err := o.conv.ToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("%s: failed to decode order %s: %w", whereami.WhereAmI(), models[i].ID, err)
		}
		res = append(res, *order)
	}

	return res, nil
}
