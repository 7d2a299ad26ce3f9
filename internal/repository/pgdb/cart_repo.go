package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const cartItemColumns = `cart_id, product_id, name, description, price, image_url, category, audience, quantity, updated_at`

type CartRepo struct {
	pool *pgxpool.Pool
	conv converter.CartItemConverter
}

func NewCartRepo(pool *pgxpool.Pool, conv converter.CartItemConverter) *CartRepo {
	return &CartRepo{
		pool: pool,
		conv: conv,
	}
}

func (c *CartRepo) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE cart_id = $1 ORDER BY product_id`
	return c.collect(ctx, query, cartID)
}

func (c *CartRepo) GetItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE cart_id = $1 AND product_id = $2`

	items, err := c.collect(ctx, query, cartID, productID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, e.ErrCartItemNotFound
	}

	return &items[0], nil
}

// UpsertItem вставляет позицию или перезаписывает слепок и количество существующей.
func (c *CartRepo) UpsertItem(ctx context.Context, cartID string, item *domain.CartItem) error {
	m := c.conv.ToModel(cartID, item)
	query := `
		INSERT INTO cart_items (` + cartItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			image_url = EXCLUDED.image_url,
			category = EXCLUDED.category,
			audience = EXCLUDED.audience,
			quantity = EXCLUDED.quantity,
			updated_at = EXCLUDED.updated_at
	`

	_, err := tr.QuerierFromCtx(ctx, c.pool).Exec(ctx, query,
		m.CartID, m.ProductID, m.Name, m.Description, m.Price, m.ImageURL,
		m.Category, m.Audience, m.Quantity, m.UpdatedAt,
	)
	if err != nil {
		return e.Store(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CartRepo) DeleteItem(ctx context.Context, cartID, productID string) error {
	_, err := tr.QuerierFromCtx(ctx, c.pool).Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	if err != nil {
		return e.Store(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CartRepo) DeleteCart(ctx context.Context, cartID string) error {
	if _, err := tr.QuerierFromCtx(ctx, c.pool).Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return e.Store(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CartRepo) collect(ctx context.Context, query string, args ...any) ([]domain.CartItem, error) {
	rows, err := tr.QuerierFromCtx(ctx, c.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.CartItemModel])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	return c.conv.ToArrEntity(models), nil
}
