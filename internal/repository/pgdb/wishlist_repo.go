package pgdb

import (
	"context"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

type WishlistRepo struct {
	pool *pgxpool.Pool
	conv converter.WishlistItemConverter
}

func NewWishlistRepo(pool *pgxpool.Pool, conv converter.WishlistItemConverter) *WishlistRepo {
	return &WishlistRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает вишлист пользователя, последние добавленные первыми.
func (w *WishlistRepo) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	query := `
		SELECT user_id, product_id, name, description, price, image_url, category, audience, created_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC, product_id
	`

	rows, err := tr.QuerierFromCtx(ctx, w.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.WishlistItemModel])
	if err != nil {
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	return w.conv.ToArrEntity(models), nil
}

func (w *WishlistRepo) Exists(ctx context.Context, userID, productID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`

	var ok bool
	if err := tr.QuerierFromCtx(ctx, w.pool).QueryRow(ctx, query, userID, productID).Scan(&ok); err != nil {
		return false, e.Store(whereami.WhereAmI(), err)
	}

	return ok, nil
}

func (w *WishlistRepo) Add(ctx context.Context, item *domain.WishlistItem) error {
	m := w.conv.ToModel(item)
	query := `
		INSERT INTO wishlist_items (user_id, product_id, name, description, price, image_url, category, audience, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := tr.QuerierFromCtx(ctx, w.pool).Exec(ctx, query,
		m.UserID, m.ProductID, m.Name, m.Description, m.Price, m.ImageURL, m.Category, m.Audience, m.CreatedAt,
	)
	if err != nil {
		return e.Store(whereami.WhereAmI(), err)
	}

	return nil
}

func (w *WishlistRepo) Remove(ctx context.Context, userID, productID string) error {
	_, err := tr.QuerierFromCtx(ctx, w.pool).Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return e.Store(whereami.WhereAmI(), err)
	}

	return nil
}

// CountByProduct считает членства по всем пользователям.
func (w *WishlistRepo) CountByProduct(ctx context.Context) ([]domain.ProductTally, error) {
	query := `
		SELECT product_id, COUNT(*) AS count
		FROM wishlist_items
		GROUP BY product_id
		ORDER BY product_id
	`

	rows, err := tr.QuerierFromCtx(ctx, w.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	tallies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ProductTally, error) {
		var t domain.ProductTally
		err := row.Scan(&t.ProductID, &t.Count)
		return t, err
	})
	if err != nil {
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	return tallies, nil
}
