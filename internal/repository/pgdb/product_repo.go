package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `
	id, name, description, price, has_discount, original_price, discount_percentage,
	stock, category, audience, featured, image_url, image_hint, wishlist_count,
	created_at, updated_at`

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает все товары в порядке создания.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at, id`

	rows, err := tr.QuerierFromCtx(ctx, p.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.ProductModel])
	if err != nil {
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

func (p *ProductRepo) Get(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return p.getOne(ctx, tr.QuerierFromCtx(ctx, p.pool), query, id)
}

// GetForUpdate читает товар и блокирует строку до конца транзакции.
func (p *ProductRepo) GetForUpdate(ctx context.Context, id string) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return p.getOne(ctx, tx, query, id)
}

func (p *ProductRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := tr.QuerierFromCtx(ctx, p.pool).QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, e.Store(whereami.WhereAmI(), err)
	}

	return count, nil
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	m := p.conv.ToModel(product)
	query := `
		INSERT INTO products (
			id, name, description, price, has_discount, original_price, discount_percentage,
			stock, category, audience, featured, image_url, image_hint, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + productColumns

	created, err := p.getOne(ctx, tx, query,
		m.ID, m.Name, m.Description, m.Price, m.HasDiscount, m.OriginalPrice, m.DiscountPercentage,
		m.Stock, m.Category, m.Audience, m.Featured, m.ImageURL, m.ImageHint, m.CreatedAt,
	)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: product with id %s already exists", whereami.WhereAmI(), product.ID)
		}
		return nil, err
	}

	return created, nil
}

// Update перезаписывает редактируемые поля. Счетчик вишлистов меняется только через IncrementWishlistCount.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	m := p.conv.ToModel(product)
	query := `
		UPDATE products SET
			name = $2,
			description = $3,
			price = $4,
			has_discount = $5,
			original_price = $6,
			discount_percentage = $7,
			stock = $8,
			category = $9,
			audience = $10,
			featured = $11,
			image_url = $12,
			image_hint = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	return p.getOne(ctx, tx, query,
		m.ID, m.Name, m.Description, m.Price, m.HasDiscount, m.OriginalPrice, m.DiscountPercentage,
		m.Stock, m.Category, m.Audience, m.Featured, m.ImageURL, m.ImageHint,
	)
}

func (p *ProductRepo) Delete(ctx context.Context, id string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return e.Store(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

// IncrementWishlistCount атомарно сдвигает счетчик на delta, не опуская его ниже нуля.
func (p *ProductRepo) IncrementWishlistCount(ctx context.Context, id string, delta int) (int, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET wishlist_count = GREATEST(wishlist_count + $2, 0)
		WHERE id = $1
		RETURNING wishlist_count
	`

	var count int
	if err := tx.QueryRow(ctx, query, id, delta).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, e.ErrProductNotFound
		}
		return 0, e.Store(whereami.WhereAmI(), err)
	}

	return count, nil
}

func (p *ProductRepo) getOne(ctx context.Context, q tr.Querier, query string, args ...any) (*domain.Product, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	model, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.ProductModel])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		if postgresDuplicate(err) {
			return nil, err
		}
		return nil, e.Store(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}
