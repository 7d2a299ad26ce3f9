package usecase

import (
	"context"

	"github.com/DRSN-tech/nest-store/internal/domain"
)

// ProductRepository — коллекция товаров.
// GetForUpdate внутри транзакции блокирует запись товара до коммита.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetForUpdate(ctx context.Context, id string) (*domain.Product, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	IncrementWishlistCount(ctx context.Context, id string, delta int) (int, error)
}

// MarkerRepository хранит одноразовые флаги (например, маркер заполнения каталога).
// Lock внутри транзакции сериализует конкурирующие проверки одного маркера.
type MarkerRepository interface {
	Lock(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	Set(ctx context.Context, name string) error
}

type CartRepository interface {
	ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
	GetItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error)
	UpsertItem(ctx context.Context, cartID string, item *domain.CartItem) error
	DeleteItem(ctx context.Context, cartID, productID string) error
	DeleteCart(ctx context.Context, cartID string) error
}

type WishlistRepository interface {
	List(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	Exists(ctx context.Context, userID, productID string) (bool, error)
	Add(ctx context.Context, item *domain.WishlistItem) error
	Remove(ctx context.Context, userID, productID string) error
	CountByProduct(ctx context.Context) ([]domain.ProductTally, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	// UpdateStatus меняет статус только если текущий равен from. false — статус уже изменен.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReturnToPending(ctx context.Context, id int64) error
	MarkAsFailed(ctx context.Context, id int64) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

// RankingCache кэширует подсчет вишлистов по товарам.
type RankingCache interface {
	GetTallies(ctx context.Context) ([]domain.ProductTally, bool, error)
	SetTallies(ctx context.Context, tallies []domain.ProductTally) error
	InvalidateTallies(ctx context.Context) error
}
