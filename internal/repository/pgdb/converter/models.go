package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID                 string              `db:"id"`
	Name               string              `db:"name"`
	Description        string              `db:"description"`
	Price              decimal.Decimal     `db:"price"`
	HasDiscount        bool                `db:"has_discount"`
	OriginalPrice      decimal.NullDecimal `db:"original_price"`
	DiscountPercentage *int                `db:"discount_percentage"`
	Stock              int                 `db:"stock"`
	Category           string              `db:"category"`
	Audience           string              `db:"audience"`
	Featured           bool                `db:"featured"`
	ImageURL           string              `db:"image_url"`
	ImageHint          string              `db:"image_hint"`
	WishlistCount      int                 `db:"wishlist_count"`
	CreatedAt          time.Time           `db:"created_at"`
	UpdatedAt          *time.Time          `db:"updated_at"`
}

// SnapshotModel — слепок товара в cart_items и wishlist_items.
type SnapshotModel struct {
	ProductID   string          `db:"product_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	ImageURL    string          `db:"image_url"`
	Category    string          `db:"category"`
	Audience    string          `db:"audience"`
}

// CartItemModel представляет запись таблицы cart_items в PostgreSQL.
type CartItemModel struct {
	CartID string `db:"cart_id"`
	SnapshotModel
	Quantity  int       `db:"quantity"`
	UpdatedAt time.Time `db:"updated_at"`
}

// WishlistItemModel представляет запись таблицы wishlist_items в PostgreSQL.
type WishlistItemModel struct {
	UserID string `db:"user_id"`
	SnapshotModel
	CreatedAt time.Time `db:"created_at"`
}

// OrderModel представляет запись таблицы orders. shipping и items хранятся в jsonb.
type OrderModel struct {
	ID        string          `db:"id"`
	UserID    *string         `db:"user_id"`
	Shipping  []byte          `db:"shipping"`
	Items     []byte          `db:"items"`
	Total     decimal.Decimal `db:"total"`
	Status    string          `db:"status"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt *time.Time      `db:"updated_at"`
}

type ShippingJSON struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone,omitempty"`
}

type OrderItemJSON struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID string     `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
