package usecase

import (
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/shopspring/decimal"
)

// PRODUCT USECASE

// CreateProductReq — запрос на добавление товара. Нужен либо Image, либо ImageURL.
type CreateProductReq struct {
	Name               string
	Description        string
	Price              decimal.Decimal
	HasDiscount        bool
	OriginalPrice      *decimal.Decimal
	DiscountPercentage *int
	Stock              int
	Category           domain.Category
	Audience           domain.Audience
	Featured           bool
	ImageURL           string
	Image              *ProductImage
}

// UpdateProductReq — частичное обновление товара, новое изображение опционально.
type UpdateProductReq struct {
	Patch domain.ProductPatch
	Image *ProductImage
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// CART USECASE

// SetQuantityRes — итог установки количества. Clamped — количество урезано до остатка.
type SetQuantityRes struct {
	Item     *domain.CartItem
	Quantity int
	Clamped  bool
}

// WISHLIST USECASE

type ToggleRes struct {
	Member        bool
	WishlistCount int
}

// ORDER USECASE

// CreateOrderReq — готовые позиции и сумма. Owner определяет владельца и корзину для очистки.
type CreateOrderReq struct {
	Owner    domain.Identity
	Shipping domain.ShippingInfo
	Items    []domain.CartItem
	Total    decimal.Decimal
}

// INFRASTUCTURE

// UploadImageReq — запрос на загрузку изображения товара.
type UploadImageReq struct {
	Name  string
	Image ProductImage
}

// UploadImageRes — ключ объекта в MinIO и публичный URL.
type UploadImageRes struct {
	Key string
	URL string
}

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// OrderEvent — событие жизненного цикла заказа для внешних потребителей.
type OrderEvent struct {
	EventID    string
	Type       OutboxEventType
	OrderID    string
	UserID     *string
	Email      string
	Status     domain.OrderStatus
	PrevStatus domain.OrderStatus
	Total      decimal.Decimal
	ItemsCount int
	OccurredAt time.Time
}

// REPOSITORIES

type OutboxStatus string

const (
	Pending    OutboxStatus = "PENDING"
	Processing OutboxStatus = "PROCESSING"
	Processed  OutboxStatus = "PROCESSED"
	// Failed — брокер отклонил событие, повторная отправка не поможет
	Failed OutboxStatus = "FAILED"
)

type OutboxEventType string

const (
	OrderCreated       OutboxEventType = "ORDER_CREATED"
	OrderStatusChanged OutboxEventType = "ORDER_STATUS_CHANGED"
)

type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	AggregateID string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImageReq(name string, image ProductImage) *UploadImageReq {
	return &UploadImageReq{
		Name:  name,
		Image: image,
	}
}

func NewUploadImageRes(key string, url string) *UploadImageRes {
	return &UploadImageRes{
		Key: key,
		URL: url,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, aggregateID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:     eventID,
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   time.Now().UTC(),
	}
}
