package converter

import (
	"encoding/json"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []ProductModel) []domain.Product
}

// CartItemConverter преобразует позиции корзины.
type CartItemConverter interface {
	ToModel(cartID string, entity *domain.CartItem) *CartItemModel
	ToArrEntity(models []CartItemModel) []domain.CartItem
}

// WishlistItemConverter преобразует позиции вишлиста.
type WishlistItemConverter interface {
	ToModel(entity *domain.WishlistItem) *WishlistItemModel
	ToArrEntity(models []WishlistItemModel) []domain.WishlistItem
}

// OrderConverter преобразует заказы. Доставка и позиции сериализуются в jsonb.
type OrderConverter interface {
	ToModel(entity *domain.Order) (*OrderModel, error)
	ToEntity(model *OrderModel) (*domain.Order, error)
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []OutboxEventModel) []*usecase.OutboxEvent
}

type productConverter struct{}

func NewProductConverter() ProductConverter {
	return productConverter{}
}

func (productConverter) ToModel(entity *domain.Product) *ProductModel {
	model := &ProductModel{
		ID:                 entity.ID,
		Name:               entity.Name,
		Description:        entity.Description,
		Price:              entity.Price,
		HasDiscount:        entity.HasDiscount,
		DiscountPercentage: entity.DiscountPercentage,
		Stock:              entity.Stock,
		Category:           string(entity.Category),
		Audience:           string(entity.Audience),
		Featured:           entity.Featured,
		ImageURL:           entity.ImageURL,
		ImageHint:          entity.ImageHint,
		WishlistCount:      entity.WishlistCount,
		CreatedAt:          entity.CreatedAt,
		UpdatedAt:          entity.UpdatedAt,
	}
	if entity.OriginalPrice != nil {
		model.OriginalPrice = decimal.NewNullDecimal(*entity.OriginalPrice)
	}
	return model
}

func (productConverter) ToEntity(model *ProductModel) *domain.Product {
	entity := &domain.Product{
		ID:                 model.ID,
		Name:               model.Name,
		Description:        model.Description,
		Price:              model.Price,
		HasDiscount:        model.HasDiscount,
		DiscountPercentage: model.DiscountPercentage,
		Stock:              model.Stock,
		Category:           domain.Category(model.Category),
		Audience:           domain.Audience(model.Audience),
		Featured:           model.Featured,
		ImageURL:           model.ImageURL,
		ImageHint:          model.ImageHint,
		WishlistCount:      model.WishlistCount,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
	if model.OriginalPrice.Valid {
		v := model.OriginalPrice.Decimal
		entity.OriginalPrice = &v
	}
	return entity
}

func (c productConverter) ToArrEntity(models []ProductModel) []domain.Product {
	res := make([]domain.Product, 0, len(models))
	for i := range models {
		res = append(res, *c.ToEntity(&models[i]))
	}
	return res
}

func snapshotToModel(s domain.ProductSnapshot) SnapshotModel {
	return SnapshotModel{
		ProductID:   s.ProductID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		ImageURL:    s.ImageURL,
		Category:    string(s.Category),
		Audience:    string(s.Audience),
	}
}

func snapshotToEntity(m SnapshotModel) domain.ProductSnapshot {
	return domain.ProductSnapshot{
		ProductID:   m.ProductID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		Category:    domain.Category(m.Category),
		Audience:    domain.Audience(m.Audience),
	}
}

type cartItemConverter struct{}

func NewCartItemConverter() CartItemConverter {
	return cartItemConverter{}
}

func (cartItemConverter) ToModel(cartID string, entity *domain.CartItem) *CartItemModel {
	return &CartItemModel{
		CartID:        cartID,
		SnapshotModel: snapshotToModel(entity.ProductSnapshot),
		Quantity:      entity.Quantity,
		UpdatedAt:     entity.UpdatedAt,
	}
}

func (cartItemConverter) ToArrEntity(models []CartItemModel) []domain.CartItem {
	res := make([]domain.CartItem, 0, len(models))
	for _, m := range models {
		res = append(res, domain.CartItem{
			ProductSnapshot: snapshotToEntity(m.SnapshotModel),
			Quantity:        m.Quantity,
			UpdatedAt:       m.UpdatedAt,
		})
	}
	return res
}

type wishlistItemConverter struct{}

func NewWishlistItemConverter() WishlistItemConverter {
	return wishlistItemConverter{}
}

func (wishlistItemConverter) ToModel(entity *domain.WishlistItem) *WishlistItemModel {
	return &WishlistItemModel{
		UserID:        entity.UserID,
		SnapshotModel: snapshotToModel(entity.ProductSnapshot),
		CreatedAt:     entity.CreatedAt,
	}
}

func (wishlistItemConverter) ToArrEntity(models []WishlistItemModel) []domain.WishlistItem {
	res := make([]domain.WishlistItem, 0, len(models))
	for _, m := range models {
		res = append(res, domain.WishlistItem{
			UserID:          m.UserID,
			ProductSnapshot: snapshotToEntity(m.SnapshotModel),
			CreatedAt:       m.CreatedAt,
		})
	}
	return res
}

type orderConverter struct{}

func NewOrderConverter() OrderConverter {
	return orderConverter{}
}

func (orderConverter) ToModel(entity *domain.Order) (*OrderModel, error) {
	shipping, err := json.Marshal(ShippingJSON(entity.Shipping))
	if err != nil {
		return nil, err
	}

	items := make([]OrderItemJSON, 0, len(entity.Items))
	for _, item := range entity.Items {
		items = append(items, OrderItemJSON(item))
	}
	itemsData, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	return &OrderModel{
		ID:        entity.ID,
		UserID:    entity.UserID,
		Shipping:  shipping,
		Items:     itemsData,
		Total:     entity.Total,
		Status:    string(entity.Status),
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}, nil
}

func (orderConverter) ToEntity(model *OrderModel) (*domain.Order, error) {
	var shipping ShippingJSON
	if err := json.Unmarshal(model.Shipping, &shipping); err != nil {
		return nil, err
	}

	var items []OrderItemJSON
	if err := json.Unmarshal(model.Items, &items); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:        model.ID,
		UserID:    model.UserID,
		Shipping:  domain.ShippingInfo(shipping),
		Items:     make([]domain.OrderItem, 0, len(items)),
		Total:     model.Total,
		Status:    domain.OrderStatus(model.Status),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem(item))
	}

	return order, nil
}

type outboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter {
	return outboxEventConverter{}
}

func (outboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		AggregateID: entity.AggregateID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (outboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		AggregateID: model.AggregateID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c outboxEventConverter) ToArrEntity(models []OutboxEventModel) []*usecase.OutboxEvent {
	res := make([]*usecase.OutboxEvent, 0, len(models))
	for i := range models {
		res = append(res, c.ToEntity(&models[i]))
	}
	return res
}
