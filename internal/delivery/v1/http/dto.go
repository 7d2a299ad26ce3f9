package http

import (
	"strings"
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/shopspring/decimal"
)

// ProductPayload — тело создания и изменения товара (JSON или поля multipart).
type ProductPayload struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	Price              *decimal.Decimal `json:"price" swaggertype:"string" example:"129.99"`
	HasDiscount        *bool            `json:"hasDiscount"`
	OriginalPrice      *decimal.Decimal `json:"originalPrice" swaggertype:"string" example:"159.99"`
	DiscountPercentage *int             `json:"discountPercentage"`
	Stock              *int             `json:"stock"`
	Category           *string          `json:"category" enums:"Backpack,Handbags,Accessory"`
	Audience           *string          `json:"audience" enums:"For Him,For Her"`
	Featured           *bool            `json:"featured"`
	ImageURL           *string          `json:"imageUrl"`
}

// toCreateReq требует обязательные поля. Изображение проверяется в usecase.
func (p *ProductPayload) toCreateReq(image *usecase.ProductImage) (*usecase.CreateProductReq, error) {
	var missing []string
	if p.Name == nil {
		missing = append(missing, "name")
	}
	if p.Price == nil {
		missing = append(missing, "price")
	}
	if p.Stock == nil {
		missing = append(missing, "stock")
	}
	if p.Category == nil {
		missing = append(missing, "category")
	}
	if p.Audience == nil {
		missing = append(missing, "audience")
	}
	if len(missing) > 0 {
		return nil, e.Detail(strings.Join(missing, ", "), e.ErrMissingFields)
	}

	req := &usecase.CreateProductReq{
		Name:               *p.Name,
		Price:              *p.Price,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage,
		Stock:              *p.Stock,
		Category:           domain.Category(*p.Category),
		Audience:           domain.Audience(*p.Audience),
		Image:              image,
	}
	if p.Description != nil {
		req.Description = *p.Description
	}
	if p.HasDiscount != nil {
		req.HasDiscount = *p.HasDiscount
	}
	if p.Featured != nil {
		req.Featured = *p.Featured
	}
	if p.ImageURL != nil {
		req.ImageURL = *p.ImageURL
	}
	return req, nil
}

func (p *ProductPayload) toUpdateReq(image *usecase.ProductImage) *usecase.UpdateProductReq {
	patch := domain.ProductPatch{
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price,
		HasDiscount:        p.HasDiscount,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage,
		Stock:              p.Stock,
		Featured:           p.Featured,
		ImageURL:           p.ImageURL,
	}
	if p.Category != nil {
		c := domain.Category(*p.Category)
		patch.Category = &c
	}
	if p.Audience != nil {
		a := domain.Audience(*p.Audience)
		patch.Audience = &a
	}
	return &usecase.UpdateProductReq{Patch: patch, Image: image}
}

type ProductResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price" swaggertype:"string"`
	HasDiscount        bool             `json:"hasDiscount"`
	OriginalPrice      *decimal.Decimal `json:"originalPrice,omitempty" swaggertype:"string"`
	DiscountPercentage *int             `json:"discountPercentage,omitempty"`
	Stock              int              `json:"stock"`
	Category           string           `json:"category"`
	Audience           string           `json:"audience"`
	Featured           bool             `json:"featured"`
	ImageURL           string           `json:"imageUrl"`
	ImageHint          string           `json:"imageHint"`
	WishlistCount      int              `json:"wishlistCount"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          *time.Time       `json:"updatedAt,omitempty"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price,
		HasDiscount:        p.HasDiscount,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage,
		Stock:              p.Stock,
		Category:           string(p.Category),
		Audience:           string(p.Audience),
		Featured:           p.Featured,
		ImageURL:           p.ImageURL,
		ImageHint:          p.ImageHint,
		WishlistCount:      p.WishlistCount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toProductsResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, toProductResponse(&products[i]))
	}
	return res
}

type SnapshotResponse struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	Audience    string          `json:"audience"`
}

func toSnapshotResponse(s domain.ProductSnapshot) SnapshotResponse {
	return SnapshotResponse{
		ProductID:   s.ProductID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		ImageURL:    s.ImageURL,
		Category:    string(s.Category),
		Audience:    string(s.Audience),
	}
}

type CartItemResponse struct {
	SnapshotResponse
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCartItemResponse(item *domain.CartItem) CartItemResponse {
	return CartItemResponse{
		SnapshotResponse: toSnapshotResponse(item.ProductSnapshot),
		Quantity:         item.Quantity,
		UpdatedAt:        item.UpdatedAt,
	}
}

type CartResponse struct {
	ID         string             `json:"id"`
	Items      []CartItemResponse `json:"items"`
	Count      int                `json:"count"`
	TotalPrice decimal.Decimal    `json:"totalPrice" swaggertype:"string"`
}

func toCartResponse(cart *domain.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for i := range cart.Items {
		items = append(items, toCartItemResponse(&cart.Items[i]))
	}
	return CartResponse{
		ID:         cart.ID,
		Items:      items,
		Count:      cart.Count(),
		TotalPrice: cart.TotalPrice(),
	}
}

type AddCartItemRequest struct {
	ProductID string `json:"productId"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// SetQuantityResponse — Item отсутствует, если позиция удалена (quantity <= 0).
type SetQuantityResponse struct {
	Item     *CartItemResponse `json:"item,omitempty"`
	Quantity int               `json:"quantity"`
	Clamped  bool              `json:"clamped"`
	Notice   string            `json:"notice,omitempty"`
}

func toSetQuantityResponse(res *usecase.SetQuantityRes) SetQuantityResponse {
	out := SetQuantityResponse{Quantity: res.Quantity, Clamped: res.Clamped}
	if res.Item != nil {
		item := toCartItemResponse(res.Item)
		out.Item = &item
	}
	if res.Clamped {
		out.Notice = e.ErrStockLimitReached.Error()
	}
	return out
}

type MergeCartRequest struct {
	CartID string `json:"cartId"`
}

type MergeCartResponse struct {
	Merged int `json:"merged"`
}

type WishlistItemResponse struct {
	SnapshotResponse
	CreatedAt time.Time `json:"createdAt"`
}

func toWishlistResponse(items []domain.WishlistItem) []WishlistItemResponse {
	res := make([]WishlistItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, WishlistItemResponse{
			SnapshotResponse: toSnapshotResponse(item.ProductSnapshot),
			CreatedAt:        item.CreatedAt,
		})
	}
	return res
}

type MembershipResponse struct {
	Member bool `json:"member"`
}

type ToggleResponse struct {
	Member        bool `json:"member"`
	WishlistCount int  `json:"wishlistCount"`
}

type MostWishedResponse struct {
	Product       ProductResponse `json:"product"`
	WishlistCount int             `json:"wishlistCount"`
}

func toMostWishedResponse(items []domain.MostWishedItem) []MostWishedResponse {
	res := make([]MostWishedResponse, 0, len(items))
	for i := range items {
		res = append(res, MostWishedResponse{
			Product:       toProductResponse(&items[i].Product),
			WishlistCount: items[i].WishlistCount,
		})
	}
	return res
}

type ShippingPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone,omitempty"`
}

func (s ShippingPayload) toDomain() domain.ShippingInfo {
	return domain.ShippingInfo{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Address: strings.TrimSpace(s.Address),
		City:    strings.TrimSpace(s.City),
		Zip:     strings.TrimSpace(s.Zip),
		Phone:   strings.TrimSpace(s.Phone),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" enums:"Confirmed,Shipped,Delivered,Cancelled"`
}

type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" swaggertype:"string"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    *string             `json:"userId"`
	Shipping  ShippingPayload     `json:"shipping"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total" swaggertype:"string"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt *time.Time          `json:"updatedAt,omitempty"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse(item))
	}
	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Shipping:  ShippingPayload(o.Shipping),
		Items:     items,
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toOrdersResponse(orders []domain.Order) []OrderResponse {
	res := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, toOrderResponse(&orders[i]))
	}
	return res
}
