package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusConfirmed OrderStatus = "Confirmed"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", e.ErrInvalidStatus
}

// IsTerminal — из Delivered и Cancelled переходов нет.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// rank — позиция статуса на пути доставки.
func (s OrderStatus) rank() int {
	switch s {
	case StatusConfirmed:
		return 0
	case StatusShipped:
		return 1
	case StatusDelivered:
		return 2
	}
	return -1
}

// CanTransition описывает диаграмму статусов:
// Confirmed -> Shipped -> Delivered (вперед, в том числе через шаг) и Confirmed -> Cancelled.
func CanTransition(from, to OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return from == StatusConfirmed
	}
	return from.rank() >= 0 && to.rank() > from.rank()
}

// ShippingInfo — данные доставки из формы оформления заказа.
type ShippingInfo struct {
	Name    string
	Email   string
	Address string
	City    string
	Zip     string
	Phone   string
}

// Validate повторяет правила формы checkout.
func (s *ShippingInfo) Validate() error {
	switch {
	case len([]rune(strings.TrimSpace(s.Name))) < 2:
		return e.Detail("name must be at least 2 characters", e.ErrInvalidShipping)
	case !validEmail(s.Email):
		return e.Detail("please enter a valid email address", e.ErrInvalidShipping)
	case len([]rune(strings.TrimSpace(s.Address))) < 5:
		return e.Detail("address must be at least 5 characters", e.ErrInvalidShipping)
	case len([]rune(strings.TrimSpace(s.City))) < 2:
		return e.Detail("city must be at least 2 characters", e.ErrInvalidShipping)
	case len([]rune(strings.TrimSpace(s.Zip))) < 5:
		return e.Detail("zip code must be at least 5 characters", e.ErrInvalidShipping)
	}
	return nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == strings.TrimSpace(s)
}

// OrderItem — неизменяемый слепок позиции корзины на момент оформления.
type OrderItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	ImageURL  string
}

// Order описывает заказ. Items и Total не меняются после создания.
type Order struct {
	ID        string
	UserID    *string // nil для гостевого заказа
	Shipping  ShippingInfo
	Items     []OrderItem
	Total     decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// IsOwnedBy проверяет, что заказ принадлежит авторизованному пользователю.
func (o *Order) IsOwnedBy(identity Identity) bool {
	return identity.IsAuthenticated() && o.UserID != nil && *o.UserID == identity.ID
}

// OrderItemsFromCart снимает слепок позиций корзины.
func OrderItemsFromCart(items []CartItem) []OrderItem {
	res := make([]OrderItem, 0, len(items))
	for _, item := range items {
		res = append(res, OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		})
	}
	return res
}

// OrderFilter — фильтр списка заказов. nil UserID — все заказы.
type OrderFilter struct {
	UserID *string
	Status *OrderStatus
}
