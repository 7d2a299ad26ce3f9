package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem — позиция корзины: слепок товара и количество (> 0).
type CartItem struct {
	ProductSnapshot
	Quantity  int
	UpdatedAt time.Time
}

func NewCartItem(product *Product, quantity int) *CartItem {
	return &CartItem{
		ProductSnapshot: product.Snapshot(),
		Quantity:        quantity,
		UpdatedAt:       time.Now().UTC(),
	}
}

// Subtotal — цена позиции с учетом количества.
func (c *CartItem) Subtotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Cart — корзина одной идентичности (анонимной или авторизованной).
type Cart struct {
	ID    string
	Items []CartItem
}

// Count — сумма количеств всех позиций.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// TotalPrice — сумма price * quantity.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

// Find возвращает позицию по ID товара.
func (c *Cart) Find(productID string) (*CartItem, bool) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i], true
		}
	}
	return nil, false
}
