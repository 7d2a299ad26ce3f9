package domain

import (
	"strings"
	"time"

	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryBackpack  Category = "Backpack"
	CategoryHandbags  Category = "Handbags"
	CategoryAccessory Category = "Accessory"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryBackpack, CategoryHandbags, CategoryAccessory:
		return true
	}
	return false
}

type Audience string

const (
	AudienceHim Audience = "For Him"
	AudienceHer Audience = "For Her"
)

func (a Audience) Valid() bool {
	return a == AudienceHim || a == AudienceHer
}

// Product описывает товар каталога
type Product struct {
	ID                 string
	Name               string
	Description        string
	Price              decimal.Decimal
	HasDiscount        bool
	OriginalPrice      *decimal.Decimal // только при HasDiscount
	DiscountPercentage *int             // только при HasDiscount
	Stock              int
	Category           Category
	Audience           Audience
	Featured           bool
	ImageURL           string
	ImageHint          string
	WishlistCount      int // денормализованный счетчик вишлистов
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// ProductPatch — частичное обновление товара, nil-поля не меняются.
type ProductPatch struct {
	Name               *string
	Description        *string
	Price              *decimal.Decimal
	HasDiscount        *bool
	OriginalPrice      *decimal.Decimal
	DiscountPercentage *int
	Stock              *int
	Category           *Category
	Audience           *Audience
	Featured           *bool
	ImageURL           *string
}

// Apply сливает patch с текущим товаром и нормализует результат.
func (p Product) Apply(patch ProductPatch) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.HasDiscount != nil {
		p.HasDiscount = *patch.HasDiscount
	}
	if patch.OriginalPrice != nil {
		v := *patch.OriginalPrice
		p.OriginalPrice = &v
	}
	if patch.DiscountPercentage != nil {
		v := *patch.DiscountPercentage
		p.DiscountPercentage = &v
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Audience != nil {
		p.Audience = *patch.Audience
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.ImageURL != nil && *patch.ImageURL != "" {
		p.ImageURL = *patch.ImageURL
	}

	p.Normalize()
	return p
}

// Normalize убирает поля скидки без флага HasDiscount и пересчитывает ImageHint.
func (p *Product) Normalize() {
	if !p.HasDiscount {
		p.OriginalPrice = nil
		p.DiscountPercentage = nil
	}
	p.ImageHint = ImageHint(p.Name)
}

// Validate проверяет инварианты товара.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return e.ErrProductNameRequired
	}
	if !p.Price.IsPositive() {
		return e.ErrInvalidPrice
	}
	if p.Price.Exponent() < -2 {
		return e.ErrPricePrecision
	}
	if p.Stock < 0 {
		return e.ErrInvalidStock
	}
	if !p.Category.Valid() {
		return e.ErrInvalidCategory
	}
	if !p.Audience.Valid() {
		return e.ErrInvalidAudience
	}
	if p.HasDiscount {
		if p.OriginalPrice == nil || p.DiscountPercentage == nil {
			return e.ErrInvalidDiscount
		}
		if !p.OriginalPrice.GreaterThan(p.Price) {
			return e.ErrInvalidDiscount
		}
		if *p.DiscountPercentage < 1 || *p.DiscountPercentage > 99 {
			return e.ErrInvalidDiscount
		}
	}
	return nil
}

// RequireImage проверяет, что у товара есть изображение.
func (p *Product) RequireImage() error {
	if strings.TrimSpace(p.ImageURL) == "" {
		return e.ErrImageRequired
	}
	return nil
}

// Snapshot возвращает копию полей товара, которая хранится в корзине, вишлисте и заказе.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Audience:    p.Audience,
	}
}

// ProductSnapshot — неизменяемый слепок товара на момент записи.
type ProductSnapshot struct {
	ProductID   string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    Category
	Audience    Audience
}

// ImageHint — первые два слова названия в нижнем регистре.
func ImageHint(name string) string {
	words := strings.Fields(strings.ToLower(name))
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}

// ProductFilter — фильтр витрины.
type ProductFilter struct {
	Category *Category
	Audience *Audience
	Featured *bool
	Query    string
}

// Match проверяет товар на соответствие фильтру. Query ищется без учета регистра
// в названии, описании и категории.
func (f ProductFilter) Match(p *Product) bool {
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.Audience != nil && p.Audience != *f.Audience {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}

	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(string(p.Category)), q)
}
