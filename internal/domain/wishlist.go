package domain

import "time"

// WishlistItem — товар в вишлисте пользователя, ключ (UserID, ProductID).
type WishlistItem struct {
	UserID string
	ProductSnapshot
	CreatedAt time.Time
}

func NewWishlistItem(userID string, product *Product) *WishlistItem {
	return &WishlistItem{
		UserID:          userID,
		ProductSnapshot: product.Snapshot(),
		CreatedAt:       time.Now().UTC(),
	}
}

// ProductTally — сколько пользователей добавили товар в вишлист.
type ProductTally struct {
	ProductID string
	Count     int
}

// MostWishedItem — строка рейтинга для администратора.
type MostWishedItem struct {
	Product       Product
	WishlistCount int
}
