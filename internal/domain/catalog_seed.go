package domain

import "github.com/shopspring/decimal"

// CatalogSeededMarker — маркер одноразового заполнения каталога.
const CatalogSeededMarker = "catalog_seeded"

// DefaultCatalog возвращает стартовый каталог витрины.
func DefaultCatalog() []Product {
	products := []Product{
		{
			ID:          "1",
			Name:        "Urban Commuter Backpack",
			Description: "Water-resistant canvas backpack with a padded laptop sleeve and hidden back pocket.",
			Price:       decimal.RequireFromString("89.99"),
			Stock:       25,
			Category:    CategoryBackpack,
			Audience:    AudienceHim,
			Featured:    true,
			ImageURL:    "https://images.elvo.store/catalog/urban-commuter-backpack.jpg",
		},
		{
			ID:          "2",
			Name:        "Trail Roll-Top Backpack",
			Description: "Roll-top closure, reinforced base and side bottle pockets for weekend trips.",
			Price:       decimal.RequireFromString("119.00"),
			Stock:       12,
			Category:    CategoryBackpack,
			Audience:    AudienceHim,
			ImageURL:    "https://images.elvo.store/catalog/trail-roll-top-backpack.jpg",
		},
		{
			ID:          "3",
			Name:        "Structured Leather Tote",
			Description: "Full-grain leather tote with a zip compartment and detachable pouch.",
			Price:       decimal.RequireFromString("149.00"),
			HasDiscount: true,
			Stock:       8,
			Category:    CategoryHandbags,
			Audience:    AudienceHer,
			Featured:    true,
			ImageURL:    "https://images.elvo.store/catalog/structured-leather-tote.jpg",
		},
		{
			ID:          "4",
			Name:        "Mini Crossbody Bag",
			Description: "Compact crossbody bag with an adjustable chain strap and magnetic flap.",
			Price:       decimal.RequireFromString("64.50"),
			Stock:       30,
			Category:    CategoryHandbags,
			Audience:    AudienceHer,
			ImageURL:    "https://images.elvo.store/catalog/mini-crossbody-bag.jpg",
		},
		{
			ID:          "5",
			Name:        "Bifold Leather Wallet",
			Description: "Slim bifold wallet with six card slots and RFID lining.",
			Price:       decimal.RequireFromString("39.99"),
			Stock:       40,
			Category:    CategoryAccessory,
			Audience:    AudienceHim,
			ImageURL:    "https://images.elvo.store/catalog/bifold-leather-wallet.jpg",
		},
		{
			ID:          "6",
			Name:        "Silk Scarf Twilly",
			Description: "Printed silk twilly to tie on a bag handle or wear as a hair ribbon.",
			Price:       decimal.RequireFromString("29.00"),
			Stock:       0,
			Category:    CategoryAccessory,
			Audience:    AudienceHer,
			ImageURL:    "https://images.elvo.store/catalog/silk-scarf-twilly.jpg",
		},
	}

	original := decimal.RequireFromString("199.00")
	percent := 25
	products[2].OriginalPrice = &original
	products[2].DiscountPercentage = &percent

	for i := range products {
		products[i].Normalize()
	}

	return products
}
