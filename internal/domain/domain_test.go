package domain

import (
	"testing"

	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discountedProduct() Product {
	original := decimal.RequireFromString("120.00")
	percent := 20
	return Product{
		ID:                 "p1",
		Name:               "Canvas Weekender Bag",
		Price:              decimal.RequireFromString("96.00"),
		HasDiscount:        true,
		OriginalPrice:      &original,
		DiscountPercentage: &percent,
		Stock:              3,
		Category:           CategoryHandbags,
		Audience:           AudienceHer,
		ImageURL:           "https://img/p1.jpg",
	}
}

func TestProductApplyKeepsAbsentFields(t *testing.T) {
	p := discountedProduct()
	stock := 10

	updated := p.Apply(ProductPatch{Stock: &stock})

	assert.Equal(t, 10, updated.Stock)
	assert.Equal(t, p.Name, updated.Name)
	assert.True(t, updated.Price.Equal(p.Price))
	require.NotNil(t, updated.OriginalPrice)
	assert.Equal(t, 20, *updated.DiscountPercentage)
	assert.Equal(t, "canvas weekender", updated.ImageHint)
}

func TestProductApplyStripsDiscountFields(t *testing.T) {
	p := discountedProduct()
	off := false

	updated := p.Apply(ProductPatch{HasDiscount: &off})

	assert.False(t, updated.HasDiscount)
	assert.Nil(t, updated.OriginalPrice)
	assert.Nil(t, updated.DiscountPercentage)
	require.NoError(t, updated.Validate())
}

func TestProductApplyIgnoresEmptyImageURL(t *testing.T) {
	p := discountedProduct()
	empty := ""

	updated := p.Apply(ProductPatch{ImageURL: &empty})

	assert.Equal(t, "https://img/p1.jpg", updated.ImageURL)
}

func TestProductValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *Product)
		err    error
	}{
		{"empty name", func(p *Product) { p.Name = "  " }, e.ErrProductNameRequired},
		{"zero price", func(p *Product) { p.Price = decimal.Zero }, e.ErrInvalidPrice},
		{"precision", func(p *Product) { p.Price = decimal.RequireFromString("9.999") }, e.ErrPricePrecision},
		{"negative stock", func(p *Product) { p.Stock = -1 }, e.ErrInvalidStock},
		{"category", func(p *Product) { p.Category = "Shoes" }, e.ErrInvalidCategory},
		{"audience", func(p *Product) { p.Audience = "Kids" }, e.ErrInvalidAudience},
		{"discount without original", func(p *Product) { p.OriginalPrice = nil }, e.ErrInvalidDiscount},
		{"original below price", func(p *Product) {
			v := decimal.RequireFromString("50")
			p.OriginalPrice = &v
		}, e.ErrInvalidDiscount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := discountedProduct()
			tc.mutate(&p)
			assert.ErrorIs(t, p.Validate(), tc.err)
		})
	}
}

func TestProductRequireImage(t *testing.T) {
	p := discountedProduct()
	require.NoError(t, p.RequireImage())

	p.ImageURL = " "
	assert.ErrorIs(t, p.RequireImage(), e.ErrImageRequired)
}

func TestProductFilterMatch(t *testing.T) {
	p := discountedProduct()
	p.Description = "Roomy bag for short trips"
	her := AudienceHer
	him := AudienceHim
	featured := true

	assert.True(t, ProductFilter{}.Match(&p))
	assert.True(t, ProductFilter{Query: "WEEKENDER"}.Match(&p))
	assert.True(t, ProductFilter{Query: "trips"}.Match(&p))
	assert.True(t, ProductFilter{Query: "handbags"}.Match(&p))
	assert.True(t, ProductFilter{Audience: &her}.Match(&p))
	assert.False(t, ProductFilter{Audience: &him}.Match(&p))
	assert.False(t, ProductFilter{Featured: &featured}.Match(&p))
	assert.False(t, ProductFilter{Query: "wallet"}.Match(&p))
}

func TestCartTotals(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductSnapshot: ProductSnapshot{ProductID: "a", Price: decimal.NewFromInt(10)}, Quantity: 2},
		{ProductSnapshot: ProductSnapshot{ProductID: "b", Price: decimal.NewFromInt(5)}, Quantity: 1},
	}}

	assert.Equal(t, 3, cart.Count())
	assert.True(t, cart.TotalPrice().Equal(decimal.NewFromInt(25)), cart.TotalPrice().String())

	item, ok := cart.Find("b")
	require.True(t, ok)
	assert.Equal(t, 1, item.Quantity)

	_, ok = cart.Find("c")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusConfirmed, StatusShipped))
	assert.True(t, CanTransition(StatusConfirmed, StatusDelivered))
	assert.True(t, CanTransition(StatusShipped, StatusDelivered))
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))

	assert.False(t, CanTransition(StatusConfirmed, StatusConfirmed))
	assert.False(t, CanTransition(StatusShipped, StatusConfirmed))
	assert.False(t, CanTransition(StatusShipped, StatusCancelled))
	assert.False(t, CanTransition(StatusDelivered, StatusShipped))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))
}

func TestShippingInfoValidate(t *testing.T) {
	valid := ShippingInfo{Name: "Ana", Email: "ana@example.com", Address: "12 Main St", City: "Lagos", Zip: "10001"}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Email = "not-an-email"
	assert.ErrorIs(t, bad.Validate(), e.ErrInvalidShipping)

	bad = valid
	bad.Zip = "123"
	assert.ErrorIs(t, bad.Validate(), e.ErrInvalidShipping)

	bad = valid
	bad.Name = "A"
	assert.ErrorIs(t, bad.Validate(), e.ErrInvalidShipping)
}

func TestIdentityVariants(t *testing.T) {
	anon := Anonymous("cart-1")
	cust := Customer("u1", "u1@example.com")
	admin := Admin("a1", "admin@example.com")

	assert.False(t, anon.IsAuthenticated())
	assert.True(t, cust.IsAuthenticated())
	assert.False(t, cust.IsAdmin())
	assert.True(t, admin.IsAdmin())
	assert.NotEqual(t, Anonymous("u1").Key(), cust.Key())
}

func TestDefaultCatalogIsValid(t *testing.T) {
	for _, p := range DefaultCatalog() {
		require.NoError(t, p.Validate(), p.Name)
		require.NoError(t, p.RequireImage(), p.Name)
	}
}

func TestOrderOwnership(t *testing.T) {
	uid := "u1"
	o := Order{UserID: &uid}

	assert.True(t, o.IsOwnedBy(Customer("u1", "")))
	assert.False(t, o.IsOwnedBy(Customer("u2", "")))
	assert.False(t, o.IsOwnedBy(Anonymous("u1")))

	guest := Order{}
	assert.False(t, guest.IsOwnedBy(Customer("u1", "")))
}
