package converter

import (
	"testing"
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductConverterOriginalPrice(t *testing.T) {
	conv := NewProductConverter()

	plain := domain.DefaultCatalog()[0]
	plain.HasDiscount = false
	plain.OriginalPrice = nil
	plain.DiscountPercentage = nil

	model := conv.ToModel(&plain)
	assert.False(t, model.OriginalPrice.Valid)
	assert.Nil(t, conv.ToEntity(model).OriginalPrice)

	original := decimal.RequireFromString("120.00")
	pct := 25
	discounted := plain
	discounted.HasDiscount = true
	discounted.OriginalPrice = &original
	discounted.DiscountPercentage = &pct

	back := conv.ToEntity(conv.ToModel(&discounted))
	require.NotNil(t, back.OriginalPrice)
	assert.True(t, back.OriginalPrice.Equal(original))
	assert.Equal(t, 25, *back.DiscountPercentage)
	assert.Equal(t, discounted.Category, back.Category)
}

func TestOrderConverterJSONB(t *testing.T) {
	conv := NewOrderConverter()
	uid := "user-1"
	order := &domain.Order{
		ID:     "order-1",
		UserID: &uid,
		Shipping: domain.ShippingInfo{
			Name: "Ann", Email: "ann@example.com", Address: "Main street 1", City: "Berlin", Zip: "10115",
		},
		Items: []domain.OrderItem{
			{ProductID: "1", Name: "Backpack", Price: decimal.RequireFromString("89.99"), Quantity: 2},
		},
		Total:     decimal.RequireFromString("179.98"),
		Status:    domain.StatusConfirmed,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	model, err := conv.ToModel(order)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ann","email":"ann@example.com","address":"Main street 1","city":"Berlin","zip":"10115"}`, string(model.Shipping))
	assert.Equal(t, "Confirmed", model.Status)

	back, err := conv.ToEntity(model)
	require.NoError(t, err)
	assert.Equal(t, order.Shipping, back.Shipping)
	require.Len(t, back.Items, 1)
	assert.True(t, back.Items[0].Price.Equal(order.Items[0].Price))
	assert.Equal(t, 2, back.Items[0].Quantity)

	_, err = conv.ToEntity(&OrderModel{Shipping: []byte("{"), Items: []byte("[]")})
	assert.Error(t, err)
}
