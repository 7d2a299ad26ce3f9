package kafka

import (
	"testing"
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestEncodeOrderEvent(t *testing.T) {
	uid := "user-1"
	event := &usecase.OrderEvent{
		EventID:    "evt-1",
		Type:       usecase.OrderStatusChanged,
		OrderID:    "order-1",
		UserID:     &uid,
		Email:      "ana@example.com",
		Status:     domain.StatusShipped,
		PrevStatus: domain.StatusConfirmed,
		Total:      decimal.RequireFromString("129.5"),
		ItemsCount: 3,
		OccurredAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	data, err := NewEventEncoder().EncodeOrderEvent(event)
	require.NoError(t, err)

	decoded, err := DecodeOrderEvent(data)
	require.NoError(t, err)

	fields := decoded.GetFields()
	assert.Equal(t, "ORDER_STATUS_CHANGED", fields["event_type"].GetStringValue())
	assert.Equal(t, "order-1", fields["order_id"].GetStringValue())
	assert.Equal(t, "user-1", fields["user_id"].GetStringValue())
	assert.Equal(t, "Shipped", fields["status"].GetStringValue())
	assert.Equal(t, "Confirmed", fields["previous_status"].GetStringValue())
	assert.Equal(t, "129.50", fields["total"].GetStringValue())
	assert.Equal(t, float64(3), fields["items_count"].GetNumberValue())
	assert.Equal(t, "2024-05-01T10:00:00Z", fields["occurred_at"].GetStringValue())
}

func TestEncodeGuestOrderEvent(t *testing.T) {
	data, err := NewEventEncoder().EncodeOrderEvent(&usecase.OrderEvent{
		EventID: "evt-2", Type: usecase.OrderCreated, OrderID: "order-2", Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)

	decoded, err := DecodeOrderEvent(data)
	require.NoError(t, err)

	_, isNull := decoded.GetFields()["user_id"].GetKind().(*structpb.Value_NullValue)
	assert.True(t, isNull)
	assert.NotContains(t, decoded.GetFields(), "previous_status")
}
