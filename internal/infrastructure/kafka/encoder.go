package kafka

import (
	"time"

	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// EventEncoder сериализует события заказов в google.protobuf.Struct.
type EventEncoder struct{}

func NewEventEncoder() EventEncoder {
	return EventEncoder{}
}

func (EventEncoder) EncodeOrderEvent(event *usecase.OrderEvent) ([]byte, error) {
	fields := map[string]any{
		"event_id":    event.EventID,
		"event_type":  string(event.Type),
		"order_id":    event.OrderID,
		"user_id":     nil,
		"email":       event.Email,
		"status":      string(event.Status),
		"total":       event.Total.StringFixed(2),
		"items_count": event.ItemsCount,
		"occurred_at": event.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	if event.UserID != nil {
		fields["user_id"] = *event.UserID
	}
	if event.PrevStatus != "" {
		fields["previous_status"] = string(event.PrevStatus)
	}

	payload, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := proto.Marshal(payload)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

// DecodeOrderEvent разбирает payload обратно в Struct. Нужен потребителям и nestctl.
func DecodeOrderEvent(data []byte) (*structpb.Struct, error) {
	var payload structpb.Struct
	if err := proto.Unmarshal(data, &payload); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &payload, nil
}
