package usecase

import "context"

// TxManager выполняет fn атомарно: все записи внутри применяются вместе или не применяются вовсе.
// Вложенный вызов присоединяется к уже открытой транзакции.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ChangeFeed рассылает уведомления об изменении коллекции (topic) всем инстансам.
type ChangeFeed interface {
	Publish(ctx context.Context, topic string) error
	Subscribe(topic string, fn func()) (unsubscribe func())
}

type ImagesInfra interface {
	UploadImage(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error)
	CleanupImages(keys []string)
}

// EventEncoder сериализует событие заказа для брокера.
type EventEncoder interface {
	EncodeOrderEvent(event *OrderEvent) ([]byte, error)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

const (
	TopicProducts = "products"
	TopicOrders   = "orders"
)

func cartTopic(cartID string) string {
	return "carts:" + cartID
}

func wishlistTopic(userID string) string {
	return "wishlists:" + userID
}
