package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/google/uuid"
)

// OrderUseCase оформляет заказы и ведет их статусы.
// Каждое изменение заказа пишет событие в outbox в той же транзакции.
type OrderUseCase struct {
	orderRepo  OrderRepository
	cartRepo   CartRepository
	outboxRepo OutboxRepository
	encoder    EventEncoder
	txm        TxManager
	logger     logger.Logger
	watcher
}

func NewOrderUC(
	orderRepo OrderRepository,
	cartRepo CartRepository,
	outboxRepo OutboxRepository,
	encoder EventEncoder,
	txm TxManager,
	feed ChangeFeed,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		outboxRepo: outboxRepo,
		encoder:    encoder,
		txm:        txm,
		logger:     logger,
		watcher:    newWatcher(feed, live.NewRegistry(), logger),
	}
}

// Stop закрывает все подписки на заказы.
func (o *OrderUseCase) Stop() {
	o.registry.CloseAll()
}

// Checkout оформляет заказ из текущей корзины идентичности.
func (o *OrderUseCase) Checkout(ctx context.Context, identity domain.Identity, shipping domain.ShippingInfo) (*domain.Order, error) {
	const op = "OrderUseCase.Checkout"

	id, err := cartID(identity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items, err := o.cartRepo.ListItems(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	cart := domain.Cart{ID: id, Items: items}
	order, err := o.Create(ctx, &CreateOrderReq{
		Owner:    identity,
		Shipping: shipping,
		Items:    cart.Items,
		Total:    cart.TotalPrice(),
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// Create сохраняет заказ со статусом Confirmed и очищает корзину владельца в той же транзакции.
// Заказ анонимного посетителя сохраняется без пользователя.
func (o *OrderUseCase) Create(ctx context.Context, req *CreateOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.Create"

	if len(req.Items) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyCart)
	}
	if err := req.Shipping.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	order := &domain.Order{
		ID:        uuid.NewString(),
		Shipping:  req.Shipping,
		Items:     domain.OrderItemsFromCart(req.Items),
		Total:     req.Total,
		Status:    domain.StatusConfirmed,
		CreatedAt: time.Now().UTC(),
	}
	if req.Owner.IsAuthenticated() {
		userID := req.Owner.ID
		order.UserID = &userID
	}

	var created *domain.Order
	err := o.txm.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = o.orderRepo.Create(ctx, order)
		if err != nil {
			return err
		}

		if err := o.writeEvent(ctx, OrderCreated, created, ""); err != nil {
			return err
		}

		if req.Owner.ID == "" {
			return nil
		}
		return o.cartRepo.DeleteCart(ctx, req.Owner.ID)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	topics := []string{TopicOrders}
	if req.Owner.ID != "" {
		topics = append(topics, cartTopic(req.Owner.ID))
	}
	o.publish(ctx, topics...)

	o.logger.Infof("Order %s created, items: %d, total: %s", created.ID, len(created.Items), created.Total.StringFixed(2))
	return created, nil
}

// Get возвращает заказ администратору или владельцу. Чужой заказ не раскрывается.
func (o *OrderUseCase) Get(ctx context.Context, actor domain.Identity, id string) (*domain.Order, error) {
	const op = "OrderUseCase.Get"

	order, err := o.orderRepo.Get(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !actor.IsAdmin() && !order.IsOwnedBy(actor) {
		return nil, e.Wrap(op, e.ErrOrderNotFound)
	}

	return order, nil
}

// List возвращает все заказы администратору и собственные заказы покупателю.
func (o *OrderUseCase) List(ctx context.Context, actor domain.Identity, status *domain.OrderStatus) ([]domain.Order, error) {
	const op = "OrderUseCase.List"

	filter := domain.OrderFilter{Status: status}
	switch {
	case actor.IsAdmin():
	case actor.IsAuthenticated():
		userID := actor.ID
		filter.UserID = &userID
	default:
		return []domain.Order{}, nil
	}

	orders, err := o.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

// UpdateStatus переводит заказ в новый статус.
// Администратор двигает заказ вперед по диаграмме и может отменить подтвержденный заказ.
// Владелец может только отменить подтвержденный заказ. Конкурентное изменение статуса
// обнаруживается сравнением с прочитанным статусом.
func (o *OrderUseCase) UpdateStatus(ctx context.Context, actor domain.Identity, id string, status domain.OrderStatus) (*domain.Order, error) {
	const op = "OrderUseCase.UpdateStatus"

	var updated *domain.Order
	err := o.txm.Do(ctx, func(ctx context.Context) error {
		order, err := o.orderRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if err := checkTransition(actor, order, status); err != nil {
			return err
		}

		ok, err := o.orderRepo.UpdateStatus(ctx, id, order.Status, status)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %w", e.ErrInvalidTransition, e.ErrConcurrentTransition)
		}

		prev := order.Status
		now := time.Now().UTC()
		order.Status = status
		order.UpdatedAt = &now
		updated = order

		return o.writeEvent(ctx, OrderStatusChanged, order, prev)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	o.publish(ctx, TopicOrders)
	return updated, nil
}

// checkTransition проверяет право actor перевести заказ в статус to.
func checkTransition(actor domain.Identity, order *domain.Order, to domain.OrderStatus) error {
	admin := actor.IsAdmin()
	if !admin && !order.IsOwnedBy(actor) {
		return e.ErrForbidden
	}

	if order.Status.IsTerminal() {
		return fmt.Errorf("%w: order is %s", e.ErrInvalidTransition, order.Status)
	}

	if admin {
		if !domain.CanTransition(order.Status, to) {
			return fmt.Errorf("%w: %s -> %s", e.ErrInvalidTransition, order.Status, to)
		}
		return nil
	}

	if to != domain.StatusCancelled || order.Status != domain.StatusConfirmed {
		return e.ErrForbidden
	}

	return nil
}

// Subscribe отдает список заказов actor сразу и после каждого изменения заказов.
func (o *OrderUseCase) Subscribe(ctx context.Context, actor domain.Identity, onChange func([]domain.Order)) (live.Subscription, error) {
	const op = "OrderUseCase.Subscribe"

	if !actor.IsAuthenticated() {
		return nil, e.Wrap(op, e.ErrLoginRequired)
	}

	sub, err := o.watch(ctx, actor.Key(), TopicOrders, func(ctx context.Context) error {
		orders, err := o.List(ctx, actor, nil)
		if err != nil {
			return err
		}
		onChange(orders)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return sub, nil
}

func (o *OrderUseCase) writeEvent(ctx context.Context, eventType OutboxEventType, order *domain.Order, prev domain.OrderStatus) error {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}

	event := &OrderEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Email:      order.Shipping.Email,
		Status:     order.Status,
		PrevStatus: prev,
		Total:      order.Total,
		ItemsCount: count,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := o.encoder.EncodeOrderEvent(event)
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, NewOutboxEvent(event.EventID, eventType, order.ID, payload))
	return err
}
