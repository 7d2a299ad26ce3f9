package http

import (
	"net/http"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders usecase.OrderUC
	logger logger.Logger
}

func NewOrderHandler(orders usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// checkout
//
//	@Summary		Оформить заказ
//	@Description	Создает заказ из текущей корзины (анонимной или пользователя) и очищает ее
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-Cart-ID	header		string			false	"ID анонимной корзины"
//	@Param			shipping	body		ShippingPayload	true	"Доставка"
//	@Success		201			{object}	OrderResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Router			/orders [post]
func (h *OrderHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req ShippingPayload
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	order, err := h.orders.Checkout(r.Context(), IdentityFrom(r.Context()), req.toDomain())
	if err != nil {
		logFailure(h.logger, err, "checkout")
		WriteError(w, err)
		return
	}

	h.logger.Infof("Order %s placed, total %s", order.ID, order.Total.StringFixed(2))
	WriteSuccess(w, http.StatusCreated, toOrderResponse(order))
}

// listOrders
//
//	@Summary		Заказы
//	@Description	Администратору все заказы, покупателю собственные, анонимному посетителю пустой список
//	@Tags			orders
//	@Produce		json
//	@Param			status	query		string	false	"Статус"	Enums(Confirmed, Shipped, Delivered, Cancelled)
//	@Success		200		{array}		OrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/orders [get]
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	var status *domain.OrderStatus
	if v := r.URL.Query().Get("status"); v != "" {
		st, err := domain.ParseOrderStatus(v)
		if err != nil {
			WriteError(w, err)
			return
		}
		status = &st
	}

	orders, err := h.orders.List(r.Context(), IdentityFrom(r.Context()), status)
	if err != nil {
		logFailure(h.logger, err, "list orders")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrdersResponse(orders))
}

// getOrder
//
//	@Summary	Заказ по id
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID заказа"
//	@Success	200	{object}	OrderResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/orders/{id} [get]
func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), IdentityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		logFailure(h.logger, err, "get order")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(order))
}

// updateStatus
//
//	@Summary		Сменить статус заказа
//	@Description	Администратор двигает заказ по диаграмме статусов, владелец может отменить подтвержденный заказ
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"ID заказа"
//	@Param			status	body		UpdateStatusRequest	true	"Новый статус"
//	@Success		200		{object}	OrderResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/orders/{id}/status [patch]
func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		WriteError(w, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), IdentityFrom(r.Context()), chi.URLParam(r, "id"), status)
	if err != nil {
		logFailure(h.logger, err, "update order status")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(order))
}

// streamOrders
//
//	@Summary	Живой список заказов
//	@Tags		orders
//	@Produce	text/event-stream
//	@Param		access_token	query	string	false	"JWT"
//	@Success	200
//	@Failure	401	{object}	ErrorResponse
//	@Router		/orders/stream [get]
func (h *OrderHandler) streamOrders(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())

	serveStream(w, r, h.logger, func(onChange func([]domain.Order)) (live.Subscription, error) {
		return h.orders.Subscribe(r.Context(), identity, onChange)
	}, toOrdersResponse)
}
