package http

import (
	"net/http"
	"strings"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// CartHandler обслуживает корзину. Анонимная корзина адресуется заголовком X-Cart-ID.
type CartHandler struct {
	cart   usecase.CartUC
	logger logger.Logger
}

func NewCartHandler(cart usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cart: cart, logger: logger}
}

// getCart
//
//	@Summary		Корзина
//	@Description	Для анонимного посетителя без X-Cart-ID выдается новый id в заголовке ответа
//	@Tags			cart
//	@Produce		json
//	@Param			X-Cart-ID	header		string	false	"ID анонимной корзины"
//	@Success		200			{object}	CartResponse
//	@Header			200			{string}	X-Cart-ID	"ID анонимной корзины"
//	@Router			/cart [get]
func (c *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := c.cart.Get(r.Context(), cartOwner(w, r))
	if err != nil {
		logFailure(c.logger, err, "get cart")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}

// addItem
//
//	@Summary		Добавить товар в корзину
//	@Description	Увеличивает количество на единицу. Нельзя превысить остаток товара
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Cart-ID	header		string				false	"ID анонимной корзины"
//	@Param			item		body		AddCartItemRequest	true	"Товар"
//	@Success		200			{object}	CartItemResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Router			/cart/items [post]
func (c *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		WriteError(w, e.Detail("productId", e.ErrMissingFields))
		return
	}

	item, err := c.cart.AddItem(r.Context(), cartOwner(w, r), req.ProductID)
	if err != nil {
		logFailure(c.logger, err, "add cart item")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartItemResponse(item))
}

// setQuantity
//
//	@Summary		Установить количество
//	@Description	Количество 0 и меньше удаляет позицию. Количество выше остатка урезается, clamped=true
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Cart-ID	header		string				false	"ID анонимной корзины"
//	@Param			productID	path		string				true	"ID товара"
//	@Param			quantity	body		SetQuantityRequest	true	"Количество"
//	@Success		200			{object}	SetQuantityResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/cart/items/{productID} [put]
func (c *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, e.Wrap(err.Error(), e.ErrInvalidQuantity))
		return
	}
	if req.Quantity == nil {
		WriteError(w, e.ErrInvalidQuantity)
		return
	}

	res, err := c.cart.SetQuantity(r.Context(), cartOwner(w, r), chi.URLParam(r, "productID"), *req.Quantity)
	if err != nil {
		logFailure(c.logger, err, "set cart quantity")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSetQuantityResponse(res))
}

// removeItem
//
//	@Summary	Удалить позицию
//	@Tags		cart
//	@Param		X-Cart-ID	header	string	false	"ID анонимной корзины"
//	@Param		productID	path	string	true	"ID товара"
//	@Success	204
//	@Router		/cart/items/{productID} [delete]
func (c *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	if err := c.cart.RemoveItem(r.Context(), cartOwner(w, r), chi.URLParam(r, "productID")); err != nil {
		logFailure(c.logger, err, "remove cart item")
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// clearCart
//
//	@Summary	Очистить корзину
//	@Tags		cart
//	@Param		X-Cart-ID	header	string	false	"ID анонимной корзины"
//	@Success	204
//	@Router		/cart [delete]
func (c *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := c.cart.Clear(r.Context(), cartOwner(w, r)); err != nil {
		logFailure(c.logger, err, "clear cart")
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// mergeCart
//
//	@Summary		Перенести анонимную корзину
//	@Description	Вызывается после входа: позиции анонимной корзины переносятся в корзину пользователя без проверки остатка, количество из анонимной корзины заменяет прежнее
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			X-Cart-ID	header		string				false	"ID анонимной корзины"
//	@Param			source		body		MergeCartRequest	false	"ID анонимной корзины, если заголовок не передан"
//	@Success		200			{object}	MergeCartResponse
//	@Failure		401			{object}	ErrorResponse
//	@Router			/cart/merge [post]
func (c *CartHandler) mergeCart(w http.ResponseWriter, r *http.Request) {
	sourceID := anonymousCartID(r)
	if sourceID == "" && r.ContentLength != 0 {
		var req MergeCartRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteError(w, err)
			return
		}
		sourceID = strings.TrimSpace(req.CartID)
	}
	if sourceID == "" {
		WriteError(w, e.ErrCartIDRequired)
		return
	}

	merged, err := c.cart.MergeOnLogin(r.Context(), domain.Anonymous(sourceID), IdentityFrom(r.Context()))
	if err != nil {
		logFailure(c.logger, err, "merge cart")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, MergeCartResponse{Merged: merged})
}

// streamCart
//
//	@Summary		Живая корзина
//	@Description	Server-Sent Events: состояние корзины при подключении и после каждого изменения. Для EventSource id корзины передается в cart_id, токен в access_token
//	@Tags			cart
//	@Produce		text/event-stream
//	@Param			cart_id			query	string	false	"ID анонимной корзины"
//	@Param			access_token	query	string	false	"JWT"
//	@Success		200
//	@Router			/cart/stream [get]
func (c *CartHandler) streamCart(w http.ResponseWriter, r *http.Request) {
	identity := cartOwner(w, r)

	serveStream(w, r, c.logger, func(onChange func(*domain.Cart)) (live.Subscription, error) {
		return c.cart.Subscribe(r.Context(), identity, onChange)
	}, toCartResponse)
}
