package http

import (
	"net/http"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type WishlistHandler struct {
	wishlist usecase.WishlistUC
	logger   logger.Logger
}

func NewWishlistHandler(wishlist usecase.WishlistUC, logger logger.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, logger: logger}
}

// listWishlist
//
//	@Summary	Вишлист пользователя
//	@Tags		wishlist
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		WishlistItemResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/wishlist [get]
func (h *WishlistHandler) listWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.wishlist.List(r.Context(), IdentityFrom(r.Context()))
	if err != nil {
		logFailure(h.logger, err, "list wishlist")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toWishlistResponse(items))
}

// isMember
//
//	@Summary		Есть ли товар в вишлисте
//	@Description	Анонимному посетителю и администратору всегда false
//	@Tags			wishlist
//	@Produce		json
//	@Param			productID	path		string	true	"ID товара"
//	@Success		200			{object}	MembershipResponse
//	@Router			/wishlist/{productID} [get]
func (h *WishlistHandler) isMember(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())
	if identity.IsAuthenticated() && !identity.IsAdmin() {
		// обновляет снимок, по которому отвечает IsMember
		if _, err := h.wishlist.List(r.Context(), identity); err != nil {
			logFailure(h.logger, err, "load wishlist")
			WriteError(w, err)
			return
		}
	}

	WriteSuccess(w, http.StatusOK, MembershipResponse{
		Member: h.wishlist.IsMember(identity, chi.URLParam(r, "productID")),
	})
}

// toggle
//
//	@Summary		Добавить или убрать товар
//	@Description	Переключает наличие товара в вишлисте и возвращает новое значение счетчика товара
//	@Tags			wishlist
//	@Produce		json
//	@Security		BearerAuth
//	@Param			productID	path		string	true	"ID товара"
//	@Success		200			{object}	ToggleResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/wishlist/{productID}/toggle [post]
func (h *WishlistHandler) toggle(w http.ResponseWriter, r *http.Request) {
	res, err := h.wishlist.Toggle(r.Context(), IdentityFrom(r.Context()), chi.URLParam(r, "productID"))
	if err != nil {
		logFailure(h.logger, err, "toggle wishlist")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ToggleResponse{Member: res.Member, WishlistCount: res.WishlistCount})
}

// streamWishlist
//
//	@Summary	Живой вишлист
//	@Tags		wishlist
//	@Produce	text/event-stream
//	@Param		access_token	query	string	false	"JWT"
//	@Success	200
//	@Failure	401	{object}	ErrorResponse
//	@Router		/wishlist/stream [get]
func (h *WishlistHandler) streamWishlist(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())

	serveStream(w, r, h.logger, func(onChange func([]domain.WishlistItem)) (live.Subscription, error) {
		return h.wishlist.Subscribe(r.Context(), identity, onChange)
	}, toWishlistResponse)
}

// mostWished
//
//	@Summary		Рейтинг вишлистов
//	@Description	Товары по числу пользователей, добавивших их в вишлист. Только для администратора
//	@Tags			admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		MostWishedResponse
//	@Failure		403	{object}	ErrorResponse
//	@Router			/admin/wishlist/ranking [get]
func (h *WishlistHandler) mostWished(w http.ResponseWriter, r *http.Request) {
	items, err := h.wishlist.RankMostWished(r.Context(), IdentityFrom(r.Context()))
	if err != nil {
		logFailure(h.logger, err, "rank wishlists")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toMostWishedResponse(items))
}
