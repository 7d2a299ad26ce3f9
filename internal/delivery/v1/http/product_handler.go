package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ProductHandler struct {
	catalog      usecase.CatalogUC
	logger       logger.Logger
	maxImageSize int64
}

func NewProductHandler(catalog usecase.CatalogUC, logger logger.Logger, maxImageSize int64) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger, maxImageSize: maxImageSize}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает товары каталога с фильтрами по категории, аудитории, флагу featured и строке поиска
//	@Tags			products
//	@Produce		json
//	@Param			category	query		string	false	"Категория"	Enums(Backpack, Handbags, Accessory)
//	@Param			audience	query		string	false	"Аудитория"	Enums(For Him, For Her)
//	@Param			featured	query		bool	false	"Только избранные"
//	@Param			q			query		string	false	"Поиск по названию и описанию"
//	@Success		200			{array}		ProductResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductsResponse(p.catalog.List(filter)))
}

// getProduct
//
//	@Summary	Товар по id
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := p.catalog.GetByID(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, e.ErrProductNotFound)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(&product))
}

// streamProducts
//
//	@Summary		Живой каталог
//	@Description	Server-Sent Events: событие snapshot с отфильтрованным каталогом при подключении и после каждого изменения
//	@Tags			products
//	@Produce		text/event-stream
//	@Param			category	query	string	false	"Категория"
//	@Param			audience	query	string	false	"Аудитория"
//	@Param			featured	query	bool	false	"Только избранные"
//	@Param			q			query	string	false	"Поиск"
//	@Success		200
//	@Router			/products/stream [get]
func (p *ProductHandler) streamProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	identity := IdentityFrom(r.Context())
	if !identity.IsAuthenticated() {
		// у анонимных зрителей нет общего scope, каждый поток получает свой
		identity = domain.Anonymous("stream-" + uuid.NewString())
	}

	serveStream(w, r, p.logger, func(onChange func([]domain.Product)) (live.Subscription, error) {
		return p.catalog.Subscribe(r.Context(), identity, filter, onChange)
	}, toProductsResponse)
}

// createProduct
//
//	@Summary		Добавление товара
//	@Description	Принимает multipart/form-data с файлом image или JSON с imageUrl. Только для администратора
//	@Tags			products
//	@Accept			multipart/form-data
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			name				formData	string	true	"Название"
//	@Param			description			formData	string	false	"Описание"
//	@Param			price				formData	string	true	"Цена, не более 2 знаков после запятой"
//	@Param			stock				formData	int		true	"Остаток"
//	@Param			category			formData	string	true	"Категория"
//	@Param			audience			formData	string	true	"Аудитория"
//	@Param			featured			formData	bool	false	"Избранный"
//	@Param			hasDiscount			formData	bool	false	"Есть скидка"
//	@Param			originalPrice		formData	string	false	"Цена до скидки"
//	@Param			discountPercentage	formData	int		false	"Процент скидки"
//	@Param			imageUrl			formData	string	false	"URL изображения"
//	@Param			image				formData	file	false	"Изображение"
//	@Success		201					{object}	ProductResponse
//	@Failure		400					{object}	ErrorResponse
//	@Failure		401					{object}	ErrorResponse
//	@Failure		403					{object}	ErrorResponse
//	@Failure		502					{object}	ErrorResponse
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	payload, image, err := p.readProduct(w, r)
	if err != nil {
		p.logger.Warnf("%d %s: %v", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err)
		WriteError(w, err)
		return
	}

	req, err := payload.toCreateReq(image)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.catalog.Create(r.Context(), IdentityFrom(r.Context()), req)
	if err != nil {
		logFailure(p.logger, err, "create product")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// updateProduct
//
//	@Summary		Изменение товара
//	@Description	Частичное обновление: меняются только переданные поля. Только для администратора
//	@Tags			products
//	@Accept			json
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"ID товара"
//	@Param			product	body		ProductPayload	false	"Изменяемые поля"
//	@Success		200		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/products/{id} [patch]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	payload, image, err := p.readProduct(w, r)
	if err != nil {
		p.logger.Warnf("%d %s: %v", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err)
		WriteError(w, err)
		return
	}

	product, err := p.catalog.Update(r.Context(), IdentityFrom(r.Context()), chi.URLParam(r, "id"), payload.toUpdateReq(image))
	if err != nil {
		logFailure(p.logger, err, "update product")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID товара"
//	@Success	204
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := p.catalog.Delete(r.Context(), IdentityFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		logFailure(p.logger, err, "delete product")
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readProduct разбирает тело запроса: multipart с файлом или JSON.
func (p *ProductHandler) readProduct(w http.ResponseWriter, r *http.Request) (*ProductPayload, *usecase.ProductImage, error) {
	const maxMemory = 8 << 20

	// запас на остальные поля формы
	r.Body = http.MaxBytesReader(w, r.Body, p.maxImageSize+maxMemory)

	if !isMultipart(r) {
		var payload ProductPayload
		if err := decodeJSON(r, &payload); err != nil {
			return nil, nil, err
		}
		return &payload, nil, nil
	}

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		return nil, nil, err
	}

	payload, err := productPayloadFromForm(r.MultipartForm)
	if err != nil {
		return nil, nil, err
	}

	image, err := parseImage(r.MultipartForm, p.maxImageSize)
	if err != nil {
		return nil, nil, err
	}

	return payload, image, nil
}

func parseProductFilter(r *http.Request) (domain.ProductFilter, error) {
	q := r.URL.Query()
	filter := domain.ProductFilter{Query: strings.TrimSpace(q.Get("q"))}

	if v := q.Get("category"); v != "" {
		c := domain.Category(v)
		if !c.Valid() {
			return filter, e.ErrInvalidCategory
		}
		filter.Category = &c
	}
	if v := q.Get("audience"); v != "" {
		a := domain.Audience(v)
		if !a.Valid() {
			return filter, e.ErrInvalidAudience
		}
		filter.Audience = &a
	}
	if v := q.Get("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, e.Detail("featured must be a boolean", e.ErrStatusBadRequest)
		}
		filter.Featured = &b
	}

	return filter, nil
}
