package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// errorStatuses проверяются по порядку, побеждает первое совпадение.
var errorStatuses = []struct {
	err  error
	code int
}{
	{e.ErrExpectedMultipart, http.StatusBadRequest},
	{e.ErrInvalidJSON, http.StatusBadRequest},
	{e.ErrMissingFields, http.StatusBadRequest},
	{e.ErrInvalidPrice, http.StatusBadRequest},
	{e.ErrPricePrecision, http.StatusBadRequest},
	{e.ErrProductNameRequired, http.StatusBadRequest},
	{e.ErrInvalidStock, http.StatusBadRequest},
	{e.ErrInvalidCategory, http.StatusBadRequest},
	{e.ErrInvalidAudience, http.StatusBadRequest},
	{e.ErrInvalidDiscount, http.StatusBadRequest},
	{e.ErrImageRequired, http.StatusBadRequest},
	{e.ErrInvalidQuantity, http.StatusBadRequest},
	{e.ErrInvalidShipping, http.StatusBadRequest},
	{e.ErrEmptyCart, http.StatusBadRequest},
	{e.ErrCartIDRequired, http.StatusBadRequest},
	{e.ErrInvalidStatus, http.StatusBadRequest},
	{e.ErrMergeSource, http.StatusBadRequest},
	{e.ErrStatusBadRequest, http.StatusBadRequest},
	{e.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	{e.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
	{e.ErrLoginRequired, http.StatusUnauthorized},
	{e.ErrInvalidToken, http.StatusUnauthorized},
	{e.ErrForbidden, http.StatusForbidden},
	{e.ErrProductNotFound, http.StatusNotFound},
	{e.ErrCartItemNotFound, http.StatusNotFound},
	{e.ErrOrderNotFound, http.StatusNotFound},
	{e.ErrOutOfStock, http.StatusConflict},
	{e.ErrStockLimitExceeded, http.StatusConflict},
	{e.ErrStockLimitReached, http.StatusConflict},
	{e.ErrConcurrentTransition, http.StatusConflict},
	{e.ErrInvalidTransition, http.StatusConflict},
	{e.ErrUploadFailed, http.StatusBadGateway},
	{e.ErrStoreUnavailable, http.StatusServiceUnavailable},
}

// ToHTTPResponse переводит ошибку в код и сообщение для клиента.
// Наружу отдается текст сентинела и пояснение e.Detail, остальные детали остаются в логах.
func ToHTTPResponse(err error) (int, string) {
	for _, s := range errorStatuses {
		if errors.Is(err, s.err) {
			return s.code, e.Message(err, s.err)
		}
	}
	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

// logFailure пишет серверные ошибки как error, отказы клиенту как debug.
func logFailure(log logger.Logger, err error, action string) {
	if code, _ := ToHTTPResponse(err); code >= http.StatusInternalServerError {
		log.Errorf(err, "Failed to %s", action)
		return
	}
	log.Debugf("Rejected %s: %v", action, err)
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// decodeJSON читает тело запроса в dst. Неизвестные поля запрещены.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Detail(err.Error(), e.ErrInvalidJSON)
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !isMultipart(r) {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return e.Wrap(whereami.WhereAmI(), e.ErrFileTooLarge)
		}
		return fmt.Errorf("%w: %w", e.ErrStatusBadRequest, err)
	}
	return nil
}

// parsePrice разбирает строку вида "599.99". Точность проверяется в домене.
func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, e.Detail(fmt.Sprintf("%q is not a number", s), e.ErrInvalidPrice)
	}
	return d, nil
}

// formValue возвращает значение поля формы и признак его наличия.
func formValue(form *multipart.Form, key string) (string, bool) {
	vs, ok := form.Value[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// productPayloadFromForm собирает payload из multipart-полей. Отсутствующие поля остаются nil.
func productPayloadFromForm(form *multipart.Form) (*ProductPayload, error) {
	var p ProductPayload

	if v, ok := formValue(form, "name"); ok {
		p.Name = &v
	}
	if v, ok := formValue(form, "description"); ok {
		p.Description = &v
	}
	if v, ok := formValue(form, "imageUrl"); ok {
		p.ImageURL = &v
	}
	if v, ok := formValue(form, "category"); ok {
		p.Category = &v
	}
	if v, ok := formValue(form, "audience"); ok {
		p.Audience = &v
	}

	if v, ok := formValue(form, "price"); ok {
		d, err := parsePrice(v)
		if err != nil {
			return nil, err
		}
		p.Price = &d
	}
	if v, ok := formValue(form, "originalPrice"); ok && v != "" {
		d, err := parsePrice(v)
		if err != nil {
			return nil, e.Detail("originalPrice is not a number", e.ErrInvalidDiscount)
		}
		p.OriginalPrice = &d
	}

	var err error
	if p.Stock, err = formInt(form, "stock", e.ErrInvalidStock); err != nil {
		return nil, err
	}
	if p.DiscountPercentage, err = formInt(form, "discountPercentage", e.ErrInvalidDiscount); err != nil {
		return nil, err
	}
	if p.HasDiscount, err = formBool(form, "hasDiscount"); err != nil {
		return nil, err
	}
	if p.Featured, err = formBool(form, "featured"); err != nil {
		return nil, err
	}

	return &p, nil
}

func formInt(form *multipart.Form, key string, sentinel error) (*int, error) {
	v, ok := formValue(form, key)
	if !ok || v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, e.Wrap(key, sentinel)
	}
	return &n, nil
}

func formBool(form *multipart.Form, key string) (*bool, error) {
	v, ok := formValue(form, key)
	if !ok || v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return nil, e.Detail(key+" must be a boolean", e.ErrStatusBadRequest)
	}
	return &b, nil
}

// parseImage читает файл поля image, если он передан.
func parseImage(form *multipart.Form, maxSize int64) (*usecase.ProductImage, error) {
	files := form.File["image"]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	data, mimeType, err := readFile(fh, maxSize)
	if err != nil {
		return nil, err
	}
	return usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename), nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if fh.Size > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
