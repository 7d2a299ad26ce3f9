package e

import (
	"errors"
	"fmt"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки хранилища
	ErrStoreUnavailable = fmt.Errorf("store is unavailable, please try again later")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrInvalidJSON          = fmt.Errorf("invalid json body")
	ErrMissingFields        = fmt.Errorf("required fields are missing")
	ErrInvalidPrice         = fmt.Errorf("price must be a positive amount")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrInvalidStock         = fmt.Errorf("stock must be a non-negative integer")
	ErrInvalidCategory      = fmt.Errorf("unknown product category")
	ErrInvalidAudience      = fmt.Errorf("unknown product audience")
	ErrInvalidDiscount      = fmt.Errorf("discount requires an original price above the price and a percentage between 1 and 99")
	ErrImageRequired        = fmt.Errorf("product image is required")
	ErrFileTooLarge         = fmt.Errorf("file is too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrInvalidQuantity      = fmt.Errorf("quantity must be an integer")
	ErrInvalidShipping      = fmt.Errorf("invalid shipping information")
	ErrEmptyCart            = fmt.Errorf("your cart is empty")
	ErrCartIDRequired       = fmt.Errorf("cart id is required")
	ErrInvalidStatus        = fmt.Errorf("unknown order status")
	ErrMergeSource          = fmt.Errorf("merge source must be an anonymous cart")

	// 401 / 403
	ErrLoginRequired = fmt.Errorf("please log in to continue")
	ErrInvalidToken  = fmt.Errorf("invalid or expired token")
	ErrForbidden     = fmt.Errorf("you are not allowed to perform this action")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCartItemNotFound = fmt.Errorf("cart item not found")
	ErrOrderNotFound    = fmt.Errorf("order not found")

	// 409 Conflict
	ErrOutOfStock           = fmt.Errorf("product is currently out of stock")
	ErrStockLimitExceeded   = fmt.Errorf("you cannot add more of this product, stock limit exceeded")
	ErrStockLimitReached    = fmt.Errorf("requested quantity exceeds stock, quantity reduced to what is available")
	ErrInvalidTransition    = fmt.Errorf("order status cannot be changed this way")
	ErrConcurrentTransition = fmt.Errorf("order status was changed by someone else")

	// 502 Bad Gateway
	ErrUploadFailed = fmt.Errorf("image upload failed")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// Store помечает ошибку хранилища как ErrStoreUnavailable, сохраняя исходную причину.
func Store(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrStoreUnavailable, err)
}

// DetailError уточняет клиентскую ошибку: какое поле и что с ним не так.
// Detail безопасно показывать клиенту, в отличие от остальной цепочки Wrap.
type DetailError struct {
	Detail string
	Err    error
}

func (d *DetailError) Error() string {
	return d.Err.Error() + ": " + d.Detail
}

func (d *DetailError) Unwrap() error {
	return d.Err
}

// Detail оборачивает сентинел пояснением для клиента.
func Detail(detail string, err error) error {
	return &DetailError{Detail: detail, Err: err}
}

// Message возвращает текст сентинела с пояснением, если оно есть в цепочке.
func Message(err, sentinel error) string {
	var d *DetailError
	if errors.As(err, &d) && errors.Is(d.Err, sentinel) {
		return sentinel.Error() + ": " + d.Detail
	}
	return sentinel.Error()
}
