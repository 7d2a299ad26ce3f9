package e

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetailKeepsSentinel(t *testing.T) {
	err := Wrap("OrderUseCase.Checkout", Detail("zip code must be at least 5 characters", ErrInvalidShipping))

	assert.ErrorIs(t, err, ErrInvalidShipping)
	assert.Equal(t, "OrderUseCase.Checkout: invalid shipping information: zip code must be at least 5 characters", err.Error())
	assert.Equal(t, "invalid shipping information: zip code must be at least 5 characters", Message(err, ErrInvalidShipping))
}

func TestMessageWithoutDetail(t *testing.T) {
	err := Wrap("ProductRepo.Get", ErrProductNotFound)
	assert.Equal(t, ErrProductNotFound.Error(), Message(err, ErrProductNotFound))

	assert.Equal(t, ErrForbidden.Error(), Message(Detail("x", errors.New("other")), ErrForbidden))
}
