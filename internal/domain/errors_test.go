package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/salesflow-api/internal/domain"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("add product: %w", domain.Invalid("unit_price", "no puede ser negativo"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "unit_price", ve.Field)
	assert.Equal(t, "unit_price: no puede ser negativo", ve.Error())
}
