package dto_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
)

func TestValidate_TraduceAValidationError(t *testing.T) {
	in := dto.LoginRequest{UserName: "", Password: "x"}
	err := dto.Validate(in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidate_StructValidoPasa(t *testing.T) {
	in := dto.LoginRequest{UserName: "admin", Password: "contraseña-segura"}
	assert.NoError(t, dto.Validate(in))
}
