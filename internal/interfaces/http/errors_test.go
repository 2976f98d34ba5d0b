package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
)

func respondWith(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})

	req, reqErr := http.NewRequest(http.MethodGet, "/x", nil)
	require.NoError(t, reqErr)
	resp, testErr := app.Test(req, -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestRespondError_ErrorInternoNoFiltraDetalles(t *testing.T) {
	internal := fmt.Errorf("scan fila: %w",
		errors.New(`ERROR: syntax error at or near "SELECT * FROM batch" (SQLSTATE 42601)`))

	status, out := respondWith(t, internal)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", out.Code)
	assert.Equal(t, "error interno", out.Message)
	assert.NotContains(t, out.Message, "SELECT")
	assert.NotContains(t, out.Message, "SQLSTATE")
}

func TestRespondError_ErroresDeDominioConservanMensaje(t *testing.T) {
	status, out := respondWith(t, domain.ErrInsufficientStock)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)

	status, out = respondWith(t, domain.ErrDuplicate)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", out.Code)
}
