package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmastock/almacen-api/internal/domain/entity"
	apphttp "github.com/farmastock/almacen-api/internal/interfaces/http"
	pkgjwt "github.com/farmastock/almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret   = "test-secret-key-for-unit-tests"
	testUserID      = "00000000-0000-0000-0000-000000000001"
	testWarehouseID = "00000000-0000-0000-0000-000000000002"
	testIssuer      = "almacen-api-test"
	testExpMin      = 60
)

// buildTestApp construye una aplicación Fiber mínima con la cadena de
// middlewares de la API protegida y un handler que refleja el Caller.
func buildTestApp(extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RoleWarehouseMiddleware(),
	}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		caller := apphttp.GetCaller(c)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"user_id":      caller.UserID,
			"role":         caller.Role,
			"warehouse_id": caller.WarehouseID,
		})
	})
	app.Get("/protected", handlers...)
	return app
}

// tokenFor genera un JWT con rol y almacén dados.
func tokenFor(t *testing.T, role, warehouseID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, warehouseID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinTokenRechaza(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenMalFormadoRechaza(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Token abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaIncorrectaRechaza(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, entity.RoleAdmin, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// El token válido carga el Caller completo en el contexto del request.
func TestAuthMiddleware_TokenValidoCargaCaller(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, entity.RoleWorker, testWarehouseID))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, entity.RoleWorker, body["role"])
	assert.Equal(t, testWarehouseID, body["warehouse_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RoleWarehouseMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestRoleWarehouse_RolDesconocidoRechaza(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, "99", testWarehouseID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Un no administrador sin claim de almacén no tiene alcance utilizable.
func TestRoleWarehouse_TrabajadorSinAlmacenRechaza(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, entity.RoleWorker, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRoleWarehouse_AdminSinAlmacenPasa(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, entity.RoleAdmin, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleAdmin))
	resp := doRequest(t, app, tokenFor(t, entity.RoleAdmin, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_TrabajadorNoAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleAdmin))
	resp := doRequest(t, app, tokenFor(t, entity.RoleWorker, testWarehouseID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RoleAdmin, entity.RoleManager))
	resp := doRequest(t, app, tokenFor(t, entity.RoleManager, testWarehouseID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
