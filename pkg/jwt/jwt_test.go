package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmastock/almacen-api/pkg/jwt"
)

const (
	secret      = "clave-de-prueba"
	userID      = "00000000-0000-0000-0000-000000000001"
	warehouseID = "00000000-0000-0000-0000-000000000002"
	issuer      = "almacen-api-test"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate(secret, userID, "2", warehouseID, issuer, 60)
	require.NoError(t, err)

	gotUser, gotRole, gotWarehouse, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "2", gotRole)
	assert.Equal(t, warehouseID, gotWarehouse)
}

// El claim de almacén es opcional: vacío para administradores.
func TestGenerateParse_SinAlmacen(t *testing.T) {
	token, err := jwt.Generate(secret, userID, "0", "", issuer, 60)
	require.NoError(t, err)

	_, gotRole, gotWarehouse, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "0", gotRole)
	assert.Empty(t, gotWarehouse)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := jwt.Generate(secret, userID, "2", warehouseID, issuer, 60)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otra-clave", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(secret, userID, "2", warehouseID, issuer, -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", userID, "2", warehouseID, issuer, 60)
	assert.Error(t, err)
}
