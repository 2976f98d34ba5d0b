package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/application/usecase"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
)

const (
	testWarehouseID = "00000000-0000-0000-0000-00000000aa01"
	testAdminID     = "00000000-0000-0000-0000-00000000ad01"
)

func adminCaller() entity.Caller {
	return entity.Caller{UserID: testAdminID, Role: entity.RoleAdmin}
}

func seedWarehouse(s *identityStore) {
	s.warehouses[testWarehouseID] = &entity.Warehouse{
		ID:        testWarehouseID,
		Name:      "Almacén Central",
		CreatedAt: time.Now(),
		CreatedBy: testAdminID,
	}
}

func newPersonUseCase(s *identityStore) *usecase.PersonUseCase {
	return usecase.NewPersonUseCase(&memIdentityTxRunner{s}, s.repos().Persons)
}

func biographicRequest() dto.CreatePersonRequest {
	return dto.CreatePersonRequest{
		FirstName: "María",
		LastName:  "Quispe",
		CI:        "7894561",
		Email:     "maria.quispe@example.com",
		Phone:     "+591 70000000",
		BirthDate: "1990-05-12",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta biográfica
// ──────────────────────────────────────────────────────────────────────────────

func TestPersonCreate_SoloBiografica(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	out, err := uc.Create(context.Background(), adminCaller(), biographicRequest())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "María", out.FirstName)
	assert.Equal(t, "1990-05-12", out.BirthDate)

	require.Len(t, s.persons, 1)
	// Sin user_name no se crea usuario ni asignación.
	assert.Empty(t, s.users)
	assert.Empty(t, s.userWarehouses)
}

func TestPersonCreate_CIDuplicadaRechaza(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	_, err := uc.Create(context.Background(), adminCaller(), biographicRequest())
	require.NoError(t, err)

	in := biographicRequest()
	in.Email = "otra@example.com"
	_, err = uc.Create(context.Background(), adminCaller(), in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "ci", vErr.Field)
	assert.Len(t, s.persons, 1)
}

func TestPersonCreate_EmailDuplicadoRechaza(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	_, err := uc.Create(context.Background(), adminCaller(), biographicRequest())
	require.NoError(t, err)

	in := biographicRequest()
	in.CI = "1234567"
	_, err = uc.Create(context.Background(), adminCaller(), in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
	assert.Len(t, s.persons, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Incorporación completa: persona + usuario + asignación
// ──────────────────────────────────────────────────────────────────────────────

func TestPersonCreate_IncorporacionCompleta(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	in := biographicRequest()
	in.UserName = "mquispe"
	in.Password = "contraseña-segura"
	in.Role = entity.RoleWorker
	in.WarehouseID = testWarehouseID

	out, err := uc.Create(context.Background(), adminCaller(), in)
	require.NoError(t, err)

	// El usuario comparte el ID de la persona.
	user, ok := s.users[out.ID]
	require.True(t, ok)
	assert.Equal(t, "mquispe", user.UserName)
	assert.Equal(t, entity.RoleWorker, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("contraseña-segura")))

	require.Len(t, s.userWarehouses, 1)
	for _, a := range s.userWarehouses {
		assert.Equal(t, out.ID, a.UserID)
		assert.Equal(t, testWarehouseID, a.WarehouseID)
		assert.False(t, a.IsDeleted)
	}
}

func TestPersonCreate_AdminSinAlmacen(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	in := biographicRequest()
	in.UserName = "admin2"
	in.Password = "contraseña-segura"
	in.Role = entity.RoleAdmin

	out, err := uc.Create(context.Background(), adminCaller(), in)
	require.NoError(t, err)

	// Los administradores no reciben asignación de almacén.
	assert.Empty(t, s.userWarehouses)
	assert.Contains(t, s.users, out.ID)
}

func TestPersonCreate_UserNameSinPassword(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	in := biographicRequest()
	in.UserName = "mquispe"
	in.Role = entity.RoleWorker
	in.WarehouseID = testWarehouseID

	_, err := uc.Create(context.Background(), adminCaller(), in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
	assert.Empty(t, s.persons)
}

func TestPersonCreate_UserNameSinRol(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	in := biographicRequest()
	in.UserName = "mquispe"
	in.Password = "contraseña-segura"

	_, err := uc.Create(context.Background(), adminCaller(), in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "role", vErr.Field)
}

func TestPersonCreate_NoAdminSinAlmacenRechaza(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	in := biographicRequest()
	in.UserName = "mquispe"
	in.Password = "contraseña-segura"
	in.Role = entity.RoleWorker

	_, err := uc.Create(context.Background(), adminCaller(), in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "warehouse_id", vErr.Field)
}

func TestPersonCreate_AlmacenInexistenteRechaza(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	in := biographicRequest()
	in.UserName = "mquispe"
	in.Password = "contraseña-segura"
	in.Role = entity.RoleWorker
	in.WarehouseID = "00000000-0000-0000-0000-00000000ffff"

	_, err := uc.Create(context.Background(), adminCaller(), in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "warehouse_id", vErr.Field)
	assert.Empty(t, s.userWarehouses)
}

func TestPersonCreate_UserNameOcupadoRechaza(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	in := biographicRequest()
	in.UserName = "mquispe"
	in.Password = "contraseña-segura"
	in.Role = entity.RoleWorker
	in.WarehouseID = testWarehouseID
	_, err := uc.Create(context.Background(), adminCaller(), in)
	require.NoError(t, err)

	other := biographicRequest()
	other.CI = "1234567"
	other.Email = "otra@example.com"
	other.UserName = "mquispe"
	other.Password = "contraseña-segura"
	other.Role = entity.RoleWorker
	other.WarehouseID = testWarehouseID

	_, err = uc.Create(context.Background(), adminCaller(), other)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "user_name", vErr.Field)
	assert.Len(t, s.users, 1)
}

func TestPersonCreate_SegundoEncargadoRechaza(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	in := biographicRequest()
	in.UserName = "encargada1"
	in.Password = "contraseña-segura"
	in.Role = entity.RoleManager
	in.WarehouseID = testWarehouseID
	_, err := uc.Create(context.Background(), adminCaller(), in)
	require.NoError(t, err)

	other := biographicRequest()
	other.CI = "1234567"
	other.Email = "otra@example.com"
	other.UserName = "encargada2"
	other.Password = "contraseña-segura"
	other.Role = entity.RoleManager
	other.WarehouseID = testWarehouseID

	_, err = uc.Create(context.Background(), adminCaller(), other)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Len(t, s.userWarehouses, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización y consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestPersonUpdate_EmailDuplicadoRechaza(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	first, err := uc.Create(context.Background(), adminCaller(), biographicRequest())
	require.NoError(t, err)

	in := biographicRequest()
	in.CI = "1234567"
	in.Email = "otra@example.com"
	second, err := uc.Create(context.Background(), adminCaller(), in)
	require.NoError(t, err)

	taken := first.Email
	_, err = uc.Update(adminCaller(), second.ID, dto.UpdatePersonRequest{Email: &taken})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
}

func TestPersonCheckCI(t *testing.T) {
	s := newIdentityStore()
	seedWarehouse(s)
	uc := newPersonUseCase(s)

	_, err := uc.Create(context.Background(), adminCaller(), biographicRequest())
	require.NoError(t, err)

	exists, err := uc.CheckCIExists("7894561")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = uc.CheckCIExists("0000000")
	require.NoError(t, err)
	assert.False(t, exists)
}
