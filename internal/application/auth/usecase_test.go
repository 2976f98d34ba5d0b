package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmastock/almacen-api/internal/application/auth"
	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	pkgjwt "github.com/farmastock/almacen-api/pkg/jwt"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testIssuer   = "almacen-api-test"
	testPassword = "contraseña-segura"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles mínimos de los repos de identidad
// ──────────────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[string]*entity.User // por user_name
}

func (r *stubUserRepo) Create(user *entity.User) error        { return nil }
func (r *stubUserRepo) GetByID(id string) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) GetByUserName(userName string) (*entity.User, error) {
	return r.users[userName], nil
}
func (r *stubUserRepo) Update(user *entity.User) error { return nil }
func (r *stubUserRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	return nil
}
func (r *stubUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

type stubUserWarehouseRepo struct {
	assignments map[string]*entity.UserWarehouse // por user_id
}

func (r *stubUserWarehouseRepo) Create(assignment *entity.UserWarehouse) error { return nil }
func (r *stubUserWarehouseRepo) GetByID(id string) (*entity.UserWarehouse, error) {
	return nil, nil
}
func (r *stubUserWarehouseRepo) GetActiveByUser(userID string) (*entity.UserWarehouse, error) {
	return r.assignments[userID], nil
}
func (r *stubUserWarehouseRepo) ActiveManagerExists(warehouseID, excludeUserID string) (bool, error) {
	return false, nil
}
func (r *stubUserWarehouseRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	return nil
}
func (r *stubUserWarehouseRepo) List(limit, offset int) ([]*entity.UserWarehouse, error) {
	return nil, nil
}

func buildAuthUseCase(t *testing.T, role string, withAssignment bool) (*auth.AuthUseCase, *entity.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		ID:           "00000000-0000-0000-0000-000000000010",
		UserName:     "jperez",
		PasswordHash: string(hash),
		Role:         role,
	}
	users := &stubUserRepo{users: map[string]*entity.User{user.UserName: user}}

	assignments := &stubUserWarehouseRepo{assignments: map[string]*entity.UserWarehouse{}}
	if withAssignment {
		assignments.assignments[user.ID] = &entity.UserWarehouse{
			ID:          "00000000-0000-0000-0000-000000000020",
			UserID:      user.ID,
			WarehouseID: "00000000-0000-0000-0000-000000000030",
		}
	}

	uc := auth.NewAuthUseCase(users, assignments, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	})
	return uc, user
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

// Un trabajador con asignación activa recibe un token con rol y almacén.
func TestLogin_TrabajadorConAlmacenEmiteToken(t *testing.T) {
	uc, user := buildAuthUseCase(t, entity.RoleWorker, true)

	out, err := uc.Login(dto.LoginRequest{UserName: "jperez", Password: testPassword})

	require.NoError(t, err)
	userID, role, warehouseID, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleWorker, role)
	assert.Equal(t, "00000000-0000-0000-0000-000000000030", warehouseID)
}

// El token de un administrador no lleva claim de almacén.
func TestLogin_AdminSinClaimDeAlmacen(t *testing.T) {
	uc, _ := buildAuthUseCase(t, entity.RoleAdmin, false)

	out, err := uc.Login(dto.LoginRequest{UserName: "jperez", Password: testPassword})

	require.NoError(t, err)
	_, role, warehouseID, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, role)
	assert.Empty(t, warehouseID)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := buildAuthUseCase(t, entity.RoleWorker, true)

	_, err := uc.Login(dto.LoginRequest{UserName: "jperez", Password: "otra-cosa"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := buildAuthUseCase(t, entity.RoleWorker, true)

	_, err := uc.Login(dto.LoginRequest{UserName: "nadie", Password: testPassword})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Un no-admin sin asignación activa no puede autenticarse: su token no
// tendría alcance utilizable.
func TestLogin_TrabajadorSinAlmacenRechazado(t *testing.T) {
	uc, _ := buildAuthUseCase(t, entity.RoleWorker, false)

	_, err := uc.Login(dto.LoginRequest{UserName: "jperez", Password: testPassword})

	assert.ErrorIs(t, err, domain.ErrNoWarehouse)
}

func TestLogin_CamposVaciosSonValidacion(t *testing.T) {
	uc, _ := buildAuthUseCase(t, entity.RoleWorker, true)

	_, err := uc.Login(dto.LoginRequest{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
