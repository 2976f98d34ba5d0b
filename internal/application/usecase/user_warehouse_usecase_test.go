package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/application/usecase"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
)

const (
	testOtherWarehouseID = "00000000-0000-0000-0000-00000000aa02"
	testWorkerID         = "00000000-0000-0000-0000-00000000ee01"
	testManagerID        = "00000000-0000-0000-0000-00000000ee02"
)

func newUserWarehouseUseCase(s *identityStore) *usecase.UserWarehouseUseCase {
	return usecase.NewUserWarehouseUseCase(&memIdentityTxRunner{s}, s.repos().UserWarehouses)
}

// seedIdentity puebla dos almacenes y dos usuarios activos: un trabajador y
// una encargada, ninguno asignado todavía.
func seedIdentity(s *identityStore) {
	now := time.Now()
	seedWarehouse(s)
	s.warehouses[testOtherWarehouseID] = &entity.Warehouse{
		ID:        testOtherWarehouseID,
		Name:      "Sucursal Norte",
		CreatedAt: now,
		CreatedBy: testAdminID,
	}
	s.users[testWorkerID] = &entity.User{
		ID:        testWorkerID,
		UserName:  "trabajador",
		Role:      entity.RoleWorker,
		CreatedAt: now,
		CreatedBy: testAdminID,
	}
	s.users[testManagerID] = &entity.User{
		ID:        testManagerID,
		UserName:  "encargada",
		Role:      entity.RoleManager,
		CreatedAt: now,
		CreatedBy: testAdminID,
	}
}

func TestUserWarehouseAssign_CreaAsignacion(t *testing.T) {
	s := newIdentityStore()
	seedIdentity(s)
	uc := newUserWarehouseUseCase(s)

	out, err := uc.Assign(context.Background(), adminCaller(), dto.AssignWarehouseRequest{
		UserID:      testWorkerID,
		WarehouseID: testWarehouseID,
	})
	require.NoError(t, err)
	assert.Equal(t, testWorkerID, out.UserID)
	assert.Equal(t, testWarehouseID, out.WarehouseID)
	require.Len(t, s.userWarehouses, 1)
}

func TestUserWarehouseAssign_ReemplazaAsignacionActiva(t *testing.T) {
	s := newIdentityStore()
	seedIdentity(s)
	uc := newUserWarehouseUseCase(s)

	first, err := uc.Assign(context.Background(), adminCaller(), dto.AssignWarehouseRequest{
		UserID:      testWorkerID,
		WarehouseID: testWarehouseID,
	})
	require.NoError(t, err)

	second, err := uc.Assign(context.Background(), adminCaller(), dto.AssignWarehouseRequest{
		UserID:      testWorkerID,
		WarehouseID: testOtherWarehouseID,
	})
	require.NoError(t, err)

	// La asignación anterior queda desactivada, no borrada físicamente.
	assert.True(t, s.userWarehouses[first.ID].IsDeleted)
	assert.False(t, s.userWarehouses[second.ID].IsDeleted)

	active, err := uc.GetActiveByUser(testWorkerID)
	require.NoError(t, err)
	assert.Equal(t, testOtherWarehouseID, active.WarehouseID)
}

func TestUserWarehouseAssign_SoloAdmin(t *testing.T) {
	s := newIdentityStore()
	seedIdentity(s)
	uc := newUserWarehouseUseCase(s)

	worker := entity.Caller{UserID: testWorkerID, Role: entity.RoleWorker, WarehouseID: testWarehouseID}
	_, err := uc.Assign(context.Background(), worker, dto.AssignWarehouseRequest{
		UserID:      testWorkerID,
		WarehouseID: testWarehouseID,
	})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Empty(t, s.userWarehouses)
}

func TestUserWarehouseAssign_UsuarioInexistente(t *testing.T) {
	s := newIdentityStore()
	seedIdentity(s)
	uc := newUserWarehouseUseCase(s)

	_, err := uc.Assign(context.Background(), adminCaller(), dto.AssignWarehouseRequest{
		UserID:      "00000000-0000-0000-0000-00000000ffff",
		WarehouseID: testWarehouseID,
	})
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestUserWarehouseAssign_AlmacenInexistente(t *testing.T) {
	s := newIdentityStore()
	seedIdentity(s)
	uc := newUserWarehouseUseCase(s)

	_, err := uc.Assign(context.Background(), adminCaller(), dto.AssignWarehouseRequest{
		UserID:      testWorkerID,
		WarehouseID: "00000000-0000-0000-0000-00000000ffff",
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "warehouse_id", vErr.Field)
}

func TestUserWarehouseAssign_SegundoEncargadoRechaza(t *testing.T) {
	s := newIdentityStore()
	seedIdentity(s)
	now := time.Now()
	otherManagerID := "00000000-0000-0000-0000-00000000ee03"
	s.users[otherManagerID] = &entity.User{
		ID:        otherManagerID,
		UserName:  "encargado2",
		Role:      entity.RoleManager,
		CreatedAt: now,
		CreatedBy: testAdminID,
	}
	uc := newUserWarehouseUseCase(s)

	_, err := uc.Assign(context.Background(), adminCaller(), dto.AssignWarehouseRequest{
		UserID:      testManagerID,
		WarehouseID: testWarehouseID,
	})
	require.NoError(t, err)

	_, err = uc.Assign(context.Background(), adminCaller(), dto.AssignWarehouseRequest{
		UserID:      otherManagerID,
		WarehouseID: testWarehouseID,
	})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Len(t, s.userWarehouses, 1)
}

func TestUserWarehouseAssign_EncargadaPuedeMoverse(t *testing.T) {
	s := newIdentityStore()
	seedIdentity(s)
	uc := newUserWarehouseUseCase(s)

	_, err := uc.Assign(context.Background(), adminCaller(), dto.AssignWarehouseRequest{
		UserID:      testManagerID,
		WarehouseID: testWarehouseID,
	})
	require.NoError(t, err)

	// Reasignar a la misma encargada no choca con su propia asignación.
	_, err = uc.Assign(context.Background(), adminCaller(), dto.AssignWarehouseRequest{
		UserID:      testManagerID,
		WarehouseID: testOtherWarehouseID,
	})
	require.NoError(t, err)

	active, err := uc.GetActiveByUser(testManagerID)
	require.NoError(t, err)
	assert.Equal(t, testOtherWarehouseID, active.WarehouseID)
}

func TestUserWarehouseGetActive_SinAsignacion(t *testing.T) {
	s := newIdentityStore()
	seedIdentity(s)
	uc := newUserWarehouseUseCase(s)

	_, err := uc.GetActiveByUser(testWorkerID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserWarehouseUnassign_SoloAdmin(t *testing.T) {
	s := newIdentityStore()
	seedIdentity(s)
	uc := newUserWarehouseUseCase(s)

	out, err := uc.Assign(context.Background(), adminCaller(), dto.AssignWarehouseRequest{
		UserID:      testWorkerID,
		WarehouseID: testWarehouseID,
	})
	require.NoError(t, err)

	worker := entity.Caller{UserID: testWorkerID, Role: entity.RoleWorker, WarehouseID: testWarehouseID}
	err = uc.Unassign(worker, out.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	require.NoError(t, uc.Unassign(adminCaller(), out.ID))
	assert.True(t, s.userWarehouses[out.ID].IsDeleted)
}
