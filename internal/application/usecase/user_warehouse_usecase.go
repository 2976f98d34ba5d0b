package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// UserWarehouseUseCase gestiona las asignaciones usuario-almacén. Un usuario
// tiene a lo sumo una asignación activa: asignar de nuevo reemplaza la
// anterior en la misma transacción. Cada almacén admite un único encargado
// (rol "1") activo.
type UserWarehouseUseCase struct {
	txRunner IdentityTxRunner
	repo     repository.UserWarehouseRepository
}

// NewUserWarehouseUseCase construye el caso de uso.
func NewUserWarehouseUseCase(txRunner IdentityTxRunner, repo repository.UserWarehouseRepository) *UserWarehouseUseCase {
	return &UserWarehouseUseCase{txRunner: txRunner, repo: repo}
}

// Assign asigna el usuario al almacén, reemplazando su asignación activa si
// la tuviera. Solo administradores.
func (uc *UserWarehouseUseCase) Assign(ctx context.Context, caller entity.Caller, in dto.AssignWarehouseRequest) (*dto.UserWarehouseResponse, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var out *dto.UserWarehouseResponse
	err := uc.txRunner.Run(ctx, func(r IdentityRepos) error {
		user, err := r.Users.GetByID(in.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		warehouse, err := r.Warehouses.GetByID(in.WarehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.NewValidationError("warehouse_id", "el almacén no existe o ha sido eliminado")
		}
		if user.Role == entity.RoleManager {
			taken, err := r.UserWarehouses.ActiveManagerExists(in.WarehouseID, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrConflict
			}
		}

		current, err := r.UserWarehouses.GetActiveByUser(user.ID)
		if err != nil {
			return err
		}
		if current != nil {
			if err := r.UserWarehouses.SetDeleted(current.ID, true, caller.UserID); err != nil {
				return err
			}
		}

		assignment := &entity.UserWarehouse{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			WarehouseID: in.WarehouseID,
			CreatedAt:   time.Now(),
			CreatedBy:   caller.UserID,
		}
		if err := r.UserWarehouses.Create(assignment); err != nil {
			return err
		}
		out = toUserWarehouseResponse(assignment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Unassign desactiva una asignación. Solo administradores.
func (uc *UserWarehouseUseCase) Unassign(caller entity.Caller, id string) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return uc.repo.SetDeleted(id, true, caller.UserID)
}

// GetActiveByUser devuelve la asignación activa de un usuario.
func (uc *UserWarehouseUseCase) GetActiveByUser(userID string) (*dto.UserWarehouseResponse, error) {
	assignment, err := uc.repo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, domain.ErrNotFound
	}
	return toUserWarehouseResponse(assignment), nil
}

// List lista asignaciones activas con paginación. Solo administradores.
func (uc *UserWarehouseUseCase) List(caller entity.Caller, limit, offset int) ([]dto.UserWarehouseResponse, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserWarehouseResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toUserWarehouseResponse(a))
	}
	return items, nil
}

func toUserWarehouseResponse(a *entity.UserWarehouse) *dto.UserWarehouseResponse {
	return &dto.UserWarehouseResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		WarehouseID: a.WarehouseID,
	}
}
