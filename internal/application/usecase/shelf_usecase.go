package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// ShelfUseCase casos de uso CRUD para estantes, con alcance de almacén: un
// no administrador solo opera sobre estantes de su almacén asignado.
type ShelfUseCase struct {
	repo          repository.ShelfRepository
	warehouseRepo repository.WarehouseRepository
}

// NewShelfUseCase construye el caso de uso.
func NewShelfUseCase(repo repository.ShelfRepository, warehouseRepo repository.WarehouseRepository) *ShelfUseCase {
	return &ShelfUseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// Create crea un estante en un almacén visible para el caller.
func (uc *ShelfUseCase) Create(caller entity.Caller, in dto.CreateShelfRequest) (*dto.ShelfResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !caller.CanAccessWarehouse(in.WarehouseID) {
		return nil, domain.ErrForbidden
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.NewValidationError("warehouse_id", "el almacén no existe o ha sido eliminado")
	}
	shelf := &entity.Shelf{
		ID:          uuid.New().String(),
		Name:        in.Name,
		WarehouseID: in.WarehouseID,
		CreatedAt:   time.Now(),
		CreatedBy:   caller.UserID,
	}
	if err := uc.repo.Create(shelf); err != nil {
		return nil, err
	}
	return toShelfResponse(shelf), nil
}

// GetByID obtiene un estante visible para el caller.
func (uc *ShelfUseCase) GetByID(caller entity.Caller, id string) (*dto.ShelfResponse, error) {
	shelf, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shelf == nil || !caller.CanAccessWarehouse(shelf.WarehouseID) {
		return nil, domain.ErrNotFound
	}
	return toShelfResponse(shelf), nil
}

// Update actualiza un estante; mover de almacén exige acceso a ambos.
func (uc *ShelfUseCase) Update(caller entity.Caller, id string, in dto.UpdateShelfRequest) (*dto.ShelfResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	shelf, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, domain.ErrNotFound
	}
	if !caller.CanAccessWarehouse(shelf.WarehouseID) {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		shelf.Name = *in.Name
	}
	if in.WarehouseID != nil && *in.WarehouseID != shelf.WarehouseID {
		if !caller.CanAccessWarehouse(*in.WarehouseID) {
			return nil, domain.ErrForbidden
		}
		warehouse, err := uc.warehouseRepo.GetByID(*in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, domain.NewValidationError("warehouse_id", "el almacén no existe o ha sido eliminado")
		}
		shelf.WarehouseID = *in.WarehouseID
	}
	shelf.UpdatedAt = time.Now()
	shelf.UpdatedBy = caller.UserID
	if err := uc.repo.Update(shelf); err != nil {
		return nil, err
	}
	return toShelfResponse(shelf), nil
}

// List lista estantes activos del alcance del caller.
func (uc *ShelfUseCase) List(caller entity.Caller, limit, offset int) ([]dto.ShelfResponse, error) {
	list, err := uc.repo.List(caller.ScopeWarehouseID(), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShelfResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShelfResponse(s))
	}
	return items, nil
}

// Delete borra lógicamente un estante del alcance del caller.
func (uc *ShelfUseCase) Delete(caller entity.Caller, id string) error {
	return uc.setDeleted(caller, id, true)
}

// Restore reactiva un estante borrado.
func (uc *ShelfUseCase) Restore(caller entity.Caller, id string) error {
	return uc.setDeleted(caller, id, false)
}

func (uc *ShelfUseCase) setDeleted(caller entity.Caller, id string, deleted bool) error {
	shelf, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if shelf == nil {
		if deleted {
			return domain.ErrNotFound
		}
		// Restaurar una fila borrada (invisible para lecturas normales)
		// queda reservado al administrador.
		if !caller.IsAdmin() {
			return domain.ErrForbidden
		}
	} else if !caller.CanAccessWarehouse(shelf.WarehouseID) {
		return domain.ErrForbidden
	}
	return uc.repo.SetDeleted(id, deleted, caller.UserID)
}

func toShelfResponse(s *entity.Shelf) *dto.ShelfResponse {
	return &dto.ShelfResponse{
		ID:          s.ID,
		Name:        s.Name,
		WarehouseID: s.WarehouseID,
	}
}
