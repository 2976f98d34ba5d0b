package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para almacenes. Las mutaciones son de
// administrador; las lecturas de un no administrador se limitan a su propio
// almacén (fuera de alcance responde como inexistente).
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea un nuevo almacén.
func (uc *WarehouseUseCase) Create(caller entity.Caller, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: time.Now(),
		CreatedBy: caller.UserID,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene un almacén visible para el caller.
func (uc *WarehouseUseCase) GetByID(caller entity.Caller, id string) (*dto.WarehouseResponse, error) {
	if !caller.CanAccessWarehouse(id) {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza un almacén.
func (uc *WarehouseUseCase) Update(caller entity.Caller, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	warehouse.UpdatedAt = time.Now()
	warehouse.UpdatedBy = caller.UserID
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista almacenes: todos para el administrador, solo el propio para el
// resto de roles.
func (uc *WarehouseUseCase) List(caller entity.Caller, limit, offset int) ([]dto.WarehouseResponse, error) {
	if !caller.IsAdmin() {
		return uc.listOwn(caller)
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return items, nil
}

func (uc *WarehouseUseCase) listOwn(caller entity.Caller) ([]dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(caller.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return []dto.WarehouseResponse{}, nil
	}
	return []dto.WarehouseResponse{*toWarehouseResponse(warehouse)}, nil
}

// Delete borra lógicamente un almacén.
func (uc *WarehouseUseCase) Delete(caller entity.Caller, id string) error {
	return uc.setDeleted(caller, id, true)
}

// Restore reactiva un almacén borrado.
func (uc *WarehouseUseCase) Restore(caller entity.Caller, id string) error {
	return uc.setDeleted(caller, id, false)
}

func (uc *WarehouseUseCase) setDeleted(caller entity.Caller, id string, deleted bool) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return uc.repo.SetDeleted(id, deleted, caller.UserID)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:      w.ID,
		Name:    w.Name,
		Address: w.Address,
	}
}
