package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// HandlingUnitUseCase casos de uso CRUD para unidades de manejo (blíster,
// frasco, caja...). Catálogo global.
type HandlingUnitUseCase struct {
	repo repository.HandlingUnitRepository
}

// NewHandlingUnitUseCase construye el caso de uso.
func NewHandlingUnitUseCase(repo repository.HandlingUnitRepository) *HandlingUnitUseCase {
	return &HandlingUnitUseCase{repo: repo}
}

// Create crea una unidad de manejo.
func (uc *HandlingUnitUseCase) Create(caller entity.Caller, in dto.CreateHandlingUnitRequest) (*dto.HandlingUnitResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	unit := &entity.HandlingUnit{
		ID:        uuid.New().String(),
		NameUnit:  in.NameUnit,
		CreatedAt: time.Now(),
		CreatedBy: caller.UserID,
	}
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	return toHandlingUnitResponse(unit), nil
}

// GetByID obtiene una unidad activa.
func (uc *HandlingUnitUseCase) GetByID(id string) (*dto.HandlingUnitResponse, error) {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	return toHandlingUnitResponse(unit), nil
}

// Update actualiza una unidad de manejo.
func (uc *HandlingUnitUseCase) Update(caller entity.Caller, id string, in dto.UpdateHandlingUnitRequest) (*dto.HandlingUnitResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if in.NameUnit != nil {
		unit.NameUnit = *in.NameUnit
	}
	unit.UpdatedAt = time.Now()
	unit.UpdatedBy = caller.UserID
	if err := uc.repo.Update(unit); err != nil {
		return nil, err
	}
	return toHandlingUnitResponse(unit), nil
}

// List lista unidades activas con paginación.
func (uc *HandlingUnitUseCase) List(limit, offset int) ([]dto.HandlingUnitResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HandlingUnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toHandlingUnitResponse(u))
	}
	return items, nil
}

// Delete borra lógicamente una unidad de manejo.
func (uc *HandlingUnitUseCase) Delete(caller entity.Caller, id string) error {
	return uc.repo.SetDeleted(id, true, caller.UserID)
}

// Restore reactiva una unidad borrada.
func (uc *HandlingUnitUseCase) Restore(caller entity.Caller, id string) error {
	return uc.repo.SetDeleted(id, false, caller.UserID)
}

func toHandlingUnitResponse(u *entity.HandlingUnit) *dto.HandlingUnitResponse {
	return &dto.HandlingUnitResponse{
		ID:       u.ID,
		NameUnit: u.NameUnit,
	}
}
