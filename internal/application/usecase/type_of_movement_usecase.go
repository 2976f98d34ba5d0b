package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// TypeOfMovementUseCase casos de uso CRUD para tipos de movimiento. El
// sentido (IN/OUT) es una columna propia: el nombre es solo presentación y
// cambiarlo nunca altera cómo el tipo afecta al stock.
type TypeOfMovementUseCase struct {
	repo repository.TypeOfMovementRepository
}

// NewTypeOfMovementUseCase construye el caso de uso.
func NewTypeOfMovementUseCase(repo repository.TypeOfMovementRepository) *TypeOfMovementUseCase {
	return &TypeOfMovementUseCase{repo: repo}
}

// Create crea un tipo de movimiento.
func (uc *TypeOfMovementUseCase) Create(caller entity.Caller, in dto.CreateTypeOfMovementRequest) (*dto.TypeOfMovementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	typeOfMovement := &entity.TypeOfMovement{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Direction:   entity.MovementDirection(in.Direction),
		CreatedAt:   time.Now(),
		CreatedBy:   caller.UserID,
	}
	if err := uc.repo.Create(typeOfMovement); err != nil {
		return nil, err
	}
	return toTypeOfMovementResponse(typeOfMovement), nil
}

// GetByID obtiene un tipo activo.
func (uc *TypeOfMovementUseCase) GetByID(id string) (*dto.TypeOfMovementResponse, error) {
	typeOfMovement, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if typeOfMovement == nil {
		return nil, domain.ErrNotFound
	}
	return toTypeOfMovementResponse(typeOfMovement), nil
}

// Update actualiza un tipo de movimiento (incluido su sentido).
func (uc *TypeOfMovementUseCase) Update(caller entity.Caller, id string, in dto.UpdateTypeOfMovementRequest) (*dto.TypeOfMovementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	typeOfMovement, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if typeOfMovement == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		typeOfMovement.Name = *in.Name
	}
	if in.Description != nil {
		typeOfMovement.Description = *in.Description
	}
	if in.Direction != nil {
		typeOfMovement.Direction = entity.MovementDirection(*in.Direction)
	}
	typeOfMovement.UpdatedAt = time.Now()
	typeOfMovement.UpdatedBy = caller.UserID
	if err := uc.repo.Update(typeOfMovement); err != nil {
		return nil, err
	}
	return toTypeOfMovementResponse(typeOfMovement), nil
}

// List lista tipos activos con paginación.
func (uc *TypeOfMovementUseCase) List(limit, offset int) ([]dto.TypeOfMovementResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TypeOfMovementResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTypeOfMovementResponse(t))
	}
	return items, nil
}

// Delete borra lógicamente un tipo de movimiento.
func (uc *TypeOfMovementUseCase) Delete(caller entity.Caller, id string) error {
	return uc.repo.SetDeleted(id, true, caller.UserID)
}

// Restore reactiva un tipo borrado.
func (uc *TypeOfMovementUseCase) Restore(caller entity.Caller, id string) error {
	return uc.repo.SetDeleted(id, false, caller.UserID)
}

func toTypeOfMovementResponse(t *entity.TypeOfMovement) *dto.TypeOfMovementResponse {
	return &dto.TypeOfMovementResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Direction:   string(t.Direction),
	}
}
