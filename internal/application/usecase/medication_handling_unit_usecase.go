package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// MedicationHandlingUnitUseCase casos de uso para la unidad
// medicamento-manejo y su detalle 1:1 de manejo especial. El alcance de
// almacén se resuelve vía el estante de la unidad.
type MedicationHandlingUnitUseCase struct {
	repo           repository.MedicationHandlingUnitRepository
	medicationRepo repository.MedicationRepository
	unitRepo       repository.HandlingUnitRepository
	shelfRepo      repository.ShelfRepository
}

// NewMedicationHandlingUnitUseCase construye el caso de uso.
func NewMedicationHandlingUnitUseCase(
	repo repository.MedicationHandlingUnitRepository,
	medicationRepo repository.MedicationRepository,
	unitRepo repository.HandlingUnitRepository,
	shelfRepo repository.ShelfRepository,
) *MedicationHandlingUnitUseCase {
	return &MedicationHandlingUnitUseCase{
		repo:           repo,
		medicationRepo: medicationRepo,
		unitRepo:       unitRepo,
		shelfRepo:      shelfRepo,
	}
}

// Create crea la unidad con su detalle sobre un estante del alcance del caller.
func (uc *MedicationHandlingUnitUseCase) Create(caller entity.Caller, in dto.CreateMedicationHandlingUnitRequest) (*dto.MedicationHandlingUnitResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	shelf, err := uc.shelfRepo.GetByID(in.ShelfID)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, domain.NewValidationError("shelf_id", "el estante no existe o ha sido eliminado")
	}
	if !caller.CanAccessWarehouse(shelf.WarehouseID) {
		return nil, domain.ErrForbidden
	}
	medication, err := uc.medicationRepo.GetByID(in.MedicationID)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, domain.NewValidationError("medication_id", "el medicamento no existe o ha sido eliminado")
	}
	handlingUnit, err := uc.unitRepo.GetByID(in.HandlingUnitID)
	if err != nil {
		return nil, err
	}
	if handlingUnit == nil {
		return nil, domain.NewValidationError("handling_unit_id", "la unidad de manejo no existe o ha sido eliminada")
	}

	now := time.Now()
	unit := &entity.MedicationHandlingUnit{
		ID:             uuid.New().String(),
		Concentration:  in.Concentration,
		MedicationID:   in.MedicationID,
		HandlingUnitID: in.HandlingUnitID,
		ShelfID:        in.ShelfID,
		CreatedAt:      now,
		CreatedBy:      caller.UserID,
		Detail: &entity.DetailMedicationHandlingUnit{
			ColdChain:      in.ColdChain,
			Photosensitive: in.Photosensitive,
			Controlled:     in.Controlled,
			Oncological:    in.Oncological,
			CreatedAt:      now,
			CreatedBy:      caller.UserID,
		},
	}
	unit.Detail.ID = unit.ID
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	return toMedicationHandlingUnitResponse(unit), nil
}

// GetByID obtiene la unidad (con detalle) visible para el caller.
func (uc *MedicationHandlingUnitUseCase) GetByID(caller entity.Caller, id string) (*dto.MedicationHandlingUnitResponse, error) {
	unit, err := uc.getScoped(caller, id)
	if err != nil {
		return nil, err
	}
	return toMedicationHandlingUnitResponse(unit), nil
}

// Update actualiza concentración, estante y banderas de detalle.
func (uc *MedicationHandlingUnitUseCase) Update(caller entity.Caller, id string, in dto.UpdateMedicationHandlingUnitRequest) (*dto.MedicationHandlingUnitResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	unit, err := uc.getScoped(caller, id)
	if err != nil {
		return nil, err
	}
	if in.Concentration != nil {
		unit.Concentration = *in.Concentration
	}
	if in.ShelfID != nil && *in.ShelfID != unit.ShelfID {
		shelf, err := uc.shelfRepo.GetByID(*in.ShelfID)
		if err != nil {
			return nil, err
		}
		if shelf == nil {
			return nil, domain.NewValidationError("shelf_id", "el estante no existe o ha sido eliminado")
		}
		if !caller.CanAccessWarehouse(shelf.WarehouseID) {
			return nil, domain.ErrForbidden
		}
		unit.ShelfID = *in.ShelfID
	}
	now := time.Now()
	unit.UpdatedAt = now
	unit.UpdatedBy = caller.UserID
	if err := uc.repo.Update(unit); err != nil {
		return nil, err
	}

	if in.ColdChain != nil || in.Photosensitive != nil || in.Controlled != nil || in.Oncological != nil {
		detail := unit.Detail
		if detail == nil {
			detail = &entity.DetailMedicationHandlingUnit{
				ID:        unit.ID,
				CreatedAt: now,
				CreatedBy: caller.UserID,
			}
			unit.Detail = detail
		}
		if in.ColdChain != nil {
			detail.ColdChain = *in.ColdChain
		}
		if in.Photosensitive != nil {
			detail.Photosensitive = *in.Photosensitive
		}
		if in.Controlled != nil {
			detail.Controlled = *in.Controlled
		}
		if in.Oncological != nil {
			detail.Oncological = *in.Oncological
		}
		detail.UpdatedAt = now
		detail.UpdatedBy = caller.UserID
		if err := uc.repo.UpsertDetail(detail); err != nil {
			return nil, err
		}
	}
	return toMedicationHandlingUnitResponse(unit), nil
}

// List lista unidades activas del alcance del caller.
func (uc *MedicationHandlingUnitUseCase) List(caller entity.Caller, limit, offset int) ([]dto.MedicationHandlingUnitResponse, error) {
	list, err := uc.repo.List(caller.ScopeWarehouseID(), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MedicationHandlingUnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toMedicationHandlingUnitResponse(u))
	}
	return items, nil
}

// Delete borra lógicamente la unidad (el detalle la acompaña por clave
// compartida).
func (uc *MedicationHandlingUnitUseCase) Delete(caller entity.Caller, id string) error {
	if _, err := uc.getScoped(caller, id); err != nil {
		return err
	}
	return uc.repo.SetDeleted(id, true, caller.UserID)
}

// Restore reactiva una unidad borrada. Reservado al administrador: una fila
// borrada no es visible para validar su alcance.
func (uc *MedicationHandlingUnitUseCase) Restore(caller entity.Caller, id string) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return uc.repo.SetDeleted(id, false, caller.UserID)
}

func (uc *MedicationHandlingUnitUseCase) getScoped(caller entity.Caller, id string) (*entity.MedicationHandlingUnit, error) {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	shelf, err := uc.shelfRepo.GetByID(unit.ShelfID)
	if err != nil {
		return nil, err
	}
	if shelf == nil || !caller.CanAccessWarehouse(shelf.WarehouseID) {
		return nil, domain.ErrNotFound
	}
	return unit, nil
}

func toMedicationHandlingUnitResponse(u *entity.MedicationHandlingUnit) *dto.MedicationHandlingUnitResponse {
	out := &dto.MedicationHandlingUnitResponse{
		ID:             u.ID,
		Concentration:  u.Concentration,
		MedicationID:   u.MedicationID,
		HandlingUnitID: u.HandlingUnitID,
		ShelfID:        u.ShelfID,
	}
	if u.Detail != nil {
		out.ColdChain = u.Detail.ColdChain
		out.Photosensitive = u.Detail.Photosensitive
		out.Controlled = u.Detail.Controlled
		out.Oncological = u.Detail.Oncological
	}
	return out
}
