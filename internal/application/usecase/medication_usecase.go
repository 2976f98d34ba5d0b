package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// MedicationUseCase casos de uso CRUD para medicamentos (catálogo global,
// sin alcance de almacén).
type MedicationUseCase struct {
	repo repository.MedicationRepository
}

// NewMedicationUseCase construye el caso de uso.
func NewMedicationUseCase(repo repository.MedicationRepository) *MedicationUseCase {
	return &MedicationUseCase{repo: repo}
}

// Create crea un medicamento.
func (uc *MedicationUseCase) Create(caller entity.Caller, in dto.CreateMedicationRequest) (*dto.MedicationResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	medication := &entity.Medication{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now(),
		CreatedBy:   caller.UserID,
	}
	if err := uc.repo.Create(medication); err != nil {
		return nil, err
	}
	return toMedicationResponse(medication), nil
}

// GetByID obtiene un medicamento activo.
func (uc *MedicationUseCase) GetByID(id string) (*dto.MedicationResponse, error) {
	medication, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, domain.ErrNotFound
	}
	return toMedicationResponse(medication), nil
}

// Update actualiza un medicamento.
func (uc *MedicationUseCase) Update(caller entity.Caller, id string, in dto.UpdateMedicationRequest) (*dto.MedicationResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	medication, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		medication.Name = *in.Name
	}
	if in.Description != nil {
		medication.Description = *in.Description
	}
	medication.UpdatedAt = time.Now()
	medication.UpdatedBy = caller.UserID
	if err := uc.repo.Update(medication); err != nil {
		return nil, err
	}
	return toMedicationResponse(medication), nil
}

// List lista medicamentos activos con paginación.
func (uc *MedicationUseCase) List(limit, offset int) ([]dto.MedicationResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MedicationResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMedicationResponse(m))
	}
	return items, nil
}

// Delete borra lógicamente un medicamento.
func (uc *MedicationUseCase) Delete(caller entity.Caller, id string) error {
	return uc.repo.SetDeleted(id, true, caller.UserID)
}

// Restore reactiva un medicamento borrado.
func (uc *MedicationUseCase) Restore(caller entity.Caller, id string) error {
	return uc.repo.SetDeleted(id, false, caller.UserID)
}

func toMedicationResponse(m *entity.Medication) *dto.MedicationResponse {
	return &dto.MedicationResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
	}
}
