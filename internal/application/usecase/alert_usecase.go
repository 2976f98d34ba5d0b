package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// AlertUseCase casos de uso para alertas. Las alertas son registros puros
// atados a un lote: sin borrado lógico, el borrado es físico.
type AlertUseCase struct {
	repo      repository.AlertRepository
	batchRepo repository.BatchRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.AlertRepository, batchRepo repository.BatchRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo, batchRepo: batchRepo}
}

// Create registra una alerta manual contra un lote visible para el caller.
func (uc *AlertUseCase) Create(caller entity.Caller, in dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	batch, err := uc.batchRepo.GetByCode(in.BatchCode)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.NewValidationError("batch_code", "lote no encontrado o inactivo")
	}
	if !caller.CanAccessWarehouse(batch.WarehouseID) {
		return nil, domain.ErrForbidden
	}
	alert := &entity.Alert{
		ID:             uuid.New().String(),
		AlertType:      in.AlertType,
		Message:        in.Message,
		GenerationDate: time.Now(),
		BatchID:        batch.ID,
	}
	if err := uc.repo.Create(alert); err != nil {
		return nil, err
	}
	return toAlertResponse(alert), nil
}

// GetByID obtiene una alerta visible para el caller.
func (uc *AlertUseCase) GetByID(caller entity.Caller, id string) (*dto.AlertResponse, error) {
	alert, err := uc.getScoped(caller, id)
	if err != nil {
		return nil, err
	}
	return toAlertResponse(alert), nil
}

// Update actualiza tipo y mensaje de una alerta.
func (uc *AlertUseCase) Update(caller entity.Caller, id string, in dto.UpdateAlertRequest) (*dto.AlertResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	alert, err := uc.getScoped(caller, id)
	if err != nil {
		return nil, err
	}
	alert.AlertType = in.AlertType
	alert.Message = in.Message
	if err := uc.repo.Update(alert); err != nil {
		return nil, err
	}
	return toAlertResponse(alert), nil
}

// Delete elimina físicamente una alerta.
func (uc *AlertUseCase) Delete(caller entity.Caller, id string) error {
	if _, err := uc.getScoped(caller, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

// List lista alertas del alcance del caller.
func (uc *AlertUseCase) List(caller entity.Caller, limit, offset int) ([]dto.AlertResponse, error) {
	list, err := uc.repo.List(caller.ScopeWarehouseID(), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAlertResponse(a))
	}
	return items, nil
}

// ListByBatch lista las alertas de un lote visible para el caller.
func (uc *AlertUseCase) ListByBatch(caller entity.Caller, batchID string) ([]dto.AlertResponse, error) {
	batch, err := uc.batchRepo.GetByIDAny(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || !caller.CanAccessWarehouse(batch.WarehouseID) {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAlertResponse(a))
	}
	return items, nil
}

func (uc *AlertUseCase) getScoped(caller entity.Caller, id string) (*entity.Alert, error) {
	alert, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	batch, err := uc.batchRepo.GetByIDAny(alert.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || !caller.CanAccessWarehouse(batch.WarehouseID) {
		return nil, domain.ErrNotFound
	}
	return alert, nil
}

func toAlertResponse(a *entity.Alert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:             a.ID,
		AlertType:      a.AlertType,
		Message:        a.Message,
		GenerationDate: a.GenerationDate.Format("2006-01-02"),
		BatchID:        a.BatchID,
	}
}
