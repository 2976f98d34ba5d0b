package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// MovementUseCase implementa la máquina de estados de movimientos sobre el
// libro de lotes: crear, actualizar, borrar y restaurar, siempre dentro de
// una transacción con bloqueo de fila del lote (SELECT FOR UPDATE).
//
// Las cantidades finales se calculan antes de persistir nada, de modo que un
// rechazo (stock insuficiente) nunca deja estado parcial.
type MovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	batchRepo    repository.BatchRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, movementRepo repository.MovementRepository, batchRepo repository.BatchRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movementRepo: movementRepo, batchRepo: batchRepo}
}

// parseDate fecha "yyyy-MM-dd" de los DTO.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "fecha inválida, se espera yyyy-MM-dd")
	}
	return t, nil
}

// Create registra un movimiento contra un lote resuelto por código.
// Una salida que exceda el stock disponible se rechaza; una salida que deje
// el lote en o bajo su stock mínimo procede pero genera una alerta LOW_STOCK
// en la misma transacción.
func (uc *MovementUseCase) Create(ctx context.Context, caller entity.Caller, in dto.CreateMovementRequest) (*dto.MovementCreatedResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}

	var out dto.MovementCreatedResponse
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		typeOfMovement, err := resolveByName(r.Types.GetByName, in.NameOfMovement, "name_of_movement")
		if err != nil {
			return err
		}
		batch, err := r.Batches.GetByCodeForUpdate(in.BatchCode)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.NewValidationError("batch_code", "lote no encontrado o inactivo")
		}
		if !caller.CanAccessWarehouse(batch.WarehouseID) {
			return domain.ErrForbidden
		}

		newQuantity := batch.CurrentQuantity + typeOfMovement.Direction.Signed(in.Quantity)
		if newQuantity < 0 {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		movement := &entity.Movement{
			ID:               uuid.New().String(),
			Quantity:         in.Quantity,
			Date:             date,
			TypeOfMovementID: typeOfMovement.ID,
			BatchID:          batch.ID,
			CreatedAt:        now,
			CreatedBy:        caller.UserID,
		}
		if err := r.Movements.Create(movement); err != nil {
			return err
		}
		if err := r.Batches.UpdateQuantities(batch.ID, batch.InitialQuantity, newQuantity, caller.UserID); err != nil {
			return err
		}

		lowStock := false
		if typeOfMovement.Direction == entity.DirectionOut && newQuantity <= batch.MinimumStock {
			lowStock = true
			alert := &entity.Alert{
				ID:             uuid.New().String(),
				AlertType:      entity.AlertLowStock,
				Message:        fmt.Sprintf("El lote %s ha alcanzado el stock mínimo.", batch.BatchCode),
				GenerationDate: now,
				BatchID:        batch.ID,
			}
			if err := r.Alerts.Create(alert); err != nil {
				return err
			}
		}

		out = dto.MovementCreatedResponse{
			Movement: dto.MovementResponse{
				ID:             movement.ID,
				Quantity:       movement.Quantity,
				Date:           movement.Date.Format("2006-01-02"),
				NameOfMovement: typeOfMovement.Name,
				Direction:      string(typeOfMovement.Direction),
				BatchCode:      batch.BatchCode,
			},
			LowStock: lowStock,
		}
		if lowStock {
			out.Message = fmt.Sprintf("El lote %s ha alcanzado el stock mínimo.", batch.BatchCode)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update revierte el efecto del movimiento viejo sobre su lote viejo y
// aplica el efecto nuevo sobre el lote nuevo (puede ser otro). Todo dentro
// de una transacción: si el reaplicado dejaría stock negativo se rechaza la
// actualización completa, sin estado a medio revertir.
func (uc *MovementUseCase) Update(ctx context.Context, caller entity.Caller, id string, in dto.UpdateMovementRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return err
	}

	return uc.txRunner.Run(ctx, func(r Repos) error {
		movement, err := r.Movements.GetByID(id)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		oldBatch, err := r.Batches.GetByIDForUpdate(movement.BatchID)
		if err != nil {
			return err
		}
		if oldBatch == nil {
			return domain.ErrNotFound
		}
		if !caller.CanAccessWarehouse(oldBatch.WarehouseID) {
			return domain.ErrForbidden
		}

		newType, err := resolveByName(r.Types.GetByName, in.NameOfMovement, "name_of_movement")
		if err != nil {
			return err
		}

		oldEffect := movement.Direction.Signed(movement.Quantity)
		newEffect := newType.Direction.Signed(in.Quantity)

		if in.BatchCode == oldBatch.BatchCode {
			// Mismo lote: reverso y reaplicado sobre la misma fila.
			final := oldBatch.CurrentQuantity - oldEffect + newEffect
			if final < 0 {
				return domain.ErrInsufficientStock
			}
			if err := r.Batches.UpdateQuantities(oldBatch.ID, oldBatch.InitialQuantity, final, caller.UserID); err != nil {
				return err
			}
			return uc.persistUpdate(r, movement, newType.ID, oldBatch.ID, in.Quantity, date, caller.UserID)
		}

		newBatch, err := r.Batches.GetByCodeForUpdate(in.BatchCode)
		if err != nil {
			return err
		}
		if newBatch == nil {
			return domain.NewValidationError("batch_code", "lote no encontrado o inactivo")
		}
		if !caller.CanAccessWarehouse(newBatch.WarehouseID) {
			return domain.ErrForbidden
		}

		oldFinal := oldBatch.CurrentQuantity - oldEffect
		newFinal := newBatch.CurrentQuantity + newEffect
		if oldFinal < 0 || newFinal < 0 {
			return domain.ErrInsufficientStock
		}
		if err := r.Batches.UpdateQuantities(oldBatch.ID, oldBatch.InitialQuantity, oldFinal, caller.UserID); err != nil {
			return err
		}
		if err := r.Batches.UpdateQuantities(newBatch.ID, newBatch.InitialQuantity, newFinal, caller.UserID); err != nil {
			return err
		}
		return uc.persistUpdate(r, movement, newType.ID, newBatch.ID, in.Quantity, date, caller.UserID)
	})
}

func (uc *MovementUseCase) persistUpdate(r Repos, movement *entity.Movement, typeID, batchID string, quantity int, date time.Time, userID string) error {
	movement.TypeOfMovementID = typeID
	movement.BatchID = batchID
	movement.Quantity = quantity
	movement.Date = date
	movement.UpdatedAt = time.Now()
	movement.UpdatedBy = userID
	return r.Movements.Update(movement)
}

// Delete borra lógicamente un movimiento revirtiendo su efecto sobre el
// lote. Revertir una entrada que dejaría stock negativo se rechaza.
func (uc *MovementUseCase) Delete(ctx context.Context, caller entity.Caller, id string) error {
	return uc.txRunner.Run(ctx, func(r Repos) error {
		movement, err := r.Movements.GetByID(id)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		batch, err := r.Batches.GetByIDForUpdate(movement.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if !caller.CanAccessWarehouse(batch.WarehouseID) {
			return domain.ErrForbidden
		}

		final := batch.CurrentQuantity - movement.Direction.Signed(movement.Quantity)
		if final < 0 {
			return domain.ErrInsufficientStock
		}
		if err := r.Batches.UpdateQuantities(batch.ID, batch.InitialQuantity, final, caller.UserID); err != nil {
			return err
		}
		return r.Movements.SetDeleted(movement.ID, true, caller.UserID)
	})
}

// Restore reactiva un movimiento borrado individualmente, reaplicando su
// efecto original. Una salida cuya reaplicación dejaría stock negativo se
// rechaza. Los movimientos borrados por la cascada del lote solo vuelven
// con la restauración del lote.
func (uc *MovementUseCase) Restore(ctx context.Context, caller entity.Caller, id string) error {
	return uc.txRunner.Run(ctx, func(r Repos) error {
		movement, err := r.Movements.GetByIDAny(id)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		if !movement.IsDeleted {
			return domain.ErrConflict
		}
		if movement.DeletedWithBatch {
			return domain.ErrConflict
		}
		batch, err := r.Batches.GetByIDForUpdate(movement.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			// El lote fue borrado después; el movimiento vuelve con él.
			return domain.ErrConflict
		}
		if !caller.CanAccessWarehouse(batch.WarehouseID) {
			return domain.ErrForbidden
		}

		final := batch.CurrentQuantity + movement.Direction.Signed(movement.Quantity)
		if final < 0 {
			return domain.ErrInsufficientStock
		}
		if err := r.Batches.UpdateQuantities(batch.ID, batch.InitialQuantity, final, caller.UserID); err != nil {
			return err
		}
		return r.Movements.SetDeleted(movement.ID, false, caller.UserID)
	})
}

// GetByID devuelve un movimiento activo visible para el caller.
func (uc *MovementUseCase) GetByID(ctx context.Context, caller entity.Caller, id string) (*dto.MovementResponse, error) {
	movement, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	batch, err := uc.batchRepo.GetByID(movement.BatchID)
	if err != nil {
		return nil, err
	}
	// Lecturas fuera de alcance responden 404 para no revelar existencia.
	if batch == nil || !caller.CanAccessWarehouse(batch.WarehouseID) {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(movement), nil
}

// List lista movimientos activos o borrados, filtrados al almacén del caller.
func (uc *MovementUseCase) List(ctx context.Context, caller entity.Caller, onlyDeleted bool, limit, offset int) ([]dto.MovementResponse, error) {
	list, err := uc.movementRepo.List(caller.ScopeWarehouseID(), onlyDeleted, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return items, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID,
		Quantity:       m.Quantity,
		Date:           m.Date.Format("2006-01-02"),
		NameOfMovement: m.NameOfMovement,
		Direction:      string(m.Direction),
		BatchCode:      m.BatchCode,
		IsDeleted:      m.IsDeleted,
	}
}
