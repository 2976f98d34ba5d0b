package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// BatchUseCase gestiona el ciclo de vida de los lotes: alta completa o
// parcial (cadena transaccional), actualización con re-resolución por clave
// natural, y borrado/restauración con cascada sobre los movimientos.
type BatchUseCase struct {
	txRunner  TxRunner
	batchRepo repository.BatchRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(txRunner TxRunner, batchRepo repository.BatchRepository) *BatchUseCase {
	return &BatchUseCase{txRunner: txRunner, batchRepo: batchRepo}
}

// CreateFull crea medicamento, unidad medicamento-manejo con detalle, lote y
// movimiento inicial de recepción en una sola transacción, autorizado contra
// el almacén del estante destino. Cualquier fallo revierte toda la cadena.
//
// El movimiento inicial documenta la recepción de InitialQuantity; su efecto
// ya está incorporado en las cantidades del lote, por lo que no se reaplica.
func (uc *BatchUseCase) CreateFull(ctx context.Context, caller entity.Caller, in dto.CreateFullBatchRequest) (*dto.BatchResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	fabrication, err := parseDate("fabrication_date", in.FabricationDate)
	if err != nil {
		return nil, err
	}
	expiration, err := parseDate("expiration_date", in.ExpirationDate)
	if err != nil {
		return nil, err
	}

	var out *dto.BatchResponse
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		now := time.Now()
		medication := &entity.Medication{
			ID:          uuid.New().String(),
			Name:        in.MedicationName,
			Description: in.MedicationDescription,
			CreatedAt:   now,
			CreatedBy:   caller.UserID,
		}
		if err := r.Medications.Create(medication); err != nil {
			return err
		}
		batch, err := uc.createChain(r, caller, chainInput{
			medicationID:     medication.ID,
			concentration:    in.Concentration,
			handlingUnitName: in.HandlingUnitName,
			shelfName:        in.ShelfName,
			supplierName:     in.SupplierName,
			batchCode:        in.BatchCode,
			fabrication:      fabrication,
			expiration:       expiration,
			initialQuantity:  in.InitialQuantity,
			minimumStock:     in.MinimumStock,
			unitPrice:        in.UnitPrice,
			nameOfMovement:   in.NameOfMovement,
			coldChain:        in.ColdChain,
			photosensitive:   in.Photosensitive,
			controlled:       in.Controlled,
			oncological:      in.Oncological,
		})
		if err != nil {
			return err
		}
		out = toBatchResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePartial es el alta completa reutilizando un medicamento existente.
func (uc *BatchUseCase) CreatePartial(ctx context.Context, caller entity.Caller, in dto.CreatePartialBatchRequest) (*dto.BatchResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	fabrication, err := parseDate("fabrication_date", in.FabricationDate)
	if err != nil {
		return nil, err
	}
	expiration, err := parseDate("expiration_date", in.ExpirationDate)
	if err != nil {
		return nil, err
	}

	var out *dto.BatchResponse
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		medication, err := r.Medications.GetByID(in.MedicationID)
		if err != nil {
			return err
		}
		if medication == nil {
			return domain.NewValidationError("medication_id", "el medicamento no existe o ha sido eliminado")
		}
		batch, err := uc.createChain(r, caller, chainInput{
			medicationID:     medication.ID,
			concentration:    in.Concentration,
			handlingUnitName: in.HandlingUnitName,
			shelfName:        in.ShelfName,
			supplierName:     in.SupplierName,
			batchCode:        in.BatchCode,
			fabrication:      fabrication,
			expiration:       expiration,
			initialQuantity:  in.InitialQuantity,
			minimumStock:     in.MinimumStock,
			unitPrice:        in.UnitPrice,
			nameOfMovement:   in.NameOfMovement,
			coldChain:        in.ColdChain,
			photosensitive:   in.Photosensitive,
			controlled:       in.Controlled,
			oncological:      in.Oncological,
		})
		if err != nil {
			return err
		}
		out = toBatchResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type chainInput struct {
	medicationID     string
	concentration    string
	handlingUnitName string
	shelfName        string
	supplierName     string
	batchCode        string
	fabrication      time.Time
	expiration       time.Time
	initialQuantity  int
	minimumStock     int
	unitPrice        decimal.Decimal
	nameOfMovement   string
	coldChain        bool
	photosensitive   bool
	controlled       bool
	oncological      bool
}

// resolveByName resuelve una fila activa por nombre: inexistente o ambigua
// son errores de validación que nombran el campo ofensor.
func resolveByName[T any](get func(string) (*T, error), name, field string) (*T, error) {
	row, err := get(name)
	if err == domain.ErrDuplicate {
		return nil, domain.NewValidationError(field, "coincidencia ambigua")
	}
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.NewValidationError(field, "no encontrado")
	}
	return row, nil
}

// createChain resuelve las referencias por nombre, crea la unidad
// medicamento-manejo con su detalle, el lote y el movimiento inicial.
func (uc *BatchUseCase) createChain(r Repos, caller entity.Caller, in chainInput) (*entity.Batch, error) {
	shelf, err := resolveByName(r.Shelves.GetByName, in.shelfName, "shelf_name")
	if err != nil {
		return nil, err
	}
	if !caller.CanAccessWarehouse(shelf.WarehouseID) {
		return nil, domain.ErrForbidden
	}
	handlingUnit, err := resolveByName(r.HandlingUnits.GetByName, in.handlingUnitName, "handling_unit_name")
	if err != nil {
		return nil, err
	}
	supplier, err := resolveByName(r.Suppliers.GetByName, in.supplierName, "supplier_name")
	if err != nil {
		return nil, err
	}
	typeOfMovement, err := resolveByName(r.Types.GetByName, in.nameOfMovement, "name_of_movement")
	if err != nil {
		return nil, err
	}
	if typeOfMovement.Direction != entity.DirectionIn {
		return nil, domain.NewValidationError("name_of_movement", "el movimiento inicial debe ser de entrada")
	}

	exists, err := r.Batches.ExistsCode(in.batchCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	unit := &entity.MedicationHandlingUnit{
		ID:             uuid.New().String(),
		Concentration:  in.concentration,
		MedicationID:   in.medicationID,
		HandlingUnitID: handlingUnit.ID,
		ShelfID:        shelf.ID,
		CreatedAt:      now,
		CreatedBy:      caller.UserID,
		Detail: &entity.DetailMedicationHandlingUnit{
			ColdChain:      in.coldChain,
			Photosensitive: in.photosensitive,
			Controlled:     in.controlled,
			Oncological:    in.oncological,
			CreatedAt:      now,
			CreatedBy:      caller.UserID,
		},
	}
	unit.Detail.ID = unit.ID
	if err := r.Units.Create(unit); err != nil {
		return nil, err
	}

	batch := &entity.Batch{
		ID:                       uuid.New().String(),
		BatchCode:                in.batchCode,
		FabricationDate:          in.fabrication,
		ExpirationDate:           in.expiration,
		InitialQuantity:          in.initialQuantity,
		CurrentQuantity:          in.initialQuantity,
		MinimumStock:             in.minimumStock,
		UnitPrice:                in.unitPrice,
		MedicationHandlingUnitID: unit.ID,
		SupplierID:               supplier.ID,
		CreatedAt:                now,
		CreatedBy:                caller.UserID,
		WarehouseID:              shelf.WarehouseID,
	}
	if err := r.Batches.Create(batch); err != nil {
		return nil, err
	}

	movement := &entity.Movement{
		ID:               uuid.New().String(),
		Quantity:         in.initialQuantity,
		Date:             in.fabrication,
		TypeOfMovementID: typeOfMovement.ID,
		BatchID:          batch.ID,
		CreatedAt:        now,
		CreatedBy:        caller.UserID,
	}
	if err := r.Movements.Create(movement); err != nil {
		return nil, err
	}
	return batch, nil
}

// Update muta los campos escalares del lote y re-resuelve sus relaciones por
// clave natural; un lookup fallido o ambiguo rechaza nombrando el campo.
func (uc *BatchUseCase) Update(ctx context.Context, caller entity.Caller, id string, in dto.UpdateBatchRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	fabrication, err := parseDate("fabrication_date", in.FabricationDate)
	if err != nil {
		return err
	}
	expiration, err := parseDate("expiration_date", in.ExpirationDate)
	if err != nil {
		return err
	}

	return uc.txRunner.Run(ctx, func(r Repos) error {
		batch, err := r.Batches.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if !caller.CanAccessWarehouse(batch.WarehouseID) {
			return domain.ErrForbidden
		}

		unit, err := r.Units.ResolveNatural(in.MedicationName, in.Concentration, in.HandlingUnitName, in.ShelfName)
		if err == domain.ErrDuplicate {
			return domain.NewValidationError("medication_handling_unit", "coincidencia ambigua para la clave natural")
		}
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.NewValidationError("medication_handling_unit", "no existe unidad activa para medicamento/concentración/unidad/estante")
		}
		supplier, err := resolveByName(r.Suppliers.GetByName, in.SupplierName, "supplier_name")
		if err != nil {
			return err
		}

		if in.BatchCode != batch.BatchCode {
			exists, err := r.Batches.ExistsCode(in.BatchCode)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicate
			}
		}

		batch.BatchCode = in.BatchCode
		batch.FabricationDate = fabrication
		batch.ExpirationDate = expiration
		batch.InitialQuantity = in.InitialQuantity
		batch.CurrentQuantity = in.CurrentQuantity
		batch.MinimumStock = in.MinimumStock
		batch.UnitPrice = in.UnitPrice
		batch.MedicationHandlingUnitID = unit.ID
		batch.SupplierID = supplier.ID
		batch.UpdatedAt = time.Now()
		batch.UpdatedBy = caller.UserID
		return r.Batches.Update(batch)
	})
}

// Delete borra lógicamente el lote y cascadea a sus movimientos activos SIN
// revertir sus aportes de cantidad: el lote inactivo deja de observarse por
// las consultas normales.
func (uc *BatchUseCase) Delete(ctx context.Context, caller entity.Caller, id string) error {
	return uc.txRunner.Run(ctx, func(r Repos) error {
		batch, err := r.Batches.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if !caller.CanAccessWarehouse(batch.WarehouseID) {
			return domain.ErrForbidden
		}
		if err := r.Movements.SetDeletedByBatch(batch.ID, true, caller.UserID); err != nil {
			return err
		}
		return r.Batches.SetDeleted(batch.ID, true, caller.UserID)
	})
}

// Restore reactiva el lote y exactamente los movimientos que la cascada de
// borrado desactivó, sin recomputar cantidades (simétrico con Delete).
func (uc *BatchUseCase) Restore(ctx context.Context, caller entity.Caller, id string) error {
	return uc.txRunner.Run(ctx, func(r Repos) error {
		batch, err := r.Batches.GetByIDAny(id)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if !batch.IsDeleted {
			return domain.ErrConflict
		}
		if !caller.CanAccessWarehouse(batch.WarehouseID) {
			return domain.ErrForbidden
		}
		// El código debe seguir siendo único entre lotes activos.
		exists, err := r.Batches.ExistsCode(batch.BatchCode)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrConflict
		}
		if err := r.Movements.SetDeletedByBatch(batch.ID, false, caller.UserID); err != nil {
			return err
		}
		return r.Batches.SetDeleted(batch.ID, false, caller.UserID)
	})
}

// GetByID devuelve un lote activo visible para el caller (404 fuera de alcance).
func (uc *BatchUseCase) GetByID(ctx context.Context, caller entity.Caller, id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil || !caller.CanAccessWarehouse(batch.WarehouseID) {
		return nil, domain.ErrNotFound
	}
	return toBatchResponse(batch), nil
}

// List lista lotes activos filtrados al almacén del caller.
func (uc *BatchUseCase) List(ctx context.Context, caller entity.Caller, limit, offset int) ([]dto.BatchResponse, error) {
	list, err := uc.batchRepo.List(caller.ScopeWarehouseID(), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return items, nil
}

// ExpiringSoon lotes con stock que vencen dentro de 30 días.
func (uc *BatchUseCase) ExpiringSoon(ctx context.Context, caller entity.Caller) ([]dto.BatchResponse, error) {
	list, err := uc.batchRepo.ListExpiringSoon(caller.ScopeWarehouseID(), 30)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return items, nil
}

// CheckCode indica si existe un lote activo con ese código.
func (uc *BatchUseCase) CheckCode(ctx context.Context, code string) (bool, error) {
	return uc.batchRepo.ExistsCode(code)
}

func toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	return &dto.BatchResponse{
		ID:                       b.ID,
		BatchCode:                b.BatchCode,
		FabricationDate:          b.FabricationDate.Format("2006-01-02"),
		ExpirationDate:           b.ExpirationDate.Format("2006-01-02"),
		InitialQuantity:          b.InitialQuantity,
		CurrentQuantity:          b.CurrentQuantity,
		MinimumStock:             b.MinimumStock,
		UnitPrice:                b.UnitPrice,
		WarehouseID:              b.WarehouseID,
		MedicationHandlingUnitID: b.MedicationHandlingUnitID,
		SupplierID:               b.SupplierID,
		BelowMinimum:             b.BelowMinimum(),
	}
}
