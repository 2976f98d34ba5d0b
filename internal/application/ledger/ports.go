package ledger

import (
	"context"

	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción que necesita
// el motor del libro de lotes.
type Repos struct {
	Batches       repository.BatchRepository
	Movements     repository.MovementRepository
	Bonuses       repository.BonusRepository
	Alerts        repository.AlertRepository
	Types         repository.TypeOfMovementRepository
	Medications   repository.MedicationRepository
	HandlingUnits repository.HandlingUnitRepository
	Units         repository.MedicationHandlingUnitRepository
	Shelves       repository.ShelfRepository
	Suppliers     repository.SupplierRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor del libro: o todos los
// pasos (inserciones, ajustes de cantidades) commitean, o todo se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
