package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch representa un lote recibido de una unidad medicamento-manejo, con su
// propio libro de cantidades y vencimiento.
//
// Invariante del libro: para todo lote activo,
//
//	CurrentQuantity == InitialQuantity
//	                 + Σ(bonificaciones activas)
//	                 + Σ(movimientos IN activos) − Σ(movimientos OUT activos)
//
// y CurrentQuantity nunca queda negativa en reposo.
type Batch struct {
	ID                       string
	BatchCode                string // único entre lotes activos
	FabricationDate          time.Time
	ExpirationDate           time.Time
	InitialQuantity          int
	CurrentQuantity          int
	MinimumStock             int
	UnitPrice                decimal.Decimal
	MedicationHandlingUnitID string
	SupplierID               string
	CreatedAt                time.Time
	CreatedBy                string
	UpdatedAt                time.Time
	UpdatedBy                string
	IsDeleted                bool

	// WarehouseID es el almacén resuelto vía
	// MedicationHandlingUnit → Shelf → Warehouse. Lo pobla el repositorio en
	// las lecturas (join); no se persiste en la fila del lote.
	WarehouseID string
}

// BelowMinimum indica si el lote está en o por debajo de su stock mínimo.
func (b *Batch) BelowMinimum() bool {
	return b.CurrentQuantity <= b.MinimumStock
}
