package entity

import "time"

// Shelf representa un estante dentro de un almacén. Pertenece a exactamente
// un Warehouse; es el eslabón por el que se resuelve el alcance de almacén
// de un lote (Batch → MedicationHandlingUnit → Shelf → Warehouse).
type Shelf struct {
	ID          string
	Name        string
	WarehouseID string
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
	IsDeleted   bool
}
