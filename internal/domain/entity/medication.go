package entity

import "time"

// Medication representa un medicamento del catálogo, independiente de su
// ubicación física (esa identidad la da MedicationHandlingUnit).
type Medication struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
	IsDeleted   bool
}

// HandlingUnit representa una unidad de manejo (caja, frasco, ampolla...).
type HandlingUnit struct {
	ID        string
	NameUnit  string
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
	IsDeleted bool
}
