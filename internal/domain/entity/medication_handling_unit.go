package entity

import "time"

// MedicationHandlingUnit coloca un medicamento, a una concentración dada,
// en una unidad de manejo y sobre un estante concreto. Es la unidad de
// identidad física de almacenamiento: dos lotes del "mismo" medicamento con
// distinta concentración o estante son unidades distintas.
type MedicationHandlingUnit struct {
	ID             string
	Concentration  string
	MedicationID   string
	HandlingUnitID string
	ShelfID        string
	CreatedAt      time.Time
	CreatedBy      string
	UpdatedAt      time.Time
	UpdatedBy      string
	IsDeleted      bool

	// Detail es el 1:1 opcional de manejo especial (clave compartida).
	Detail *DetailMedicationHandlingUnit
}

// DetailMedicationHandlingUnit lleva las banderas de manejo especial de una
// unidad. Su clave primaria es el ID de la unidad propietaria (1:1 de clave
// compartida).
type DetailMedicationHandlingUnit struct {
	ID             string // igual al MedicationHandlingUnit.ID
	ColdChain      bool   // cadena de frío
	Photosensitive bool   // fotosensible
	Controlled     bool   // sustancia controlada
	Oncological    bool   // oncológico
	CreatedAt      time.Time
	CreatedBy      string
	UpdatedAt      time.Time
	UpdatedBy      string
	IsDeleted      bool
}
