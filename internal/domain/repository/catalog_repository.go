package repository

import "github.com/farmastock/almacen-api/internal/domain/entity"

// Puertos del catálogo. Los GetByName resuelven por clave natural porque la
// API acepta nombres en lugar de IDs; si más de una fila activa coincide
// devuelven domain.ErrDuplicate (coincidencia ambigua).

// WarehouseRepository define el puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	GetByName(name string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	SetDeleted(id string, deleted bool, updatedBy string) error
	List(limit, offset int) ([]*entity.Warehouse, error)
}

// ShelfRepository define el puerto de persistencia para Shelf.
type ShelfRepository interface {
	Create(shelf *entity.Shelf) error
	GetByID(id string) (*entity.Shelf, error)
	GetByName(name string) (*entity.Shelf, error)
	Update(shelf *entity.Shelf) error
	SetDeleted(id string, deleted bool, updatedBy string) error
	// List lista estantes activos; warehouseID vacío = sin filtro.
	List(warehouseID string, limit, offset int) ([]*entity.Shelf, error)
}

// MedicationRepository define el puerto de persistencia para Medication.
type MedicationRepository interface {
	Create(medication *entity.Medication) error
	GetByID(id string) (*entity.Medication, error)
	GetByName(name string) (*entity.Medication, error)
	Update(medication *entity.Medication) error
	SetDeleted(id string, deleted bool, updatedBy string) error
	List(limit, offset int) ([]*entity.Medication, error)
}

// HandlingUnitRepository define el puerto de persistencia para HandlingUnit.
type HandlingUnitRepository interface {
	Create(unit *entity.HandlingUnit) error
	GetByID(id string) (*entity.HandlingUnit, error)
	GetByName(name string) (*entity.HandlingUnit, error)
	Update(unit *entity.HandlingUnit) error
	SetDeleted(id string, deleted bool, updatedBy string) error
	List(limit, offset int) ([]*entity.HandlingUnit, error)
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByName(name string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	SetDeleted(id string, deleted bool, updatedBy string) error
	List(limit, offset int) ([]*entity.Supplier, error)
}

// TypeOfMovementRepository define el puerto de persistencia para TypeOfMovement.
type TypeOfMovementRepository interface {
	Create(typeOfMovement *entity.TypeOfMovement) error
	GetByID(id string) (*entity.TypeOfMovement, error)
	GetByName(name string) (*entity.TypeOfMovement, error)
	Update(typeOfMovement *entity.TypeOfMovement) error
	SetDeleted(id string, deleted bool, updatedBy string) error
	List(limit, offset int) ([]*entity.TypeOfMovement, error)
}

// MedicationHandlingUnitRepository define el puerto para la unidad
// medicamento-manejo y su detalle 1:1 de clave compartida.
type MedicationHandlingUnitRepository interface {
	// Create persiste la unidad y, si viene, su detalle en la misma llamada.
	Create(unit *entity.MedicationHandlingUnit) error
	// GetByID devuelve la unidad activa con su detalle (si existe).
	GetByID(id string) (*entity.MedicationHandlingUnit, error)
	// ResolveNatural resuelve la unidad activa por su clave natural
	// (nombre de medicamento, concentración, nombre de unidad de manejo,
	// nombre de estante). Ambigua → domain.ErrDuplicate.
	ResolveNatural(medicationName, concentration, unitName, shelfName string) (*entity.MedicationHandlingUnit, error)
	Update(unit *entity.MedicationHandlingUnit) error
	UpsertDetail(detail *entity.DetailMedicationHandlingUnit) error
	SetDeleted(id string, deleted bool, updatedBy string) error
	// List lista unidades activas; warehouseID vacío = sin filtro (via estante).
	List(warehouseID string, limit, offset int) ([]*entity.MedicationHandlingUnit, error)
}
