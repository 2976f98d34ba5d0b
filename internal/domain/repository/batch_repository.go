package repository

import "github.com/farmastock/almacen-api/internal/domain/entity"

// BatchRepository define el puerto de persistencia para Batch (DIP).
// Las lecturas devuelven el lote con WarehouseID resuelto vía
// MedicationHandlingUnit → Shelf (join), para los chequeos de alcance.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	// GetByID devuelve el lote activo o nil si no existe / está borrado.
	GetByID(id string) (*entity.Batch, error)
	// GetByIDAny devuelve el lote sin filtrar por borrado (restauración).
	GetByIDAny(id string) (*entity.Batch, error)
	// GetByCode devuelve el lote activo con ese código o nil.
	GetByCode(code string) (*entity.Batch, error)
	// GetByIDForUpdate bloquea la fila del lote (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetByIDForUpdate(id string) (*entity.Batch, error)
	// GetByCodeForUpdate ídem, resolviendo por código de lote activo.
	GetByCodeForUpdate(code string) (*entity.Batch, error)
	ExistsCode(code string) (bool, error)
	Update(batch *entity.Batch) error
	// UpdateQuantities persiste solo las cantidades del libro.
	UpdateQuantities(id string, initial, current int, updatedBy string) error
	// SetDeleted marca o desmarca el borrado lógico.
	SetDeleted(id string, deleted bool, updatedBy string) error
	// List lista lotes activos; warehouseID vacío = sin filtro (admin).
	List(warehouseID string, limit, offset int) ([]*entity.Batch, error)
	// ListExpiringSoon lotes activos con stock que vencen dentro de days días.
	ListExpiringSoon(warehouseID string, days int) ([]*entity.Batch, error)
}
