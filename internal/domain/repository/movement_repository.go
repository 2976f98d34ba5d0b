package repository

import "github.com/farmastock/almacen-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para Movement.
// Las lecturas resuelven por join NameOfMovement, Direction y BatchCode.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// GetByID devuelve el movimiento activo o nil.
	GetByID(id string) (*entity.Movement, error)
	// GetByIDAny devuelve el movimiento sin filtrar por borrado.
	GetByIDAny(id string) (*entity.Movement, error)
	Update(movement *entity.Movement) error
	SetDeleted(id string, deleted bool, updatedBy string) error
	// List lista movimientos; onlyDeleted=true lista los borrados lógicos.
	// warehouseID vacío = sin filtro.
	List(warehouseID string, onlyDeleted bool, limit, offset int) ([]*entity.Movement, error)
	// ListActiveByBatch movimientos activos de un lote.
	ListActiveByBatch(batchID string) ([]*entity.Movement, error)
	// SetDeletedByBatch marca/desmarca en bloque los movimientos de un lote
	// (cascada de borrado/restauración del lote).
	SetDeletedByBatch(batchID string, deleted bool, updatedBy string) error
}

// BonusRepository define el puerto de persistencia para Bonus
// (solo creación y lectura: una bonificación aplicada es permanente).
type BonusRepository interface {
	Create(bonus *entity.Bonus) error
	GetByID(id string) (*entity.Bonus, error)
	// List lista bonificaciones activas; warehouseID vacío = sin filtro
	// (el almacén se resuelve vía el lote).
	List(warehouseID string, limit, offset int) ([]*entity.Bonus, error)
	ListByBatch(batchID string) ([]*entity.Bonus, error)
}

// AlertRepository define el puerto de persistencia para Alert.
// Las alertas no tienen borrado lógico; Delete elimina la fila.
type AlertRepository interface {
	Create(alert *entity.Alert) error
	GetByID(id string) (*entity.Alert, error)
	Update(alert *entity.Alert) error
	Delete(id string) error
	// List lista alertas; warehouseID vacío = sin filtro (via lote).
	List(warehouseID string, limit, offset int) ([]*entity.Alert, error)
	ListByBatch(batchID string) ([]*entity.Alert, error)
}
