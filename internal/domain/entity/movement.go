package entity

import "time"

// Movement representa un evento de ajuste de stock contra un lote.
// Quantity es siempre positiva; el sentido lo da la dirección del tipo.
// Su ciclo de vida está atado al del lote: el borrado lógico del lote
// cascadea a sus movimientos activos y la restauración lo revierte.
type Movement struct {
	ID               string
	Quantity         int
	Date             time.Time
	TypeOfMovementID string
	BatchID          string
	CreatedAt        time.Time
	CreatedBy        string
	UpdatedAt        time.Time
	UpdatedBy        string
	IsDeleted        bool
	// DeletedWithBatch marca que el borrado vino de la cascada del lote;
	// solo esos movimientos vuelven a activarse al restaurar el lote, y no
	// pueden restaurarse individualmente.
	DeletedWithBatch bool

	// Campos resueltos por join en lecturas (no persistidos aquí).
	NameOfMovement string
	Direction      MovementDirection
	BatchCode      string
}
