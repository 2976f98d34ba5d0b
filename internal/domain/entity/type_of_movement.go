package entity

import "time"

// MovementDirection es el sentido que un tipo de movimiento aplica sobre el
// stock de un lote. Sustituye al despacho por prefijo "Entrada"/"Salida"
// sobre el nombre libre: el sentido vive en su propia columna y el nombre
// queda como texto de presentación.
type MovementDirection string

const (
	DirectionIn  MovementDirection = "IN"  // suma al stock del lote
	DirectionOut MovementDirection = "OUT" // resta del stock del lote
)

// Valid indica si la dirección es una de las dos conocidas.
func (d MovementDirection) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Signed devuelve la cantidad con el signo de la dirección.
func (d MovementDirection) Signed(quantity int) int {
	if d == DirectionOut {
		return -quantity
	}
	return quantity
}

// TypeOfMovement representa un tipo de movimiento del catálogo
// (ej. "Entrada por compra", "Salida para venta").
type TypeOfMovement struct {
	ID          string
	Name        string
	Description string
	Direction   MovementDirection
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
	IsDeleted   bool
}
