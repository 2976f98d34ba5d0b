package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bonus representa unidades gratuitas recibidas junto a un lote pagado.
// Al crearse incrementa de forma permanente InitialQuantity y
// CurrentQuantity del lote; no existe reverso de bonificación.
type Bonus struct {
	ID          string
	BonusAmount int
	BonusPrice  decimal.Decimal
	BatchID     string
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
	IsDeleted   bool
}

// Tipos de alerta conocidos.
const (
	AlertLowStock   = "LOW_STOCK"
	AlertNearExpiry = "NEAR_EXPIRY"
)

// Alert es un registro informativo atado a un lote (stock mínimo alcanzado,
// próximo a vencer...). Sin borrado lógico: es un registro puro.
type Alert struct {
	ID             string
	AlertType      string
	Message        string
	GenerationDate time.Time
	BatchID        string
}
