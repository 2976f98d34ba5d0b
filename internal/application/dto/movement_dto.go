package dto

import "github.com/shopspring/decimal"

// CreateMovementRequest body para POST /api/movements. El tipo y el lote se
// resuelven por nombre/código, como acepta la API de los clientes.
type CreateMovementRequest struct {
	NameOfMovement string `json:"name_of_movement" validate:"required,max=100"`
	BatchCode      string `json:"batch_code" validate:"required,max=50"`
	Quantity       int    `json:"quantity" validate:"required,gt=0"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
}

// UpdateMovementRequest body para PUT /api/movements/:id. El lote destino
// puede cambiar (se revierte el efecto viejo y se aplica el nuevo).
type UpdateMovementRequest struct {
	NameOfMovement string `json:"name_of_movement" validate:"required,max=100"`
	BatchCode      string `json:"batch_code" validate:"required,max=50"`
	Quantity       int    `json:"quantity" validate:"required,gt=0"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID             string `json:"id"`
	Quantity       int    `json:"quantity"`
	Date           string `json:"date"`
	NameOfMovement string `json:"name_of_movement"`
	Direction      string `json:"direction"`
	BatchCode      string `json:"batch_code"`
	IsDeleted      bool   `json:"is_deleted,omitempty"`
}

// MovementCreatedResponse salida de POST /api/movements: incluye la bandera
// de stock mínimo alcanzado (la creación igualmente procede).
type MovementCreatedResponse struct {
	Movement MovementResponse `json:"movement"`
	LowStock bool             `json:"low_stock"`
	Message  string           `json:"message,omitempty"`
}

// CreateBonusRequest body para POST /api/bonuses.
type CreateBonusRequest struct {
	BatchCode   string          `json:"batch_code" validate:"required,max=50"`
	BonusAmount int             `json:"bonus_amount" validate:"required,gt=0"`
	BonusPrice  decimal.Decimal `json:"bonus_price"`
}

// BonusResponse salida de una bonificación.
type BonusResponse struct {
	ID          string          `json:"id"`
	BatchID     string          `json:"batch_id"`
	BonusAmount int             `json:"bonus_amount"`
	BonusPrice  decimal.Decimal `json:"bonus_price"`
}

// CreateAlertRequest body para POST /api/alerts.
type CreateAlertRequest struct {
	AlertType string `json:"alert_type" validate:"required,max=50"`
	Message   string `json:"message" validate:"required,max=500"`
	BatchCode string `json:"batch_code" validate:"required,max=50"`
}

// UpdateAlertRequest body para PUT /api/alerts/:id.
type UpdateAlertRequest struct {
	AlertType string `json:"alert_type" validate:"required,max=50"`
	Message   string `json:"message" validate:"required,max=500"`
}

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID             string `json:"id"`
	AlertType      string `json:"alert_type"`
	Message        string `json:"message"`
	GenerationDate string `json:"generation_date"`
	BatchID        string `json:"batch_id"`
}
