package dto

import "github.com/shopspring/decimal"

// Las fechas viajan como "yyyy-MM-dd" y se parsean en el caso de uso.

// CreateFullBatchRequest body para POST /api/batches/full: crea medicamento,
// unidad medicamento-manejo (con detalle), lote y movimiento inicial en una
// sola transacción.
type CreateFullBatchRequest struct {
	MedicationName        string          `json:"medication_name" validate:"required,min=1,max=200"`
	MedicationDescription string          `json:"medication_description" validate:"max=500"`
	Concentration         string          `json:"concentration" validate:"required,max=100"`
	HandlingUnitName      string          `json:"handling_unit_name" validate:"required,max=100"`
	ShelfName             string          `json:"shelf_name" validate:"required,max=100"`
	SupplierName          string          `json:"supplier_name" validate:"required,max=200"`
	BatchCode             string          `json:"batch_code" validate:"required,max=50"`
	FabricationDate       string          `json:"fabrication_date" validate:"required,datetime=2006-01-02"`
	ExpirationDate        string          `json:"expiration_date" validate:"required,datetime=2006-01-02"`
	InitialQuantity       int             `json:"initial_quantity" validate:"required,gt=0"`
	MinimumStock          int             `json:"minimum_stock" validate:"min=0"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
	NameOfMovement        string          `json:"name_of_movement" validate:"required,max=100"`

	// Banderas de manejo especial (detalle 1:1).
	ColdChain      bool `json:"cold_chain"`
	Photosensitive bool `json:"photosensitive"`
	Controlled     bool `json:"controlled"`
	Oncological    bool `json:"oncological"`
}

// CreatePartialBatchRequest body para POST /api/batches/partial: igual que
// el alta completa pero reutiliza un medicamento existente por ID.
type CreatePartialBatchRequest struct {
	MedicationID     string          `json:"medication_id" validate:"required,uuid"`
	Concentration    string          `json:"concentration" validate:"required,max=100"`
	HandlingUnitName string          `json:"handling_unit_name" validate:"required,max=100"`
	ShelfName        string          `json:"shelf_name" validate:"required,max=100"`
	SupplierName     string          `json:"supplier_name" validate:"required,max=200"`
	BatchCode        string          `json:"batch_code" validate:"required,max=50"`
	FabricationDate  string          `json:"fabrication_date" validate:"required,datetime=2006-01-02"`
	ExpirationDate   string          `json:"expiration_date" validate:"required,datetime=2006-01-02"`
	InitialQuantity  int             `json:"initial_quantity" validate:"required,gt=0"`
	MinimumStock     int             `json:"minimum_stock" validate:"min=0"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	NameOfMovement   string          `json:"name_of_movement" validate:"required,max=100"`

	ColdChain      bool `json:"cold_chain"`
	Photosensitive bool `json:"photosensitive"`
	Controlled     bool `json:"controlled"`
	Oncological    bool `json:"oncological"`
}

// UpdateBatchRequest body para PUT /api/batches/:id. Las relaciones se
// re-resuelven por clave natural (nombres), no por ID.
type UpdateBatchRequest struct {
	BatchCode        string          `json:"batch_code" validate:"required,max=50"`
	FabricationDate  string          `json:"fabrication_date" validate:"required,datetime=2006-01-02"`
	ExpirationDate   string          `json:"expiration_date" validate:"required,datetime=2006-01-02"`
	InitialQuantity  int             `json:"initial_quantity" validate:"required,gt=0"`
	CurrentQuantity  int             `json:"current_quantity" validate:"min=0"`
	MinimumStock     int             `json:"minimum_stock" validate:"min=0"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	MedicationName   string          `json:"medication_name" validate:"required,max=200"`
	Concentration    string          `json:"concentration" validate:"required,max=100"`
	HandlingUnitName string          `json:"handling_unit_name" validate:"required,max=100"`
	ShelfName        string          `json:"shelf_name" validate:"required,max=100"`
	SupplierName     string          `json:"supplier_name" validate:"required,max=200"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID                       string          `json:"id"`
	BatchCode                string          `json:"batch_code"`
	FabricationDate          string          `json:"fabrication_date"`
	ExpirationDate           string          `json:"expiration_date"`
	InitialQuantity          int             `json:"initial_quantity"`
	CurrentQuantity          int             `json:"current_quantity"`
	MinimumStock             int             `json:"minimum_stock"`
	UnitPrice                decimal.Decimal `json:"unit_price"`
	WarehouseID              string          `json:"warehouse_id,omitempty"`
	MedicationHandlingUnitID string          `json:"medication_handling_unit_id"`
	SupplierID               string          `json:"supplier_id"`
	BelowMinimum             bool            `json:"below_minimum"`
}

// BatchCodeCheckResponse salida de GET /api/batches/checkBatchCode/:code.
type BatchCodeCheckResponse struct {
	Exists bool `json:"exists"`
}
