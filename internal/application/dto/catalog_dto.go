package dto

// DTOs del catálogo: CRUD plano con borrado lógico.

// CreateWarehouseRequest entrada para crear un almacén.
type CreateWarehouseRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"max=300"`
}

// UpdateWarehouseRequest entrada para actualizar un almacén.
type UpdateWarehouseRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// WarehouseResponse salida de un almacén.
type WarehouseResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// CreateShelfRequest entrada para crear un estante.
type CreateShelfRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	WarehouseID string `json:"warehouse_id" validate:"required,uuid"`
}

// UpdateShelfRequest entrada para actualizar un estante.
type UpdateShelfRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	WarehouseID *string `json:"warehouse_id" validate:"omitempty,uuid"`
}

// ShelfResponse salida de un estante.
type ShelfResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WarehouseID string `json:"warehouse_id"`
}

// CreateMedicationRequest entrada para crear un medicamento.
type CreateMedicationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateMedicationRequest entrada para actualizar un medicamento.
type UpdateMedicationRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// MedicationResponse salida de un medicamento.
type MedicationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateHandlingUnitRequest entrada para crear una unidad de manejo.
type CreateHandlingUnitRequest struct {
	NameUnit string `json:"name_unit" validate:"required,min=1,max=100"`
}

// UpdateHandlingUnitRequest entrada para actualizar una unidad de manejo.
type UpdateHandlingUnitRequest struct {
	NameUnit *string `json:"name_unit" validate:"omitempty,min=1,max=100"`
}

// HandlingUnitResponse salida de una unidad de manejo.
type HandlingUnitResponse struct {
	ID       string `json:"id"`
	NameUnit string `json:"name_unit"`
}

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"max=300"`
	Phone   string `json:"phone" validate:"max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// CreateTypeOfMovementRequest entrada para crear un tipo de movimiento.
// direction es el sentido real sobre el stock, desacoplado del nombre.
type CreateTypeOfMovementRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=300"`
	Direction   string `json:"direction" validate:"required,oneof=IN OUT"`
}

// UpdateTypeOfMovementRequest entrada para actualizar un tipo de movimiento.
type UpdateTypeOfMovementRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=300"`
	Direction   *string `json:"direction" validate:"omitempty,oneof=IN OUT"`
}

// TypeOfMovementResponse salida de un tipo de movimiento.
type TypeOfMovementResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Direction   string `json:"direction"`
}

// CreateMedicationHandlingUnitRequest entrada para crear una unidad
// medicamento-manejo con su detalle opcional.
type CreateMedicationHandlingUnitRequest struct {
	MedicationID   string `json:"medication_id" validate:"required,uuid"`
	HandlingUnitID string `json:"handling_unit_id" validate:"required,uuid"`
	ShelfID        string `json:"shelf_id" validate:"required,uuid"`
	Concentration  string `json:"concentration" validate:"required,max=100"`
	ColdChain      bool   `json:"cold_chain"`
	Photosensitive bool   `json:"photosensitive"`
	Controlled     bool   `json:"controlled"`
	Oncological    bool   `json:"oncological"`
}

// UpdateMedicationHandlingUnitRequest entrada para actualizar la unidad.
type UpdateMedicationHandlingUnitRequest struct {
	ShelfID        *string `json:"shelf_id" validate:"omitempty,uuid"`
	Concentration  *string `json:"concentration" validate:"omitempty,max=100"`
	ColdChain      *bool   `json:"cold_chain"`
	Photosensitive *bool   `json:"photosensitive"`
	Controlled     *bool   `json:"controlled"`
	Oncological    *bool   `json:"oncological"`
}

// MedicationHandlingUnitResponse salida de la unidad con su detalle.
type MedicationHandlingUnitResponse struct {
	ID             string `json:"id"`
	Concentration  string `json:"concentration"`
	MedicationID   string `json:"medication_id"`
	HandlingUnitID string `json:"handling_unit_id"`
	ShelfID        string `json:"shelf_id"`
	ColdChain      bool   `json:"cold_chain"`
	Photosensitive bool   `json:"photosensitive"`
	Controlled     bool   `json:"controlled"`
	Oncological    bool   `json:"oncological"`
}
