package dto

// WarehouseMedicationRow fila de reportes agregados almacén+medicamento.
type WarehouseMedicationRow struct {
	Warehouse  string `json:"warehouse"`
	Medication string `json:"medication"`
	Quantity   int    `json:"quantity"`
}

// RankedRow fila {nombre, total} de tops de medicamentos/proveedores.
type RankedRow struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// ExpiringBatchRow fila de lotes próximos a vencer.
type ExpiringBatchRow struct {
	Medication        string `json:"medication"`
	BatchCode         string `json:"batch_code"`
	ExpirationDate    string `json:"expiration_date"`
	RemainingQuantity int    `json:"remaining_quantity"`
}

// GraphPoint punto {label, value} para los gráficos del dashboard.
type GraphPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}
