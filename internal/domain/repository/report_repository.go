package repository

import (
	"context"
	"time"
)

// WarehouseMedicationCount fila cruda de una agregación almacén+medicamento.
type WarehouseMedicationCount struct {
	Warehouse  string
	Medication string
	Quantity   int
}

// NameCount fila cruda {nombre, total} para tops y gráficos.
type NameCount struct {
	Name  string
	Total int
}

// ExpiringBatch fila cruda de lotes próximos a vencer.
type ExpiringBatch struct {
	Medication        string
	BatchCode         string
	ExpirationDate    time.Time
	RemainingQuantity int
}

// ReportRepository define las consultas de lectura para reportes y gráficos.
// Las implementaciones son read-only. warehouseID vacío = sin filtro (admin).
type ReportRepository interface {
	// SalesByWarehouse unidades salidas (movimientos OUT activos) agrupadas
	// por almacén y medicamento, descendente por cantidad.
	SalesByWarehouse(ctx context.Context, warehouseID string) ([]WarehouseMedicationCount, error)
	// TopMedications los limit medicamentos con más unidades salidas.
	TopMedications(ctx context.Context, warehouseID string, limit int) ([]NameCount, error)
	// FrequentSuppliers los limit proveedores con más lotes activos.
	FrequentSuppliers(ctx context.Context, warehouseID string, limit int) ([]NameCount, error)
	// ExpiredLosses stock restante en lotes vencidos, por almacén y medicamento.
	ExpiredLosses(ctx context.Context, warehouseID string) ([]WarehouseMedicationCount, error)
	// ExpiringSoon lotes activos con stock que vencen dentro de days días.
	ExpiringSoon(ctx context.Context, warehouseID string, days int) ([]ExpiringBatch, error)
}
