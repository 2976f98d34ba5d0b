package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmastock/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only de reportes y gráficos sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesByWarehouse unidades salidas (movimientos OUT activos sobre lotes
// activos) agrupadas por almacén y medicamento.
func (r *ReportRepo) SalesByWarehouse(ctx context.Context, warehouseID string) ([]repository.WarehouseMedicationCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT w.name, md.name, COALESCE(SUM(m.quantity), 0)::int
		FROM movements m
		JOIN types_of_movement t ON t.id = m.type_of_movement_id AND t.direction = 'OUT'
		JOIN batches b ON b.id = m.batch_id AND NOT b.is_deleted
		JOIN medication_handling_units u ON u.id = b.medication_handling_unit_id
		JOIN medications md ON md.id = u.medication_id
		JOIN shelves s ON s.id = u.shelf_id
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE NOT m.is_deleted AND ($1 = '' OR s.warehouse_id::text = $1)
		GROUP BY w.name, md.name
		ORDER BY 3 DESC`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("sales by warehouse: %w", err)
	}
	defer rows.Close()
	var list []repository.WarehouseMedicationCount
	for rows.Next() {
		var row repository.WarehouseMedicationCount
		if err := rows.Scan(&row.Warehouse, &row.Medication, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan sales row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// TopMedications los limit medicamentos con más unidades salidas.
func (r *ReportRepo) TopMedications(ctx context.Context, warehouseID string, limit int) ([]repository.NameCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT md.name, COALESCE(SUM(m.quantity), 0)::int AS total
		FROM movements m
		JOIN types_of_movement t ON t.id = m.type_of_movement_id AND t.direction = 'OUT'
		JOIN batches b ON b.id = m.batch_id AND NOT b.is_deleted
		JOIN medication_handling_units u ON u.id = b.medication_handling_unit_id
		JOIN medications md ON md.id = u.medication_id
		JOIN shelves s ON s.id = u.shelf_id
		WHERE NOT m.is_deleted AND ($1 = '' OR s.warehouse_id::text = $1)
		GROUP BY md.name
		ORDER BY total DESC
		LIMIT $2`, warehouseID, limit)
	if err != nil {
		return nil, fmt.Errorf("top medications: %w", err)
	}
	defer rows.Close()
	return scanNameCounts(rows)
}

// FrequentSuppliers los limit proveedores con más lotes activos.
func (r *ReportRepo) FrequentSuppliers(ctx context.Context, warehouseID string, limit int) ([]repository.NameCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sp.name, COUNT(*)::int AS total
		FROM batches b
		JOIN suppliers sp ON sp.id = b.supplier_id
		JOIN medication_handling_units u ON u.id = b.medication_handling_unit_id
		JOIN shelves s ON s.id = u.shelf_id
		WHERE NOT b.is_deleted AND ($1 = '' OR s.warehouse_id::text = $1)
		GROUP BY sp.name
		ORDER BY total DESC
		LIMIT $2`, warehouseID, limit)
	if err != nil {
		return nil, fmt.Errorf("frequent suppliers: %w", err)
	}
	defer rows.Close()
	return scanNameCounts(rows)
}

// ExpiredLosses stock restante atrapado en lotes activos ya vencidos.
func (r *ReportRepo) ExpiredLosses(ctx context.Context, warehouseID string) ([]repository.WarehouseMedicationCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT w.name, md.name, COALESCE(SUM(b.current_quantity), 0)::int
		FROM batches b
		JOIN medication_handling_units u ON u.id = b.medication_handling_unit_id
		JOIN medications md ON md.id = u.medication_id
		JOIN shelves s ON s.id = u.shelf_id
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE NOT b.is_deleted AND b.current_quantity > 0 AND b.expiration_date < CURRENT_DATE
		  AND ($1 = '' OR s.warehouse_id::text = $1)
		GROUP BY w.name, md.name
		ORDER BY 3 DESC`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("expired losses: %w", err)
	}
	defer rows.Close()
	var list []repository.WarehouseMedicationCount
	for rows.Next() {
		var row repository.WarehouseMedicationCount
		if err := rows.Scan(&row.Warehouse, &row.Medication, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan losses row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ExpiringSoon lotes activos con stock que vencen dentro de days días.
func (r *ReportRepo) ExpiringSoon(ctx context.Context, warehouseID string, days int) ([]repository.ExpiringBatch, error) {
	rows, err := r.q.Query(ctx, `
		SELECT md.name, b.batch_code, b.expiration_date, b.current_quantity
		FROM batches b
		JOIN medication_handling_units u ON u.id = b.medication_handling_unit_id
		JOIN medications md ON md.id = u.medication_id
		JOIN shelves s ON s.id = u.shelf_id
		WHERE NOT b.is_deleted AND b.current_quantity > 0
		  AND b.expiration_date <= CURRENT_DATE + $2 * INTERVAL '1 day'
		  AND ($1 = '' OR s.warehouse_id::text = $1)
		ORDER BY b.expiration_date`, warehouseID, days)
	if err != nil {
		return nil, fmt.Errorf("expiring soon: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpiringBatch
	for rows.Next() {
		var row repository.ExpiringBatch
		if err := rows.Scan(&row.Medication, &row.BatchCode, &row.ExpirationDate, &row.RemainingQuantity); err != nil {
			return nil, fmt.Errorf("scan expiring row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func scanNameCounts(rows pgx.Rows) ([]repository.NameCount, error) {
	var list []repository.NameCount
	for rows.Next() {
		var row repository.NameCount
		if err := rows.Scan(&row.Name, &row.Total); err != nil {
			return nil, fmt.Errorf("scan name count: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
