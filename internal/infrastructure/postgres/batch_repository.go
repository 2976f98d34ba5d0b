package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL.
// Las lecturas resuelven el almacén del lote por join
// (medication_handling_units -> shelves) para los chequeos de alcance.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchSelect = `
	SELECT b.id, b.batch_code, b.fabrication_date, b.expiration_date,
	       b.initial_quantity, b.current_quantity, b.minimum_stock, b.unit_price,
	       b.medication_handling_unit_id, b.supplier_id,
	       b.created_at, b.created_by, b.updated_at, b.updated_by, b.is_deleted,
	       s.warehouse_id
	FROM batches b
	JOIN medication_handling_units u ON u.id = b.medication_handling_unit_id
	JOIN shelves s ON s.id = u.shelf_id`

// Create persiste un nuevo lote.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO batches (id, batch_code, fabrication_date, expiration_date, initial_quantity, current_quantity, minimum_stock, unit_price, medication_handling_unit_id, supplier_id, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $11, $12)`,
		batch.ID, batch.BatchCode, batch.FabricationDate, batch.ExpirationDate,
		batch.InitialQuantity, batch.CurrentQuantity, batch.MinimumStock, batch.UnitPrice,
		batch.MedicationHandlingUnitID, batch.SupplierID, batch.CreatedAt, batch.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene el lote activo por ID.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	return r.getOne(batchSelect+` WHERE b.id = $1 AND NOT b.is_deleted`, id)
}

// GetByIDAny obtiene el lote sin filtrar por borrado (restauración).
func (r *BatchRepo) GetByIDAny(id string) (*entity.Batch, error) {
	return r.getOne(batchSelect+` WHERE b.id = $1`, id)
}

// GetByCode obtiene el lote activo con ese código.
func (r *BatchRepo) GetByCode(code string) (*entity.Batch, error) {
	return r.getOne(batchSelect+` WHERE b.batch_code = $1 AND NOT b.is_deleted`, code)
}

// GetByIDForUpdate bloquea la fila del lote (SELECT ... FOR UPDATE OF b).
func (r *BatchRepo) GetByIDForUpdate(id string) (*entity.Batch, error) {
	return r.getOne(batchSelect+` WHERE b.id = $1 AND NOT b.is_deleted FOR UPDATE OF b`, id)
}

// GetByCodeForUpdate ídem por código de lote activo.
func (r *BatchRepo) GetByCodeForUpdate(code string) (*entity.Batch, error) {
	return r.getOne(batchSelect+` WHERE b.batch_code = $1 AND NOT b.is_deleted FOR UPDATE OF b`, code)
}

// ExistsCode indica si existe un lote activo con ese código.
func (r *BatchRepo) ExistsCode(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM batches WHERE batch_code = $1 AND NOT is_deleted)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists batch code: %w", err)
	}
	return exists, nil
}

// Update actualiza todos los campos mutables del lote.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE batches SET batch_code = $2, fabrication_date = $3, expiration_date = $4,
		        initial_quantity = $5, current_quantity = $6, minimum_stock = $7, unit_price = $8,
		        medication_handling_unit_id = $9, supplier_id = $10, updated_at = $11, updated_by = $12
		 WHERE id = $1 AND NOT is_deleted`,
		batch.ID, batch.BatchCode, batch.FabricationDate, batch.ExpirationDate,
		batch.InitialQuantity, batch.CurrentQuantity, batch.MinimumStock, batch.UnitPrice,
		batch.MedicationHandlingUnitID, batch.SupplierID, batch.UpdatedAt, batch.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantities persiste solo las cantidades del libro.
func (r *BatchRepo) UpdateQuantities(id string, initial, current int, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE batches SET initial_quantity = $2, current_quantity = $3, updated_at = now(), updated_by = $4
		 WHERE id = $1 AND NOT is_deleted`,
		id, initial, current, updatedBy,
	)
	if err != nil {
		return fmt.Errorf("update batch quantities: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDeleted marca o desmarca el borrado lógico del lote.
func (r *BatchRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE batches SET is_deleted = $2, updated_at = now(), updated_by = $3
		 WHERE id = $1 AND is_deleted <> $2`, id, deleted, updatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			// Restaurar chocaría con un lote activo que reutilizó el código.
			return domain.ErrConflict
		}
		return fmt.Errorf("set batch deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista lotes activos; warehouseID vacío = sin filtro (admin).
func (r *BatchRepo) List(warehouseID string, limit, offset int) ([]*entity.Batch, error) {
	rows, err := r.q.Query(context.Background(),
		batchSelect+`
		 WHERE NOT b.is_deleted AND ($1 = '' OR s.warehouse_id::text = $1)
		 ORDER BY b.expiration_date LIMIT $2 OFFSET $3`,
		warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	return scanBatches(rows)
}

// ListExpiringSoon lotes activos con stock restante que vencen dentro de
// days días (incluye los ya vencidos con stock).
func (r *BatchRepo) ListExpiringSoon(warehouseID string, days int) ([]*entity.Batch, error) {
	rows, err := r.q.Query(context.Background(),
		batchSelect+`
		 WHERE NOT b.is_deleted AND b.current_quantity > 0
		   AND b.expiration_date <= CURRENT_DATE + $2 * INTERVAL '1 day'
		   AND ($1 = '' OR s.warehouse_id::text = $1)
		 ORDER BY b.expiration_date`,
		warehouseID, days)
	if err != nil {
		return nil, fmt.Errorf("list expiring batches: %w", err)
	}
	defer rows.Close()
	return scanBatches(rows)
}

func (r *BatchRepo) getOne(query string, args ...any) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID, &b.BatchCode, &b.FabricationDate, &b.ExpirationDate,
		&b.InitialQuantity, &b.CurrentQuantity, &b.MinimumStock, &b.UnitPrice,
		&b.MedicationHandlingUnitID, &b.SupplierID,
		&b.CreatedAt, &b.CreatedBy, &b.UpdatedAt, &b.UpdatedBy, &b.IsDeleted,
		&b.WarehouseID,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBatches(rows pgx.Rows) ([]*entity.Batch, error) {
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
