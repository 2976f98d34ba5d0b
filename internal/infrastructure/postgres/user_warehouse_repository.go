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

var _ repository.UserWarehouseRepository = (*UserWarehouseRepo)(nil)

// UserWarehouseRepo implementación del puerto UserWarehouseRepository sobre
// PostgreSQL. La unicidad "una asignación activa por usuario" la respalda un
// índice único parcial.
type UserWarehouseRepo struct {
	q Querier
}

// NewUserWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserWarehouseRepository(q Querier) *UserWarehouseRepo {
	return &UserWarehouseRepo{q: q}
}

const userWarehouseSelect = `
	SELECT id, user_id, warehouse_id, created_at, created_by, updated_at, updated_by, is_deleted
	FROM user_warehouses`

// Create persiste una nueva asignación.
func (r *UserWarehouseRepo) Create(assignment *entity.UserWarehouse) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO user_warehouses (id, user_id, warehouse_id, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $4, $5)`,
		assignment.ID, assignment.UserID, assignment.WarehouseID, assignment.CreatedAt, assignment.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert user warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una asignación activa por ID.
func (r *UserWarehouseRepo) GetByID(id string) (*entity.UserWarehouse, error) {
	return r.getOne(userWarehouseSelect+` WHERE id = $1 AND NOT is_deleted`, id)
}

// GetActiveByUser devuelve la asignación activa del usuario o nil.
func (r *UserWarehouseRepo) GetActiveByUser(userID string) (*entity.UserWarehouse, error) {
	return r.getOne(userWarehouseSelect+` WHERE user_id = $1 AND NOT is_deleted`, userID)
}

// ActiveManagerExists indica si el almacén ya tiene un encargado (rol "1")
// con asignación activa, excluyendo a excludeUserID.
func (r *UserWarehouseRepo) ActiveManagerExists(warehouseID, excludeUserID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (
			SELECT 1 FROM user_warehouses uw
			JOIN users us ON us.id = uw.user_id AND NOT us.is_deleted
			WHERE uw.warehouse_id = $1 AND NOT uw.is_deleted
			  AND us.role = '1' AND uw.user_id::text <> $2
		)`, warehouseID, excludeUserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists active manager: %w", err)
	}
	return exists, nil
}

// SetDeleted marca o desmarca el borrado lógico.
func (r *UserWarehouseRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE user_warehouses SET is_deleted = $2, updated_at = now(), updated_by = $3
		 WHERE id = $1 AND is_deleted <> $2`, id, deleted, updatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("set user warehouse deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista asignaciones activas con paginación.
func (r *UserWarehouseRepo) List(limit, offset int) ([]*entity.UserWarehouse, error) {
	rows, err := r.q.Query(context.Background(),
		userWarehouseSelect+` WHERE NOT is_deleted ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list user warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserWarehouse
	for rows.Next() {
		var a entity.UserWarehouse
		if err := rows.Scan(&a.ID, &a.UserID, &a.WarehouseID,
			&a.CreatedAt, &a.CreatedBy, &a.UpdatedAt, &a.UpdatedBy, &a.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan user warehouse: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *UserWarehouseRepo) getOne(query string, args ...any) (*entity.UserWarehouse, error) {
	var a entity.UserWarehouse
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&a.ID, &a.UserID, &a.WarehouseID,
		&a.CreatedAt, &a.CreatedBy, &a.UpdatedAt, &a.UpdatedBy, &a.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user warehouse: %w", err)
	}
	return &a, nil
}
