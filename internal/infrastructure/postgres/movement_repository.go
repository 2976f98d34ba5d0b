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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// Las lecturas resuelven por join el nombre y sentido del tipo y el código
// del lote.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementSelect = `
	SELECT m.id, m.quantity, m.date, m.type_of_movement_id, m.batch_id,
	       m.created_at, m.created_by, m.updated_at, m.updated_by,
	       m.is_deleted, m.deleted_with_batch,
	       t.name, t.direction, b.batch_code
	FROM movements m
	JOIN types_of_movement t ON t.id = m.type_of_movement_id
	JOIN batches b ON b.id = m.batch_id`

// Create persiste un nuevo movimiento.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO movements (id, quantity, date, type_of_movement_id, batch_id, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $6, $7)`,
		movement.ID, movement.Quantity, movement.Date, movement.TypeOfMovementID, movement.BatchID,
		movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene el movimiento activo por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	return r.getOne(movementSelect+` WHERE m.id = $1 AND NOT m.is_deleted`, id)
}

// GetByIDAny obtiene el movimiento sin filtrar por borrado.
func (r *MovementRepo) GetByIDAny(id string) (*entity.Movement, error) {
	return r.getOne(movementSelect+` WHERE m.id = $1`, id)
}

// Update actualiza tipo, lote, cantidad y fecha del movimiento.
func (r *MovementRepo) Update(movement *entity.Movement) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE movements SET quantity = $2, date = $3, type_of_movement_id = $4, batch_id = $5, updated_at = $6, updated_by = $7
		 WHERE id = $1 AND NOT is_deleted`,
		movement.ID, movement.Quantity, movement.Date, movement.TypeOfMovementID, movement.BatchID,
		movement.UpdatedAt, movement.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDeleted marca o desmarca el borrado lógico individual. Siempre limpia
// deleted_with_batch: una restauración individual solo llega aquí para
// movimientos borrados individualmente.
func (r *MovementRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE movements SET is_deleted = $2, deleted_with_batch = FALSE, updated_at = now(), updated_by = $3
		 WHERE id = $1 AND is_deleted <> $2`, id, deleted, updatedBy)
	if err != nil {
		return fmt.Errorf("set movement deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista movimientos; onlyDeleted=true lista los borrados lógicos.
// warehouseID vacío = sin filtro.
func (r *MovementRepo) List(warehouseID string, onlyDeleted bool, limit, offset int) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(),
		movementSelect+`
		 JOIN medication_handling_units u ON u.id = b.medication_handling_unit_id
		 JOIN shelves s ON s.id = u.shelf_id
		 WHERE m.is_deleted = $2 AND ($1 = '' OR s.warehouse_id::text = $1)
		 ORDER BY m.date DESC, m.created_at DESC LIMIT $3 OFFSET $4`,
		warehouseID, onlyDeleted, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListActiveByBatch movimientos activos de un lote.
func (r *MovementRepo) ListActiveByBatch(batchID string) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(),
		movementSelect+` WHERE m.batch_id = $1 AND NOT m.is_deleted ORDER BY m.date, m.created_at`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list movements by batch: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// SetDeletedByBatch cascada del lote: al borrar marca los movimientos
// activos con deleted_with_batch; al restaurar reactiva exactamente esos y
// limpia la marca. Los movimientos borrados individualmente antes de la
// cascada no se tocan.
func (r *MovementRepo) SetDeletedByBatch(batchID string, deleted bool, updatedBy string) error {
	var query string
	if deleted {
		query = `
			UPDATE movements SET is_deleted = TRUE, deleted_with_batch = TRUE, updated_at = now(), updated_by = $2
			WHERE batch_id = $1 AND NOT is_deleted`
	} else {
		query = `
			UPDATE movements SET is_deleted = FALSE, deleted_with_batch = FALSE, updated_at = now(), updated_by = $2
			WHERE batch_id = $1 AND is_deleted AND deleted_with_batch`
	}
	if _, err := r.q.Exec(context.Background(), query, batchID, updatedBy); err != nil {
		return fmt.Errorf("set movements deleted by batch: %w", err)
	}
	return nil
}

func (r *MovementRepo) getOne(query string, args ...any) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.Quantity, &m.Date, &m.TypeOfMovementID, &m.BatchID,
		&m.CreatedAt, &m.CreatedBy, &m.UpdatedAt, &m.UpdatedBy,
		&m.IsDeleted, &m.DeletedWithBatch,
		&m.NameOfMovement, &m.Direction, &m.BatchCode,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
