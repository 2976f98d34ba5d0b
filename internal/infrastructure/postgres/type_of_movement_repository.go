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

var _ repository.TypeOfMovementRepository = (*TypeOfMovementRepo)(nil)

// TypeOfMovementRepo implementación del puerto TypeOfMovementRepository
// sobre PostgreSQL.
type TypeOfMovementRepo struct {
	q Querier
}

// NewTypeOfMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTypeOfMovementRepository(q Querier) *TypeOfMovementRepo {
	return &TypeOfMovementRepo{q: q}
}

// Create persiste un nuevo tipo de movimiento.
func (r *TypeOfMovementRepo) Create(t *entity.TypeOfMovement) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO types_of_movement (id, name, description, direction, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $5, $6)`,
		t.ID, t.Name, t.Description, string(t.Direction), t.CreatedAt, t.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert type of movement: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo activo por ID.
func (r *TypeOfMovementRepo) GetByID(id string) (*entity.TypeOfMovement, error) {
	var t entity.TypeOfMovement
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description, direction, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM types_of_movement WHERE id = $1 AND NOT is_deleted`, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.Direction, &t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy, &t.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get type of movement: %w", err)
	}
	return &t, nil
}

// GetByName obtiene un tipo activo por nombre; ambiguo -> ErrDuplicate.
func (r *TypeOfMovementRepo) GetByName(name string) (*entity.TypeOfMovement, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description, direction, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM types_of_movement WHERE name = $1 AND NOT is_deleted LIMIT 2`, name)
	if err != nil {
		return nil, fmt.Errorf("get type of movement by name: %w", err)
	}
	defer rows.Close()
	list, err := scanTypesOfMovement(rows)
	if err != nil {
		return nil, err
	}
	switch len(list) {
	case 0:
		return nil, nil
	case 1:
		return list[0], nil
	default:
		return nil, domain.ErrDuplicate
	}
}

// Update actualiza nombre, descripción y sentido.
func (r *TypeOfMovementRepo) Update(t *entity.TypeOfMovement) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE types_of_movement SET name = $2, description = $3, direction = $4, updated_at = $5, updated_by = $6
		 WHERE id = $1 AND NOT is_deleted`,
		t.ID, t.Name, t.Description, string(t.Direction), t.UpdatedAt, t.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update type of movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDeleted marca o desmarca el borrado lógico.
func (r *TypeOfMovementRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE types_of_movement SET is_deleted = $2, updated_at = now(), updated_by = $3
		 WHERE id = $1 AND is_deleted <> $2`, id, deleted, updatedBy)
	if err != nil {
		return fmt.Errorf("set type of movement deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista tipos activos con paginación.
func (r *TypeOfMovementRepo) List(limit, offset int) ([]*entity.TypeOfMovement, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description, direction, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM types_of_movement WHERE NOT is_deleted ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list types of movement: %w", err)
	}
	defer rows.Close()
	return scanTypesOfMovement(rows)
}

func scanTypesOfMovement(rows pgx.Rows) ([]*entity.TypeOfMovement, error) {
	var list []*entity.TypeOfMovement
	for rows.Next() {
		var t entity.TypeOfMovement
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Direction, &t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy, &t.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan type of movement: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
