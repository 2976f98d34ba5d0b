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

var _ repository.HandlingUnitRepository = (*HandlingUnitRepo)(nil)

// HandlingUnitRepo implementación del puerto HandlingUnitRepository sobre
// PostgreSQL.
type HandlingUnitRepo struct {
	q Querier
}

// NewHandlingUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHandlingUnitRepository(q Querier) *HandlingUnitRepo {
	return &HandlingUnitRepo{q: q}
}

// Create persiste una nueva unidad de manejo.
func (r *HandlingUnitRepo) Create(unit *entity.HandlingUnit) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO handling_units (id, name_unit, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $3, $4)`,
		unit.ID, unit.NameUnit, unit.CreatedAt, unit.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert handling unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad activa por ID.
func (r *HandlingUnitRepo) GetByID(id string) (*entity.HandlingUnit, error) {
	var u entity.HandlingUnit
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name_unit, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM handling_units WHERE id = $1 AND NOT is_deleted`, id).Scan(
		&u.ID, &u.NameUnit, &u.CreatedAt, &u.CreatedBy, &u.UpdatedAt, &u.UpdatedBy, &u.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get handling unit: %w", err)
	}
	return &u, nil
}

// GetByName obtiene una unidad activa por nombre; ambigua -> ErrDuplicate.
func (r *HandlingUnitRepo) GetByName(name string) (*entity.HandlingUnit, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name_unit, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM handling_units WHERE name_unit = $1 AND NOT is_deleted LIMIT 2`, name)
	if err != nil {
		return nil, fmt.Errorf("get handling unit by name: %w", err)
	}
	defer rows.Close()
	list, err := scanHandlingUnits(rows)
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

// Update actualiza el nombre de la unidad.
func (r *HandlingUnitRepo) Update(unit *entity.HandlingUnit) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE handling_units SET name_unit = $2, updated_at = $3, updated_by = $4
		 WHERE id = $1 AND NOT is_deleted`,
		unit.ID, unit.NameUnit, unit.UpdatedAt, unit.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update handling unit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDeleted marca o desmarca el borrado lógico.
func (r *HandlingUnitRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE handling_units SET is_deleted = $2, updated_at = now(), updated_by = $3
		 WHERE id = $1 AND is_deleted <> $2`, id, deleted, updatedBy)
	if err != nil {
		return fmt.Errorf("set handling unit deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista unidades activas con paginación.
func (r *HandlingUnitRepo) List(limit, offset int) ([]*entity.HandlingUnit, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name_unit, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM handling_units WHERE NOT is_deleted ORDER BY name_unit LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list handling units: %w", err)
	}
	defer rows.Close()
	return scanHandlingUnits(rows)
}

func scanHandlingUnits(rows pgx.Rows) ([]*entity.HandlingUnit, error) {
	var list []*entity.HandlingUnit
	for rows.Next() {
		var u entity.HandlingUnit
		if err := rows.Scan(&u.ID, &u.NameUnit, &u.CreatedAt, &u.CreatedBy, &u.UpdatedAt, &u.UpdatedBy, &u.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan handling unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
