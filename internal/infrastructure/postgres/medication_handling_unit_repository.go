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

var _ repository.MedicationHandlingUnitRepository = (*MedicationHandlingUnitRepo)(nil)

// MedicationHandlingUnitRepo implementación del puerto sobre PostgreSQL.
// El detalle 1:1 vive en detail_medication_handling_units con la misma clave.
type MedicationHandlingUnitRepo struct {
	q Querier
}

// NewMedicationHandlingUnitRepository construye el adaptador. Pasar pool o tx.
func NewMedicationHandlingUnitRepository(q Querier) *MedicationHandlingUnitRepo {
	return &MedicationHandlingUnitRepo{q: q}
}

const medicationHandlingUnitSelect = `
	SELECT u.id, u.concentration, u.medication_id, u.handling_unit_id, u.shelf_id,
	       u.created_at, u.created_by, u.updated_at, u.updated_by, u.is_deleted,
	       d.id, d.cold_chain, d.photosensitive, d.controlled, d.oncological
	FROM medication_handling_units u
	LEFT JOIN detail_medication_handling_units d ON d.id = u.id`

// Create persiste la unidad y, si viene, su detalle.
func (r *MedicationHandlingUnitRepo) Create(unit *entity.MedicationHandlingUnit) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO medication_handling_units (id, concentration, medication_id, handling_unit_id, shelf_id, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $6, $7)`,
		unit.ID, unit.Concentration, unit.MedicationID, unit.HandlingUnitID, unit.ShelfID,
		unit.CreatedAt, unit.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert medication handling unit: %w", err)
	}
	if unit.Detail != nil {
		if err := r.UpsertDetail(unit.Detail); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene la unidad activa con su detalle (si existe).
func (r *MedicationHandlingUnitRepo) GetByID(id string) (*entity.MedicationHandlingUnit, error) {
	row := r.q.QueryRow(context.Background(),
		medicationHandlingUnitSelect+` WHERE u.id = $1 AND NOT u.is_deleted`, id)
	unit, err := scanMedicationHandlingUnit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medication handling unit: %w", err)
	}
	return unit, nil
}

// ResolveNatural resuelve la unidad activa por su clave natural. Más de una
// coincidencia -> ErrDuplicate.
func (r *MedicationHandlingUnitRepo) ResolveNatural(medicationName, concentration, unitName, shelfName string) (*entity.MedicationHandlingUnit, error) {
	rows, err := r.q.Query(context.Background(),
		medicationHandlingUnitSelect+`
		 JOIN medications m ON m.id = u.medication_id AND NOT m.is_deleted
		 JOIN handling_units h ON h.id = u.handling_unit_id AND NOT h.is_deleted
		 JOIN shelves s ON s.id = u.shelf_id AND NOT s.is_deleted
		 WHERE NOT u.is_deleted
		   AND m.name = $1 AND u.concentration = $2 AND h.name_unit = $3 AND s.name = $4
		 LIMIT 2`,
		medicationName, concentration, unitName, shelfName)
	if err != nil {
		return nil, fmt.Errorf("resolve medication handling unit: %w", err)
	}
	defer rows.Close()
	var list []*entity.MedicationHandlingUnit
	for rows.Next() {
		unit, err := scanMedicationHandlingUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medication handling unit: %w", err)
		}
		list = append(list, unit)
	}
	if err := rows.Err(); err != nil {
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

// Update actualiza concentración y estante de la unidad.
func (r *MedicationHandlingUnitRepo) Update(unit *entity.MedicationHandlingUnit) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE medication_handling_units SET concentration = $2, shelf_id = $3, updated_at = $4, updated_by = $5
		 WHERE id = $1 AND NOT is_deleted`,
		unit.ID, unit.Concentration, unit.ShelfID, unit.UpdatedAt, unit.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update medication handling unit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpsertDetail inserta o actualiza el detalle 1:1 de la unidad.
func (r *MedicationHandlingUnitRepo) UpsertDetail(detail *entity.DetailMedicationHandlingUnit) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO detail_medication_handling_units (id, cold_chain, photosensitive, controlled, oncological, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   cold_chain = EXCLUDED.cold_chain,
		   photosensitive = EXCLUDED.photosensitive,
		   controlled = EXCLUDED.controlled,
		   oncological = EXCLUDED.oncological,
		   updated_at = now(),
		   updated_by = EXCLUDED.updated_by`,
		detail.ID, detail.ColdChain, detail.Photosensitive, detail.Controlled, detail.Oncological,
		detail.CreatedAt, detail.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("upsert detail: %w", err)
	}
	return nil
}

// SetDeleted marca o desmarca el borrado lógico de unidad y detalle.
func (r *MedicationHandlingUnitRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE medication_handling_units SET is_deleted = $2, updated_at = now(), updated_by = $3
		 WHERE id = $1 AND is_deleted <> $2`, id, deleted, updatedBy)
	if err != nil {
		return fmt.Errorf("set medication handling unit deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	_, err = r.q.Exec(context.Background(),
		`UPDATE detail_medication_handling_units SET is_deleted = $2, updated_at = now(), updated_by = $3
		 WHERE id = $1`, id, deleted, updatedBy)
	if err != nil {
		return fmt.Errorf("set detail deleted: %w", err)
	}
	return nil
}

// List lista unidades activas; warehouseID vacío = sin filtro (via estante).
func (r *MedicationHandlingUnitRepo) List(warehouseID string, limit, offset int) ([]*entity.MedicationHandlingUnit, error) {
	rows, err := r.q.Query(context.Background(),
		medicationHandlingUnitSelect+`
		 JOIN shelves s ON s.id = u.shelf_id
		 WHERE NOT u.is_deleted AND ($1 = '' OR s.warehouse_id::text = $1)
		 ORDER BY u.created_at DESC LIMIT $2 OFFSET $3`,
		warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list medication handling units: %w", err)
	}
	defer rows.Close()
	var list []*entity.MedicationHandlingUnit
	for rows.Next() {
		unit, err := scanMedicationHandlingUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medication handling unit: %w", err)
		}
		list = append(list, unit)
	}
	return list, rows.Err()
}

func scanMedicationHandlingUnit(row pgx.Row) (*entity.MedicationHandlingUnit, error) {
	var u entity.MedicationHandlingUnit
	var detailID *string
	var coldChain, photosensitive, controlled, oncological *bool
	err := row.Scan(
		&u.ID, &u.Concentration, &u.MedicationID, &u.HandlingUnitID, &u.ShelfID,
		&u.CreatedAt, &u.CreatedBy, &u.UpdatedAt, &u.UpdatedBy, &u.IsDeleted,
		&detailID, &coldChain, &photosensitive, &controlled, &oncological,
	)
	if err != nil {
		return nil, err
	}
	if detailID != nil {
		u.Detail = &entity.DetailMedicationHandlingUnit{
			ID:             *detailID,
			ColdChain:      *coldChain,
			Photosensitive: *photosensitive,
			Controlled:     *controlled,
			Oncological:    *oncological,
		}
	}
	return &u, nil
}
