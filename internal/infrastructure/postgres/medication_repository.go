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

var _ repository.MedicationRepository = (*MedicationRepo)(nil)

// MedicationRepo implementación del puerto MedicationRepository sobre
// PostgreSQL.
type MedicationRepo struct {
	q Querier
}

// NewMedicationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicationRepository(q Querier) *MedicationRepo {
	return &MedicationRepo{q: q}
}

// Create persiste un nuevo medicamento.
func (r *MedicationRepo) Create(medication *entity.Medication) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO medications (id, name, description, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $4, $5)`,
		medication.ID, medication.Name, medication.Description, medication.CreatedAt, medication.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert medication: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento activo por ID.
func (r *MedicationRepo) GetByID(id string) (*entity.Medication, error) {
	var m entity.Medication
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM medications WHERE id = $1 AND NOT is_deleted`, id).Scan(
		&m.ID, &m.Name, &m.Description, &m.CreatedAt, &m.CreatedBy, &m.UpdatedAt, &m.UpdatedBy, &m.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medication: %w", err)
	}
	return &m, nil
}

// GetByName obtiene un medicamento activo por nombre; ambiguo -> ErrDuplicate.
func (r *MedicationRepo) GetByName(name string) (*entity.Medication, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM medications WHERE name = $1 AND NOT is_deleted LIMIT 2`, name)
	if err != nil {
		return nil, fmt.Errorf("get medication by name: %w", err)
	}
	defer rows.Close()
	list, err := scanMedications(rows)
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

// Update actualiza nombre y descripción.
func (r *MedicationRepo) Update(medication *entity.Medication) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE medications SET name = $2, description = $3, updated_at = $4, updated_by = $5
		 WHERE id = $1 AND NOT is_deleted`,
		medication.ID, medication.Name, medication.Description, medication.UpdatedAt, medication.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update medication: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDeleted marca o desmarca el borrado lógico.
func (r *MedicationRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE medications SET is_deleted = $2, updated_at = now(), updated_by = $3
		 WHERE id = $1 AND is_deleted <> $2`, id, deleted, updatedBy)
	if err != nil {
		return fmt.Errorf("set medication deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista medicamentos activos con paginación.
func (r *MedicationRepo) List(limit, offset int) ([]*entity.Medication, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM medications WHERE NOT is_deleted ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	defer rows.Close()
	return scanMedications(rows)
}

func scanMedications(rows pgx.Rows) ([]*entity.Medication, error) {
	var list []*entity.Medication
	for rows.Next() {
		var m entity.Medication
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt, &m.CreatedBy, &m.UpdatedAt, &m.UpdatedBy, &m.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan medication: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
