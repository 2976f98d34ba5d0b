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

var _ repository.PersonRepository = (*PersonRepo)(nil)

// PersonRepo implementación del puerto PersonRepository sobre PostgreSQL.
type PersonRepo struct {
	q Querier
}

// NewPersonRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPersonRepository(q Querier) *PersonRepo {
	return &PersonRepo{q: q}
}

const personSelect = `
	SELECT id, first_name, last_name, ci, email, phone, address, birth_date, photo_path,
	       created_at, created_by, updated_at, updated_by, is_deleted
	FROM persons`

// Create persiste una nueva persona.
func (r *PersonRepo) Create(person *entity.Person) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO persons (id, first_name, last_name, ci, email, phone, address, birth_date, photo_path, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $10, $11)`,
		person.ID, person.FirstName, person.LastName, person.CI, person.Email, person.Phone,
		person.Address, person.BirthDate, person.PhotoPath, person.CreatedAt, person.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

// GetByID obtiene una persona activa por ID.
func (r *PersonRepo) GetByID(id string) (*entity.Person, error) {
	var p entity.Person
	err := r.q.QueryRow(context.Background(),
		personSelect+` WHERE id = $1 AND NOT is_deleted`, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.CI, &p.Email, &p.Phone, &p.Address, &p.BirthDate, &p.PhotoPath,
		&p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy, &p.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &p, nil
}

// Update actualiza los datos biográficos.
func (r *PersonRepo) Update(person *entity.Person) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE persons SET first_name = $2, last_name = $3, email = $4, phone = $5, address = $6,
		        birth_date = $7, photo_path = $8, updated_at = $9, updated_by = $10
		 WHERE id = $1 AND NOT is_deleted`,
		person.ID, person.FirstName, person.LastName, person.Email, person.Phone, person.Address,
		person.BirthDate, person.PhotoPath, person.UpdatedAt, person.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update person: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDeleted marca o desmarca el borrado lógico.
func (r *PersonRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE persons SET is_deleted = $2, updated_at = now(), updated_by = $3
		 WHERE id = $1 AND is_deleted <> $2`, id, deleted, updatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			// Restaurar chocaría con otra persona activa con la misma cédula.
			return domain.ErrConflict
		}
		return fmt.Errorf("set person deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista personas activas con paginación.
func (r *PersonRepo) List(limit, offset int) ([]*entity.Person, error) {
	rows, err := r.q.Query(context.Background(),
		personSelect+` WHERE NOT is_deleted ORDER BY last_name, first_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()
	var list []*entity.Person
	for rows.Next() {
		var p entity.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.CI, &p.Email, &p.Phone, &p.Address,
			&p.BirthDate, &p.PhotoPath, &p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy, &p.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ExistsCI indica si hay una persona activa con esa cédula.
func (r *PersonRepo) ExistsCI(ci string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM persons WHERE ci = $1 AND NOT is_deleted)`, ci).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists person ci: %w", err)
	}
	return exists, nil
}

// ExistsEmail indica si hay una persona activa con ese email.
func (r *PersonRepo) ExistsEmail(email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM persons WHERE email = $1 AND email <> '' AND NOT is_deleted)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists person email: %w", err)
	}
	return exists, nil
}
