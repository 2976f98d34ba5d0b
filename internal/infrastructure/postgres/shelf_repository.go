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

var _ repository.ShelfRepository = (*ShelfRepo)(nil)

// ShelfRepo implementación del puerto ShelfRepository sobre PostgreSQL.
type ShelfRepo struct {
	q Querier
}

// NewShelfRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShelfRepository(q Querier) *ShelfRepo {
	return &ShelfRepo{q: q}
}

// Create persiste un nuevo estante.
func (r *ShelfRepo) Create(shelf *entity.Shelf) error {
	query := `
		INSERT INTO shelves (id, name, warehouse_id, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		shelf.ID, shelf.Name, shelf.WarehouseID, shelf.CreatedAt, shelf.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert shelf: %w", err)
	}
	return nil
}

// GetByID obtiene un estante activo por ID.
func (r *ShelfRepo) GetByID(id string) (*entity.Shelf, error) {
	var s entity.Shelf
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, warehouse_id, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM shelves WHERE id = $1 AND NOT is_deleted`, id).Scan(
		&s.ID, &s.Name, &s.WarehouseID, &s.CreatedAt, &s.CreatedBy, &s.UpdatedAt, &s.UpdatedBy, &s.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shelf: %w", err)
	}
	return &s, nil
}

// GetByName obtiene un estante activo por nombre; ambiguo -> ErrDuplicate.
func (r *ShelfRepo) GetByName(name string) (*entity.Shelf, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, warehouse_id, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM shelves WHERE name = $1 AND NOT is_deleted LIMIT 2`, name)
	if err != nil {
		return nil, fmt.Errorf("get shelf by name: %w", err)
	}
	defer rows.Close()
	list, err := scanShelves(rows)
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

// Update actualiza nombre y almacén.
func (r *ShelfRepo) Update(shelf *entity.Shelf) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE shelves SET name = $2, warehouse_id = $3, updated_at = $4, updated_by = $5
		 WHERE id = $1 AND NOT is_deleted`,
		shelf.ID, shelf.Name, shelf.WarehouseID, shelf.UpdatedAt, shelf.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update shelf: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDeleted marca o desmarca el borrado lógico.
func (r *ShelfRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE shelves SET is_deleted = $2, updated_at = now(), updated_by = $3
		 WHERE id = $1 AND is_deleted <> $2`, id, deleted, updatedBy)
	if err != nil {
		return fmt.Errorf("set shelf deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista estantes activos; warehouseID vacío = sin filtro.
func (r *ShelfRepo) List(warehouseID string, limit, offset int) ([]*entity.Shelf, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, warehouse_id, created_at, created_by, updated_at, updated_by, is_deleted
		 FROM shelves
		 WHERE NOT is_deleted AND ($1 = '' OR warehouse_id::text = $1)
		 ORDER BY name LIMIT $2 OFFSET $3`, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}
	defer rows.Close()
	return scanShelves(rows)
}

func scanShelves(rows pgx.Rows) ([]*entity.Shelf, error) {
	var list []*entity.Shelf
	for rows.Next() {
		var s entity.Shelf
		if err := rows.Scan(&s.ID, &s.Name, &s.WarehouseID, &s.CreatedAt, &s.CreatedBy, &s.UpdatedAt, &s.UpdatedBy, &s.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan shelf: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
