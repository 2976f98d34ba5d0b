package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

var _ repository.BonusRepository = (*BonusRepo)(nil)

// BonusRepo implementación del puerto BonusRepository sobre PostgreSQL.
type BonusRepo struct {
	q Querier
}

// NewBonusRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBonusRepository(q Querier) *BonusRepo {
	return &BonusRepo{q: q}
}

const bonusSelect = `
	SELECT o.id, o.bonus_amount, o.bonus_price, o.batch_id,
	       o.created_at, o.created_by, o.updated_at, o.updated_by, o.is_deleted
	FROM bonuses o`

// Create persiste una nueva bonificación.
func (r *BonusRepo) Create(bonus *entity.Bonus) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO bonuses (id, bonus_amount, bonus_price, batch_id, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $5, $6)`,
		bonus.ID, bonus.BonusAmount, bonus.BonusPrice, bonus.BatchID, bonus.CreatedAt, bonus.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert bonus: %w", err)
	}
	return nil
}

// GetByID obtiene una bonificación activa por ID.
func (r *BonusRepo) GetByID(id string) (*entity.Bonus, error) {
	var b entity.Bonus
	err := r.q.QueryRow(context.Background(),
		bonusSelect+` WHERE o.id = $1 AND NOT o.is_deleted`, id).Scan(
		&b.ID, &b.BonusAmount, &b.BonusPrice, &b.BatchID,
		&b.CreatedAt, &b.CreatedBy, &b.UpdatedAt, &b.UpdatedBy, &b.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bonus: %w", err)
	}
	return &b, nil
}

// List lista bonificaciones activas; warehouseID vacío = sin filtro (el
// almacén se resuelve vía el lote).
func (r *BonusRepo) List(warehouseID string, limit, offset int) ([]*entity.Bonus, error) {
	rows, err := r.q.Query(context.Background(),
		bonusSelect+`
		 JOIN batches b ON b.id = o.batch_id
		 JOIN medication_handling_units u ON u.id = b.medication_handling_unit_id
		 JOIN shelves s ON s.id = u.shelf_id
		 WHERE NOT o.is_deleted AND ($1 = '' OR s.warehouse_id::text = $1)
		 ORDER BY o.created_at DESC LIMIT $2 OFFSET $3`,
		warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bonuses: %w", err)
	}
	defer rows.Close()
	return scanBonuses(rows)
}

// ListByBatch lista las bonificaciones activas de un lote.
func (r *BonusRepo) ListByBatch(batchID string) ([]*entity.Bonus, error) {
	rows, err := r.q.Query(context.Background(),
		bonusSelect+` WHERE o.batch_id = $1 AND NOT o.is_deleted ORDER BY o.created_at`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list bonuses by batch: %w", err)
	}
	defer rows.Close()
	return scanBonuses(rows)
}

func scanBonuses(rows pgx.Rows) ([]*entity.Bonus, error) {
	var list []*entity.Bonus
	for rows.Next() {
		var b entity.Bonus
		if err := rows.Scan(&b.ID, &b.BonusAmount, &b.BonusPrice, &b.BatchID,
			&b.CreatedAt, &b.CreatedBy, &b.UpdatedAt, &b.UpdatedBy, &b.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan bonus: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
