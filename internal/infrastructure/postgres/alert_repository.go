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

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
// Las alertas no tienen borrado lógico.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create persiste una nueva alerta.
func (r *AlertRepo) Create(alert *entity.Alert) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO alerts (id, alert_type, message, generation_date, batch_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		alert.ID, alert.AlertType, alert.Message, alert.GenerationDate, alert.BatchID,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *AlertRepo) GetByID(id string) (*entity.Alert, error) {
	var a entity.Alert
	err := r.q.QueryRow(context.Background(),
		`SELECT id, alert_type, message, generation_date, batch_id FROM alerts WHERE id = $1`, id).Scan(
		&a.ID, &a.AlertType, &a.Message, &a.GenerationDate, &a.BatchID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &a, nil
}

// Update actualiza tipo y mensaje.
func (r *AlertRepo) Update(alert *entity.Alert) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE alerts SET alert_type = $2, message = $3 WHERE id = $1`,
		alert.ID, alert.AlertType, alert.Message,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina físicamente la alerta.
func (r *AlertRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista alertas; warehouseID vacío = sin filtro (via lote).
func (r *AlertRepo) List(warehouseID string, limit, offset int) ([]*entity.Alert, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT a.id, a.alert_type, a.message, a.generation_date, a.batch_id
		 FROM alerts a
		 JOIN batches b ON b.id = a.batch_id
		 JOIN medication_handling_units u ON u.id = b.medication_handling_unit_id
		 JOIN shelves s ON s.id = u.shelf_id
		 WHERE $1 = '' OR s.warehouse_id::text = $1
		 ORDER BY a.generation_date DESC LIMIT $2 OFFSET $3`,
		warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// ListByBatch lista las alertas de un lote.
func (r *AlertRepo) ListByBatch(batchID string) ([]*entity.Alert, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, alert_type, message, generation_date, batch_id
		 FROM alerts WHERE batch_id = $1 ORDER BY generation_date DESC`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list alerts by batch: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

func scanAlerts(rows pgx.Rows) ([]*entity.Alert, error) {
	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.AlertType, &a.Message, &a.GenerationDate, &a.BatchID); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
