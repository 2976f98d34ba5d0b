package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmastock/almacen-api/internal/application/ledger"
	"github.com/farmastock/almacen-api/internal/application/usecase"
)

var _ ledger.TxRunner = (*TxRunner)(nil)
var _ usecase.IdentityTxRunner = (*IdentityTxRunner)(nil)

// TxRunner ejecuta callbacks del libro de lotes dentro de una transacción
// PostgreSQL, con todos los repositorios atados a la misma tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ledger.Repos{
		Batches:       NewBatchRepository(tx),
		Movements:     NewMovementRepository(tx),
		Bonuses:       NewBonusRepository(tx),
		Alerts:        NewAlertRepository(tx),
		Types:         NewTypeOfMovementRepository(tx),
		Medications:   NewMedicationRepository(tx),
		HandlingUnits: NewHandlingUnitRepository(tx),
		Units:         NewMedicationHandlingUnitRepository(tx),
		Shelves:       NewShelfRepository(tx),
		Suppliers:     NewSupplierRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// IdentityTxRunner igual que TxRunner pero con los repositorios de identidad
// (alta de persona y asignaciones usuario-almacén).
type IdentityTxRunner struct {
	pool *pgxpool.Pool
}

// NewIdentityTxRunner construye el runner con el pool.
func NewIdentityTxRunner(pool *pgxpool.Pool) *IdentityTxRunner {
	return &IdentityTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *IdentityTxRunner) Run(ctx context.Context, fn func(repos usecase.IdentityRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := usecase.IdentityRepos{
		Users:          NewUserRepository(tx),
		Persons:        NewPersonRepository(tx),
		UserWarehouses: NewUserWarehouseRepository(tx),
		Warehouses:     NewWarehouseRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
