package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmastock/almacen-api/internal/application/reports"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// spyReportRepo registra los argumentos de la última consulta y devuelve
// filas fijas.
type spyReportRepo struct {
	gotWarehouseID string
	gotLimit       int
	gotDays        int
}

func (r *spyReportRepo) SalesByWarehouse(_ context.Context, warehouseID string) ([]repository.WarehouseMedicationCount, error) {
	r.gotWarehouseID = warehouseID
	return []repository.WarehouseMedicationCount{{Warehouse: "Central", Medication: "Paracetamol", Quantity: 40}}, nil
}

func (r *spyReportRepo) TopMedications(_ context.Context, warehouseID string, limit int) ([]repository.NameCount, error) {
	r.gotWarehouseID = warehouseID
	r.gotLimit = limit
	return []repository.NameCount{{Name: "Paracetamol", Total: 40}, {Name: "Ibuprofeno", Total: 25}}, nil
}

func (r *spyReportRepo) FrequentSuppliers(_ context.Context, warehouseID string, limit int) ([]repository.NameCount, error) {
	r.gotWarehouseID = warehouseID
	r.gotLimit = limit
	return []repository.NameCount{{Name: "Droguería Central", Total: 7}}, nil
}

func (r *spyReportRepo) ExpiredLosses(_ context.Context, warehouseID string) ([]repository.WarehouseMedicationCount, error) {
	r.gotWarehouseID = warehouseID
	return nil, nil
}

func (r *spyReportRepo) ExpiringSoon(_ context.Context, warehouseID string, days int) ([]repository.ExpiringBatch, error) {
	r.gotWarehouseID = warehouseID
	r.gotDays = days
	return []repository.ExpiringBatch{{
		Medication:        "Amoxicilina",
		BatchCode:         "L-077",
		ExpirationDate:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		RemainingQuantity: 12,
	}}, nil
}

func TestReports_AdminSinFiltroDeAlmacen(t *testing.T) {
	repo := &spyReportRepo{}
	uc := reports.NewReportUseCase(repo)
	admin := entity.Caller{UserID: "u-admin", Role: entity.RoleAdmin}

	_, err := uc.SalesByWarehouse(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, "", repo.gotWarehouseID)
}

func TestReports_WorkerFiltraPorSuAlmacen(t *testing.T) {
	repo := &spyReportRepo{}
	uc := reports.NewReportUseCase(repo)
	worker := entity.Caller{UserID: "u-1", Role: entity.RoleWorker, WarehouseID: "w-1"}

	_, err := uc.ExpiredLosses(context.Background(), worker)
	require.NoError(t, err)
	assert.Equal(t, "w-1", repo.gotWarehouseID)
}

func TestReports_TopMedicationsLimitePorDefecto(t *testing.T) {
	repo := &spyReportRepo{}
	uc := reports.NewReportUseCase(repo)
	admin := entity.Caller{UserID: "u-admin", Role: entity.RoleAdmin}

	rows, err := uc.TopMedications(context.Background(), admin, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.gotLimit)
	require.Len(t, rows, 2)
	assert.Equal(t, "Paracetamol", rows[0].Name)

	_, err = uc.TopMedications(context.Background(), admin, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.gotLimit)
}

func TestReports_ExpiringSoonDiasPorDefecto(t *testing.T) {
	repo := &spyReportRepo{}
	uc := reports.NewReportUseCase(repo)
	admin := entity.Caller{UserID: "u-admin", Role: entity.RoleAdmin}

	rows, err := uc.ExpiringSoon(context.Background(), admin, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, repo.gotDays)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-09-15", rows[0].ExpirationDate)
}

func TestReports_GraficosMapeanLabelValue(t *testing.T) {
	repo := &spyReportRepo{}
	uc := reports.NewReportUseCase(repo)
	admin := entity.Caller{UserID: "u-admin", Role: entity.RoleAdmin}

	points, err := uc.GraphTopMedications(context.Background(), admin, 0)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "Paracetamol", points[0].Label)
	assert.Equal(t, 40, points[0].Value)
}
