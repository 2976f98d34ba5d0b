package reports

import (
	"context"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// ReportUseCase reportes y gráficos del dashboard. Todas las consultas se
// acotan al almacén del caller; el administrador ve el agregado global.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// SalesByWarehouse unidades salidas por almacén y medicamento.
func (uc *ReportUseCase) SalesByWarehouse(ctx context.Context, caller entity.Caller) ([]dto.WarehouseMedicationRow, error) {
	rows, err := uc.repo.SalesByWarehouse(ctx, caller.ScopeWarehouseID())
	if err != nil {
		return nil, err
	}
	return toWarehouseMedicationRows(rows), nil
}

// TopMedications los limit medicamentos más despachados.
func (uc *ReportUseCase) TopMedications(ctx context.Context, caller entity.Caller, limit int) ([]dto.RankedRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.repo.TopMedications(ctx, caller.ScopeWarehouseID(), limit)
	if err != nil {
		return nil, err
	}
	return toRankedRows(rows), nil
}

// FrequentSuppliers los limit proveedores con más lotes activos.
func (uc *ReportUseCase) FrequentSuppliers(ctx context.Context, caller entity.Caller, limit int) ([]dto.RankedRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.repo.FrequentSuppliers(ctx, caller.ScopeWarehouseID(), limit)
	if err != nil {
		return nil, err
	}
	return toRankedRows(rows), nil
}

// ExpiredLosses stock restante atrapado en lotes vencidos.
func (uc *ReportUseCase) ExpiredLosses(ctx context.Context, caller entity.Caller) ([]dto.WarehouseMedicationRow, error) {
	rows, err := uc.repo.ExpiredLosses(ctx, caller.ScopeWarehouseID())
	if err != nil {
		return nil, err
	}
	return toWarehouseMedicationRows(rows), nil
}

// ExpiringSoon lotes con stock que vencen dentro de days días (30 por defecto).
func (uc *ReportUseCase) ExpiringSoon(ctx context.Context, caller entity.Caller, days int) ([]dto.ExpiringBatchRow, error) {
	if days <= 0 {
		days = 30
	}
	rows, err := uc.repo.ExpiringSoon(ctx, caller.ScopeWarehouseID(), days)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpiringBatchRow, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ExpiringBatchRow{
			Medication:        r.Medication,
			BatchCode:         r.BatchCode,
			ExpirationDate:    r.ExpirationDate.Format("2006-01-02"),
			RemainingQuantity: r.RemainingQuantity,
		})
	}
	return items, nil
}

// GraphTopMedications serie {label, value} para el gráfico de medicamentos.
func (uc *ReportUseCase) GraphTopMedications(ctx context.Context, caller entity.Caller, limit int) ([]dto.GraphPoint, error) {
	rows, err := uc.TopMedications(ctx, caller, limit)
	if err != nil {
		return nil, err
	}
	return toGraphPoints(rows), nil
}

// GraphFrequentSuppliers serie {label, value} para el gráfico de proveedores.
func (uc *ReportUseCase) GraphFrequentSuppliers(ctx context.Context, caller entity.Caller, limit int) ([]dto.GraphPoint, error) {
	rows, err := uc.FrequentSuppliers(ctx, caller, limit)
	if err != nil {
		return nil, err
	}
	return toGraphPoints(rows), nil
}

func toWarehouseMedicationRows(rows []repository.WarehouseMedicationCount) []dto.WarehouseMedicationRow {
	items := make([]dto.WarehouseMedicationRow, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.WarehouseMedicationRow{
			Warehouse:  r.Warehouse,
			Medication: r.Medication,
			Quantity:   r.Quantity,
		})
	}
	return items
}

func toRankedRows(rows []repository.NameCount) []dto.RankedRow {
	items := make([]dto.RankedRow, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.RankedRow{Name: r.Name, Total: r.Total})
	}
	return items
}

func toGraphPoints(rows []dto.RankedRow) []dto.GraphPoint {
	points := make([]dto.GraphPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, dto.GraphPoint{Label: r.Name, Value: r.Total})
	}
	return points
}
