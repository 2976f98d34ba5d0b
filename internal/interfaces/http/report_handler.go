package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/almacen-api/internal/application/reports"
)

// ReportHandler maneja los reportes agregados y las series para gráficas.
// Todas las consultas respetan el alcance de almacén del caller.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesByWarehouse godoc
// @Summary      Salidas acumuladas por almacén y medicamento
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseMedicationRow
// @Router       /api/reports/salesByWarehouse [get]
func (h *ReportHandler) SalesByWarehouse(c *fiber.Ctx) error {
	out, err := h.uc.SalesByWarehouse(c.Context(), GetCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopMedications godoc
// @Summary      Medicamentos con más salidas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de filas (por defecto 10)"
// @Success      200  {array}  dto.RankedRow
// @Router       /api/reports/topMedications [get]
func (h *ReportHandler) TopMedications(c *fiber.Ctx) error {
	out, err := h.uc.TopMedications(c.Context(), GetCaller(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FrequentSuppliers godoc
// @Summary      Proveedores con más lotes activos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de filas (por defecto 10)"
// @Success      200  {array}  dto.RankedRow
// @Router       /api/reports/frequentSuppliers [get]
func (h *ReportHandler) FrequentSuppliers(c *fiber.Ctx) error {
	out, err := h.uc.FrequentSuppliers(c.Context(), GetCaller(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExpiredLosses godoc
// @Summary      Pérdidas por lotes vencidos con stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseMedicationRow
// @Router       /api/reports/expiredLosses [get]
func (h *ReportHandler) ExpiredLosses(c *fiber.Ctx) error {
	out, err := h.uc.ExpiredLosses(c.Context(), GetCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExpiringSoon godoc
// @Summary      Lotes próximos a vencer
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "ventana en días (por defecto 30)"
// @Success      200  {array}  dto.ExpiringBatchRow
// @Router       /api/reports/expiringSoon [get]
func (h *ReportHandler) ExpiringSoon(c *fiber.Ctx) error {
	out, err := h.uc.ExpiringSoon(c.Context(), GetCaller(c), c.QueryInt("days", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GraphTopMedications godoc
// @Summary      Serie etiqueta/valor de medicamentos con más salidas
// @Tags         graphs
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de puntos (por defecto 10)"
// @Success      200  {array}  dto.GraphPoint
// @Router       /api/grafic/topMedications [get]
func (h *ReportHandler) GraphTopMedications(c *fiber.Ctx) error {
	out, err := h.uc.GraphTopMedications(c.Context(), GetCaller(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GraphFrequentSuppliers godoc
// @Summary      Serie etiqueta/valor de proveedores con más lotes
// @Tags         graphs
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de puntos (por defecto 10)"
// @Success      200  {array}  dto.GraphPoint
// @Router       /api/grafic/frequentSuppliers [get]
func (h *ReportHandler) GraphFrequentSuppliers(c *fiber.Ctx) error {
	out, err := h.uc.GraphFrequentSuppliers(c.Context(), GetCaller(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
