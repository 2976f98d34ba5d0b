package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/almacen-api/internal/application/auth"
	"github.com/farmastock/almacen-api/internal/application/ledger"
	"github.com/farmastock/almacen-api/internal/application/reports"
	"github.com/farmastock/almacen-api/internal/application/usecase"
	"github.com/farmastock/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC                   *auth.AuthUseCase
	BatchUC                  *ledger.BatchUseCase
	MovementUC               *ledger.MovementUseCase
	BonusUC                  *ledger.BonusUseCase
	AlertUC                  *usecase.AlertUseCase
	WarehouseUC              *usecase.WarehouseUseCase
	ShelfUC                  *usecase.ShelfUseCase
	MedicationUC             *usecase.MedicationUseCase
	HandlingUnitUC           *usecase.HandlingUnitUseCase
	SupplierUC               *usecase.SupplierUseCase
	TypeOfMovementUC         *usecase.TypeOfMovementUseCase
	MedicationHandlingUnitUC *usecase.MedicationHandlingUnitUseCase
	PersonUC                 *usecase.PersonUseCase
	UserUC                   *usecase.UserUseCase
	UserWarehouseUC          *usecase.UserWarehouseUseCase
	ReportUC                 *reports.ReportUseCase
	JWTSecret                string
	UploadDir                string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas: Bearer token y claims de rol/almacén válidos.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RoleWarehouseMiddleware())

	// Batches (protegido)
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/full", batchHandler.CreateFull)
	batches.Post("/partial", batchHandler.CreatePartial)
	batches.Get("/", batchHandler.List)
	batches.Get("/expiringSoon", batchHandler.ExpiringSoon)
	batches.Get("/checkBatchCode/:code", batchHandler.CheckCode)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", batchHandler.Update)
	batches.Delete("/:id", batchHandler.Delete)
	batches.Post("/:id/restore", batchHandler.Restore)

	// Movements (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)
	movements.Post("/:id/restore", movementHandler.Restore)

	// Bonuses (protegido)
	bonuses := protected.Group("/bonuses")
	bonusHandler := NewBonusHandler(deps.BonusUC)
	bonuses.Post("/", bonusHandler.Create)
	bonuses.Get("/", bonusHandler.List)
	bonuses.Get("/batch/:batchId", bonusHandler.ListByBatch)
	bonuses.Get("/:id", bonusHandler.GetByID)

	// Alerts (protegido)
	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Post("/", alertHandler.Create)
	alerts.Get("/", alertHandler.List)
	alerts.Get("/batch/:batchId", alertHandler.ListByBatch)
	alerts.Get("/:id", alertHandler.GetByID)
	alerts.Put("/:id", alertHandler.Update)
	alerts.Delete("/:id", alertHandler.Delete)

	// Warehouses (protegido; mutaciones solo administrador, validado en el usecase)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)
	warehouses.Post("/:id/restore", warehouseHandler.Restore)

	// Shelves (protegido)
	shelves := protected.Group("/shelves")
	shelfHandler := NewShelfHandler(deps.ShelfUC)
	shelves.Post("/", shelfHandler.Create)
	shelves.Get("/", shelfHandler.List)
	shelves.Get("/:id", shelfHandler.GetByID)
	shelves.Put("/:id", shelfHandler.Update)
	shelves.Delete("/:id", shelfHandler.Delete)
	shelves.Post("/:id/restore", shelfHandler.Restore)

	// Medications (protegido, catálogo global)
	medications := protected.Group("/medications")
	medicationHandler := NewMedicationHandler(deps.MedicationUC)
	medications.Post("/", medicationHandler.Create)
	medications.Get("/", medicationHandler.List)
	medications.Get("/:id", medicationHandler.GetByID)
	medications.Put("/:id", medicationHandler.Update)
	medications.Delete("/:id", medicationHandler.Delete)
	medications.Post("/:id/restore", medicationHandler.Restore)

	// Handling units (protegido, catálogo global)
	handlingUnits := protected.Group("/handlingUnits")
	handlingUnitHandler := NewHandlingUnitHandler(deps.HandlingUnitUC)
	handlingUnits.Post("/", handlingUnitHandler.Create)
	handlingUnits.Get("/", handlingUnitHandler.List)
	handlingUnits.Get("/:id", handlingUnitHandler.GetByID)
	handlingUnits.Put("/:id", handlingUnitHandler.Update)
	handlingUnits.Delete("/:id", handlingUnitHandler.Delete)
	handlingUnits.Post("/:id/restore", handlingUnitHandler.Restore)

	// Suppliers (protegido, catálogo global)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)
	suppliers.Post("/:id/restore", supplierHandler.Restore)

	// Types of movement (protegido, catálogo global)
	types := protected.Group("/typesOfMovement")
	typeHandler := NewTypeOfMovementHandler(deps.TypeOfMovementUC)
	types.Post("/", typeHandler.Create)
	types.Get("/", typeHandler.List)
	types.Get("/:id", typeHandler.GetByID)
	types.Put("/:id", typeHandler.Update)
	types.Delete("/:id", typeHandler.Delete)
	types.Post("/:id/restore", typeHandler.Restore)

	// Medication handling units (protegido)
	mhu := protected.Group("/medicationHandlingUnits")
	mhuHandler := NewMedicationHandlingUnitHandler(deps.MedicationHandlingUnitUC)
	mhu.Post("/", mhuHandler.Create)
	mhu.Get("/", mhuHandler.List)
	mhu.Get("/:id", mhuHandler.GetByID)
	mhu.Put("/:id", mhuHandler.Update)
	mhu.Delete("/:id", mhuHandler.Delete)
	mhu.Post("/:id/restore", mhuHandler.Restore)

	// Persons (protegido)
	persons := protected.Group("/persons")
	personHandler := NewPersonHandler(deps.PersonUC, deps.UploadDir)
	persons.Post("/", personHandler.Create)
	persons.Get("/", personHandler.List)
	persons.Get("/checkCI/:ci", personHandler.CheckCI)
	persons.Get("/checkEmail/:email", personHandler.CheckEmail)
	persons.Get("/:id", personHandler.GetByID)
	persons.Put("/:id", personHandler.Update)
	persons.Post("/:id/photo", personHandler.UploadPhoto)
	persons.Delete("/:id", personHandler.Delete)
	persons.Post("/:id/restore", personHandler.Restore)

	// Users (protegido; listado y bajas solo administrador)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/restore", userHandler.Restore)

	// User-warehouse assignments (solo administrador)
	userWarehouses := protected.Group("/userWarehouses", RequireRole(entity.RoleAdmin))
	userWarehouseHandler := NewUserWarehouseHandler(deps.UserWarehouseUC)
	userWarehouses.Post("/", userWarehouseHandler.Assign)
	userWarehouses.Get("/", userWarehouseHandler.List)
	userWarehouses.Get("/user/:userId", userWarehouseHandler.GetActiveByUser)
	userWarehouses.Delete("/:id", userWarehouseHandler.Unassign)

	// Reports and graph series (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/salesByWarehouse", reportHandler.SalesByWarehouse)
	reportsGroup.Get("/topMedications", reportHandler.TopMedications)
	reportsGroup.Get("/frequentSuppliers", reportHandler.FrequentSuppliers)
	reportsGroup.Get("/expiredLosses", reportHandler.ExpiredLosses)
	reportsGroup.Get("/expiringSoon", reportHandler.ExpiringSoon)

	grafic := protected.Group("/grafic")
	grafic.Get("/topMedications", reportHandler.GraphTopMedications)
	grafic.Get("/frequentSuppliers", reportHandler.GraphFrequentSuppliers)
}
