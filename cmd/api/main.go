package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/farmastock/almacen-api/internal/application/auth"
	"github.com/farmastock/almacen-api/internal/application/ledger"
	"github.com/farmastock/almacen-api/internal/application/reports"
	"github.com/farmastock/almacen-api/internal/application/usecase"
	"github.com/farmastock/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/farmastock/almacen-api/internal/interfaces/http"
	"github.com/farmastock/almacen-api/pkg/config"
	"github.com/farmastock/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	shelfRepo := postgres.NewShelfRepository(pool)
	medicationRepo := postgres.NewMedicationRepository(pool)
	handlingUnitRepo := postgres.NewHandlingUnitRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	typeRepo := postgres.NewTypeOfMovementRepository(pool)
	mhuRepo := postgres.NewMedicationHandlingUnitRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	bonusRepo := postgres.NewBonusRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	personRepo := postgres.NewPersonRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	userWarehouseRepo := postgres.NewUserWarehouseRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	txRunner := postgres.NewTxRunner(pool)
	identityTxRunner := postgres.NewIdentityTxRunner(pool)

	batchUC := ledger.NewBatchUseCase(txRunner, batchRepo)
	movementUC := ledger.NewMovementUseCase(txRunner, movementRepo, batchRepo)
	bonusUC := ledger.NewBonusUseCase(txRunner, bonusRepo, batchRepo)
	alertUC := usecase.NewAlertUseCase(alertRepo, batchRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	shelfUC := usecase.NewShelfUseCase(shelfRepo, warehouseRepo)
	medicationUC := usecase.NewMedicationUseCase(medicationRepo)
	handlingUnitUC := usecase.NewHandlingUnitUseCase(handlingUnitRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	typeUC := usecase.NewTypeOfMovementUseCase(typeRepo)
	mhuUC := usecase.NewMedicationHandlingUnitUseCase(mhuRepo, medicationRepo, handlingUnitRepo, shelfRepo)
	personUC := usecase.NewPersonUseCase(identityTxRunner, personRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	userWarehouseUC := usecase.NewUserWarehouseUseCase(identityTxRunner, userWarehouseRepo)
	reportUC := reports.NewReportUseCase(reportRepo)

	authUC := auth.NewAuthUseCase(userRepo, userWarehouseRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El middleware exige
	// que el JSON exista, así que solo se monta cuando está generado.
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "FarmaStock API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, UI deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:                   authUC,
		BatchUC:                  batchUC,
		MovementUC:               movementUC,
		BonusUC:                  bonusUC,
		AlertUC:                  alertUC,
		WarehouseUC:              warehouseUC,
		ShelfUC:                  shelfUC,
		MedicationUC:             medicationUC,
		HandlingUnitUC:           handlingUnitUC,
		SupplierUC:               supplierUC,
		TypeOfMovementUC:         typeUC,
		MedicationHandlingUnitUC: mhuUC,
		PersonUC:                 personUC,
		UserUC:                   userUC,
		UserWarehouseUC:          userWarehouseUC,
		ReportUC:                 reportUC,
		JWTSecret:                cfg.JWT.Secret,
		UploadDir:                cfg.Upload.Dir,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
