package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/application/ledger"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
)

func newBatchUseCase(s *memStore) *ledger.BatchUseCase {
	return ledger.NewBatchUseCase(&memTxRunner{store: s}, &memBatchRepo{s})
}

func fullBatchRequest(code string) dto.CreateFullBatchRequest {
	return dto.CreateFullBatchRequest{
		MedicationName:        "Ibuprofeno",
		MedicationDescription: "Antiinflamatorio",
		Concentration:         "400mg",
		HandlingUnitName:      "Caja",
		ShelfName:             "Estante A",
		SupplierName:          "Droguería Central",
		BatchCode:             code,
		FabricationDate:       time.Now().AddDate(0, -1, 0).Format("2006-01-02"),
		ExpirationDate:        time.Now().AddDate(2, 0, 0).Format("2006-01-02"),
		InitialQuantity:       200,
		MinimumStock:          10,
		UnitPrice:             decimal.NewFromFloat(1.75),
		NameOfMovement:        "Entrada por compra",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta completa / parcial
// ──────────────────────────────────────────────────────────────────────────────

// El alta completa crea medicamento, unidad con detalle, lote y movimiento
// inicial; las cantidades del lote ya incorporan la recepción.
func TestBatchCreateFull_CreaCadenaCompleta(t *testing.T) {
	s := newMemStore()
	seedLedger(t, s)
	uc := newBatchUseCase(s)

	out, err := uc.CreateFull(context.Background(), workerCaller(), fullBatchRequest("L-100"))

	require.NoError(t, err)
	assert.Equal(t, "L-100", out.BatchCode)
	assert.Equal(t, 200, out.InitialQuantity)
	assert.Equal(t, 200, out.CurrentQuantity)
	assert.Equal(t, testWarehouseID, out.WarehouseID)

	assert.Len(t, s.medications, 2, "debe crearse el medicamento nuevo")
	assert.Len(t, s.units, 2, "debe crearse la unidad medicamento-manejo")

	movimientos, err := s.repos().Movements.ListActiveByBatch(out.ID)
	require.NoError(t, err)
	require.Len(t, movimientos, 1, "debe quedar el movimiento inicial de recepción")
	assert.Equal(t, 200, movimientos[0].Quantity)
	assert.Equal(t, entity.DirectionIn, movimientos[0].Direction)
}

func TestBatchCreatePartial_ReutilizaMedicamento(t *testing.T) {
	s := newMemStore()
	seedLedger(t, s)
	medicationID := "7b8f0c0e-2f41-4f79-9a3d-111111111111"
	require.NoError(t, s.repos().Medications.Create(&entity.Medication{ID: medicationID, Name: "Amoxicilina"}))
	uc := newBatchUseCase(s)

	out, err := uc.CreatePartial(context.Background(), workerCaller(), dto.CreatePartialBatchRequest{
		MedicationID:     medicationID,
		Concentration:    "650mg",
		HandlingUnitName: "Caja",
		ShelfName:        "Estante A",
		SupplierName:     "Droguería Central",
		BatchCode:        "L-101",
		FabricationDate:  time.Now().AddDate(0, -1, 0).Format("2006-01-02"),
		ExpirationDate:   time.Now().AddDate(2, 0, 0).Format("2006-01-02"),
		InitialQuantity:  50,
		MinimumStock:     5,
		UnitPrice:        decimal.NewFromFloat(3.20),
		NameOfMovement:   "Entrada por compra",
	})

	require.NoError(t, err)
	assert.Equal(t, 50, out.CurrentQuantity)
	assert.Len(t, s.medications, 2, "no debe crearse un medicamento nuevo")
	assert.Len(t, s.units, 2)
}

func TestBatchCreateFull_CodigoDuplicadoRechaza(t *testing.T) {
	s := newMemStore()
	seedLedger(t, s) // ya existe L-001 activo
	uc := newBatchUseCase(s)

	_, err := uc.CreateFull(context.Background(), workerCaller(), fullBatchRequest("L-001"))

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El movimiento inicial debe ser de entrada; un tipo de salida se rechaza.
func TestBatchCreateFull_MovimientoInicialDeSalidaRechaza(t *testing.T) {
	s := newMemStore()
	seedLedger(t, s)
	uc := newBatchUseCase(s)
	in := fullBatchRequest("L-102")
	in.NameOfMovement = "Salida para venta"

	_, err := uc.CreateFull(context.Background(), workerCaller(), in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name_of_movement", vErr.Field)
}

func TestBatchCreateFull_EstanteAjenoProhibido(t *testing.T) {
	s := newMemStore()
	seedLedger(t, s)
	uc := newBatchUseCase(s)
	otro := entity.Caller{UserID: testWorkerID, Role: entity.RoleWorker, WarehouseID: testOtherWarehouseID}

	_, err := uc.CreateFull(context.Background(), otro, fullBatchRequest("L-103"))

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, s.batches, 1, "no debe quedar lote a medio crear")
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado y restauración con cascada
// ──────────────────────────────────────────────────────────────────────────────

// La cascada desactiva exactamente los movimientos activos del lote, sin
// recomputar cantidades, y la restauración reactiva solo esos.
func TestBatchDeleteRestore_CascadaExacta(t *testing.T) {
	s := newMemStore()
	batch := seedLedger(t, s)
	movUC := newMovementUseCase(s)
	batchUC := newBatchUseCase(s)

	m1 := crearMovimiento(t, movUC, workerCaller(), "Salida para venta", 10) // 90
	m2 := crearMovimiento(t, movUC, workerCaller(), "Entrada por compra", 5) // 95
	m3 := crearMovimiento(t, movUC, workerCaller(), "Salida para venta", 20) // 75
	// m3 se borra individualmente antes de la cascada: no debe volver con el lote.
	require.NoError(t, movUC.Delete(context.Background(), workerCaller(), m3.Movement.ID)) // 95

	require.NoError(t, batchUC.Delete(context.Background(), workerCaller(), batch.ID))

	assert.True(t, s.batches[batch.ID].IsDeleted)
	assert.Equal(t, 95, s.batches[batch.ID].CurrentQuantity, "el borrado del lote no recomputa cantidades")
	assert.True(t, s.movements[m1.Movement.ID].DeletedWithBatch)
	assert.True(t, s.movements[m2.Movement.ID].DeletedWithBatch)
	assert.False(t, s.movements[m3.Movement.ID].DeletedWithBatch, "el borrado previo no es de la cascada")

	require.NoError(t, batchUC.Restore(context.Background(), workerCaller(), batch.ID))

	assert.False(t, s.batches[batch.ID].IsDeleted)
	assert.Equal(t, 95, s.batches[batch.ID].CurrentQuantity, "la restauración tampoco recomputa")
	assert.False(t, s.movements[m1.Movement.ID].IsDeleted)
	assert.False(t, s.movements[m2.Movement.ID].IsDeleted)
	assert.True(t, s.movements[m3.Movement.ID].IsDeleted, "solo vuelve lo que la cascada desactivó")
}

func TestBatchRestore_ActivoEsConflicto(t *testing.T) {
	s := newMemStore()
	batch := seedLedger(t, s)
	uc := newBatchUseCase(s)

	err := uc.Restore(context.Background(), workerCaller(), batch.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Si mientras el lote estaba borrado su código fue reutilizado por otro lote
// activo, la restauración se rechaza: el código es único entre activos.
func TestBatchRestore_CodigoReutilizadoEsConflicto(t *testing.T) {
	s := newMemStore()
	batch := seedLedger(t, s)
	uc := newBatchUseCase(s)
	require.NoError(t, uc.Delete(context.Background(), workerCaller(), batch.ID))
	require.NoError(t, s.repos().Batches.Create(&entity.Batch{
		ID: "b-nuevo", BatchCode: "L-001",
		ExpirationDate:  time.Now().AddDate(1, 0, 0),
		InitialQuantity: 10, CurrentQuantity: 10,
		MedicationHandlingUnitID: "mhu-1", SupplierID: "sup-1",
		WarehouseID: testWarehouseID,
	}))

	err := uc.Restore(context.Background(), workerCaller(), batch.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, s.batches[batch.ID].IsDeleted)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update y lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestBatchUpdate_ResuelveClaveNatural(t *testing.T) {
	s := newMemStore()
	batch := seedLedger(t, s)
	uc := newBatchUseCase(s)

	err := uc.Update(context.Background(), workerCaller(), batch.ID, dto.UpdateBatchRequest{
		MedicationName:   "Paracetamol",
		Concentration:    "500mg",
		HandlingUnitName: "Caja",
		ShelfName:        "Estante A",
		SupplierName:     "Droguería Central",
		BatchCode:        "L-001-B",
		FabricationDate:  batch.FabricationDate.Format("2006-01-02"),
		ExpirationDate:   batch.ExpirationDate.Format("2006-01-02"),
		InitialQuantity:  100,
		CurrentQuantity:  80,
		MinimumStock:     8,
		UnitPrice:        decimal.NewFromFloat(2.90),
	})

	require.NoError(t, err)
	assert.Equal(t, "L-001-B", s.batches[batch.ID].BatchCode)
	assert.Equal(t, 80, s.batches[batch.ID].CurrentQuantity)
	assert.Equal(t, 8, s.batches[batch.ID].MinimumStock)
}

func TestBatchUpdate_ClaveNaturalSinCoincidencia(t *testing.T) {
	s := newMemStore()
	batch := seedLedger(t, s)
	uc := newBatchUseCase(s)

	err := uc.Update(context.Background(), workerCaller(), batch.ID, dto.UpdateBatchRequest{
		MedicationName:   "Paracetamol",
		Concentration:    "999mg", // no existe
		HandlingUnitName: "Caja",
		ShelfName:        "Estante A",
		SupplierName:     "Droguería Central",
		BatchCode:        "L-001",
		FabricationDate:  batch.FabricationDate.Format("2006-01-02"),
		ExpirationDate:   batch.ExpirationDate.Format("2006-01-02"),
		InitialQuantity:  100,
		CurrentQuantity:  100,
		MinimumStock:     5,
		UnitPrice:        decimal.NewFromFloat(2.50),
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "medication_handling_unit", vErr.Field)
}

func TestBatchGetByID_FueraDeAlcanceEsNotFound(t *testing.T) {
	s := newMemStore()
	batch := seedLedger(t, s)
	uc := newBatchUseCase(s)
	otro := entity.Caller{UserID: testWorkerID, Role: entity.RoleWorker, WarehouseID: testOtherWarehouseID}

	_, err := uc.GetByID(context.Background(), otro, batch.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBatchExpiringSoon_SoloConStockYDentroDeVentana(t *testing.T) {
	s := newMemStore()
	seedLedger(t, s) // vence en un año: fuera de la ventana de 30 días
	r := s.repos()
	require.NoError(t, r.Batches.Create(&entity.Batch{
		ID: "b-por-vencer", BatchCode: "L-090",
		ExpirationDate:  time.Now().AddDate(0, 0, 10),
		InitialQuantity: 10, CurrentQuantity: 10,
		MedicationHandlingUnitID: "mhu-1", SupplierID: "sup-1",
		WarehouseID: testWarehouseID,
	}))
	require.NoError(t, r.Batches.Create(&entity.Batch{
		ID: "b-agotado", BatchCode: "L-091",
		ExpirationDate:  time.Now().AddDate(0, 0, 10),
		InitialQuantity: 10, CurrentQuantity: 0,
		MedicationHandlingUnitID: "mhu-1", SupplierID: "sup-1",
		WarehouseID: testWarehouseID,
	}))
	uc := newBatchUseCase(s)

	out, err := uc.ExpiringSoon(context.Background(), workerCaller())

	require.NoError(t, err)
	require.Len(t, out, 1, "solo el lote con stock dentro de la ventana")
	assert.Equal(t, "L-090", out[0].BatchCode)
}
