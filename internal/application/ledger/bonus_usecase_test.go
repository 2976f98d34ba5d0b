package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/application/ledger"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
)

func newBonusUseCase(s *memStore) *ledger.BonusUseCase {
	return ledger.NewBonusUseCase(&memTxRunner{store: s}, &memBonusRepo{s}, &memBatchRepo{s})
}

// La bonificación desplaza inicial y actual en el mismo monto: preserva el
// balance del libro sin contarse como movimiento.
func TestBonusCreate_DesplazaAmbasCantidades(t *testing.T) {
	s := newMemStore()
	batch := seedLedger(t, s) // 100/100
	uc := newBonusUseCase(s)

	out, err := uc.Create(context.Background(), workerCaller(), dto.CreateBonusRequest{
		BatchCode:   "L-001",
		BonusAmount: 10,
		BonusPrice:  decimal.NewFromFloat(0.50),
	})

	require.NoError(t, err)
	assert.Equal(t, batch.ID, out.BatchID)
	assert.Equal(t, 110, s.batches[batch.ID].InitialQuantity)
	assert.Equal(t, 110, s.batches[batch.ID].CurrentQuantity)
	assert.Len(t, s.bonuses, 1)
	assert.Empty(t, s.movements, "la bonificación no registra movimiento")
}

func TestBonusCreate_LoteInexistenteEsNotFound(t *testing.T) {
	s := newMemStore()
	seedLedger(t, s)
	uc := newBonusUseCase(s)

	_, err := uc.Create(context.Background(), workerCaller(), dto.CreateBonusRequest{
		BatchCode:   "L-999",
		BonusAmount: 10,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.bonuses)
}

func TestBonusCreate_FueraDeAlcanceProhibido(t *testing.T) {
	s := newMemStore()
	batch := seedLedger(t, s)
	uc := newBonusUseCase(s)
	otro := entity.Caller{UserID: testWorkerID, Role: entity.RoleWorker, WarehouseID: testOtherWarehouseID}

	_, err := uc.Create(context.Background(), otro, dto.CreateBonusRequest{
		BatchCode:   "L-001",
		BonusAmount: 10,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 100, s.batches[batch.ID].CurrentQuantity)
}

func TestBonusListByBatch_FueraDeAlcanceEsNotFound(t *testing.T) {
	s := newMemStore()
	batch := seedLedger(t, s)
	uc := newBonusUseCase(s)
	_, err := uc.Create(context.Background(), workerCaller(), dto.CreateBonusRequest{
		BatchCode:   "L-001",
		BonusAmount: 5,
	})
	require.NoError(t, err)
	otro := entity.Caller{UserID: testWorkerID, Role: entity.RoleWorker, WarehouseID: testOtherWarehouseID}

	_, err = uc.ListByBatch(context.Background(), otro, batch.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
