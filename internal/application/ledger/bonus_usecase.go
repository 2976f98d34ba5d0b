package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// BonusUseCase registra bonificaciones: unidades gratuitas que incrementan de
// forma permanente InitialQuantity y CurrentQuantity del lote. Solo alta y
// lecturas; no hay reverso de bonificación.
type BonusUseCase struct {
	txRunner  TxRunner
	bonusRepo repository.BonusRepository
	batchRepo repository.BatchRepository
}

// NewBonusUseCase construye el caso de uso.
func NewBonusUseCase(txRunner TxRunner, bonusRepo repository.BonusRepository, batchRepo repository.BatchRepository) *BonusUseCase {
	return &BonusUseCase{txRunner: txRunner, bonusRepo: bonusRepo, batchRepo: batchRepo}
}

// Create registra la bonificación y desplaza ambas cantidades del lote en la
// misma transacción, con la fila del lote bloqueada.
func (uc *BonusUseCase) Create(ctx context.Context, caller entity.Caller, in dto.CreateBonusRequest) (*dto.BonusResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var out *dto.BonusResponse
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		batch, err := r.Batches.GetByCodeForUpdate(in.BatchCode)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if !caller.CanAccessWarehouse(batch.WarehouseID) {
			return domain.ErrForbidden
		}

		bonus := &entity.Bonus{
			ID:          uuid.New().String(),
			BonusAmount: in.BonusAmount,
			BonusPrice:  in.BonusPrice,
			BatchID:     batch.ID,
			CreatedAt:   time.Now(),
			CreatedBy:   caller.UserID,
		}
		if err := r.Bonuses.Create(bonus); err != nil {
			return err
		}
		if err := r.Batches.UpdateQuantities(
			batch.ID,
			batch.InitialQuantity+in.BonusAmount,
			batch.CurrentQuantity+in.BonusAmount,
			caller.UserID,
		); err != nil {
			return err
		}
		out = toBonusResponse(bonus)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID devuelve una bonificación visible para el caller.
func (uc *BonusUseCase) GetByID(ctx context.Context, caller entity.Caller, id string) (*dto.BonusResponse, error) {
	bonus, err := uc.bonusRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bonus == nil {
		return nil, domain.ErrNotFound
	}
	batch, err := uc.batchRepo.GetByIDAny(bonus.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || !caller.CanAccessWarehouse(batch.WarehouseID) {
		return nil, domain.ErrNotFound
	}
	return toBonusResponse(bonus), nil
}

// List lista bonificaciones filtradas al almacén del caller.
func (uc *BonusUseCase) List(ctx context.Context, caller entity.Caller, limit, offset int) ([]dto.BonusResponse, error) {
	list, err := uc.bonusRepo.List(caller.ScopeWarehouseID(), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BonusResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBonusResponse(b))
	}
	return items, nil
}

// ListByBatch lista las bonificaciones de un lote visible para el caller.
func (uc *BonusUseCase) ListByBatch(ctx context.Context, caller entity.Caller, batchID string) ([]dto.BonusResponse, error) {
	batch, err := uc.batchRepo.GetByIDAny(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || !caller.CanAccessWarehouse(batch.WarehouseID) {
		return nil, domain.ErrNotFound
	}
	list, err := uc.bonusRepo.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BonusResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBonusResponse(b))
	}
	return items, nil
}

func toBonusResponse(b *entity.Bonus) *dto.BonusResponse {
	return &dto.BonusResponse{
		ID:          b.ID,
		BatchID:     b.BatchID,
		BonusAmount: b.BonusAmount,
		BonusPrice:  b.BonusPrice,
	}
}
