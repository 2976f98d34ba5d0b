package ledger_test

import (
	"context"
	"strings"
	"time"

	"github.com/farmastock/almacen-api/internal/application/ledger"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los repositorios del libro de lotes. Imitan la
// semántica relevante de la capa Postgres: lecturas que devuelven copias
// (como un scan de fila), filtrado por is_deleted y la cascada por lote.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	batches       map[string]*entity.Batch
	movements     map[string]*entity.Movement
	bonuses       map[string]*entity.Bonus
	alerts        map[string]*entity.Alert
	types         map[string]*entity.TypeOfMovement
	shelves       map[string]*entity.Shelf
	handlingUnits map[string]*entity.HandlingUnit
	suppliers     map[string]*entity.Supplier
	medications   map[string]*entity.Medication
	units         map[string]*entity.MedicationHandlingUnit
	// naturalKeys mapea "medicamento|concentración|unidad|estante" → unit ID
	// para ResolveNatural.
	naturalKeys map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		batches:       map[string]*entity.Batch{},
		movements:     map[string]*entity.Movement{},
		bonuses:       map[string]*entity.Bonus{},
		alerts:        map[string]*entity.Alert{},
		types:         map[string]*entity.TypeOfMovement{},
		shelves:       map[string]*entity.Shelf{},
		handlingUnits: map[string]*entity.HandlingUnit{},
		suppliers:     map[string]*entity.Supplier{},
		medications:   map[string]*entity.Medication{},
		units:         map[string]*entity.MedicationHandlingUnit{},
		naturalKeys:   map[string]string{},
	}
}

// repos construye el juego de repositorios sobre el mismo almacén.
func (s *memStore) repos() ledger.Repos {
	return ledger.Repos{
		Batches:       &memBatchRepo{s},
		Movements:     &memMovementRepo{s},
		Bonuses:       &memBonusRepo{s},
		Alerts:        &memAlertRepo{s},
		Types:         &memTypeRepo{s},
		Medications:   &memMedicationRepo{s},
		HandlingUnits: &memHandlingUnitRepo{s},
		Units:         &memUnitRepo{s},
		Shelves:       &memShelfRepo{s},
		Suppliers:     &memSupplierRepo{s},
	}
}

// memTxRunner ejecuta fn directamente sobre el almacén compartido. La
// atomicidad no se simula: los casos de uso calculan antes de persistir, así
// que un rechazo no debe haber escrito nada (eso es parte de lo verificado).
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(r ledger.Repos) error) error {
	return fn(r.store.repos())
}

// ── Batch ────────────────────────────────────────────────────────────────────

type memBatchRepo struct{ s *memStore }

func copyBatch(b *entity.Batch) *entity.Batch {
	cp := *b
	return &cp
}

func (r *memBatchRepo) Create(batch *entity.Batch) error {
	r.s.batches[batch.ID] = copyBatch(batch)
	return nil
}

func (r *memBatchRepo) GetByID(id string) (*entity.Batch, error) {
	b, ok := r.s.batches[id]
	if !ok || b.IsDeleted {
		return nil, nil
	}
	return copyBatch(b), nil
}

func (r *memBatchRepo) GetByIDAny(id string) (*entity.Batch, error) {
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	return copyBatch(b), nil
}

func (r *memBatchRepo) GetByCode(code string) (*entity.Batch, error) {
	for _, b := range r.s.batches {
		if !b.IsDeleted && b.BatchCode == code {
			return copyBatch(b), nil
		}
	}
	return nil, nil
}

func (r *memBatchRepo) GetByIDForUpdate(id string) (*entity.Batch, error) {
	return r.GetByID(id)
}

func (r *memBatchRepo) GetByCodeForUpdate(code string) (*entity.Batch, error) {
	return r.GetByCode(code)
}

func (r *memBatchRepo) ExistsCode(code string) (bool, error) {
	b, err := r.GetByCode(code)
	return b != nil, err
}

func (r *memBatchRepo) Update(batch *entity.Batch) error {
	stored, ok := r.s.batches[batch.ID]
	if !ok || stored.IsDeleted {
		return domain.ErrNotFound
	}
	cp := copyBatch(batch)
	cp.IsDeleted = false
	r.s.batches[batch.ID] = cp
	return nil
}

func (r *memBatchRepo) UpdateQuantities(id string, initial, current int, updatedBy string) error {
	b, ok := r.s.batches[id]
	if !ok || b.IsDeleted {
		return domain.ErrNotFound
	}
	b.InitialQuantity = initial
	b.CurrentQuantity = current
	b.UpdatedBy = updatedBy
	b.UpdatedAt = time.Now()
	return nil
}

func (r *memBatchRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	b, ok := r.s.batches[id]
	if !ok || b.IsDeleted == deleted {
		return domain.ErrNotFound
	}
	b.IsDeleted = deleted
	b.UpdatedBy = updatedBy
	return nil
}

func (r *memBatchRepo) List(warehouseID string, limit, offset int) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.s.batches {
		if b.IsDeleted {
			continue
		}
		if warehouseID != "" && b.WarehouseID != warehouseID {
			continue
		}
		out = append(out, copyBatch(b))
	}
	return out, nil
}

func (r *memBatchRepo) ListExpiringSoon(warehouseID string, days int) ([]*entity.Batch, error) {
	cutoff := time.Now().AddDate(0, 0, days)
	var out []*entity.Batch
	for _, b := range r.s.batches {
		if b.IsDeleted || b.CurrentQuantity <= 0 {
			continue
		}
		if warehouseID != "" && b.WarehouseID != warehouseID {
			continue
		}
		if b.ExpirationDate.After(cutoff) {
			continue
		}
		out = append(out, copyBatch(b))
	}
	return out, nil
}

// ── Movement ─────────────────────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

func copyMovement(m *entity.Movement) *entity.Movement {
	cp := *m
	return &cp
}

func (r *memMovementRepo) Create(movement *entity.Movement) error {
	cp := copyMovement(movement)
	// Campos resueltos por join en la capa real.
	if t, ok := r.s.types[movement.TypeOfMovementID]; ok {
		cp.NameOfMovement = t.Name
		cp.Direction = t.Direction
	}
	if b, ok := r.s.batches[movement.BatchID]; ok {
		cp.BatchCode = b.BatchCode
	}
	r.s.movements[movement.ID] = cp
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, ok := r.s.movements[id]
	if !ok || m.IsDeleted {
		return nil, nil
	}
	return copyMovement(m), nil
}

func (r *memMovementRepo) GetByIDAny(id string) (*entity.Movement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	return copyMovement(m), nil
}

func (r *memMovementRepo) Update(movement *entity.Movement) error {
	stored, ok := r.s.movements[movement.ID]
	if !ok || stored.IsDeleted {
		return domain.ErrNotFound
	}
	cp := copyMovement(movement)
	if t, ok := r.s.types[movement.TypeOfMovementID]; ok {
		cp.NameOfMovement = t.Name
		cp.Direction = t.Direction
	}
	if b, ok := r.s.batches[movement.BatchID]; ok {
		cp.BatchCode = b.BatchCode
	}
	r.s.movements[movement.ID] = cp
	return nil
}

func (r *memMovementRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	m, ok := r.s.movements[id]
	if !ok || m.IsDeleted == deleted {
		return domain.ErrNotFound
	}
	m.IsDeleted = deleted
	m.DeletedWithBatch = false
	m.UpdatedBy = updatedBy
	return nil
}

func (r *memMovementRepo) List(warehouseID string, onlyDeleted bool, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.IsDeleted != onlyDeleted {
			continue
		}
		if warehouseID != "" {
			b, ok := r.s.batches[m.BatchID]
			if !ok || b.WarehouseID != warehouseID {
				continue
			}
		}
		out = append(out, copyMovement(m))
	}
	return out, nil
}

func (r *memMovementRepo) ListActiveByBatch(batchID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if !m.IsDeleted && m.BatchID == batchID {
			out = append(out, copyMovement(m))
		}
	}
	return out, nil
}

func (r *memMovementRepo) SetDeletedByBatch(batchID string, deleted bool, updatedBy string) error {
	for _, m := range r.s.movements {
		if m.BatchID != batchID {
			continue
		}
		if deleted && !m.IsDeleted {
			m.IsDeleted = true
			m.DeletedWithBatch = true
			m.UpdatedBy = updatedBy
		}
		if !deleted && m.IsDeleted && m.DeletedWithBatch {
			m.IsDeleted = false
			m.DeletedWithBatch = false
			m.UpdatedBy = updatedBy
		}
	}
	return nil
}

// ── Bonus ────────────────────────────────────────────────────────────────────

type memBonusRepo struct{ s *memStore }

func (r *memBonusRepo) Create(bonus *entity.Bonus) error {
	cp := *bonus
	r.s.bonuses[bonus.ID] = &cp
	return nil
}

func (r *memBonusRepo) GetByID(id string) (*entity.Bonus, error) {
	b, ok := r.s.bonuses[id]
	if !ok || b.IsDeleted {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBonusRepo) List(warehouseID string, limit, offset int) ([]*entity.Bonus, error) {
	var out []*entity.Bonus
	for _, b := range r.s.bonuses {
		if b.IsDeleted {
			continue
		}
		if warehouseID != "" {
			batch, ok := r.s.batches[b.BatchID]
			if !ok || batch.WarehouseID != warehouseID {
				continue
			}
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memBonusRepo) ListByBatch(batchID string) ([]*entity.Bonus, error) {
	var out []*entity.Bonus
	for _, b := range r.s.bonuses {
		if !b.IsDeleted && b.BatchID == batchID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── Alert ────────────────────────────────────────────────────────────────────

type memAlertRepo struct{ s *memStore }

func (r *memAlertRepo) Create(alert *entity.Alert) error {
	cp := *alert
	r.s.alerts[alert.ID] = &cp
	return nil
}

func (r *memAlertRepo) GetByID(id string) (*entity.Alert, error) {
	a, ok := r.s.alerts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memAlertRepo) Update(alert *entity.Alert) error {
	if _, ok := r.s.alerts[alert.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *alert
	r.s.alerts[alert.ID] = &cp
	return nil
}

func (r *memAlertRepo) Delete(id string) error {
	if _, ok := r.s.alerts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.alerts, id)
	return nil
}

func (r *memAlertRepo) List(warehouseID string, limit, offset int) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range r.s.alerts {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memAlertRepo) ListByBatch(batchID string) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range r.s.alerts {
		if a.BatchID == batchID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type memTypeRepo struct{ s *memStore }

func (r *memTypeRepo) Create(t *entity.TypeOfMovement) error {
	cp := *t
	r.s.types[t.ID] = &cp
	return nil
}

func (r *memTypeRepo) GetByID(id string) (*entity.TypeOfMovement, error) {
	t, ok := r.s.types[id]
	if !ok || t.IsDeleted {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTypeRepo) GetByName(name string) (*entity.TypeOfMovement, error) {
	var found *entity.TypeOfMovement
	for _, t := range r.s.types {
		if t.IsDeleted || t.Name != name {
			continue
		}
		if found != nil {
			return nil, domain.ErrDuplicate
		}
		cp := *t
		found = &cp
	}
	return found, nil
}

func (r *memTypeRepo) Update(t *entity.TypeOfMovement) error { return nil }

func (r *memTypeRepo) SetDeleted(id string, deleted bool, updatedBy string) error { return nil }

func (r *memTypeRepo) List(limit, offset int) ([]*entity.TypeOfMovement, error) { return nil, nil }

type memShelfRepo struct{ s *memStore }

func (r *memShelfRepo) Create(shelf *entity.Shelf) error {
	cp := *shelf
	r.s.shelves[shelf.ID] = &cp
	return nil
}

func (r *memShelfRepo) GetByID(id string) (*entity.Shelf, error) {
	sh, ok := r.s.shelves[id]
	if !ok || sh.IsDeleted {
		return nil, nil
	}
	cp := *sh
	return &cp, nil
}

func (r *memShelfRepo) GetByName(name string) (*entity.Shelf, error) {
	var found *entity.Shelf
	for _, sh := range r.s.shelves {
		if sh.IsDeleted || sh.Name != name {
			continue
		}
		if found != nil {
			return nil, domain.ErrDuplicate
		}
		cp := *sh
		found = &cp
	}
	return found, nil
}

func (r *memShelfRepo) Update(shelf *entity.Shelf) error { return nil }

func (r *memShelfRepo) SetDeleted(id string, deleted bool, updatedBy string) error { return nil }

func (r *memShelfRepo) List(warehouseID string, limit, offset int) ([]*entity.Shelf, error) {
	return nil, nil
}

type memHandlingUnitRepo struct{ s *memStore }

func (r *memHandlingUnitRepo) Create(unit *entity.HandlingUnit) error {
	cp := *unit
	r.s.handlingUnits[unit.ID] = &cp
	return nil
}

func (r *memHandlingUnitRepo) GetByID(id string) (*entity.HandlingUnit, error) {
	u, ok := r.s.handlingUnits[id]
	if !ok || u.IsDeleted {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memHandlingUnitRepo) GetByName(name string) (*entity.HandlingUnit, error) {
	var found *entity.HandlingUnit
	for _, u := range r.s.handlingUnits {
		if u.IsDeleted || u.NameUnit != name {
			continue
		}
		if found != nil {
			return nil, domain.ErrDuplicate
		}
		cp := *u
		found = &cp
	}
	return found, nil
}

func (r *memHandlingUnitRepo) Update(unit *entity.HandlingUnit) error { return nil }

func (r *memHandlingUnitRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	return nil
}

func (r *memHandlingUnitRepo) List(limit, offset int) ([]*entity.HandlingUnit, error) {
	return nil, nil
}

type memSupplierRepo struct{ s *memStore }

func (r *memSupplierRepo) Create(supplier *entity.Supplier) error {
	cp := *supplier
	r.s.suppliers[supplier.ID] = &cp
	return nil
}

func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	su, ok := r.s.suppliers[id]
	if !ok || su.IsDeleted {
		return nil, nil
	}
	cp := *su
	return &cp, nil
}

func (r *memSupplierRepo) GetByName(name string) (*entity.Supplier, error) {
	var found *entity.Supplier
	for _, su := range r.s.suppliers {
		if su.IsDeleted || su.Name != name {
			continue
		}
		if found != nil {
			return nil, domain.ErrDuplicate
		}
		cp := *su
		found = &cp
	}
	return found, nil
}

func (r *memSupplierRepo) Update(supplier *entity.Supplier) error { return nil }

func (r *memSupplierRepo) SetDeleted(id string, deleted bool, updatedBy string) error { return nil }

func (r *memSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }

type memMedicationRepo struct{ s *memStore }

func (r *memMedicationRepo) Create(medication *entity.Medication) error {
	cp := *medication
	r.s.medications[medication.ID] = &cp
	return nil
}

func (r *memMedicationRepo) GetByID(id string) (*entity.Medication, error) {
	m, ok := r.s.medications[id]
	if !ok || m.IsDeleted {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMedicationRepo) GetByName(name string) (*entity.Medication, error) {
	var found *entity.Medication
	for _, m := range r.s.medications {
		if m.IsDeleted || m.Name != name {
			continue
		}
		if found != nil {
			return nil, domain.ErrDuplicate
		}
		cp := *m
		found = &cp
	}
	return found, nil
}

func (r *memMedicationRepo) Update(medication *entity.Medication) error { return nil }

func (r *memMedicationRepo) SetDeleted(id string, deleted bool, updatedBy string) error { return nil }

func (r *memMedicationRepo) List(limit, offset int) ([]*entity.Medication, error) { return nil, nil }

type memUnitRepo struct{ s *memStore }

func naturalKey(medicationName, concentration, unitName, shelfName string) string {
	return strings.Join([]string{medicationName, concentration, unitName, shelfName}, "|")
}

func (r *memUnitRepo) Create(unit *entity.MedicationHandlingUnit) error {
	cp := *unit
	if unit.Detail != nil {
		d := *unit.Detail
		cp.Detail = &d
	}
	r.s.units[unit.ID] = &cp

	med := r.s.medications[unit.MedicationID]
	hu := r.s.handlingUnits[unit.HandlingUnitID]
	sh := r.s.shelves[unit.ShelfID]
	if med != nil && hu != nil && sh != nil {
		r.s.naturalKeys[naturalKey(med.Name, unit.Concentration, hu.NameUnit, sh.Name)] = unit.ID
	}
	return nil
}

func (r *memUnitRepo) GetByID(id string) (*entity.MedicationHandlingUnit, error) {
	u, ok := r.s.units[id]
	if !ok || u.IsDeleted {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUnitRepo) ResolveNatural(medicationName, concentration, unitName, shelfName string) (*entity.MedicationHandlingUnit, error) {
	id, ok := r.s.naturalKeys[naturalKey(medicationName, concentration, unitName, shelfName)]
	if !ok {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *memUnitRepo) Update(unit *entity.MedicationHandlingUnit) error { return nil }

func (r *memUnitRepo) UpsertDetail(detail *entity.DetailMedicationHandlingUnit) error { return nil }

func (r *memUnitRepo) SetDeleted(id string, deleted bool, updatedBy string) error { return nil }

func (r *memUnitRepo) List(warehouseID string, limit, offset int) ([]*entity.MedicationHandlingUnit, error) {
	return nil, nil
}
