package usecase_test

import (
	"context"

	"github.com/farmastock/almacen-api/internal/application/usecase"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los repositorios de identidad. Imitan la semántica
// relevante de la capa Postgres: lecturas que devuelven copias, filtrado por
// is_deleted y unicidad de CI/email/user_name sobre filas activas.
// ──────────────────────────────────────────────────────────────────────────────

type identityStore struct {
	users          map[string]*entity.User
	persons        map[string]*entity.Person
	userWarehouses map[string]*entity.UserWarehouse
	warehouses     map[string]*entity.Warehouse
}

func newIdentityStore() *identityStore {
	return &identityStore{
		users:          map[string]*entity.User{},
		persons:        map[string]*entity.Person{},
		userWarehouses: map[string]*entity.UserWarehouse{},
		warehouses:     map[string]*entity.Warehouse{},
	}
}

func (s *identityStore) repos() usecase.IdentityRepos {
	return usecase.IdentityRepos{
		Users:          &memUserRepo{s},
		Persons:        &memPersonRepo{s},
		UserWarehouses: &memUserWarehouseRepo{s},
		Warehouses:     &memWarehouseRepo{s},
	}
}

// memIdentityTxRunner ejecuta fn directamente. La atomicidad no se simula:
// los casos de uso validan antes de persistir y los tests comprueban que los
// rechazos no dejan escrituras parciales.
type memIdentityTxRunner struct{ s *identityStore }

func (r *memIdentityTxRunner) Run(_ context.Context, fn func(usecase.IdentityRepos) error) error {
	return fn(r.s.repos())
}

// ─── Users ────────────────────────────────────────────────────────────────────

type memUserRepo struct{ s *identityStore }

func (r *memUserRepo) Create(user *entity.User) error {
	c := *user
	r.s.users[user.ID] = &c
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok || u.IsDeleted {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *memUserRepo) GetByUserName(userName string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.UserName == userName && !u.IsDeleted {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(user *entity.User) error {
	c := *user
	r.s.users[user.ID] = &c
	return nil
}

func (r *memUserRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	u, ok := r.s.users[id]
	if !ok || u.IsDeleted == deleted {
		return domain.ErrNotFound
	}
	u.IsDeleted = deleted
	u.UpdatedBy = updatedBy
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		if !u.IsDeleted {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

// ─── Persons ──────────────────────────────────────────────────────────────────

type memPersonRepo struct{ s *identityStore }

func (r *memPersonRepo) Create(person *entity.Person) error {
	c := *person
	r.s.persons[person.ID] = &c
	return nil
}

func (r *memPersonRepo) GetByID(id string) (*entity.Person, error) {
	p, ok := r.s.persons[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memPersonRepo) Update(person *entity.Person) error {
	c := *person
	r.s.persons[person.ID] = &c
	return nil
}

func (r *memPersonRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	p, ok := r.s.persons[id]
	if !ok || p.IsDeleted == deleted {
		return domain.ErrNotFound
	}
	p.IsDeleted = deleted
	p.UpdatedBy = updatedBy
	return nil
}

func (r *memPersonRepo) List(limit, offset int) ([]*entity.Person, error) {
	var out []*entity.Person
	for _, p := range r.s.persons {
		if !p.IsDeleted {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memPersonRepo) ExistsCI(ci string) (bool, error) {
	for _, p := range r.s.persons {
		if p.CI == ci && !p.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPersonRepo) ExistsEmail(email string) (bool, error) {
	for _, p := range r.s.persons {
		if p.Email == email && !p.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

// ─── UserWarehouses ───────────────────────────────────────────────────────────

type memUserWarehouseRepo struct{ s *identityStore }

func (r *memUserWarehouseRepo) Create(assignment *entity.UserWarehouse) error {
	c := *assignment
	r.s.userWarehouses[assignment.ID] = &c
	return nil
}

func (r *memUserWarehouseRepo) GetByID(id string) (*entity.UserWarehouse, error) {
	a, ok := r.s.userWarehouses[id]
	if !ok || a.IsDeleted {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *memUserWarehouseRepo) GetActiveByUser(userID string) (*entity.UserWarehouse, error) {
	for _, a := range r.s.userWarehouses {
		if a.UserID == userID && !a.IsDeleted {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUserWarehouseRepo) ActiveManagerExists(warehouseID, excludeUserID string) (bool, error) {
	for _, a := range r.s.userWarehouses {
		if a.IsDeleted || a.WarehouseID != warehouseID || a.UserID == excludeUserID {
			continue
		}
		u, ok := r.s.users[a.UserID]
		if ok && !u.IsDeleted && u.Role == entity.RoleManager {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserWarehouseRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	a, ok := r.s.userWarehouses[id]
	if !ok || a.IsDeleted == deleted {
		return domain.ErrNotFound
	}
	a.IsDeleted = deleted
	a.UpdatedBy = updatedBy
	return nil
}

func (r *memUserWarehouseRepo) List(limit, offset int) ([]*entity.UserWarehouse, error) {
	var out []*entity.UserWarehouse
	for _, a := range r.s.userWarehouses {
		if !a.IsDeleted {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

// ─── Warehouses ───────────────────────────────────────────────────────────────

type memWarehouseRepo struct{ s *identityStore }

func (r *memWarehouseRepo) Create(warehouse *entity.Warehouse) error {
	c := *warehouse
	r.s.warehouses[warehouse.ID] = &c
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok || w.IsDeleted {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (r *memWarehouseRepo) GetByName(name string) (*entity.Warehouse, error) {
	for _, w := range r.s.warehouses {
		if w.Name == name && !w.IsDeleted {
			c := *w
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memWarehouseRepo) Update(warehouse *entity.Warehouse) error {
	c := *warehouse
	r.s.warehouses[warehouse.ID] = &c
	return nil
}

func (r *memWarehouseRepo) SetDeleted(id string, deleted bool, updatedBy string) error {
	w, ok := r.s.warehouses[id]
	if !ok || w.IsDeleted == deleted {
		return domain.ErrNotFound
	}
	w.IsDeleted = deleted
	w.UpdatedBy = updatedBy
	return nil
}

func (r *memWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if !w.IsDeleted {
			c := *w
			out = append(out, &c)
		}
	}
	return out, nil
}
