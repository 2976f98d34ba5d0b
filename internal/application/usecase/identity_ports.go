package usecase

import (
	"context"

	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// IdentityRepos son los repositorios de identidad vistos por una transacción:
// el runner los construye sobre la misma tx para que el alta de persona
// (persona + usuario + asignación de almacén) sea todo-o-nada.
type IdentityRepos struct {
	Users          repository.UserRepository
	Persons        repository.PersonRepository
	UserWarehouses repository.UserWarehouseRepository
	Warehouses     repository.WarehouseRepository
}

// IdentityTxRunner ejecuta fn dentro de una transacción con los repositorios
// de identidad atados a ella. Si fn devuelve error se revierte todo.
type IdentityTxRunner interface {
	Run(ctx context.Context, fn func(r IdentityRepos) error) error
}
