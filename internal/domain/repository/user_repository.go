package repository

import "github.com/farmastock/almacen-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUserName(userName string) (*entity.User, error)
	Update(user *entity.User) error
	SetDeleted(id string, deleted bool, updatedBy string) error
	List(limit, offset int) ([]*entity.User, error)
}

// PersonRepository define el puerto de persistencia para Person.
type PersonRepository interface {
	Create(person *entity.Person) error
	GetByID(id string) (*entity.Person, error)
	Update(person *entity.Person) error
	SetDeleted(id string, deleted bool, updatedBy string) error
	List(limit, offset int) ([]*entity.Person, error)
	ExistsCI(ci string) (bool, error)
	ExistsEmail(email string) (bool, error)
}

// UserWarehouseRepository define el puerto para las asignaciones
// usuario-almacén. Un usuario tiene a lo sumo una asignación activa.
type UserWarehouseRepository interface {
	Create(assignment *entity.UserWarehouse) error
	GetByID(id string) (*entity.UserWarehouse, error)
	// GetActiveByUser devuelve la asignación activa del usuario o nil.
	GetActiveByUser(userID string) (*entity.UserWarehouse, error)
	// ActiveManagerExists indica si el almacén ya tiene un encargado
	// (rol "1") con asignación activa, excluyendo a excludeUserID.
	ActiveManagerExists(warehouseID, excludeUserID string) (bool, error)
	SetDeleted(id string, deleted bool, updatedBy string) error
	List(limit, offset int) ([]*entity.UserWarehouse, error)
}
