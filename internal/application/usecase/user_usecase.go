package usecase

import (
	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// UserUseCase lecturas y baja de usuarios. El alta vive en el alta de
// persona (ID compartido).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario activo (sin hash).
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// List lista usuarios activos. Solo administradores.
func (uc *UserUseCase) List(caller entity.Caller, limit, offset int) ([]dto.UserResponse, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return items, nil
}

// Delete borra lógicamente un usuario. Solo administradores.
func (uc *UserUseCase) Delete(caller entity.Caller, id string) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return uc.repo.SetDeleted(id, true, caller.UserID)
}

// Restore reactiva un usuario borrado. Solo administradores.
func (uc *UserUseCase) Restore(caller entity.Caller, id string) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return uc.repo.SetDeleted(id, false, caller.UserID)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID,
		UserName: u.UserName,
		Role:     u.Role,
	}
}
