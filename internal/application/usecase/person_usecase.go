package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
)

// PersonUseCase alta y gestión de personas. El alta puede ser solo
// biográfica o de incorporación completa (persona + usuario con ID
// compartido + asignación de almacén para roles no administradores), todo en
// una transacción.
type PersonUseCase struct {
	txRunner   IdentityTxRunner
	personRepo repository.PersonRepository
}

// NewPersonUseCase construye el caso de uso.
func NewPersonUseCase(txRunner IdentityTxRunner, personRepo repository.PersonRepository) *PersonUseCase {
	return &PersonUseCase{txRunner: txRunner, personRepo: personRepo}
}

// Create da de alta una persona; si viene user_name crea también el usuario
// y, para roles no administradores, su asignación de almacén. CI y email
// duplicados se rechazan antes de persistir nada.
func (uc *PersonUseCase) Create(ctx context.Context, caller entity.Caller, in dto.CreatePersonRequest) (*dto.PersonResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var birthDate time.Time
	if in.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", in.BirthDate)
		if err != nil {
			return nil, domain.NewValidationError("birth_date", "fecha inválida, se espera yyyy-MM-dd")
		}
		birthDate = parsed
	}
	onboard := in.UserName != ""
	if onboard {
		if in.Password == "" {
			return nil, domain.NewValidationError("password", "requerido para crear el usuario")
		}
		if in.Role == "" {
			return nil, domain.NewValidationError("role", "requerido para crear el usuario")
		}
		if in.Role != entity.RoleAdmin && in.WarehouseID == "" {
			return nil, domain.NewValidationError("warehouse_id", "requerido para roles no administradores")
		}
	}

	var out *dto.PersonResponse
	err := uc.txRunner.Run(ctx, func(r IdentityRepos) error {
		exists, err := r.Persons.ExistsCI(in.CI)
		if err != nil {
			return err
		}
		if exists {
			return domain.NewValidationError("ci", "ya existe una persona con esa cédula")
		}
		if in.Email != "" {
			exists, err = r.Persons.ExistsEmail(in.Email)
			if err != nil {
				return err
			}
			if exists {
				return domain.NewValidationError("email", "ya existe una persona con ese email")
			}
		}

		now := time.Now()
		person := &entity.Person{
			ID:        uuid.New().String(),
			FirstName: in.FirstName,
			LastName:  in.LastName,
			CI:        in.CI,
			Email:     in.Email,
			Phone:     in.Phone,
			Address:   in.Address,
			BirthDate: birthDate,
			PhotoPath: in.PhotoPath,
			CreatedAt: now,
			CreatedBy: caller.UserID,
		}
		if err := r.Persons.Create(person); err != nil {
			return err
		}

		if onboard {
			existing, err := r.Users.GetByUserName(in.UserName)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.NewValidationError("user_name", "el nombre de usuario ya está en uso")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := &entity.User{
				ID:           person.ID, // ID compartido persona-usuario
				UserName:     in.UserName,
				PasswordHash: string(hash),
				Role:         in.Role,
				CreatedAt:    now,
				CreatedBy:    caller.UserID,
			}
			if err := r.Users.Create(user); err != nil {
				return err
			}
			if in.Role != entity.RoleAdmin {
				warehouse, err := r.Warehouses.GetByID(in.WarehouseID)
				if err != nil {
					return err
				}
				if warehouse == nil {
					return domain.NewValidationError("warehouse_id", "el almacén no existe o ha sido eliminado")
				}
				if in.Role == entity.RoleManager {
					taken, err := r.UserWarehouses.ActiveManagerExists(in.WarehouseID, user.ID)
					if err != nil {
						return err
					}
					if taken {
						return domain.ErrConflict
					}
				}
				assignment := &entity.UserWarehouse{
					ID:          uuid.New().String(),
					UserID:      user.ID,
					WarehouseID: in.WarehouseID,
					CreatedAt:   now,
					CreatedBy:   caller.UserID,
				}
				if err := r.UserWarehouses.Create(assignment); err != nil {
					return err
				}
			}
		}
		out = toPersonResponse(person)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene una persona activa.
func (uc *PersonUseCase) GetByID(id string) (*dto.PersonResponse, error) {
	person, err := uc.personRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, domain.ErrNotFound
	}
	return toPersonResponse(person), nil
}

// Update actualiza los datos biográficos de una persona.
func (uc *PersonUseCase) Update(caller entity.Caller, id string, in dto.UpdatePersonRequest) (*dto.PersonResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	person, err := uc.personRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, domain.ErrNotFound
	}
	if in.Email != nil && *in.Email != person.Email && *in.Email != "" {
		exists, err := uc.personRepo.ExistsEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewValidationError("email", "ya existe una persona con ese email")
		}
		person.Email = *in.Email
	}
	if in.FirstName != nil {
		person.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		person.LastName = *in.LastName
	}
	if in.Phone != nil {
		person.Phone = *in.Phone
	}
	if in.Address != nil {
		person.Address = *in.Address
	}
	if in.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *in.BirthDate)
		if err != nil {
			return nil, domain.NewValidationError("birth_date", "fecha inválida, se espera yyyy-MM-dd")
		}
		person.BirthDate = parsed
	}
	if in.PhotoPath != nil {
		person.PhotoPath = *in.PhotoPath
	}
	person.UpdatedAt = time.Now()
	person.UpdatedBy = caller.UserID
	if err := uc.personRepo.Update(person); err != nil {
		return nil, err
	}
	return toPersonResponse(person), nil
}

// List lista personas activas con paginación.
func (uc *PersonUseCase) List(limit, offset int) ([]dto.PersonResponse, error) {
	list, err := uc.personRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PersonResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPersonResponse(p))
	}
	return items, nil
}

// Delete borra lógicamente una persona.
func (uc *PersonUseCase) Delete(caller entity.Caller, id string) error {
	return uc.personRepo.SetDeleted(id, true, caller.UserID)
}

// Restore reactiva una persona borrada.
func (uc *PersonUseCase) Restore(caller entity.Caller, id string) error {
	return uc.personRepo.SetDeleted(id, false, caller.UserID)
}

// CheckCIExists indica si hay una persona activa con esa cédula.
func (uc *PersonUseCase) CheckCIExists(ci string) (bool, error) {
	return uc.personRepo.ExistsCI(ci)
}

// CheckEmailExists indica si hay una persona activa con ese email.
func (uc *PersonUseCase) CheckEmailExists(email string) (bool, error) {
	return uc.personRepo.ExistsEmail(email)
}

func toPersonResponse(p *entity.Person) *dto.PersonResponse {
	out := &dto.PersonResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		CI:        p.CI,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		PhotoPath: p.PhotoPath,
	}
	if !p.BirthDate.IsZero() {
		out.BirthDate = p.BirthDate.Format("2006-01-02")
	}
	return out
}
