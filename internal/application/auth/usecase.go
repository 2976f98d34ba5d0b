package auth

import (
	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/domain"
	"github.com/farmastock/almacen-api/internal/domain/entity"
	"github.com/farmastock/almacen-api/internal/domain/repository"
	"github.com/farmastock/almacen-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación: login con emisión de JWT que
// lleva rol y, para roles no administradores, el almacén asignado.
type AuthUseCase struct {
	userRepo          repository.UserRepository
	userWarehouseRepo repository.UserWarehouseRepository
	jwtCfg            JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, userWarehouseRepo repository.UserWarehouseRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, userWarehouseRepo: userWarehouseRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario/password con bcrypt y emite el token. Un usuario no
// administrador sin asignación de almacén activa no puede autenticarse: su
// token no tendría alcance utilizable.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUserName(in.UserName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	warehouseID := ""
	if user.Role != entity.RoleAdmin {
		assignment, err := uc.userWarehouseRepo.GetActiveByUser(user.ID)
		if err != nil {
			return nil, err
		}
		if assignment == nil {
			return nil, domain.ErrNoWarehouse
		}
		warehouseID = assignment.WarehouseID
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, warehouseID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token}, nil
}
