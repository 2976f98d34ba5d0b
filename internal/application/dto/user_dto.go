package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con el token JWT firmado.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}

// CreatePersonRequest entrada para el alta de persona. Si UserName viene
// informado se crea también el usuario (ID compartido) y, para roles no
// administradores, su asignación de almacén, todo en una transacción.
type CreatePersonRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	CI        string `json:"ci" validate:"required,max=20"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=30"`
	Address   string `json:"address" validate:"max=300"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	PhotoPath string `json:"photo_path" validate:"max=300"`

	UserName    string `json:"user_name" validate:"omitempty,min=3,max=50"`
	Password    string `json:"password" validate:"omitempty,min=8"`
	Role        string `json:"role" validate:"omitempty,oneof=0 1 2"`
	WarehouseID string `json:"warehouse_id" validate:"omitempty,uuid"`
}

// UpdatePersonRequest entrada para actualizar una persona.
type UpdatePersonRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	Address   *string `json:"address" validate:"omitempty,max=300"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	PhotoPath *string `json:"photo_path" validate:"omitempty,max=300"`
}

// PersonResponse salida de una persona.
type PersonResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CI        string `json:"ci"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date,omitempty"`
	PhotoPath string `json:"photo_path,omitempty"`
}

// ExistsResponse salida de los chequeos CheckCIExists / CheckEmailExists.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// AssignWarehouseRequest body para POST /api/userWarehouse/assign.
type AssignWarehouseRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	WarehouseID string `json:"warehouse_id" validate:"required,uuid"`
}

// UserWarehouseResponse salida de una asignación usuario-almacén.
type UserWarehouseResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	WarehouseID string `json:"warehouse_id"`
}
