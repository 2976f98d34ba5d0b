package entity

import "time"

// User representa un usuario del sistema. Cuando se crea vía el alta de
// persona comparte el ID con su Person.
type User struct {
	ID           string
	UserName     string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Role         string // RoleAdmin | RoleManager | RoleWorker
	CreatedAt    time.Time
	CreatedBy    string
	UpdatedAt    time.Time
	UpdatedBy    string
	IsDeleted    bool
}

// Person datos biográficos, 1:1 opcional con User.
type Person struct {
	ID        string
	FirstName string
	LastName  string
	CI        string // cédula de identidad, única
	Email     string
	Phone     string
	Address   string
	BirthDate time.Time
	PhotoPath string // ruta relativa bajo el directorio de subida
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
	IsDeleted bool
}

// UserWarehouse asigna un usuario a lo sumo a un almacén activo.
type UserWarehouse struct {
	ID          string
	UserID      string
	WarehouseID string
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
	IsDeleted   bool
}
