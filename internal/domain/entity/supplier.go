package entity

import "time"

// Supplier representa un proveedor de medicamentos.
type Supplier struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
	IsDeleted bool
}
