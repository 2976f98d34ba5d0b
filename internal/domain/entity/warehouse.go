package entity

import "time"

// Warehouse representa un almacén físico. Posee cero o más estantes (Shelf).
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
	IsDeleted bool
}
