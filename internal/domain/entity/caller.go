package entity

// Roles del sistema. Los valores "0"/"1"/"2" viajan en el claim del JWT
// por compatibilidad con los clientes existentes.
const (
	RoleAdmin   = "0" // administrador: sin restricción de almacén
	RoleManager = "1" // encargado de almacén
	RoleWorker  = "2" // trabajador de almacén
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleWorker
}

// Caller es la identidad del solicitante, construida una sola vez por request
// a partir de los claims del token y pasada explícitamente a los casos de uso.
type Caller struct {
	UserID      string
	Role        string
	WarehouseID string // vacío para admin
}

// IsAdmin indica si el caller no tiene restricción de almacén.
func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// ScopeWarehouseID devuelve el filtro de almacén a aplicar en lecturas:
// vacío (sin filtro) para admin, el almacén asignado para el resto.
func (c Caller) ScopeWarehouseID() string {
	if c.IsAdmin() {
		return ""
	}
	return c.WarehouseID
}

// CanAccessWarehouse indica si el caller puede operar sobre el almacén dado.
func (c Caller) CanAccessWarehouse(warehouseID string) bool {
	return c.IsAdmin() || c.WarehouseID == warehouseID
}
