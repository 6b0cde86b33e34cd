package entity

import "time"

// Roles válidos para User. Se persisten como string estable; validar siempre
// en el borde con ParseRole, nunca comparar strings sueltos en los handlers.
const (
	RoleUser         = "user"          // operario de tienda: solo accesorios, solo sus tiendas
	RolePartnerAdmin = "partner_admin" // administra accesorios en cualquier tienda
	RoleAdminGlobal  = "admin_global"  // acceso total, único que puede forzar inventario negativo
)

var validRoles = map[string]bool{
	RoleUser:         true,
	RolePartnerAdmin: true,
	RoleAdminGlobal:  true,
}

// ParseRole valida que el valor pertenezca al conjunto cerrado de roles.
func ParseRole(s string) (string, bool) {
	if validRoles[s] {
		return s, true
	}
	return "", false
}

// RoleAtLeastPartnerAdmin indica si el rol tiene privilegios de administración
// de inventario (partner_admin o admin_global).
func RoleAtLeastPartnerAdmin(role string) bool {
	return role == RolePartnerAdmin || role == RoleAdminGlobal
}

// User representa un actor del sistema. La relación con tiendas es
// muchos-a-muchos (tabla user_stores); admin_global tiene acceso implícito a
// todas las tiendas sin filas en esa tabla.
type User struct {
	ID                string
	Username          string // único
	PasswordHash      string // bcrypt, nunca en claro después de persistir
	Role              string // ver constantes Role*
	PasswordChangedAt time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
