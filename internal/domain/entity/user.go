package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleInspector = "inspector"
	RoleViewer    = "viewer"
)

// ValidRole informa si r es un rol conocido.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleInspector || r == RoleViewer
}

// User representa un usuario del tablero.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, inspector, viewer
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
