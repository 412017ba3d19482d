package entity

import "time"

// Roles válidos para UserProfile.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Estados de perfil.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// UserProfile perfil de aplicación; el ID es el mismo del proveedor de identidad.
type UserProfile struct {
	ID        string
	Name      string
	Role      string
	Status    string
	CreatedAt time.Time
}

// Identity usuario autenticado tal como lo devuelve el proveedor de identidad.
type Identity struct {
	ID    string
	Email string
}

// Session tokens emitidos por el proveedor de identidad.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// Credential credencial local (email + hash bcrypt) para el proveedor de identidad local.
type Credential struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
