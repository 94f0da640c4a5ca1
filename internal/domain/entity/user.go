package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleTech  = "tech"
)

// User representa un usuario del sistema (técnico o administrador del taller).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, tech
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
