package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Estados de aprobación de un usuario. El registro deja al usuario en
// StatusPending hasta que un administrador lo apruebe.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusRejected = "rejected"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Email        string
	Role         string // admin, user
	Status       string // pending, active, rejected
	ApprovedBy   string
	ApprovedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
