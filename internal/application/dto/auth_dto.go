package dto

import "time"

// RegisterRequest body para POST /api/auth/register. El usuario queda en
// estado pending hasta aprobación de un administrador.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse usuario sin campos sensibles.
type UserResponse struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Name       string     `json:"name"`
	Email      string     `json:"email,omitempty"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	ApprovedBy string     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ApproveUserRequest body para POST /api/users/approve (solo admin).
type ApproveUserRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
	Status string `json:"status" validate:"required,oneof=active rejected"`
}
