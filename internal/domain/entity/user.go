package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleUsuario = "usuario"
)

// User representa um usuário autenticável do sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca em claro no domínio após persistir
	Nome         string
	Role         string // admin, usuario
	TipoPerfil   string // PF | PJ
	PerfilID     string // id do PerfilPF ou PerfilPJ conforme TipoPerfil
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
