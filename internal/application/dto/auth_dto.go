package dto

import "time"

// RegisterRequest entrada de registro: cria o usuário e o perfil (PF ou PJ)
// em EM_ANALISE.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Nome        string `json:"nome" validate:"required,min=1,max=200"`
	TipoPerfil  string `json:"tipo_perfil" validate:"required,oneof=PF PJ"`
	CPF         string `json:"cpf" validate:"omitempty"`
	CNPJ        string `json:"cnpj" validate:"omitempty"`
	RazaoSocial string `json:"razao_social" validate:"omitempty,max=200"`
	Telefone    string `json:"telefone" validate:"omitempty,max=20"`
}

// UserResponse saída de um usuário (sem password).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Nome       string    `json:"nome"`
	Role       string    `json:"role"`
	TipoPerfil string    `json:"tipo_perfil"`
	PerfilID   string    `json:"perfil_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse saída com token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
