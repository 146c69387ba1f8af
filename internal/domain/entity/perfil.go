package entity

import "time"

// Status de revisão de um perfil (PF ou PJ).
const (
	PerfilEmAnalise = "EM_ANALISE"
	PerfilAprovado  = "APROVADO"
	PerfilRecusado  = "RECUSADO"
)

// PerfilPF perfil de pessoa física (comprador ou vendedor).
type PerfilPF struct {
	ID        string
	UserID    string
	Nome      string
	CPF       string
	Telefone  string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PerfilPJ perfil de pessoa jurídica (comprador ou vendedor).
type PerfilPJ struct {
	ID          string
	UserID      string
	RazaoSocial string
	CNPJ        string
	Telefone    string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
