package dto

import "time"

// RevisarPerfilRequest decisão do admin sobre um perfil PF/PJ.
type RevisarPerfilRequest struct {
	Aprovar bool   `json:"aprovar"`
	Motivo  string `json:"motivo" validate:"omitempty,max=500"`
}

// PerfilResponse saída de um perfil (PF ou PJ, campos irrelevantes vazios).
type PerfilResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Tipo        string    `json:"tipo"` // PF | PJ
	Nome        string    `json:"nome,omitempty"`
	CPF         string    `json:"cpf,omitempty"`
	RazaoSocial string    `json:"razao_social,omitempty"`
	CNPJ        string    `json:"cnpj,omitempty"`
	Telefone    string    `json:"telefone,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
