package dto

import "time"

// CreatePropostaRequest entrada para manifestar interesse em uma cota.
type CreatePropostaRequest struct {
	CotaID string `json:"cota_id" validate:"required,uuid"`
}

// TransicionarPropostaRequest pedido de transição de status.
type TransicionarPropostaRequest struct {
	Status string `json:"status" validate:"required"`
	Motivo string `json:"motivo" validate:"omitempty,max=500"`
}

// PropostaResponse saída de uma proposta.
type PropostaResponse struct {
	ID            string    `json:"id"`
	CotaID        string    `json:"cota_id"`
	TipoComprador string    `json:"tipo_comprador"`
	CompradorID   string    `json:"comprador_id"`
	Status        string    `json:"status"`
	MotivoRecusa  string    `json:"motivo_recusa,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PropostaListResponse listagem de propostas.
type PropostaListResponse struct {
	Items []PropostaResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// HistoricoResponse linha de auditoria de proposta.
type HistoricoResponse struct {
	ID           string    `json:"id"`
	PropostaID   string    `json:"proposta_id"`
	StatusAntigo string    `json:"status_antigo"`
	StatusNovo   string    `json:"status_novo"`
	AlteradoPor  string    `json:"alterado_por"`
	Notas        string    `json:"notas,omitempty"`
	AlteradoEm   time.Time `json:"alterado_em"`
}
