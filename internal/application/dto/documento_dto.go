package dto

import "time"

// UploadDocumentoRequest entrada de envio (ou reenvio) de documento.
// ArquivoURL é referência opaca ao object storage; o upload físico é externo.
type UploadDocumentoRequest struct {
	DonoID     string `json:"dono_id" validate:"required,uuid"`
	TipoDono   string `json:"tipo_dono" validate:"required,oneof=cota perfil_pf perfil_pj"`
	Tipo       string `json:"tipo" validate:"required,oneof=identidade fiscal empresa extrato_cota"`
	ArquivoURL string `json:"arquivo_url" validate:"required,url"`
}

// RevisarDocumentoRequest decisão do admin sobre um documento.
// Politica só se aplica à recusa de extrato de cota: "recusar" derruba as
// propostas PRE_APROVADA da cota; "reanalisar" devolve para EM_ANALISE.
type RevisarDocumentoRequest struct {
	Aprovar  bool   `json:"aprovar"`
	Motivo   string `json:"motivo" validate:"omitempty,max=500"`
	Politica string `json:"politica" validate:"omitempty,oneof=recusar reanalisar"`
}

// DocumentoResponse saída de um documento.
type DocumentoResponse struct {
	ID           string     `json:"id"`
	DonoID       string     `json:"dono_id"`
	TipoDono     string     `json:"tipo_dono"`
	Tipo         string     `json:"tipo"`
	ArquivoURL   string     `json:"arquivo_url"`
	Status       string     `json:"status"`
	RevisorID    string     `json:"revisor_id,omitempty"`
	RevisadoEm   *time.Time `json:"revisado_em,omitempty"`
	MotivoRecusa string     `json:"motivo_recusa,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DocumentoListResponse listagem de documentos.
type DocumentoListResponse struct {
	Items []DocumentoResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
