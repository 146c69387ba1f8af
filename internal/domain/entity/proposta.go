package entity

import "time"

// Status do ciclo de vida de uma Proposta. CONCLUIDA é terminal; RECUSADA só
// reentra em EM_ANALISE.
const (
	PropostaEmAnalise             = "EM_ANALISE"
	PropostaPreAprovada           = "PRE_APROVADA"
	PropostaAprovada              = "APROVADA"
	PropostaTransferenciaIniciada = "TRANSFERENCIA_INICIADA"
	PropostaConcluida             = "CONCLUIDA"
	PropostaRecusada              = "RECUSADA"
)

// Tipos de comprador.
const (
	CompradorPF = "PF" // pessoa física
	CompradorPJ = "PJ" // pessoa jurídica
)

// Proposta representa a oferta de um comprador por uma cota específica.
// Nunca é apagada; o histórico fica em PropostaHistorico.
type Proposta struct {
	ID            string
	CotaID        string
	TipoComprador string // PF | PJ
	CompradorID   string // aponta para PerfilPF ou PerfilPJ conforme TipoComprador
	Status        string
	MotivoRecusa  string // obrigatório quando Status == RECUSADA; limpo nas demais transições
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Ativa informa se a proposta ainda progride no fluxo (fora dos estados
// terminais RECUSADA e CONCLUIDA).
func (p *Proposta) Ativa() bool {
	return p.Status != PropostaRecusada && p.Status != PropostaConcluida
}
