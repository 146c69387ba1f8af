package entity

import "time"

// PropostaHistorico é uma linha de auditoria append-only de mudança de status
// de proposta. Escrita na mesma transação da mudança que registra; nunca
// alterada nem apagada.
type PropostaHistorico struct {
	ID           string
	PropostaID   string
	StatusAntigo string // vazio na criação da proposta
	StatusNovo   string
	AlteradoPor  string
	Notas        string // motivo de recusa ou nota sintética do sistema
	AlteradoEm   time.Time
}

// CotaHistorico é uma linha de auditoria append-only de mudança de campo de
// cota (uma linha por campo observado).
type CotaHistorico struct {
	ID          string
	CotaID      string
	Campo       string
	ValorAntigo string
	ValorNovo   string
	AlteradoPor string
	AlteradoEm  time.Time
}
