package repository

import "github.com/contempla/cotas-api/internal/domain/entity"

// PropostaHistoricoRepository porto append-only da auditoria de propostas.
type PropostaHistoricoRepository interface {
	Append(h *entity.PropostaHistorico) error
	ListByProposta(propostaID string) ([]*entity.PropostaHistorico, error)
}

// CotaHistoricoRepository porto append-only da auditoria de cotas.
type CotaHistoricoRepository interface {
	Append(h *entity.CotaHistorico) error
	ListByCota(cotaID string) ([]*entity.CotaHistorico, error)
}
