package postgres

import (
	"context"
	"fmt"

	"github.com/contempla/cotas-api/internal/domain/entity"
	"github.com/contempla/cotas-api/internal/domain/repository"
)

var _ repository.PropostaHistoricoRepository = (*PropostaHistoricoRepo)(nil)
var _ repository.CotaHistoricoRepository = (*CotaHistoricoRepo)(nil)

// PropostaHistoricoRepo auditoria append-only de propostas sobre PostgreSQL.
// Sem Update/Delete: linhas de histórico nunca mudam.
type PropostaHistoricoRepo struct {
	q Querier
}

// NewPropostaHistoricoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPropostaHistoricoRepository(q Querier) *PropostaHistoricoRepo {
	return &PropostaHistoricoRepo{q: q}
}

// Append grava uma linha de auditoria.
func (r *PropostaHistoricoRepo) Append(h *entity.PropostaHistorico) error {
	query := `
		INSERT INTO propostas_historico (id, proposta_id, status_antigo, status_novo, alterado_por, notas, alterado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.PropostaID, h.StatusAntigo, h.StatusNovo, h.AlteradoPor, h.Notas, h.AlteradoEm,
	)
	if err != nil {
		return fmt.Errorf("append proposta_historico: %w", err)
	}
	return nil
}

// ListByProposta devolve o histórico de uma proposta em ordem cronológica.
func (r *PropostaHistoricoRepo) ListByProposta(propostaID string) ([]*entity.PropostaHistorico, error) {
	query := `
		SELECT id, proposta_id, status_antigo, status_novo, alterado_por, notas, alterado_em
		FROM propostas_historico WHERE proposta_id = $1 ORDER BY alterado_em`
	rows, err := r.q.Query(context.Background(), query, propostaID)
	if err != nil {
		return nil, fmt.Errorf("list proposta_historico: %w", err)
	}
	defer rows.Close()

	var list []*entity.PropostaHistorico
	for rows.Next() {
		var h entity.PropostaHistorico
		if err := rows.Scan(&h.ID, &h.PropostaID, &h.StatusAntigo, &h.StatusNovo, &h.AlteradoPor, &h.Notas, &h.AlteradoEm); err != nil {
			return nil, fmt.Errorf("scan proposta_historico: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// CotaHistoricoRepo auditoria append-only de cotas sobre PostgreSQL.
type CotaHistoricoRepo struct {
	q Querier
}

// NewCotaHistoricoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCotaHistoricoRepository(q Querier) *CotaHistoricoRepo {
	return &CotaHistoricoRepo{q: q}
}

// Append grava uma linha de auditoria de campo de cota.
func (r *CotaHistoricoRepo) Append(h *entity.CotaHistorico) error {
	query := `
		INSERT INTO cotas_historico (id, cota_id, campo, valor_antigo, valor_novo, alterado_por, alterado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.CotaID, h.Campo, h.ValorAntigo, h.ValorNovo, h.AlteradoPor, h.AlteradoEm,
	)
	if err != nil {
		return fmt.Errorf("append cota_historico: %w", err)
	}
	return nil
}

// ListByCota devolve o histórico de uma cota em ordem cronológica.
func (r *CotaHistoricoRepo) ListByCota(cotaID string) ([]*entity.CotaHistorico, error) {
	query := `
		SELECT id, cota_id, campo, valor_antigo, valor_novo, alterado_por, alterado_em
		FROM cotas_historico WHERE cota_id = $1 ORDER BY alterado_em`
	rows, err := r.q.Query(context.Background(), query, cotaID)
	if err != nil {
		return nil, fmt.Errorf("list cota_historico: %w", err)
	}
	defer rows.Close()

	var list []*entity.CotaHistorico
	for rows.Next() {
		var h entity.CotaHistorico
		if err := rows.Scan(&h.ID, &h.CotaID, &h.Campo, &h.ValorAntigo, &h.ValorNovo, &h.AlteradoPor, &h.AlteradoEm); err != nil {
			return nil, fmt.Errorf("scan cota_historico: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
