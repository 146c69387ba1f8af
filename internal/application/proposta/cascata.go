package proposta

import (
	"context"

	"github.com/contempla/cotas-api/internal/application/authz"
	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
)

// Políticas da cascata de recusa de extrato.
const (
	CascataRecusar    = "recusar"    // derruba as propostas PRE_APROVADA
	CascataReanalisar = "reanalisar" // devolve as propostas para EM_ANALISE
)

// AplicarCascataRecusaExtrato transita, sobre os repos da transação corrente,
// toda proposta PRE_APROVADA da cota cujo extrato foi recusado. É a aplicação
// em lote do mesmo grafo de transições, uma linha de auditoria por proposta,
// com nota sintética do sistema. Chamada pela revisão de documentos dentro da
// mesma transação que recusa o extrato.
func AplicarCascataRecusaExtrato(repos Repos, cotaID, politica, motivo, ator string) (int, error) {
	var alvo string
	switch politica {
	case CascataRecusar:
		alvo = entity.PropostaRecusada
	case CascataReanalisar:
		alvo = entity.PropostaEmAnalise
	default:
		return 0, domain.ErrInvalidInput
	}

	pendentes, err := repos.Propostas.ListByCotaEStatus(cotaID, entity.PropostaPreAprovada)
	if err != nil {
		return 0, err
	}

	nota := "extrato da cota recusado"
	if motivo != "" {
		nota += ": " + motivo
	}
	for _, p := range pendentes {
		motivoTransicao := ""
		if alvo == entity.PropostaRecusada {
			motivoTransicao = nota
		}
		if err := aplicarTransicao(repos, p, alvo, motivoTransicao, ator, "[sistema] "+nota); err != nil {
			return 0, err
		}
	}
	return len(pendentes), nil
}

// CascataRecusaExtrato aplica a cascata em transação própria (invocação
// administrativa direta, fora do fluxo de revisão de documento).
func (w *Workflow) CascataRecusaExtrato(ctx context.Context, cotaID, politica, motivo string, ator authz.Ator) (int, error) {
	if err := w.auth.Pode(ator, authz.CapTransicionarProposta); err != nil {
		return 0, err
	}
	var afetadas int
	err := w.tx.Run(ctx, func(repos Repos) error {
		n, err := AplicarCascataRecusaExtrato(repos, cotaID, politica, motivo, ator.UserID)
		if err != nil {
			return err
		}
		afetadas = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return afetadas, nil
}
