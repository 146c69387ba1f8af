package proposta

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/contempla/cotas-api/internal/application/authz"
	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
)

// Workflow aplica o ciclo de vida de propostas: validação de arestas, portões
// de pré-requisito, efeitos em cascata na cota e auditoria — tudo dentro de
// uma transação do TxRunner.
type Workflow struct {
	tx   TxRunner
	auth authz.Authorizer
}

// NewWorkflow constrói o fluxo com o runner transacional e o autorizador.
func NewWorkflow(tx TxRunner, auth authz.Authorizer) *Workflow {
	return &Workflow{tx: tx, auth: auth}
}

// CriarInput entrada da criação de proposta.
type CriarInput struct {
	CotaID string
	Ator   authz.Ator
}

// Criar registra o interesse de um comprador por uma cota disponível.
// Status inicial EM_ANALISE, com linha de auditoria "" -> EM_ANALISE.
func (w *Workflow) Criar(ctx context.Context, in CriarInput) (*dto.PropostaResponse, error) {
	if in.CotaID == "" || in.Ator.PerfilID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Ator.TipoPerfil != entity.CompradorPF && in.Ator.TipoPerfil != entity.CompradorPJ {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.PropostaResponse
	err := w.tx.Run(ctx, func(repos Repos) error {
		cota, err := repos.Cotas.GetByIDForUpdate(in.CotaID)
		if err != nil {
			return err
		}
		if cota == nil {
			return domain.ErrNotFound
		}
		if cota.Status != entity.CotaDisponivel {
			return domain.ErrCotaIndisponivel
		}

		now := time.Now()
		p := &entity.Proposta{
			ID:            uuid.New().String(),
			CotaID:        in.CotaID,
			TipoComprador: in.Ator.TipoPerfil,
			CompradorID:   in.Ator.PerfilID,
			Status:        entity.PropostaEmAnalise,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := repos.Propostas.Create(p); err != nil {
			return err
		}
		if err := repos.Historico.Append(&entity.PropostaHistorico{
			ID:          uuid.New().String(),
			PropostaID:  p.ID,
			StatusNovo:  entity.PropostaEmAnalise,
			AlteradoPor: in.Ator.UserID,
			AlteradoEm:  now,
		}); err != nil {
			return err
		}
		out = toPropostaResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TransicionarInput entrada de um pedido de transição de status.
type TransicionarInput struct {
	PropostaID string
	NovoStatus string
	Motivo     string
	Ator       authz.Ator
}

// Transicionar valida e aplica uma transição de status.
//
// Regras:
//   - aresta ausente no grafo -> domain.TransitionError;
//   - alvo RECUSADA sem motivo -> domain.ErrMotivoObrigatorio;
//   - PRE_APROVADA -> APROVADA exige extrato da cota APROVADO e perfil do
//     comprador APROVADO -> domain.PreconditionError nomeando a checagem;
//   - APROVADA reserva a cota; CONCLUIDA marca a cota como vendida;
//   - RECUSADA devolve a cota para DISPONIVEL se nenhuma outra proposta da
//     cota seguir ativa.
//
// A proposta é relida com lock dentro da transação, então dois pedidos
// concorrentes nunca violam o grafo: o segundo revalida contra o status já
// commitado.
func (w *Workflow) Transicionar(ctx context.Context, in TransicionarInput) (*dto.PropostaResponse, error) {
	if err := w.auth.Pode(in.Ator, authz.CapTransicionarProposta); err != nil {
		return nil, err
	}
	if !StatusValido(in.NovoStatus) {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.PropostaResponse
	err := w.tx.Run(ctx, func(repos Repos) error {
		p, err := repos.Propostas.GetByIDForUpdate(in.PropostaID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := aplicarTransicao(repos, p, in.NovoStatus, in.Motivo, in.Ator.UserID, in.Motivo); err != nil {
			return err
		}
		out = toPropostaResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// aplicarTransicao valida a aresta e os portões e aplica status, efeitos na
// cota e a linha de auditoria sobre os repos da transação corrente. Usado
// pelo Transicionar e pela cascata de recusa de extrato. Atualiza p in-place.
func aplicarTransicao(repos Repos, p *entity.Proposta, alvo, motivo, ator, notas string) error {
	if !TransicaoPermitida(p.Status, alvo) {
		return &domain.TransitionError{De: p.Status, Para: alvo}
	}
	if alvo == entity.PropostaRecusada && motivo == "" {
		return domain.ErrMotivoObrigatorio
	}
	if p.Status == entity.PropostaPreAprovada && alvo == entity.PropostaAprovada {
		if err := validarPortaoAprovacao(repos, p); err != nil {
			return err
		}
	}

	// Motivo só persiste na recusa; qualquer outra transição limpa o anterior.
	motivoPersistido := ""
	if alvo == entity.PropostaRecusada {
		motivoPersistido = motivo
	}
	statusAntigo := p.Status
	if err := repos.Propostas.UpdateStatus(p.ID, alvo, motivoPersistido); err != nil {
		return err
	}
	if err := repos.Historico.Append(&entity.PropostaHistorico{
		ID:           uuid.New().String(),
		PropostaID:   p.ID,
		StatusAntigo: statusAntigo,
		StatusNovo:   alvo,
		AlteradoPor:  ator,
		Notas:        notas,
		AlteradoEm:   time.Now(),
	}); err != nil {
		return err
	}

	switch alvo {
	case entity.PropostaAprovada:
		if err := repos.Cotas.UpdateStatus(p.CotaID, entity.CotaReservada); err != nil {
			return err
		}
	case entity.PropostaConcluida:
		if err := repos.Cotas.UpdateStatus(p.CotaID, entity.CotaVendida); err != nil {
			return err
		}
	case entity.PropostaRecusada:
		if err := liberarCotaSeUltima(repos, p); err != nil {
			return err
		}
	}

	p.Status = alvo
	p.MotivoRecusa = motivoPersistido
	p.UpdatedAt = time.Now()
	return nil
}

// validarPortaoAprovacao checa os dois pré-requisitos da aprovação final.
func validarPortaoAprovacao(repos Repos, p *entity.Proposta) error {
	doc, err := repos.Documentos.GetByDonoETipo(p.CotaID, entity.DonoCota, entity.DocTipoExtratoCota)
	if err != nil {
		return err
	}
	if doc == nil {
		return &domain.PreconditionError{Verificacao: "extrato da cota aprovado"}
	}
	if doc.Status != entity.DocAprovado {
		return &domain.PreconditionError{Verificacao: "extrato da cota aprovado", StatusAtual: doc.Status}
	}

	var statusPerfil string
	switch p.TipoComprador {
	case entity.CompradorPF:
		perfil, err := repos.PerfisPF.GetByID(p.CompradorID)
		if err != nil {
			return err
		}
		if perfil == nil {
			return &domain.PreconditionError{Verificacao: "perfil do comprador aprovado"}
		}
		statusPerfil = perfil.Status
	case entity.CompradorPJ:
		perfil, err := repos.PerfisPJ.GetByID(p.CompradorID)
		if err != nil {
			return err
		}
		if perfil == nil {
			return &domain.PreconditionError{Verificacao: "perfil do comprador aprovado"}
		}
		statusPerfil = perfil.Status
	default:
		return domain.ErrInvalidInput
	}
	if statusPerfil != entity.PerfilAprovado {
		return &domain.PreconditionError{Verificacao: "perfil do comprador aprovado", StatusAtual: statusPerfil}
	}
	return nil
}

// liberarCotaSeUltima devolve a cota para DISPONIVEL quando a proposta
// recusada era a última ativa; se outra proposta segue progredindo, a cota
// fica como está.
func liberarCotaSeUltima(repos Repos, recusada *entity.Proposta) error {
	todas, err := repos.Propostas.ListByCota(recusada.CotaID)
	if err != nil {
		return err
	}
	for _, outra := range todas {
		if outra.ID != recusada.ID && outra.Ativa() {
			return nil
		}
	}
	return repos.Cotas.UpdateStatus(recusada.CotaID, entity.CotaDisponivel)
}

// GetByID obtém uma proposta.
func (w *Workflow) GetByID(ctx context.Context, id string) (*dto.PropostaResponse, error) {
	var out *dto.PropostaResponse
	err := w.tx.Run(ctx, func(repos Repos) error {
		p, err := repos.Propostas.GetByID(id)
		if err != nil {
			return err
		}
		if p != nil {
			out = toPropostaResponse(p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Historico devolve a trilha de auditoria de uma proposta.
func (w *Workflow) Historico(ctx context.Context, propostaID string) ([]dto.HistoricoResponse, error) {
	var out []dto.HistoricoResponse
	err := w.tx.Run(ctx, func(repos Repos) error {
		list, err := repos.Historico.ListByProposta(propostaID)
		if err != nil {
			return err
		}
		out = make([]dto.HistoricoResponse, 0, len(list))
		for _, h := range list {
			out = append(out, dto.HistoricoResponse{
				ID:           h.ID,
				PropostaID:   h.PropostaID,
				StatusAntigo: h.StatusAntigo,
				StatusNovo:   h.StatusNovo,
				AlteradoPor:  h.AlteradoPor,
				Notas:        h.Notas,
				AlteradoEm:   h.AlteradoEm,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByComprador lista as propostas do comprador autenticado.
func (w *Workflow) ListByComprador(ctx context.Context, compradorID string, limit, offset int) (*dto.PropostaListResponse, error) {
	var out *dto.PropostaListResponse
	err := w.tx.Run(ctx, func(repos Repos) error {
		list, err := repos.Propostas.ListByComprador(compradorID, limit, offset)
		if err != nil {
			return err
		}
		items := make([]dto.PropostaResponse, 0, len(list))
		for _, p := range list {
			items = append(items, *toPropostaResponse(p))
		}
		out = &dto.PropostaListResponse{
			Items: items,
			Page:  dto.PageResponse{Limit: limit, Offset: offset},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toPropostaResponse(p *entity.Proposta) *dto.PropostaResponse {
	if p == nil {
		return nil
	}
	return &dto.PropostaResponse{
		ID:            p.ID,
		CotaID:        p.CotaID,
		TipoComprador: p.TipoComprador,
		CompradorID:   p.CompradorID,
		Status:        p.Status,
		MotivoRecusa:  p.MotivoRecusa,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
