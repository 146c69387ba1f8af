package proposta

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contempla/cotas-api/internal/application/authz"
	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
)

var (
	admin = authz.Ator{UserID: "admin-1", Role: entity.RoleAdmin}
	comum = authz.Ator{UserID: "user-1", PerfilID: "perfil-1", TipoPerfil: entity.CompradorPF, Role: entity.RoleUsuario}
)

var todosStatus = []string{
	entity.PropostaEmAnalise,
	entity.PropostaPreAprovada,
	entity.PropostaAprovada,
	entity.PropostaTransferenciaIniciada,
	entity.PropostaConcluida,
	entity.PropostaRecusada,
}

func novoWorkflow(store *fakeStore) *Workflow {
	return NewWorkflow(&fakeTxRunner{store: store}, authz.NewPorRole())
}

func seedCota(store *fakeStore, id, status string) {
	store.cotas[id] = &entity.Cota{
		ID:           id,
		VendedorID:   "vendedor-1",
		Status:       status,
		ValorCredito: decimal.NewFromInt(100000),
	}
}

func seedProposta(store *fakeStore, id, cotaID, status string) {
	store.propostas[id] = &entity.Proposta{
		ID:            id,
		CotaID:        cotaID,
		TipoComprador: entity.CompradorPF,
		CompradorID:   "perfil-1",
		Status:        status,
	}
}

// seedPortaoAprovado deixa os dois pré-requisitos da aprovação satisfeitos.
func seedPortaoAprovado(store *fakeStore, cotaID string) {
	store.documentos["doc-extrato"] = &entity.Documento{
		ID:       "doc-extrato",
		DonoID:   cotaID,
		TipoDono: entity.DonoCota,
		Tipo:     entity.DocTipoExtratoCota,
		Status:   entity.DocAprovado,
	}
	store.perfisPF["perfil-1"] = &entity.PerfilPF{
		ID:     "perfil-1",
		UserID: "user-1",
		Nome:   "Comprador Teste",
		Status: entity.PerfilAprovado,
	}
}

// ── criação ──────────────────────────────────────────────────────────────────

func TestCriar_CotaDisponivel(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaDisponivel)
	wf := novoWorkflow(store)

	out, err := wf.Criar(context.Background(), CriarInput{CotaID: "cota-1", Ator: comum})
	require.NoError(t, err)

	assert.Equal(t, entity.PropostaEmAnalise, out.Status)
	assert.Equal(t, "perfil-1", out.CompradorID)

	hist, _ := store.repos().Historico.ListByProposta(out.ID)
	require.Len(t, hist, 1, "criação gera uma linha de auditoria")
	assert.Empty(t, hist[0].StatusAntigo)
	assert.Equal(t, entity.PropostaEmAnalise, hist[0].StatusNovo)
}

func TestCriar_CotaForaDeDisponivel(t *testing.T) {
	for _, status := range []string{entity.CotaReservada, entity.CotaVendida, entity.CotaRemovida} {
		store := newFakeStore()
		seedCota(store, "cota-1", status)
		wf := novoWorkflow(store)

		_, err := wf.Criar(context.Background(), CriarInput{CotaID: "cota-1", Ator: comum})
		assert.ErrorIs(t, err, domain.ErrCotaIndisponivel, "status da cota: %s", status)
	}
}

func TestCriar_CotaInexistente(t *testing.T) {
	wf := novoWorkflow(newFakeStore())
	_, err := wf.Criar(context.Background(), CriarInput{CotaID: "nao-existe", Ator: comum})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── grafo de transições: todas as arestas nos dois sentidos ─────────────────

func TestTransicionar_ArestasPermitidas(t *testing.T) {
	for de, alvos := range transicoes {
		for _, para := range alvos {
			t.Run(de+"->"+para, func(t *testing.T) {
				store := newFakeStore()
				seedCota(store, "cota-1", entity.CotaReservada)
				seedProposta(store, "p1", "cota-1", de)
				seedPortaoAprovado(store, "cota-1")
				wf := novoWorkflow(store)

				out, err := wf.Transicionar(context.Background(), TransicionarInput{
					PropostaID: "p1",
					NovoStatus: para,
					Motivo:     "motivo de teste",
					Ator:       admin,
				})
				require.NoError(t, err)
				assert.Equal(t, para, out.Status)
			})
		}
	}
}

func TestTransicionar_ArestasAusentesRejeitadas(t *testing.T) {
	for _, de := range todosStatus {
		for _, para := range todosStatus {
			if de == para || TransicaoPermitida(de, para) {
				continue
			}
			t.Run(de+"->"+para, func(t *testing.T) {
				store := newFakeStore()
				seedCota(store, "cota-1", entity.CotaReservada)
				seedProposta(store, "p1", "cota-1", de)
				seedPortaoAprovado(store, "cota-1")
				wf := novoWorkflow(store)

				_, err := wf.Transicionar(context.Background(), TransicionarInput{
					PropostaID: "p1",
					NovoStatus: para,
					Motivo:     "motivo de teste",
					Ator:       admin,
				})
				var transErr *domain.TransitionError
				require.ErrorAs(t, err, &transErr)
				assert.Equal(t, de, transErr.De)
				assert.Equal(t, para, transErr.Para)
			})
		}
	}
}

func TestTransicionar_StatusDesconhecido(t *testing.T) {
	store := newFakeStore()
	seedProposta(store, "p1", "cota-1", entity.PropostaEmAnalise)
	wf := novoWorkflow(store)

	_, err := wf.Transicionar(context.Background(), TransicionarInput{
		PropostaID: "p1",
		NovoStatus: "EM_NEGOCIACAO",
		Ator:       admin,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransicionar_SomenteAdmin(t *testing.T) {
	store := newFakeStore()
	seedProposta(store, "p1", "cota-1", entity.PropostaEmAnalise)
	wf := novoWorkflow(store)

	_, err := wf.Transicionar(context.Background(), TransicionarInput{
		PropostaID: "p1",
		NovoStatus: entity.PropostaPreAprovada,
		Ator:       comum,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ── recusa exige motivo ──────────────────────────────────────────────────────

func TestTransicionar_RecusaSemMotivo(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaDisponivel)
	seedProposta(store, "p1", "cota-1", entity.PropostaEmAnalise)
	wf := novoWorkflow(store)

	_, err := wf.Transicionar(context.Background(), TransicionarInput{
		PropostaID: "p1",
		NovoStatus: entity.PropostaRecusada,
		Ator:       admin,
	})
	assert.ErrorIs(t, err, domain.ErrMotivoObrigatorio)
	assert.Equal(t, entity.PropostaEmAnalise, store.propostas["p1"].Status, "status não muda")
}

func TestTransicionar_MotivoSoPersisteNaRecusa(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaDisponivel)
	seedProposta(store, "p1", "cota-1", entity.PropostaEmAnalise)
	wf := novoWorkflow(store)

	out, err := wf.Transicionar(context.Background(), TransicionarInput{
		PropostaID: "p1",
		NovoStatus: entity.PropostaRecusada,
		Motivo:     "documentação incompleta",
		Ator:       admin,
	})
	require.NoError(t, err)
	assert.Equal(t, "documentação incompleta", out.MotivoRecusa)

	// Reanálise limpa o motivo anterior.
	out, err = wf.Transicionar(context.Background(), TransicionarInput{
		PropostaID: "p1",
		NovoStatus: entity.PropostaEmAnalise,
		Ator:       admin,
	})
	require.NoError(t, err)
	assert.Empty(t, out.MotivoRecusa)
}

// ── portão de aprovação ──────────────────────────────────────────────────────

func TestTransicionar_PortaoAprovacao(t *testing.T) {
	preparar := func() *fakeStore {
		store := newFakeStore()
		seedCota(store, "cota-1", entity.CotaDisponivel)
		seedProposta(store, "p1", "cota-1", entity.PropostaPreAprovada)
		return store
	}
	aprovar := func(store *fakeStore) error {
		wf := novoWorkflow(store)
		_, err := wf.Transicionar(context.Background(), TransicionarInput{
			PropostaID: "p1",
			NovoStatus: entity.PropostaAprovada,
			Ator:       admin,
		})
		return err
	}

	t.Run("sem extrato da cota", func(t *testing.T) {
		store := preparar()
		store.perfisPF["perfil-1"] = &entity.PerfilPF{ID: "perfil-1", Status: entity.PerfilAprovado}

		err := aprovar(store)
		var precond *domain.PreconditionError
		require.ErrorAs(t, err, &precond)
		assert.Equal(t, "extrato da cota aprovado", precond.Verificacao)
	})

	t.Run("extrato ainda em análise", func(t *testing.T) {
		store := preparar()
		seedPortaoAprovado(store, "cota-1")
		store.documentos["doc-extrato"].Status = entity.DocEmAnalise

		err := aprovar(store)
		var precond *domain.PreconditionError
		require.ErrorAs(t, err, &precond)
		assert.Equal(t, "extrato da cota aprovado", precond.Verificacao)
		assert.Equal(t, entity.DocEmAnalise, precond.StatusAtual)
	})

	t.Run("perfil do comprador não aprovado", func(t *testing.T) {
		store := preparar()
		seedPortaoAprovado(store, "cota-1")
		store.perfisPF["perfil-1"].Status = entity.PerfilEmAnalise

		err := aprovar(store)
		var precond *domain.PreconditionError
		require.ErrorAs(t, err, &precond)
		assert.Equal(t, "perfil do comprador aprovado", precond.Verificacao)
		assert.Equal(t, entity.PerfilEmAnalise, precond.StatusAtual)
	})

	t.Run("pré-requisitos satisfeitos reservam a cota", func(t *testing.T) {
		store := preparar()
		seedPortaoAprovado(store, "cota-1")

		require.NoError(t, aprovar(store))
		assert.Equal(t, entity.PropostaAprovada, store.propostas["p1"].Status)
		assert.Equal(t, entity.CotaReservada, store.cotas["cota-1"].Status)
	})
}

// ── efeitos na cota ──────────────────────────────────────────────────────────

func TestTransicionar_ConclusaoMarcaCotaVendida(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaReservada)
	seedProposta(store, "p1", "cota-1", entity.PropostaTransferenciaIniciada)
	wf := novoWorkflow(store)

	_, err := wf.Transicionar(context.Background(), TransicionarInput{
		PropostaID: "p1",
		NovoStatus: entity.PropostaConcluida,
		Ator:       admin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CotaVendida, store.cotas["cota-1"].Status)
}

func TestTransicionar_UltimaRecusaLiberaCota(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaReservada)
	seedProposta(store, "p1", "cota-1", entity.PropostaAprovada)
	seedProposta(store, "p2", "cota-1", entity.PropostaRecusada) // já encerrada
	wf := novoWorkflow(store)

	_, err := wf.Transicionar(context.Background(), TransicionarInput{
		PropostaID: "p1",
		NovoStatus: entity.PropostaRecusada,
		Motivo:     "desistência",
		Ator:       admin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CotaDisponivel, store.cotas["cota-1"].Status,
		"última proposta ativa recusada libera a cota")
}

func TestTransicionar_RecusaComOutraAtivaNaoLiberaCota(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaReservada)
	seedProposta(store, "p1", "cota-1", entity.PropostaAprovada)
	seedProposta(store, "p2", "cota-1", entity.PropostaEmAnalise) // segue ativa
	wf := novoWorkflow(store)

	_, err := wf.Transicionar(context.Background(), TransicionarInput{
		PropostaID: "p1",
		NovoStatus: entity.PropostaRecusada,
		Motivo:     "desistência",
		Ator:       admin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CotaReservada, store.cotas["cota-1"].Status,
		"cota permanece reservada enquanto outra proposta progride")
}

// ── auditoria ────────────────────────────────────────────────────────────────

func TestHistorico_UmaLinhaPorTransicao(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaDisponivel)
	seedPortaoAprovado(store, "cota-1")
	wf := novoWorkflow(store)

	out, err := wf.Criar(context.Background(), CriarInput{CotaID: "cota-1", Ator: comum})
	require.NoError(t, err)

	passos := []struct{ status, motivo string }{
		{entity.PropostaPreAprovada, ""},
		{entity.PropostaAprovada, ""},
		{entity.PropostaTransferenciaIniciada, ""},
		{entity.PropostaConcluida, ""},
	}
	for _, passo := range passos {
		_, err := wf.Transicionar(context.Background(), TransicionarInput{
			PropostaID: out.ID,
			NovoStatus: passo.status,
			Motivo:     passo.motivo,
			Ator:       admin,
		})
		require.NoError(t, err, "transição para %s", passo.status)
	}

	hist, err := wf.Historico(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, hist, 5, "criação + quatro transições")

	// Cadeia contínua: o status novo de cada linha é o antigo da seguinte.
	for i := 1; i < len(hist); i++ {
		assert.Equal(t, hist[i-1].StatusNovo, hist[i].StatusAntigo)
	}
	assert.Equal(t, entity.PropostaConcluida, hist[len(hist)-1].StatusNovo)
}

// ── cascata de recusa de extrato ─────────────────────────────────────────────

func TestCascataRecusaExtrato_Recusar(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaReservada)
	seedProposta(store, "p1", "cota-1", entity.PropostaPreAprovada)
	seedProposta(store, "p2", "cota-1", entity.PropostaPreAprovada)
	seedProposta(store, "p3", "cota-1", entity.PropostaEmAnalise) // não PRE_APROVADA, intacta
	wf := novoWorkflow(store)

	afetadas, err := wf.CascataRecusaExtrato(context.Background(), "cota-1", CascataRecusar, "saldo divergente", admin)
	require.NoError(t, err)
	assert.Equal(t, 2, afetadas)

	assert.Equal(t, entity.PropostaRecusada, store.propostas["p1"].Status)
	assert.Equal(t, entity.PropostaRecusada, store.propostas["p2"].Status)
	assert.Equal(t, entity.PropostaEmAnalise, store.propostas["p3"].Status)
	assert.Contains(t, store.propostas["p1"].MotivoRecusa, "saldo divergente")

	// Cada proposta afetada ganhou a sua linha de auditoria com nota do sistema.
	hist, _ := store.repos().Historico.ListByProposta("p1")
	require.Len(t, hist, 1)
	assert.Contains(t, hist[0].Notas, "[sistema]")
}

func TestCascataRecusaExtrato_Reanalisar(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaReservada)
	seedProposta(store, "p1", "cota-1", entity.PropostaPreAprovada)
	wf := novoWorkflow(store)

	afetadas, err := wf.CascataRecusaExtrato(context.Background(), "cota-1", CascataReanalisar, "extrato vencido", admin)
	require.NoError(t, err)
	assert.Equal(t, 1, afetadas)
	assert.Equal(t, entity.PropostaEmAnalise, store.propostas["p1"].Status)
	assert.Empty(t, store.propostas["p1"].MotivoRecusa, "reanálise não grava motivo de recusa")
}

func TestCascataRecusaExtrato_PoliticaInvalida(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaReservada)
	wf := novoWorkflow(store)

	_, err := wf.CascataRecusaExtrato(context.Background(), "cota-1", "ignorar", "x", admin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── cenário ponta a ponta ────────────────────────────────────────────────────

// Uma cota com duas propostas concorrentes: a primeira avança até a conclusão,
// a segunda é derrubada no caminho; a cota termina VENDIDA e nunca volta a
// DISPONIVEL depois da reserva.
func TestFluxoCompleto_DuasPropostasConcorrentes(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaDisponivel)
	seedPortaoAprovado(store, "cota-1")
	wf := novoWorkflow(store)

	p1, err := wf.Criar(context.Background(), CriarInput{CotaID: "cota-1", Ator: comum})
	require.NoError(t, err)
	segundo := authz.Ator{UserID: "user-2", PerfilID: "perfil-2", TipoPerfil: entity.CompradorPF, Role: entity.RoleUsuario}
	p2, err := wf.Criar(context.Background(), CriarInput{CotaID: "cota-1", Ator: segundo})
	require.NoError(t, err)

	avancar := func(id, status, motivo string) {
		t.Helper()
		_, err := wf.Transicionar(context.Background(), TransicionarInput{
			PropostaID: id, NovoStatus: status, Motivo: motivo, Ator: admin,
		})
		require.NoError(t, err)
	}

	avancar(p1.ID, entity.PropostaPreAprovada, "")
	avancar(p1.ID, entity.PropostaAprovada, "")
	assert.Equal(t, entity.CotaReservada, store.cotas["cota-1"].Status)

	// A segunda proposta é recusada; a cota segue reservada pela primeira.
	avancar(p2.ID, entity.PropostaRecusada, "cota já reservada para outra proposta")
	assert.Equal(t, entity.CotaReservada, store.cotas["cota-1"].Status)

	avancar(p1.ID, entity.PropostaTransferenciaIniciada, "")
	avancar(p1.ID, entity.PropostaConcluida, "")
	assert.Equal(t, entity.CotaVendida, store.cotas["cota-1"].Status)

	// CONCLUIDA é terminal: nenhuma aresta de saída.
	_, err = wf.Transicionar(context.Background(), TransicionarInput{
		PropostaID: p1.ID, NovoStatus: entity.PropostaEmAnalise, Ator: admin,
	})
	var transErr *domain.TransitionError
	require.True(t, errors.As(err, &transErr))
}

// ── datas da auditoria ───────────────────────────────────────────────────────

func TestHistorico_DatasPreenchidas(t *testing.T) {
	store := newFakeStore()
	seedCota(store, "cota-1", entity.CotaDisponivel)
	wf := novoWorkflow(store)

	antes := time.Now()
	out, err := wf.Criar(context.Background(), CriarInput{CotaID: "cota-1", Ator: comum})
	require.NoError(t, err)

	hist, _ := wf.Historico(context.Background(), out.ID)
	require.Len(t, hist, 1)
	assert.False(t, hist[0].AlteradoEm.Before(antes))
	assert.Equal(t, comum.UserID, hist[0].AlteradoPor)
}
