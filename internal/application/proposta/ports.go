package proposta

import (
	"context"

	"github.com/contempla/cotas-api/internal/domain/repository"
)

// Repos agrupa os repositórios que o fluxo de propostas usa dentro de uma
// transação.
type Repos struct {
	Propostas  repository.PropostaRepository
	Cotas      repository.CotaRepository
	Documentos repository.DocumentoRepository
	PerfisPF   repository.PerfilPFRepository
	PerfisPJ   repository.PerfilPJRepository
	Historico  repository.PropostaHistoricoRepository
}

// TxRunner executa fn com repos atados a uma transação: mudança de status,
// efeitos na cota e linha de auditoria commitam juntos ou nada é gravado.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
