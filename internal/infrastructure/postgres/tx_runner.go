package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contempla/cotas-api/internal/application/proposta"
)

// Garante que TxRunner implementa proposta.TxRunner.
var _ proposta.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL com os
// repositórios atados à tx. Usado pelo fluxo de propostas para que mudança de
// status, efeitos na cota e linha de auditoria commitem (ou revertam) juntos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com os repos atados à tx e faz Commit
// ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos proposta.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := proposta.Repos{
		Propostas:  NewPropostaRepository(tx),
		Cotas:      NewCotaRepository(tx),
		Documentos: NewDocumentoRepository(tx),
		PerfisPF:   NewPerfilPFRepository(tx),
		PerfisPJ:   NewPerfilPJRepository(tx),
		Historico:  NewPropostaHistoricoRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
