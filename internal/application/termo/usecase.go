package termo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contempla/cotas-api/internal/application/authz"
	"github.com/contempla/cotas-api/internal/application/proposta"
	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
)

// Dados insumo do termo de transferência: a proposta aprovada, a cota e as
// partes já resolvidas em campos de exibição.
type Dados struct {
	PropostaID     string
	Status         string
	Administradora string
	ValorCredito   decimal.Decimal
	SaldoDevedor   decimal.Decimal
	NumParcelas    int
	ValorParcela   decimal.Decimal
	ValorEntrada   decimal.Decimal
	TaxaMensal     *decimal.Decimal

	VendedorNome      string
	VendedorDocumento string
	CompradorNome     string
	CompradorDoc      string

	GeradoEm time.Time
}

// Gerador porto de geração do PDF do termo (implementado por pdf.MarotoTermoGenerator).
type Gerador interface {
	GerarTermoPDF(ctx context.Context, dados *Dados) ([]byte, error)
}

// UseCase emite o termo de transferência de uma proposta que chegou (no
// mínimo) a APROVADA. Comprador, vendedor da cota ou admin.
type UseCase struct {
	tx  proposta.TxRunner
	pdf Gerador
}

// NewUseCase constrói o caso de uso.
func NewUseCase(tx proposta.TxRunner, pdf Gerador) *UseCase {
	return &UseCase{tx: tx, pdf: pdf}
}

// Gerar monta os dados e devolve os bytes do PDF. Proposta fora de
// APROVADA/TRANSFERENCIA_INICIADA/CONCLUIDA -> domain.ErrConflict.
func (uc *UseCase) Gerar(ctx context.Context, ator authz.Ator, propostaID string) ([]byte, error) {
	var dados *Dados
	err := uc.tx.Run(ctx, func(repos proposta.Repos) error {
		p, err := repos.Propostas.GetByID(propostaID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		switch p.Status {
		case entity.PropostaAprovada, entity.PropostaTransferenciaIniciada, entity.PropostaConcluida:
		default:
			return domain.ErrConflict
		}

		cota, err := repos.Cotas.GetByID(p.CotaID)
		if err != nil {
			return err
		}
		if cota == nil {
			return domain.ErrNotFound
		}

		if ator.Role != entity.RoleAdmin && ator.PerfilID != p.CompradorID && ator.PerfilID != cota.VendedorID {
			return domain.ErrForbidden
		}

		d := &Dados{
			PropostaID:     p.ID,
			Status:         p.Status,
			Administradora: cota.Administradora,
			ValorCredito:   cota.ValorCredito,
			SaldoDevedor:   cota.SaldoDevedor,
			NumParcelas:    cota.NumParcelas,
			ValorParcela:   cota.ValorParcela,
			ValorEntrada:   cota.ValorEntrada,
			TaxaMensal:     cota.TaxaMensal,
			GeradoEm:       time.Now(),
		}
		if err := resolverParte(repos, p.TipoComprador, p.CompradorID, &d.CompradorNome, &d.CompradorDoc); err != nil {
			return err
		}
		if err := resolverVendedor(repos, cota.VendedorID, &d.VendedorNome, &d.VendedorDocumento); err != nil {
			return err
		}
		dados = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.pdf.GerarTermoPDF(ctx, dados)
}

func resolverParte(repos proposta.Repos, tipo, perfilID string, nome, doc *string) error {
	switch tipo {
	case entity.CompradorPF:
		p, err := repos.PerfisPF.GetByID(perfilID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		*nome, *doc = p.Nome, "CPF "+p.CPF
	case entity.CompradorPJ:
		p, err := repos.PerfisPJ.GetByID(perfilID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		*nome, *doc = p.RazaoSocial, "CNPJ "+p.CNPJ
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// resolverVendedor tenta o perfil do vendedor nas duas tabelas; o ID da cota
// não carrega o tipo do perfil.
func resolverVendedor(repos proposta.Repos, perfilID string, nome, doc *string) error {
	if pf, err := repos.PerfisPF.GetByID(perfilID); err != nil {
		return err
	} else if pf != nil {
		*nome, *doc = pf.Nome, "CPF "+pf.CPF
		return nil
	}
	pj, err := repos.PerfisPJ.GetByID(perfilID)
	if err != nil {
		return err
	}
	if pj == nil {
		return domain.ErrNotFound
	}
	*nome, *doc = pj.RazaoSocial, "CNPJ "+pj.CNPJ
	return nil
}
