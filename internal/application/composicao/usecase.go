package composicao

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
	"github.com/contempla/cotas-api/internal/domain/repository"
)

// UseCase simulação de composição de crédito: soma de duas ou mais cotas
// disponíveis da mesma administradora em um crédito único. Só leitura, nada é
// reservado ou persistido.
type UseCase struct {
	cotas repository.CotaRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(cotas repository.CotaRepository) *UseCase {
	return &UseCase{cotas: cotas}
}

// Simular valida e agrega as cotas pedidas. Todas precisam existir, estar
// DISPONIVEL e pertencer à mesma administradora (comparação sem caixa e sem
// espaços nas pontas). IDs duplicados são erro de entrada.
func (uc *UseCase) Simular(ctx context.Context, in dto.SimularComposicaoRequest) (*dto.ComposicaoResponse, error) {
	if len(in.CotaIDs) < 2 {
		return nil, domain.ErrInvalidInput
	}
	vistos := make(map[string]bool, len(in.CotaIDs))
	for _, id := range in.CotaIDs {
		if vistos[id] {
			return nil, domain.ErrInvalidInput
		}
		vistos[id] = true
	}

	var (
		admin   string
		cotas   []dto.CotaResponse
		credito decimal.Decimal
		entrada decimal.Decimal
		parcela decimal.Decimal
		saldo   decimal.Decimal
	)
	for _, id := range in.CotaIDs {
		c, err := uc.cotas.GetByID(id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		if c.Status != entity.CotaDisponivel {
			return nil, domain.ErrCotaIndisponivel
		}
		norm := normalizarAdministradora(c.Administradora)
		if admin == "" {
			admin = norm
		} else if admin != norm {
			return nil, domain.ErrConflict
		}
		credito = credito.Add(c.ValorCredito)
		entrada = entrada.Add(c.ValorEntrada)
		parcela = parcela.Add(c.ValorParcela)
		saldo = saldo.Add(c.SaldoDevedor)
		cotas = append(cotas, toCotaResponse(c))
	}

	percentual := decimal.Zero
	if credito.IsPositive() {
		percentual = entrada.Div(credito).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return &dto.ComposicaoResponse{
		Administradora:    cotas[0].Administradora,
		Cotas:             cotas,
		ValorCredito:      credito,
		ValorEntrada:      entrada,
		ValorParcela:      parcela,
		SaldoDevedor:      saldo,
		PercentualEntrada: percentual,
	}, nil
}

func normalizarAdministradora(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toCotaResponse(c *entity.Cota) dto.CotaResponse {
	return dto.CotaResponse{
		ID:                c.ID,
		VendedorID:        c.VendedorID,
		Administradora:    c.Administradora,
		ValorCredito:      c.ValorCredito,
		SaldoDevedor:      c.SaldoDevedor,
		NumParcelas:       c.NumParcelas,
		ValorParcela:      c.ValorParcela,
		ValorEntrada:      c.ValorEntrada,
		PercentualEntrada: c.PercentualEntrada,
		TaxaMensal:        c.TaxaMensal,
		Status:            c.Status,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
