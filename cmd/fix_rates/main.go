// fix_rates varre as cotas e sanea taxas mensais implausíveis.
//
// Uma cota é suspeita quando a soma das parcelas mal cobre o saldo devedor
// (plano sem juro embutido, típico de importação de planilha) ou quando a
// taxa armazenada é menor que 0.1% a.m. Para essas, o comando sintetiza uma
// parcela plausível (saldo * fator de correção / n) e resolve a taxa de novo.
//
// Uso: go run ./cmd/fix_rates [--dry-run]
package main

import (
	"context"
	"flag"
	"math"

	"github.com/shopspring/decimal"

	"github.com/contempla/cotas-api/internal/domain/entity"
	"github.com/contempla/cotas-api/internal/domain/repository"
	"github.com/contempla/cotas-api/internal/infrastructure/postgres"
	"github.com/contempla/cotas-api/pkg/config"
	"github.com/contempla/cotas-api/pkg/financeiro"
	"github.com/contempla/cotas-api/pkg/logger"
)

const (
	taxaMinimaPlausivel = 0.1   // % a.m.
	folgaPagamentos     = 1.001 // soma das parcelas precisa exceder saldo*folga
	tamanhoPagina       = 200
)

func main() {
	dryRun := flag.Bool("dry-run", false, "só reporta, não persiste")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	repo := postgres.NewCotaRepository(pool)
	fator := cfg.Taxas.FatorCorrecao

	var examinadas, suspeitas, corrigidas, semSolucao, falhas int
	offset := 0
	for {
		page, err := repo.List(repository.CotaFiltro{Limit: tamanhoPagina, Offset: offset})
		if err != nil {
			log.Fatal().Err(err).Msg("listar cotas")
		}
		if len(page) == 0 {
			break
		}
		for _, cota := range page {
			examinadas++
			if !suspeita(cota) {
				continue
			}
			suspeitas++

			saldo, _ := cota.SaldoDevedor.Float64()
			parcelaAtual, _ := cota.ValorParcela.Float64()

			// Plano sem juro embutido: sintetiza parcela plausível antes de
			// resolver. Plano com pagamentos plausíveis e só taxa ausente ou
			// errada: resolve da parcela existente.
			parcelaNova := parcelaAtual
			var persistirParcela *decimal.Decimal
			if parcelaAtual*float64(cota.NumParcelas) <= saldo*folgaPagamentos {
				parcelaNova = math.Round(saldo*fator/float64(cota.NumParcelas)*100) / 100
				d := decimal.NewFromFloat(parcelaNova)
				persistirParcela = &d
			}

			taxa, ok := financeiro.TaxaMensalPadrao(cota.NumParcelas, -parcelaNova, saldo)
			if !ok {
				semSolucao++
				log.Warn().
					Str("cota_id", cota.ID).
					Float64("parcela_sintetica", parcelaNova).
					Msg("taxa não convergiu, cota mantida")
				continue
			}

			if cota.TaxaMensal != nil {
				atual, _ := cota.TaxaMensal.Float64()
				if math.Abs(taxa-atual) <= 1e-4 {
					continue // já consistente
				}
			}

			if *dryRun {
				corrigidas++
				log.Info().
					Str("cota_id", cota.ID).
					Float64("taxa_nova", taxa).
					Float64("parcela_nova", parcelaNova).
					Msg("correção (dry-run)")
				continue
			}

			taxaD := decimal.NewFromFloat(taxa).Round(4)
			if err := repo.UpdateTaxa(cota.ID, taxaD, persistirParcela); err != nil {
				falhas++
				log.Error().Err(err).Str("cota_id", cota.ID).Msg("persistir taxa corrigida")
				continue
			}
			corrigidas++
		}
		if len(page) < tamanhoPagina {
			break
		}
		offset += tamanhoPagina
	}

	log.Info().
		Int("examinadas", examinadas).
		Int("suspeitas", suspeitas).
		Int("corrigidas", corrigidas).
		Int("sem_solucao", semSolucao).
		Int("falhas", falhas).
		Bool("dry_run", *dryRun).
		Msg("varredura de taxas concluída")
}

// suspeita detecta planos sem juro embutido ou com taxa armazenada implausível.
func suspeita(c *entity.Cota) bool {
	if c.NumParcelas <= 0 {
		return false
	}
	saldo, _ := c.SaldoDevedor.Float64()
	parcela, _ := c.ValorParcela.Float64()
	if saldo <= 0 || parcela <= 0 {
		return false
	}
	totalPagamentos := parcela * float64(c.NumParcelas)
	if totalPagamentos <= saldo*folgaPagamentos {
		return true
	}
	if c.TaxaMensal != nil {
		taxa, _ := c.TaxaMensal.Float64()
		return taxa < taxaMinimaPlausivel
	}
	return true // sem taxa armazenada, resolver
}
