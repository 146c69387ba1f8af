// Package pdf implementa a geração do Termo de Transferência de Cota
// Contemplada em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título do termo │ Nº da proposta + data             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTES: cedente (vendedor) e cessionário (comprador)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: condições financeiras da cota                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLÁUSULAS + campos de assinatura                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/contempla/cotas-api/internal/application/termo"
)

var (
	colorPrimary = &props.Color{Red: 15, Green: 75, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoTermoGenerator implementa termo.Gerador usando Maroto v2.
type MarotoTermoGenerator struct{}

// NewMarotoTermoGenerator constrói o gerador.
func NewMarotoTermoGenerator() *MarotoTermoGenerator { return &MarotoTermoGenerator{} }

// GerarTermoPDF gera o PDF do termo e devolve seus bytes.
func (g *MarotoTermoGenerator) GerarTermoPDF(_ context.Context, dados *termo.Dados) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Termo de Transferência de Cota Contemplada", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(dados))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partesRows(dados)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(condicoesRows(dados)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(clausulasRows()...)
	m.AddRows(assinaturasRow(dados))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar termo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (esq) e nº da proposta + data (dir).
func headerRow(dados *termo.Dados) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("TERMO DE TRANSFERÊNCIA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cota de Consórcio Contemplada", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Proposta "+dados.PropostaID, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2,
			}),
			text.New("Situação: "+dados.Status, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Emitido em "+dados.GeradoEm.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// partesRows: cedente e cessionário.
func partesRows(dados *termo.Dados) []core.Row {
	parte := func(titulo, nome, doc string) core.Row {
		return row.New(12).Add(col.New(12).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s", nome, doc), props.Text{
				Size: 9, Top: 6,
			}),
		))
	}
	return []core.Row{
		parte("CEDENTE (vendedor)", dados.VendedorNome, dados.VendedorDocumento),
		parte("CESSIONÁRIO (comprador)", dados.CompradorNome, dados.CompradorDoc),
	}
}

// condicoesRows: tabela de condições financeiras da cota.
func condicoesRows(dados *termo.Dados) []core.Row {
	linha := func(label, valor string) core.Row {
		return row.New(6).Add(
			col.New(6).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
			})),
			col.New(6).Add(text.New(valor, props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		)
	}
	taxa := "não informada"
	if dados.TaxaMensal != nil {
		taxa = dados.TaxaMensal.StringFixed(4) + "% a.m."
	}
	return []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("CONDIÇÕES DA COTA", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
		linha("Administradora", dados.Administradora),
		linha("Valor do crédito", "R$ "+dados.ValorCredito.StringFixed(2)),
		linha("Valor da entrada", "R$ "+dados.ValorEntrada.StringFixed(2)),
		linha("Saldo devedor", "R$ "+dados.SaldoDevedor.StringFixed(2)),
		linha("Parcelas restantes", fmt.Sprintf("%d x R$ %s", dados.NumParcelas, dados.ValorParcela.StringFixed(2))),
		linha("Taxa mensal implícita", taxa),
	}
}

// clausulasRows: texto fixo do termo.
func clausulasRows() []core.Row {
	clausulas := []string{
		"1. O CEDENTE declara ser titular da cota contemplada descrita acima e " +
			"transfere ao CESSIONÁRIO todos os direitos e obrigações dela decorrentes, " +
			"condicionado à anuência da administradora do grupo.",
		"2. O CESSIONÁRIO declara conhecer o regulamento do grupo de consórcio e " +
			"assume o pagamento das parcelas vincendas a partir da data da transferência.",
		"3. A efetivação da transferência junto à administradora é de responsabilidade " +
			"das partes; este termo registra as condições pactuadas na plataforma.",
	}
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("CLÁUSULAS", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
	}
	for _, c := range clausulas {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New(c, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	return rows
}

// assinaturasRow: campos de assinatura das partes.
func assinaturasRow(dados *termo.Dados) core.Row {
	campo := func(nome string) core.Col {
		return col.New(6).Add(
			text.New("_________________________________", props.Text{
				Size: 9, Align: align.Center, Top: 14,
			}),
			text.New(nome, props.Text{
				Size: 8, Align: align.Center, Top: 20, Color: colorGray,
			}),
		)
	}
	return row.New(28).Add(
		campo(dados.VendedorNome),
		campo(dados.CompradorNome),
	)
}
