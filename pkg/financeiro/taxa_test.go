package financeiro_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contempla/cotas-api/pkg/financeiro"
)

// Ida e volta: gera a parcela a partir de uma taxa conhecida e confere que o
// solver recupera a taxa original dentro de 1e-4 absoluto.
func TestTaxaMensal_IdaEVolta(t *testing.T) {
	casos := []struct {
		n    int
		taxa float64 // percentual a.m.
		pv   float64
	}{
		{12, 0.5, 10000},
		{24, 0.85, 50000},
		{36, 1.2, 120000},
		{60, 0.99, 80000},
		{120, 1.5, 300000},
		{180, 0.75, 450000},
		{6, 2.0, 5000},
		{48, 0.1, 25000},
	}
	for _, c := range casos {
		t.Run(fmt.Sprintf("n=%d_taxa=%.2f", c.n, c.taxa), func(t *testing.T) {
			parcela := financeiro.ValorParcela(c.taxa, c.n, c.pv)
			require.Greater(t, parcela, 0.0)

			taxa, ok := financeiro.TaxaMensalPadrao(c.n, -parcela, c.pv)
			require.True(t, ok, "taxa deve ser resolvida")
			assert.InDelta(t, c.taxa, taxa, 1e-4)
		})
	}
}

// Precondições inválidas devolvem ok=false sem tentar resolver.
func TestTaxaMensal_Precondicoes(t *testing.T) {
	casos := []struct {
		nome      string
		n         int
		pagamento float64
		pv        float64
	}{
		{"zero parcelas", 0, -100, 1000},
		{"parcelas negativas", -3, -100, 1000},
		{"pagamento positivo", 12, 100, 1000},
		{"pagamento zero", 12, 0, 1000},
		{"valor presente zero", 12, -100, 0},
		{"valor presente negativo", 12, -100, -50},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			taxa, ok := financeiro.TaxaMensalPadrao(c.n, c.pagamento, c.pv)
			assert.False(t, ok)
			assert.Zero(t, taxa)
		})
	}
}

// Plano de juro zero (parcela = pv/n): a raiz é r=0 e a iteração converge por
// cima, devolvendo uma taxa residual minúscula. É exatamente o caso que o
// saneamento em lote marca como implausível (taxa < 0,1%).
func TestTaxaMensal_JuroZero(t *testing.T) {
	pv := 12000.0
	parcela := pv / 12

	taxa, ok := financeiro.TaxaMensalPadrao(12, -parcela, pv)
	if ok {
		assert.Less(t, taxa, 1e-6, "juro zero deve resolver para taxa residual, não um valor real")
	}
}

// Entradas patológicas que empurram a iteração para fora de (-0.99, 1) devem
// devolver ok=false, nunca um número fora da faixa física.
func TestTaxaMensal_GuardaDivergencia(t *testing.T) {
	casos := []struct {
		nome      string
		n         int
		pagamento float64
		pv        float64
		chute     float64
	}{
		// Parcela absurdamente maior que o principal: taxa implícita > 100% a.m.
		{"parcela gigante", 2, -1e9, 100, financeiro.ChutePadrao},
		// Parcela única de 2,5x o principal: taxa implícita de 150% a.m.
		{"taxa acima do teto", 1, -250, 100, financeiro.ChutePadrao},
		// Chute na borda inferior empurra o primeiro passo para fora de (-0.99, 1).
		{"chute na borda inferior", 12, -1000, 10000, -0.9},
		// Parcela minúscula frente ao principal: plano impagável, sem raiz positiva.
		{"parcela insuficiente", 12, -1, 100000, financeiro.ChutePadrao},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			taxa, ok := financeiro.TaxaMensal(c.n, c.pagamento, c.pv, 0, 0, c.chute)
			assert.False(t, ok)
			assert.Zero(t, taxa)
		})
	}
}

// Anuidade antecipada (tipo=1): parcela no início do período implica taxa
// maior que a da anuidade ordinária com a mesma parcela.
func TestTaxaMensal_TipoAntecipado(t *testing.T) {
	parcela := financeiro.ValorParcela(1.0, 24, 50000)

	ordinaria, ok := financeiro.TaxaMensal(24, -parcela, 50000, 0, 0, financeiro.ChutePadrao)
	require.True(t, ok)
	antecipada, ok := financeiro.TaxaMensal(24, -parcela, 50000, 0, 1, financeiro.ChutePadrao)
	require.True(t, ok)

	assert.Greater(t, antecipada, ordinaria)
	assert.False(t, math.IsNaN(antecipada))
}

// ValorParcela com taxa zero divide o principal igualmente.
func TestValorParcela_TaxaZero(t *testing.T) {
	assert.InDelta(t, 1000.0, financeiro.ValorParcela(0, 12, 12000), 1e-9)
}
