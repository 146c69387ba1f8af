// Package financeiro resolve a taxa mensal implícita de um plano de parcelas
// fixas (a inversa da função de pagamento de anuidade, equivalente à função
// TAXA de planilhas). Usado pela criação de cotas, pelo seed e pelo saneamento
// em lote de taxas.
package financeiro

import "math"

const (
	maxIteracoes = 100
	tolerancia   = 1e-7
	taxaMinima   = -0.99
	taxaMaxima   = 1.0
)

// ChutePadrao é o chute inicial default da iteração (1% a.m.), na faixa
// típica de taxas de administração de consórcio (0,5% a 1,2%).
const ChutePadrao = 0.01

// TaxaMensal resolve r na equação de anuidade
//
//	PV*(1+r)^n + PMT*(1+r*tipo)*(((1+r)^n - 1)/r) + FV = 0
//
// por Newton-Raphson com derivada analítica. pagamento deve ser negativo
// (saída de caixa) e valorPresente positivo; tipo 0 = parcela no fim do
// período, 1 = no início.
//
// Devolve a taxa em percentual (0.85 = 0,85% a.m.) e ok=true. Entradas sem
// solução são esperadas (dados de juro zero importados de planilha), então o
// retorno é comma-ok, nunca panic: ok=false quando as precondições falham,
// quando a derivada zera, quando a iteração sai de (-0.99, 1) ou quando o
// resultado convergido não é positivo e finito.
func TaxaMensal(nParcelas int, pagamento, valorPresente, valorFuturo float64, tipo int, chuteInicial float64) (float64, bool) {
	if nParcelas <= 0 || pagamento >= 0 || valorPresente <= 0 {
		return 0, false
	}

	r := chuteInicial
	for i := 0; i < maxIteracoes; i++ {
		f, df := anuidadeEDerivada(r, nParcelas, pagamento, valorPresente, valorFuturo, tipo)
		if df == 0 {
			return 0, false
		}
		proximo := r - f/df
		if proximo <= taxaMinima || proximo >= taxaMaxima {
			return 0, false
		}
		if math.Abs(proximo-r) < tolerancia {
			r = proximo
			if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
				return 0, false
			}
			return r * 100, true
		}
		r = proximo
	}
	return 0, false
}

// TaxaMensalPadrao resolve com FV=0, parcela no fim do período e chute de 1%.
func TaxaMensalPadrao(nParcelas int, pagamento, valorPresente float64) (float64, bool) {
	return TaxaMensal(nParcelas, pagamento, valorPresente, 0, 0, ChutePadrao)
}

// anuidadeEDerivada avalia a equação de anuidade e sua derivada em r.
// Para r muito próximo de zero usa o limite linear (((1+r)^n-1)/r -> n) para
// não dividir por zero logo no primeiro passo.
func anuidadeEDerivada(r float64, n int, pmt, pv, fv float64, tipo int) (f, df float64) {
	nf := float64(n)
	if math.Abs(r) < 1e-12 {
		f = pv + pmt*nf + fv
		df = pv*nf + pmt*(float64(tipo)*nf+nf*(nf-1)/2)
		return f, df
	}

	pow := math.Pow(1+r, nf)         // (1+r)^n
	powD := nf * math.Pow(1+r, nf-1) // d/dr (1+r)^n
	fator := (pow - 1) / r
	fatorD := (powD*r - (pow - 1)) / (r * r)
	ajuste := 1 + r*float64(tipo)

	f = pv*pow + pmt*ajuste*fator + fv
	df = pv*powD + pmt*(float64(tipo)*fator+ajuste*fatorD)
	return f, df
}

// ValorParcela calcula a parcela fixa de uma anuidade ordinária dado a taxa
// mensal em percentual, o número de parcelas e o valor presente. Inversa de
// TaxaMensal; usada pelo seed e pelos testes de ida e volta.
func ValorParcela(taxaPercentual float64, nParcelas int, valorPresente float64) float64 {
	if nParcelas <= 0 || valorPresente <= 0 {
		return 0
	}
	r := taxaPercentual / 100
	if r == 0 {
		return valorPresente / float64(nParcelas)
	}
	pow := math.Pow(1+r, float64(nParcelas))
	return valorPresente * r * pow / (pow - 1)
}
