package dto

import "github.com/shopspring/decimal"

// SimularComposicaoRequest entrada da simulação de composição de crédito:
// várias cotas disponíveis da mesma administradora somadas em um crédito só.
type SimularComposicaoRequest struct {
	CotaIDs []string `json:"cota_ids" validate:"required,min=2,dive,uuid"`
}

// ComposicaoResponse resultado agregado da simulação.
type ComposicaoResponse struct {
	Administradora    string          `json:"administradora"`
	Cotas             []CotaResponse  `json:"cotas"`
	ValorCredito      decimal.Decimal `json:"valor_credito"`
	ValorEntrada      decimal.Decimal `json:"valor_entrada"`
	ValorParcela      decimal.Decimal `json:"valor_parcela"`
	SaldoDevedor      decimal.Decimal `json:"saldo_devedor"`
	PercentualEntrada decimal.Decimal `json:"percentual_entrada"`
}
