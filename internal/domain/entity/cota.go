package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status possíveis de uma Cota. REMOVIDA é terminal (soft delete); linhas
// nunca são apagadas fisicamente.
const (
	CotaDisponivel = "DISPONIVEL"
	CotaReservada  = "RESERVADA"
	CotaVendida    = "VENDIDA"
	CotaRemovida   = "REMOVIDA"
)

// Cota representa uma posição de crédito de consórcio contemplada à venda.
// Invariante mantida por quem escreve o registro:
// PercentualEntrada == ValorEntrada / ValorCredito * 100.
type Cota struct {
	ID                string
	VendedorID        string // perfil do vendedor (PF ou PJ)
	Administradora    string // texto livre; agrupa cotas para regras de composição
	ValorCredito      decimal.Decimal
	SaldoDevedor      decimal.Decimal
	NumParcelas       int
	ValorParcela      decimal.Decimal
	ValorEntrada      decimal.Decimal
	PercentualEntrada decimal.Decimal
	TaxaMensal        *decimal.Decimal // percentual a.m.; nil quando não resolvida
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
