package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCotaRequest entrada para anunciar uma cota.
// TaxaMensal é opcional: ausente, a API resolve a taxa implícita do plano.
type CreateCotaRequest struct {
	Administradora string           `json:"administradora" validate:"required,min=1,max=200"`
	ValorCredito   decimal.Decimal  `json:"valor_credito" validate:"required"`
	SaldoDevedor   decimal.Decimal  `json:"saldo_devedor" validate:"required"`
	NumParcelas    int              `json:"num_parcelas" validate:"required,min=1"`
	ValorParcela   decimal.Decimal  `json:"valor_parcela" validate:"required"`
	ValorEntrada   decimal.Decimal  `json:"valor_entrada" validate:"required"`
	TaxaMensal     *decimal.Decimal `json:"taxa_mensal" validate:"omitempty"`
}

// ListCotasRequest filtros de listagem (query string).
type ListCotasRequest struct {
	Administradora string `query:"administradora"`
	Status         string `query:"status"`
	CreditoMin     string `query:"credito_min"`
	CreditoMax     string `query:"credito_max"`
	OrdenarPor     string `query:"ordenar_por"` // valor_credito | valor_entrada | valor_parcela | created_at
	Ordem          string `query:"ordem"`       // asc | desc
	PageRequest
}

// CotaResponse saída de uma cota.
type CotaResponse struct {
	ID                string           `json:"id"`
	VendedorID        string           `json:"vendedor_id"`
	Administradora    string           `json:"administradora"`
	ValorCredito      decimal.Decimal  `json:"valor_credito"`
	SaldoDevedor      decimal.Decimal  `json:"saldo_devedor"`
	NumParcelas       int              `json:"num_parcelas"`
	ValorParcela      decimal.Decimal  `json:"valor_parcela"`
	ValorEntrada      decimal.Decimal  `json:"valor_entrada"`
	PercentualEntrada decimal.Decimal  `json:"percentual_entrada"`
	TaxaMensal        *decimal.Decimal `json:"taxa_mensal,omitempty"`
	Status            string           `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// CotaListResponse listagem paginada de cotas.
type CotaListResponse struct {
	Items []CotaResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UpdateCotaStatusRequest edição direta de status pelo admin.
type UpdateCotaStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DISPONIVEL RESERVADA VENDIDA REMOVIDA"`
}
