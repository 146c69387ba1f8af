package repository

import (
	"github.com/shopspring/decimal"

	"github.com/contempla/cotas-api/internal/domain/entity"
)

// CotaFiltro filtros e ordenação da listagem de cotas.
type CotaFiltro struct {
	Administradora string // comparação case-insensitive, espaços aparados
	Status         string
	CreditoMin     *decimal.Decimal
	CreditoMax     *decimal.Decimal
	OrdenarPor     string // valor_credito | valor_entrada | valor_parcela | created_at
	Desc           bool
	Limit          int
	Offset         int
}

// CotaRepository define o porto de persistência para Cota.
type CotaRepository interface {
	Create(cota *entity.Cota) error
	GetByID(id string) (*entity.Cota, error)
	GetByIDForUpdate(id string) (*entity.Cota, error)
	List(filtro CotaFiltro) ([]*entity.Cota, error)
	Update(cota *entity.Cota) error
	UpdateStatus(id, status string) error
	UpdateTaxa(id string, taxa decimal.Decimal, parcela *decimal.Decimal) error
}
