package composicao

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
	"github.com/contempla/cotas-api/internal/domain/repository"
)

type fakeCotaRepo struct {
	cotas map[string]*entity.Cota
}

func (f *fakeCotaRepo) Create(c *entity.Cota) error { f.cotas[c.ID] = c; return nil }
func (f *fakeCotaRepo) GetByID(id string) (*entity.Cota, error) {
	return f.cotas[id], nil
}
func (f *fakeCotaRepo) GetByIDForUpdate(id string) (*entity.Cota, error) {
	return f.cotas[id], nil
}
func (f *fakeCotaRepo) List(repository.CotaFiltro) ([]*entity.Cota, error) { return nil, nil }
func (f *fakeCotaRepo) Update(c *entity.Cota) error                       { f.cotas[c.ID] = c; return nil }
func (f *fakeCotaRepo) UpdateStatus(id, status string) error {
	f.cotas[id].Status = status
	return nil
}
func (f *fakeCotaRepo) UpdateTaxa(id string, taxa decimal.Decimal, parcela *decimal.Decimal) error {
	t := taxa
	f.cotas[id].TaxaMensal = &t
	return nil
}

func novaCota(id, admin, status string, credito, entrada, parcela, saldo float64) *entity.Cota {
	now := time.Now()
	return &entity.Cota{
		ID:             id,
		VendedorID:     "vendedor-1",
		Administradora: admin,
		ValorCredito:   decimal.NewFromFloat(credito),
		SaldoDevedor:   decimal.NewFromFloat(saldo),
		NumParcelas:    120,
		ValorParcela:   decimal.NewFromFloat(parcela),
		ValorEntrada:   decimal.NewFromFloat(entrada),
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestSimular_SomaCotasDaMesmaAdministradora(t *testing.T) {
	repo := &fakeCotaRepo{cotas: map[string]*entity.Cota{
		"c1": novaCota("c1", "Embracon", entity.CotaDisponivel, 100000, 30000, 900, 70000),
		"c2": novaCota("c2", " embracon ", entity.CotaDisponivel, 50000, 10000, 450, 40000),
	}}
	uc := NewUseCase(repo)

	out, err := uc.Simular(context.Background(), dto.SimularComposicaoRequest{CotaIDs: []string{"c1", "c2"}})
	require.NoError(t, err)

	assert.Len(t, out.Cotas, 2)
	assert.True(t, out.ValorCredito.Equal(decimal.NewFromInt(150000)))
	assert.True(t, out.ValorEntrada.Equal(decimal.NewFromInt(40000)))
	assert.True(t, out.ValorParcela.Equal(decimal.NewFromInt(1350)))
	assert.True(t, out.SaldoDevedor.Equal(decimal.NewFromInt(110000)))
	// 40000/150000 = 26.666...% arredondado para 26.67
	assert.True(t, out.PercentualEntrada.Equal(decimal.NewFromFloat(26.67)),
		"percentual = %s", out.PercentualEntrada)
}

func TestSimular_AdministradorasDiferentes(t *testing.T) {
	repo := &fakeCotaRepo{cotas: map[string]*entity.Cota{
		"c1": novaCota("c1", "Embracon", entity.CotaDisponivel, 100000, 30000, 900, 70000),
		"c2": novaCota("c2", "Porto", entity.CotaDisponivel, 50000, 10000, 450, 40000),
	}}
	uc := NewUseCase(repo)

	_, err := uc.Simular(context.Background(), dto.SimularComposicaoRequest{CotaIDs: []string{"c1", "c2"}})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSimular_CotaForaDeDisponivel(t *testing.T) {
	repo := &fakeCotaRepo{cotas: map[string]*entity.Cota{
		"c1": novaCota("c1", "Embracon", entity.CotaDisponivel, 100000, 30000, 900, 70000),
		"c2": novaCota("c2", "Embracon", entity.CotaReservada, 50000, 10000, 450, 40000),
	}}
	uc := NewUseCase(repo)

	_, err := uc.Simular(context.Background(), dto.SimularComposicaoRequest{CotaIDs: []string{"c1", "c2"}})
	assert.ErrorIs(t, err, domain.ErrCotaIndisponivel)
}

func TestSimular_CotaInexistente(t *testing.T) {
	repo := &fakeCotaRepo{cotas: map[string]*entity.Cota{
		"c1": novaCota("c1", "Embracon", entity.CotaDisponivel, 100000, 30000, 900, 70000),
	}}
	uc := NewUseCase(repo)

	_, err := uc.Simular(context.Background(), dto.SimularComposicaoRequest{CotaIDs: []string{"c1", "nao-existe"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSimular_EntradaInvalida(t *testing.T) {
	repo := &fakeCotaRepo{cotas: map[string]*entity.Cota{
		"c1": novaCota("c1", "Embracon", entity.CotaDisponivel, 100000, 30000, 900, 70000),
	}}
	uc := NewUseCase(repo)

	_, err := uc.Simular(context.Background(), dto.SimularComposicaoRequest{CotaIDs: []string{"c1"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "uma cota só não é composição")

	_, err = uc.Simular(context.Background(), dto.SimularComposicaoRequest{CotaIDs: []string{"c1", "c1"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "IDs duplicados")
}
