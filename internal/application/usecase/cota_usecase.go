package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contempla/cotas-api/internal/application/authz"
	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
	"github.com/contempla/cotas-api/internal/domain/repository"
	"github.com/contempla/cotas-api/pkg/financeiro"
)

// ListagemCache é o contrato mínimo do cache de listagem (implementado por
// cache.CotaCache). Interface local para que o caso de uso funcione sem Redis.
type ListagemCache interface {
	Get(ctx context.Context, chave string, v any) (bool, error)
	Set(ctx context.Context, chave string, v any) error
	Invalidate(ctx context.Context) error
}

// CotaUseCase regras de negócio de cotas: anúncio, listagem com filtros,
// edição de status e remoção lógica.
type CotaUseCase struct {
	repo  repository.CotaRepository
	hist  repository.CotaHistoricoRepository
	auth  authz.Authorizer
	cache ListagemCache // nil = sem cache
}

// NewCotaUseCase constrói o caso de uso. cache pode ser nil.
func NewCotaUseCase(repo repository.CotaRepository, hist repository.CotaHistoricoRepository, auth authz.Authorizer, cache ListagemCache) *CotaUseCase {
	return &CotaUseCase{repo: repo, hist: hist, auth: auth, cache: cache}
}

// Create anuncia uma cota. Calcula o percentual de entrada e, se a taxa não
// vier informada, resolve a taxa mensal implícita do plano (saldo devedor vs
// parcela). Plano sem taxa resolvível fica com taxa nula — ocorrência normal
// em dados importados de planilha.
func (uc *CotaUseCase) Create(ctx context.Context, ator authz.Ator, in dto.CreateCotaRequest) (*dto.CotaResponse, error) {
	if in.Administradora == "" || in.NumParcelas <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.ValorCredito.IsPositive() || !in.SaldoDevedor.IsPositive() || !in.ValorParcela.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.ValorEntrada.IsNegative() || in.ValorEntrada.GreaterThan(in.ValorCredito) {
		return nil, domain.ErrInvalidInput
	}
	if ator.PerfilID == "" {
		return nil, domain.ErrForbidden
	}

	percentual := in.ValorEntrada.Div(in.ValorCredito).Mul(decimal.NewFromInt(100)).Round(2)

	taxa := in.TaxaMensal
	if taxa == nil {
		parcela, _ := in.ValorParcela.Float64()
		saldo, _ := in.SaldoDevedor.Float64()
		if t, ok := financeiro.TaxaMensalPadrao(in.NumParcelas, -parcela, saldo); ok {
			d := decimal.NewFromFloat(t).Round(4)
			taxa = &d
		}
	}

	now := time.Now()
	cota := &entity.Cota{
		ID:                uuid.New().String(),
		VendedorID:        ator.PerfilID,
		Administradora:    in.Administradora,
		ValorCredito:      in.ValorCredito,
		SaldoDevedor:      in.SaldoDevedor,
		NumParcelas:       in.NumParcelas,
		ValorParcela:      in.ValorParcela,
		ValorEntrada:      in.ValorEntrada,
		PercentualEntrada: percentual,
		TaxaMensal:        taxa,
		Status:            entity.CotaDisponivel,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(cota); err != nil {
		return nil, err
	}
	uc.invalidarCache(ctx)
	return toCotaResponse(cota), nil
}

// GetByID obtém uma cota por ID.
func (uc *CotaUseCase) GetByID(id string) (*dto.CotaResponse, error) {
	cota, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cota == nil {
		return nil, nil
	}
	return toCotaResponse(cota), nil
}

// List lista cotas com filtros e ordenação. Páginas da vitrine pública
// (status DISPONIVEL) passam pelo cache quando configurado.
func (uc *CotaUseCase) List(ctx context.Context, in dto.ListCotasRequest) (*dto.CotaListResponse, error) {
	in.DefaultPage()
	filtro := repository.CotaFiltro{
		Administradora: in.Administradora,
		Status:         in.Status,
		OrdenarPor:     in.OrdenarPor,
		Desc:           in.Ordem == "desc",
		Limit:          in.Limit,
		Offset:         in.Offset,
	}
	if in.CreditoMin != "" {
		d, err := decimal.NewFromString(in.CreditoMin)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filtro.CreditoMin = &d
	}
	if in.CreditoMax != "" {
		d, err := decimal.NewFromString(in.CreditoMax)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filtro.CreditoMax = &d
	}

	usarCache := uc.cache != nil && in.Status == entity.CotaDisponivel
	chave := chaveListagem(in)
	if usarCache {
		var cached dto.CotaListResponse
		if ok, err := uc.cache.Get(ctx, chave, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	list, err := uc.repo.List(filtro)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CotaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCotaResponse(c))
	}
	out := &dto.CotaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	if usarCache {
		_ = uc.cache.Set(ctx, chave, out)
	}
	return out, nil
}

// UpdateStatus edição direta de status pelo admin, com linha de auditoria.
func (uc *CotaUseCase) UpdateStatus(ctx context.Context, ator authz.Ator, id, status string) (*dto.CotaResponse, error) {
	if err := uc.auth.Pode(ator, authz.CapEditarCota); err != nil {
		return nil, err
	}
	switch status {
	case entity.CotaDisponivel, entity.CotaReservada, entity.CotaVendida, entity.CotaRemovida:
	default:
		return nil, domain.ErrInvalidInput
	}
	cota, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cota == nil {
		return nil, domain.ErrNotFound
	}
	if cota.Status == entity.CotaRemovida {
		return nil, domain.ErrConflict // REMOVIDA é terminal
	}
	if err := uc.repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	_ = uc.hist.Append(&entity.CotaHistorico{
		ID:          uuid.New().String(),
		CotaID:      id,
		Campo:       "status",
		ValorAntigo: cota.Status,
		ValorNovo:   status,
		AlteradoPor: ator.UserID,
		AlteradoEm:  time.Now(),
	})
	uc.invalidarCache(ctx)
	cota.Status = status
	return toCotaResponse(cota), nil
}

// Remover marca a cota como REMOVIDA (soft delete; linhas nunca são apagadas).
// Permitido ao vendedor dono ou a um admin.
func (uc *CotaUseCase) Remover(ctx context.Context, ator authz.Ator, id string) error {
	cota, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cota == nil {
		return domain.ErrNotFound
	}
	if cota.VendedorID != ator.PerfilID {
		if err := uc.auth.Pode(ator, authz.CapEditarCota); err != nil {
			return err
		}
	}
	if cota.Status == entity.CotaRemovida {
		return nil // idempotente
	}
	if err := uc.repo.UpdateStatus(id, entity.CotaRemovida); err != nil {
		return err
	}
	_ = uc.hist.Append(&entity.CotaHistorico{
		ID:          uuid.New().String(),
		CotaID:      id,
		Campo:       "status",
		ValorAntigo: cota.Status,
		ValorNovo:   entity.CotaRemovida,
		AlteradoPor: ator.UserID,
		AlteradoEm:  time.Now(),
	})
	uc.invalidarCache(ctx)
	return nil
}

func (uc *CotaUseCase) invalidarCache(ctx context.Context) {
	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx)
	}
}

func chaveListagem(in dto.ListCotasRequest) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%d|%d",
		in.Administradora, in.Status, in.CreditoMin, in.CreditoMax,
		in.OrdenarPor, in.Ordem, in.Limit, in.Offset)
}

func toCotaResponse(c *entity.Cota) *dto.CotaResponse {
	if c == nil {
		return nil
	}
	return &dto.CotaResponse{
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
