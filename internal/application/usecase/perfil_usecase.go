package usecase

import (
	"context"

	"github.com/contempla/cotas-api/internal/application/authz"
	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
	"github.com/contempla/cotas-api/internal/domain/repository"
)

// PerfilUseCase consulta e revisão de perfis PF/PJ. A aprovação de perfil é
// uma das precondições do portão PRE_APROVADA→APROVADA das propostas.
type PerfilUseCase struct {
	pfRepo repository.PerfilPFRepository
	pjRepo repository.PerfilPJRepository
	auth   authz.Authorizer
}

// NewPerfilUseCase constrói o caso de uso.
func NewPerfilUseCase(pfRepo repository.PerfilPFRepository, pjRepo repository.PerfilPJRepository, auth authz.Authorizer) *PerfilUseCase {
	return &PerfilUseCase{pfRepo: pfRepo, pjRepo: pjRepo, auth: auth}
}

// Get obtém um perfil por tipo e ID. Dono ou admin.
func (uc *PerfilUseCase) Get(ctx context.Context, ator authz.Ator, tipo, id string) (*dto.PerfilResponse, error) {
	out, err := uc.buscar(tipo, id)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, domain.ErrNotFound
	}
	if out.UserID != ator.UserID {
		if err := uc.auth.Pode(ator, authz.CapRevisarPerfil); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetMeu obtém o perfil do próprio usuário autenticado.
func (uc *PerfilUseCase) GetMeu(ctx context.Context, ator authz.Ator) (*dto.PerfilResponse, error) {
	return uc.buscar(ator.TipoPerfil, ator.PerfilID)
}

// Revisar aplica a decisão do admin sobre um perfil. Recusa exige motivo.
func (uc *PerfilUseCase) Revisar(ctx context.Context, ator authz.Ator, tipo, id string, in dto.RevisarPerfilRequest) (*dto.PerfilResponse, error) {
	if err := uc.auth.Pode(ator, authz.CapRevisarPerfil); err != nil {
		return nil, err
	}
	if !in.Aprovar && in.Motivo == "" {
		return nil, domain.ErrMotivoObrigatorio
	}
	status := entity.PerfilAprovado
	if !in.Aprovar {
		status = entity.PerfilRecusado
	}

	switch tipo {
	case entity.CompradorPF:
		p, err := uc.pfRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		if err := uc.pfRepo.UpdateStatus(id, status); err != nil {
			return nil, err
		}
		p.Status = status
		return toPerfilPFResponse(p), nil
	case entity.CompradorPJ:
		p, err := uc.pjRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		if err := uc.pjRepo.UpdateStatus(id, status); err != nil {
			return nil, err
		}
		p.Status = status
		return toPerfilPJResponse(p), nil
	default:
		return nil, domain.ErrInvalidInput
	}
}

func (uc *PerfilUseCase) buscar(tipo, id string) (*dto.PerfilResponse, error) {
	switch tipo {
	case entity.CompradorPF:
		p, err := uc.pfRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		return toPerfilPFResponse(p), nil
	case entity.CompradorPJ:
		p, err := uc.pjRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		return toPerfilPJResponse(p), nil
	default:
		return nil, domain.ErrInvalidInput
	}
}

func toPerfilPFResponse(p *entity.PerfilPF) *dto.PerfilResponse {
	return &dto.PerfilResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Tipo:      entity.CompradorPF,
		Nome:      p.Nome,
		CPF:       p.CPF,
		Telefone:  p.Telefone,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPerfilPJResponse(p *entity.PerfilPJ) *dto.PerfilResponse {
	return &dto.PerfilResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Tipo:        entity.CompradorPJ,
		RazaoSocial: p.RazaoSocial,
		CNPJ:        p.CNPJ,
		Telefone:    p.Telefone,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
