package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/contempla/cotas-api/internal/application/authz"
	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/application/proposta"
	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
)

// DocumentoUseCase envio e revisão de documentos de compliance. Roda sobre o
// TxRunner do fluxo de propostas porque a recusa de um extrato de cota
// dispara a cascata sobre as propostas PRE_APROVADA na mesma transação.
type DocumentoUseCase struct {
	tx   proposta.TxRunner
	auth authz.Authorizer
}

// NewDocumentoUseCase constrói o caso de uso.
func NewDocumentoUseCase(tx proposta.TxRunner, auth authz.Authorizer) *DocumentoUseCase {
	return &DocumentoUseCase{tx: tx, auth: auth}
}

// Upload registra o envio (ou reenvio) de um documento. Primeiro envio cria a
// linha; reenvio atualiza o arquivo e volta o status para EM_ANALISE,
// limpando revisão anterior. Só o dono (ou um admin) envia documentos.
func (uc *DocumentoUseCase) Upload(ctx context.Context, ator authz.Ator, in dto.UploadDocumentoRequest) (*dto.DocumentoResponse, error) {
	if in.DonoID == "" || in.TipoDono == "" || in.Tipo == "" || in.ArquivoURL == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.DocumentoResponse
	err := uc.tx.Run(ctx, func(repos proposta.Repos) error {
		if err := uc.validarDono(repos, ator, in.DonoID, in.TipoDono); err != nil {
			return err
		}

		now := time.Now()
		doc, err := repos.Documentos.GetByDonoETipo(in.DonoID, in.TipoDono, in.Tipo)
		if err != nil {
			return err
		}
		if doc == nil {
			doc = &entity.Documento{
				ID:         uuid.New().String(),
				DonoID:     in.DonoID,
				TipoDono:   in.TipoDono,
				Tipo:       in.Tipo,
				ArquivoURL: in.ArquivoURL,
				Status:     entity.DocEmAnalise,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := repos.Documentos.Create(doc); err != nil {
				return err
			}
		} else {
			doc.ArquivoURL = in.ArquivoURL
			doc.Status = entity.DocEmAnalise
			doc.RevisorID = ""
			doc.RevisadoEm = nil
			doc.MotivoRecusa = ""
			doc.UpdatedAt = now
			if err := repos.Documentos.Update(doc); err != nil {
				return err
			}
		}
		out = toDocumentoResponse(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// validarDono garante que o ator é o dono do escopo do documento (perfil
// próprio ou cota cujo vendedor é o seu perfil). Admin passa direto.
func (uc *DocumentoUseCase) validarDono(repos proposta.Repos, ator authz.Ator, donoID, tipoDono string) error {
	if uc.auth.Pode(ator, authz.CapRevisarDocumento) == nil {
		return nil
	}
	switch tipoDono {
	case entity.DonoPerfilPF, entity.DonoPerfilPJ:
		if donoID != ator.PerfilID {
			return domain.ErrForbidden
		}
		return nil
	case entity.DonoCota:
		cota, err := repos.Cotas.GetByID(donoID)
		if err != nil {
			return err
		}
		if cota == nil {
			return domain.ErrNotFound
		}
		if cota.VendedorID != ator.PerfilID {
			return domain.ErrForbidden
		}
		return nil
	default:
		return domain.ErrInvalidInput
	}
}

// Revisar aplica a decisão do admin sobre um documento. Recusa exige motivo.
// Recusa de extrato de cota dispara a cascata sobre as propostas
// PRE_APROVADA da cota — na mesma transação, conforme a política pedida
// (default: recusar).
func (uc *DocumentoUseCase) Revisar(ctx context.Context, ator authz.Ator, docID string, in dto.RevisarDocumentoRequest) (*dto.DocumentoResponse, error) {
	if err := uc.auth.Pode(ator, authz.CapRevisarDocumento); err != nil {
		return nil, err
	}
	if !in.Aprovar && in.Motivo == "" {
		return nil, domain.ErrMotivoObrigatorio
	}

	var out *dto.DocumentoResponse
	err := uc.tx.Run(ctx, func(repos proposta.Repos) error {
		doc, err := repos.Documentos.GetByID(docID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Status != entity.DocEmAnalise {
			return domain.ErrConflict // só documentos em análise são revisáveis
		}

		now := time.Now()
		doc.RevisorID = ator.UserID
		doc.RevisadoEm = &now
		doc.UpdatedAt = now
		if in.Aprovar {
			doc.Status = entity.DocAprovado
			doc.MotivoRecusa = "" // aprovação limpa recusa anterior
		} else {
			doc.Status = entity.DocRecusado
			doc.MotivoRecusa = in.Motivo
		}
		if err := repos.Documentos.Update(doc); err != nil {
			return err
		}

		if !in.Aprovar && doc.Tipo == entity.DocTipoExtratoCota && doc.TipoDono == entity.DonoCota {
			politica := in.Politica
			if politica == "" {
				politica = proposta.CascataRecusar
			}
			if _, err := proposta.AplicarCascataRecusaExtrato(repos, doc.DonoID, politica, in.Motivo, ator.UserID); err != nil {
				return err
			}
		}
		out = toDocumentoResponse(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByDono lista os documentos de um dono (perfil ou cota).
func (uc *DocumentoUseCase) ListByDono(ctx context.Context, ator authz.Ator, donoID, tipoDono string) (*dto.DocumentoListResponse, error) {
	var out *dto.DocumentoListResponse
	err := uc.tx.Run(ctx, func(repos proposta.Repos) error {
		if err := uc.validarDono(repos, ator, donoID, tipoDono); err != nil {
			return err
		}
		list, err := repos.Documentos.ListByDono(donoID, tipoDono)
		if err != nil {
			return err
		}
		items := make([]dto.DocumentoResponse, 0, len(list))
		for _, d := range list {
			items = append(items, *toDocumentoResponse(d))
		}
		out = &dto.DocumentoListResponse{Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListPendentes fila de revisão do admin (documentos EM_ANALISE).
func (uc *DocumentoUseCase) ListPendentes(ctx context.Context, ator authz.Ator, limit, offset int) (*dto.DocumentoListResponse, error) {
	if err := uc.auth.Pode(ator, authz.CapRevisarDocumento); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	var out *dto.DocumentoListResponse
	err := uc.tx.Run(ctx, func(repos proposta.Repos) error {
		list, err := repos.Documentos.ListByStatus(entity.DocEmAnalise, limit, offset)
		if err != nil {
			return err
		}
		items := make([]dto.DocumentoResponse, 0, len(list))
		for _, d := range list {
			items = append(items, *toDocumentoResponse(d))
		}
		out = &dto.DocumentoListResponse{
			Items: items,
			Page:  dto.PageResponse{Limit: limit, Offset: offset},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toDocumentoResponse(d *entity.Documento) *dto.DocumentoResponse {
	if d == nil {
		return nil
	}
	return &dto.DocumentoResponse{
		ID:           d.ID,
		DonoID:       d.DonoID,
		TipoDono:     d.TipoDono,
		Tipo:         d.Tipo,
		ArquivoURL:   d.ArquivoURL,
		Status:       d.Status,
		RevisorID:    d.RevisorID,
		RevisadoEm:   d.RevisadoEm,
		MotivoRecusa: d.MotivoRecusa,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
