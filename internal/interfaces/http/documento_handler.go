package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/application/usecase"
)

// DocumentoHandler envio e revisão de documentos.
type DocumentoHandler struct {
	uc *usecase.DocumentoUseCase
}

// NewDocumentoHandler constrói o handler.
func NewDocumentoHandler(uc *usecase.DocumentoUseCase) *DocumentoHandler {
	return &DocumentoHandler{uc: uc}
}

// Upload godoc
// @Summary      Enviar ou reenviar documento
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UploadDocumentoRequest  true  "dono_id, tipo_dono, tipo, arquivo_url"
// @Success      201   {object}  dto.DocumentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/documentos [post]
func (h *DocumentoHandler) Upload(c *fiber.Ctx) error {
	var in dto.UploadDocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Upload(c.Context(), AtorFromCtx(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Revisar godoc
// @Summary      Revisar documento (admin)
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do documento"
// @Param        body  body  dto.RevisarDocumentoRequest  true  "aprovar, motivo (obrigatório na recusa), politica"
// @Success      200   {object}  dto.DocumentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/revisao [patch]
func (h *DocumentoHandler) Revisar(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	var in dto.RevisarDocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Revisar(c.Context(), AtorFromCtx(c), id, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// ListByDono godoc
// @Summary      Listar documentos de um dono
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        dono_id    query  string  true  "ID do dono (perfil ou cota)"
// @Param        tipo_dono  query  string  true  "cota | perfil_pf | perfil_pj"
// @Success      200  {object}  dto.DocumentoListResponse
// @Router       /api/documentos [get]
func (h *DocumentoHandler) ListByDono(c *fiber.Ctx) error {
	donoID := c.Query("dono_id")
	tipoDono := c.Query("tipo_dono")
	if donoID == "" || tipoDono == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dono_id e tipo_dono são obrigatórios"})
	}
	out, err := h.uc.ListByDono(c.Context(), AtorFromCtx(c), donoID, tipoDono)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// ListPendentes godoc
// @Summary      Fila de revisão de documentos (admin)
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.DocumentoListResponse
// @Router       /api/documentos/pendentes [get]
func (h *DocumentoHandler) ListPendentes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.ListPendentes(c.Context(), AtorFromCtx(c), limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
