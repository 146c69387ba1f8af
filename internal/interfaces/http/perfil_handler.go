package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/application/usecase"
)

// PerfilHandler consulta e revisão de perfis PF/PJ.
type PerfilHandler struct {
	uc *usecase.PerfilUseCase
}

// NewPerfilHandler constrói o handler.
func NewPerfilHandler(uc *usecase.PerfilUseCase) *PerfilHandler {
	return &PerfilHandler{uc: uc}
}

// GetMeu godoc
// @Summary      Obter o perfil do usuário autenticado
// @Tags         perfis
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PerfilResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/perfis/me [get]
func (h *PerfilHandler) GetMeu(c *fiber.Ctx) error {
	out, err := h.uc.GetMeu(c.Context(), AtorFromCtx(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obter perfil por tipo e ID
// @Tags         perfis
// @Security     Bearer
// @Produce      json
// @Param        tipo  path  string  true  "PF | PJ"
// @Param        id    path  string  true  "ID do perfil"
// @Success      200   {object}  dto.PerfilResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/perfis/{tipo}/{id} [get]
func (h *PerfilHandler) Get(c *fiber.Ctx) error {
	tipo := c.Params("tipo")
	id := c.Params("id")
	out, err := h.uc.Get(c.Context(), AtorFromCtx(c), tipo, id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Revisar godoc
// @Summary      Revisar perfil (admin)
// @Tags         perfis
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        tipo  path  string  true  "PF | PJ"
// @Param        id    path  string  true  "ID do perfil"
// @Param        body  body  dto.RevisarPerfilRequest  true  "aprovar, motivo (obrigatório na recusa)"
// @Success      200   {object}  dto.PerfilResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/perfis/{tipo}/{id}/revisao [patch]
func (h *PerfilHandler) Revisar(c *fiber.Ctx) error {
	tipo := c.Params("tipo")
	id := c.Params("id")
	var in dto.RevisarPerfilRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Revisar(c.Context(), AtorFromCtx(c), tipo, id, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
