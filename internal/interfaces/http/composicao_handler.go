package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contempla/cotas-api/internal/application/composicao"
	"github.com/contempla/cotas-api/internal/application/dto"
)

// ComposicaoHandler simulação de composição de crédito.
type ComposicaoHandler struct {
	uc *composicao.UseCase
}

// NewComposicaoHandler constrói o handler.
func NewComposicaoHandler(uc *composicao.UseCase) *ComposicaoHandler {
	return &ComposicaoHandler{uc: uc}
}

// Simular godoc
// @Summary      Simular composição de crédito
// @Tags         composicao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SimularComposicaoRequest  true  "IDs das cotas (mínimo 2, mesma administradora)"
// @Success      200   {object}  dto.ComposicaoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/composicoes/simular [post]
func (h *ComposicaoHandler) Simular(c *fiber.Ctx) error {
	var in dto.SimularComposicaoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if len(in.CotaIDs) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ao menos duas cotas são necessárias"})
	}
	out, err := h.uc.Simular(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
