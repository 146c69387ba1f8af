package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/application/termo"
)

// TermoHandler emissão do termo de transferência em PDF.
type TermoHandler struct {
	uc *termo.UseCase
}

// NewTermoHandler constrói o handler.
func NewTermoHandler(uc *termo.UseCase) *TermoHandler {
	return &TermoHandler{uc: uc}
}

// Gerar godoc
// @Summary      Gerar termo de transferência (PDF)
// @Tags         termos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID da proposta (APROVADA em diante)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/propostas/{id}/termo [get]
func (h *TermoHandler) Gerar(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	pdfBytes, err := h.uc.Gerar(c.Context(), AtorFromCtx(c), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="termo-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
