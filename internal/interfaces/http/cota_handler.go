package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/application/usecase"
)

// CotaHandler peticiones HTTP de cotas: vitrine pública e operações do dono/admin.
type CotaHandler struct {
	uc *usecase.CotaUseCase
}

// NewCotaHandler constrói o handler.
func NewCotaHandler(uc *usecase.CotaUseCase) *CotaHandler {
	return &CotaHandler{uc: uc}
}

// Create godoc
// @Summary      Anunciar cota
// @Tags         cotas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCotaRequest  true  "Dados da cota"
// @Success      201   {object}  dto.CotaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cotas [post]
func (h *CotaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCotaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), AtorFromCtx(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cotas (vitrine)
// @Tags         cotas
// @Produce      json
// @Param        administradora  query  string  false  "Filtro por administradora"
// @Param        status          query  string  false  "Filtro por status"  default(DISPONIVEL)
// @Param        credito_min     query  string  false  "Crédito mínimo"
// @Param        credito_max     query  string  false  "Crédito máximo"
// @Param        ordenar_por     query  string  false  "valor_credito | valor_entrada | valor_parcela | created_at"
// @Param        ordem           query  string  false  "asc | desc"
// @Param        limit           query  int     false  "Limite"  default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.CotaListResponse
// @Router       /api/cotas [get]
func (h *CotaHandler) List(c *fiber.Ctx) error {
	var in dto.ListCotasRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter cota por ID
// @Tags         cotas
// @Produce      json
// @Param        id   path  string  true  "ID da cota"
// @Success      200  {object}  dto.CotaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotas/{id} [get]
func (h *CotaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return mapDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cota não encontrada"})
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Editar status da cota (admin)
// @Tags         cotas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da cota"
// @Param        body  body  dto.UpdateCotaStatusRequest  true  "Novo status"
// @Success      200   {object}  dto.CotaResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cotas/{id}/status [patch]
func (h *CotaHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateCotaStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), AtorFromCtx(c), id, in.Status)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Remover godoc
// @Summary      Remover cota (soft delete)
// @Tags         cotas
// @Security     Bearer
// @Param        id  path  string  true  "ID da cota"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotas/{id} [delete]
func (h *CotaHandler) Remover(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Remover(c.Context(), AtorFromCtx(c), id); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
