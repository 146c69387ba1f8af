package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/application/proposta"
)

// PropostaHandler ciclo de vida de propostas.
type PropostaHandler struct {
	wf *proposta.Workflow
}

// NewPropostaHandler constrói o handler.
func NewPropostaHandler(wf *proposta.Workflow) *PropostaHandler {
	return &PropostaHandler{wf: wf}
}

// Create godoc
// @Summary      Manifestar interesse em uma cota
// @Tags         propostas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePropostaRequest  true  "cota_id"
// @Success      201   {object}  dto.PropostaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/propostas [post]
func (h *PropostaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePropostaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.wf.Criar(c.Context(), proposta.CriarInput{
		CotaID: in.CotaID,
		Ator:   AtorFromCtx(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter proposta por ID
// @Tags         propostas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da proposta"
// @Success      200  {object}  dto.PropostaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/propostas/{id} [get]
func (h *PropostaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.wf.GetByID(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proposta não encontrada"})
	}
	return c.JSON(out)
}

// ListMinhas godoc
// @Summary      Listar propostas do comprador autenticado
// @Tags         propostas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.PropostaListResponse
// @Router       /api/propostas [get]
func (h *PropostaHandler) ListMinhas(c *fiber.Ctx) error {
	perfilID := GetPerfilID(c)
	if perfilID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "perfil_id requerido"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.wf.ListByComprador(c.Context(), perfilID, limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Transicionar godoc
// @Summary      Transicionar status da proposta (admin)
// @Tags         propostas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da proposta"
// @Param        body  body  dto.TransicionarPropostaRequest  true  "status alvo e motivo (obrigatório na recusa)"
// @Success      200   {object}  dto.PropostaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/propostas/{id}/status [patch]
func (h *PropostaHandler) Transicionar(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.TransicionarPropostaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status é obrigatório"})
	}
	out, err := h.wf.Transicionar(c.Context(), proposta.TransicionarInput{
		PropostaID: id,
		NovoStatus: in.Status,
		Motivo:     in.Motivo,
		Ator:       AtorFromCtx(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// CascataExtratoRequest corpo da invocação administrativa direta da cascata.
type CascataExtratoRequest struct {
	Politica string `json:"politica"` // recusar | reanalisar
	Motivo   string `json:"motivo"`
}

// CascataExtrato godoc
// @Summary      Aplicar cascata de recusa de extrato sobre uma cota (admin)
// @Tags         propostas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        cotaId  path  string  true  "ID da cota"
// @Param        body    body  CascataExtratoRequest  true  "politica e motivo"
// @Success      200     {object}  map[string]int
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/cotas/{cotaId}/cascata-extrato [post]
func (h *PropostaHandler) CascataExtrato(c *fiber.Ctx) error {
	cotaID := c.Params("cotaId")
	var in CascataExtratoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Politica == "" {
		in.Politica = proposta.CascataRecusar
	}
	afetadas, err := h.wf.CascataRecusaExtrato(c.Context(), cotaID, in.Politica, in.Motivo, AtorFromCtx(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"propostas_afetadas": afetadas})
}

// Historico godoc
// @Summary      Trilha de auditoria da proposta
// @Tags         propostas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da proposta"
// @Success      200  {array}  dto.HistoricoResponse
// @Router       /api/propostas/{id}/historico [get]
func (h *PropostaHandler) Historico(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.wf.Historico(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
