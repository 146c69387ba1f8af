package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/domain"
)

// mapDomainError traduz erros de domínio para a resposta HTTP padrão.
// Handlers tratam antes os casos com mensagem específica e delegam o resto.
func mapDomainError(c *fiber.Ctx, err error) error {
	var transErr *domain.TransitionError
	if errors.As(err, &transErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: transErr.Error()})
	}
	var precondErr *domain.PreconditionError
	if errors.As(err, &precondErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "PRECONDITION_FAILED", Message: precondErr.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrMotivoObrigatorio):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MOTIVO_OBRIGATORIO", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrCotaIndisponivel):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COTA_INDISPONIVEL", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
