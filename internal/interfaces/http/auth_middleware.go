package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/contempla/cotas-api/internal/application/authz"
	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/pkg/jwt"
)

// Locals keys dos claims em Fiber.
const (
	LocalUserID     = "user_id"
	LocalPerfilID   = "perfil_id"
	LocalTipoPerfil = "tipo_perfil"
	LocalRole       = "role"
)

// AuthMiddleware valida o Bearer Token JWT e extrai os claims para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalPerfilID, claims.PerfilID)
		c.Locals(LocalTipoPerfil, claims.TipoPerfil)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole bloqueia a rota para quem não tiver uma das roles permitidas
// (após AuthMiddleware). Token sem claim de role devolve 401.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sem role"})
		}
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permissão insuficiente"})
	}
}

// GetUserID devolve o UserID do contexto (após o middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetPerfilID devolve o PerfilID do contexto.
func GetPerfilID(c *fiber.Ctx) string {
	return localString(c, LocalPerfilID)
}

// GetTipoPerfil devolve o TipoPerfil do contexto.
func GetTipoPerfil(c *fiber.Ctx) string {
	return localString(c, LocalTipoPerfil)
}

// GetRole devolve a Role do contexto.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// AtorFromCtx monta o ator de autorização a partir dos claims do contexto.
func AtorFromCtx(c *fiber.Ctx) authz.Ator {
	return authz.Ator{
		UserID:     GetUserID(c),
		PerfilID:   GetPerfilID(c),
		TipoPerfil: GetTipoPerfil(c),
		Role:       GetRole(c),
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
