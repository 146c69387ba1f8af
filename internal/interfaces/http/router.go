package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contempla/cotas-api/internal/application/auth"
	"github.com/contempla/cotas-api/internal/application/composicao"
	"github.com/contempla/cotas-api/internal/application/proposta"
	"github.com/contempla/cotas-api/internal/application/termo"
	"github.com/contempla/cotas-api/internal/application/usecase"
	"github.com/contempla/cotas-api/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CotaUC       *usecase.CotaUseCase
	DocumentoUC  *usecase.DocumentoUseCase
	PerfilUC     *usecase.PerfilUseCase
	ComposicaoUC *composicao.UseCase
	TermoUC      *termo.UseCase
	PropostaWF   *proposta.Workflow
	JWTSecret    string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Vitrine de cotas (público; operações de escrita ficam no grupo protegido)
	cotaHandler := NewCotaHandler(deps.CotaUC)
	api.Get("/cotas", cotaHandler.List)
	api.Get("/cotas/:id", cotaHandler.GetByID)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cotas (escrita)
	protected.Post("/cotas", cotaHandler.Create)
	protected.Delete("/cotas/:id", cotaHandler.Remover)
	protected.Patch("/cotas/:id/status", RequireRole(entity.RoleAdmin), cotaHandler.UpdateStatus)

	// Propostas
	propostaHandler := NewPropostaHandler(deps.PropostaWF)
	protected.Post("/propostas", propostaHandler.Create)
	protected.Get("/propostas", propostaHandler.ListMinhas)
	protected.Get("/propostas/:id", propostaHandler.GetByID)
	protected.Get("/propostas/:id/historico", propostaHandler.Historico)
	protected.Patch("/propostas/:id/status", RequireRole(entity.RoleAdmin), propostaHandler.Transicionar)
	protected.Post("/cotas/:cotaId/cascata-extrato", RequireRole(entity.RoleAdmin), propostaHandler.CascataExtrato)

	// Termo de transferência
	termoHandler := NewTermoHandler(deps.TermoUC)
	protected.Get("/propostas/:id/termo", termoHandler.Gerar)

	// Documentos
	documentoHandler := NewDocumentoHandler(deps.DocumentoUC)
	protected.Post("/documentos", documentoHandler.Upload)
	protected.Get("/documentos", documentoHandler.ListByDono)
	protected.Get("/documentos/pendentes", documentoHandler.ListPendentes)
	protected.Patch("/documentos/:id/revisao", RequireRole(entity.RoleAdmin), documentoHandler.Revisar)

	// Perfis
	perfilHandler := NewPerfilHandler(deps.PerfilUC)
	protected.Get("/perfis/me", perfilHandler.GetMeu)
	protected.Get("/perfis/:tipo/:id", perfilHandler.Get)
	protected.Patch("/perfis/:tipo/:id/revisao", RequireRole(entity.RoleAdmin), perfilHandler.Revisar)

	// Composição de crédito
	composicaoHandler := NewComposicaoHandler(deps.ComposicaoUC)
	protected.Post("/composicoes/simular", composicaoHandler.Simular)
}
