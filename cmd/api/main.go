package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/contempla/cotas-api/internal/application/auth"
	"github.com/contempla/cotas-api/internal/application/authz"
	"github.com/contempla/cotas-api/internal/application/composicao"
	"github.com/contempla/cotas-api/internal/application/proposta"
	"github.com/contempla/cotas-api/internal/application/termo"
	"github.com/contempla/cotas-api/internal/application/usecase"
	"github.com/contempla/cotas-api/internal/infrastructure/cache"
	infrapdf "github.com/contempla/cotas-api/internal/infrastructure/pdf"
	"github.com/contempla/cotas-api/internal/infrastructure/postgres"
	httpRouter "github.com/contempla/cotas-api/internal/interfaces/http"
	"github.com/contempla/cotas-api/pkg/config"
	"github.com/contempla/cotas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	cotaRepo := postgres.NewCotaRepository(pool)
	pfRepo := postgres.NewPerfilPFRepository(pool)
	pjRepo := postgres.NewPerfilPJRepository(pool)
	cotaHistRepo := postgres.NewCotaHistoricoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de listagem: REDIS_ADDR vazio desativa (a API funciona só com DB).
	var listagemCache usecase.ListagemCache
	if cfg.Redis.Addr != "" {
		r, err := cache.OpenRedis(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexão ao Redis")
		}
		defer r.Close()
		listagemCache = cache.NewCotaCache(r, time.Duration(cfg.Redis.TTL)*time.Second)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de listagem ativo")
	}

	authorizer := authz.NewPorRole()

	authUC := auth.NewAuthUseCase(userRepo, pfRepo, pjRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	cotaUC := usecase.NewCotaUseCase(cotaRepo, cotaHistRepo, authorizer, listagemCache)
	documentoUC := usecase.NewDocumentoUseCase(txRunner, authorizer)
	perfilUC := usecase.NewPerfilUseCase(pfRepo, pjRepo, authorizer)
	composicaoUC := composicao.NewUseCase(cotaRepo)
	propostaWF := proposta.NewWorkflow(txRunner, authorizer)
	termoUC := termo.NewUseCase(txRunner, infrapdf.NewMarotoTermoGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cotas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CotaUC:       cotaUC,
		DocumentoUC:  documentoUC,
		PerfilUC:     perfilUC,
		ComposicaoUC: composicaoUC,
		TermoUC:      termoUC,
		PropostaWF:   propostaWF,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
