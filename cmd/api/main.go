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

	"github.com/jhoicas/crm-leads-api/internal/application/activities"
	"github.com/jhoicas/crm-leads-api/internal/application/leads"
	"github.com/jhoicas/crm-leads-api/internal/application/proposal"
	infrapdf "github.com/jhoicas/crm-leads-api/internal/infrastructure/pdf"
	"github.com/jhoicas/crm-leads-api/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-leads-api/internal/infrastructure/sankhya"
	httpRouter "github.com/jhoicas/crm-leads-api/internal/interfaces/http"
	"github.com/jhoicas/crm-leads-api/pkg/config"
	"github.com/jhoicas/crm-leads-api/pkg/logger"
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

	// Leituras de leads e atividades saem do espelho relacional; toda escrita
	// e a leitura de itens passam pela API do Sankhya.
	leadRepo := postgres.NewLeadRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)

	erp := sankhya.NewClient(cfg.Sankhya.BaseURL, sankhya.Credentials{
		Token:    cfg.Sankhya.Token,
		AppKey:   cfg.Sankhya.AppKey,
		Username: cfg.Sankhya.Username,
		Password: cfg.Sankhya.Password,
	})
	itemGateway := sankhya.NewLineItemGateway(erp)
	leadGateway := sankhya.NewLeadGateway(erp)
	activityGateway := sankhya.NewActivityGateway(erp)
	priceGateway := sankhya.NewPriceGateway(erp)

	reconciler := leads.NewReconciler(itemGateway, leadGateway, priceGateway)
	saveLeadUC := leads.NewSaveLeadUseCase(leadGateway, reconciler, leadRepo)
	listLeadsUC := leads.NewListLeadsUseCase(leadRepo)
	listItemsUC := leads.NewListItemsUseCase(itemGateway)
	activitiesUC := activities.NewUseCase(activityRepo, activityGateway)

	// PDF: proposta comercial do lead
	quoteGenerator := infrapdf.NewMarotoQuoteGenerator()
	proposalUC := proposal.NewUseCase(leadRepo, itemGateway, quoteGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM Leads API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ListLeads:     listLeadsUC,
		SaveLead:      saveLeadUC,
		ListItems:     listItemsUC,
		Reconciler:    reconciler,
		Activities:    activitiesUC,
		Proposal:      proposalUC,
		SessionCookie: cfg.Session.CookieName,
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
