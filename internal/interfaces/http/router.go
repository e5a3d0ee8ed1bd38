package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-leads-api/internal/application/activities"
	"github.com/jhoicas/crm-leads-api/internal/application/leads"
	"github.com/jhoicas/crm-leads-api/internal/application/proposal"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ListLeads  *leads.ListLeadsUseCase
	SaveLead   *leads.SaveLeadUseCase
	ListItems  *leads.ListItemsUseCase
	Reconciler *leads.Reconciler
	Activities *activities.UseCase
	Proposal   *proposal.UseCase

	// Nome do cookie de sessão emitido pelo front-end.
	SessionCookie string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	session := SessionMiddleware(deps.SessionCookie)

	// Leads (protegido: a listagem e o salvamento dependem do usuário da sessão)
	leadHandler := NewLeadHandler(deps.ListLeads, deps.SaveLead)
	api.Get("/leads", session, leadHandler.List)
	api.Post("/leads/salvar", session, leadHandler.Save)

	// Produtos do lead (aberto; o front identifica o lead pelo CODLEAD)
	itemHandler := NewLineItemHandler(deps.ListItems, deps.Reconciler)
	produtos := api.Group("/leads/produtos")
	produtos.Get("/", itemHandler.List)
	produtos.Post("/adicionar", itemHandler.Add)
	produtos.Post("/atualizar", itemHandler.Update)
	produtos.Post("/remover", itemHandler.Remove)

	// Atividades e eventos da agenda
	activityHandler := NewActivityHandler(deps.Activities)
	api.Get("/leads/atividades", activityHandler.List)
	api.Post("/leads/atividades/criar", session, activityHandler.Create)
	api.Get("/leads/eventos", session, activityHandler.Events)

	// Proposta em PDF (protegido). Registrada por último para não capturar
	// os caminhos fixos de /leads/* no segmento :codLead.
	proposalHandler := NewProposalHandler(deps.Proposal)
	api.Get("/leads/:codLead/proposta", session, proposalHandler.Download)
}
