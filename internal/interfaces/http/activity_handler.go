package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-leads-api/internal/application/activities"
	"github.com/jhoicas/crm-leads-api/internal/application/dto"
)

// ActivityHandler atende atividades e a projeção de eventos de calendário.
type ActivityHandler struct {
	uc *activities.UseCase
}

// NewActivityHandler constrói o handler.
func NewActivityHandler(uc *activities.UseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Listar atividades de um lead
// @Tags         atividades
// @Produce      json
// @Param        codLead  query  string  false  "CODLEAD (vazio = todas)"
// @Param        ativo    query  string  false  "S (default) ou N"
// @Success      200  {array}  dto.ActivityResponse
// @Router       /api/leads/atividades [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	codLead := c.Query("codLead")
	ativo := c.Query("ativo", "S")
	out, err := h.uc.List(codLead, ativo == "S")
	if err != nil {
		return respondError(c, err)
	}
	noCache(c)
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar atividade (CODLEAD nulo cria tarefa avulsa)
// @Tags         atividades
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateActivityRequest  true  "Atividade"
// @Success      200   {object}  dto.CreateActivityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/leads/atividades/criar [post]
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "corpo inválido"})
	}
	if in.TIPO == "" || in.DESCRICAO == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "TIPO e DESCRICAO são obrigatórios"})
	}
	out, err := h.uc.Create(c.Context(), in, GetSessionUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Events godoc
// @Summary      Eventos de calendário derivados das atividades
// @Tags         atividades
// @Produce      json
// @Param        codLead  query  string  false  "CODLEAD (vazio = todas)"
// @Success      200  {array}   dto.EventResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/leads/eventos [get]
func (h *ActivityHandler) Events(c *fiber.Ctx) error {
	out, err := h.uc.ListEvents(c.Query("codLead"))
	if err != nil {
		return respondError(c, err)
	}
	noCache(c)
	return c.JSON(out)
}
