package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-leads-api/internal/application/dto"
	"github.com/jhoicas/crm-leads-api/internal/application/leads"
)

// LeadHandler atende listagem e salvamento de leads.
type LeadHandler struct {
	listUC *leads.ListLeadsUseCase
	saveUC *leads.SaveLeadUseCase
}

// NewLeadHandler constrói o handler.
func NewLeadHandler(listUC *leads.ListLeadsUseCase, saveUC *leads.SaveLeadUseCase) *LeadHandler {
	return &LeadHandler{listUC: listUC, saveUC: saveUC}
}

// List godoc
// @Summary      Listar leads visíveis para o usuário da sessão
// @Tags         leads
// @Produce      json
// @Success      200  {array}   dto.LeadResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	user := GetSessionUser(c)
	out, err := h.listUC.List(user)
	if err != nil {
		return respondError(c, err)
	}
	noCache(c)
	return c.JSON(out)
}

// Save godoc
// @Summary      Criar ou atualizar um lead, anexando os PRODUTOS enviados
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveLeadRequest  true  "Dados do lead"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/leads/salvar [post]
func (h *LeadHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "corpo inválido"})
	}
	if in.NOME == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "NOME é obrigatório"})
	}
	out, err := h.saveUC.Save(c.Context(), in, GetSessionUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
