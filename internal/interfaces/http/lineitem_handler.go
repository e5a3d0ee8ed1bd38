package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-leads-api/internal/application/dto"
	"github.com/jhoicas/crm-leads-api/internal/application/leads"
)

// LineItemHandler atende os produtos de um lead: listagem e as três
// mutações reconciliadas (adicionar, atualizar, remover).
type LineItemHandler struct {
	listUC     *leads.ListItemsUseCase
	reconciler *leads.Reconciler
}

// NewLineItemHandler constrói o handler.
func NewLineItemHandler(listUC *leads.ListItemsUseCase, reconciler *leads.Reconciler) *LineItemHandler {
	return &LineItemHandler{listUC: listUC, reconciler: reconciler}
}

// List godoc
// @Summary      Listar produtos ativos de um lead
// @Tags         produtos
// @Produce      json
// @Param        codLead  query  string  true  "CODLEAD"
// @Success      200  {array}   dto.LineItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/leads/produtos [get]
func (h *LineItemHandler) List(c *fiber.Ctx) error {
	codLead := c.Query("codLead")
	if codLead == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "CODLEAD é obrigatório"})
	}
	out, err := h.listUC.ListActive(c.Context(), codLead)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Adicionar produto ao lead e reconciliar o total
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddLineItemRequest  true  "Produto"
// @Success      200   {object}  dto.TotalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads/produtos/adicionar [post]
func (h *LineItemHandler) Add(c *fiber.Ctx) error {
	var in dto.AddLineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "corpo inválido"})
	}
	if in.CODLEAD == "" || in.CODPROD == "" || in.DESCRPROD == "" || in.QUANTIDADE.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "CODLEAD, CODPROD, DESCRPROD e QUANTIDADE são obrigatórios"})
	}
	total, err := h.reconciler.AddLineItem(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TotalResponse{
		Success:        true,
		NovoValorTotal: total,
		Message:        "Lead atualizado com valor total de R$ " + total.StringFixed(2),
	})
}

// Update godoc
// @Summary      Atualizar quantidade e valor de um produto do lead
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateLineItemRequest  true  "Item"
// @Success      200   {object}  dto.TotalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads/produtos/atualizar [post]
func (h *LineItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "corpo inválido"})
	}
	if in.CodItem == "" || in.Quantidade.IsZero() || in.VlrUnit.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "codItem, quantidade e vlrunit são obrigatórios"})
	}
	if in.CodLead == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "codLead é obrigatório"})
	}
	total, err := h.reconciler.UpdateLineItem(c.Context(), in.CodItem.String(), in.CodLead.String(), in.Quantidade, in.VlrUnit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TotalResponse{Success: true, NovoValorTotal: total})
}

// Remove godoc
// @Summary      Inativar um produto do lead e reconciliar o total
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RemoveLineItemRequest  true  "Item"
// @Success      200   {object}  dto.TotalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads/produtos/remover [post]
func (h *LineItemHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveLineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "corpo inválido"})
	}
	if in.CodItem == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "CODITEM é obrigatório"})
	}
	if in.CodLead == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "CODLEAD é obrigatório"})
	}
	total, err := h.reconciler.RemoveLineItem(c.Context(), in.CodItem.String(), in.CodLead.String())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TotalResponse{Success: true, NovoValorTotal: total})
}
