package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-leads-api/internal/application/proposal"
)

// ProposalHandler atende o download da proposta comercial em PDF.
type ProposalHandler struct {
	uc *proposal.UseCase
}

// NewProposalHandler constrói o handler.
func NewProposalHandler(uc *proposal.UseCase) *ProposalHandler {
	return &ProposalHandler{uc: uc}
}

// Download godoc
// @Summary      Gerar a proposta comercial do lead em PDF
// @Tags         leads
// @Produce      application/pdf
// @Param        codLead  path  string  true  "Código do lead"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{codLead}/proposta [get]
func (h *ProposalHandler) Download(c *fiber.Ctx) error {
	codLead := c.Params("codLead")
	doc, err := h.uc.Generate(c.Context(), codLead)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="proposta-lead-%s.pdf"`, codLead))
	return c.Send(doc)
}
