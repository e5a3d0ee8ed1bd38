package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-leads-api/internal/application/dto"
	"github.com/jhoicas/crm-leads-api/internal/domain"
)

// respondError mapeia erros de domínio para o contrato do front-end:
// validação 400, sessão 401 e o resto 500 com a mensagem repassada (inclui
// a mensagem do gateway em erros de upstream).
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error()})
}

// noCache desabilita cache nas listagens consumidas pelo front.
func noCache(c *fiber.Ctx) {
	c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
	c.Set("Pragma", "no-cache")
	c.Set("Expires", "0")
}
