package http

import (
	"encoding/json"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-leads-api/internal/application/dto"
	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
)

// Local key do usuário da sessão no contexto Fiber.
const LocalSessionUser = "session_user"

// SessionMiddleware lê o cookie de sessão emitido pelo front-end (JSON com
// id, name, role e ID_EMPRESA) e carrega o usuário em c.Locals. Cookie
// ausente ou ilegível rejeita com 401.
func SessionMiddleware(cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(cookieName)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Não autorizado"})
		}
		// O front-end grava o JSON URL-encoded no cookie.
		if decoded, err := url.QueryUnescape(raw); err == nil {
			raw = decoded
		}
		var user entity.SessionUser
		if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Sessão inválida"})
		}
		c.Locals(LocalSessionUser, user)
		return c.Next()
	}
}

// GetSessionUser devolve o usuário da sessão (depois do SessionMiddleware).
func GetSessionUser(c *fiber.Ctx) entity.SessionUser {
	v := c.Locals(LocalSessionUser)
	if v == nil {
		return entity.SessionUser{}
	}
	u, _ := v.(entity.SessionUser)
	return u
}
