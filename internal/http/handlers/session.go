package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"eshopadmin/internal/services"
)

const sidCookie = "sid"

// ensureSID returns the browser session id, issuing a fresh one when absent
// or malformed.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if _, err := uuid.Parse(sid); err == nil {
		return sid
	}
	sid = uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return sid
}

func tabsFor(c *fiber.Ctx, s *services.Sessions) *services.Tabs {
	return s.Get(ensureSID(c))
}
