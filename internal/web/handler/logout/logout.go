// Package logout implements the logout endpoint of the dashboard API.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/botpanel/botpanel/internal/web/handler"
	"github.com/botpanel/botpanel/internal/web/session"
)

// Path is the path of the logout endpoint.
const Path = "/auth/logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	deps *handler.Dependencies
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(router fiber.Router, deps *handler.Dependencies) error {
	if router == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	router.Post(Path, deps.RequireUser, s.Logout)

	return nil
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := s.deps.Sessions.Delete(c.Cookies(session.CookieName)); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	// Clear the session cookie
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   s.deps.Config.Webserver.CookieSecure && !s.deps.Config.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.SendStatus(fiber.StatusNoContent)
}
