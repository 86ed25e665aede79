// Package login implements the session endpoints of the dashboard API.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/botpanel/botpanel/internal/auth"
	"github.com/botpanel/botpanel/internal/web/handler"
	"github.com/botpanel/botpanel/internal/web/session"
)

const (
	// Path is the path of the login endpoint.
	Path = "/auth/login"
	// MePath is the path returning the current user.
	MePath = "/auth/me"
)

// Request is the login body.
type Request struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=1024"`
	OTP      string `json:"otp"      validate:"omitempty,numeric,len=6"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	deps     *handler.Dependencies
	provider *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(router fiber.Router, deps *handler.Dependencies) error {
	if router == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps
	s.provider = auth.NewLocalProvider(deps.DB)

	router.Post(Path, s.Post)
	router.Get(MePath, deps.RequireUser, s.Me)

	return nil
}

// Post checks the credentials and sets the session cookie.
func (s *Service) Post(c *fiber.Ctx) error {
	var req Request
	if handled, err := handler.Bind(c, s.deps.Validate, &req); handled {
		return err
	}

	user, err := s.provider.Authenticate(req.Username, req.Password, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrOTPRequired):
			return handler.Error(c, fiber.StatusUnauthorized, "one-time password required")
		case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword), errors.Is(err, auth.ErrInvalidOTP):
			log.Info().Str("username", req.Username).Str("ip", c.IP()).Msg("failed login")
			return handler.Error(c, fiber.StatusUnauthorized, "invalid username or password")
		default:
			return handler.InternalError(c, err)
		}
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		return handler.InternalError(c, err)
	}

	if err = s.deps.Sessions.Write(sessionID, &session.Data{User: *user}); err != nil {
		return handler.InternalError(c, err)
	}

	cfg := s.deps.Config

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   cfg.Webserver.CookieSecure && !cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	log.Info().Str("username", user.Username).Msg("user logged in")

	return c.JSON(user)
}

// Me returns the logged in user.
func (s *Service) Me(c *fiber.Ctx) error {
	return c.JSON(auth.CurrentUser(c))
}
