// Package settings implements the bot settings endpoints.
package settings

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/botpanel/botpanel/internal/auth"
	"github.com/botpanel/botpanel/internal/db/controller/settings"
	"github.com/botpanel/botpanel/internal/db/models"
	"github.com/botpanel/botpanel/internal/profile"
	"github.com/botpanel/botpanel/internal/web/handler"
)

// Path is the path of the settings endpoints.
const Path = "/settings"

// Response is the stored settings plus the platform warning, if any.
type Response struct {
	*models.BotSettings
	Warning string `json:"warning,omitempty"`
}

// Service is the settings handler service.
type Service struct {
	handler.Service
	deps *handler.Dependencies
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(router fiber.Router, deps *handler.Dependencies) error {
	if router == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	router.Route(Path, func(r fiber.Router) {
		r.Use(deps.RequireUser)
		r.Get(handler.RouterRootPath, s.Get)
		r.Patch(handler.RouterRootPath, auth.RequireAdmin(), s.Patch)
	})

	return nil
}

// Get returns the stored settings.
func (s *Service) Get(c *fiber.Ctx) error {
	stored, err := settings.Get(s.deps.DB)
	if err != nil {
		return handler.InternalError(c, err)
	}

	return c.JSON(Response{BotSettings: stored})
}

// Patch stores the provided fields and pushes them to the platform.
// The request always succeeds once stored, platform rejections end up in the warning.
func (s *Service) Patch(c *fiber.Ctx) error {
	var patch settings.Patch
	if handled, err := handler.Bind(c, s.deps.Validate, &patch); handled {
		return err
	}

	// the synchronizer owns the identity fields
	rest := patch
	rest.BotName = nil
	rest.BotAvatar = nil

	stored, err := settings.Update(s.deps.DB, rest)
	if err != nil {
		return handler.InternalError(c, err)
	}

	resp := Response{BotSettings: stored}

	if patch.Prefix != nil {
		if err = s.deps.Client.SetListening(*patch.Prefix + "help"); err != nil {
			log.Warn().Err(err).Msg("failed to refresh presence")
		}
	}

	if patch.BotName != nil || patch.BotAvatar != nil {
		result, err := s.deps.Synchronizer.Sync(c.UserContext(), profile.Request{
			BotName:   patch.BotName,
			BotAvatar: patch.BotAvatar,
		})
		if err != nil {
			return handler.InternalError(c, err)
		}

		resp.BotSettings = result.Settings
		resp.Warning = result.Warning()
	}

	log.Info().Str("by", auth.CurrentUser(c).Username).Msg("bot settings updated")

	return c.JSON(resp)
}
