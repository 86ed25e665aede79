package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/bot"
	"github.com/botpanel/botpanel/internal/config"
	"github.com/botpanel/botpanel/internal/platform"
	"github.com/botpanel/botpanel/internal/profile"
	"github.com/botpanel/botpanel/internal/web/session"
)

// Dependencies bundles what the API handlers work with.
type Dependencies struct {
	Config       *config.Config
	DB           *gorm.DB
	Sessions     *session.Store
	Client       platform.Client
	Registry     *bot.Registry
	Synchronizer *profile.Synchronizer
	Validate     *validator.Validate
	// RequireUser guards every route that needs a logged in user.
	RequireUser fiber.Handler
}

// Valid reports whether every dependency is set.
func (d *Dependencies) Valid() bool {
	return d != nil && d.Config != nil && d.DB != nil && d.Sessions != nil && d.Client != nil &&
		d.Registry != nil && d.Synchronizer != nil && d.Validate != nil && d.RequireUser != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(router fiber.Router, deps *Dependencies) error
}
