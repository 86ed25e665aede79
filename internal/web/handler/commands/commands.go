// Package commands implements the command catalog endpoints.
package commands

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/botpanel/botpanel/internal/auth"
	"github.com/botpanel/botpanel/internal/db/controller/command"
	"github.com/botpanel/botpanel/internal/db/models"
	"github.com/botpanel/botpanel/internal/web/handler"
)

// Path is the path of the catalog endpoints.
const Path = "/commands"

// CreateRequest is the body of a new catalog entry.
type CreateRequest struct {
	Name        string                 `json:"name"        validate:"required,max=32,commandname"`
	Description string                 `json:"description" validate:"max=255"`
	Category    models.CommandCategory `json:"category"    validate:"omitempty,oneof=general moderation fun utility api core"`
	Usage       string                 `json:"usage"       validate:"max=255"`
	Response    string                 `json:"response"    validate:"max=2000"`
	Enabled     *bool                  `json:"enabled"`
}

// Service is the command catalog handler service.
type Service struct {
	handler.Service
	deps *handler.Dependencies
}

// Handler is the command catalog handler.
var Handler = Service{}

// Init initializes the command catalog handler.
func (s *Service) Init(router fiber.Router, deps *handler.Dependencies) error {
	if router == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	router.Route(Path, func(r fiber.Router) {
		r.Use(deps.RequireUser)
		r.Get(handler.RouterRootPath, s.List)
		r.Get("/:"+handler.IDParam, s.Get)
		r.Post(handler.RouterRootPath, auth.RequireAdmin(), s.Create)
		r.Patch("/:"+handler.IDParam, auth.RequireAdmin(), s.Update)
		r.Delete("/:"+handler.IDParam, auth.RequireAdmin(), s.Delete)
	})

	return nil
}

// List returns the whole catalog.
func (s *Service) List(c *fiber.Ctx) error {
	list, err := command.List(s.deps.DB)
	if err != nil {
		return handler.InternalError(c, err)
	}

	return c.JSON(list)
}

// Get returns one catalog entry.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := handler.ID(c)
	if !ok {
		return handler.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	cmd, err := command.Get(s.deps.DB, id)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(cmd)
}

// Create adds a catalog entry.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if handled, err := handler.Bind(c, s.deps.Validate, &req); handled {
		return err
	}

	cmd := &models.Command{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Usage:       req.Usage,
		Response:    req.Response,
		Enabled:     req.Enabled == nil || *req.Enabled,
	}

	if err := command.Create(s.deps.DB, cmd); err != nil {
		return s.fail(c, err)
	}

	log.Info().Str("command", cmd.Name).Str("by", auth.CurrentUser(c).Username).Msg("catalog entry created")

	return c.Status(fiber.StatusCreated).JSON(cmd)
}

// Update changes the provided fields of a catalog entry.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ID(c)
	if !ok {
		return handler.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	var patch command.Patch
	if handled, err := handler.Bind(c, s.deps.Validate, &patch); handled {
		return err
	}

	cmd, err := command.Update(s.deps.DB, id, patch)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(cmd)
}

// Delete removes a catalog entry.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ID(c)
	if !ok {
		return handler.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := command.Delete(s.deps.DB, id); err != nil {
		return s.fail(c, err)
	}

	log.Info().Uint("id", id).Str("by", auth.CurrentUser(c).Username).Msg("catalog entry deleted")

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Service) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, command.ErrCommandNotFound):
		return handler.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, command.ErrCommandExists):
		return handler.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, command.ErrCommandNameEmpty):
		return handler.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		return handler.InternalError(c, err)
	}
}
