// Package logs implements the command log and analytics endpoints.
package logs

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/botpanel/botpanel/internal/db/controller/commandlog"
	"github.com/botpanel/botpanel/internal/web/handler"
)

const (
	// Path is the path of the log viewer endpoint.
	Path = "/logs"
	// AnalyticsPath is the path of the analytics endpoint.
	AnalyticsPath = "/analytics"

	maxListLimit      = 1000
	maxAnalyticsLimit = 10000
)

// Service is the log handler service.
type Service struct {
	handler.Service
	deps *handler.Dependencies
	now  func() time.Time
}

// Handler is the log handler.
var Handler = Service{}

// Init initializes the log handler.
func (s *Service) Init(router fiber.Router, deps *handler.Dependencies) error {
	if router == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps
	s.now = time.Now

	router.Get(Path, deps.RequireUser, s.List)
	router.Get(AnalyticsPath, deps.RequireUser, s.Analytics)

	return nil
}

// List returns the newest log rows first.
func (s *Service) List(c *fiber.Ctx) error {
	limit := clamp(c.QueryInt("limit", commandlog.DefaultListLimit), commandlog.DefaultListLimit, maxListLimit)

	rows, err := commandlog.List(s.deps.DB, limit)
	if err != nil {
		return handler.InternalError(c, err)
	}

	return c.JSON(rows)
}

// Analytics aggregates the newest log rows.
func (s *Service) Analytics(c *fiber.Ctx) error {
	limit := clamp(c.QueryInt("limit", commandlog.DefaultAnalyticsLimit), commandlog.DefaultAnalyticsLimit, maxAnalyticsLimit)

	report, err := commandlog.Analytics(s.deps.DB, s.now(), limit)
	if err != nil {
		return handler.InternalError(c, err)
	}

	return c.JSON(report)
}

func clamp(v, def, maxV int) int {
	if v <= 0 {
		return def
	}

	return min(v, maxV)
}
