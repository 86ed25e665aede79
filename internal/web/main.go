// Package web serves the dashboard JSON API.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	adapter "github.com/botpanel/botpanel/internal/logger/adapter/fiber"
	"github.com/botpanel/botpanel/internal/web/handler"
	"github.com/botpanel/botpanel/internal/web/handler/commands"
	"github.com/botpanel/botpanel/internal/web/handler/login"
	"github.com/botpanel/botpanel/internal/web/handler/logout"
	"github.com/botpanel/botpanel/internal/web/handler/logs"
	"github.com/botpanel/botpanel/internal/web/handler/settings"
	"github.com/botpanel/botpanel/internal/web/handler/status"
)

const (
	// HealthPath answers 200 while serving and 503 during graceful shutdown.
	HealthPath = handler.APIPath + "/health"
	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	deps         *handler.Dependencies
	fastShutDown bool
	alive        atomic.Bool
	onShutdown   []func()
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// OnShutdown registers fn to run after the http server stopped.
func (s *Service) OnShutdown(fn func()) {
	s.onShutdown = append(s.onShutdown, fn)
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown flips the health check to 503, waits for load balancers to
// notice, then stops the http server and runs the shutdown hooks.
func (s *Service) Shutdown() {
	s.alive.Store(false)

	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.deps.Config.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.deps.Config.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	for _, fn := range s.onShutdown {
		fn()
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the health check answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given dependencies.
func New(deps *handler.Dependencies) *Service {
	if !deps.Valid() {
		panic(handler.ErrNilDepsFatalLogMsg)
	}

	cfg := deps.Config

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   errorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(adapter.New(adapter.Config{
		Config:        cfg.Log,
		CheckAliveURI: HealthPath,
	}))

	service := &Service{
		App:          app,
		deps:         deps,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Get(HealthPath, service.health)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group(handler.APIPath)

	for _, h := range []handler.Service{
		&login.Handler,
		&logout.Handler,
		&commands.Handler,
		&settings.Handler,
		&logs.Handler,
		&status.Handler,
	} {
		if err := h.Init(api, deps); err != nil {
			log.Fatal().Err(err).Msg("failed to init handler")
		}
	}

	return service
}

func (s *Service) health(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "shutting down"})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// errorHandler answers every unhandled error with a JSON body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	return c.Status(code).JSON(handler.ErrorResponse{Error: msg})
}
