// Package status implements the live bot status endpoint.
package status

import (
	"github.com/gofiber/fiber/v2"

	"github.com/botpanel/botpanel/internal/db/controller/settings"
	"github.com/botpanel/botpanel/internal/web/handler"
)

// Path is the path of the status endpoint.
const Path = "/status"

// Response is the live state of the bot.
type Response struct {
	Status       string `json:"status"`
	Username     string `json:"username"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	Uptime       int64  `json:"uptime"`
	Latency      int64  `json:"latency"`
	GuildCount   int    `json:"guildCount"`
	CommandCount int    `json:"commandCount"`
	Prefix       string `json:"prefix"`
}

// Service is the status handler service.
type Service struct {
	handler.Service
	deps *handler.Dependencies
}

// Handler is the status handler.
var Handler = Service{}

// Init initializes the status handler.
func (s *Service) Init(router fiber.Router, deps *handler.Dependencies) error {
	if router == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	router.Get(Path, deps.RequireUser, s.Get)

	return nil
}

// Get reports the bot state, 503 while the bot is not connected.
// Uptime is in seconds, latency in milliseconds.
func (s *Service) Get(c *fiber.Ctx) error {
	client := s.deps.Client

	if !client.Connected() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "offline",
			"error":  "bot is not connected",
		})
	}

	stored, err := settings.Get(s.deps.DB)
	if err != nil {
		return handler.InternalError(c, err)
	}

	return c.JSON(Response{
		Status:       "online",
		Username:     client.Username(),
		AvatarURL:    client.AvatarURL(),
		Uptime:       int64(client.Uptime().Seconds()),
		Latency:      client.Latency().Milliseconds(),
		GuildCount:   len(client.Guilds()),
		CommandCount: s.deps.Registry.Len(),
		Prefix:       stored.Prefix,
	})
}
