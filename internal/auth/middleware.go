package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/db/models"
	adapter "github.com/botpanel/botpanel/internal/logger/adapter/fiber"
	"github.com/botpanel/botpanel/internal/web/session"
)

// CurrentUserKey is the fiber.Locals key holding the authenticated *models.User.
const CurrentUserKey = "CurrentUser"

// RequireUser creates Fiber middleware that requires a valid session.
// The user is reloaded from the database so role changes apply immediately.
func RequireUser(store *session.Store, db *gorm.DB) fiber.Handler {
	provider := NewLocalProvider(db)

	return func(c *fiber.Ctx) error {
		sessionData, err := store.Read(c.Cookies(session.CookieName))
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				log.Error().Err(err).Msg("failed to read session")
			}

			return unauthorized(c)
		}

		user, err := provider.GetUserByID(sessionData.User.ID)
		if err != nil {
			if !errors.Is(err, ErrUserNotFound) {
				log.Error().Err(err).Uint64("user_id", sessionData.User.ID).Msg("failed to load session user")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
			}

			return unauthorized(c)
		}

		c.Locals(CurrentUserKey, user)
		c.Locals(adapter.UserLocalKey, user.Username)

		return c.Next()
	}
}

// RequireAdmin creates Fiber middleware that requires the admin role.
// It must be chained after RequireUser.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c)
		}

		if !user.IsAdmin() {
			log.Warn().Uint64("user_id", user.ID).Str("path", c.Path()).Msg("user lacks admin role")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		return c.Next()
	}
}

// CurrentUser returns the user resolved by RequireUser, nil if none.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(CurrentUserKey).(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}
