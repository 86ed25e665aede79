package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/auth"
	"github.com/botpanel/botpanel/internal/bot/commands"
	"github.com/botpanel/botpanel/internal/config"
	"github.com/botpanel/botpanel/internal/db/controller/command"
	"github.com/botpanel/botpanel/internal/db/controller/settings"
	"github.com/botpanel/botpanel/internal/db/models"
)

// seed initializes an empty database: the admin account, the settings
// singleton and the catalog entries of the built-in handlers.
func seed(cfg *config.Config, db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if count == 0 && cfg.Seed.AdminUsername != "" {
		if _, err := auth.NewLocalProvider(db).CreateUser(cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, models.RoleAdmin); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Warn().Str("username", cfg.Seed.AdminUsername).Msg("created initial admin user, change its password")
	}

	if err := settings.Init(db); err != nil {
		return err
	}

	created, err := command.Seed(db, commands.Catalog())
	if err != nil {
		return err
	}

	if created > 0 {
		log.Info().Int("created", created).Msg("command catalog seeded")
	}

	return nil
}
