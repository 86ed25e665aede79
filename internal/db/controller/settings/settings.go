// Package settings is the store of the singleton bot settings row.
//
// The store is a plain merge-and-persist layer: it does not validate values,
// callers (the dashboard handlers) do. Concurrent writers are not coordinated,
// the last write wins.
package settings

import (
	"errors"

	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/db/controller"
	"github.com/botpanel/botpanel/internal/db/models"
)

// ErrSettingsNotFound is returned when the singleton row was never initialized.
var ErrSettingsNotFound = errors.New("bot settings not initialized")

// Patch holds the fields of a partial update. Nil fields are left untouched.
// An empty BotAvatar clears the avatar.
type Patch struct {
	Prefix                 *string `json:"prefix"                 validate:"omitnil,min=1,max=5"`
	BotName                *string `json:"botName"                validate:"omitnil,min=2,max=32"`
	BotAvatar              *string `json:"botAvatar"              validate:"omitempty,url,max=2048"`
	HelpCommandEnabled     *bool   `json:"helpCommandEnabled"`
	CommandNotFoundMessage *string `json:"commandNotFoundMessage" validate:"omitempty,max=2000"`
	LogErrors              *bool   `json:"logErrors"`
	DisplayErrorsToUsers   *bool   `json:"displayErrorsToUsers"`
	ShowDetailedErrors     *bool   `json:"showDetailedErrors"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *Patch) IsEmpty() bool {
	return p.Prefix == nil && p.BotName == nil && p.BotAvatar == nil &&
		p.HelpCommandEnabled == nil && p.CommandNotFoundMessage == nil &&
		p.LogErrors == nil && p.DisplayErrorsToUsers == nil && p.ShowDetailedErrors == nil
}

// Apply merges the patch over s.
func (p *Patch) Apply(s *models.BotSettings) {
	if p.Prefix != nil {
		s.Prefix = *p.Prefix
	}

	if p.BotName != nil {
		s.BotName = *p.BotName
	}

	if p.BotAvatar != nil {
		if *p.BotAvatar == "" {
			s.BotAvatar = nil
		} else {
			avatar := *p.BotAvatar
			s.BotAvatar = &avatar
		}
	}

	if p.HelpCommandEnabled != nil {
		s.HelpCommandEnabled = *p.HelpCommandEnabled
	}

	if p.CommandNotFoundMessage != nil {
		s.CommandNotFoundMessage = *p.CommandNotFoundMessage
	}

	if p.LogErrors != nil {
		s.LogErrors = *p.LogErrors
	}

	if p.DisplayErrorsToUsers != nil {
		s.DisplayErrorsToUsers = *p.DisplayErrorsToUsers
	}

	if p.ShowDetailedErrors != nil {
		s.ShowDetailedErrors = *p.ShowDetailedErrors
	}
}

// Init creates the singleton row with defaults unless it already exists.
func Init(db *gorm.DB) error {
	if db == nil {
		return controller.ErrDBNil
	}

	defaults := models.DefaultBotSettings()

	if err := db.FirstOrCreate(&defaults, models.BotSettings{ID: models.BotSettingsID}).Error; err != nil {
		return controller.Unavailable("init bot settings", err)
	}

	return nil
}

// Get returns the singleton settings row.
func Get(db *gorm.DB) (*models.BotSettings, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var s models.BotSettings

	result := db.First(&s, models.BotSettingsID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}

		return nil, controller.Unavailable("get bot settings", result.Error)
	}

	return &s, nil
}

// Update merges the patch over the stored row, persists and returns the merged row.
func Update(db *gorm.DB, patch Patch) (*models.BotSettings, error) {
	s, err := Get(db)
	if err != nil {
		return nil, err
	}

	patch.Apply(s)

	if err = db.Save(s).Error; err != nil {
		return nil, controller.Unavailable("save bot settings", err)
	}

	return s, nil
}

// String returns a pointer to v, handy for building patches.
func String(v string) *string {
	return &v
}

// Bool returns a pointer to v, handy for building patches.
func Bool(v bool) *bool {
	return &v
}
