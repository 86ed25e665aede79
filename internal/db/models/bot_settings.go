package models

import "time"

// BotSettingsID is the primary key of the singleton settings row.
const BotSettingsID uint = 1

// BotSettings is the single persisted configuration record of the bot.
// Exactly one row (ID BotSettingsID) exists after initialization.
type BotSettings struct {
	ID                     uint      `gorm:"primaryKey"                 json:"-"`
	Prefix                 string    `gorm:"size:5;not null"            json:"prefix"`
	BotName                string    `gorm:"size:32;not null"           json:"botName"`
	BotAvatar              *string   `gorm:"size:2048"                  json:"botAvatar"`
	HelpCommandEnabled     bool      `gorm:"not null"                   json:"helpCommandEnabled"`
	CommandNotFoundMessage string    `gorm:"size:2000;not null"         json:"commandNotFoundMessage"`
	LogErrors              bool      `gorm:"not null"                   json:"logErrors"`
	DisplayErrorsToUsers   bool      `gorm:"not null"                   json:"displayErrorsToUsers"`
	ShowDetailedErrors     bool      `gorm:"not null"                   json:"showDetailedErrors"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the BotSettings model.
func (BotSettings) TableName() string {
	return "bot_settings"
}

// DefaultBotSettings returns the values written when the singleton is created.
func DefaultBotSettings() BotSettings {
	return BotSettings{
		ID:                     BotSettingsID,
		Prefix:                 "!",
		BotName:                "Bot",
		HelpCommandEnabled:     true,
		CommandNotFoundMessage: "Command not found. Use !help to see available commands.",
		LogErrors:              true,
		DisplayErrorsToUsers:   true,
		ShowDetailedErrors:     false,
	}
}
