package models

import "time"

// CommandCategory is a free-form grouping tag used by the help output.
type CommandCategory string

const (
	// CategoryGeneral is the default category.
	CategoryGeneral CommandCategory = "general"
	// CategoryModeration groups moderation commands.
	CategoryModeration CommandCategory = "moderation"
	// CategoryFun groups games and toys.
	CategoryFun CommandCategory = "fun"
	// CategoryUtility groups helpers.
	CategoryUtility CommandCategory = "utility"
	// CategoryAPI groups commands calling third-party APIs.
	CategoryAPI CommandCategory = "api"
	// CategoryCore groups the built-in bot commands.
	CategoryCore CommandCategory = "core"
)

// Command is a catalog entry describing a chat command.
// The catalog documents commands for the dashboard and the help output,
// the executable handlers are compiled into the bot.
type Command struct {
	ID          uint            `gorm:"primaryKey"                   json:"id"`
	Name        string          `gorm:"uniqueIndex;size:32;not null" json:"name"`
	Description string          `gorm:"size:255"                     json:"description"`
	Category    CommandCategory `gorm:"type:varchar(20);not null"    json:"category"`
	Usage       string          `gorm:"size:255"                     json:"usage"`
	Response    string          `gorm:"size:2000"                    json:"response"`
	Enabled     bool            `gorm:"not null"                     json:"enabled"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TableName specifies the database table name for the Command model.
func (Command) TableName() string {
	return "commands"
}
