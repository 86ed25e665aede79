package models

import "time"

// CommandLog is one append-only record of a command invocation outcome.
type CommandLog struct {
	ID        uint64    `gorm:"primaryKey"              json:"id"`
	Timestamp time.Time `gorm:"index;not null"          json:"timestamp"`
	UserID    string    `gorm:"size:32;index"           json:"userId"`
	Username  string    `gorm:"size:100"                json:"username"`
	Command   string    `gorm:"size:255;index;not null" json:"command"`
	IsError   bool      `gorm:"not null"                json:"isError"`
	IsWarning bool      `gorm:"not null"                json:"isWarning"`
	Message   string    `gorm:"size:2000"               json:"message"`
}

// TableName specifies the database table name for the CommandLog model.
func (CommandLog) TableName() string {
	return "command_logs"
}
