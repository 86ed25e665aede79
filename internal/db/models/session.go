package models

import "time"

// Session is a dashboard session blob stored by the GORM session storage.
type Session struct {
	Key       string `gorm:"primaryKey;column:session_key;size:64"`
	Value     []byte
	ExpiresAt *time.Time
}

// TableName specifies the database table name for the Session model.
func (Session) TableName() string {
	return "web_sessions"
}
