// Package models contains database model definitions.
package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// Role is the dashboard access level of a user account.
type Role string

const (
	// RoleUser may read everything on the dashboard.
	RoleUser Role = "user"
	// RoleAdmin may additionally change settings and the command catalog.
	RoleAdmin Role = "admin"
)

// User represents a dashboard user account.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Username is the unique username for login.
	Username string `gorm:"unique;size:100;not null" json:"username"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255;not null" json:"-"`
	// Role decides which dashboard routes the user may call.
	Role Role `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	// TOTPSecret enables a second login factor when set.
	TOTPSecret string `gorm:"size:64" json:"-"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// The comparison runs in constant time.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}

// All lists every model the daemon migrates.
func All() []any {
	return []any{
		&User{},
		&Session{},
		&BotSettings{},
		&Command{},
		&CommandLog{},
	}
}
