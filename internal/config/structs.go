package config

import (
	"time"

	"github.com/botpanel/botpanel/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Discord   Discord
	Seed      Seed
	Crypto    Crypto
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	CookieSecure   bool    // set the Secure flag on the session cookie (forced off in dev mode)
	Session        Session // session settings
}

// Discord holds the chat platform connection settings.
type Discord struct {
	Token          string        // bot token, the bot stays offline when empty
	RequestTimeout time.Duration // timeout for profile and reply REST calls
}

// Seed holds the values used to initialize an empty database.
type Seed struct {
	AdminUsername string
	AdminPassword string
}

// Crypto configures the price API used by the crypto command.
type Crypto struct {
	BaseURL string
	Timeout time.Duration
}
