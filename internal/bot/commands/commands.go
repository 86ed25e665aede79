// Package commands holds the handlers compiled into the bot.
package commands

import (
	"net/http"
	"time"

	"github.com/botpanel/botpanel/internal/bot"
	"github.com/botpanel/botpanel/internal/config"
	"github.com/botpanel/botpanel/internal/db/models"
)

const embedColor = 0x5865f2

// Register adds every built-in handler to r.
func Register(r *bot.Registry, cfg config.Crypto) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	price := &CryptoHandler{
		BaseURL: cfg.BaseURL,
		Client:  &http.Client{Timeout: timeout},
	}

	r.MustRegister("ping", Ping)
	r.MustRegister("help", Help)
	r.MustRegister("info", Info)
	r.MustRegister("prefix", Prefix)
	r.MustRegister("roll", Roll)
	r.MustRegister("crypto", price.Handle)
}

// Catalog returns the catalog entries documenting the built-in handlers.
func Catalog() []models.Command {
	return []models.Command{
		{Name: "ping", Description: "Shows the bot latency", Category: models.CategoryCore, Usage: "ping", Enabled: true},
		{Name: "help", Description: "Lists the available commands", Category: models.CategoryCore, Usage: "help [command]", Enabled: true},
		{Name: "info", Description: "Shows information about the bot", Category: models.CategoryCore, Usage: "info", Enabled: true},
		{Name: "prefix", Description: "Shows the current command prefix", Category: models.CategoryUtility, Usage: "prefix", Enabled: true},
		{Name: "roll", Description: "Rolls dice, 1d6 by default", Category: models.CategoryFun, Usage: "roll [NdM]", Enabled: true},
		{Name: "crypto", Description: "Shows the current price of a coin", Category: models.CategoryAPI, Usage: "crypto <coin> [currency]", Enabled: true},
	}
}
