// Package discordgo routes discordgo's internal log output into zerolog.
package discordgo

import (
	"fmt"

	dg "github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level maps a discordgo log level to a zerolog level.
func Level(msgL int) zerolog.Level {
	switch msgL {
	case dg.LogError:
		return zerolog.ErrorLevel
	case dg.LogWarning:
		return zerolog.WarnLevel
	case dg.LogInformational:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// Logger returns a function matching the dg.Logger signature.
func Logger(l zerolog.Logger) func(msgL, caller int, format string, a ...interface{}) {
	return func(msgL, _ int, format string, a ...interface{}) {
		l.WithLevel(Level(msgL)).
			Str("component", "discordgo").
			Msg(fmt.Sprintf(format, a...))
	}
}

// Install replaces the package level discordgo logger with the global zerolog logger.
func Install() {
	dg.Logger = Logger(log.Logger) //nolint:reassign
}
