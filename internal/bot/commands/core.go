package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/botpanel/botpanel/internal/bot"
	"github.com/botpanel/botpanel/internal/db/controller/command"
	"github.com/botpanel/botpanel/internal/db/controller/settings"
	"github.com/botpanel/botpanel/internal/db/models"
	"github.com/botpanel/botpanel/internal/platform"
)

// Discord embed limits.
const (
	maxFieldValue  = 1024
	maxEmbedFields = 25
	maxEmbedChars  = 6000
)

const helpTruncatedFooter = "Some commands are not listed. Ask for one by name with help <command>."

// categoryOrder is the order help lists the categories in.
var categoryOrder = []models.CommandCategory{ //nolint:gochecknoglobals
	models.CategoryCore,
	models.CategoryGeneral,
	models.CategoryUtility,
	models.CategoryModeration,
	models.CategoryFun,
	models.CategoryAPI,
}

// Ping replies with the message round trip and the gateway latency.
func Ping(ctx context.Context, inv *bot.Invocation) error {
	roundTrip := time.Since(inv.Message.CreatedAt)

	return inv.ReplyEmbed(ctx, &platform.Embed{
		Title: "Pong!",
		Color: embedColor,
		Fields: []platform.EmbedField{
			{Name: "Roundtrip", Value: formatMillis(roundTrip), Inline: true},
			{Name: "API", Value: formatMillis(inv.Client.Latency()), Inline: true},
		},
		Timestamp: time.Now(),
	})
}

// Help lists the enabled catalog entries, or details one of them.
func Help(ctx context.Context, inv *bot.Invocation) error {
	cfg, err := settings.Get(inv.DB)
	if err != nil {
		return err
	}

	if !cfg.HelpCommandEnabled {
		return nil
	}

	if len(inv.Args) > 0 {
		return helpFor(ctx, inv, inv.Args[0])
	}

	entries, err := command.ListEnabled(inv.DB)
	if err != nil {
		return err
	}

	grouped := make(map[models.CommandCategory][]string)
	for _, c := range entries {
		grouped[c.Category] = append(grouped[c.Category], fmt.Sprintf("`%s%s` %s", inv.Prefix, c.Name, c.Description))
	}

	embed := &platform.Embed{
		Title:       "Commands",
		Description: fmt.Sprintf("Use `%shelp <command>` for details.", inv.Prefix),
		Color:       embedColor,
	}

	total := len(embed.Title) + len(embed.Description) + len(helpTruncatedFooter)

categories:
	for _, cat := range categoryOrder {
		lines, ok := grouped[cat]
		if !ok {
			continue
		}

		for _, field := range helpFields(titleCase(string(cat)), lines) {
			size := len(field.Name) + len(field.Value)
			if len(embed.Fields) == maxEmbedFields || total+size > maxEmbedChars {
				embed.Footer = helpTruncatedFooter
				break categories
			}

			total += size
			embed.Fields = append(embed.Fields, field)
		}
	}

	if len(embed.Fields) == 0 {
		embed.Description = "No commands are documented yet."
	}

	return inv.ReplyEmbed(ctx, embed)
}

// helpFields packs lines into as few fields as fit the field value limit.
func helpFields(name string, lines []string) []platform.EmbedField {
	var (
		fields []platform.EmbedField
		b      strings.Builder
	)

	flush := func() {
		if b.Len() == 0 {
			return
		}

		fieldName := name
		if len(fields) > 0 {
			fieldName = name + " (cont.)"
		}

		fields = append(fields, platform.EmbedField{Name: fieldName, Value: b.String()})
		b.Reset()
	}

	for _, line := range lines {
		line = truncate(line, maxFieldValue)

		if b.Len() > 0 && b.Len()+1+len(line) > maxFieldValue {
			flush()
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(line)
	}

	flush()

	return fields
}

// truncate cuts s to at most limit bytes, ending with an ellipsis when cut.
func truncate(s string, limit int) string {
	const ellipsis = "…"

	if len(s) <= limit {
		return s
	}

	return strings.ToValidUTF8(s[:limit-len(ellipsis)], "") + ellipsis
}

func helpFor(ctx context.Context, inv *bot.Invocation, name string) error {
	c, err := command.GetByName(inv.DB, strings.TrimPrefix(name, inv.Prefix))
	if err != nil && !errors.Is(err, command.ErrCommandNotFound) {
		return err
	}

	if c == nil || !c.Enabled {
		return inv.Reply(ctx, fmt.Sprintf("No command named `%s`.", name))
	}

	return inv.ReplyEmbed(ctx, &platform.Embed{
		Title:       inv.Prefix + c.Name,
		Description: c.Description,
		Color:       embedColor,
		Fields: []platform.EmbedField{
			{Name: "Usage", Value: fmt.Sprintf("`%s%s`", inv.Prefix, c.Usage), Inline: true},
			{Name: "Category", Value: titleCase(string(c.Category)), Inline: true},
		},
	})
}

// Info replies with a summary of the bot state.
func Info(ctx context.Context, inv *bot.Invocation) error {
	cfg, err := settings.Get(inv.DB)
	if err != nil {
		return err
	}

	name := inv.Client.Username()
	if name == "" {
		name = cfg.BotName
	}

	return inv.ReplyEmbed(ctx, &platform.Embed{
		Title: name,
		Color: embedColor,
		Fields: []platform.EmbedField{
			{Name: "Uptime", Value: inv.Client.Uptime().Truncate(time.Second).String(), Inline: true},
			{Name: "Servers", Value: fmt.Sprint(len(inv.Client.Guilds())), Inline: true},
			{Name: "Latency", Value: formatMillis(inv.Client.Latency()), Inline: true},
			{Name: "Commands", Value: fmt.Sprint(inv.Registry.Len()), Inline: true},
			{Name: "Prefix", Value: fmt.Sprintf("`%s`", inv.Prefix), Inline: true},
		},
		Timestamp: time.Now(),
	})
}

// Prefix replies with the prefix currently in use.
func Prefix(ctx context.Context, inv *bot.Invocation) error {
	return inv.Reply(ctx, fmt.Sprintf("The current prefix is `%s`.", inv.Prefix))
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	if s == string(models.CategoryAPI) {
		return "API"
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
