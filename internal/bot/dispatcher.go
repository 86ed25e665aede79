package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/db/controller/commandlog"
	"github.com/botpanel/botpanel/internal/db/controller/settings"
	"github.com/botpanel/botpanel/internal/db/models"
	"github.com/botpanel/botpanel/internal/platform"
)

// GenericErrorReply is sent to the user when a handler fails.
const GenericErrorReply = "There was an error trying to execute that command!"

// Dispatcher routes a message to at most one handler.
type Dispatcher struct {
	db       *gorm.DB
	client   platform.Client
	registry *Registry
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(db *gorm.DB, client platform.Client, registry *Registry) *Dispatcher {
	if db == nil || client == nil || registry == nil {
		panic("db, client or registry is nil")
	}

	return &Dispatcher{
		db:       db,
		client:   client,
		registry: registry,
	}
}

// Handle processes one inbound message. Every outcome ends inside this call.
func (d *Dispatcher) Handle(ctx context.Context, msg platform.Message) {
	if msg.AuthorIsBot || msg.AuthorID == d.client.SelfID() {
		return
	}

	cfg, err := settings.Get(d.db)
	if err != nil {
		log.Error().Err(err).Msg("dispatcher: failed to read settings, message dropped")
		return
	}

	if !strings.HasPrefix(msg.Content, cfg.Prefix) {
		return
	}

	fields := strings.Fields(msg.Content[len(cfg.Prefix):])
	if len(fields) == 0 {
		return
	}

	typed := fields[0]
	name := strings.ToLower(typed)

	handler, found := d.registry.Lookup(name)

	entry := commandlog.Entry{
		UserID:   msg.AuthorID,
		Username: msg.AuthorName,
		Command:  cfg.Prefix + typed,
		IsError:  !found,
	}

	if found {
		entry.Message = "Command executed: " + name
	} else {
		entry.Message = "Unknown command: " + name
	}

	d.appendLog(entry)

	if !found {
		dispatched.WithLabelValues(unknownCommand, outcomeUnknown).Inc()

		if cfg.DisplayErrorsToUsers {
			d.reply(ctx, msg, cfg.CommandNotFoundMessage)
		}

		return
	}

	inv := &Invocation{
		Message:  msg,
		Name:     name,
		Args:     fields[1:],
		Prefix:   cfg.Prefix,
		Client:   d.client,
		DB:       d.db,
		Registry: d.registry,
	}

	start := time.Now()
	err = run(ctx, handler, inv)
	duration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err == nil {
		dispatched.WithLabelValues(name, outcomeExecuted).Inc()
		return
	}

	dispatched.WithLabelValues(name, outcomeFailed).Inc()

	log.Warn().Err(err).Str("command", name).Str("user", msg.AuthorName).Msg("command failed")

	if cfg.LogErrors {
		d.appendLog(commandlog.Entry{
			UserID:   msg.AuthorID,
			Username: msg.AuthorName,
			Command:  cfg.Prefix + typed,
			IsError:  true,
			Message:  fmt.Sprintf("Error executing %s: %v", name, err),
		})
	}

	if cfg.DisplayErrorsToUsers {
		d.reply(ctx, msg, failureReply(cfg, err))
	}
}

func failureReply(cfg *models.BotSettings, err error) string {
	if cfg.ShowDetailedErrors {
		return GenericErrorReply + "\nError: " + err.Error()
	}

	return GenericErrorReply
}

// run executes the handler and turns a panic into an error.
func run(ctx context.Context, h Handler, inv *Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return h(ctx, inv)
}

func (d *Dispatcher) appendLog(entry commandlog.Entry) {
	if _, err := commandlog.Append(d.db, entry); err != nil {
		log.Error().Err(err).Str("command", entry.Command).Msg("failed to write command log")
	}
}

func (d *Dispatcher) reply(ctx context.Context, msg platform.Message, text string) {
	if err := d.client.Reply(ctx, msg, text); err != nil {
		log.Warn().Err(err).Str("channel", msg.ChannelID).Msg("failed to send reply")
	}
}
