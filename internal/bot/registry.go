// Package bot turns inbound chat messages into command invocations.
package bot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/platform"
)

var (
	// ErrDuplicateCommand is returned when two handlers share a normalized name.
	ErrDuplicateCommand = errors.New("duplicate command name")
	// ErrEmptyCommandName is returned when registering a handler without a name.
	ErrEmptyCommandName = errors.New("command name cannot be empty")
)

// Invocation is everything a handler gets to work with.
type Invocation struct {
	Message platform.Message
	// Name is the lowercased command name, without prefix.
	Name string
	// Args keep their original casing.
	Args     []string
	Prefix   string
	Client   platform.Client
	DB       *gorm.DB
	Registry *Registry
}

// Reply answers the invoking message with text.
func (inv *Invocation) Reply(ctx context.Context, text string) error {
	return inv.Client.Reply(ctx, inv.Message, text)
}

// ReplyEmbed answers the invoking message with an embed.
func (inv *Invocation) ReplyEmbed(ctx context.Context, embed *platform.Embed) error {
	return inv.Client.ReplyEmbed(ctx, inv.Message, embed)
}

// Handler executes one command. A returned error is reported as a command failure.
type Handler func(ctx context.Context, inv *Invocation) error

// Registry maps normalized command names to handlers.
// It is filled at startup and read-only afterwards.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler under the lowercased name.
func (r *Registry) Register(name string, h Handler) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return ErrEmptyCommandName
	}

	if _, ok := r.handlers[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, key)
	}

	r.handlers[key] = h

	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(name string, h Handler) {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
}

// Lookup finds a handler, case-insensitively.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[strings.ToLower(name)]
	return h, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	return len(r.handlers)
}
