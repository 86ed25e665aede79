// Package platform abstracts the chat network the bot is connected to.
package platform

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotConnected is returned by live operations before the gateway session is ready.
	ErrNotConnected = errors.New("platform not connected")
	// ErrNoToken is returned by Open when no bot token is configured.
	ErrNoToken = errors.New("platform token is not configured")
)

// Message is an inbound chat message.
type Message struct {
	ID          string
	ChannelID   string
	GuildID     string
	AuthorID    string
	AuthorName  string
	AuthorIsBot bool
	Content     string
	CreatedAt   time.Time
}

// EmbedField is one name/value block of an Embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a rich reply.
type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
	Footer      string
	Timestamp   time.Time
}

// MessageHandler receives every inbound message.
type MessageHandler func(ctx context.Context, msg Message)

// Replier sends replies to inbound messages.
type Replier interface {
	Reply(ctx context.Context, msg Message, text string) error
	ReplyEmbed(ctx context.Context, msg Message, embed *Embed) error
}

// Profile reads and changes the bot identity.
type Profile interface {
	SelfID() string
	Username() string
	AvatarURL() string
	SetUsername(ctx context.Context, name string) error
	// SetAvatar downloads the image at url and uploads it. An empty url removes the avatar.
	SetAvatar(ctx context.Context, url string) error
	Guilds() []string
	SetNickname(ctx context.Context, guildID, nick string) error
	SetListening(text string) error
}

// Status reports the live connection state.
type Status interface {
	Connected() bool
	Latency() time.Duration
	Uptime() time.Duration
}

// Client is the full surface the bot and the dashboard use.
type Client interface {
	Replier
	Profile
	Status

	Open(handler MessageHandler) error
	Close() error
}
