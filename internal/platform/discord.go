package platform

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/botpanel/botpanel/internal/config"
)

const maxAvatarSize = 10 << 20

// Discord is the Client backed by a discordgo gateway session.
type Discord struct {
	token   string
	timeout time.Duration
	session *discordgo.Session

	opened    atomic.Bool
	ready     atomic.Bool
	mu        sync.RWMutex
	startedAt time.Time
	handler   MessageHandler

	// ReadyHook runs every time the gateway session becomes ready.
	ReadyHook func()
}

// NewDiscord prepares a session. Nothing is dialed until Open.
func NewDiscord(cfg config.Discord) (*Discord, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	d := &Discord{
		token:   cfg.Token,
		timeout: cfg.RequestTimeout,
		session: session,
	}

	session.AddHandler(d.onReady)
	session.AddHandler(d.onMessageCreate)

	return d, nil
}

// Open connects the gateway and routes every message to handler.
func (d *Discord) Open(handler MessageHandler) error {
	if d.token == "" {
		return ErrNoToken
	}

	d.mu.Lock()
	d.handler = handler
	d.mu.Unlock()

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	d.opened.Store(true)

	return nil
}

// Close disconnects the gateway.
func (d *Discord) Close() error {
	d.ready.Store(false)

	if !d.opened.Swap(false) {
		return nil
	}

	return d.session.Close()
}

func (d *Discord) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	d.mu.Lock()
	d.startedAt = time.Now()
	d.mu.Unlock()

	d.ready.Store(true)

	log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("discord session ready")

	if d.ReadyHook != nil {
		d.ReadyHook()
	}
}

func (d *Discord) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}

	d.mu.RLock()
	handler := d.handler
	d.mu.RUnlock()

	if handler == nil {
		return
	}

	handler(context.Background(), toMessage(m.Message))
}

func toMessage(m *discordgo.Message) Message {
	msg := Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Content:   m.Content,
		CreatedAt: m.Timestamp,
	}

	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorName = m.Author.Username
		msg.AuthorIsBot = m.Author.Bot
	}

	return msg
}

// Connected reports whether the gateway session is ready.
func (d *Discord) Connected() bool {
	return d.ready.Load()
}

// SelfID returns the bot user id, empty before ready.
func (d *Discord) SelfID() string {
	if u := d.self(); u != nil {
		return u.ID
	}

	return ""
}

// Username returns the live bot username, empty before ready.
func (d *Discord) Username() string {
	if u := d.self(); u != nil {
		return u.Username
	}

	return ""
}

// AvatarURL returns the live avatar url, empty before ready or without avatar.
func (d *Discord) AvatarURL() string {
	if u := d.self(); u != nil && u.Avatar != "" {
		return u.AvatarURL("")
	}

	return ""
}

func (d *Discord) self() *discordgo.User {
	if !d.Connected() || d.session.State == nil {
		return nil
	}

	d.session.State.RLock()
	defer d.session.State.RUnlock()

	return d.session.State.User
}

// SetUsername changes the global bot username.
func (d *Discord) SetUsername(ctx context.Context, name string) error {
	return d.updateSelf(ctx, map[string]any{"username": name})
}

// SetAvatar replaces the bot avatar with the image at url.
func (d *Discord) SetAvatar(ctx context.Context, url string) error {
	if !d.Connected() {
		return ErrNotConnected
	}

	if url == "" {
		return d.updateSelf(ctx, map[string]any{"avatar": nil})
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	avatar, err := fetchDataURI(ctx, d.session.Client, url)
	if err != nil {
		return err
	}

	return d.updateSelf(ctx, map[string]any{"avatar": avatar})
}

func (d *Discord) updateSelf(ctx context.Context, data map[string]any) error {
	if !d.Connected() {
		return ErrNotConnected
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	body, err := d.session.RequestWithBucketID(
		http.MethodPatch,
		discordgo.EndpointUser("@me"),
		data,
		discordgo.EndpointUsers,
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to update bot user: %w", err)
	}

	var user discordgo.User
	if err = json.Unmarshal(body, &user); err != nil {
		return fmt.Errorf("failed to decode bot user: %w", err)
	}

	d.session.State.Lock()
	if d.session.State.User != nil {
		d.session.State.User.Username = user.Username
		d.session.State.User.Avatar = user.Avatar
	}
	d.session.State.Unlock()

	return nil
}

// Guilds returns the ids of the guilds the bot is a member of.
func (d *Discord) Guilds() []string {
	if !d.Connected() {
		return nil
	}

	d.session.State.RLock()
	defer d.session.State.RUnlock()

	ids := make([]string, 0, len(d.session.State.Guilds))
	for _, g := range d.session.State.Guilds {
		ids = append(ids, g.ID)
	}

	return ids
}

// SetNickname sets the bot nickname in one guild.
func (d *Discord) SetNickname(ctx context.Context, guildID, nick string) error {
	if !d.Connected() {
		return ErrNotConnected
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	if err := d.session.GuildMemberNickname(guildID, "@me", nick, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to set nickname in guild %s: %w", guildID, err)
	}

	return nil
}

// SetListening sets the "Listening to" presence.
func (d *Discord) SetListening(text string) error {
	if !d.Connected() {
		return ErrNotConnected
	}

	return d.session.UpdateListeningStatus(text)
}

// Latency returns the last gateway heartbeat round trip.
func (d *Discord) Latency() time.Duration {
	if !d.Connected() {
		return 0
	}

	return d.session.HeartbeatLatency()
}

// Uptime returns the time since the session became ready.
func (d *Discord) Uptime() time.Duration {
	if !d.Connected() {
		return 0
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	return time.Since(d.startedAt)
}

// Reply answers msg with plain text.
func (d *Discord) Reply(ctx context.Context, msg Message, text string) error {
	if !d.Connected() {
		return ErrNotConnected
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	_, err := d.session.ChannelMessageSendReply(msg.ChannelID, text, reference(msg), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	return nil
}

// ReplyEmbed answers msg with an embed.
func (d *Discord) ReplyEmbed(ctx context.Context, msg Message, embed *Embed) error {
	if !d.Connected() {
		return ErrNotConnected
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	_, err := d.session.ChannelMessageSendEmbedReply(msg.ChannelID, toEmbed(embed), reference(msg), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send embed reply: %w", err)
	}

	return nil
}

func (d *Discord) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, d.timeout)
}

func reference(msg Message) *discordgo.MessageReference {
	return &discordgo.MessageReference{
		MessageID: msg.ID,
		ChannelID: msg.ChannelID,
		GuildID:   msg.GuildID,
	}
}

func toEmbed(e *Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}

	for _, f := range e.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	if e.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}

	if !e.Timestamp.IsZero() {
		out.Timestamp = e.Timestamp.UTC().Format(time.RFC3339)
	}

	return out
}

// fetchDataURI downloads an image and encodes it the way the avatar endpoint expects.
func fetchDataURI(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create avatar request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download avatar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download avatar: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAvatarSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}

	if len(body) > maxAvatarSize {
		return "", fmt.Errorf("avatar exceeds %d bytes", maxAvatarSize)
	}

	contentType := http.DetectContentType(body)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("avatar is not an image: %s", contentType)
	}

	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(body)), nil
}
