package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/config"
)

// smallest valid PNG: signature plus IHDR start is enough for content sniffing
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestNotConnected(t *testing.T) {
	d, err := NewDiscord(config.Discord{})
	require.NoError(t, err)

	ctx := context.Background()
	msg := Message{ID: "1", ChannelID: "2"}

	assert.False(t, d.Connected())
	assert.Empty(t, d.SelfID())
	assert.Empty(t, d.Username())
	assert.Empty(t, d.AvatarURL())
	assert.Nil(t, d.Guilds())
	assert.Zero(t, d.Latency())
	assert.Zero(t, d.Uptime())

	require.ErrorIs(t, d.SetUsername(ctx, "Bot"), ErrNotConnected)
	require.ErrorIs(t, d.SetAvatar(ctx, "https://example.com/a.png"), ErrNotConnected)
	require.ErrorIs(t, d.SetNickname(ctx, "g", "Bot"), ErrNotConnected)
	require.ErrorIs(t, d.SetListening("!help"), ErrNotConnected)
	require.ErrorIs(t, d.Reply(ctx, msg, "hi"), ErrNotConnected)
	require.ErrorIs(t, d.ReplyEmbed(ctx, msg, &Embed{}), ErrNotConnected)
	require.NoError(t, d.Close())
}

func TestOpenWithoutToken(t *testing.T) {
	d, err := NewDiscord(config.Discord{})
	require.NoError(t, err)

	require.ErrorIs(t, d.Open(func(context.Context, Message) {}), ErrNoToken)
}

func TestToMessage(t *testing.T) {
	ts := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	msg := toMessage(&discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   "!ping",
		Timestamp: ts,
		Author:    &discordgo.User{ID: "u1", Username: "alice", Bot: true},
	})

	assert.Equal(t, Message{
		ID:          "m1",
		ChannelID:   "c1",
		GuildID:     "g1",
		AuthorID:    "u1",
		AuthorName:  "alice",
		AuthorIsBot: true,
		Content:     "!ping",
		CreatedAt:   ts,
	}, msg)
}

func TestToEmbed(t *testing.T) {
	ts := time.Date(2026, 2, 3, 4, 5, 6, 0, time.FixedZone("CET", 3600))

	out := toEmbed(&Embed{
		Title:       "Pong",
		Description: "latency",
		Color:       0x00ff00,
		Fields:      []EmbedField{{Name: "API", Value: "42ms", Inline: true}},
		Footer:      "botpanel",
		Timestamp:   ts,
	})

	assert.Equal(t, "Pong", out.Title)
	assert.Equal(t, 0x00ff00, out.Color)
	require.Len(t, out.Fields, 1)
	assert.Equal(t, "API", out.Fields[0].Name)
	assert.True(t, out.Fields[0].Inline)
	require.NotNil(t, out.Footer)
	assert.Equal(t, "botpanel", out.Footer.Text)
	assert.Equal(t, "2026-02-03T03:05:06Z", out.Timestamp)

	bare := toEmbed(&Embed{Title: "x"})
	assert.Nil(t, bare.Footer)
	assert.Empty(t, bare.Timestamp)
}

func TestFetchDataURI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a.png":
			_, _ = w.Write(pngHeader)
		case "/text":
			_, _ = w.Write([]byte("hello world"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	uri, err := fetchDataURI(ctx, srv.Client(), srv.URL+"/a.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	_, err = fetchDataURI(ctx, srv.Client(), srv.URL+"/text")
	require.ErrorContains(t, err, "not an image")

	_, err = fetchDataURI(ctx, srv.Client(), srv.URL+"/missing")
	require.ErrorContains(t, err, "status 404")
}
