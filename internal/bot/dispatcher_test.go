package bot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/db/controller/commandlog"
	"github.com/botpanel/botpanel/internal/db/controller/settings"
	"github.com/botpanel/botpanel/internal/db/dbtest"
	"github.com/botpanel/botpanel/internal/db/models"
	"github.com/botpanel/botpanel/internal/platform"
)

const selfID = "bot-1"

type fixture struct {
	db         *gorm.DB
	client     *platform.MockClient
	registry   *Registry
	dispatcher *Dispatcher
}

func newFixture(t *testing.T, patch settings.Patch) *fixture {
	t.Helper()

	db := dbtest.New(t)
	require.NoError(t, settings.Init(db))

	_, err := settings.Update(db, patch)
	require.NoError(t, err)

	client := new(platform.MockClient)
	client.On("SelfID").Return(selfID).Maybe()

	registry := NewRegistry()

	return &fixture{
		db:         db,
		client:     client,
		registry:   registry,
		dispatcher: NewDispatcher(db, client, registry),
	}
}

func message(content string) platform.Message {
	return platform.Message{
		ID:         "m1",
		ChannelID:  "c1",
		GuildID:    "g1",
		AuthorID:   "u1",
		AuthorName: "alice",
		Content:    content,
		CreatedAt:  time.Now(),
	}
}

func logs(t *testing.T, db *gorm.DB) []models.CommandLog {
	t.Helper()

	rows, err := commandlog.List(db, 0)
	require.NoError(t, err)

	return rows
}

func TestDispatchExecutesHandler(t *testing.T) {
	f := newFixture(t, settings.Patch{})

	var got *Invocation
	f.registry.MustRegister("ping", func(ctx context.Context, inv *Invocation) error {
		got = inv
		return inv.ReplyEmbed(ctx, &platform.Embed{Title: "Pong"})
	})

	f.client.On("ReplyEmbed", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	f.dispatcher.Handle(context.Background(), message("!ping"))

	require.NotNil(t, got)
	assert.Equal(t, "ping", got.Name)
	assert.Empty(t, got.Args)
	assert.Equal(t, "!", got.Prefix)

	rows := logs(t, f.db)
	require.Len(t, rows, 1)
	assert.Equal(t, "!ping", rows[0].Command)
	assert.False(t, rows[0].IsError)
	assert.Equal(t, "Command executed: ping", rows[0].Message)
	assert.Equal(t, "u1", rows[0].UserID)

	f.client.AssertExpectations(t)
}

func TestDispatchUnknownCommand(t *testing.T) {
	f := newFixture(t, settings.Patch{CommandNotFoundMessage: settings.String("Try !help")})

	f.client.On("Reply", mock.Anything, mock.Anything, "Try !help").Return(nil).Once()

	f.dispatcher.Handle(context.Background(), message("!nosuchcmd"))

	rows := logs(t, f.db)
	require.Len(t, rows, 1)
	assert.Equal(t, "!nosuchcmd", rows[0].Command)
	assert.True(t, rows[0].IsError)
	assert.Equal(t, "Unknown command: nosuchcmd", rows[0].Message)

	f.client.AssertExpectations(t)
}

func TestDispatchUnknownCommandSilent(t *testing.T) {
	f := newFixture(t, settings.Patch{DisplayErrorsToUsers: settings.Bool(false)})

	f.dispatcher.Handle(context.Background(), message("!nosuchcmd"))

	assert.Len(t, logs(t, f.db), 1)
	f.client.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchUnknownCommandMetrics(t *testing.T) {
	f := newFixture(t, settings.Patch{DisplayErrorsToUsers: settings.Bool(false)})
	f.registry.MustRegister("ping", func(context.Context, *Invocation) error { return nil })

	dispatched.Reset()
	duration.Reset()

	for i := range 50 {
		f.dispatcher.Handle(context.Background(), message(fmt.Sprintf("!junk%d", i)))
	}

	f.dispatcher.Handle(context.Background(), message("!ping"))

	assert.Equal(t, 2, testutil.CollectAndCount(dispatched))
	assert.Equal(t, 1, testutil.CollectAndCount(duration))
	assert.InDelta(t, 50, testutil.ToFloat64(dispatched.WithLabelValues(unknownCommand, outcomeUnknown)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(dispatched.WithLabelValues("ping", outcomeExecuted)), 0)
}

func TestDispatchLogsBeforeExecution(t *testing.T) {
	f := newFixture(t, settings.Patch{})

	var seen []models.CommandLog
	f.registry.MustRegister("ping", func(context.Context, *Invocation) error {
		seen = logs(t, f.db)
		return nil
	})

	f.dispatcher.Handle(context.Background(), message("!PING now"))

	require.Len(t, seen, 1)
	assert.Equal(t, "!PING", seen[0].Command)
	assert.False(t, seen[0].IsError)
	assert.Equal(t, "Command executed: ping", seen[0].Message)
}

func TestDispatchHandlerFailure(t *testing.T) {
	testCases := []struct {
		name      string
		patch     settings.Patch
		handler   Handler
		wantRows  int
		wantReply string
	}{
		{
			name:      "generic reply without detail",
			patch:     settings.Patch{},
			handler:   func(context.Context, *Invocation) error { return errors.New("boom") },
			wantRows:  2,
			wantReply: GenericErrorReply,
		},
		{
			name:      "detailed reply",
			patch:     settings.Patch{ShowDetailedErrors: settings.Bool(true)},
			handler:   func(context.Context, *Invocation) error { return errors.New("boom") },
			wantRows:  2,
			wantReply: GenericErrorReply + "\nError: boom",
		},
		{
			name:      "panic is recovered",
			patch:     settings.Patch{},
			handler:   func(context.Context, *Invocation) error { panic("kaboom") },
			wantRows:  2,
			wantReply: GenericErrorReply,
		},
		{
			name:     "errors not logged and not displayed",
			patch:    settings.Patch{LogErrors: settings.Bool(false), DisplayErrorsToUsers: settings.Bool(false)},
			handler:  func(context.Context, *Invocation) error { return errors.New("boom") },
			wantRows: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.patch)
			f.registry.MustRegister("fail", tc.handler)

			if tc.wantReply != "" {
				f.client.On("Reply", mock.Anything, mock.Anything, tc.wantReply).Return(nil).Once()
			}

			assert.NotPanics(t, func() {
				f.dispatcher.Handle(context.Background(), message("!fail"))
			})

			rows := logs(t, f.db)
			require.Len(t, rows, tc.wantRows)

			if tc.wantRows == 2 {
				assert.True(t, rows[0].IsError)
				assert.Contains(t, rows[0].Message, "Error executing fail: ")
				assert.False(t, rows[1].IsError)
			}

			if tc.wantReply == "" {
				f.client.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything)
			}

			f.client.AssertExpectations(t)
		})
	}
}

func TestDispatchFilters(t *testing.T) {
	testCases := []struct {
		name string
		msg  platform.Message
	}{
		{name: "no prefix", msg: message("ping")},
		{name: "prefix only", msg: message("!")},
		{name: "prefix and whitespace", msg: message("!   ")},
		{name: "other bot", msg: func() platform.Message { m := message("!ping"); m.AuthorIsBot = true; return m }()},
		{name: "self", msg: func() platform.Message { m := message("!ping"); m.AuthorID = selfID; return m }()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, settings.Patch{})

			called := false
			f.registry.MustRegister("ping", func(context.Context, *Invocation) error {
				called = true
				return nil
			})

			f.dispatcher.Handle(context.Background(), tc.msg)

			assert.False(t, called)
			assert.Empty(t, logs(t, f.db))
		})
	}
}

func TestDispatchTokenizing(t *testing.T) {
	f := newFixture(t, settings.Patch{Prefix: settings.String("$$")})

	var got *Invocation
	f.registry.MustRegister("crypto", func(_ context.Context, inv *Invocation) error {
		got = inv
		return nil
	})

	f.dispatcher.Handle(context.Background(), message("$$CRYPTO  Bitcoin\tEUR "))

	require.NotNil(t, got)
	assert.Equal(t, "crypto", got.Name)
	assert.Equal(t, []string{"Bitcoin", "EUR"}, got.Args)
	assert.Equal(t, "$$", got.Prefix)

	rows := logs(t, f.db)
	require.Len(t, rows, 1)
	assert.Equal(t, "$$CRYPTO", rows[0].Command)
}

func TestDispatchPrefixIsLiteral(t *testing.T) {
	f := newFixture(t, settings.Patch{Prefix: settings.String(".*")})

	called := false
	f.registry.MustRegister("ping", func(context.Context, *Invocation) error {
		called = true
		return nil
	})

	f.dispatcher.Handle(context.Background(), message("xping"))
	assert.False(t, called)

	f.dispatcher.Handle(context.Background(), message(".*ping"))
	assert.True(t, called)
}

func TestDispatchLogFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t, settings.Patch{})
	require.NoError(t, f.db.Migrator().DropTable(&models.CommandLog{}))

	called := false
	f.registry.MustRegister("ping", func(context.Context, *Invocation) error {
		called = true
		return nil
	})

	f.dispatcher.Handle(context.Background(), message("!ping"))

	assert.True(t, called)
}

func TestDispatchSeesSettingsChanges(t *testing.T) {
	f := newFixture(t, settings.Patch{})

	calls := 0
	f.registry.MustRegister("ping", func(context.Context, *Invocation) error {
		calls++
		return nil
	})

	f.dispatcher.Handle(context.Background(), message("!ping"))

	_, err := settings.Update(f.db, settings.Patch{Prefix: settings.String("?")})
	require.NoError(t, err)

	f.dispatcher.Handle(context.Background(), message("!ping"))
	f.dispatcher.Handle(context.Background(), message("?ping"))

	assert.Equal(t, 2, calls)
}
