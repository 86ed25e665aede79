package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/db/controller"
	"github.com/botpanel/botpanel/internal/db/controller/settings"
	"github.com/botpanel/botpanel/internal/db/dbtest"
	"github.com/botpanel/botpanel/internal/db/models"
	"github.com/botpanel/botpanel/internal/platform"
)

func setup(t *testing.T) (*Synchronizer, *platform.MockClient) {
	t.Helper()

	db := dbtest.New(t)
	require.NoError(t, settings.Init(db))

	client := new(platform.MockClient)

	return New(db, client), client
}

func TestSyncNameAndAvatar(t *testing.T) {
	s, client := setup(t)

	client.On("SetUsername", mock.Anything, "Helper").Return(nil).Once()
	client.On("Guilds").Return([]string{"g1", "g2"}).Once()
	client.On("SetNickname", mock.Anything, "g1", "Helper").Return(nil).Once()
	client.On("SetNickname", mock.Anything, "g2", "Helper").Return(nil).Once()
	client.On("SetAvatar", mock.Anything, "https://cdn.example.com/a.png").Return(nil).Once()

	res, err := s.Sync(context.Background(), Request{
		BotName:   settings.String("Helper"),
		BotAvatar: settings.String("https://cdn.example.com/a.png"),
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.NoError(t, res.Error)
	assert.Empty(t, res.Warning())
	assert.True(t, res.Name.Applied)
	assert.True(t, res.Avatar.Applied)
	require.Len(t, res.Nicknames, 2)
	assert.ElementsMatch(t, []string{"g1", "g2"}, []string{res.Nicknames[0].GuildID, res.Nicknames[1].GuildID})

	assert.Equal(t, "Helper", res.Settings.BotName)
	require.NotNil(t, res.Settings.BotAvatar)

	client.AssertExpectations(t)
}

func TestSyncNameRejectedStillPersists(t *testing.T) {
	s, client := setup(t)

	client.On("SetUsername", mock.Anything, "TooCommonName").Return(errors.New("name taken")).Once()

	res, err := s.Sync(context.Background(), Request{BotName: settings.String("TooCommonName")})
	require.NoError(t, err)

	assert.False(t, res.Success)
	require.EqualError(t, res.Error, "name taken")
	assert.Contains(t, res.Warning(), "name taken")
	assert.True(t, res.Name.Requested)
	assert.False(t, res.Name.Applied)
	assert.False(t, res.Avatar.Requested)
	assert.Empty(t, res.Nicknames)

	stored, err := settings.Get(s.db)
	require.NoError(t, err)
	assert.Equal(t, "TooCommonName", stored.BotName)

	client.AssertNotCalled(t, "Guilds")
	client.AssertNotCalled(t, "SetAvatar", mock.Anything, mock.Anything)
}

func TestSyncNameFailureReportedBeforeAvatar(t *testing.T) {
	s, client := setup(t)

	client.On("SetUsername", mock.Anything, "Helper").Return(errors.New("rate limited")).Once()
	client.On("SetAvatar", mock.Anything, "https://cdn.example.com/a.png").Return(errors.New("bad image")).Once()

	res, err := s.Sync(context.Background(), Request{
		BotName:   settings.String("Helper"),
		BotAvatar: settings.String("https://cdn.example.com/a.png"),
	})
	require.NoError(t, err)

	assert.False(t, res.Success)
	require.EqualError(t, res.Error, "rate limited")
	assert.Equal(t, "bad image", res.Avatar.Error)

	client.AssertExpectations(t)
}

func TestSyncAvatarOnly(t *testing.T) {
	s, client := setup(t)

	client.On("SetAvatar", mock.Anything, "").Return(nil).Once()

	res, err := s.Sync(context.Background(), Request{BotAvatar: settings.String("")})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.False(t, res.Name.Requested)
	assert.Nil(t, res.Settings.BotAvatar)
	assert.Equal(t, "Bot", res.Settings.BotName)

	client.AssertNotCalled(t, "SetUsername", mock.Anything, mock.Anything)
	client.AssertExpectations(t)
}

func TestSyncPartialNicknameFailure(t *testing.T) {
	s, client := setup(t)

	client.On("SetUsername", mock.Anything, "Helper").Return(nil).Once()
	client.On("Guilds").Return([]string{"g1", "g2", "g3"}).Once()
	client.On("SetNickname", mock.Anything, "g1", "Helper").Return(nil).Once()
	client.On("SetNickname", mock.Anything, "g2", "Helper").Return(errors.New("missing permissions")).Once()
	client.On("SetNickname", mock.Anything, "g3", "Helper").Return(nil).Once()

	res, err := s.Sync(context.Background(), Request{BotName: settings.String("Helper")})
	require.NoError(t, err)

	// nickname failures do not affect the overall outcome
	assert.True(t, res.Success)

	failed := 0
	for _, n := range res.Nicknames {
		if !n.Applied {
			failed++
			assert.Equal(t, "g2", n.GuildID)
			assert.Equal(t, "missing permissions", n.Error)
		}
	}

	assert.Equal(t, 1, failed)
	client.AssertExpectations(t)
}

func TestSyncOffline(t *testing.T) {
	s, client := setup(t)

	client.On("SetUsername", mock.Anything, "Helper").Return(platform.ErrNotConnected).Once()

	res, err := s.Sync(context.Background(), Request{BotName: settings.String("Helper")})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Contains(t, res.Warning(), "offline")
	assert.Equal(t, "Helper", res.Settings.BotName)
}

func TestSyncIsIdempotent(t *testing.T) {
	s, client := setup(t)

	client.On("SetUsername", mock.Anything, "Helper").Return(nil).Twice()
	client.On("Guilds").Return([]string{}).Twice()

	for range 2 {
		res, err := s.Sync(context.Background(), Request{BotName: settings.String("Helper")})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "Helper", res.Settings.BotName)
	}

	client.AssertExpectations(t)
}

func TestSyncStoreFailure(t *testing.T) {
	s, client := setup(t)
	require.NoError(t, s.db.Migrator().DropTable(&models.BotSettings{}))

	client.On("SetUsername", mock.Anything, "Helper").Return(nil).Once()
	client.On("Guilds").Return(nil).Once()

	_, err := s.Sync(context.Background(), Request{BotName: settings.String("Helper")})
	require.ErrorIs(t, err, controller.ErrStoreUnavailable)
}
