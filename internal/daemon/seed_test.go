package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/bot/commands"
	"github.com/botpanel/botpanel/internal/config"
	"github.com/botpanel/botpanel/internal/db/controller/command"
	"github.com/botpanel/botpanel/internal/db/controller/settings"
	"github.com/botpanel/botpanel/internal/db/dbtest"
	"github.com/botpanel/botpanel/internal/db/models"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	cfg := &config.Config{Seed: config.Seed{AdminUsername: "admin", AdminPassword: "changeme"}}

	require.NoError(t, seed(cfg, db))
	require.NoError(t, seed(cfg, db))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin())
	assert.True(t, users[0].VerifyPassword("changeme"))

	s, err := settings.Get(db)
	require.NoError(t, err)
	assert.Equal(t, "!", s.Prefix)

	catalog, err := command.List(db)
	require.NoError(t, err)
	assert.Len(t, catalog, len(commands.Catalog()))
}

func TestSeedWithoutAdmin(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, seed(&config.Config{}, db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
