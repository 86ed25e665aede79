package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/db/dbtest"
	"github.com/botpanel/botpanel/internal/db/models"
)

func TestGenerateSessionID(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)

	b, err := GenerateSessionID()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestStoreRoundTrip(t *testing.T) {
	store := New(NewGormStorage(dbtest.New(t)), time.Hour)

	id, err := GenerateSessionID()
	require.NoError(t, err)

	user := models.User{ID: 7, Username: "alice", Role: models.RoleAdmin, Password: "secret-hash"}
	require.NoError(t, store.Write(id, &Data{User: user}))

	data, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), data.User.ID)
	assert.Equal(t, models.RoleAdmin, data.User.Role)
	// the password hash never reaches the session blob
	assert.Empty(t, data.User.Password)

	require.NoError(t, store.Delete(id))

	_, err = store.Read(id)
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.Read("")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGormStorageExpiry(t *testing.T) {
	db := dbtest.New(t)
	storage := NewGormStorage(db)

	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	storage.now = func() time.Time { return now }

	require.NoError(t, storage.Set("a", []byte("1"), time.Minute))
	require.NoError(t, storage.Set("b", []byte("2"), 0))

	v, err := storage.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	now = now.Add(2 * time.Minute)

	v, err = storage.Get("a")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = storage.Get("b")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)

	removed, err := storage.GC()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, storage.Reset())

	v, err = storage.Get("b")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestGormStorageOverwrite(t *testing.T) {
	storage := NewGormStorage(dbtest.New(t))

	require.NoError(t, storage.Set("k", []byte("old"), time.Hour))
	require.NoError(t, storage.Set("k", []byte("new"), time.Hour))

	v, err := storage.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)

	v, err = storage.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, v)
}
