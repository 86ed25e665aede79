package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *Invocation) error { return nil }

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("Ping", noop))
	require.NoError(t, r.Register("help", noop))

	for _, name := range []string{"ping", "PING", "pInG"} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, name)
	}

	_, ok := r.Lookup("pong")
	assert.False(t, ok)

	assert.Equal(t, []string{"help", "ping"}, r.Names())
	assert.Equal(t, 2, r.Len())
}

func TestRegisterRejectsCollisions(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("ping", noop))

	require.ErrorIs(t, r.Register("PING", noop), ErrDuplicateCommand)
	require.ErrorIs(t, r.Register("  ", noop), ErrEmptyCommandName)

	assert.Panics(t, func() { r.MustRegister("Ping", noop) })
	assert.Equal(t, 1, r.Len())
}
