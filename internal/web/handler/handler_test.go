package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/db/controller/command"
	"github.com/botpanel/botpanel/internal/db/controller/settings"
	"github.com/botpanel/botpanel/internal/db/models"
)

func TestSettingsPatchValidation(t *testing.T) {
	v := NewValidator()

	testCases := []struct {
		name  string
		patch settings.Patch
		valid bool
	}{
		{name: "empty patch", patch: settings.Patch{}, valid: true},
		{name: "prefix", patch: settings.Patch{Prefix: settings.String("$")}, valid: true},
		{name: "empty prefix", patch: settings.Patch{Prefix: settings.String("")}, valid: false},
		{name: "long prefix", patch: settings.Patch{Prefix: settings.String("!!!!!!")}, valid: false},
		{name: "short name", patch: settings.Patch{BotName: settings.String("a")}, valid: false},
		{name: "name", patch: settings.Patch{BotName: settings.String("Helper")}, valid: true},
		{name: "avatar url", patch: settings.Patch{BotAvatar: settings.String("https://cdn.example.com/a.png")}, valid: true},
		{name: "avatar cleared", patch: settings.Patch{BotAvatar: settings.String("")}, valid: true},
		{name: "avatar not a url", patch: settings.Patch{BotAvatar: settings.String("not a url")}, valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.patch)
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestCommandPatchValidation(t *testing.T) {
	v := NewValidator()

	name := "my-cmd_2"
	bad := "has space"
	cat := models.CommandCategory("nope")

	require.NoError(t, v.Struct(command.Patch{Name: &name}))
	assert.Error(t, v.Struct(command.Patch{Name: &bad}))
	assert.Error(t, v.Struct(command.Patch{Category: &cat}))
}
