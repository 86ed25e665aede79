// Package profile pushes the requested bot identity to the chat platform
// and persists it regardless of what the platform accepted.
package profile

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/db/controller/settings"
	"github.com/botpanel/botpanel/internal/db/models"
	"github.com/botpanel/botpanel/internal/platform"
)

// maxNicknameWorkers bounds the per-guild fan-out.
const maxNicknameWorkers = 8

// Request is a change of the bot identity. Nil fields are not requested.
// An empty BotAvatar removes the avatar.
type Request struct {
	BotName   *string
	BotAvatar *string
}

// Step is the outcome of one platform call.
type Step struct {
	Requested bool   `json:"requested"`
	Applied   bool   `json:"applied"`
	Error     string `json:"error,omitempty"`
}

// NicknameResult is the outcome of the nickname update in one guild.
type NicknameResult struct {
	GuildID string `json:"guildId"`
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
}

// Result reports what the platform accepted next to what was stored.
// Success is true when every requested platform step was applied. Error is
// the first failing step, the name before the avatar.
type Result struct {
	Success   bool                `json:"success"`
	Error     error               `json:"-"`
	Name      Step                `json:"name"`
	Avatar    Step                `json:"avatar"`
	Nicknames []NicknameResult    `json:"nicknames"`
	Settings  *models.BotSettings `json:"settings"`
}

// Synchronizer reconciles requested identity changes with the platform.
type Synchronizer struct {
	db     *gorm.DB
	client platform.Profile
}

// New creates a synchronizer.
func New(db *gorm.DB, client platform.Profile) *Synchronizer {
	return &Synchronizer{db: db, client: client}
}

// Sync applies the request on the platform step by step, then stores the
// requested values. Platform failures land in the result, only a store
// failure is returned as error.
func (s *Synchronizer) Sync(ctx context.Context, req Request) (*Result, error) {
	res := &Result{Nicknames: []NicknameResult{}}

	if req.BotName != nil {
		res.Name.Requested = true

		if err := s.client.SetUsername(ctx, *req.BotName); err != nil {
			log.Warn().Err(err).Str("name", *req.BotName).Msg("platform rejected bot name")

			res.Name.Error = err.Error()
			res.Error = err
		} else {
			res.Name.Applied = true
			res.Nicknames = s.syncNicknames(ctx, *req.BotName)
		}
	}

	if req.BotAvatar != nil {
		res.Avatar.Requested = true

		if err := s.client.SetAvatar(ctx, *req.BotAvatar); err != nil {
			log.Warn().Err(err).Str("avatar", *req.BotAvatar).Msg("platform rejected bot avatar")

			res.Avatar.Error = err.Error()
			if res.Error == nil {
				res.Error = err
			}
		} else {
			res.Avatar.Applied = true
		}
	}

	stored, err := settings.Update(s.db, settings.Patch{
		BotName:   req.BotName,
		BotAvatar: req.BotAvatar,
	})
	if err != nil {
		return nil, err
	}

	res.Settings = stored
	res.Success = res.Error == nil

	return res, nil
}

// syncNicknames sets the nickname in every guild. Failures are logged and
// reported, never retried.
func (s *Synchronizer) syncNicknames(ctx context.Context, name string) []NicknameResult {
	guilds := s.client.Guilds()
	results := make([]NicknameResult, len(guilds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxNicknameWorkers)

	for i, guildID := range guilds {
		g.Go(func() error {
			err := s.client.SetNickname(gctx, guildID, name)

			results[i] = NicknameResult{GuildID: guildID, Applied: err == nil}
			if err != nil {
				results[i].Error = err.Error()

				log.Warn().Err(err).Str("guild", guildID).Msg("failed to update nickname")
			}

			return nil
		})
	}

	_ = g.Wait()

	return results
}

// Warning returns the text the dashboard shows when the platform rejected a step.
func (r *Result) Warning() string {
	if r.Success || r.Error == nil {
		return ""
	}

	if errors.Is(r.Error, platform.ErrNotConnected) {
		return "Settings saved, the bot is offline and will not show the change until it is synchronized again."
	}

	return "Settings saved, but the platform rejected the change: " + r.Error.Error()
}
