// Package daemon wires the bot and the dashboard into one process.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/botpanel/botpanel/internal/auth"
	"github.com/botpanel/botpanel/internal/bot"
	"github.com/botpanel/botpanel/internal/bot/commands"
	"github.com/botpanel/botpanel/internal/config"
	"github.com/botpanel/botpanel/internal/db/controller/settings"
	"github.com/botpanel/botpanel/internal/db/dsn"
	"github.com/botpanel/botpanel/internal/db/models"
	"github.com/botpanel/botpanel/internal/platform"
	"github.com/botpanel/botpanel/internal/profile"
	"github.com/botpanel/botpanel/internal/web"
	"github.com/botpanel/botpanel/internal/web/handler"
	"github.com/botpanel/botpanel/internal/web/session"
)

const (
	sessionTable      = "sessions"
	sessionGCInterval = 10 * time.Minute
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	client     *platform.Discord
	dispatcher *bot.Dispatcher
	webService *web.Service
	stop       context.CancelFunc
	background context.Context
}

// Start connects the bot, serves the dashboard and blocks until shutdown.
func (d *Daemon) Start() error {
	if err := d.client.Open(d.dispatcher.Handle); err != nil {
		// the dashboard keeps working without the bot
		log.Error().Err(err).Msg("discord session not opened, bot stays offline")
	}

	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New opens the database, seeds it and builds every component.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}

	gormCfg := &gorm.Config{}
	if !cfg.DevMode {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(dsn.Dialector(cfg), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err = seed(cfg, db); err != nil {
		return nil, err
	}

	background, stop := context.WithCancel(context.Background())

	d := &Daemon{
		cfg:        cfg,
		db:         db,
		background: background,
		stop:       stop,
	}

	store := session.New(d.sessionStorage(), cfg.Webserver.Session.ExpiryTime)

	if d.client, err = platform.NewDiscord(cfg.Discord); err != nil {
		stop()
		return nil, err
	}

	d.client.ReadyHook = d.refreshPresence

	registry := bot.NewRegistry()
	commands.Register(registry, cfg.Crypto)

	d.dispatcher = bot.NewDispatcher(db, d.client, registry)

	d.webService = web.New(&handler.Dependencies{
		Config:       cfg,
		DB:           db,
		Sessions:     store,
		Client:       d.client,
		Registry:     registry,
		Synchronizer: profile.New(db, d.client),
		Validate:     handler.NewValidator(),
		RequireUser:  auth.RequireUser(store, db),
	})

	d.webService.OnShutdown(d.shutdown)

	log.Info().Strs("commands", registry.Names()).Msg("command handlers registered")

	return d, nil
}

// sessionStorage picks the gofiber storage driver matching the database engine.
func (d *Daemon) sessionStorage() fiber.Storage {
	switch d.cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(d.cfg),
			Table:         sessionTable,
			GCInterval:    sessionGCInterval,
		})
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(d.cfg),
			Table:         sessionTable,
			GCInterval:    sessionGCInterval,
		})
	default:
		storage := session.NewGormStorage(d.db)
		go storage.RunGC(d.background, sessionGCInterval)

		return storage
	}
}

// refreshPresence shows "listening to <prefix>help" with the stored prefix.
func (d *Daemon) refreshPresence() {
	s, err := settings.Get(d.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to read settings for presence")
		return
	}

	if err = d.client.SetListening(s.Prefix + "help"); err != nil {
		log.Warn().Err(err).Msg("failed to set presence")
	}
}

func (d *Daemon) shutdown() {
	d.stop()

	if err := d.client.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close discord session")
	}

	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("bot disconnected")
}
