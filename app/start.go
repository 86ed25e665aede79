package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/botpanel/botpanel/internal/config"
	"github.com/botpanel/botpanel/internal/daemon"
	"github.com/botpanel/botpanel/internal/logger"
	discordlogger "github.com/botpanel/botpanel/internal/logger/adapter/discordgo"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().StringVar(&configPath, "config", "./etc/", "Directory containing main.toml")
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	configPath string // Path to the configuration directory

	cfg     config.Config
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the bot and the dashboard",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			if err = logger.Init(cfg.Log); err != nil {
				return err
			}

			discordlogger.Install()

			if cfg.DevMode {
				dump, _ := config.DumpConfigJSON(&cfg)
				log.Debug().RawJSON("config", []byte(dump)).Msg("configuration loaded")
			}

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := daemon.New(&cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)
