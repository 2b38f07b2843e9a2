package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"treenav/internal/config"
	"treenav/internal/eventbus"
	"treenav/internal/ui/services/selection"
)

// SourceOptions selects what to open and how
type SourceOptions struct {
	Path       string
	ConfigPath string
	SelectMode string
	ShowHidden bool
}

func AddSourceArgs(cmd *cobra.Command, so *SourceOptions) {
	cmd.PersistentFlags().StringVar(&so.ConfigPath, "config", "",
		fmt.Sprintf("Config file (default %s).", config.DefaultPath()))
	cmd.PersistentFlags().StringVar(&so.SelectMode, "select-mode", "",
		"Selection mode, single or multi. Overrides the config file.")
	cmd.PersistentFlags().BoolVarP(&so.ShowHidden, "all", "a", false,
		"Show hidden entries of directories.")
}

// load reads the config and applies the flags on top of it
func (so *SourceOptions) load(bus eventbus.EventBus) (config.ConfigService, *config.Config, error) {
	var svc config.ConfigService
	if bus != nil {
		svc = config.NewConfigServiceWithBus(bus, so.ConfigPath)
	} else if so.ConfigPath != "" {
		svc = config.NewConfigServiceAt(so.ConfigPath)
	} else {
		svc = config.NewConfigService()
	}

	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Loaded config (source %q, select mode %s)", cfg.Source, cfg.UISettings.SelectMode)

	if so.SelectMode != "" {
		if _, err := selection.ParseMode(so.SelectMode); err != nil {
			return nil, nil, err
		}
		cfg.UISettings.SelectMode = so.SelectMode
	}
	if so.ShowHidden {
		cfg.UISettings.ShowHidden = true
	}
	if so.Path == "" {
		so.Path = cfg.Source
	}
	return svc, cfg, nil
}
