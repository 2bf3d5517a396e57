package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/autosave-slots/internal/app"
	"github.com/appengine-ltd/autosave-slots/internal/config"
	"github.com/appengine-ltd/autosave-slots/internal/logging"
	"github.com/appengine-ltd/autosave-slots/internal/slots"
)

var (
	verbose      bool
	jsonOutput   bool
	settingsPath string
	saveDir      string
	storePath    string
	seed         int64
	fresh        bool
)

var rootCmd = &cobra.Command{
	Use:   "autosave-slots",
	Short: "Rotating autosave slots with a reserved manual range",
	Long: `autosave-slots keeps several rotating autosave slots in front of the
manual save slots.

Autosaves cycle through slots 1..N and the last slot used survives
restarts. Manual saves are refused for the autosave range.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.UserError("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVarP(&settingsPath, "config", "c", config.DefaultSettingsFile, "Settings file (TOML)")
	rootCmd.PersistentFlags().StringVar(&saveDir, "save-dir", "", "Override the save directory")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Override the config store path")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Seed for a new game (0 picks one)")
	rootCmd.PersistentFlags().BoolVar(&fresh, "fresh", false, "Start a new game instead of resuming the newest save")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig reads the settings file and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(settingsPath)
	if err != nil {
		return config.Config{}, err
	}
	if saveDir != "" {
		cfg.SaveDir = saveDir
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}
	return cfg, cfg.Validate()
}

// bootApp boots the app and resumes the newest save unless --fresh is set.
func bootApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	a, err := app.Boot(cfg, s)
	if err != nil {
		return nil, err
	}
	if fresh {
		return a, nil
	}
	entries, err := a.Saves.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		if err := a.Load(ctx, entries[0].Slot); err != nil {
			logging.Warn("could not resume newest save", "slot", entries[0].Slot, "err", err)
		} else {
			logging.Debug("resumed", "slot", entries[0].Slot)
		}
	}
	return a, nil
}

func flowFromFlag(load bool) slots.Flow {
	if load {
		return slots.FlowLoad
	}
	return slots.FlowSave
}
