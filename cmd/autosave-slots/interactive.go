package main

import (
	"github.com/spf13/cobra"

	"github.com/appengine-ltd/autosave-slots/internal/console"
	"github.com/appengine-ltd/autosave-slots/internal/ui"
)

var uiLoad bool

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play from a line-based command prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		return console.New(a, cmd.OutOrStdout()).Run(cmd.Context(), cmd.InOrStdin())
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal save/load screen",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		return ui.NewApp(a, flowFromFlag(uiLoad)).Run()
	},
}

func init() {
	tuiCmd.Flags().BoolVar(&uiLoad, "load", false, "Open on the load screen")
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(tuiCmd)
}
