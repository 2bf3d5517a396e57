//go:build cgo

package main

import (
	"github.com/spf13/cobra"

	"github.com/appengine-ltd/autosave-slots/internal/gui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the save/load window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		return gui.NewApp(a, flowFromFlag(uiLoad)).Run()
	},
}

func init() {
	guiCmd.Flags().BoolVar(&uiLoad, "load", false, "Open on the load screen")
	rootCmd.AddCommand(guiCmd)
}
