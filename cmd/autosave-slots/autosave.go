package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/autosave-slots/internal/slots"
)

var autosaveCmd = &cobra.Command{
	Use:   "autosave",
	Short: "Write the game to the next autosave slot",
	Args:  cobra.NoArgs,
	RunE:  runAutosave,
}

func init() {
	rootCmd.AddCommand(autosaveCmd)
}

func runAutosave(cmd *cobra.Command, args []string) error {
	a, err := bootApp(cmd.Context())
	if err != nil {
		return err
	}
	res, err := a.Autosave(cmd.Context())
	if err != nil {
		return err
	}
	if res.State == slots.StateFailed {
		return fmt.Errorf("autosave to %s: %w", a.Layout.Title(res.Slot), res.Err)
	}
	logSuccess("%s", a.Scene.Status())
	logInfo("Next autosave: %s", a.Layout.Title(a.Allocator.NextSlot()))
	return nil
}
