//go:build !cgo

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:    "gui",
	Short:  "Open the save/load window (needs a cgo build)",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("the window requires a cgo/raylib build; use \"tui\" instead")
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
