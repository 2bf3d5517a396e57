package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listLoad bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every slot with its label",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&listLoad, "load", false, "List as the load screen does")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := bootApp(cmd.Context())
	if err != nil {
		return err
	}
	rows, err := a.Rows(cmd.Context(), flowFromFlag(listLoad))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-5s %-16s %-8s %s\n", "SLOT", "LABEL", "STATE", "SAVED")
	for _, row := range rows {
		state := "open"
		if !row.Enabled {
			state = "locked"
		}
		saved := "-"
		if row.Exists {
			saved = row.SavedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(out, "%-5d %-16s %-8s %s\n", row.ID, row.Label.Text, state, saved)
	}
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the autosave rotation",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := bootApp(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	current, ok := a.Allocator.CurrentIndex()
	last := "none"
	if ok {
		last = a.Layout.Title(current)
	}
	fmt.Fprintf(out, "Autosave slots: %d (1-%d)\n", a.Layout.NumSaveSlots(), a.Layout.NumSaveSlots())
	fmt.Fprintf(out, "Manual slots: %d (%d-%d)\n", a.Layout.MaxSavefiles(), a.Layout.NumSaveSlots()+1, a.Layout.TotalSlotCount())
	fmt.Fprintf(out, "Last autosave: %s\n", last)
	fmt.Fprintf(out, "Next autosave: %s\n", a.Layout.Title(a.Allocator.NextSlot()))
	fmt.Fprintf(out, "Game: %s\n", a.State.Summary())
	fmt.Fprintf(out, "Config store: %s\n", a.Store.Path())
	if !ok {
		logWarning("no autosave index loaded")
	}
	return nil
}
