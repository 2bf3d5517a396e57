package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/autosave-slots/internal/slots"
)

var saveCmd = &cobra.Command{
	Use:   "save <slot>",
	Short: "Write the game to a manual save slot",
	Long: `Write the game to a manual save slot.

Slots are numbered as listed by "list". The autosave slots come first
and are refused here.`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

var loadCmd = &cobra.Command{
	Use:   "load <slot>",
	Short: "Show the game stored in a slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
}

func parseSlotArg(arg string, layout slots.Layout) (slots.SlotID, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid slot %q: %w", arg, err)
	}
	if n < 1 || n > layout.TotalSlotCount() {
		return 0, fmt.Errorf("slot %d out of range 1-%d", n, layout.TotalSlotCount())
	}
	return slots.SlotID(n), nil
}

func runSave(cmd *cobra.Command, args []string) error {
	a, err := bootApp(cmd.Context())
	if err != nil {
		return err
	}
	slot, err := parseSlotArg(args[0], a.Layout)
	if err != nil {
		return err
	}
	if a.Layout.IsSaveAllowed(slot) {
		exists, err := a.Saves.Exists(cmd.Context(), slot)
		if err != nil {
			return err
		}
		if exists {
			logWarning("Overwriting %s", a.Layout.Title(slot))
		}
	}
	if err := a.ManualSave(cmd.Context(), slot); err != nil {
		if errors.Is(err, slots.ErrRestrictedSlot) {
			return fmt.Errorf("%s is reserved for autosaves: %w", a.Layout.Title(slot), err)
		}
		return err
	}
	logSuccess("Saved to %s", a.Layout.Title(slot))
	return nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	a, err := bootApp(cmd.Context())
	if err != nil {
		return err
	}
	slot, err := parseSlotArg(args[0], a.Layout)
	if err != nil {
		return err
	}
	if err := a.Load(cmd.Context(), slot); err != nil {
		return err
	}
	logSuccess("Loaded %s", a.Layout.Title(slot))
	fmt.Fprintln(cmd.OutOrStdout(), a.State.Summary())
	return nil
}
