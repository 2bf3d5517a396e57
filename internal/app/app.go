package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/appengine-ltd/autosave-slots/internal/config"
	"github.com/appengine-ltd/autosave-slots/internal/configstore"
	"github.com/appengine-ltd/autosave-slots/internal/game"
	"github.com/appengine-ltd/autosave-slots/internal/logging"
	"github.com/appengine-ltd/autosave-slots/internal/saverepo"
	"github.com/appengine-ltd/autosave-slots/internal/slots"
)

type App struct {
	Config    config.Config
	Layout    slots.Layout
	Store     *configstore.Store
	Saves     *saverepo.Repository
	Manual    *slots.GuardedRepository
	Allocator *slots.Allocator
	State     *game.State
	Scene     *game.Scene
}

// Boot opens the config store and save directory and loads the last
// autosave index. It must run before the first autosave of a session.
func Boot(cfg config.Config, seed int64) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}
	store, err := configstore.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open config store: %w", err)
	}
	state := game.NewState(seed)
	saves, err := saverepo.New(cfg.SaveDir, state)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Layout:    layout,
		Store:     store,
		Saves:     saves,
		Manual:    slots.Guard(saves, layout),
		Allocator: slots.NewAllocator(layout, store, saves),
		State:     state,
		Scene:     game.NewScene(layout),
	}
	a.Allocator.LoadLastSaveIndex()
	logging.Debug("booted",
		"manual_slots", layout.MaxSavefiles(),
		"autosave_slots", layout.NumSaveSlots(),
		"save_dir", cfg.SaveDir,
		"config_store", store.Path(),
	)
	return a, nil
}

func (a *App) Autosave(ctx context.Context) (slots.AutosaveResult, error) {
	return a.Allocator.ExecuteAutosave(ctx, a.State, a.Scene)
}

// ManualSave writes the game to slot through the guarded repository. A
// refused slot leaves the game state untouched.
func (a *App) ManualSave(ctx context.Context, slot slots.SlotID) error {
	if !a.Layout.IsSaveAllowed(slot) {
		return &slots.RestrictedSlotError{Slot: slot}
	}
	a.State.OnBeforeSave()
	if err := a.Manual.Save(ctx, slot); err != nil {
		return err
	}
	a.Scene.Note("Saved to " + a.Layout.Title(slot))
	logging.Debug("manual save", "slot", slot)
	return nil
}

func (a *App) Load(ctx context.Context, slot slots.SlotID) error {
	rec, err := a.Saves.Load(ctx, slot)
	if err != nil {
		return err
	}
	if err := a.State.Restore(rec.State); err != nil {
		return fmt.Errorf("slot %d: %w", slot, err)
	}
	a.Scene.Note("Loaded " + a.Layout.Title(slot))
	logging.Debug("loaded slot", "slot", slot, "saved_at", rec.SavedAt)
	return nil
}

// Travel moves the party and autosaves on a map change. triggered is false
// when the destination did not change the map.
func (a *App) Travel(ctx context.Context, to string, hours float64) (triggered bool, res slots.AutosaveResult, err error) {
	if !a.State.Travel(canonicalDestination(to), hours) {
		return false, slots.AutosaveResult{}, nil
	}
	res, err = a.Autosave(ctx)
	return true, res, err
}

func canonicalDestination(to string) string {
	for _, d := range game.Destinations {
		if strings.EqualFold(d, strings.TrimSpace(to)) {
			return d
		}
	}
	return strings.TrimSpace(to)
}

// SlotRow is one line of a slot list.
type SlotRow struct {
	ID      slots.SlotID
	Label   slots.Label
	Enabled bool
	Exists  bool
	SavedAt time.Time
}

// Rows lists every slot for flow. The save flow offers every manual slot;
// the load flow only slots that hold a save.
func (a *App) Rows(ctx context.Context, flow slots.Flow) ([]SlotRow, error) {
	entries, err := a.Saves.List(ctx)
	if err != nil {
		return nil, err
	}
	saved := make(map[slots.SlotID]time.Time, len(entries))
	for _, e := range entries {
		saved[e.Slot] = e.SavedAt
	}

	total := a.Layout.TotalSlotCount()
	rows := make([]SlotRow, 0, total)
	for i := 0; i < total; i++ {
		id := a.Layout.SlotIDForIndex(i)
		at, exists := saved[id]
		original := flow == slots.FlowSave || exists
		rows = append(rows, SlotRow{
			ID:      id,
			Label:   a.Layout.LabelFor(id, flow == slots.FlowSave),
			Enabled: a.Layout.IsEnabled(id, flow, original),
			Exists:  exists,
			SavedAt: at,
		})
	}
	return rows, nil
}
