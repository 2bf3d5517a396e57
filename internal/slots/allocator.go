package slots

import (
	"context"
	"fmt"
	"sync"

	"github.com/appengine-ltd/autosave-slots/internal/logging"
)

// LastSaveIndexKey is the config store key holding the last autosave slot.
const LastSaveIndexKey = "lastSaveIndex"

// ConfigStore is the durable settings store the allocator mirrors its
// index into. GetInt reports false for absent or non-numeric values.
type ConfigStore interface {
	GetInt(key string) (int, bool)
	SetInt(key string, value int)
	Commit(ctx context.Context) error
}

// GameState is notified before an autosave snapshot is taken.
type GameState interface {
	OnBeforeSave()
}

// Scene receives the outcome of an autosave.
type Scene interface {
	OnAutosaveSuccess(slot SlotID)
	OnAutosaveFailure(slot SlotID, err error)
}

type AutosaveState int

const (
	StateIdle AutosaveState = iota
	StateSaving
	StateCommitted
	StateFailed
)

func (s AutosaveState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSaving:
		return "saving"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("AutosaveState(%d)", int(s))
	}
}

// AutosaveResult describes one ExecuteAutosave call.
type AutosaveResult struct {
	State AutosaveState
	Slot  SlotID
	// Err is the repository error when State is StateFailed.
	Err error
}

// Allocator owns the autosave rotation for one session.
type Allocator struct {
	layout Layout
	store  ConfigStore
	repo   Repository

	mu      sync.Mutex
	current SlotID
	valid   bool
	state   AutosaveState
}

// NewAllocator returns an allocator with no index loaded. Call
// LoadLastSaveIndex once the config store is open.
func NewAllocator(layout Layout, store ConfigStore, repo Repository) *Allocator {
	return &Allocator{layout: layout, store: store, repo: repo}
}

func (a *Allocator) Layout() Layout { return a.layout }

// CurrentIndex returns the last autosave slot written. ok is false until an
// index has been loaded or committed.
func (a *Allocator) CurrentIndex() (SlotID, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current, a.valid
}

func (a *Allocator) State() AutosaveState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// NextSlot is the slot the next autosave will target.
func (a *Allocator) NextSlot() SlotID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nextSlotLocked()
}

func (a *Allocator) nextSlotLocked() SlotID {
	current := AutosaveSlotStart
	if a.valid {
		current = a.current
	}
	return NextAutosaveSlot(current, a.layout.numSaveSlots, AutosaveSlotStart)
}

// LoadLastSaveIndex reads the stored index. A missing, non-numeric or
// out-of-range value is reset to AutosaveSlotStart in memory and in the
// store.
func (a *Allocator) LoadLastSaveIndex() {
	a.mu.Lock()
	defer a.mu.Unlock()

	v, ok := a.store.GetInt(LastSaveIndexKey)
	if !ok || !a.layout.IsAutosaveSlot(SlotID(v)) {
		if ok {
			logging.Warn("stored save index outside autosave range, resetting", "value", v, "autosave_slots", a.layout.numSaveSlots)
		}
		v = int(AutosaveSlotStart)
		a.store.SetInt(LastSaveIndexKey, v)
	}
	a.current = SlotID(v)
	a.valid = true
	logging.Debug("loaded last save index", "slot", a.current)
}

// SaveLastSaveIndex writes the current index to the store and commits it.
// Without a valid index nothing is written.
func (a *Allocator) SaveLastSaveIndex(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveLastSaveIndexLocked(ctx)
}

func (a *Allocator) saveLastSaveIndexLocked(ctx context.Context) error {
	if !a.valid || !a.layout.IsAutosaveSlot(a.current) {
		logging.Warn("invalid save index, not saving", "value", a.current, "loaded", a.valid)
		return nil
	}
	a.store.SetInt(LastSaveIndexKey, int(a.current))
	if err := a.store.Commit(ctx); err != nil {
		return fmt.Errorf("commit last save index: %w", err)
	}
	logging.Debug("saved last save index", "slot", a.current)
	return nil
}

// ExecuteAutosave writes the game state to the next autosave slot. A
// failed save leaves the rotation where it was so the same slot is tried
// on the next trigger. The returned error is only set for misuse; save
// failures are reported through the result and the scene.
func (a *Allocator) ExecuteAutosave(ctx context.Context, game GameState, scene Scene) (AutosaveResult, error) {
	a.mu.Lock()
	if a.state == StateSaving {
		a.mu.Unlock()
		return AutosaveResult{State: StateSaving}, ErrAutosaveInFlight
	}
	a.state = StateSaving
	a.mu.Unlock()

	// Hooks run unlocked so they may query the allocator.
	if game != nil {
		game.OnBeforeSave()
	}
	slot := a.NextSlot()
	logging.Debug("calculated autosave slot", "slot", slot)

	if err := a.repo.Save(ctx, slot); err != nil {
		logging.Warn("autosave failed", "slot", slot, "err", err)
		if scene != nil {
			scene.OnAutosaveFailure(slot, err)
		}
		a.mu.Lock()
		a.state = StateFailed
		a.mu.Unlock()
		return AutosaveResult{State: StateFailed, Slot: slot, Err: err}, nil
	}

	if scene != nil {
		scene.OnAutosaveSuccess(slot)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = slot
	a.valid = true
	a.state = StateCommitted
	if err := a.saveLastSaveIndexLocked(ctx); err != nil {
		logging.Error("persist last save index", "slot", slot, "err", err)
	}
	return AutosaveResult{State: StateCommitted, Slot: slot}, nil
}
