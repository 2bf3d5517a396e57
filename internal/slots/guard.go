package slots

import "context"

// Repository persists the current game state into a slot.
type Repository interface {
	Save(ctx context.Context, slot SlotID) error
}

// GuardedRepository is the manual save path. It refuses autosave slots
// before the wrapped repository is reached.
type GuardedRepository struct {
	Repository
	layout Layout
}

func Guard(repo Repository, layout Layout) *GuardedRepository {
	return &GuardedRepository{Repository: repo, layout: layout}
}

func (g *GuardedRepository) Save(ctx context.Context, slot SlotID) error {
	if !g.layout.IsSaveAllowed(slot) {
		return &RestrictedSlotError{Slot: slot}
	}
	return g.Repository.Save(ctx, slot)
}
