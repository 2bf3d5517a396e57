package slots

import (
	"errors"
	"fmt"
)

var (
	// ErrRestrictedSlot matches every RestrictedSlotError.
	ErrRestrictedSlot = errors.New("save slot is restricted")

	ErrAutosaveInFlight = errors.New("autosave already in progress")
)

// RestrictedSlotError is returned when a manual save targets an autosave slot.
type RestrictedSlotError struct {
	Slot SlotID
}

func (e *RestrictedSlotError) Error() string {
	return fmt.Sprintf("save slot %d is restricted", e.Slot)
}

func (e *RestrictedSlotError) Is(target error) bool {
	return target == ErrRestrictedSlot
}
