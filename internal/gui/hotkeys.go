package gui

import rl "github.com/gen2brain/raylib-go/raylib"

// HotkeysEnabled reports whether single-key shortcuts are live. They are
// held while a save is running.
func HotkeysEnabled(ui *slotWindow) bool {
	if ui == nil {
		return true
	}
	return !ui.busy
}

func ShiftKeyPressed(key int32) bool {
	if shiftDown() && rl.IsKeyPressed(key) {
		return true
	}
	// Accept either key order: Shift then key, or key then Shift.
	return rl.IsKeyDown(key) && (rl.IsKeyPressed(rl.KeyLeftShift) || rl.IsKeyPressed(rl.KeyRightShift))
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}
