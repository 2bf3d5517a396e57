// Package gui is the raylib save/load window.
package gui

import (
	"context"
	"errors"
	"fmt"

	"github.com/appengine-ltd/autosave-slots/internal/app"
	"github.com/appengine-ltd/autosave-slots/internal/logging"
	"github.com/appengine-ltd/autosave-slots/internal/saverepo"
	"github.com/appengine-ltd/autosave-slots/internal/slots"
	uitheme "github.com/appengine-ltd/autosave-slots/internal/ui/theme"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type App struct {
	app  *app.App
	flow slots.Flow
}

func NewApp(a *app.App, flow slots.Flow) *App {
	return &App{app: a, flow: flow}
}

func (a *App) Run() error {
	return newSlotWindow(a.app, a.flow).Run()
}

const messageLines = 3

type actionKind int

const (
	actionAutosave actionKind = iota
	actionSave
	actionLoad
	actionDelete
)

type actionResult struct {
	kind     actionKind
	slot     slots.SlotID
	autosave slots.AutosaveResult
	err      error
}

type slotWindow struct {
	app    *app.App
	flow   slots.Flow
	width  int32
	height int32

	rows   []app.SlotRow
	cursor int
	offset int

	status     string
	statusWarn bool
	busy       bool
	quit       bool

	resultCh chan actionResult
}

func newSlotWindow(a *app.App, flow slots.Flow) *slotWindow {
	w := &slotWindow{
		app:      a,
		flow:     flow,
		width:    960,
		height:   720,
		resultCh: make(chan actionResult, 4),
	}
	w.refresh()
	return w
}

func (w *slotWindow) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w.width, w.height, "autosave-slots")
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)
	initTypography()
	defer shutdownTypography()

	for !w.quit && !rl.WindowShouldClose() {
		w.width = int32(rl.GetScreenWidth())
		w.height = int32(rl.GetScreenHeight())

		w.pollResult()
		w.update()

		rl.BeginDrawing()
		rl.ClearBackground(uitheme.BG)
		w.draw()
		rl.EndDrawing()
	}

	rl.CloseWindow()
	return nil
}

func (w *slotWindow) refresh() {
	rows, err := w.app.Rows(context.Background(), w.flow)
	if err != nil {
		w.setStatus("Listing slots failed: "+err.Error(), true)
		return
	}
	w.rows = rows
	w.cursor = wrapIndex(w.cursor, len(rows))
}

func (w *slotWindow) setStatus(text string, warn bool) {
	w.status = text
	w.statusWarn = warn
}

func (w *slotWindow) update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		w.quit = true
		return
	}
	if !HotkeysEnabled(w) {
		return
	}
	area := listArea(w.width, w.height)
	visible := visibleRows(area)

	if rl.IsKeyPressed(rl.KeyDown) {
		w.cursor = wrapIndex(w.cursor+1, len(w.rows))
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		w.cursor = wrapIndex(w.cursor-1, len(w.rows))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && len(w.rows) > 0 {
		w.offset = max(0, min(w.offset-int(wheel), len(w.rows)-visible))
		w.cursor = max(w.offset, min(w.cursor, w.offset+visible-1))
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if i := rowAt(area, min(visible, len(w.rows)-w.offset), rl.GetMousePosition()); i >= 0 {
			w.cursor = w.offset + i
		}
	}
	w.offset = scrollOffset(w.offset, w.cursor, visible, len(w.rows))

	switch {
	case rl.IsKeyPressed(rl.KeyTab):
		if w.flow == slots.FlowSave {
			w.flow = slots.FlowLoad
		} else {
			w.flow = slots.FlowSave
		}
		w.setStatus("", false)
		w.refresh()
	case rl.IsKeyPressed(rl.KeyF5):
		w.refresh()
	case ShiftKeyPressed(rl.KeyD):
		w.deleteSelected()
	case rl.IsKeyPressed(rl.KeyA):
		w.start(actionAutosave, 0)
	case rl.IsKeyPressed(rl.KeyEnter):
		w.selectRow()
	}
}

func (w *slotWindow) selectRow() {
	if len(w.rows) == 0 {
		return
	}
	row := w.rows[w.cursor]
	if !row.Enabled {
		if w.flow == slots.FlowSave {
			w.setStatus(row.Label.Text+" is reserved for autosaves.", true)
		} else {
			w.setStatus(row.Label.Text+" is empty.", true)
		}
		return
	}
	if w.flow == slots.FlowSave {
		w.start(actionSave, row.ID)
		return
	}
	w.start(actionLoad, row.ID)
}

func (w *slotWindow) deleteSelected() {
	if len(w.rows) == 0 {
		return
	}
	row := w.rows[w.cursor]
	if !row.Exists {
		w.setStatus(w.app.Layout.Title(row.ID)+" is empty.", true)
		return
	}
	w.start(actionDelete, row.ID)
}

// start runs the slot action off the draw loop. The result comes back
// through resultCh.
func (w *slotWindow) start(kind actionKind, slot slots.SlotID) {
	w.busy = true
	w.setStatus("Working…", false)
	a := w.app
	go func() {
		w.resultCh <- runAction(context.Background(), a, kind, slot)
	}()
}

func runAction(ctx context.Context, a *app.App, kind actionKind, slot slots.SlotID) actionResult {
	res := actionResult{kind: kind, slot: slot}
	switch kind {
	case actionAutosave:
		res.autosave, res.err = a.Autosave(ctx)
		res.slot = res.autosave.Slot
	case actionSave:
		res.err = a.ManualSave(ctx, slot)
	case actionLoad:
		res.err = a.Load(ctx, slot)
	case actionDelete:
		res.err = a.Saves.Delete(ctx, slot)
	}
	return res
}

func (w *slotWindow) pollResult() {
	select {
	case res := <-w.resultCh:
		w.busy = false
		text, warn := describeResult(w.app, res)
		w.setStatus(text, warn)
		if res.err != nil {
			logging.Debug("gui action failed", "slot", res.slot, "err", res.err)
		}
		w.refresh()
	default:
	}
}

func describeResult(a *app.App, res actionResult) (string, bool) {
	title := a.Layout.Title(res.slot)
	switch {
	case res.kind == actionAutosave && res.err != nil:
		return "Autosave skipped: " + res.err.Error(), true
	case res.kind == actionAutosave:
		return a.Scene.Status(), res.autosave.State == slots.StateFailed
	case errors.Is(res.err, slots.ErrRestrictedSlot):
		return title + " is reserved for autosaves.", true
	case errors.Is(res.err, saverepo.ErrSlotEmpty):
		return title + " is empty.", true
	case res.err != nil:
		return fmt.Sprintf("%s failed: %v", title, res.err), true
	case res.kind == actionSave:
		return "Saved to " + title, false
	case res.kind == actionLoad:
		return "Loaded " + title + ". " + a.State.Summary(), false
	default:
		return "Deleted " + title, false
	}
}

func (w *slotWindow) draw() {
	tabW := float32(140)
	saveTab, loadTab := uitheme.TabIdle, uitheme.TabIdle
	heading := "Load"
	if w.flow == slots.FlowSave {
		saveTab = uitheme.TabActive
		heading = "Save"
	} else {
		loadTab = uitheme.TabActive
	}
	summary, log := w.infoLines()
	uitheme.DrawHeader(heading, int32(listInset), 24)
	uitheme.DrawHintText(summary, int32(listInset), 66)
	right := float32(w.width) - listInset
	uitheme.DrawTab(rl.NewRectangle(right-2*tabW-8, 24, tabW, uitheme.TabHeight), saveTab, "Save")
	uitheme.DrawTab(rl.NewRectangle(right-tabW, 24, tabW, uitheme.TabHeight), loadTab, "Load")

	area := listArea(w.width, w.height)
	uitheme.DrawPanel(area, uitheme.PanelStandard)
	visible := visibleRows(area)
	for i := 0; i < visible && w.offset+i < len(w.rows); i++ {
		idx := w.offset + i
		row := w.rows[idx]
		autosave := w.app.Layout.IsAutosaveSlot(row.ID)
		uitheme.DrawListItem(rowRect(area, i), itemState(row, idx == w.cursor), listItem(row, autosave))
	}

	footY := area.Y + area.Height + 16
	uitheme.DrawDivider(listInset, footY, float32(w.width)-listInset, footY)
	uitheme.DrawStatus(w.status, int32(listInset), int32(footY)+12, w.statusWarn)
	uitheme.DrawHintText("Enter select   A autosave   Tab save/load   Shift+D delete   F5 refresh   Esc quit", int32(listInset), int32(footY)+44)
	for i, line := range log {
		uitheme.DrawHintText(line, int32(listInset), int32(footY)+76+int32(i)*uitheme.LineHeight(uitheme.Type.Small))
	}
}

// infoLines is the game summary and the tail of the scene log. Both may be
// read while a slot action is still running.
func (w *slotWindow) infoLines() (string, []string) {
	return w.app.State.Summary(), w.app.Scene.Messages(messageLines)
}
