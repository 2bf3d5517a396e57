package gui

import (
	"github.com/appengine-ltd/autosave-slots/internal/app"
	uitheme "github.com/appengine-ltd/autosave-slots/internal/ui/theme"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	listTop    = float32(120)
	listBottom = float32(150)
	listInset  = float32(20)
)

// listArea is the panel that holds the slot rows for a window size.
func listArea(width, height int32) rl.Rectangle {
	w := float32(width) - 2*listInset
	h := float32(height) - listTop - listBottom
	return rl.NewRectangle(listInset, listTop, max(w, 0), max(h, 0))
}

// visibleRows is how many rows fit inside area.
func visibleRows(area rl.Rectangle) int {
	inner := area.Height - 2*uitheme.PaddingS
	n := int((inner + uitheme.RowGap) / (uitheme.RowHeight + uitheme.RowGap))
	return max(n, 1)
}

// rowRect is the rectangle of the i-th visible row.
func rowRect(area rl.Rectangle, i int) rl.Rectangle {
	y := area.Y + uitheme.PaddingS + float32(i)*(uitheme.RowHeight+uitheme.RowGap)
	return rl.NewRectangle(area.X+uitheme.PaddingS, y, area.Width-2*uitheme.PaddingS, uitheme.RowHeight)
}

// rowAt maps a point to a visible row index, or -1.
func rowAt(area rl.Rectangle, rows int, p rl.Vector2) int {
	for i := 0; i < rows; i++ {
		if rl.CheckCollisionPointRec(p, rowRect(area, i)) {
			return i
		}
	}
	return -1
}

// scrollOffset keeps cursor within [offset, offset+visible).
func scrollOffset(offset, cursor, visible, total int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+visible {
		offset = cursor - visible + 1
	}
	return max(0, min(offset, total-visible))
}

func itemState(row app.SlotRow, selected bool) uitheme.ListItemState {
	switch {
	case row.Label.Disabled && selected:
		return uitheme.ListItemDisabledSelected
	case row.Label.Disabled:
		return uitheme.ListItemDisabled
	case selected:
		return uitheme.ListItemSelected
	default:
		return uitheme.ListItemNormal
	}
}

func listItem(row app.SlotRow, autosave bool) uitheme.ListItem {
	detail := "Empty"
	if row.Exists {
		detail = row.SavedAt.Local().Format("2006-01-02 15:04")
	}
	return uitheme.ListItem{Label: row.Label.Text, Detail: detail, Autosave: autosave}
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
