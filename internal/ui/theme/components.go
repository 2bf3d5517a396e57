package theme

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	PaddingXS = float32(8)
	PaddingS  = float32(12)
	PaddingM  = float32(18)
	PaddingL  = float32(24)

	CornerRadius   = float32(0.08)
	CornerSegments = int32(8)

	BorderWidth      = float32(1.2)
	BorderWidthFocus = float32(2.0)
	RowHeight        = float32(40)
	RowGap           = float32(6)
	TabHeight        = float32(44)
	AccentStripWidth = float32(4)
)

type PanelVariant int

const (
	PanelStandard PanelVariant = iota
	PanelLifted
	PanelMuted
)

type TabState int

const (
	TabIdle TabState = iota
	TabActive
)

type ListItemState int

const (
	ListItemNormal ListItemState = iota
	ListItemSelected
	ListItemDisabled
	// ListItemDisabledSelected is a disabled row under the cursor. It keeps
	// the grey text but shows the focus outline.
	ListItemDisabledSelected
)

// ListItem is one row of a slot list.
type ListItem struct {
	Label    string
	Detail   string
	Autosave bool
}

func DrawPanel(rect rl.Rectangle, variant PanelVariant) {
	fill := Panel
	stroke := Border
	strokeWidth := BorderWidth

	switch variant {
	case PanelLifted:
		fill = PanelRaised
		stroke = mix(Border, Accent, 0.35)
		strokeWidth = 1.4
	case PanelMuted:
		fill = DisabledPanel
		stroke = rl.Fade(Border, 0.75)
	}

	rl.DrawRectangleRounded(rect, CornerRadius, CornerSegments, fill)
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius, CornerSegments, strokeWidth, stroke)
}

// DrawTab draws one of the save/load mode tabs.
func DrawTab(rect rl.Rectangle, state TabState, text string) {
	fill := Panel
	stroke := Border
	label := TextSecondary
	strokeWidth := BorderWidth
	if state == TabActive {
		fill = PanelRaised
		stroke = Accent
		label = TextPrimary
		strokeWidth = BorderWidthFocus
	}

	rl.DrawRectangleRounded(rect, CornerRadius, CornerSegments, fill)
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius, CornerSegments, strokeWidth, stroke)

	size := Type.Body
	labelW := measureText(text, size)
	textX := int32(rect.X + (rect.Width-float32(labelW))/2)
	textY := int32(rect.Y + (rect.Height-float32(size))/2 - 1)
	drawText(text, textX, textY, size, label)
}

// ListItemColors returns the fill and text colours for a row state.
func ListItemColors(state ListItemState) (fill, label, detail rl.Color) {
	switch state {
	case ListItemSelected:
		return PanelRaised, TextPrimary, Accent
	case ListItemDisabled, ListItemDisabledSelected:
		return DisabledPanel, DisabledText, DisabledText
	default:
		return rl.Fade(PanelRaised, 0.45), TextPrimary, TextSecondary
	}
}

func DrawListItem(rect rl.Rectangle, state ListItemState, item ListItem) {
	fill, left, right := ListItemColors(state)
	stroke := rl.Fade(Border, 0.9)
	strokeWidth := BorderWidth
	focused := state == ListItemSelected || state == ListItemDisabledSelected
	if focused {
		stroke = Accent
		strokeWidth = BorderWidthFocus
	}

	rl.DrawRectangleRounded(rect, CornerRadius, CornerSegments, fill)
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius, CornerSegments, strokeWidth, stroke)

	strip := rl.Color{}
	switch {
	case focused:
		strip = Accent
	case item.Autosave:
		strip = rl.Fade(AutosaveTint, 0.8)
	}
	if strip.A > 0 {
		stripRect := rl.NewRectangle(rect.X+1, rect.Y+2, AccentStripWidth, rect.Height-4)
		if stripRect.Height > 0 {
			rl.DrawRectangleRec(stripRect, strip)
		}
	}

	textY := int32(rect.Y + (rect.Height-float32(Type.Body))/2)
	if item.Label != "" {
		drawText(item.Label, int32(rect.X+PaddingM), textY, Type.Body, left)
	}
	if item.Detail != "" {
		rightW := measureText(item.Detail, Type.Body)
		rightX := int32(rect.X + rect.Width - PaddingM - float32(rightW))
		drawText(item.Detail, rightX, textY, Type.Body, right)
	}
}

func DrawHeader(text string, x, y int32) {
	if text == "" {
		return
	}
	drawText(text, x, y, Type.Header, TextPrimary)
	w := measureText(text, Type.Header)
	lineW := max(int32(float32(w)*0.6), 44)
	drawLine(float32(x), float32(y+Type.Header+6), float32(x+lineW), float32(y+Type.Header+6), 2.0, Accent)
}

func DrawDivider(x1, y1, x2, y2 float32) {
	drawLine(x1, y1, x2, y2, 1.0, rl.Fade(Divider, 0.95))
}

func DrawHintText(text string, x, y int32) {
	if text == "" {
		return
	}
	drawText(text, x, y, Type.Small, TextMuted)
}

// DrawStatus draws a one-line status message; warn switches to amber.
func DrawStatus(text string, x, y int32, warn bool) {
	if text == "" {
		return
	}
	clr := TextSecondary
	if warn {
		clr = WarningAmber
	}
	drawText(text, x, y, Type.Small, clr)
}

func drawLine(x1, y1, x2, y2, thickness float32, clr rl.Color) {
	rl.DrawLineEx(rl.NewVector2(x1, y1), rl.NewVector2(x2, y2), thickness, clr)
}

func mix(a, b rl.Color, t float32) rl.Color {
	t = max(0, min(t, 1))
	inv := 1.0 - t
	return rl.NewColor(
		uint8(float32(a.R)*inv+float32(b.R)*t),
		uint8(float32(a.G)*inv+float32(b.G)*t),
		uint8(float32(a.B)*inv+float32(b.B)*t),
		uint8(float32(a.A)*inv+float32(b.A)*t),
	)
}
