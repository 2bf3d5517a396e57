// Package theme holds the raylib palette and drawing helpers for the save
// ledger window.
package theme

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TextDrawFunc renders text with the window's active font.
type TextDrawFunc func(text string, x, y, fontSize int32, clr rl.Color)

// TextMeasureFunc reports text width in pixels for the active font.
type TextMeasureFunc func(text string, fontSize int32) int32

var (
	textDrawFn TextDrawFunc = func(text string, x, y, fontSize int32, clr rl.Color) {
		rl.DrawText(text, x, y, fontSize, clr)
	}
	textMeasureFn TextMeasureFunc = func(text string, fontSize int32) int32 {
		return int32(rl.MeasureText(text, fontSize))
	}
)

// SetTextRenderer routes component text through the window's font. Nil
// arguments keep the raylib default.
func SetTextRenderer(draw TextDrawFunc, measure TextMeasureFunc) {
	if draw != nil {
		textDrawFn = draw
	}
	if measure != nil {
		textMeasureFn = measure
	}
}

// LineHeight is the vertical advance for one line at size.
func LineHeight(size int32) int32 {
	return int32(math.Round(float64(max(size, 1)) * float64(Type.LineFactor)))
}

func drawText(text string, x, y, fontSize int32, clr rl.Color) {
	textDrawFn(text, x, y, fontSize, clr)
}

func measureText(text string, fontSize int32) int32 {
	return textMeasureFn(text, fontSize)
}
