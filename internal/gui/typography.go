package gui

import (
	"math"
	"os"
	"path/filepath"

	uitheme "github.com/appengine-ltd/autosave-slots/internal/ui/theme"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type typographyState struct {
	base     rl.Font
	ownsBase bool
}

var uiType typographyState

var fontCandidates = []string{
	filepath.Join("assets", "fonts", "NotoSansKR-Regular.ttf"),
	filepath.Join("assets", "fonts", "NotoSans-Regular.ttf"),
	filepath.Join("assets", "fonts", "Inter-Regular.ttf"),
}

// initTypography loads the first available font and points the theme's
// text helpers at it. The raylib default font is the fallback.
func initTypography() {
	uiType.base = rl.GetFontDefault()
	if f, ok := loadFontFromCandidates(fontCandidates, 36, koreanCodepoints()); ok {
		uiType.base = f
		uiType.ownsBase = true
	}
	rl.SetTextureFilter(uiType.base.Texture, rl.FilterBilinear)
	uitheme.SetTextRenderer(drawText, measureText)
}

func shutdownTypography() {
	if uiType.ownsBase && uiType.base.Texture.ID != 0 {
		rl.UnloadFont(uiType.base)
	}
	uiType = typographyState{}
}

func loadFontFromCandidates(candidates []string, fontSize int32, codepoints []rune) (rl.Font, bool) {
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		font := rl.LoadFontEx(path, fontSize, codepoints, int32(len(codepoints)))
		if font.Texture.ID == 0 {
			continue
		}
		return font, true
	}
	return rl.Font{}, false
}

// koreanCodepoints is ASCII plus the Hangul needed by the Korean labels.
func koreanCodepoints() []rune {
	runes := make([]rune, 0, 128)
	for r := rune(32); r < 127; r++ {
		runes = append(runes, r)
	}
	for _, r := range "자동저장파일" {
		runes = append(runes, r)
	}
	return runes
}

func drawText(text string, x, y, fontSize int32, clr rl.Color) {
	if uiType.base.Texture.ID == 0 {
		rl.DrawText(text, x, y, fontSize, clr)
		return
	}
	rl.DrawTextEx(uiType.base, text, rl.Vector2{X: float32(x), Y: float32(y)}, float32(fontSize), 1, clr)
}

func measureText(text string, fontSize int32) int32 {
	if uiType.base.Texture.ID == 0 {
		return int32(rl.MeasureText(text, fontSize))
	}
	return int32(math.Round(float64(rl.MeasureTextEx(uiType.base, text, float32(fontSize), 1).X)))
}
