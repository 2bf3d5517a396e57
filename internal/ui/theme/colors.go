package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// Palette for the save ledger window.
var (
	BG            = rl.NewColor(0x12, 0x16, 0x1C, 255) // #12161C
	Panel         = rl.NewColor(0x1A, 0x20, 0x28, 255) // #1A2028
	PanelRaised   = rl.NewColor(0x22, 0x2A, 0x34, 255) // #222A34
	Border        = rl.NewColor(0x30, 0x3B, 0x47, 255) // #303B47
	Divider       = rl.NewColor(0x27, 0x30, 0x3A, 255) // #27303A
	TextPrimary   = rl.NewColor(0xE6, 0xE4, 0xDE, 255) // #E6E4DE
	TextSecondary = rl.NewColor(0xA2, 0xAB, 0xB4, 255) // #A2ABB4
	TextMuted     = rl.NewColor(0x78, 0x80, 0x88, 255) // #788088
	Accent        = rl.NewColor(0x4F, 0x9D, 0x69, 255) // #4F9D69
	AutosaveTint  = rl.NewColor(0x3C, 0x6E, 0xA8, 255) // #3C6EA8
	WarningAmber  = rl.NewColor(0xC1, 0x8B, 0x2F, 255) // #C18B2F
	Danger        = rl.NewColor(0xB8, 0x4A, 0x3A, 255) // #B84A3A
	DisabledPanel = rl.NewColor(0x15, 0x19, 0x1F, 255)
	// DisabledText is the grey used for slots the current flow cannot pick.
	DisabledText = TextMuted
)
