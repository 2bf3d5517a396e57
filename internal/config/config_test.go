package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	layout, err := cfg.Layout()
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if layout.TotalSlotCount() != 25 {
		t.Fatalf("expected 25 slots, got %d", layout.TotalSlotCount())
	}
	if got := layout.Title(1); got != "Autosave 1" {
		t.Fatalf("unexpected autosave title %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	body := `
max_savefiles = 10
num_save_slots = 3
autosave_text = "Auto"
save_dir = "data/saves"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxSavefiles != 10 || cfg.NumSaveSlots != 3 || cfg.SaveDir != "data/saves" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.StorePath != DefaultStorePath {
		t.Fatalf("expected default store path, got %q", cfg.StorePath)
	}
	layout, err := cfg.Layout()
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if got := layout.Title(3); got != "Auto 3" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := layout.Title(13); got != "File 10" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestKoreanLabels(t *testing.T) {
	cfg, err := Parse(`lang = "ko"`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	layout, err := cfg.Layout()
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if got := layout.Title(2); got != "자동저장 2" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{body: "max_savefiles = 0", want: "max_savefiles"},
		{body: "max_savefiles = 51", want: "max_savefiles"},
		{body: "num_save_slots = 0", want: "num_save_slots"},
		{body: "num_save_slots = 1000", want: "num_save_slots"},
		{body: "num_save_slots = 9223372036854775807", want: "num_save_slots"},
		{body: `num_save_slots = "five"`, want: "parse settings"},
		{body: `lang = "fr"`, want: "lang"},
		{body: `save_dir = " "`, want: "save_dir"},
		{body: `slots = 4`, want: "unknown settings: slots"},
	}
	for _, tc := range tests {
		_, err := Parse(tc.body)
		if err == nil {
			t.Fatalf("expected %q to be rejected", tc.body)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("error for %q = %v, want mention of %q", tc.body, err, tc.want)
		}
	}
}

func TestAutosaveSlotUpperBound(t *testing.T) {
	cfg, err := Parse("num_save_slots = 999\nmax_savefiles = 50")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	layout, err := cfg.Layout()
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if layout.TotalSlotCount() != 1049 {
		t.Fatalf("expected 1049 slots, got %d", layout.TotalSlotCount())
	}
	if layout.IsSaveAllowed(999) || !layout.IsSaveAllowed(1000) {
		t.Fatalf("manual range must start right after slot 999")
	}
}
