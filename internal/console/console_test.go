package console

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/autosave-slots/internal/app"
	"github.com/appengine-ltd/autosave-slots/internal/config"
)

func newTestConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.SaveDir = filepath.Join(dir, "saves")
	cfg.StorePath = filepath.Join(dir, "config.json")
	a, err := app.Boot(cfg, 9)
	require.NoError(t, err)
	var out bytes.Buffer
	return New(a, &out), &out
}

func TestRunScript(t *testing.T) {
	c, out := newTestConsole(t)
	script := strings.Join([]string{
		"save 3",
		"save 8",
		"autosave",
		"go forst",
		"load 2",
		"quit",
		"save 9",
	}, "\n")

	require.NoError(t, c.Run(context.Background(), strings.NewReader(script)))

	got := out.String()
	require.Contains(t, got, "Autosave 3 is reserved for autosaves.")
	require.Contains(t, got, "Saved to File 3")
	require.Contains(t, got, "Autosaved to Autosave 2")
	require.Contains(t, got, "Autosaved to Autosave 3")
	require.Contains(t, got, "Loaded Autosave 2.")
	require.NotContains(t, got, "File 4")
}

func TestLoadEmptySlot(t *testing.T) {
	c, out := newTestConsole(t)
	c.Exec(context.Background(), "load 12")
	require.Contains(t, out.String(), "File 7 is empty.")
}

func TestSaveOutOfRange(t *testing.T) {
	c, out := newTestConsole(t)
	c.Exec(context.Background(), "save 26")
	require.Contains(t, out.String(), "There is no slot 26.")
}

func TestLoadLastAfterSave(t *testing.T) {
	c, out := newTestConsole(t)
	ctx := context.Background()
	c.Exec(ctx, "save 10")
	out.Reset()
	c.Exec(ctx, "load last")
	require.Contains(t, out.String(), "Loaded File 5.")
}

func TestClarifyPrinted(t *testing.T) {
	c, out := newTestConsole(t)
	c.Exec(context.Background(), "save")
	require.Contains(t, out.String(), "save needs a slot number.")
}

func TestStatusShowsRotation(t *testing.T) {
	c, out := newTestConsole(t)
	c.Exec(context.Background(), "status")
	require.Contains(t, out.String(), "Last autosave: Autosave 1, next: Autosave 2")
}

func TestLogShowsSceneMessages(t *testing.T) {
	c, out := newTestConsole(t)
	ctx := context.Background()
	c.Exec(ctx, "log")
	require.Contains(t, out.String(), "Nothing has happened yet.")

	c.Exec(ctx, "autosave")
	c.Exec(ctx, "save 9")
	out.Reset()
	c.Exec(ctx, "history")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasSuffix(lines[0], "Autosaved to Autosave 2"))
	require.True(t, strings.HasSuffix(lines[1], "Saved to File 4"))
}
