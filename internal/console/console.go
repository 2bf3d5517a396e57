// Package console runs a line-oriented command loop over an app.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/appengine-ltd/autosave-slots/internal/app"
	"github.com/appengine-ltd/autosave-slots/internal/game"
	"github.com/appengine-ltd/autosave-slots/internal/parser"
	"github.com/appengine-ltd/autosave-slots/internal/saverepo"
	"github.com/appengine-ltd/autosave-slots/internal/slots"
)

const (
	defaultTravelHours = 2
	logLines           = 10
)

type Console struct {
	app      *app.App
	parser   *parser.Parser
	out      io.Writer
	lastSlot int
}

func New(a *app.App, out io.Writer) *Console {
	return &Console{app: a, parser: parser.New(), out: out}
}

// Run reads commands from in until quit or EOF.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.printf("%s\n", c.app.State.Summary())
	c.printf("> ")
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		quit := c.Exec(ctx, scanner.Text())
		if quit {
			return nil
		}
		c.printf("> ")
	}
	return scanner.Err()
}

// Exec handles one input line and reports whether the loop should stop.
func (c *Console) Exec(ctx context.Context, line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	intent := c.parser.Parse(parser.ParseContext{
		LastSlot:     c.lastSlot,
		Destinations: game.Destinations,
	}, line)
	if intent.Clarify != nil {
		c.printf("%s\n", intent.Clarify.Prompt)
		for _, opt := range intent.Clarify.Options {
			c.printf("  %s\n", parser.IntentToCommandString(opt))
		}
		return false
	}

	switch intent.Verb {
	case "help":
		c.printf("Commands: %s\n", strings.Join(c.parser.Verbs(), ", "))
	case "quit":
		return true
	case "status":
		c.status()
	case "list":
		c.list(ctx)
	case "log":
		c.log()
	case "autosave":
		c.autosave(ctx)
	case "save":
		c.save(ctx, slots.SlotID(intent.Slot))
	case "load":
		c.load(ctx, slots.SlotID(intent.Slot))
	case "go":
		c.travel(ctx, strings.Join(intent.Args, " "))
	case "wait":
		hours := 1
		if intent.Quantity != nil {
			hours = intent.Quantity.N
		}
		c.app.State.Advance(float64(hours))
		c.printf("%s\n", c.app.State.Summary())
	default:
		c.printf("Nothing happens.\n")
	}
	return false
}

func (c *Console) status() {
	c.printf("%s\n", c.app.State.Summary())
	idx, ok := c.app.Allocator.CurrentIndex()
	if ok {
		c.printf("Last autosave: %s, next: %s\n", c.app.Layout.Title(idx), c.app.Layout.Title(c.app.Allocator.NextSlot()))
	}
}

func (c *Console) list(ctx context.Context) {
	rows, err := c.app.Rows(ctx, slots.FlowLoad)
	if err != nil {
		c.printf("List failed: %v\n", err)
		return
	}
	for _, row := range rows {
		when := "empty"
		if row.Exists {
			when = row.SavedAt.Local().Format("2006-01-02 15:04:05")
		}
		c.printf("%3d  %-14s %s\n", row.ID, row.Label.Text, when)
	}
}

func (c *Console) log() {
	msgs := c.app.Scene.Messages(logLines)
	if len(msgs) == 0 {
		c.printf("Nothing has happened yet.\n")
		return
	}
	for _, m := range msgs {
		c.printf("%s\n", m)
	}
}

func (c *Console) autosave(ctx context.Context) {
	res, err := c.app.Autosave(ctx)
	if err != nil {
		c.printf("Autosave skipped: %v\n", err)
		return
	}
	c.printf("%s\n", c.app.Scene.Status())
	if res.State == slots.StateCommitted {
		c.lastSlot = int(res.Slot)
	}
}

func (c *Console) save(ctx context.Context, slot slots.SlotID) {
	if int(slot) > c.app.Layout.TotalSlotCount() {
		c.printf("There is no slot %d.\n", slot)
		return
	}
	err := c.app.ManualSave(ctx, slot)
	switch {
	case errors.Is(err, slots.ErrRestrictedSlot):
		c.printf("%s is reserved for autosaves.\n", c.app.Layout.Title(slot))
	case err != nil:
		c.printf("Save failed: %v\n", err)
	default:
		c.lastSlot = int(slot)
		c.printf("Saved to %s\n", c.app.Layout.Title(slot))
	}
}

func (c *Console) load(ctx context.Context, slot slots.SlotID) {
	err := c.app.Load(ctx, slot)
	switch {
	case errors.Is(err, saverepo.ErrSlotEmpty):
		c.printf("%s is empty.\n", c.app.Layout.Title(slot))
	case err != nil:
		c.printf("Load failed: %v\n", err)
	default:
		c.lastSlot = int(slot)
		c.printf("Loaded %s. %s\n", c.app.Layout.Title(slot), c.app.State.Summary())
	}
}

func (c *Console) travel(ctx context.Context, to string) {
	triggered, res, err := c.app.Travel(ctx, to, defaultTravelHours)
	if err != nil {
		c.printf("Autosave skipped: %v\n", err)
		return
	}
	if !triggered {
		c.printf("You are already there.\n")
		return
	}
	c.printf("%s\n", c.app.State.Summary())
	c.printf("%s\n", c.app.Scene.Status())
	if res.State == slots.StateCommitted {
		c.lastSlot = int(res.Slot)
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
