// Package slots decides which save slot an autosave writes to and which
// slots a manual save may target.
//
// The slot space is split into two contiguous ranges:
//
//	autosave: [1, NumSaveSlots]
//	manual:   [NumSaveSlots+1, NumSaveSlots+MaxSavefiles]
//
// Autosaves rotate through the first range in order. Manual saves are only
// accepted in the second range.
package slots

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotID identifies a save slot. Valid ids start at 1.
type SlotID int

// AutosaveSlotStart is the first slot of the autosave range.
const AutosaveSlotStart SlotID = 1

const (
	MinSavefiles = 1
	MaxSavefiles = 50

	MinNumSaveSlots = 1
	MaxNumSaveSlots = 999

	DefaultMaxSavefiles = 20
	DefaultNumSaveSlots = 5
	DefaultAutosaveText = "Autosave"
	DefaultFileText     = "File"
)

type LayoutOptions struct {
	MaxSavefiles int
	NumSaveSlots int
	AutosaveText string
	FileText     string
}

// Layout holds the fixed slot bounds and labels. It is immutable once built.
type Layout struct {
	maxSavefiles int
	numSaveSlots int
	autosaveText string
	fileText     string
}

func NewLayout(opts LayoutOptions) (Layout, error) {
	if opts.MaxSavefiles < MinSavefiles || opts.MaxSavefiles > MaxSavefiles {
		return Layout{}, fmt.Errorf("max savefiles must be between %d and %d, got %d", MinSavefiles, MaxSavefiles, opts.MaxSavefiles)
	}
	if opts.NumSaveSlots < MinNumSaveSlots || opts.NumSaveSlots > MaxNumSaveSlots {
		return Layout{}, fmt.Errorf("autosave slot count must be between %d and %d, got %d", MinNumSaveSlots, MaxNumSaveSlots, opts.NumSaveSlots)
	}
	autosaveText := strings.TrimSpace(opts.AutosaveText)
	if autosaveText == "" {
		autosaveText = DefaultAutosaveText
	}
	fileText := strings.TrimSpace(opts.FileText)
	if fileText == "" {
		fileText = DefaultFileText
	}
	return Layout{
		maxSavefiles: opts.MaxSavefiles,
		numSaveSlots: opts.NumSaveSlots,
		autosaveText: autosaveText,
		fileText:     fileText,
	}, nil
}

// DefaultLayout returns the 20 manual + 5 autosave layout.
func DefaultLayout() Layout {
	l, _ := NewLayout(LayoutOptions{MaxSavefiles: DefaultMaxSavefiles, NumSaveSlots: DefaultNumSaveSlots})
	return l
}

func (l Layout) MaxSavefiles() int { return l.maxSavefiles }
func (l Layout) NumSaveSlots() int { return l.numSaveSlots }

// TotalSlotCount is the number of slots shown by slot lists.
func (l Layout) TotalSlotCount() int {
	return l.maxSavefiles + l.numSaveSlots
}

// SlotIDForIndex maps a zero-based list row to its slot id. Autosave slots
// are listed like any other slot.
func (l Layout) SlotIDForIndex(index int) SlotID {
	return SlotID(index + 1)
}

func (l Layout) IsAutosaveSlot(id SlotID) bool {
	return id >= AutosaveSlotStart && int(id) <= l.numSaveSlots
}

// IsSaveAllowed reports whether a manual save may target id.
func (l Layout) IsSaveAllowed(id SlotID) bool {
	return int(id) > l.numSaveSlots
}

// Title is the label drawn for id. Manual slots are renumbered from 1.
func (l Layout) Title(id SlotID) string {
	if int(id) <= l.numSaveSlots {
		return l.autosaveText + " " + strconv.Itoa(int(id))
	}
	return l.fileText + " " + strconv.Itoa(int(id)-l.numSaveSlots)
}

type Label struct {
	Text     string
	Disabled bool
}

// LabelFor returns the label for id. While the manual-save flow is active
// a reserved slot keeps its autosave name but is drawn disabled.
func (l Layout) LabelFor(id SlotID, manualSaveContext bool) Label {
	if manualSaveContext && !l.IsSaveAllowed(id) {
		return Label{Text: l.autosaveText + " " + strconv.Itoa(int(id)), Disabled: true}
	}
	return Label{Text: l.Title(id)}
}

// Flow is the slot-list context the host is showing.
type Flow int

const (
	FlowLoad Flow = iota
	FlowSave
)

func (f Flow) String() string {
	switch f {
	case FlowSave:
		return "save"
	case FlowLoad:
		return "load"
	default:
		return "unknown"
	}
}

// IsEnabled combines the host's own enablement for id with the manual-save
// restriction. The restriction only applies to the save flow.
func (l Layout) IsEnabled(id SlotID, flow Flow, original bool) bool {
	if flow == FlowSave {
		return original && l.IsSaveAllowed(id)
	}
	return original
}

// NextAutosaveSlot returns the slot after current in the autosave rotation.
// A current value below 1 means no autosave has been recorded yet and is
// treated as start.
func NextAutosaveSlot(current SlotID, numSaveSlots int, start SlotID) SlotID {
	if numSaveSlots < 1 {
		return start
	}
	if current < 1 {
		current = start
	}
	next := SlotID(int(current)%numSaveSlots + 1)
	return max(start, min(next, SlotID(numSaveSlots)))
}
