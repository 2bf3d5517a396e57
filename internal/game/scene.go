package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/appengine-ltd/autosave-slots/internal/slots"
)

const maxSceneMessages = 260

// Scene is the active map scene. It receives autosave outcomes and keeps a
// short message log for the UI.
type Scene struct {
	layout slots.Layout

	mu       sync.Mutex
	status   string
	messages []string
}

func NewScene(layout slots.Layout) *Scene {
	return &Scene{layout: layout}
}

func (s *Scene) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Messages returns the most recent n log lines, oldest first. n <= 0
// returns the whole log.
func (s *Scene) Messages(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := 0
	if n > 0 && len(s.messages) > n {
		start = len(s.messages) - n
	}
	return append([]string(nil), s.messages[start:]...)
}

func (s *Scene) OnAutosaveSuccess(slot slots.SlotID) {
	s.report("Autosaved to " + s.layout.Title(slot))
}

func (s *Scene) OnAutosaveFailure(slot slots.SlotID, err error) {
	s.report(fmt.Sprintf("Autosave to %s failed: %v", s.layout.Title(slot), err))
}

// Note records a host event, such as a manual save or a load, in the log
// without changing the autosave status line.
func (s *Scene) Note(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendMessageLocked(message)
}

func (s *Scene) report(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.appendMessageLocked(status)
}

func (s *Scene) appendMessageLocked(message string) {
	line := strings.TrimSpace(message)
	if line == "" {
		return
	}
	formatted := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), line)
	s.messages = append(s.messages, formatted)
	if len(s.messages) > maxSceneMessages {
		s.messages = append([]string(nil), s.messages[len(s.messages)-maxSceneMessages:]...)
	}
}
