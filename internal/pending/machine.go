// Package pending holds a delete request accepted from a notification or app
// link until the app is foregrounded and a live UI can confirm it.
package pending

import (
	"strings"
	"sync"
	"time"
)

type State string

const (
	StateIdle               State = "idle"
	StateAwaitingForeground State = "awaiting_foreground"
)

// Machine keeps at most one task id awaiting confirmation. A second delete
// request overwrites the first (last-writer-wins). Foregrounding consumes the
// pending id and issues exactly one prompt regardless of how many further
// foreground/background cycles happen before the user answers.
//
// The machine does not survive process termination; a cold launch rebuilds
// its state from the launch-response replay instead.
type Machine struct {
	mu      sync.Mutex
	pending string

	prompt   func(taskID string)
	debounce time.Duration
}

// NewMachine wires the confirmation prompt. debounce delays the prompt after
// foregrounding so the UI can finish mounting; zero prompts synchronously.
func NewMachine(prompt func(taskID string), debounce time.Duration) *Machine {
	return &Machine{prompt: prompt, debounce: debounce}
}

// RequestDelete buffers a delete signal for the given task, replacing any
// earlier unconfirmed one.
func (m *Machine) RequestDelete(taskID string) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return
	}
	m.mu.Lock()
	m.pending = taskID
	m.mu.Unlock()
}

// Foreground reports that the app became active. The transition back to Idle
// happens here, before the prompt is answered, so repeated transitions never
// re-prompt for the same request.
func (m *Machine) Foreground() {
	m.mu.Lock()
	taskID := m.pending
	m.pending = ""
	m.mu.Unlock()

	if taskID == "" || m.prompt == nil {
		return
	}
	if m.debounce <= 0 {
		m.prompt(taskID)
		return
	}
	time.AfterFunc(m.debounce, func() { m.prompt(taskID) })
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == "" {
		return StateIdle
	}
	return StateAwaitingForeground
}

func (m *Machine) PendingTaskID() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending, m.pending != ""
}
