// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clientsearch

import (
	"sync"
	"time"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// debounceInterval is how long the session waits after the last keystroke
// before running the search. Tests shrink it.
var debounceInterval = 150 * time.Millisecond

// State is the session's position in the Idle -> Debouncing -> Rendered
// cycle.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateRendered
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// Focus targets outside the result list.
const (
	// FocusInput means the query input holds focus.
	FocusInput = -1
	// FocusNone means neither the input nor any result holds focus.
	FocusNone = -2
)

// Session drives interactive search: keystrokes restart a single-slot
// debounce timer, and only the query current when the timer fires is
// searched. Superseded timers are cancelled, never executed.
type Session struct {
	mu      sync.Mutex
	index   *Index
	state   State
	query   string
	results []types.SearchResult
	focus   int
	timer   *time.Timer
	gen     uint64
}

// NewSession creates an idle session with input focus, searching against
// ix.
func NewSession(ix *Index) *Session {
	return &Session{index: ix, state: StateIdle, focus: FocusInput}
}

// Keystroke records the input's current value and restarts the debounce
// timer. Any pending timer is cancelled first, so at most one search is
// ever scheduled.
func (s *Session) Keystroke(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query
	s.focus = FocusInput
	s.stopTimerLocked()
	s.state = StateDebouncing
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(debounceInterval, func() { s.fire(gen) })
}

func (s *Session) fire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.state != StateDebouncing {
		// Superseded or cancelled while the callback was in flight.
		return
	}
	s.results = s.index.Search(s.query)
	s.state = StateRendered
}

// Blur handles focus moving outside both the input and the result list:
// the display clears but the query text is kept.
func (s *Session) Blur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRendered {
		return
	}
	s.results = nil
	s.focus = FocusNone
	s.state = StateIdle
}

// Cancel is the explicit escape signal: the session goes idle immediately,
// pending timers are dropped, and input focus is removed.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.gen++
	s.results = nil
	s.focus = FocusNone
	s.state = StateIdle
}

// FocusNext moves focus down the rendered result list: to the next result,
// or to the first if none is focused. It never re-runs the search.
func (s *Session) FocusNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRendered || len(s.results) == 0 {
		return
	}
	if s.focus < 0 || s.focus >= len(s.results)-1 {
		if s.focus < 0 {
			s.focus = 0
		}
		return
	}
	s.focus++
}

// FocusPrev moves focus up the list, returning focus to the query input
// when already at the first result.
func (s *Session) FocusPrev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRendered {
		return
	}
	switch {
	case s.focus == 0:
		s.focus = FocusInput
	case s.focus > 0:
		s.focus--
	}
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Query returns the input's current text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Results returns the rendered result list, empty unless the session is
// in the rendered state.
func (s *Session) Results() []types.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Focus reports the focused result's position, or FocusInput / FocusNone.
func (s *Session) Focus() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focus
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
