// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clientsearch

import (
	"testing"
	"time"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

func newTestSession(t *testing.T, entries ...types.SearchIndexEntry) *Session {
	t.Helper()
	old := debounceInterval
	debounceInterval = 5 * time.Millisecond
	t.Cleanup(func() { debounceInterval = old })

	var ix Index
	ix.Load(entries)
	return NewSession(&ix)
}

func waitForState(t *testing.T, s *Session, want State) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if s.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state = %v, want %v", s.State(), want)
}

func TestSessionDebounceRenders(t *testing.T) {
	s := newTestSession(t,
		entry("2601.00001", "Memory Networks", "", nil, "", 5),
	)
	if s.State() != StateIdle {
		t.Fatalf("initial state = %v, want idle", s.State())
	}

	s.Keystroke("memory")
	if s.State() != StateDebouncing {
		t.Fatalf("state after keystroke = %v, want debouncing", s.State())
	}
	waitForState(t, s, StateRendered)

	results := s.Results()
	if len(results) != 1 || results[0].ID != "2601.00001" {
		t.Errorf("results = %v, want the memory entry", results)
	}
}

func TestSessionKeystrokeSupersedesPending(t *testing.T) {
	s := newTestSession(t,
		entry("2601.00001", "Memory Networks", "", nil, "", 5),
		entry("2601.00002", "Diffusion Models", "", nil, "", 5),
	)

	// Each keystroke cancels the previous timer; only the final query runs.
	s.Keystroke("memory")
	s.Keystroke("diffu")
	s.Keystroke("diffusion")
	waitForState(t, s, StateRendered)

	results := s.Results()
	if len(results) != 1 || results[0].ID != "2601.00002" {
		t.Errorf("results = %v, want only the diffusion entry", results)
	}
	if s.Query() != "diffusion" {
		t.Errorf("query = %q, want %q", s.Query(), "diffusion")
	}
}

func TestSessionKeystrokeWhileRenderedRestartsDebounce(t *testing.T) {
	s := newTestSession(t,
		entry("2601.00001", "Memory Networks", "", nil, "", 5),
	)
	s.Keystroke("memory")
	waitForState(t, s, StateRendered)

	s.Keystroke("memory net")
	if s.State() != StateDebouncing {
		t.Fatalf("state = %v, want debouncing after new keystroke", s.State())
	}
	waitForState(t, s, StateRendered)
}

func TestSessionCancel(t *testing.T) {
	s := newTestSession(t,
		entry("2601.00001", "Memory Networks", "", nil, "", 5),
	)
	s.Keystroke("memory")
	s.Cancel()

	if s.State() != StateIdle {
		t.Fatalf("state after cancel = %v, want idle", s.State())
	}
	if s.Focus() != FocusNone {
		t.Errorf("focus after cancel = %d, want FocusNone", s.Focus())
	}

	// The cancelled timer must never render.
	time.Sleep(20 * time.Millisecond)
	if s.State() != StateIdle || len(s.Results()) != 0 {
		t.Errorf("cancelled search still rendered: state=%v results=%v", s.State(), s.Results())
	}
}

func TestSessionBlurClearsDisplayKeepsQuery(t *testing.T) {
	s := newTestSession(t,
		entry("2601.00001", "Memory Networks", "", nil, "", 5),
	)
	s.Keystroke("memory")
	waitForState(t, s, StateRendered)

	s.Blur()
	if s.State() != StateIdle {
		t.Fatalf("state after blur = %v, want idle", s.State())
	}
	if len(s.Results()) != 0 {
		t.Errorf("results after blur = %v, want cleared", s.Results())
	}
	if s.Query() != "memory" {
		t.Errorf("query after blur = %q, want kept", s.Query())
	}
}

func TestSessionFocusCycling(t *testing.T) {
	s := newTestSession(t,
		entry("2601.00001", "Memory A", "", nil, "", 9),
		entry("2601.00002", "Memory B", "", nil, "", 7),
		entry("2601.00003", "Memory C", "", nil, "", 5),
	)
	s.Keystroke("memory")
	waitForState(t, s, StateRendered)

	if s.Focus() != FocusInput {
		t.Fatalf("initial focus = %d, want input", s.Focus())
	}

	s.FocusNext()
	if s.Focus() != 0 {
		t.Errorf("focus = %d, want first result", s.Focus())
	}
	s.FocusNext()
	s.FocusNext()
	if s.Focus() != 2 {
		t.Errorf("focus = %d, want last result", s.Focus())
	}
	// Down at the end stays put.
	s.FocusNext()
	if s.Focus() != 2 {
		t.Errorf("focus past end = %d, want 2", s.Focus())
	}

	s.FocusPrev()
	s.FocusPrev()
	if s.Focus() != 0 {
		t.Errorf("focus = %d, want first result", s.Focus())
	}
	// Up from the first result returns to the input.
	s.FocusPrev()
	if s.Focus() != FocusInput {
		t.Errorf("focus = %d, want input", s.Focus())
	}

	// Navigation never re-ran the search.
	if len(s.Results()) != 3 {
		t.Errorf("results = %v, want all three preserved", s.Results())
	}
}

func TestSessionFocusIgnoredWhenIdle(t *testing.T) {
	s := newTestSession(t)
	s.FocusNext()
	if s.Focus() != FocusInput {
		t.Errorf("focus = %d, want input untouched while idle", s.Focus())
	}
}
