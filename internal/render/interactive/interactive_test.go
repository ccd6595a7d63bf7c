package interactive

import (
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/control-theory/woodchipper/internal/logentry"
)

func plainMessage(text string) logentry.ClassifiedMessage {
	return logentry.ClassifiedMessage{
		Message: logentry.Message{Text: text},
		Chunks: []logentry.Chunk{
			{Text: text, Kind: "text", Slot: logentry.SlotLeft, Weight: 60},
		},
	}
}

func TestAppendMessageExtendsFilteredViewIncrementally(t *testing.T) {
	m := &Model{wrapCache: make(map[int][]string)}
	m.appendMessage(plainMessage("alpha"))
	m.appendMessage(plainMessage("beta"))

	m.filters = append(m.filters, regexp.MustCompile("l"))
	m.recomputeFiltered()
	if len(m.filtered) != 1 {
		t.Fatalf("expected 1 match after filter, got %d", len(m.filtered))
	}

	// existing membership must not change when the log merely grows
	m.appendMessage(plainMessage("gamma")) // doesn't match "l"
	if len(m.filtered) != 1 {
		t.Fatalf("expected filtered view unchanged by a non-matching append, got %d", len(m.filtered))
	}
	m.appendMessage(plainMessage("cabal")) // matches "l"
	if len(m.filtered) != 2 {
		t.Fatalf("expected filtered view extended by a matching append, got %d", len(m.filtered))
	}
}

func TestPopFilterRestoresPreviousMembership(t *testing.T) {
	m := &Model{wrapCache: make(map[int][]string)}
	for _, s := range []string{"alpha", "beta", "gamma"} {
		m.appendMessage(plainMessage(s))
	}
	m.filters = append(m.filters, regexp.MustCompile("[pm]"))
	m.recomputeFiltered()
	if len(m.filtered) != 2 { // alpha, gamma
		t.Fatalf("got %d filtered, want 2", len(m.filtered))
	}
	m.popFilter()
	if len(m.filters) != 0 {
		t.Fatalf("expected filter stack empty after pop")
	}
	if len(m.filtered) != 3 {
		t.Fatalf("got %d filtered after pop, want 3", len(m.filtered))
	}
}

func TestWrapCacheClearedOnResizeRetainedOtherwise(t *testing.T) {
	m := &Model{wrapCache: make(map[int][]string), width: 80, height: 24}
	m.appendMessage(plainMessage("hello world"))
	_ = m.rowsFor(0)
	if len(m.wrapCache) != 1 {
		t.Fatalf("expected cache populated")
	}

	// cursor movement must not invalidate the cache
	m.setCursor(0)
	if len(m.wrapCache) != 1 {
		t.Fatalf("expected cache retained across cursor movement")
	}

	// a resize delivered through Update clears it
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 24})
	if len(m.wrapCache) != 0 {
		t.Fatalf("expected cache cleared after resize")
	}
}

func TestFollowModeAdvancesCursorOnAppend(t *testing.T) {
	m := &Model{wrapCache: make(map[int][]string), follow: true}
	m.appendMessage(plainMessage("one"))
	m.appendMessage(plainMessage("two"))
	if m.cursor != 1 {
		t.Fatalf("expected cursor to track tail in follow mode, got %d", m.cursor)
	}

	m.follow = false
	m.cursor = 0
	m.appendMessage(plainMessage("three"))
	if m.cursor != 0 {
		t.Fatalf("expected cursor pinned when follow is false, got %d", m.cursor)
	}
}

func TestSetCursorClampsToFilteredRange(t *testing.T) {
	m := &Model{wrapCache: make(map[int][]string)}
	for _, s := range []string{"a", "b", "c"} {
		m.appendMessage(plainMessage(s))
	}
	m.setCursor(100)
	if m.cursor != 2 {
		t.Fatalf("expected clamp to last index, got %d", m.cursor)
	}
	m.setCursor(-5)
	if m.cursor != 0 {
		t.Fatalf("expected clamp to first index, got %d", m.cursor)
	}
}

func TestWeightCutoffDropsLowWeightChunksOnNarrowWidth(t *testing.T) {
	cm := logentry.ClassifiedMessage{
		Chunks: []logentry.Chunk{
			{Text: "2024-01-01", Kind: "timestamp-date", Slot: logentry.SlotLeft, Weight: 10},
			{Text: "10:00:00", Kind: "timestamp-time", Slot: logentry.SlotLeft, Weight: 50},
			{Text: "hello", Kind: "text", Slot: logentry.SlotLeft, Weight: 60},
		},
	}
	rows := wrapMessage(cm, 30, nil)
	if len(rows) == 0 {
		t.Fatalf("expected at least one row")
	}
	for _, r := range rows {
		if len(r) > 0 && contains(r, "2024-01-01") {
			t.Fatalf("expected low-weight date chunk dropped at narrow width, got %q", r)
		}
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (func() bool {
		for i := 0; i+len(substr) <= len(s); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	})()
}
