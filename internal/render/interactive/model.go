// Package interactive is the pager: a bubbletea.Model holding an
// append-only classified-message log, a conjunctive regex filter stack, a
// search engine, a per-message wrap cache, and a Kubernetes namespace/pod
// filter modal, matching spec §4.4. Generalized from the teacher's
// internal/tui.DashboardModel.
package interactive

import (
	"context"
	"fmt"
	"regexp"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/control-theory/woodchipper/internal/logentry"
	"github.com/control-theory/woodchipper/internal/render"
	"github.com/control-theory/woodchipper/internal/style"
)

// Mode is the top-level pager state (spec §4.4.1).
type Mode int

const (
	ModeBrowse Mode = iota
	ModeFiltering
	ModeSearching
	ModeSearchActive
)

// repaintFPS caps the pager's render rate so bursts of messages arriving
// within a short window (spec §4.4.4, ~16ms) coalesce into a single frame
// instead of one repaint per event — handled by bubbletea's own frame
// limiter (tea.WithFPS in Run) rather than a hand-rolled debounce tick.
const repaintFPS = 60

// Model is the pager's bubbletea.Model.
type Model struct {
	log      []logentry.ClassifiedMessage
	filtered []int // indices into log matching the full filter stack
	filters  []*regexp.Regexp

	mode   Mode
	cursor int // index into filtered
	follow bool

	wrapCache     map[int][]string
	width, height int

	searchInput   textinput.Model
	filterInput   textinput.Model
	filterInvalid bool
	searchInvalid bool
	searchMatches []int // indices into filtered
	searchPos     int

	style *style.Style

	k8sFilter *k8sFilterState // non-nil only when the active reader is kubernetes

	notice      string // last Internal notice, shown in the message pane
	noticeLevel logentry.InternalLevel
	eof         bool

	in      <-chan render.Event
	exitReq chan<- struct{}
}

// New constructs a pager Model. exitReq, if non-nil, is closed when the
// user quits so the reader can begin cooperative shutdown (spec §5).
func New(in <-chan render.Event, st *style.Style, k8s K8sController, exitReq chan<- struct{}) *Model {
	fi := textinput.New()
	fi.Prompt = "filter> "
	si := textinput.New()
	si.Prompt = "search> "

	m := &Model{
		wrapCache:   make(map[int][]string),
		filterInput: fi,
		searchInput: si,
		style:       st,
		follow:      true,
		in:          in,
		exitReq:     exitReq,
	}
	if k8s != nil {
		m.k8sFilter = newK8sFilterState(k8s)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return waitForEvent(m.in)
}

// eventMsg wraps a render.Event arriving off the pipeline channel.
type eventMsg render.Event

// eventsClosedMsg signals the pipeline channel closed (Eof, spec §4.4.6).
type eventsClosedMsg struct{}

func waitForEvent(in <-chan render.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-in
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.wrapCache = make(map[int][]string) // resize clears the cache wholesale (spec §4.4.3)
		m.filterInput.Width = m.width - len(m.filterInput.Prompt) - 2
		m.searchInput.Width = m.width - len(m.searchInput.Prompt) - 2
		return m, nil

	case eventMsg:
		ev := render.Event(msg)
		if ev.IsInternal() {
			m.notice = ev.InternalText
			m.noticeLevel = ev.InternalLevel
		} else {
			m.appendMessage(*ev.Message)
		}
		return m, waitForEvent(m.in)

	case eventsClosedMsg:
		m.eof = true
		m.follow = true // end-of-stream transitions to follow-complete, viewer stays open (spec §4.4.6)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	return m.render()
}

// appendMessage adds a new message to the append-only log and, if it
// passes every regex on the filter stack, extends the filtered view
// incrementally — existing membership never changes (spec §4.4.2).
func (m *Model) appendMessage(cm logentry.ClassifiedMessage) {
	idx := len(m.log)
	m.log = append(m.log, cm)
	if m.passesFilters(idx) {
		m.filtered = append(m.filtered, idx)
		if m.follow {
			m.cursor = len(m.filtered) - 1
		}
	}
}

func (m *Model) passesFilters(logIdx int) bool {
	if len(m.filters) == 0 {
		return true
	}
	text := m.log[logIdx].PlainText()
	for _, re := range m.filters {
		if !re.MatchString(text) {
			return false
		}
	}
	return true
}

// recomputeFiltered rebuilds the filtered view from scratch against the
// full stack (used when a filter is pushed/popped, spec §4.4.2).
func (m *Model) recomputeFiltered() {
	m.filtered = m.filtered[:0]
	for i := range m.log {
		if m.passesFilters(i) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// copyPlain copies text, already rendered through the plain renderer by
// the caller, to the system clipboard, surfacing failures as an Internal
// notice (spec §4.4.5).
func (m *Model) copyPlain(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		m.notice = fmt.Sprintf("clipboard error: %v", err)
		m.noticeLevel = logentry.InternalWarn
	}
}

// Run drives the pager to completion using bubbletea's own terminal
// ownership (alt-screen, raw mode), per spec §4.4 / §5.
func Run(ctx context.Context, in <-chan render.Event, st *style.Style, k8s K8sController, exitReq chan<- struct{}) error {
	m := New(in, st, k8s, exitReq)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithFPS(repaintFPS))
	_, err := p.Run()
	return err
}
