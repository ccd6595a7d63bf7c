package interactive

import (
	"regexp"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/control-theory/woodchipper/internal/render"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.k8sFilter != nil && m.k8sFilter.active {
		return m.k8sFilter.handleKey(m, msg)
	}

	switch m.mode {
	case ModeBrowse:
		return m.handleBrowseKey(msg)
	case ModeFiltering:
		return m.handleFilteringKey(msg)
	case ModeSearching:
		return m.handleSearchingKey(msg)
	case ModeSearchActive:
		// search matches are kept; navigation and commands work as in Browse
		return m.handleBrowseKey(msg)
	}
	return m, nil
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.exitReq != nil {
			close(m.exitReq)
		}
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-pageSize(m.height))
	case "pgdown":
		m.moveCursor(pageSize(m.height))
	case "home", "g":
		m.setCursor(0)
	case "end", "G":
		m.setCursor(len(m.filtered) - 1)
		m.follow = true
	case "f", "|":
		m.mode = ModeFiltering
		m.filterInput.SetValue("")
		m.filterInput.Focus()
		m.filterInvalid = false
	case "/", "ctrl+f":
		m.mode = ModeSearching
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.searchInvalid = false
	case "p":
		m.popFilter()
	case "c":
		if len(m.filtered) > 0 {
			m.copyPlain(render.FormatPlain(m.log[m.filtered[m.cursor]]))
		}
	case "C":
		m.copyPlain(m.visibleScreenText())
	case "ctrl+k":
		if m.k8sFilter != nil {
			m.k8sFilter.open(m)
		}
	}
	return m, nil
}

func pageSize(height int) int {
	if height <= 2 {
		return 1
	}
	return height - 2
}

// moveCursor shifts the cursor by delta messages within the filtered view,
// dropping follow mode unless the cursor lands at end-of-log (spec
// §4.4.6).
func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *Model) setCursor(idx int) {
	if len(m.filtered) == 0 {
		m.cursor = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.filtered) {
		idx = len(m.filtered) - 1
	}
	m.cursor = idx
	m.follow = idx == len(m.filtered)-1
}

func (m *Model) popFilter() {
	if len(m.filters) == 0 {
		return
	}
	m.filters = m.filters[:len(m.filters)-1]
	m.recomputeFiltered()
}

func (m *Model) handleFilteringKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if !m.filterInvalid && m.filterInput.Value() != "" {
			re, err := regexp.Compile(m.filterInput.Value())
			if err == nil {
				m.filters = append(m.filters, re)
				m.recomputeFiltered()
			}
		}
		m.mode = ModeBrowse
		m.filterInput.Blur()
		return m, nil
	case "esc":
		m.mode = ModeBrowse
		m.filterInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	_, err := regexp.Compile(m.filterInput.Value())
	m.filterInvalid = err != nil && m.filterInput.Value() != ""
	return m, cmd
}

func (m *Model) handleSearchingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.advanceSearch(1)
		return m, nil
	case "ctrl+p":
		m.advanceSearch(-1)
		return m, nil
	case "esc":
		m.mode = ModeSearchActive
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.recomputeSearchMatches()
	return m, cmd
}

// recomputeSearchMatches compiles the live search regex and jumps the
// cursor to the nearest forward match, per spec §4.4.1.
func (m *Model) recomputeSearchMatches() {
	pattern := m.searchInput.Value()
	if pattern == "" {
		m.searchInvalid = false
		m.searchMatches = nil
		return
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		m.searchInvalid = true
		m.searchMatches = nil
		return
	}
	m.searchInvalid = false
	m.searchMatches = m.searchMatches[:0]
	for i, logIdx := range m.filtered {
		if re.MatchString(m.log[logIdx].PlainText()) {
			m.searchMatches = append(m.searchMatches, i)
		}
	}
	m.searchPos = -1
	for i, idx := range m.searchMatches {
		if idx >= m.cursor {
			m.searchPos = i
			break
		}
	}
	if m.searchPos == -1 && len(m.searchMatches) > 0 {
		m.searchPos = 0
	}
	if m.searchPos >= 0 {
		m.setCursor(m.searchMatches[m.searchPos])
	}
}

func (m *Model) advanceSearch(delta int) {
	if len(m.searchMatches) == 0 {
		return
	}
	m.searchPos = (m.searchPos + delta + len(m.searchMatches)) % len(m.searchMatches)
	m.setCursor(m.searchMatches[m.searchPos])
}
