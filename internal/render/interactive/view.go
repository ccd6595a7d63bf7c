package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/control-theory/woodchipper/internal/logentry"
	"github.com/control-theory/woodchipper/internal/render"
)

var (
	noticeWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	noticeErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	statusBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorRowStyle   = lipgloss.NewStyle().Reverse(true)
)

func (m *Model) render() string {
	if m.k8sFilter != nil && m.k8sFilter.active {
		return m.k8sFilter.view(m)
	}

	bodyHeight := m.height - 1 // reserve the status/input line
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	rows := m.visibleRows(bodyHeight)
	body := strings.Join(rows, "\n")

	var bottom string
	switch m.mode {
	case ModeFiltering:
		bottom = m.renderInputLine(m.filterInput, m.filterInvalid)
	case ModeSearching:
		bottom = m.renderInputLine(m.searchInput, m.searchInvalid)
	default:
		bottom = m.statusLine()
	}

	return body + "\n" + bottom
}

func (m *Model) renderInputLine(ti interface{ View() string }, invalid bool) string {
	line := ti.View()
	if invalid {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(line)
	}
	return line
}

func (m *Model) statusLine() string {
	if m.notice != "" {
		style := noticeWarnStyle
		if m.noticeLevel == logentry.InternalError {
			style = noticeErrorStyle
		}
		return style.Render(m.notice)
	}
	state := "browse"
	if m.eof {
		state = "follow-complete"
	} else if m.follow {
		state = "follow"
	}
	return statusBarStyle.Render(fmt.Sprintf(
		"%s | %d/%d messages | %d filters | q:quit f:filter /:search p:pop c:copy C:copy-screen",
		state, len(m.filtered), len(m.log), len(m.filters),
	))
}

// visibleRows computes exactly height rows of wrapped text for the
// current scroll window, chosen so the cursor's message stays in view
// (spec §4.4.6); it does not move the cursor.
func (m *Model) visibleRows(height int) []string {
	var rows []string
	if len(m.filtered) == 0 {
		for len(rows) < height {
			rows = append(rows, "")
		}
		return rows
	}

	// Walk backward from the cursor, accumulating rows until the viewport
	// is full, keeping the cursor's message visible (follow-mode tail or
	// pinned browse position, spec §4.4.6).
	type block struct {
		filteredIdx int
		rows        []string
	}
	var blocks []block
	total := 0
	for i := m.cursor; i >= 0 && total < height; i-- {
		r := m.rowsFor(m.filtered[i])
		blocks = append([]block{{i, r}}, blocks...)
		total += len(r)
	}
	for _, b := range blocks {
		for _, r := range b.rows {
			if b.filteredIdx == m.cursor {
				rows = append(rows, cursorRowStyle.Render(r))
			} else {
				rows = append(rows, r)
			}
		}
	}
	// Forward-fill if the backward walk didn't reach the bottom (cursor
	// near start-of-log).
	nextIdx := m.cursor + 1
	for total < height && nextIdx < len(m.filtered) {
		r := m.rowsFor(m.filtered[nextIdx])
		rows = append(rows, r...)
		total += len(r)
		nextIdx++
	}
	if len(rows) > height {
		rows = rows[len(rows)-height:]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return rows
}

// visibleScreenText concatenates the currently visible messages, each
// rendered through the plain renderer, for Shift-C (spec §4.4.5).
func (m *Model) visibleScreenText() string {
	bodyHeight := m.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	var seen []int
	total := 0
	for i := m.cursor; i >= 0 && total < bodyHeight; i-- {
		seen = append([]int{i}, seen...)
		total += len(m.rowsFor(m.filtered[i]))
	}
	var parts []string
	for _, i := range seen {
		parts = append(parts, render.FormatPlain(m.log[m.filtered[i]]))
	}
	return strings.Join(parts, "\n")
}
