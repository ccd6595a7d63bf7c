package interactive

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/control-theory/woodchipper/internal/logentry"
	"github.com/control-theory/woodchipper/internal/style"
)

// rightSlotThreshold is the minimum number of free columns that must be
// left on the first row after both the left-slot and the right-slot chunks
// are placed; below it right-slot chunks are dropped, per spec §4.4.3.
const rightSlotThreshold = 12

// weightCutoffForWidth returns the minimum chunk weight that survives at
// the given width; narrower terminals raise the cutoff so only
// high-priority chunks (e.g. timestamp time over timestamp date) remain,
// per spec §4.4.3 and the timestamp pruning rule of spec §4.3.
func weightCutoffForWidth(width int) int {
	switch {
	case width <= 0:
		return 0
	case width < 40:
		return 20
	case width < 70:
		return 10
	default:
		return 0
	}
}

// rowsFor returns the wrapped display rows for log entry logIdx at the
// model's current width, computing and caching them on first use (spec
// §4.4.3). The cache is keyed by log index and cleared wholesale on
// resize; cursor movement and filter changes never invalidate it.
func (m *Model) rowsFor(logIdx int) []string {
	if rows, ok := m.wrapCache[logIdx]; ok {
		return rows
	}
	rows := wrapMessage(m.log[logIdx], m.width, m.style)
	m.wrapCache[logIdx] = rows
	return rows
}

func wrapMessage(cm logentry.ClassifiedMessage, width int, st *style.Style) []string {
	cutoff := weightCutoffForWidth(width)

	var left, right []string
	var walkLeft func(c logentry.Chunk)
	walkLeft = func(c logentry.Chunk) {
		if c.Weight < cutoff {
			return
		}
		if c.Slot == logentry.SlotLeft && c.Text != "" {
			left = append(left, renderChunk(c, st))
		}
		for _, child := range c.Children {
			walkLeft(child)
		}
	}
	var walkRight func(c logentry.Chunk)
	walkRight = func(c logentry.Chunk) {
		if c.Weight < cutoff {
			return
		}
		if c.Slot == logentry.SlotRight && c.Text != "" {
			right = append(right, renderChunk(c, st))
		}
		for _, child := range c.Children {
			walkRight(child)
		}
	}
	for _, c := range cm.Chunks {
		walkLeft(c)
		walkRight(c)
	}

	leftLine := strings.Join(left, " ")
	rightLine := strings.Join(right, " ")

	if width <= 0 {
		if rightLine != "" {
			return []string{leftLine + "  " + rightLine}
		}
		return []string{leftLine}
	}

	remaining := width - lipgloss.Width(leftLine)
	firstLine := leftLine
	if rightLine != "" && remaining-lipgloss.Width(rightLine) >= rightSlotThreshold {
		pad := width - lipgloss.Width(leftLine) - lipgloss.Width(rightLine)
		if pad < 1 {
			pad = 1
		}
		firstLine = leftLine + strings.Repeat(" ", pad) + rightLine
	}

	return wrapToWidth(firstLine, width)
}

func renderChunk(c logentry.Chunk, st *style.Style) string {
	if st == nil {
		return c.Text
	}
	return st.ForKind(c.Kind).Lipgloss().Render(c.Text)
}

func wrapToWidth(line string, width int) []string {
	if width <= 0 || lipgloss.Width(line) <= width {
		return []string{line}
	}
	var rows []string
	remaining := line
	for len(remaining) > 0 {
		maxChars := min(len(remaining), width)
		for maxChars > 0 && lipgloss.Width(remaining[:maxChars]) > width {
			maxChars--
		}
		for maxChars < len(remaining) && lipgloss.Width(remaining[:maxChars+1]) <= width {
			maxChars++
		}
		if maxChars <= 0 {
			maxChars = 1
		}
		rows = append(rows, remaining[:maxChars])
		remaining = remaining[maxChars:]
	}
	return rows
}
