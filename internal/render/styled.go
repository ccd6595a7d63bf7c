package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/control-theory/woodchipper/internal/logentry"
	"github.com/control-theory/woodchipper/internal/style"
)

// StyledRenderer writes the same left/right chunk layout the interactive
// pager uses, one shot per message, with ANSI attributes from Style and
// terminal-width wrapping when a width is detectable (spec §4.5).
type StyledRenderer struct {
	Style *style.Style
	// Width overrides terminal width detection; 0 means "detect, or don't
	// wrap if detection fails" (e.g. output piped to a file).
	Width int
}

func (r StyledRenderer) Render(ctx context.Context, in <-chan Event, out io.Writer) error {
	width := r.Width
	if width <= 0 {
		width = detectWidth(out)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-in:
			if !ok {
				return nil
			}
			if ev.IsInternal() {
				line := r.Style.ForKind("internal-" + internalLevelKind(ev.InternalLevel)).Lipgloss().Render(ev.InternalText)
				fmt.Fprintln(out, line)
				continue
			}
			line := r.renderLine(*ev.Message, width)
			if _, err := fmt.Fprintln(out, line); err != nil {
				return fmt.Errorf("writing styled line: %w", err)
			}
		}
	}
}

func (r StyledRenderer) renderLine(msg logentry.ClassifiedMessage, width int) string {
	var left, right []string
	var walk func(c logentry.Chunk, slot logentry.Slot)
	walk = func(c logentry.Chunk, slot logentry.Slot) {
		s := c.Slot
		if c.Text != "" {
			rendered := r.Style.ForKind(c.Kind).Lipgloss().Render(c.Text)
			switch s {
			case logentry.SlotRight:
				right = append(right, rendered)
			default:
				left = append(left, rendered)
			}
		}
		for _, child := range c.Children {
			walk(child, s)
		}
	}
	for _, c := range msg.Chunks {
		walk(c, c.Slot)
	}

	leftStr := strings.Join(left, " ")
	rightStr := strings.Join(right, " ")

	line := leftStr
	if rightStr != "" {
		if width > 0 {
			pad := width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr)
			if pad < 1 {
				pad = 1
			}
			line = leftStr + strings.Repeat(" ", pad) + rightStr
		} else {
			line = leftStr + "  " + rightStr
		}
	}
	if width > 0 {
		return wrapLine(line, width)
	}
	return line
}

// wrapLine wraps line to width using lipgloss.Width so ANSI escape
// sequences from per-chunk styling don't count against the visual column
// budget, following the teacher's wrapTextToWidth idiom.
func wrapLine(line string, width int) string {
	if width <= 0 || lipgloss.Width(line) <= width {
		return line
	}
	var wrapped []string
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
		wrapped = append(wrapped, remaining[:maxChars])
		remaining = remaining[maxChars:]
	}
	return strings.Join(wrapped, "\n")
}

func detectWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

func internalLevelKind(level logentry.InternalLevel) string {
	switch level {
	case logentry.InternalWarn:
		return "warn"
	case logentry.InternalError:
		return "error"
	default:
		return "info"
	}
}

var _ Renderer = StyledRenderer{}
