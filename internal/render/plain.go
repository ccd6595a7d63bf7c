package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// PlainRenderer prints left-slot chunk text joined by one space; right-slot
// chunks are omitted, no ANSI attributes (spec §4.5). It's also the
// renderer the interactive pager's clipboard copy (c / Shift-C) runs a
// cursor message through, per spec §4.4.5.
type PlainRenderer struct{}

func (PlainRenderer) Render(ctx context.Context, in <-chan Event, out io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-in:
			if !ok {
				return nil
			}
			if ev.IsInternal() {
				continue
			}
			if _, err := fmt.Fprintln(out, FormatPlain(*ev.Message)); err != nil {
				return fmt.Errorf("writing plain line: %w", err)
			}
		}
	}
}

// FormatPlain renders the left-slot chunks of a ClassifiedMessage joined by
// single spaces, with no styling, used both by the plain renderer and by
// the interactive pager's clipboard copy.
func FormatPlain(msg logentry.ClassifiedMessage) string {
	var parts []string
	var walk func(c logentry.Chunk)
	walk = func(c logentry.Chunk) {
		if c.Slot != logentry.SlotLeft {
			return
		}
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
		for _, child := range c.Children {
			walk(child)
		}
	}
	for _, c := range msg.Chunks {
		walk(c)
	}
	return strings.Join(parts, " ")
}

var _ Renderer = PlainRenderer{}
