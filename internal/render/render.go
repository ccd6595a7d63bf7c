// Package render drains the classified-message stream to an output
// surface: three non-interactive renderers (json, plain, styled) here, and
// the interactive pager in internal/render/interactive (spec §4.5/§4.4).
package render

import (
	"context"
	"io"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// Event is what crosses the classify->render boundary: either a classified
// message or an operator-facing notice (spec §7's Internal entries still
// need a way to reach a renderer that only otherwise sees ClassifiedMessage
// values).
type Event struct {
	Message       *logentry.ClassifiedMessage
	InternalLevel logentry.InternalLevel
	InternalText  string
}

// IsInternal reports whether this Event carries an operator notice rather
// than a classified message.
func (e Event) IsInternal() bool { return e.Message == nil }

// Renderer drains in until it is closed (the stream's Eof), writing to out,
// per spec §4.5.
type Renderer interface {
	Render(ctx context.Context, in <-chan Event, out io.Writer) error
}
