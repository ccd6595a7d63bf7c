package reader

import (
	"context"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// NullReader emits one internal error and EOF (spec §4.1), used when no
// input source is configured.
type NullReader struct{}

func (NullReader) Start(ctx context.Context, out chan<- logentry.LogEntry, exit *ExitSignal) error {
	SendInternal(out, logentry.InternalError, "no input source configured")
	SendEOF(out)
	return nil
}
