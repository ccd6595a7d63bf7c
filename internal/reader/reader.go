// Package reader ingests lines from pluggable sources and emits tagged
// LogEntry values onto an ordered channel (spec §4.1). Readers run on
// their own goroutine because sources may block indefinitely.
package reader

import (
	"context"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// ExitSignal lets a cleanup-required reader participate in cooperative
// cancellation (spec §4.1, §5): the main thread closes Request (or the
// context is cancelled) to ask the reader to stop, and the reader closes
// Ack once cleanup is done. Readers that need no cleanup may ignore
// ExitSignal entirely.
type ExitSignal struct {
	Request <-chan struct{}
	Ack     chan<- struct{}
}

// Reader is the capability every source implements: stream LogEntry
// values onto out until exhausted or an exit is requested, then send Eof
// and return (spec §4.1).
type Reader interface {
	Start(ctx context.Context, out chan<- logentry.LogEntry, exit *ExitSignal) error
}

// SendEOF is the one-line idiom every Reader uses to end its stream.
func SendEOF(out chan<- logentry.LogEntry) {
	out <- logentry.LogEntry{Kind: logentry.EntryEOF}
}

// SendInternal reports an operator-facing notice without ending the
// stream (spec §4.1, §7).
func SendInternal(out chan<- logentry.LogEntry, level logentry.InternalLevel, text string) {
	out <- logentry.LogEntry{Kind: logentry.EntryInternal, Level: level, Text: text}
}
