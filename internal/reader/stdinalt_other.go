//go:build !unix

package reader

import (
	"context"
	"errors"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// ErrStdinAltUnsupported is returned on platforms with no separate tty
// device to open (spec §9's open question: implementers document the
// supported platforms and fall back to the plain renderer elsewhere).
// Only Unix platforms (via /dev/tty, see stdinalt_unix.go) are supported.
var ErrStdinAltUnsupported = errors.New("stdin-alt reader is not supported on this platform; use the plain renderer instead")

// StdinAltReader is the non-Unix stub: it reports ErrStdinAltUnsupported
// as a configuration error rather than silently degrading.
type StdinAltReader struct{}

func (StdinAltReader) Start(ctx context.Context, out chan<- logentry.LogEntry, exit *ExitSignal) error {
	return ErrStdinAltUnsupported
}
