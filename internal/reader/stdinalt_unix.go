//go:build unix

package reader

import (
	"context"
	"fmt"
	"os"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// StdinAltReader opens the stdin device (/dev/stdin) directly and reads
// log lines from it, leaving /dev/tty to the interactive renderer for
// keypresses (spec §4.1, §9 open question: the platform device used here,
// /dev/stdin, is the supported Unix case).
type StdinAltReader struct{}

func (StdinAltReader) Start(ctx context.Context, out chan<- logentry.LogEntry, exit *ExitSignal) error {
	f, err := os.Open("/dev/stdin")
	if err != nil {
		SendInternal(out, logentry.InternalError, fmt.Sprintf("opening /dev/stdin: %v", err))
		SendEOF(out)
		return nil
	}
	defer f.Close()
	return (&StdinReader{Source: f}).Start(ctx, out, exit)
}
