package reader

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// StdinReader reads lines from a provided io.Reader (typically os.Stdin)
// until EOF, a read error, or the context is cancelled.
type StdinReader struct {
	Source io.Reader
}

// NewStdinReader wraps r as a Reader.
func NewStdinReader(r io.Reader) *StdinReader {
	return &StdinReader{Source: r}
}

func (r *StdinReader) Start(ctx context.Context, out chan<- logentry.LogEntry, exit *ExitSignal) error {
	scanner := bufio.NewScanner(r.Source)
	const maxLine = 1024 * 1024
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxLine)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			SendEOF(out)
			return nil
		default:
		}
		line := scanner.Text()
		select {
		case out <- logentry.LogEntry{Kind: logentry.EntryMessage, Raw: line}:
		case <-ctx.Done():
			SendEOF(out)
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		SendInternal(out, logentry.InternalError, fmt.Sprintf("stdin read error: %v", err))
	}
	SendEOF(out)
	return nil
}
