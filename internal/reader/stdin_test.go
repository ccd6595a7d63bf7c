package reader

import (
	"context"
	"strings"
	"testing"

	"github.com/control-theory/woodchipper/internal/logentry"
)

func TestStdinReaderOrderPreservation(t *testing.T) {
	lines := []string{"one", "two", "three", "four", "five"}
	r := NewStdinReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))

	out := make(chan logentry.LogEntry, 16)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- r.Start(ctx, out, nil) }()

	var got []string
	sawEOF := false
	for entry := range drain(out, done) {
		switch entry.Kind {
		case logentry.EntryMessage:
			got = append(got, entry.Raw)
		case logentry.EntryEOF:
			sawEOF = true
		}
	}

	if !sawEOF {
		t.Fatalf("expected an Eof entry")
	}
	if len(got) != len(lines) {
		t.Fatalf("got %d entries, want %d", len(got), len(lines))
	}
	for i, line := range lines {
		if got[i] != line {
			t.Fatalf("entry %d = %q, want %q (order not preserved)", i, got[i], line)
		}
	}
}

// drain reads from out until it is closed by the test, returning a
// buffered slice-backed channel for range iteration. Since Start doesn't
// close out itself (the caller owns channel lifecycle, per spec §5's
// single-producer contract), we close it here once Start returns and the
// channel has been fully drained of buffered sends.
func drain(out chan logentry.LogEntry, done <-chan error) chan logentry.LogEntry {
	result := make(chan logentry.LogEntry, 64)
	go func() {
		<-done
		close(out)
		for e := range out {
			result <- e
		}
		close(result)
	}()
	return result
}

func TestNullReaderEmitsInternalThenEOF(t *testing.T) {
	out := make(chan logentry.LogEntry, 4)
	if err := (NullReader{}).Start(context.Background(), out, nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	close(out)

	var entries []logentry.LogEntry
	for e := range out {
		entries = append(entries, e)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Kind != logentry.EntryInternal {
		t.Fatalf("entries[0].Kind = %v, want Internal", entries[0].Kind)
	}
	if entries[1].Kind != logentry.EntryEOF {
		t.Fatalf("entries[1].Kind = %v, want Eof", entries[1].Kind)
	}
}
