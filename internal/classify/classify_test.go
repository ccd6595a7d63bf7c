package classify

import (
	"strings"
	"testing"
	"time"

	"github.com/control-theory/woodchipper/internal/logentry"
)

func TestConsumedKeysRespected(t *testing.T) {
	meta := logentry.NewOrderedMap()
	meta.Set("file", "pkg/sub/main.go:10")
	meta.Set("user", "a")
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	msg := logentry.Message{
		Kind:      "klog",
		Timestamp: &ts,
		Level:     logentry.LevelInfo,
		Text:      "hello",
		Metadata:  meta,
	}

	cm := Run(Chain(nil), msg)

	for key := range cm.Consumed {
		for _, c := range cm.Chunks {
			if c.Kind == "metadata-value" && strings.HasPrefix(c.Text, key+"=") {
				t.Fatalf("consumed key %q was emitted by metadata classifier", key)
			}
		}
	}

	foundFileChunk := false
	foundUserChunk := false
	for _, c := range cm.Chunks {
		if c.Kind == "context-file" && c.Text == "sub/main.go:10" {
			foundFileChunk = true
		}
		if c.Kind == "metadata-value" && c.Text == "user=a" {
			foundUserChunk = true
		}
	}
	if !foundFileChunk {
		t.Fatalf("expected context-file chunk for last two path components, got %+v", cm.Chunks)
	}
	if !foundUserChunk {
		t.Fatalf("expected metadata-value chunk for user=a, got %+v", cm.Chunks)
	}
	if _, ok := cm.Consumed["file"]; !ok {
		t.Fatalf("expected 'file' to be marked consumed")
	}
}

func TestTimestampChunksWeighted(t *testing.T) {
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	msg := logentry.Message{Timestamp: &ts, Metadata: logentry.NewOrderedMap()}
	cm := Run(Chain(nil), msg)

	var dateWeight, timeWeight int
	for _, c := range cm.Chunks {
		if c.Kind == "timestamp-date" {
			dateWeight = c.Weight
		}
		if c.Kind == "timestamp-time" {
			timeWeight = c.Weight
		}
	}
	if dateWeight >= timeWeight {
		t.Fatalf("date weight %d should be less than time weight %d (date drops first under width pressure)", dateWeight, timeWeight)
	}
}

func TestTextClassifierSplitsNewlines(t *testing.T) {
	msg := logentry.Message{Text: "line one\nline two", Metadata: logentry.NewOrderedMap()}
	cm := Run(Chain(nil), msg)

	var textChunks []logentry.Chunk
	for _, c := range cm.Chunks {
		if c.Kind == "text" {
			textChunks = append(textChunks, c)
		}
	}
	if len(textChunks) != 2 {
		t.Fatalf("got %d text chunks, want 2", len(textChunks))
	}
	if textChunks[0].Text != "line one" || textChunks[1].Text != "line two" {
		t.Fatalf("text chunks = %+v", textChunks)
	}
	for _, c := range textChunks {
		if c.Wrap != logentry.WrapBreakAfter {
			t.Fatalf("text chunk wrap = %v, want break-after", c.Wrap)
		}
	}
}

func TestEmptyChunksElided(t *testing.T) {
	msg := logentry.Message{Text: "", Metadata: logentry.NewOrderedMap()}
	cm := Run(Chain(nil), msg)
	for _, c := range cm.Chunks {
		if c.Text == "" && len(c.Children) == 0 {
			t.Fatalf("found empty chunk %+v after elision", c)
		}
	}
}
