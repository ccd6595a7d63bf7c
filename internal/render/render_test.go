package render

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/control-theory/woodchipper/internal/logentry"
)

func sampleEvent() Event {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	meta := logentry.NewOrderedMap()
	meta.Set("pod", "api-1")
	msg := logentry.ClassifiedMessage{
		Message: logentry.Message{
			Kind:      "plain",
			Timestamp: &ts,
			Level:     logentry.LevelInfo,
			Text:      "connection accepted",
			Metadata:  meta,
		},
		Chunks: []logentry.Chunk{
			{Text: "12:00:00", Kind: "timestamp-time", Slot: logentry.SlotLeft},
			{Text: "INFO", Kind: "level", Slot: logentry.SlotLeft},
			{Text: "connection accepted", Kind: "text", Slot: logentry.SlotLeft},
			{Text: "pod=api-1", Kind: "metadata", Slot: logentry.SlotRight},
		},
	}
	return Event{Message: &msg}
}

func TestJSONRendererWritesRFC3339AndMetadata(t *testing.T) {
	in := make(chan Event, 1)
	in <- sampleEvent()
	close(in)

	var buf bytes.Buffer
	if err := (JSONRenderer{}).Render(context.Background(), in, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var rec jsonRecord
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal: %v, body=%s", err, buf.String())
	}
	if rec.Timestamp != "2024-03-01T12:00:00Z" {
		t.Fatalf("timestamp = %q", rec.Timestamp)
	}
	if rec.Level != "info" {
		t.Fatalf("level = %q", rec.Level)
	}
	if rec.Metadata["pod"] != "api-1" {
		t.Fatalf("metadata[pod] = %v", rec.Metadata["pod"])
	}
}

func TestJSONRendererSkipsInternalEvents(t *testing.T) {
	in := make(chan Event, 1)
	in <- Event{InternalLevel: logentry.InternalWarn, InternalText: "reconnecting"}
	close(in)

	var buf bytes.Buffer
	if err := (JSONRenderer{}).Render(context.Background(), in, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for internal event, got %q", buf.String())
	}
}

func TestPlainRendererOmitsRightSlot(t *testing.T) {
	line := FormatPlain(*sampleEvent().Message)
	if line != "12:00:00 INFO connection accepted" {
		t.Fatalf("FormatPlain = %q", line)
	}
}

func TestPlainRendererDrainsToEOF(t *testing.T) {
	in := make(chan Event, 2)
	in <- sampleEvent()
	in <- sampleEvent()
	close(in)

	var buf bytes.Buffer
	if err := (PlainRenderer{}).Render(context.Background(), in, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	if lines != 2 {
		t.Fatalf("got %d lines, want 2", lines)
	}
}
