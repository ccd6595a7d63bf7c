package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSONRenderer writes one JSON object per message with fields kind,
// timestamp, level, text, metadata; classifier chunk output is discarded
// (spec §4.5).
type JSONRenderer struct{}

type jsonRecord struct {
	Kind      string            `json:"kind"`
	Timestamp string            `json:"timestamp,omitempty"`
	Level     string            `json:"level"`
	Text      string            `json:"text"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (JSONRenderer) Render(ctx context.Context, in <-chan Event, out io.Writer) error {
	enc := json.NewEncoder(out)
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
			msg := ev.Message.Message
			rec := jsonRecord{
				Kind:  msg.Kind,
				Level: msg.Level.String(),
				Text:  msg.Text,
			}
			if msg.Timestamp != nil {
				rec.Timestamp = msg.Timestamp.UTC().Format(time.RFC3339)
			}
			if msg.Metadata != nil && msg.Metadata.Len() > 0 {
				rec.Metadata = msg.Metadata.ToMap()
			}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("writing json record: %w", err)
			}
		}
	}
}

var _ Renderer = JSONRenderer{}
