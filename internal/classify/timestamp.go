package classify

import "github.com/control-theory/woodchipper/internal/logentry"

// timestampClassifier produces two sibling chunks: a low-weight "date"
// chunk and a high-weight "time" chunk, both left-slotted. When width is
// scarce the renderer prunes by ascending weight, so the date drops first
// (spec §4.3).
type timestampClassifier struct{}

func (timestampClassifier) Name() string { return "timestamp" }

const (
	weightDate = 10
	weightTime = 50
)

func (timestampClassifier) Classify(msg logentry.Message, consumed map[string]struct{}) []logentry.Chunk {
	if msg.Timestamp == nil {
		return nil
	}
	t := msg.Timestamp.UTC()
	return []logentry.Chunk{
		{
			Text:   t.Format("2006-01-02"),
			Kind:   "timestamp-date",
			Slot:   logentry.SlotLeft,
			Weight: weightDate,
			Wrap:   logentry.WrapNone,
		},
		{
			Text:   t.Format("15:04:05"),
			Kind:   "timestamp-time",
			Slot:   logentry.SlotLeft,
			Weight: weightTime,
			Wrap:   logentry.WrapNone,
		},
	}
}
