package classify

import (
	"strings"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// textClassifier produces one "text" chunk per newline-separated segment,
// each with wrap = break-after so embedded newlines survive reflow (spec
// §4.3).
type textClassifier struct{}

func (textClassifier) Name() string { return "text" }

const weightText = 60

func (textClassifier) Classify(msg logentry.Message, consumed map[string]struct{}) []logentry.Chunk {
	if msg.Text == "" {
		return nil
	}
	segments := strings.Split(msg.Text, "\n")
	chunks := make([]logentry.Chunk, 0, len(segments))
	for _, seg := range segments {
		chunks = append(chunks, logentry.Chunk{
			Text:   seg,
			Kind:   "text",
			Slot:   logentry.SlotLeft,
			Weight: weightText,
			Wrap:   logentry.WrapBreakAfter,
		})
	}
	return chunks
}
