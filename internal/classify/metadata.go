package classify

import (
	"fmt"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// metadataClassifier is the terminal classifier: it emits one key=value
// chunk, left-slotted at a shared mid weight, for every remaining
// metadata key not already consumed, in insertion order (spec §4.3).
type metadataClassifier struct{}

func (metadataClassifier) Name() string { return "metadata" }

const weightMetadata = 30

func (metadataClassifier) Classify(msg logentry.Message, consumed map[string]struct{}) []logentry.Chunk {
	if msg.Metadata == nil {
		return nil
	}
	var chunks []logentry.Chunk
	msg.Metadata.Range(func(key, value string) {
		if _, ok := consumed[key]; ok {
			return
		}
		chunks = append(chunks, logentry.Chunk{
			Text:    fmt.Sprintf("%s=%s", key, value),
			Kind:    "metadata-value",
			Slot:    logentry.SlotLeft,
			Weight:  weightMetadata,
			Wrap:    logentry.WrapNone,
			Padding: 1,
		})
	})
	return chunks
}
