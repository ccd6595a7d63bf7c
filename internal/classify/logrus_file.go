package classify

import (
	"strings"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// logrusFileClassifier reads file/caller from metadata if present, marks
// it consumed, and emits a right-slot chunk whose text is the last two
// path components (spec §4.3). This generalizes the teacher's own
// k8s.namespace/k8s.pod attribute handling in streamer.go into a
// first-class classifier operating on any parser's file/caller field.
type logrusFileClassifier struct{}

func (logrusFileClassifier) Name() string { return "logrus-file" }

const weightFile = 20

func (logrusFileClassifier) Classify(msg logentry.Message, consumed map[string]struct{}) []logentry.Chunk {
	for _, key := range []string{"file", "caller"} {
		if msg.Metadata == nil {
			continue
		}
		value, ok := msg.Metadata.Get(key)
		if !ok || value == "" {
			continue
		}
		consumed[key] = struct{}{}
		return []logentry.Chunk{
			{
				Text:   lastTwoComponents(value),
				Kind:   "context-file",
				Slot:   logentry.SlotRight,
				Weight: weightFile,
				Wrap:   logentry.WrapNone,
			},
		}
	}
	return nil
}

// lastTwoComponents returns the last two '/'-separated path components of
// path, or path unchanged if it has fewer than two.
func lastTwoComponents(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) <= 2 {
		return path
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
