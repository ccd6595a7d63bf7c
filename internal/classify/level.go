package classify

import "github.com/control-theory/woodchipper/internal/logentry"

// levelClassifier produces one chunk with kind = level-<name>, so the
// styler picks the level color (spec §4.3).
type levelClassifier struct{}

func (levelClassifier) Name() string { return "level" }

const weightLevel = 40

func (levelClassifier) Classify(msg logentry.Message, consumed map[string]struct{}) []logentry.Chunk {
	name := msg.Level.String()
	return []logentry.Chunk{
		{
			Text:   name,
			Kind:   "level-" + name,
			Slot:   logentry.SlotLeft,
			Weight: weightLevel,
			Wrap:   logentry.WrapNone,
		},
	}
}
