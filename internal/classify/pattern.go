package classify

import "github.com/control-theory/woodchipper/internal/logentry"

// Miner is the minimal surface patternClassifier needs from
// internal/patternmine.Miner — kept as an interface so classify does not
// import the drain3 binding directly.
type Miner interface {
	Add(line string) string
}

// patternClassifier is the optional domain-stack extra described in
// SPEC_FULL.md: it feeds msg.Text into a drain3 template miner and emits a
// metadata-value chunk carrying the cluster's template. It runs after
// text and before metadata, and marks no keys consumed — it is purely
// additive over spec §4.3.
type patternClassifier struct {
	miner Miner
}

// NewPatternClassifier builds the optional pattern classifier. Callers
// only include it in the chain when --cluster-patterns is set.
func NewPatternClassifier(m Miner) Classifier {
	return patternClassifier{miner: m}
}

func (patternClassifier) Name() string { return "pattern" }

func (c patternClassifier) Classify(msg logentry.Message, consumed map[string]struct{}) []logentry.Chunk {
	if c.miner == nil || msg.Text == "" {
		return nil
	}
	template := c.miner.Add(msg.Text)
	if template == "" {
		return nil
	}
	return []logentry.Chunk{
		{
			Text:    "pattern=" + template,
			Kind:    "metadata-value",
			Slot:    logentry.SlotLeft,
			Weight:  weightMetadata,
			Wrap:    logentry.WrapNone,
			Padding: 1,
		},
	}
}
