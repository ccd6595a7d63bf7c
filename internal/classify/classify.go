// Package classify turns a normalized Message into a sequence of
// rendering-ready Chunks. Classifiers run in a fixed order and may mark
// metadata keys as consumed so later classifiers (and ultimately the
// terminal metadata classifier) skip them (spec §4.3).
package classify

import "github.com/control-theory/woodchipper/internal/logentry"

// Classifier is one entry in the chain.
type Classifier interface {
	Name() string
	Classify(msg logentry.Message, consumed map[string]struct{}) []logentry.Chunk
}

// Chain is the fixed classifier order: timestamp, level, text,
// logrus-file, pattern (optional, only when miner is non-nil), metadata
// (terminal).
func Chain(miner Miner) []Classifier {
	chain := []Classifier{
		timestampClassifier{},
		levelClassifier{},
		textClassifier{},
		logrusFileClassifier{},
	}
	if miner != nil {
		chain = append(chain, NewPatternClassifier(miner))
	}
	chain = append(chain, metadataClassifier{})
	return chain
}

// Run executes the full chain against msg and returns the classified
// message, with the set of consumed metadata keys threaded through in
// order.
func Run(chain []Classifier, msg logentry.Message) logentry.ClassifiedMessage {
	consumed := make(map[string]struct{})
	var chunks []logentry.Chunk
	for _, c := range chain {
		produced := c.Classify(msg, consumed)
		chunks = append(chunks, elideEmpty(produced)...)
	}
	return logentry.ClassifiedMessage{Message: msg, Chunks: chunks, Consumed: consumed}
}

// elideEmpty drops chunks (and recursively their children) whose Text is
// empty after classification, per spec §3's invariant that every Chunk
// has non-empty text.
func elideEmpty(chunks []logentry.Chunk) []logentry.Chunk {
	var out []logentry.Chunk
	for _, c := range chunks {
		c.Children = elideEmpty(c.Children)
		if c.Text == "" && len(c.Children) == 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}
