package parse

import (
	"regexp"
	"strconv"
	"time"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// plainParser is the terminal parser: it accepts every line. It attempts
// opportunistic timestamp extraction, guarded against known-spurious
// matches (pure integers, version-like triples, years outside a sane
// band), and prefers readerMeta.timestamp over anything it finds (spec
// §4.2).
type plainParser struct{}

func (plainParser) Name() string { return "plain" }

func (plainParser) Accept(raw string) bool { return true }

// timestampCandidate matches a handful of common timestamp shapes that
// might appear anywhere in a plain-text line.
var timestampCandidate = regexp.MustCompile(
	`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:?\d{2})?`,
)

const (
	minSaneYear = 1990
	maxSaneYear = 2200
)

func (plainParser) Parse(raw string, meta *logentry.ReaderMetadata) logentry.Message {
	msg := logentry.Message{Kind: "plain", Text: raw, Metadata: logentry.NewOrderedMap()}

	candidate := timestampCandidate.FindString(raw)
	var extracted time.Time
	found := false
	isRFC3339 := false
	if candidate != "" && !isSpurious(candidate) {
		if t, ok := parseFreeform(candidate); ok {
			extracted = t
			found = true
			isRFC3339 = isRFC3339Layout(candidate)
		}
	}

	msg.Timestamp = resolveTimestamp(meta, extracted, found, isRFC3339)
	return msg
}

// isSpurious rejects candidates that are structurally timestamp-shaped but
// almost certainly are not: those whose leading four characters are not a
// year inside a sane band. A trailing zone offset, including a negative
// one such as "-07:00", does not make a candidate spurious.
func isSpurious(candidate string) bool {
	yearStr := candidate[:4]
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < minSaneYear || year > maxSaneYear {
		return true
	}
	// version-like triples such as "1234-56-78 90:12:34" sharing the
	// same shape as a date are still structurally valid dates; the year
	// band check above is the practical filter the spec asks for.
	return false
}

func isRFC3339Layout(s string) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return true
	}
	return false
}
