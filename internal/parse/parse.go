// Package parse turns raw log lines into normalized Messages, trying a
// chain of parsers in order. The chain order is fixed: json, logrus, klog,
// user-supplied regex parsers, plain. The terminal plain parser accepts
// everything, so parsing never fails (spec §4.2).
package parse

import (
	"time"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// Parser is one entry in the chain. Accept is a cheap pre-check; Parse is
// only invoked when Accept returns true. A Parser must not return true
// from Accept and then fail inside Parse for a reason Accept could have
// caught cheaply — the chain falls through to the next parser only based
// on Accept, never on a Parse-time error.
type Parser interface {
	Name() string
	Accept(raw string) bool
	Parse(raw string, meta *logentry.ReaderMetadata) logentry.Message
}

// Chain runs raw through parsers in order and returns the first match's
// Message. The caller supplies the full ordered parser list (built-ins
// plus any configured regex parsers insert between klog and plain); Chain
// itself holds no state. Each Parser implementation is responsible for
// applying the reader-metadata timestamp tie-break rule of spec §4.2
// itself, since only the parser knows whether its own extraction was
// RFC-3339.
func Chain(parsers []Parser, raw string, meta *logentry.ReaderMetadata) logentry.Message {
	for _, p := range parsers {
		if p.Accept(raw) {
			msg := p.Parse(raw, meta)
			mergeReaderMetadata(msg.Metadata, meta)
			return msg
		}
	}
	// Unreachable if the chain ends in plainParser, which always accepts.
	return logentry.Message{Kind: "plain", Text: raw, Metadata: logentry.NewOrderedMap()}
}

// mergeReaderMetadata copies any reader-supplied Extra attributes (spec
// §4.3's "one chunk per metadata key not consumed" covers these the same
// as parser-derived keys) into dst, skipping a key the parser already set
// from the line's own content.
func mergeReaderMetadata(dst *logentry.OrderedMap, meta *logentry.ReaderMetadata) {
	if dst == nil || meta == nil || meta.Extra == nil {
		return
	}
	meta.Extra.Range(func(key, value string) {
		if _, exists := dst.Get(key); !exists {
			dst.Set(key, value)
		}
	})
}

// Default returns the built-in chain (json, logrus, klog, plain) with no
// user regex parsers inserted. Callers that load a regex config splice
// their parsers in before plain via DefaultWithRegex.
func Default() []Parser {
	return []Parser{jsonParser{}, logrusParser{}, klogParser{}, plainParser{}}
}

// DefaultWithRegex returns the built-in chain with the given regex parsers
// inserted between klog and plain, preserving the fixed order of spec §9.
func DefaultWithRegex(regexParsers []Parser) []Parser {
	chain := make([]Parser, 0, 4+len(regexParsers))
	chain = append(chain, jsonParser{}, logrusParser{}, klogParser{})
	chain = append(chain, regexParsers...)
	chain = append(chain, plainParser{})
	return chain
}

// resolveTimestamp implements the tie-break rule of spec §4.2: a
// reader-supplied timestamp wins unless the parser itself extracted an
// RFC-3339 timestamp from the body. extracted/extractedIsRFC3339 describe
// what the parser found in the line itself (extracted may be the zero
// time if nothing was found).
func resolveTimestamp(meta *logentry.ReaderMetadata, extracted time.Time, found, extractedIsRFC3339 bool) *time.Time {
	if meta != nil && meta.Timestamp != nil && !extractedIsRFC3339 {
		t := *meta.Timestamp
		return &t
	}
	if found {
		t := extracted
		return &t
	}
	return nil
}

// commonTimeLayouts are tried in order by parsers doing free-form
// timestamp extraction (plain parser, JSON non-RFC3339 fallback).
var commonTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseFreeform(s string) (time.Time, bool) {
	for _, layout := range commonTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func isRFC3339(s string) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return true
	}
	return false
}
