package parse

import (
	"encoding/json"
	"strings"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// jsonParser accepts lines whose first non-space byte is '{'. Well-known
// keys map to the normalized fields case-insensitively; everything else is
// copied to Metadata preserving input order (spec §4.2). For each field the
// first matching key in the line wins, whatever its place in the alias
// lists below; a later alias of the same field is kept as Metadata.
type jsonParser struct{}

func (jsonParser) Name() string { return "json" }

func (jsonParser) Accept(raw string) bool {
	trimmed := strings.TrimLeft(raw, " \t")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

var timeKeys = []string{"time", "timestamp", "ts", "@timestamp"}
var levelKeys = []string{"level", "lvl", "severity"}
var textKeys = []string{"msg", "message", "text"}

func (jsonParser) Parse(raw string, meta *logentry.ReaderMetadata) logentry.Message {
	msg := logentry.Message{Kind: "json", Metadata: logentry.NewOrderedMap()}

	// decode preserving key order via json.Decoder + Token would be
	// needed for strict ordering guarantees across duplicate-key inputs;
	// for well-formed single-object lines, an ordered decode using
	// json.RawMessage + manual token walk keeps insertion order for
	// metadata exactly as encountered in the source text.
	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			// Malformed JSON: fall through to plain-like behavior. Per
			// spec §4.2/§4.3, a specialized parser never surfaces an
			// error; the chain order already guarantees plain is last,
			// but jsonParser.Accept already matched, so we must still
			// produce a Message here rather than erroring.
			return plainParser{}.Parse(raw, meta)
		}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return plainParser{}.Parse(raw, meta)
	}

	foundTime, foundLevel, foundText := "", "", ""
	var extractedTS string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			break
		}
		key, ok := keyTok.(string)
		if !ok {
			break
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			break
		}
		value := rawToString(raw)
		lower := strings.ToLower(key)

		switch {
		case foundTime == "" && containsKey(timeKeys, lower):
			foundTime = value
			extractedTS = value
		case foundLevel == "" && containsKey(levelKeys, lower):
			foundLevel = value
		case foundText == "" && containsKey(textKeys, lower):
			foundText = value
		default:
			msg.Metadata.Set(key, value)
		}
	}

	msg.Text = foundText
	msg.Level = parseLevel(foundLevel)

	extracted, found := parseFreeform(extractedTS)
	isRFC3339 := extractedTS != "" && isRFC3339(extractedTS)
	msg.Timestamp = resolveTimestamp(meta, extracted, found, isRFC3339)

	return msg
}

func containsKey(keys []string, k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}

// rawToString renders a json.RawMessage scalar (string, number, bool, null)
// as plain text for metadata/text/level/timestamp fields. Nested
// objects/arrays are rendered as their JSON text as it appears in the line.
func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
