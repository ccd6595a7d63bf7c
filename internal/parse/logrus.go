package parse

import (
	"strings"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// logrusParser accepts lines in logrus's text-formatter key=value style:
// the line begins with `key="..."` or `key=token` and contains at least
// one '=' (spec §4.2).
type logrusParser struct{}

func (logrusParser) Name() string { return "logrus" }

func (logrusParser) Accept(raw string) bool {
	trimmed := strings.TrimLeft(raw, " \t")
	if !strings.Contains(trimmed, "=") {
		return false
	}
	eq := strings.IndexByte(trimmed, '=')
	if eq <= 0 {
		return false
	}
	key := trimmed[:eq]
	return isLogrusKey(key)
}

func isLogrusKey(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		if r == '_' || r == '-' || r == '.' {
			continue
		}
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

func (logrusParser) Parse(raw string, meta *logentry.ReaderMetadata) logentry.Message {
	msg := logentry.Message{Kind: "logrus", Metadata: logentry.NewOrderedMap()}

	pairs := tokenizeKV(raw)

	foundTime, foundLevel, foundText := "", "", ""
	for _, p := range pairs {
		lower := strings.ToLower(p.key)
		switch {
		case foundTime == "" && containsKey(timeKeys, lower):
			foundTime = p.value
		case foundLevel == "" && containsKey(levelKeys, lower):
			foundLevel = p.value
		case foundText == "" && containsKey(textKeys, lower):
			foundText = p.value
		default:
			msg.Metadata.Set(p.key, p.value)
		}
	}

	msg.Text = foundText
	msg.Level = parseLevel(foundLevel)

	extracted, found := parseFreeform(foundTime)
	isRFC3339 := foundTime != "" && isRFC3339(foundTime)
	msg.Timestamp = resolveTimestamp(meta, extracted, found, isRFC3339)

	return msg
}

type kvPair struct{ key, value string }

// tokenizeKV splits a logrus text-formatter line into key=value pairs,
// honoring double-quoted values that may contain spaces and escaped
// quotes.
func tokenizeKV(line string) []kvPair {
	var pairs []kvPair
	i := 0
	n := len(line)
	for i < n {
		for i < n && line[i] == ' ' {
			i++
		}
		start := i
		for i < n && line[i] != '=' && line[i] != ' ' {
			i++
		}
		if i >= n || line[i] != '=' {
			// Not a key=value token (bare word); skip to next space.
			for i < n && line[i] != ' ' {
				i++
			}
			continue
		}
		key := line[start:i]
		i++ // skip '='
		var value string
		if i < n && line[i] == '"' {
			i++
			valStart := i
			var sb strings.Builder
			for i < n && line[i] != '"' {
				if line[i] == '\\' && i+1 < n {
					sb.WriteByte(line[i+1])
					i += 2
					continue
				}
				sb.WriteByte(line[i])
				i++
			}
			_ = valStart
			value = sb.String()
			if i < n {
				i++ // skip closing quote
			}
		} else {
			valStart := i
			for i < n && line[i] != ' ' {
				i++
			}
			value = line[valStart:i]
		}
		pairs = append(pairs, kvPair{key: key, value: value})
	}
	return pairs
}
