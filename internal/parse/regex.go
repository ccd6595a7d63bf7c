package parse

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// RegexSpec is one entry of the user-supplied regex config file (spec §6):
// a pattern with named capture groups, plus how to interpret the
// `datetime` group.
type RegexSpec struct {
	Pattern         string
	Datetime        string // "rfc2822" | "rfc3339" | a strftime-style layout
	DatetimePrepend string // optional strftime layout applied to current UTC to fill missing fields
}

// regexParser wraps one compiled RegexSpec as a Parser. Named capture
// groups `datetime`, `level`, `text` map to the normalized fields; every
// other named group becomes metadata in capture order (spec §4.2).
type regexParser struct {
	re              *regexp.Regexp
	datetimeLayout  string
	datetimeIsRFC   string // "rfc2822" | "rfc3339" | ""
	prependLayout   string
	groupNames      []string
}

// CompileRegexParsers compiles the user regex config into Parsers, in the
// order given (first-match-wins among regex parsers, same as the rest of
// the chain).
func CompileRegexParsers(specs []RegexSpec) ([]Parser, error) {
	parsers := make([]Parser, 0, len(specs))
	for _, spec := range specs {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling regex parser pattern %q: %w", spec.Pattern, err)
		}
		p := &regexParser{re: re, groupNames: re.SubexpNames()}
		switch spec.Datetime {
		case "rfc2822":
			p.datetimeIsRFC = "rfc2822"
		case "rfc3339":
			p.datetimeIsRFC = "rfc3339"
		default:
			p.datetimeLayout = strftimeToGoLayout(spec.Datetime)
		}
		if spec.DatetimePrepend != "" {
			p.prependLayout = strftimeToGoLayout(spec.DatetimePrepend)
		}
		parsers = append(parsers, p)
	}
	return parsers, nil
}

func (p *regexParser) Name() string { return "regex" }

func (p *regexParser) Accept(raw string) bool {
	return p.re.MatchString(raw)
}

func (p *regexParser) Parse(raw string, meta *logentry.ReaderMetadata) logentry.Message {
	msg := logentry.Message{Kind: "regex", Metadata: logentry.NewOrderedMap()}

	match := p.re.FindStringSubmatch(raw)
	if match == nil {
		return plainParser{}.Parse(raw, meta)
	}

	var datetimeStr string
	for i, name := range p.groupNames {
		if name == "" || i >= len(match) {
			continue
		}
		value := match[i]
		switch name {
		case "datetime":
			datetimeStr = value
		case "level":
			msg.Level = parseLevel(value)
		case "text":
			msg.Text = value
		default:
			msg.Metadata.Set(name, value)
		}
	}

	ts, found, isRFC3339 := p.parseDatetime(datetimeStr)
	msg.Timestamp = resolveTimestamp(meta, ts, found, isRFC3339)

	return msg
}

func (p *regexParser) parseDatetime(s string) (time.Time, bool, bool) {
	if s == "" {
		return time.Time{}, false, false
	}
	switch p.datetimeIsRFC {
	case "rfc2822":
		if t, err := time.Parse(time.RFC1123Z, s); err == nil {
			return t.UTC(), true, false
		}
		if t, err := time.Parse(time.RFC1123, s); err == nil {
			return t.UTC(), true, false
		}
		return time.Time{}, false, false
	case "rfc3339":
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.UTC(), true, true
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UTC(), true, true
		}
		return time.Time{}, false, false
	default:
		full := s
		if p.prependLayout != "" {
			prefix := time.Now().UTC().Format(p.prependLayout)
			full = prefix + s
		}
		layout := p.datetimeLayout
		if p.prependLayout != "" {
			layout = p.prependLayout + p.datetimeLayout
		}
		t, err := time.Parse(layout, full)
		if err != nil {
			return time.Time{}, false, false
		}
		return t.UTC(), true, false
	}
}

// strftimeToGoLayout translates the common strftime directives used in
// regex config files (spec §6: "%Y-%m-%d %H:%M:%S") into Go's reference
// layout. Supported directives: %Y %y %m %d %H %M %S %f %z %Z; any other
// text is left unchanged.
func strftimeToGoLayout(strftime string) string {
	replacer := strings.NewReplacer(
		"%Y", "2006",
		"%y", "06",
		"%m", "01",
		"%d", "02",
		"%H", "15",
		"%M", "04",
		"%S", "05",
		"%f", "000000",
		"%z", "-0700",
		"%Z", "MST",
	)
	return replacer.Replace(strftime)
}
