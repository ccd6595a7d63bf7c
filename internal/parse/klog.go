package parse

import (
	"strconv"
	"strings"
	"time"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// klogParser accepts lines in Kubernetes's klog header format:
// one of IWEF, followed by MMDD HH:MM:SS.uuuuuu, e.g.
//
//	I0102 03:04:05.000000    1 main.go:10] hello
//
// The year is missing from klog's header and is supplied from the current
// UTC year (spec §4.2, §8 S2). The severity letters mirror klog's own
// convention (k8s.io/klog/v2's Info/Warning/Error/Fatal severities).
type klogParser struct{}

func (klogParser) Name() string { return "klog" }

const klogHeaderLen = len("I0102 03:04:05.000000")

func (klogParser) Accept(raw string) bool {
	if len(raw) < klogHeaderLen+1 {
		return false
	}
	if !strings.ContainsRune("IWEF", rune(raw[0])) {
		return false
	}
	if raw[1] < '0' || raw[1] > '9' {
		return false
	}
	// MMDD HH:MM:SS.uuuuuu
	body := raw[1:klogHeaderLen]
	for i, r := range body {
		switch i {
		case 4: // space before HH
			if r != ' ' {
				return false
			}
		case 7, 10: // ':' separators
			if r != ':' {
				return false
			}
		case 13: // '.'
			if r != '.' {
				return false
			}
		default:
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

func (klogParser) Parse(raw string, meta *logentry.ReaderMetadata) logentry.Message {
	msg := logentry.Message{Kind: "klog", Metadata: logentry.NewOrderedMap()}
	msg.Level = klogLevel(raw[0])

	month, _ := strconv.Atoi(raw[1:3])
	day, _ := strconv.Atoi(raw[3:5])
	hour, _ := strconv.Atoi(raw[6:8])
	minute, _ := strconv.Atoi(raw[9:11])
	second, _ := strconv.Atoi(raw[12:14])
	micros, _ := strconv.Atoi(raw[15:21])

	year := time.Now().UTC().Year()
	ts := time.Date(year, time.Month(month), day, hour, minute, second, micros*1000, time.UTC)

	// Rest of line after the header: "    1 main.go:10] hello"
	rest := raw[klogHeaderLen:]
	rest = strings.TrimLeft(rest, " \t")

	// Skip the threadid field (digits) up to the next space.
	i := 0
	for i < len(rest) && rest[i] != ' ' {
		i++
	}
	rest = strings.TrimLeft(rest[i:], " \t")

	// file:line] message
	if bracket := strings.IndexByte(rest, ']'); bracket >= 0 {
		loc := rest[:bracket]
		msg.Metadata.Set("file", loc)
		text := rest[bracket+1:]
		msg.Text = strings.TrimLeft(text, " ")
	} else {
		msg.Text = rest
	}

	isRFC3339 := false // klog's header is never RFC-3339
	msg.Timestamp = resolveTimestamp(meta, ts, true, isRFC3339)

	return msg
}

func klogLevel(b byte) logentry.Level {
	switch b {
	case 'I':
		return logentry.LevelInfo
	case 'W':
		return logentry.LevelWarn
	case 'E':
		return logentry.LevelError
	case 'F':
		return logentry.LevelFatal
	default:
		return logentry.LevelUnknown
	}
}
