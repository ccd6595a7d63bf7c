package logentry

import "time"

// EntryKind tags the variant of a LogEntry.
type EntryKind int

const (
	EntryMessage EntryKind = iota
	EntryEOF
	EntryInternal
)

// InternalLevel is the severity of an operator-facing Internal notice.
type InternalLevel int

const (
	InternalInfo InternalLevel = iota
	InternalWarn
	InternalError
)

// ReaderMetadata carries reader-supplied hints about a raw line: where it
// came from and, if the reader already knows it, an authoritative
// timestamp (e.g. the Kubernetes API's per-line RFC3339Nano prefix).
// Extra carries attributes the reader already knows about the line's
// origin (e.g. the Kubernetes reader's namespace/node/pod-label set) that
// the parser itself could never recover from line text alone; Chain
// merges these into the parsed Message's Metadata (spec §4.3), without
// overwriting a key the parser already set from the line's own content.
type ReaderMetadata struct {
	Source    string
	Timestamp *time.Time
	Extra     *OrderedMap
}

// LogEntry is the tagged union crossing the reader->main channel. Exactly
// one of the Kind-specific field groups is populated:
//   - EntryMessage: Raw (and optionally Meta)
//   - EntryEOF: no fields
//   - EntryInternal: Level, Text
type LogEntry struct {
	Kind  EntryKind
	Raw   string
	Meta  *ReaderMetadata
	Level InternalLevel
	Text  string
}

// Level is the normalized severity of a parsed Message.
type Level int

const (
	LevelUnknown Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String renders the level the way parsers and renderers display it:
// lowercase, matching the `level` field of the JSON renderer (spec §4.5).
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Message is parser output: a normalized representation of one log line.
type Message struct {
	Kind      string // "json" | "plain" | "regex" | "klog" | "logrus"
	Timestamp *time.Time
	Level     Level
	Text      string
	Metadata  *OrderedMap
}

// Slot is the horizontal placement band a Chunk renders into.
type Slot int

const (
	SlotLeft Slot = iota
	SlotCenter
	SlotRight
)

// Alignment is how a Chunk's text is justified within its slot.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Wrap controls how a Chunk participates in line reflow.
type Wrap int

const (
	WrapNormal Wrap = iota
	WrapNone
	WrapBreakBefore
	WrapBreakAfter
)

// Chunk is classifier output: a styled, slotted, weighted span of text.
// Children carry sub-spans with their own styling. Renderers read each
// child's own Slot and Weight; nothing copies them from the parent, and a
// child is only visited when its parent passes the weight cutoff.
type Chunk struct {
	Text      string
	Kind      string
	Slot      Slot
	Alignment Alignment
	Weight    int
	Wrap      Wrap
	Padding   int
	Children  []Chunk
}

// ClassifiedMessage is the unit the renderer consumes: a Message plus the
// ordered top-level Chunks the classifier chain produced, and the set of
// metadata keys some classifier has already consumed (so the terminal
// metadata classifier does not re-emit them).
type ClassifiedMessage struct {
	Message  Message
	Chunks   []Chunk
	Consumed map[string]struct{}
}

// PlainText renders a ClassifiedMessage's chunks joined by single spaces,
// stripping all styling — the representation the filter stack and search
// engine match regexes against (spec §4.4.2).
func (cm ClassifiedMessage) PlainText() string {
	var out []byte
	first := true
	var walk func(c Chunk)
	walk = func(c Chunk) {
		if c.Text != "" {
			if !first {
				out = append(out, ' ')
			}
			out = append(out, c.Text...)
			first = false
		}
		for _, child := range c.Children {
			walk(child)
		}
	}
	for _, c := range cm.Chunks {
		walk(c)
	}
	return string(out)
}
