package parse

import (
	"testing"
	"time"

	"github.com/control-theory/woodchipper/internal/logentry"
)

func TestJSONParser_S1(t *testing.T) {
	raw := `{"time":"2020-01-02T03:04:05Z","level":"info","msg":"hello","user":"a"}`
	chain := Default()
	msg := Chain(chain, raw, nil)

	if msg.Kind != "json" {
		t.Fatalf("kind = %q, want json", msg.Kind)
	}
	if msg.Text != "hello" {
		t.Fatalf("text = %q, want hello", msg.Text)
	}
	if msg.Level != logentry.LevelInfo {
		t.Fatalf("level = %v, want info", msg.Level)
	}
	if msg.Timestamp == nil || !msg.Timestamp.Equal(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("timestamp = %v, want 2020-01-02T03:04:05Z", msg.Timestamp)
	}
	if v, ok := msg.Metadata.Get("user"); !ok || v != "a" {
		t.Fatalf("metadata[user] = %q, %v, want a, true", v, ok)
	}
}

func TestKlogParser_S2(t *testing.T) {
	raw := "I0102 03:04:05.000000    1 main.go:10] hello"
	chain := Default()
	msg := Chain(chain, raw, nil)

	if msg.Kind != "klog" {
		t.Fatalf("kind = %q, want klog", msg.Kind)
	}
	wantYear := time.Now().UTC().Year()
	if msg.Timestamp == nil {
		t.Fatalf("timestamp is nil")
	}
	want := time.Date(wantYear, 1, 2, 3, 4, 5, 0, time.UTC)
	if !msg.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", msg.Timestamp, want)
	}
	if msg.Level != logentry.LevelInfo {
		t.Fatalf("level = %v, want info", msg.Level)
	}
	if msg.Text != "hello" {
		t.Fatalf("text = %q, want hello", msg.Text)
	}
	if v, ok := msg.Metadata.Get("file"); !ok || v != "main.go:10" {
		t.Fatalf("metadata[file] = %q, %v, want main.go:10, true", v, ok)
	}
}

func TestRegexParser_S3(t *testing.T) {
	spec := RegexSpec{
		Pattern:  `^(?P<datetime>\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})(?:,\d+) - (?P<level>\w+)\s* - (?P<file>\S+)\s* -(?P<text>.+)$`,
		Datetime: "%Y-%m-%d %H:%M:%S",
	}
	regexParsers, err := CompileRegexParsers([]RegexSpec{spec})
	if err != nil {
		t.Fatalf("CompileRegexParsers: %v", err)
	}
	chain := DefaultWithRegex(regexParsers)

	raw := "2019-07-03 12:02:13,977 - DEBUG    - test.py:9 - hi"
	msg := Chain(chain, raw, nil)

	if msg.Kind != "regex" {
		t.Fatalf("kind = %q, want regex", msg.Kind)
	}
	if msg.Level != logentry.LevelDebug {
		t.Fatalf("level = %v, want debug", msg.Level)
	}
	if msg.Text != " hi" {
		t.Fatalf("text = %q, want ' hi'", msg.Text)
	}
	if v, ok := msg.Metadata.Get("file"); !ok || v != "test.py:9" {
		t.Fatalf("metadata[file] = %q, %v, want test.py:9, true", v, ok)
	}
}

func TestParserChainTotality(t *testing.T) {
	chain := Default()
	inputs := []string{
		"just a plain line",
		`{"msg":"hi"}`,
		"key=value another=thing",
		"I0102 03:04:05.000000    1 main.go:10] hello",
		"",
	}
	for _, in := range inputs {
		msg := Chain(chain, in, nil)
		if msg.Kind == "" {
			t.Fatalf("input %q produced empty Kind", in)
		}
	}
}

func TestTimestampPreference(t *testing.T) {
	// spec §8 property 7: readerMeta.timestamp wins unless the parser
	// found an RFC-3339 timestamp in the body.
	metaTS := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	meta := &logentry.ReaderMetadata{Timestamp: &metaTS}

	chain := Default()
	msg := Chain(chain, "plain line with no timestamp", meta)
	if msg.Timestamp == nil || !msg.Timestamp.Equal(metaTS) {
		t.Fatalf("timestamp = %v, want meta timestamp %v", msg.Timestamp, metaTS)
	}

	bodyTS := "2020-01-02T03:04:05Z"
	msg2 := Chain(chain, `{"time":"`+bodyTS+`","msg":"hi"}`, meta)
	want := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if msg2.Timestamp == nil || !msg2.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want body RFC3339 %v (body should win over meta)", msg2.Timestamp, want)
	}
}

func TestChainMergesReaderMetadataExtra(t *testing.T) {
	extra := logentry.NewOrderedMap()
	extra.Set("k8s.namespace", "default")
	extra.Set("user", "reader-supplied") // parser already sets "user"; must not be overwritten
	meta := &logentry.ReaderMetadata{Extra: extra}

	chain := Default()
	raw := `{"msg":"hi","user":"a"}`
	msg := Chain(chain, raw, meta)

	if v, ok := msg.Metadata.Get("k8s.namespace"); !ok || v != "default" {
		t.Fatalf("metadata[k8s.namespace] = %q, %v, want default, true", v, ok)
	}
	if v, ok := msg.Metadata.Get("user"); !ok || v != "a" {
		t.Fatalf("metadata[user] = %q, %v, want parser value a (not reader-supplied) to win", v, ok)
	}
}

func TestLogrusParser(t *testing.T) {
	raw := `time="2020-01-02T03:04:05Z" level=warning msg="watch out" user=a file="main.go:9"`
	chain := Default()
	msg := Chain(chain, raw, nil)

	if msg.Kind != "logrus" {
		t.Fatalf("kind = %q, want logrus", msg.Kind)
	}
	if msg.Level != logentry.LevelWarn {
		t.Fatalf("level = %v, want warn", msg.Level)
	}
	if msg.Text != "watch out" {
		t.Fatalf("text = %q, want 'watch out'", msg.Text)
	}
	if v, ok := msg.Metadata.Get("user"); !ok || v != "a" {
		t.Fatalf("metadata[user] = %q, %v", v, ok)
	}
}
