package style

import (
	"os"
	"path/filepath"
	"testing"
)

// levelNames mirrors logentry.Level.String()'s output for the six named
// levels.
var levelNames = []string{"trace", "debug", "info", "warn", "error", "fatal"}

func TestForKindResolvesLevelChunksForBuiltinPalettes(t *testing.T) {
	for _, name := range []string{"dark", "light"} {
		st, err := Named(name)
		if err != nil {
			t.Fatalf("Named(%q): %v", name, err)
		}
		for _, level := range levelNames {
			a := st.ForKind("level-" + level)
			if a == (Attrs{}) {
				t.Fatalf("%s palette: ForKind(%q) = zero Attrs, want a resolved color", name, "level-"+level)
			}
		}
	}
}

func TestForKindNoneStyleHasNoColors(t *testing.T) {
	st, err := Named("none")
	if err != nil {
		t.Fatalf("Named(none): %v", err)
	}
	if a := st.ForKind("level-info"); a != (Attrs{}) {
		t.Fatalf("none style: ForKind(level-info) = %+v, want zero Attrs", a)
	}
}

func TestForKindResolvesLevelChunksForBase16(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scheme.yaml")
	const scheme = `
base00: "000000"
base01: "111111"
base03: "222222"
base04: "333333"
base05: "444444"
base08: "ff0000"
base0A: "ffff00"
base0B: "00ff00"
base0C: "00ffff"
base0D: "0000ff"
base0E: "ff00ff"
`
	if err := os.WriteFile(path, []byte(scheme), 0o644); err != nil {
		t.Fatalf("writing scheme file: %v", err)
	}

	st, err := FromBase16(path)
	if err != nil {
		t.Fatalf("FromBase16: %v", err)
	}
	for _, level := range levelNames {
		a := st.ForKind("level-" + level)
		if a == (Attrs{}) {
			t.Fatalf("ForKind(%q) = zero Attrs, want a resolved color", "level-"+level)
		}
	}
}

func TestForKindFallsBackToParentPrefix(t *testing.T) {
	st, err := Named("dark")
	if err != nil {
		t.Fatalf("Named(dark): %v", err)
	}
	// "metadata-key" is itself a byKind entry; a kind one level deeper
	// ("metadata-key-extra", not a real kind but exercising the fallback)
	// should still resolve through the "-"-stripping fallback.
	a := st.ForKind("metadata-key-extra")
	want := st.ForKind("metadata-key")
	if a != want {
		t.Fatalf("ForKind(metadata-key-extra) = %+v, want fallback to metadata-key %+v", a, want)
	}
}

func TestForKindUnknownKindReturnsZeroAttrs(t *testing.T) {
	st, err := Named("dark")
	if err != nil {
		t.Fatalf("Named(dark): %v", err)
	}
	if a := st.ForKind("nonexistent"); a != (Attrs{}) {
		t.Fatalf("ForKind(nonexistent) = %+v, want zero Attrs", a)
	}
}

func TestForKindNilStyleReturnsZeroAttrs(t *testing.T) {
	var st *Style
	if a := st.ForKind("level-info"); a != (Attrs{}) {
		t.Fatalf("nil Style: ForKind(level-info) = %+v, want zero Attrs", a)
	}
}
