package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newResolved(t *testing.T, f *Flags, v *viper.Viper, args []string, isTTY bool) *Config {
	t.Helper()
	c, err := Resolve(f, v, args, isTTY)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return c
}

func TestDefaultRendererTTYRule(t *testing.T) {
	cmd := &cobra.Command{}
	v := viper.New()
	f := BindFlags(cmd, v)

	c := newResolved(t, f, v, nil, true)
	if c.Renderer != RendererInteractive {
		t.Fatalf("renderer = %q, want interactive when stdout is a tty", c.Renderer)
	}

	c2 := newResolved(t, f, v, nil, false)
	if c2.Renderer != RendererPlain {
		t.Fatalf("renderer = %q, want plain when stdout is not a tty", c2.Renderer)
	}
}

func TestEnvVarsShadowedByFlags(t *testing.T) {
	t.Setenv("WD_NAMESPACE", "from-env")

	cmd := &cobra.Command{}
	v := viper.New()
	f := BindFlags(cmd, v)

	c := newResolved(t, f, v, nil, false)
	if c.Namespace != "from-env" {
		t.Fatalf("namespace = %q, want from-env (env fallback)", c.Namespace)
	}

	if err := cmd.Flags().Set("namespace", "from-flag"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	c2 := newResolved(t, f, v, nil, false)
	if c2.Namespace != "from-flag" {
		t.Fatalf("namespace = %q, want from-flag (flag wins over env)", c2.Namespace)
	}
}

func TestPositionalKeyValueSwitchesToSelector(t *testing.T) {
	cmd := &cobra.Command{}
	v := viper.New()
	f := BindFlags(cmd, v)

	c := newResolved(t, f, v, []string{"app=frontend"}, false)
	if c.Selector != "app=frontend" {
		t.Fatalf("selector = %q, want app=frontend", c.Selector)
	}
	if len(c.PodSubstr) != 0 {
		t.Fatalf("PodSubstr = %v, want empty when a single key=value arg is given", c.PodSubstr)
	}

	c2 := newResolved(t, f, v, []string{"api", "worker"}, false)
	if len(c2.PodSubstr) != 2 {
		t.Fatalf("PodSubstr = %v, want [api worker]", c2.PodSubstr)
	}
	if c2.Selector != "" {
		t.Fatalf("selector = %q, want empty for substring mode", c2.Selector)
	}
}

func TestUnknownRendererIsConfigError(t *testing.T) {
	cmd := &cobra.Command{}
	v := viper.New()
	f := BindFlags(cmd, v)
	f.Renderer = "bogus"

	if _, err := Resolve(f, v, nil, false); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestLoadRegexSpecs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regexes.yaml")
	content := `
- pattern: '^(?P<datetime>\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})(?:,\d+) - (?P<level>\w+)\s* - (?P<file>\S+)\s* -(?P<text>.+)$'
  datetime: '%Y-%m-%d %H:%M:%S'
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	specs, err := LoadRegexSpecs(path)
	if err != nil {
		t.Fatalf("LoadRegexSpecs: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	if specs[0].Datetime != "%Y-%m-%d %H:%M:%S" {
		t.Fatalf("datetime = %q", specs[0].Datetime)
	}
}
