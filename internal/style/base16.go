package style

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// base16Scheme is the YAML shape of a base16 scheme file: a flat mapping
// with at minimum base00..base0F hex strings (spec §6).
type base16Scheme struct {
	Base00 string `yaml:"base00"`
	Base01 string `yaml:"base01"`
	Base02 string `yaml:"base02"`
	Base03 string `yaml:"base03"`
	Base04 string `yaml:"base04"`
	Base05 string `yaml:"base05"`
	Base06 string `yaml:"base06"`
	Base07 string `yaml:"base07"`
	Base08 string `yaml:"base08"`
	Base09 string `yaml:"base09"`
	Base0A string `yaml:"base0A"`
	Base0B string `yaml:"base0B"`
	Base0C string `yaml:"base0C"`
	Base0D string `yaml:"base0D"`
	Base0E string `yaml:"base0E"`
	Base0F string `yaml:"base0F"`
}

// FromBase16 loads a base16 scheme file and maps its canonical roles onto
// chunk kinds and levels. Missing bases degrade to the terminal default
// (spec §4.6) rather than erroring, since a scheme author might only ship
// a partial palette.
func FromBase16(path string) (*Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading base16 scheme %s: %w", path, err)
	}
	var scheme base16Scheme
	if err := yaml.Unmarshal(data, &scheme); err != nil {
		return nil, fmt.Errorf("parsing base16 scheme %s: %w", path, err)
	}

	color := func(hex string) lipgloss.Color {
		if hex == "" {
			return ""
		}
		return lipgloss.Color("#" + hex)
	}

	byKind := map[string]Attrs{
		"timestamp-date": {FG: color(scheme.Base03)},
		"timestamp-time": {FG: color(scheme.Base04)},
		"text":           {FG: color(scheme.Base05)},
		"metadata-key":   {FG: color(scheme.Base0C)},
		"metadata-value": {FG: color(scheme.Base0D)},
		"context-file":   {FG: color(scheme.Base0E)},
	}
	byLevel := map[string]Attrs{
		"trace": {FG: color(scheme.Base03)},
		"debug": {FG: color(scheme.Base0D)},
		"info":  {FG: color(scheme.Base0B)},
		"warn":  {FG: color(scheme.Base0A), Bold: true},
		"error": {FG: color(scheme.Base08), Bold: true},
		"fatal": {FG: color(scheme.Base00), BG: color(scheme.Base08), Bold: true},
	}
	return New(byKind, byLevel), nil
}
