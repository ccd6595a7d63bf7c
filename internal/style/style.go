// Package style resolves a color scheme — built-in palette or a base16
// scheme file — into per-kind and per-level terminal attribute tuples, and
// exposes them as lipgloss styles for the renderers.
package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Attrs is a resolved (fg, bg, bold, italic, underline) tuple.
type Attrs struct {
	FG        lipgloss.Color
	BG        lipgloss.Color
	Bold      bool
	Italic    bool
	Underline bool
}

// Lipgloss renders Attrs as a lipgloss.Style.
func (a Attrs) Lipgloss() lipgloss.Style {
	s := lipgloss.NewStyle()
	if a.FG != "" {
		s = s.Foreground(a.FG)
	}
	if a.BG != "" {
		s = s.Background(a.BG)
	}
	if a.Bold {
		s = s.Bold(true)
	}
	if a.Italic {
		s = s.Italic(true)
	}
	if a.Underline {
		s = s.Underline(true)
	}
	return s
}

// Style is the resolved, immutable mapping from chunk kind and message
// level to display attributes. Built once from config and never mutated
// (spec §3, §5).
type Style struct {
	byKind  map[string]Attrs
	byLevel map[string]Attrs
}

// New builds a Style from a kind->Attrs map and a level->Attrs map. Callers
// use Named or FromBase16 rather than calling New directly.
func New(byKind, byLevel map[string]Attrs) *Style {
	return &Style{byKind: byKind, byLevel: byLevel}
}

// ForKind resolves the attributes for a chunk kind. A "level-<name>" kind
// (produced by the level classifier, spec §4.3) resolves through ForLevel
// against byLevel rather than byKind, since level colors are keyed by
// level name, not chunk kind. Anything else falls back to the mapping for
// its parent kind prefix (e.g. "metadata-key" -> "metadata") and finally
// to the terminal default (zero Attrs) if nothing matches.
func (s *Style) ForKind(kind string) Attrs {
	if s == nil {
		return Attrs{}
	}
	if name, ok := strings.CutPrefix(kind, "level-"); ok {
		return s.ForLevel(name)
	}
	if a, ok := s.byKind[kind]; ok {
		return a
	}
	if idx := strings.LastIndexByte(kind, '-'); idx > 0 {
		return s.ForKind(kind[:idx])
	}
	return Attrs{}
}

// ForLevel resolves the attributes for a message level name.
func (s *Style) ForLevel(level string) Attrs {
	if s == nil {
		return Attrs{}
	}
	if a, ok := s.byLevel[level]; ok {
		return a
	}
	return Attrs{}
}

// Named returns a built-in palette by name, or an error if unknown.
func Named(name string) (*Style, error) {
	switch name {
	case "dark":
		return darkPalette(), nil
	case "light":
		return lightPalette(), nil
	case "none":
		return New(nil, nil), nil
	default:
		return nil, fmt.Errorf("unknown style %q", name)
	}
}

func darkPalette() *Style {
	return New(
		map[string]Attrs{
			"timestamp-date": {FG: lipgloss.Color("8")},
			"timestamp-time": {FG: lipgloss.Color("7")},
			"text":           {FG: lipgloss.Color("15")},
			"metadata-key":   {FG: lipgloss.Color("6")},
			"metadata-value": {FG: lipgloss.Color("14")},
			"context-file":   {FG: lipgloss.Color("5")},
		},
		map[string]Attrs{
			"trace": {FG: lipgloss.Color("8")},
			"debug": {FG: lipgloss.Color("4")},
			"info":  {FG: lipgloss.Color("2")},
			"warn":  {FG: lipgloss.Color("3"), Bold: true},
			"error": {FG: lipgloss.Color("1"), Bold: true},
			"fatal": {FG: lipgloss.Color("1"), BG: lipgloss.Color("7"), Bold: true},
		},
	)
}

func lightPalette() *Style {
	return New(
		map[string]Attrs{
			"timestamp-date": {FG: lipgloss.Color("250")},
			"timestamp-time": {FG: lipgloss.Color("240")},
			"text":           {FG: lipgloss.Color("0")},
			"metadata-key":   {FG: lipgloss.Color("30")},
			"metadata-value": {FG: lipgloss.Color("24")},
			"context-file":   {FG: lipgloss.Color("91")},
		},
		map[string]Attrs{
			"trace": {FG: lipgloss.Color("250")},
			"debug": {FG: lipgloss.Color("26")},
			"info":  {FG: lipgloss.Color("28")},
			"warn":  {FG: lipgloss.Color("130"), Bold: true},
			"error": {FG: lipgloss.Color("124"), Bold: true},
			"fatal": {FG: lipgloss.Color("15"), BG: lipgloss.Color("124"), Bold: true},
		},
	)
}
