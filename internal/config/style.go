package config

import "github.com/control-theory/woodchipper/internal/style"

// ResolveStyle builds the Style this Config selected: a base16 scheme file
// takes precedence if set, otherwise the named built-in palette (spec
// §4.6).
func (c *Config) ResolveStyle() (*style.Style, error) {
	if c.Base16Path != "" {
		return style.FromBase16(c.Base16Path)
	}
	return style.Named(c.StyleName)
}
