// Package config resolves CLI flags and environment variables into an
// immutable Config snapshot, threaded through constructors rather than
// consulted via globals (spec §9). It is built once before any pipeline
// component starts and never mutated afterward (spec §5).
package config

import (
	"fmt"

	"github.com/control-theory/woodchipper/internal/parse"
)

// RendererKind names one of the four renderer variants (spec §6).
type RendererKind string

const (
	RendererInteractive RendererKind = "interactive"
	RendererStyled      RendererKind = "styled"
	RendererPlain       RendererKind = "plain"
	RendererJSON        RendererKind = "json"
)

// ReaderKind names one of the four reader variants (spec §4.1).
type ReaderKind string

const (
	ReaderStdin     ReaderKind = "stdin"
	ReaderStdinAlt  ReaderKind = "stdin-alt"
	ReaderKube      ReaderKind = "kubernetes"
	ReaderNull      ReaderKind = "null"
)

// Config is the immutable snapshot of user choices threaded through every
// component constructor (spec §2, §9).
type Config struct {
	Renderer RendererKind
	Reader   ReaderKind

	StyleName   string // "dark" | "light" | "none" | "" (use Base16Path instead)
	Base16Path  string

	RegexSpecs  []parse.RegexSpec
	RegexParsers []parse.Parser

	Namespace string
	Selector  string   // single key=value label selector
	PodSubstr []string // OR-semantics substring selectors

	ClusterPatterns bool
}

// Validate checks for the configuration errors named in spec §7
// (exit code 2): unknown renderer, unreadable regex file, malformed
// scheme file. Regex file loading itself happens in loader.go and base16
// scheme file loading in ResolveStyle (style.go); Validate only checks the
// values already resolved onto Config.
func (c *Config) Validate() error {
	switch c.Renderer {
	case RendererInteractive, RendererStyled, RendererPlain, RendererJSON:
	default:
		return fmt.Errorf("unknown renderer %q", c.Renderer)
	}
	switch c.Reader {
	case ReaderStdin, ReaderStdinAlt, ReaderKube, ReaderNull:
	default:
		return fmt.Errorf("unknown reader %q", c.Reader)
	}
	return nil
}

// ParserChain builds the ordered parser chain (built-ins plus any
// configured regex parsers) for this Config.
func (c *Config) ParserChain() []parse.Parser {
	if len(c.RegexParsers) == 0 {
		return parse.Default()
	}
	return parse.DefaultWithRegex(c.RegexParsers)
}
