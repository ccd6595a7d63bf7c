package config

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/control-theory/woodchipper/internal/parse"
)

// Flags holds the raw CLI flag values bound by cmd/woodchipper before
// resolution. Environment variables WD_STYLE, WD_REGEXES, WD_NAMESPACE
// shadow the respective flags, but flags win when both are set (spec §6)
// — viper's own precedence (explicit Set beats bound env) gives us this
// for free as long as BindEnv is registered before flags are parsed.
type Flags struct {
	Renderer  string
	Reader    string
	Style     string
	Regexes   string
	Namespace string
	Selector  string
	PodSubstr []string
}

// BindFlags registers cobra flags on cmd and binds the corresponding
// WD_* environment variables via viper, per spec §6.
func BindFlags(cmd *cobra.Command, v *viper.Viper) *Flags {
	f := &Flags{}
	cmd.Flags().StringVarP(&f.Renderer, "renderer", "r", "", "interactive|styled|plain|json")
	cmd.Flags().StringVar(&f.Reader, "reader", "", "stdin|stdin-alt|kubernetes|null")
	cmd.Flags().StringVar(&f.Style, "style", "", "dark|light|none|base16:PATH")
	cmd.Flags().StringVar(&f.Regexes, "regexes", "", "path to a custom regex parser set")
	cmd.Flags().StringVarP(&f.Namespace, "namespace", "n", "", "Kubernetes namespace")

	_ = v.BindEnv("style", "WD_STYLE")
	_ = v.BindEnv("regexes", "WD_REGEXES")
	_ = v.BindEnv("namespace", "WD_NAMESPACE")
	_ = v.BindPFlag("style", cmd.Flags().Lookup("style"))
	_ = v.BindPFlag("regexes", cmd.Flags().Lookup("regexes"))
	_ = v.BindPFlag("namespace", cmd.Flags().Lookup("namespace"))

	return f
}

// Resolve builds an immutable Config from flags, positional args, and
// environment fallbacks (spec §6). args are the CLI's positional pod
// selectors; a single key=value argument switches to label-selector mode.
func Resolve(f *Flags, v *viper.Viper, args []string, isTTY bool) (*Config, error) {
	c := &Config{
		Namespace: v.GetString("namespace"),
	}

	c.Renderer = RendererKind(f.Renderer)
	if c.Renderer == "" {
		if isTTY {
			c.Renderer = RendererInteractive
		} else {
			c.Renderer = RendererPlain
		}
	}

	c.Reader = ReaderKind(f.Reader)
	if c.Reader == "" {
		if c.Renderer == RendererInteractive && isUnix() {
			c.Reader = ReaderStdinAlt
		} else {
			c.Reader = ReaderStdin
		}
	}

	styleValue := v.GetString("style")
	if err := applyStyle(c, styleValue); err != nil {
		return nil, err
	}

	if regexesPath := v.GetString("regexes"); regexesPath != "" {
		specs, err := LoadRegexSpecs(regexesPath)
		if err != nil {
			return nil, err
		}
		parsers, err := parse.CompileRegexParsers(specs)
		if err != nil {
			return nil, err
		}
		c.RegexSpecs = specs
		c.RegexParsers = parsers
	}

	if len(args) == 1 && isKeyValue(args[0]) {
		c.Selector = args[0]
	} else {
		c.PodSubstr = args
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func applyStyle(c *Config, value string) error {
	if value == "" {
		c.StyleName = "dark"
		return nil
	}
	const base16Prefix = "base16:"
	if len(value) > len(base16Prefix) && value[:len(base16Prefix)] == base16Prefix {
		c.Base16Path = value[len(base16Prefix):]
		return nil
	}
	switch value {
	case "dark", "light", "none":
		c.StyleName = value
		return nil
	default:
		return fmt.Errorf("unknown style %q", value)
	}
}

func isKeyValue(s string) bool {
	for i, r := range s {
		if r == '=' && i > 0 && i < len(s)-1 {
			return true
		}
	}
	return false
}

// StdoutIsTTY reports whether stdout is a terminal, used for the default
// renderer rule of spec §6.
func StdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// regexFile is the YAML shape of a custom regex parser set (spec §6): a
// sequence of {pattern, datetime, datetime_prepend}.
type regexFile []struct {
	Pattern         string `yaml:"pattern"`
	Datetime        string `yaml:"datetime"`
	DatetimePrepend string `yaml:"datetime_prepend"`
}

// LoadRegexSpecs reads and parses a regex config file (spec §6).
func LoadRegexSpecs(path string) ([]parse.RegexSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading regex config %s: %w", path, err)
	}
	var raw regexFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing regex config %s: %w", path, err)
	}
	specs := make([]parse.RegexSpec, 0, len(raw))
	for _, entry := range raw {
		specs = append(specs, parse.RegexSpec{
			Pattern:         entry.Pattern,
			Datetime:        entry.Datetime,
			DatetimePrepend: entry.DatetimePrepend,
		})
	}
	return specs, nil
}
