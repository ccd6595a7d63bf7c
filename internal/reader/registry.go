package reader

import (
	"fmt"
	"os"

	"github.com/control-theory/woodchipper/internal/config"
)

// New constructs the Reader named by cfg.Reader. The kubernetes variant is
// constructed by internal/reader/kubernetes and passed in by the caller
// (cmd/woodchipper), since it needs additional wiring (namespace/selector)
// beyond what this registry's simple switch handles; callers that don't
// need Kubernetes can rely on this function alone.
func New(kind config.ReaderKind) (Reader, error) {
	switch kind {
	case config.ReaderStdin:
		return NewStdinReader(os.Stdin), nil
	case config.ReaderStdinAlt:
		return StdinAltReader{}, nil
	case config.ReaderNull:
		return NullReader{}, nil
	default:
		return nil, fmt.Errorf("reader %q must be constructed by its own package", kind)
	}
}
