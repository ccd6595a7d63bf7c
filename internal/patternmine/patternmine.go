// Package patternmine feeds message text through an online log-template
// miner (Drain3) so the optional pattern classifier can group recurring
// log shapes. This is the supplemental feature named in SPEC_FULL.md's
// DOMAIN STACK section: the teacher depends on github.com/jaeyo/go-drain3
// but never wires it into its own rendering path (gonzo uses it for a
// separate "top patterns" panel); here it becomes a classifier input.
package patternmine

import (
	"sync"

	drain3 "github.com/jaeyo/go-drain3"
)

// Miner clusters log lines into templates. It is
// safe for concurrent use by multiple goroutines, though in practice only
// the single pipeline thread calls Add (spec §5).
type Miner struct {
	mu   sync.Mutex
	tree *drain3.Drain
}

// New returns a Miner with the library's default clustering parameters.
func New() *Miner {
	return &Miner{tree: drain3.New(drain3.DefaultConfig())}
}

// Add feeds one line into the miner and returns the current template text
// of the cluster it joined; a cluster's template can change as later lines
// join it.
func (m *Miner) Add(line string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cluster := m.tree.AddLogMessage(line)
	if cluster == nil {
		return ""
	}
	return cluster.Template
}
