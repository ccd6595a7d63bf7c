//go:build unix

package config

// isUnix reports whether stdin-alt (reading keypresses from /dev/tty while
// the main stream comes from stdin) is supported on this platform, per
// spec §6's reader default rule. Mirrors internal/reader's
// stdinalt_unix.go / stdinalt_other.go split.
func isUnix() bool { return true }
