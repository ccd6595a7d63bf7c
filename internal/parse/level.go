package parse

import (
	"strings"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// parseLevel maps common spellings to the normalized Level enum,
// case-insensitively (spec §4.2): I|INF|INFO, W|WARN|WARNING,
// E|ERR|ERROR|FATAL|CRIT, plus trace/debug.
func parseLevel(s string) logentry.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "T", "TRACE":
		return logentry.LevelTrace
	case "D", "DEBUG", "DBG":
		return logentry.LevelDebug
	case "I", "INF", "INFO":
		return logentry.LevelInfo
	case "W", "WARN", "WARNING":
		return logentry.LevelWarn
	case "E", "ERR", "ERROR":
		return logentry.LevelError
	case "F", "FATAL", "CRIT", "CRITICAL":
		return logentry.LevelFatal
	default:
		return logentry.LevelUnknown
	}
}
