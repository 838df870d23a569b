// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-paper/internal/fileutil"
)

// userConfigMarker identifies the per-user config directory in searched paths.
var userConfigMarker = filepath.Join(".config", "go-paper")

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-paper/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, userConfigMarker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForBibliography returns hints for a bibliography file that could not be
// read or decoded.
func ForBibliography(path string) string {
	var hints []string
	if path != "" && !fileutil.FileExists(path) {
		hints = append(hints, "file "+path+" does not exist")
	}
	hints = append(hints, "expected a YAML or JSON mapping of key to description or {author, desc, href}")
	return formatHints(hints)
}

// ForInvalidRegistration returns hints for a malformed library snippet.
func ForInvalidRegistration() string {
	return formatHints([]string{
		`use a mapping ("key: description") for bulk entries`,
		`or a two-item list ("[key, {desc: ..., href: ...}]") for one entry`,
	})
}

// ForUnresolved returns a hint listing citation keys that had no record.
func ForUnresolved(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return format("register " + strings.Join(keys, ", ") + " with --bib or a text/x-paper-library script")
}

// ForUnsupportedInput returns hints for input files of an unknown kind.
func ForUnsupportedInput() string {
	return format("supported inputs: .html, .htm, .md, .markdown")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
