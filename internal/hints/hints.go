// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdlayout/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	// Detect CI environment
	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	// Suggest ROD_NO_SANDBOX for container/CI environments
	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	// Suggest ROD_BROWSER_BIN if not set
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the browser timeout.
func ForTimeout() string {
	return format("for long papers or slow image hosts, use --timeout flag")
}

// ForConfigNotFound suggests --config or creating a file in the user config
// directory, picked from the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml or set MDLAYOUT_CONFIG"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/mdlayout/") {
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

// ForTemplateNotFound lists the template keys that do exist.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return format("run 'mdlayout templates reset' to restore the built-in templates")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInvalidTemplate points at the schema bounds most imports trip over.
func ForInvalidTemplate() string {
	return format("columns 1-6, baseSizePx 6-36, marginsMm needs 4 numbers (top, right, bottom, left)")
}

// ForStorage suggests checking the configured persistence backend.
func ForStorage(backend string) string {
	switch backend {
	case "redis":
		return format("check storage.redis.addr is reachable")
	case "sqlite", "file", "":
		return format("check storage.path points to a writable location")
	}
	return ""
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
