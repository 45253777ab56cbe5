// Package config provides settings for the grounded-git-mcp runner and
// confirmation store: timeouts, output ceilings, and confirmation TTL.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the grounded-git-mcp global configuration directory.
//
// Resolution:
//   - $GROUNDED_GIT_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/grounded-git-mcp if set (respects XDG on any platform)
//   - %AppData%/grounded-git-mcp on Windows
//   - ~/.config/grounded-git-mcp on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("GROUNDED_GIT_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "grounded-git-mcp")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "grounded-git-mcp")
		}
	}

	// macOS and Linux: ~/.config/grounded-git-mcp
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "grounded-git-mcp")
}
