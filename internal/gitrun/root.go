package gitrun

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveRoot expands and canonicalizes a repository root path.
// The path must exist and be a directory; symlinks are resolved so the
// stored root compares stably against later resolutions.
func ResolveRoot(root string) (string, error) {
	expanded := expandHome(root)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", &InvalidRootError{Path: root, Reason: err.Error()}
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &InvalidRootError{Path: abs, Reason: "does not exist"}
		}
		return "", &InvalidRootError{Path: abs, Reason: err.Error()}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &InvalidRootError{Path: resolved, Reason: "does not exist"}
	}
	if !info.IsDir() {
		return "", &InvalidRootError{Path: resolved, Reason: "not a directory"}
	}

	return resolved, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// NormalizeRelPath normalizes a user-provided relative path to a consistent
// forward-slash form with no leading "./".
func NormalizeRelPath(path string) string {
	s := strings.TrimSpace(path)
	s = strings.ReplaceAll(s, `\`, "/")
	for strings.HasPrefix(s, "./") {
		s = s[2:]
	}
	return s
}

// EnsureWithinRoot resolves rel against root and rejects paths that escape
// it. Returns the cleaned absolute path.
func EnsureWithinRoot(root, rel string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(NormalizeRelPath(rel)))
	target = filepath.Clean(target)

	relBack, err := filepath.Rel(root, target)
	if err != nil || relBack == ".." || strings.HasPrefix(relBack, ".."+string(filepath.Separator)) {
		return "", &InvalidRootError{Path: target, Reason: "path escapes root " + root}
	}
	return target, nil
}
