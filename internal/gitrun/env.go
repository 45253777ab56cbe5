package gitrun

import (
	"os"
	"strings"
)

// controlledEnv forces non-interactive, pager-free, locale-neutral git.
// Applied over the inherited environment; caller ExtraEnv wins over both.
var controlledEnv = map[string]string{
	"GIT_TERMINAL_PROMPT": "0",     // no username/password prompts
	"GCM_INTERACTIVE":     "Never", // credential manager stays quiet
	"GIT_PAGER":           "cat",
	"LC_ALL":              "C",
	"GIT_OPTIONAL_LOCKS":  "0",
}

// buildEnv returns the process environment for a git invocation.
// os/exec uses the last value for duplicate keys, so ordering is the
// precedence: inherited, then controlled overrides, then caller extras.
func buildEnv(extra map[string]string) []string {
	env := os.Environ()
	for k, v := range controlledEnv {
		env = append(env, k+"="+v)
	}
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	return env
}

// envValue extracts a key's effective value from an env slice (last wins).
// Used by tests.
func envValue(env []string, key string) (string, bool) {
	prefix := key + "="
	val, found := "", false
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			val, found = kv[len(prefix):], true
		}
	}
	return val, found
}
