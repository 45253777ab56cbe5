package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// StateDirName is the per-repository dot-directory holding the confirmation
// ledger, the audit log, and an optional repo-local config file.
const StateDirName = ".grounded-git-mcp"

// ConfigFileName is the settings file name, both globally and per repo.
const ConfigFileName = "config.yaml"

// Settings holds tunables for the runner and the approval flow.
// Zero values mean "use the default".
type Settings struct {
	// TimeoutSeconds is the hard wall-clock limit for a single git invocation.
	TimeoutSeconds float64 `yaml:"timeout_seconds"`

	// MaxOutputChars caps len(stdout)+len(stderr) per invocation.
	MaxOutputChars int `yaml:"max_output_chars"`

	// ConfirmTTLSeconds is how long a proposed confirmation stays usable.
	ConfirmTTLSeconds int `yaml:"confirm_ttl_seconds"`

	// LogFile redirects logs to a file. Required for `serve`, where stdout
	// carries the MCP protocol.
	LogFile string `yaml:"log_file"`

	// LogLevel is a logrus level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Defaults returns the stock settings.
func Defaults() Settings {
	return Settings{
		TimeoutSeconds:    3.0,
		MaxOutputChars:    80_000,
		ConfirmTTLSeconds: 1800,
		LogLevel:          "info",
	}
}

// Load resolves settings for a repository root.
//
// Precedence, lowest to highest:
//  1. Defaults()
//  2. <global config dir>/config.yaml
//  3. <repoRoot>/.grounded-git-mcp/config.yaml
//  4. GROUNDED_GIT_* environment variables
//
// Missing files are not errors; malformed files are.
func Load(repoRoot string) (Settings, error) {
	s := Defaults()

	if dir := Dir(); dir != "" {
		if err := mergeFile(&s, filepath.Join(dir, ConfigFileName)); err != nil {
			return Settings{}, err
		}
	}
	if repoRoot != "" {
		if err := mergeFile(&s, filepath.Join(repoRoot, StateDirName, ConfigFileName)); err != nil {
			return Settings{}, err
		}
	}
	mergeEnv(&s)

	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// mergeFile overlays values from a YAML file onto s.
// A missing file is a no-op.
func mergeFile(s *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if file.TimeoutSeconds > 0 {
		s.TimeoutSeconds = file.TimeoutSeconds
	}
	if file.MaxOutputChars > 0 {
		s.MaxOutputChars = file.MaxOutputChars
	}
	if file.ConfirmTTLSeconds > 0 {
		s.ConfirmTTLSeconds = file.ConfirmTTLSeconds
	}
	if file.LogFile != "" {
		s.LogFile = file.LogFile
	}
	if file.LogLevel != "" {
		s.LogLevel = file.LogLevel
	}
	return nil
}

// mergeEnv overlays GROUNDED_GIT_* environment variables onto s.
// Unparseable numeric values are ignored rather than fatal.
func mergeEnv(s *Settings) {
	if v := os.Getenv("GROUNDED_GIT_TIMEOUT_SECONDS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			s.TimeoutSeconds = f
		}
	}
	if v := os.Getenv("GROUNDED_GIT_MAX_OUTPUT_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.MaxOutputChars = n
		}
	}
	if v := os.Getenv("GROUNDED_GIT_CONFIRM_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.ConfirmTTLSeconds = n
		}
	}
	if v := os.Getenv("GROUNDED_GIT_LOG_FILE"); v != "" {
		s.LogFile = v
	}
	if v := os.Getenv("GROUNDED_GIT_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
}

func (s Settings) validate() error {
	if s.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %v", s.TimeoutSeconds)
	}
	if s.MaxOutputChars <= 0 {
		return fmt.Errorf("max_output_chars must be positive, got %d", s.MaxOutputChars)
	}
	if s.ConfirmTTLSeconds <= 0 {
		return fmt.Errorf("confirm_ttl_seconds must be positive, got %d", s.ConfirmTTLSeconds)
	}
	return nil
}
