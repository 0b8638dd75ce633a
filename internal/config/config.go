package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"mocktree/internal/artifacts"
)

// DefaultServeAddr is used when neither the settings file nor a flag names
// a listen address.
const DefaultServeAddr = "127.0.0.1:2049"

// getConfigDir returns the config directory path.
// Uses MOCKTREE_CONFIG_DIR env var if set, otherwise defaults to ~/.mocktree.
func getConfigDir() string {
	if dir := os.Getenv("MOCKTREE_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".mocktree")
}

// ConfigDir returns the configuration directory path
func ConfigDir() string {
	return getConfigDir()
}

// SettingsPath returns the settings file path
func SettingsPath() string {
	return filepath.Join(getConfigDir(), "settings.yaml")
}

// LockPath returns the lock file guarding settings writes
func LockPath() string {
	return filepath.Join(getConfigDir(), "settings.lock")
}

// FixturesDir holds named fixtures. InitConfigDir seeds it with example.yaml.
func FixturesDir() string {
	return filepath.Join(getConfigDir(), "fixtures")
}

// FindFixture maps a command-line fixture argument to a file. An existing
// path is used as is; otherwise name and name.yaml are looked up in
// FixturesDir. The original argument is returned when nothing matches so the
// caller reports the path the user typed.
func FindFixture(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	for _, candidate := range []string{name, name + ".yaml"} {
		path := filepath.Join(FixturesDir(), candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return name
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(getConfigDir(), 0700)
}

// InitConfigDir creates the config directory and writes the default
// settings file and example fixture if they don't exist yet.
func InitConfigDir() error {
	if err := os.MkdirAll(FixturesDir(), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return withLock(func() error {
		defaults := []struct {
			path string
			data []byte
		}{
			{SettingsPath(), artifacts.GlobalSettings},
			{filepath.Join(FixturesDir(), "example.yaml"), artifacts.ExampleFixture},
		}
		for _, d := range defaults {
			if _, err := os.Stat(d.path); os.IsNotExist(err) {
				if err := os.WriteFile(d.path, d.data, 0600); err != nil {
					return fmt.Errorf("failed to write %s: %w", filepath.Base(d.path), err)
				}
			}
		}
		return nil
	})
}

// withLock runs fn while holding the settings lock.
func withLock(fn func() error) error {
	lock := flock.New(LockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire settings lock: %w", err)
	}
	defer lock.Unlock()
	return fn()
}

// Settings represents global mocktree settings
type Settings struct {
	LogLevel  string `yaml:"log_level"`  // Log level: trace, debug, info, warn, off (default: off)
	ServeAddr string `yaml:"serve_addr"` // Listen address for `mocktree serve`
}

// ApplyDefaults fills zero values with defaults.
func (s *Settings) ApplyDefaults() {
	if s.ServeAddr == "" {
		s.ServeAddr = DefaultServeAddr
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
}

// loadDefaultSettings parses default settings from embedded artifact.
func loadDefaultSettings() Settings {
	var settings Settings
	if err := yaml.Unmarshal(artifacts.GlobalSettings, &settings); err != nil {
		panic("failed to parse embedded settings: " + err.Error())
	}
	return settings
}

// LoadSettings loads settings from ~/.mocktree/settings.yaml.
// Falls back to embedded defaults if the file doesn't exist.
func LoadSettings() (*Settings, error) {
	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			settings := loadDefaultSettings()
			settings.ApplyDefaults()
			return &settings, nil
		}
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SettingsPath(), err)
	}
	settings.ApplyDefaults()
	return &settings, nil
}

// SaveSettings saves the settings to ~/.mocktree/settings.yaml
func SaveSettings(settings *Settings) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	header := []byte("# mocktree settings\n# See: mocktree --help\n\n")
	return withLock(func() error {
		return os.WriteFile(SettingsPath(), append(header, data...), 0600)
	})
}

// ApplyLogLevel configures the standard logrus logger. An empty level or
// "off" discards all output.
func ApplyLogLevel(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "off":
		log.SetOutput(io.Discard)
		return nil
	case "trace":
		log.SetLevel(log.TraceLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	default:
		return fmt.Errorf("unknown log level %q (want trace, debug, info, warn or off)", level)
	}
	log.SetOutput(os.Stderr)
	return nil
}
