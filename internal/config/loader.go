package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = ".tablekit"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"
)

// ErrConfigExists is returned by Init when the configuration file is
// already present.
var ErrConfigExists = errors.New("config file already exists")

// envRef matches ${NAME} and ${NAME:-fallback}.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// Loader reads and writes one configuration file.
type Loader struct {
	path string
}

// DefaultPath returns ~/.tablekit/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ConfigDirName, ConfigFileName), nil
}

// NewLoader creates a loader for the file at DefaultPath.
func NewLoader() (*Loader, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewLoaderWithPath(path), nil
}

// NewLoaderWithPath creates a loader with a custom config path.
func NewLoaderWithPath(path string) *Loader {
	return &Loader{path: path}
}

// ConfigPath returns the configuration file path.
func (l *Loader) ConfigPath() string {
	return l.path
}

// Exists reports whether the configuration file is present as a regular file.
func (l *Loader) Exists() bool {
	info, err := os.Stat(l.path)
	return err == nil && info.Mode().IsRegular()
}

// Load reads and parses the configuration file, expanding ${VAR}
// references. Keys missing from the file keep their default values.
func (l *Loader) Load() (*Config, error) {
	return l.load(true)
}

// LoadRaw reads the configuration without expanding environment variables.
func (l *Loader) LoadRaw() (*Config, error) {
	return l.load(false)
}

func (l *Loader) load(expand bool) (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if expand {
		data = []byte(expandEnvVars(string(data)))
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to the configuration file, creating its directory. The
// file is replaced by renaming a temporary file next to it, so a failed
// write leaves the previous contents in place.
func (l *Loader) Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(l.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set config file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// Init writes the default configuration. Without force an existing file is
// kept and ErrConfigExists returned.
func (l *Loader) Init(force bool) error {
	if !force && l.Exists() {
		return fmt.Errorf("%w: %s", ErrConfigExists, l.path)
	}
	return l.Save(DefaultConfig())
}

// expandEnvVars replaces ${NAME} with the value of the environment variable
// NAME. ${NAME:-fallback} yields fallback when NAME is unset or empty.
// References to unset variables without a fallback become empty.
func expandEnvVars(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		if value := os.Getenv(m[1]); value != "" {
			return value
		}
		return m[2]
	})
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool returns true if the environment variable is set to "true" or "1".
func GetEnvBool(key string) bool {
	value := strings.ToLower(os.Getenv(key))
	return value == "true" || value == "1" || value == "yes"
}
