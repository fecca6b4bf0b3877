package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/addrbook/internal/errors"
	"github.com/Aman-CERP/addrbook/internal/logging"
)

// CurrentVersion is the config schema version written by `config init`.
const CurrentVersion = 1

// Project config file names, checked in order.
const (
	ProjectConfigYAML = ".addrbook.yaml"
	ProjectConfigYML  = ".addrbook.yml"
)

// Config represents the complete addrbook configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Book    BookConfig    `yaml:"book" json:"book"`
	Shell   ShellConfig   `yaml:"shell" json:"shell"`
	Retry   RetryConfig   `yaml:"retry" json:"retry"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	UI      UIConfig      `yaml:"ui" json:"ui"`

	// explicit holds "section.key" for every key present in the parsed file.
	explicit map[string]bool
}

// BookConfig configures the backing file.
type BookConfig struct {
	// Path is the book file used when no path argument or --book flag is given.
	Path string `yaml:"path" json:"path"`
	// CreateIfMissing starts from an empty book when Path does not exist.
	// Without it a missing file aborts startup.
	CreateIfMissing bool `yaml:"create_if_missing" json:"create_if_missing"`
}

// ShellConfig configures the interactive shell.
type ShellConfig struct {
	Prompt     string `yaml:"prompt" json:"prompt"`
	RecentSize int    `yaml:"recent_size" json:"recent_size"`
	// Watch reloads the book when another process changes the file.
	Watch bool `yaml:"watch" json:"watch"`
}

// RetryConfig is the retry policy for appends.
type RetryConfig struct {
	// Attempts is the number of retries after the first try. 0 disables retry.
	Attempts     int    `yaml:"attempts" json:"attempts"`
	InitialDelay string `yaml:"initial_delay" json:"initial_delay"`
	MaxDelay     string `yaml:"max_delay" json:"max_delay"`
}

// LoggingConfig configures --debug file logging.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// UIConfig configures terminal output.
type UIConfig struct {
	NoColor bool `yaml:"no_color" json:"no_color"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Book: BookConfig{
			Path:            "contacts.tsv",
			CreateIfMissing: true,
		},
		Shell: ShellConfig{
			Prompt:     "> ",
			RecentSize: 10,
			Watch:      true,
		},
		Retry: RetryConfig{
			Attempts:     3,
			InitialDelay: "100ms",
			MaxDelay:     "2s",
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

// GetUserConfigPath returns the path to the user configuration file:
//   - $XDG_CONFIG_HOME/addrbook/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/addrbook/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "addrbook", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "addrbook", "config.yaml")
	}
	return filepath.Join(home, ".config", "addrbook", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// LoadUserConfig loads the user configuration file.
// Returns nil config and nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	var cfg Config
	if err := readYAML(configPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads configuration for the working directory dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/addrbook/config.yaml)
//  3. Project config (.addrbook.yaml in dir)
//  4. Environment variables (ADDRBOOK_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	userCfg, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}
	if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := cfg.loadProjectFile(dir); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile parses a single config file without defaults or merging.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if err := readYAML(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ProjectConfigPath returns the project config file in dir, or "" if none.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{ProjectConfigYAML, ProjectConfigYML} {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p
		}
	}
	return ""
}

func (c *Config) loadProjectFile(dir string) error {
	path := ProjectConfigPath(dir)
	if path == "" {
		return nil
	}

	var parsed Config
	if err := readYAML(path, &parsed); err != nil {
		return err
	}
	c.mergeWith(&parsed)
	return nil
}

// readYAML parses path into out. Keys present in the file are recorded so
// mergeWith can tell an explicit false or 0 from an absent key.
func readYAML(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigError("failed to read config file", err).WithDetail("path", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.ConfigError("failed to parse config file", err).
			WithDetail("path", path).
			WithSuggestion("Check the YAML syntax or regenerate it with 'addrbook config init --force'")
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err == nil {
		out.explicit = explicitKeys(raw)
	}
	return nil
}

func explicitKeys(raw map[string]any) map[string]bool {
	keys := make(map[string]bool)
	for section, v := range raw {
		fields, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for field := range fields {
			keys[section+"."+field] = true
		}
	}
	return keys
}

func (c *Config) isSet(key string) bool {
	return c.explicit[key]
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Book.Path != "" {
		c.Book.Path = other.Book.Path
	}
	if other.isSet("book.create_if_missing") || other.Book.CreateIfMissing {
		c.Book.CreateIfMissing = other.Book.CreateIfMissing
	}

	if other.Shell.Prompt != "" {
		c.Shell.Prompt = other.Shell.Prompt
	}
	if other.Shell.RecentSize != 0 {
		c.Shell.RecentSize = other.Shell.RecentSize
	}
	if other.isSet("shell.watch") || other.Shell.Watch {
		c.Shell.Watch = other.Shell.Watch
	}

	// Attempts can be explicitly zero to disable retries.
	if other.Retry.Attempts != 0 || other.isSet("retry.attempts") {
		c.Retry.Attempts = other.Retry.Attempts
	}
	if other.Retry.InitialDelay != "" {
		c.Retry.InitialDelay = other.Retry.InitialDelay
	}
	if other.Retry.MaxDelay != "" {
		c.Retry.MaxDelay = other.Retry.MaxDelay
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.MaxSizeMB != 0 {
		c.Logging.MaxSizeMB = other.Logging.MaxSizeMB
	}
	if other.Logging.MaxFiles != 0 {
		c.Logging.MaxFiles = other.Logging.MaxFiles
	}

	if other.UI.NoColor {
		c.UI.NoColor = true
	}
}

// applyEnvOverrides applies ADDRBOOK_* environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("ADDRBOOK_BOOK_PATH"); v != "" {
		c.Book.Path = v
	}
	if v := os.Getenv("ADDRBOOK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ADDRBOOK_PROMPT"); v != "" {
		c.Shell.Prompt = v
	}
	if v := os.Getenv("ADDRBOOK_RETRY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.ConfigError("ADDRBOOK_RETRY_ATTEMPTS must be an integer", err).
				WithDetail("value", v)
		}
		c.Retry.Attempts = n
	}
	if v := os.Getenv("ADDRBOOK_NO_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.NoColor = b
		}
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Book.Path) == "" {
		return errors.ConfigError("book.path must not be empty", nil)
	}
	if c.Shell.RecentSize < 0 {
		return errors.ConfigError(fmt.Sprintf("shell.recent_size must be non-negative, got %d", c.Shell.RecentSize), nil)
	}
	if c.Retry.Attempts < 0 {
		return errors.ConfigError(fmt.Sprintf("retry.attempts must be non-negative, got %d", c.Retry.Attempts), nil)
	}
	if _, err := parseDuration("retry.initial_delay", c.Retry.InitialDelay); err != nil {
		return err
	}
	if _, err := parseDuration("retry.max_delay", c.Retry.MaxDelay); err != nil {
		return err
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return errors.ConfigError(
			fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level), nil)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxFiles < 0 {
		return errors.ConfigError("logging.max_size_mb and logging.max_files must be non-negative", nil)
	}
	return nil
}

// RetryPolicy converts the retry section into an errors.RetryConfig.
// Call after Validate; unparsable delays fall back to the defaults.
func (c *Config) RetryPolicy() errors.RetryConfig {
	policy := errors.DefaultRetryConfig()
	policy.MaxRetries = c.Retry.Attempts
	if d, err := parseDuration("retry.initial_delay", c.Retry.InitialDelay); err == nil && d > 0 {
		policy.InitialDelay = d
	}
	if d, err := parseDuration("retry.max_delay", c.Retry.MaxDelay); err == nil && d > 0 {
		policy.MaxDelay = d
	}
	return policy
}

// LogConfig converts the logging section into a logging.Config for --debug.
func (c *Config) LogConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	if c.Logging.MaxSizeMB > 0 {
		cfg.MaxSizeMB = c.Logging.MaxSizeMB
	}
	if c.Logging.MaxFiles > 0 {
		cfg.MaxFiles = c.Logging.MaxFiles
	}
	return cfg
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.ConfigError(fmt.Sprintf("%s is not a duration: %q", field, value), err)
	}
	if d < 0 {
		return 0, errors.ConfigError(fmt.Sprintf("%s must be non-negative, got %s", field, value), nil)
	}
	return d, nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
