package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/devlogdev/devlog/pkg/logger"
)

// ConfigPathEnv is the environment variable to override the default config path.
// This is useful for testing and non-standard installations.
const ConfigPathEnv = "DEVLOG_CONFIG_PATH"

// DefaultBaseURL is the API base URL used when none is configured.
const DefaultBaseURL = "http://localhost:3000"

// Config holds the devlog CLI configuration.
// The JSON field names are the on-disk file format contract.
type Config struct {
	APIKey            string `json:"apiKey"`
	BaseURL           string `json:"apiBaseUrl"`
	IncludeCommitHash *bool  `json:"includeCommitHash,omitempty"` // nil = enabled (default)
	IncludeDate       *bool  `json:"includeDate,omitempty"`       // nil = enabled (default)
	LogLevel          string `json:"logLevel,omitempty"`          // debug, info, warn, error (default: info)
}

// IsCommitHashEnabled returns whether log entries should carry the short
// commit hash prefix. Defaults to true when IncludeCommitHash is nil
// (not set in config).
func (c *Config) IsCommitHashEnabled() bool {
	return c.IncludeCommitHash == nil || *c.IncludeCommitHash
}

// IsDateEnabled returns whether log entries should carry the current date.
// Defaults to true when IncludeDate is nil (not set in config).
func (c *Config) IsDateEnabled() bool {
	return c.IncludeDate == nil || *c.IncludeDate
}

// ResolveBaseURL returns the configured API base URL, falling back to
// DefaultBaseURL when unset. Trailing slashes are stripped so endpoint
// paths can be appended directly.
func (c *Config) ResolveBaseURL() string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

// Path returns the location of the config file
// (~/.devlog/config.json, overridable with DEVLOG_CONFIG_PATH).
func Path() (string, error) {
	// Allow overriding config path for testing
	if testConfigPath := os.Getenv(ConfigPathEnv); testConfigPath != "" {
		return testConfigPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".devlog", "config.json"), nil
}

// Load reads the configuration from disk.
//
// A missing file is the normal first-run state and yields an empty config.
// Invalid JSON is logged as a warning and also yields an empty config;
// corrupt state is never surfaced to callers as an error.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read devlog config (%s): %w", configPath, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.Warn("Config file has invalid JSON, treating as empty (%s): %v", configPath, err)
		return &Config{}, nil
	}

	return &cfg, nil
}

// Save validates the configuration and writes it to disk as
// pretty-printed JSON, creating the parent directory if needed.
func (c *Config) Save() error {
	// Validate before saving
	if err := c.Validate(); err != nil {
		return err
	}

	configPath, err := Path()
	if err != nil {
		return err
	}

	// Ensure directory exists
	devlogDir := filepath.Dir(configPath)
	if err := os.MkdirAll(devlogDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ValidateBaseURL checks if the API base URL is valid
func ValidateBaseURL(baseURL string) error {
	if baseURL == "" {
		return nil // Empty is allowed (falls back to the default)
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	// Must have a scheme
	if parsed.Scheme == "" {
		return fmt.Errorf("url must include scheme (http:// or https://)")
	}

	// Only allow http and https
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", parsed.Scheme)
	}

	// Must have a host
	if parsed.Host == "" {
		return fmt.Errorf("url must include a host")
	}

	return nil
}

// ValidateAPIKey checks if the API key is plausible.
// The server defines the key format, so the only local check is for
// characters that can never appear in a credential.
// Returns nil for empty string (not configured), but empty is not a valid key.
func ValidateAPIKey(apiKey string) error {
	// Empty means not configured - skip validation but callers should
	// check separately if a key is required
	if apiKey == "" {
		return nil
	}

	if strings.ContainsAny(apiKey, " \t\n\r") {
		return fmt.Errorf("api key contains whitespace characters")
	}

	return nil
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if err := ValidateBaseURL(c.BaseURL); err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}

	if err := ValidateAPIKey(c.APIKey); err != nil {
		return fmt.Errorf("invalid API key: %w", err)
	}

	return nil
}

// EnsureConfigured verifies the config carries an API key.
// Every logging operation requires one; the error tells the user the fix.
func (c *Config) EnsureConfigured() error {
	if c.APIKey == "" {
		return fmt.Errorf("no API key configured. Run 'devlog config' first")
	}
	return nil
}

// ParseLogLevel parses a log level string and returns the corresponding logger.Level
func ParseLogLevel(level string) (logger.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logger.DEBUG, nil
	case "info", "":
		return logger.INFO, nil
	case "warn", "warning":
		return logger.WARN, nil
	case "error":
		return logger.ERROR, nil
	default:
		return logger.INFO, fmt.Errorf("invalid log level %q: must be debug, info, warn, or error", level)
	}
}

// ApplyLogLevel applies the configured log level to the logger
func (c *Config) ApplyLogLevel() {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		logger.Warn("Invalid logLevel in config: %v", err)
		return
	}

	logger.Get().SetLevel(level)
}
