package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/devlogdev/devlog/pkg/logger"
)

func TestLoad_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(ConfigPathEnv, filepath.Join(tmpDir, "config.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error for missing file: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config for missing file")
	}
	if cfg.APIKey != "" || cfg.BaseURL != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(configPath, []byte("{not valid json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt config: %v", err)
	}
	t.Setenv(ConfigPathEnv, configPath)

	// Corrupt config must degrade to empty, never error
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error for corrupt file: %v", err)
	}
	if cfg.APIKey != "" || cfg.BaseURL != "" {
		t.Errorf("expected empty config for corrupt file, got %+v", cfg)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.json")
	t.Setenv(ConfigPathEnv, configPath)

	includeHash := false
	includeDate := true
	cfg := &Config{
		APIKey:            "test-api-key-12345678",
		BaseURL:           "https://devlog.example.com",
		IncludeCommitHash: &includeHash,
		IncludeDate:       &includeDate,
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.APIKey != cfg.APIKey {
		t.Errorf("APIKey = %q, want %q", loaded.APIKey, cfg.APIKey)
	}
	if loaded.BaseURL != cfg.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.BaseURL, cfg.BaseURL)
	}
	if loaded.IsCommitHashEnabled() {
		t.Error("IsCommitHashEnabled() = true, want false after round trip")
	}
	if !loaded.IsDateEnabled() {
		t.Error("IsDateEnabled() = false, want true after round trip")
	}
}

func TestSave_FieldNames(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	t.Setenv(ConfigPathEnv, configPath)

	includeHash := true
	includeDate := true
	cfg := &Config{
		APIKey:            "k",
		BaseURL:           "http://x",
		IncludeCommitHash: &includeHash,
		IncludeDate:       &includeDate,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}

	// The JSON field names are the on-disk contract
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("saved config is not valid JSON: %v", err)
	}
	for _, field := range []string{"apiKey", "apiBaseUrl", "includeCommitHash", "includeDate"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("saved config missing field %q, got keys %v", field, raw)
		}
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if !cfg.IsCommitHashEnabled() {
		t.Error("IsCommitHashEnabled() = false for empty config, want true")
	}
	if !cfg.IsDateEnabled() {
		t.Error("IsDateEnabled() = false for empty config, want true")
	}
	if cfg.ResolveBaseURL() != DefaultBaseURL {
		t.Errorf("ResolveBaseURL() = %q, want %q", cfg.ResolveBaseURL(), DefaultBaseURL)
	}

	disabled := false
	cfg.IncludeCommitHash = &disabled
	if cfg.IsCommitHashEnabled() {
		t.Error("IsCommitHashEnabled() = true with explicit false")
	}
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{
			name:    "unset falls back to default",
			baseURL: "",
			want:    DefaultBaseURL,
		},
		{
			name:    "configured URL",
			baseURL: "https://devlog.example.com",
			want:    "https://devlog.example.com",
		},
		{
			name:    "trailing slash stripped",
			baseURL: "https://devlog.example.com/",
			want:    "https://devlog.example.com",
		},
		{
			name:    "repeated trailing slashes stripped",
			baseURL: "https://devlog.example.com//",
			want:    "https://devlog.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{BaseURL: tt.baseURL}
			if got := cfg.ResolveBaseURL(); got != tt.want {
				t.Errorf("ResolveBaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name:    "valid https URL",
			url:     "https://example.com",
			wantErr: false,
		},
		{
			name:    "valid http URL",
			url:     "http://localhost:3000",
			wantErr: false,
		},
		{
			name:    "empty URL is allowed",
			url:     "",
			wantErr: false,
		},
		{
			name:    "missing scheme",
			url:     "example.com",
			wantErr: true,
		},
		{
			name:    "invalid scheme",
			url:     "ftp://example.com",
			wantErr: true,
		},
		{
			name:    "missing host",
			url:     "https://",
			wantErr: true,
		},
		{
			name:    "just scheme",
			url:     "https",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBaseURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{
			name:    "empty key is allowed",
			key:     "",
			wantErr: false,
		},
		{
			name:    "plain key",
			key:     "dlk-a1b2c3d4e5f6",
			wantErr: false,
		},
		{
			name:    "key with space",
			key:     "abc def",
			wantErr: true,
		},
		{
			name:    "key with newline",
			key:     "abcdef\n",
			wantErr: true,
		},
		{
			name:    "key with tab",
			key:     "abc\tdef",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAPIKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestEnsureConfigured(t *testing.T) {
	cfg := &Config{}
	if err := cfg.EnsureConfigured(); err == nil {
		t.Error("EnsureConfigured() = nil for empty config, want error")
	}

	cfg.APIKey = "some-key"
	if err := cfg.EnsureConfigured(); err != nil {
		t.Errorf("EnsureConfigured() unexpected error with key set: %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    logger.Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: logger.DEBUG},
		{name: "info", input: "info", want: logger.INFO},
		{name: "empty defaults to info", input: "", want: logger.INFO},
		{name: "warn", input: "warn", want: logger.WARN},
		{name: "warning alias", input: "warning", want: logger.WARN},
		{name: "error", input: "error", want: logger.ERROR},
		{name: "case insensitive", input: "DEBUG", want: logger.DEBUG},
		{name: "whitespace trimmed", input: "  info  ", want: logger.INFO},
		{name: "invalid", input: "verbose", want: logger.INFO, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
