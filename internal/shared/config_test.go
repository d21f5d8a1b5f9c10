package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("parses a valid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		content := `
[api]
base_url = "http://catalog.local:9000"
timeout_seconds = 10

[auth]
token_path = "/tmp/token"

[database]
path = "snapshots.db"
max_open_conns = 3
max_idle_conns = 1
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.API.BaseURL != "http://catalog.local:9000" {
			t.Errorf("expected base URL to be parsed, got %s", config.API.BaseURL)
		}
		if config.API.TimeoutSeconds != 10 {
			t.Errorf("expected timeout 10, got %d", config.API.TimeoutSeconds)
		}
		if config.Auth.TokenPath != "/tmp/token" {
			t.Errorf("expected token path to be parsed, got %s", config.Auth.TokenPath)
		}
		if config.Database.Path != "snapshots.db" {
			t.Errorf("expected database path to be parsed, got %s", config.Database.Path)
		}
	})

	t.Run("fails when file is missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if !strings.Contains(err.Error(), "failed to read config file") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("fails on malformed TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")
		if err := os.WriteFile(configPath, []byte("[api\nbase_url"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Fatal("expected error for malformed TOML")
		}
		if !strings.Contains(err.Error(), "failed to parse config") {
			t.Errorf("expected parse error, got %v", err)
		}
	})

	t.Run("environment variables override file values", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")
		content := `
[api]
base_url = "http://from-file:7577"
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		t.Setenv("SHELFCTL_BASE_URL", "http://from-env:7577")
		t.Setenv("SHELFCTL_DB_PATH", "env.db")

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.API.BaseURL != "http://from-env:7577" {
			t.Errorf("expected env override for base URL, got %s", config.API.BaseURL)
		}
		if config.Database.Path != "env.db" {
			t.Errorf("expected env override for database path, got %s", config.Database.Path)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.API.BaseURL == "" {
		t.Error("expected default base URL to be set")
	}
	if config.API.TimeoutSeconds <= 0 {
		t.Error("expected default timeout to be positive")
	}
	if config.Database.Path == "" {
		t.Error("expected default database path to be set")
	}
}

func TestTokenPath(t *testing.T) {
	t.Run("returns configured path when set", func(t *testing.T) {
		config := &Config{Auth: AuthConfig{TokenPath: "/custom/token"}}
		if got := config.TokenPath(); got != "/custom/token" {
			t.Errorf("expected configured path, got %s", got)
		}
	})

	t.Run("defaults under the home directory", func(t *testing.T) {
		config := &Config{}
		got := config.TokenPath()
		if !strings.HasSuffix(got, filepath.Join(".shelfctl", "token")) {
			t.Errorf("expected default token path, got %s", got)
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("writes the template config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("created config should parse, got %v", err)
		}
		if config.API.BaseURL == "" {
			t.Error("expected created config to carry defaults")
		}
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")
		if err := os.WriteFile(configPath, []byte("# existing"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		err := CreateConfigFile(configPath)
		if err == nil {
			t.Fatal("expected error for existing file")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected already-exists error, got %v", err)
		}
	})
}
