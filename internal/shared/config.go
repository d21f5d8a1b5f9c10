package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Auth     AuthConfig     `toml:"auth"`
	Database DatabaseConfig `toml:"database"`
}

// APIConfig contains catalog server settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// AuthConfig contains session token persistence settings.
type AuthConfig struct {
	TokenPath string `toml:"token_path"`
}

// DatabaseConfig contains snapshot database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// A .env file in the working directory (if present) and process environment
// variables SHELFCTL_BASE_URL, SHELFCTL_TOKEN_PATH and SHELFCTL_DB_PATH
// override the corresponding file values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

func (c *Config) applyEnv() {
	godotenv.Load()

	if v := os.Getenv("SHELFCTL_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("SHELFCTL_TOKEN_PATH"); v != "" {
		c.Auth.TokenPath = v
	}
	if v := os.Getenv("SHELFCTL_DB_PATH"); v != "" {
		c.Database.Path = v
	}
}

// TokenPath resolves the configured token path, defaulting to
// ~/.shelfctl/token when unset.
func (c *Config) TokenPath() string {
	if c.Auth.TokenPath != "" {
		return c.Auth.TokenPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".shelfctl", "token")
	}
	return filepath.Join(home, ".shelfctl", "token")
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
