package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name used when no path is given.
const DefaultConfigFile = "config.yaml"

// Config is the root service configuration loaded from YAML.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds the database DSN. Postgres and SQLite DSNs are both
// accepted; the db package infers the dialect.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// JWTConfig holds admin token signing settings.
type JWTConfig struct {
	Secret        string `yaml:"secret"`
	ExpiryMinutes int    `yaml:"expiry-minutes"`
}

// Expiry returns the token lifetime, defaulting to 12 hours.
func (c JWTConfig) Expiry() time.Duration {
	if c.ExpiryMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.ExpiryMinutes) * time.Minute
}

// RedisConfig holds the optional token-revocation store settings. An empty
// Addr disables revocation tracking.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig holds log output settings.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max-size-mb"`
	MaxBackups int    `yaml:"max-backups"`
}

// ResolveConfigPath normalizes the config path, defaulting to config.yaml in
// the working directory.
func ResolveConfigPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return DefaultConfigFile
	}
	return filepath.Clean(trimmed)
}

// Load reads and validates configuration from a YAML file.
func Load(path string) (Config, error) {
	raw, errRead := os.ReadFile(ResolveConfigPath(path))
	if errRead != nil {
		return Config{}, fmt.Errorf("config: read: %w", errRead)
	}
	var cfg Config
	if errDecode := yaml.Unmarshal(raw, &cfg); errDecode != nil {
		return Config{}, fmt.Errorf("config: parse: %w", errDecode)
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = ":8318"
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return Config{}, fmt.Errorf("config: database.dsn is required")
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return Config{}, fmt.Errorf("config: jwt.secret is required")
	}
	return cfg, nil
}

// LoadDatabaseDSN reads only the database DSN from a config file.
func LoadDatabaseDSN(path string) (string, error) {
	cfg, err := Load(path)
	if err != nil {
		return "", err
	}
	return cfg.Database.DSN, nil
}
