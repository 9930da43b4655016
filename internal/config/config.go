// Package config loads and persists the application configuration file at
// ~/.ingenium/cfg.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ingenium-notes/ingenium/internal/constants"
)

// Backend names accepted by storage.backend.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type StorageConfig struct {
	Backend     string `yaml:"backend"      json:"backend"`
	SQLitePath  string `yaml:"sqlite_path"  json:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn" json:"postgres_dsn"`
}

type BackupConfig struct {
	S3Bucket string `yaml:"s3_bucket" json:"s3_bucket"`
	S3Region string `yaml:"s3_region" json:"s3_region"`
}

type Config struct {
	Storage    StorageConfig `yaml:"storage"     json:"storage"`
	Backup     BackupConfig  `yaml:"backup"      json:"backup"`
	GeminiKey  string        `yaml:"gemini_key"  json:"gemini_key"`
	DebounceMS int           `yaml:"debounce_ms" json:"debounce_ms"`
	SortBy     string        `yaml:"sort_by"     json:"sort_by"`
	Locale     string        `yaml:"locale"      json:"locale"`

	path string `yaml:"-" json:"-"`
}

// DebounceInterval converts the configured debounce window to a duration,
// falling back to the 500ms default for zero or negative values.
func (cfg *Config) DebounceInterval() time.Duration {
	if cfg.DebounceMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(cfg.DebounceMS) * time.Millisecond
}

func defaults(home string) *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			SQLitePath: filepath.Join(home, constants.ConfigDir[1:], constants.DataFile),
		},
		DebounceMS: 500,
		SortBy:     "date-desc",
		Locale:     "en",
	}
}

// Path returns the config file location under home.
func Path(home string) string {
	return filepath.Join(
		home+constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// EnsureConfigExists writes a default config file on first run.
func EnsureConfigExists(home string) error {
	dir := home + constants.ConfigDir
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	path := Path(home)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	cfg := defaults(home)
	cfg.path = path
	return cfg.Save()
}

// Load reads the config file under home, layering viper-bound overrides
// (INGENIUM_* environment variables and persistent flags) on top.
func Load(home string) (*Config, error) {
	path := Path(home)

	cfg := defaults(home)
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// First run: defaults plus whatever the environment overrides.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	bindEnv()
	applyOverrides(cfg)
	return cfg, nil
}

// bindEnv routes INGENIUM_* environment variables into the same viper keys
// the persistent flags bind to, so INGENIUM_STORAGE_BACKEND shadows
// storage.backend and so on.
func bindEnv() {
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// applyOverrides lets viper-bound values (env or flags) shadow the file.
func applyOverrides(cfg *Config) {
	if v := viper.GetString("storage.backend"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := viper.GetString("storage.sqlite_path"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := viper.GetString("storage.postgres_dsn"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := viper.GetString("gemini_key"); v != "" {
		cfg.GeminiKey = v
	}
	if v := viper.GetInt("debounce_ms"); v > 0 {
		cfg.DebounceMS = v
	}
	if v := viper.GetString("sort_by"); v != "" {
		cfg.SortBy = v
	}
}

// Save writes the config back to its file.
func (cfg *Config) Save() error {
	if cfg.path == "" {
		return fmt.Errorf("config has no backing file")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cfg.path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", cfg.path, err)
	}
	return nil
}

// SetPath overrides the backing file, used by tests.
func (cfg *Config) SetPath(path string) { cfg.path = path }
