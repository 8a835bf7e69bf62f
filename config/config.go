package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Files    FilesConfig    `mapstructure:"files"`
	Database DatabaseConfig `mapstructure:"database"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

type FilesConfig struct {
	Dir string `mapstructure:"dir"` // directory holding the source PDFs
}

type DatabaseConfig struct {
	Path         string        `mapstructure:"path"` // empty selects the per-user default
	BusyTimeout  time.Duration `mapstructure:"busy_timeout"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"` // default download destination
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
	File   string `mapstructure:"file"`   // when set, log to this file instead of stderr
}

const appDirName = "HospitalPDFManager"

// ResolvedDatabasePath returns the configured store path, or the
// per-user default under the OS config directory. When neither is
// writable the temp directory serves as a last resort.
func (d DatabaseConfig) ResolvedDatabasePath() string {
	if strings.TrimSpace(d.Path) != "" {
		return d.Path
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, appDirName, "operations.db")
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: HPM_ (Hospital PDF Manager).
// Nested keys use underscore: HPM_DATABASE_PATH, HPM_FILES_DIR, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("files.dir", "./files")
	v.SetDefault("database.path", "")
	v.SetDefault("database.busy_timeout", "10s")
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("output.dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.file", "")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: HPM_FILES_DIR -> files.dir
	v.SetEnvPrefix("HPM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
