package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. MOTOFUEL_DATABASE_PATH
const EnvPrefix = "MOTOFUEL"

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"`
	Path    string `mapstructure:"path"`
	DSN     string `mapstructure:"dsn"`
	LogMode bool   `mapstructure:"log_mode"`
}

type ServerConfig struct {
	Address           string `mapstructure:"address"`
	Port              int    `mapstructure:"port"`
	Mode              string `mapstructure:"mode"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Currency string         `mapstructure:"currency"`

	// File is the config file the values were read from
	File string `mapstructure:"-"`
}

// DefaultPath returns ~/.config/motofuel/motofuel.yaml, honouring XDG_CONFIG_HOME
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error getting user home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			configHome = filepath.Join(homeDir, "AppData", "Roaming")
		} else {
			configHome = filepath.Join(homeDir, ".config")
		}
	}
	return filepath.Join(configHome, "motofuel", "motofuel.yaml"), nil
}

// dataDir is where the database, preferences and backups live by default
func dataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".motofuel"
	}
	return filepath.Join(homeDir, ".motofuel")
}

func setDefaults(v *viper.Viper) {
	dir := dataDir()

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", filepath.Join(dir, "motofuel.db"))
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.log_mode", false)

	v.SetDefault("backup.dir", filepath.Join(dir, "backups"))

	v.SetDefault("server.address", "127.0.0.1")
	v.SetDefault("server.port", 8787)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.requests_per_minute", 60)

	v.SetDefault("currency", "₹")
}

// Load reads the config file at path, or DefaultPath when path is empty.
// A missing file is created with default values.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			log.Printf("Config file not found; creating %s with default values", path)
			if err := v.WriteConfigAs(path); err != nil {
				return nil, fmt.Errorf("error creating config file: %w", err)
			}
		} else {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.File = path

	return &c, nil
}

// PrefsPath is the preferences file, kept next to the SQLite database
func (c *Config) PrefsPath() string {
	dir := filepath.Dir(c.Database.Path)
	if c.Database.Path == "" {
		dir = dataDir()
	}
	return filepath.Join(dir, "prefs.yaml")
}

// Addr is the listen address of the local API
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
