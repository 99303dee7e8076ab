package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"

	"imgview/log"
	"imgview/sorting"
)

const (
	ConfigFileName = "config.toml"
	// LockFileName guards writes to the config file from concurrently started instances.
	LockFileName = "config.lock"
	// DefaultLockTimeout is the default timeout for acquiring the lock
	DefaultLockTimeout = 5 * time.Second
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	return log.GetConfigDir()
}

// LogsConfig is the [logs] table of the config file.
type LogsConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	// MaxSizeMB of 0 disables rotation.
	MaxSizeMB  int  `toml:"max_size_mb"`
	MaxFiles   int  `toml:"max_files"`
	MaxAgeDays int  `toml:"max_age_days"`
	Compress   bool `toml:"compress"`
}

// Config represents the application configuration
type Config struct {
	// DefaultSort is the order images are sorted in at startup.
	DefaultSort string `toml:"default_sort"`
	// MaxImages caps how many images are viewable at once. 0 means no cap.
	MaxImages int `toml:"max_images"`
	// KeepDirName is the folder below the base directory kept images are copied to.
	KeepDirName string `toml:"keep_dir_name"`
	// DestFolder, when set, replaces the keep folder for the whole session.
	DestFolder string `toml:"dest_folder"`

	Logs LogsConfig `toml:"logs"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	logDefaults := log.DefaultLogConfig()
	return &Config{
		DefaultSort: sorting.Order{Key: sorting.Alphabetical}.String(),
		MaxImages:   0,
		KeepDirName: "keep",
		DestFolder:  "",
		Logs: LogsConfig{
			Enabled:    logDefaults.LogsEnabled,
			Dir:        logDefaults.LogsDir,
			MaxSizeMB:  logDefaults.LogMaxSize,
			MaxFiles:   logDefaults.LogMaxFiles,
			MaxAgeDays: logDefaults.LogMaxAge,
			Compress:   logDefaults.LogCompress,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := c.SortOrder(); err != nil {
		return fmt.Errorf("default_sort: %w", err)
	}
	if c.MaxImages < 0 {
		return fmt.Errorf("max_images must not be negative, got %d", c.MaxImages)
	}
	if c.KeepDirName == "" || strings.ContainsRune(c.KeepDirName, filepath.Separator) {
		return fmt.Errorf("keep_dir_name must be a single folder name, got %q", c.KeepDirName)
	}
	return nil
}

// SortOrder parses DefaultSort.
func (c *Config) SortOrder() (sorting.Order, error) {
	return sorting.ParseOrder(c.DefaultSort)
}

// LogConfig converts the [logs] table for the log package.
func (c *Config) LogConfig() *log.LogConfig {
	return &log.LogConfig{
		LogsEnabled: c.Logs.Enabled,
		LogsDir:     c.Logs.Dir,
		LogMaxSize:  c.Logs.MaxSizeMB,
		LogMaxFiles: c.Logs.MaxFiles,
		LogMaxAge:   c.Logs.MaxAgeDays,
		LogCompress: c.Logs.Compress,
	}
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// ConfigPath returns the path of the config file.
func ConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// LoadConfig loads the configuration from disk. If it cannot be done, we return the default configuration.
// A missing file is created with the defaults so users have a template to edit.
func LoadConfig() *Config {
	configPath, err := ConfigPath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config path: %v", err)
		return DefaultConfig()
	}

	config, err := LoadConfigFrom(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			defaultCfg := DefaultConfig()
			if saveErr := SaveConfigTo(configPath, defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}
		log.WarningLog.Printf("failed to load config, using defaults: %v", err)
		return DefaultConfig()
	}
	return config
}

// LoadConfigFrom reads and validates the config file at path. Keys missing from
// the file keep their default values.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	meta, err := toml.Decode(string(data), config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	for _, key := range meta.Undecoded() {
		log.WarningLog.Printf("unknown config key %q in %s", key.String(), path)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(config *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(configPath, config)
}

// SaveConfigTo writes config to path while holding the config lock.
func SaveConfigTo(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	fileLock := flock.New(filepath.Join(dir, LockFileName))
	ctx, cancel := context.WithTimeout(context.Background(), DefaultLockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire config lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire config lock within timeout")
	}
	defer fileLock.Unlock()

	// Write to a temporary file first so readers never see a partial config.
	tmp, err := os.CreateTemp(dir, ConfigFileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := config.Encode(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}
