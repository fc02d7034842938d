// Package config handles loading and managing threadtriage configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the threadtriage configuration.
type Config struct {
	Data   DataConfig   `toml:"data"`
	View   ViewConfig   `toml:"view"`
	Server ServerConfig `toml:"server"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// DataConfig holds input and state file locations. ThreadsFile and
// IgnoreFile are resolved relative to DataDir when not absolute.
type DataConfig struct {
	DataDir     string `toml:"data_dir"`
	ThreadsFile string `toml:"threads_file"`
	IgnoreFile  string `toml:"ignore_file"`
}

// ViewConfig holds display tuning for the review surfaces.
type ViewConfig struct {
	PageSize   int `toml:"page_size"`   // threads per page (default: 50)
	DebounceMS int `toml:"debounce_ms"` // search quiet period (default: 300)
}

// ServerConfig holds HTTP server configuration for the serve command.
type ServerConfig struct {
	Addr      string `toml:"addr"`       // listen address (default: ":8080")
	StaticDir string `toml:"static_dir"` // optional page assets to host
}

// DefaultHome returns the default threadtriage home directory.
// Respects the THREADTRIAGE_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("THREADTRIAGE_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".threadtriage"
	}
	return filepath.Join(home, ".threadtriage")
}

// Load reads the configuration from the specified file. If path is empty,
// uses the default location (~/.threadtriage/config.toml). A homeDir
// override takes precedence over THREADTRIAGE_HOME.
func Load(path, homeDir string) (*Config, error) {
	if homeDir == "" {
		homeDir = DefaultHome()
	}

	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		// Defaults
		Data: DataConfig{
			DataDir:     homeDir,
			ThreadsFile: "emails.json",
			IgnoreFile:  "ignore_list.json",
		},
		View: ViewConfig{
			PageSize:   50,
			DebounceMS: 300,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}

	// Config file is optional - use defaults if not present
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Expand ~ in paths
	cfg.Data.DataDir = expandPath(cfg.Data.DataDir)
	cfg.Server.StaticDir = expandPath(cfg.Server.StaticDir)

	if cfg.View.PageSize < 1 {
		cfg.View.PageSize = 50
	}
	if cfg.View.DebounceMS < 1 {
		cfg.View.DebounceMS = 300
	}

	return cfg, nil
}

// EnsureHomeDir creates the data directory if it does not exist.
func (c *Config) EnsureHomeDir() error {
	return os.MkdirAll(c.Data.DataDir, 0o755)
}

// ThreadsPath returns the path to the thread records document.
func (c *Config) ThreadsPath() string {
	return c.resolve(c.Data.ThreadsFile)
}

// IgnorePath returns the path to the static ignore list document.
func (c *Config) IgnorePath() string {
	return c.resolve(c.Data.IgnoreFile)
}

// StateDir returns the directory holding persisted reviewer state.
func (c *Config) StateDir() string {
	return filepath.Join(c.Data.DataDir, "state")
}

// resolve joins a file name onto the data dir unless it is already absolute.
func (c *Config) resolve(name string) string {
	name = expandPath(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Data.DataDir, name)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
