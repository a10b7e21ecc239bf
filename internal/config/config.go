// Package config resolves where the graveyard lives and loads the optional
// rip configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	// DefaultInspectLines is how many lines of a text file inspect prints.
	DefaultInspectLines = 6
	// DefaultLogLevel is used when neither RIP_LOG nor the config file set one.
	DefaultLogLevel = "warn"

	recordName = ".record.db"
)

// Config holds the values read from config.hcl. Zero values mean unset.
type Config struct {
	Graveyard    string `hcl:"graveyard,optional"`
	InspectLines int    `hcl:"inspect_lines,optional"`
	LogLevel     string `hcl:"log_level,optional"`
}

// GetConfigPath returns RIP_CONFIG if set, otherwise
// $XDG_CONFIG_HOME/rip/config.hcl.
func GetConfigPath() string {
	if explicit := os.Getenv("RIP_CONFIG"); explicit != "" {
		return explicit
	}

	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "rip", "config.hcl")
}

// Load reads the config file. A missing file yields the defaults.
func Load() (*Config, error) {
	return LoadFile(GetConfigPath())
}

// LoadFile reads the config file at path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg.withDefaults(), nil
		}
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	if cfg.InspectLines < 0 {
		return nil, fmt.Errorf("inspect_lines must not be negative, got %d", cfg.InspectLines)
	}

	return cfg.withDefaults(), nil
}

func (c *Config) withDefaults() *Config {
	if c.InspectLines == 0 {
		c.InspectLines = DefaultInspectLines
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}

// GetLogLevel prefers RIP_LOG over the config file.
func (c *Config) GetLogLevel() string {
	if level := os.Getenv("RIP_LOG"); level != "" {
		return level
	}
	return c.LogLevel
}

// GetGraveyard resolves the graveyard directory. The flag value wins, then
// RIP_GRAVEYARD, then the config file, then the XDG data directory, and
// finally a per-user directory under the system temp dir.
func (c *Config) GetGraveyard(flag *string) string {
	if flag != nil && *flag != "" {
		return *flag
	}

	if explicit := os.Getenv("RIP_GRAVEYARD"); explicit != "" {
		return explicit
	}

	if c != nil && c.Graveyard != "" {
		return c.Graveyard
	}

	xdg.Reload()
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(xdg.DataHome, "graveyard")
	}

	user := os.Getenv("USER")
	if user == "" {
		user = "unknown"
	}
	return filepath.Join(os.TempDir(), "graveyard-"+user)
}

// RecordPath returns the path of the burial record inside a graveyard.
func RecordPath(graveyard string) string {
	return filepath.Join(graveyard, recordName)
}

// RecordFiles lists the file names sqlite may create for the record.
func RecordFiles() []string {
	return []string{recordName, recordName + "-journal", recordName + "-wal", recordName + "-shm"}
}
