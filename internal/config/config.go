package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sigreer/rootdiskid/internal/diskid"
	"github.com/sigreer/rootdiskid/internal/mount"
	"github.com/sigreer/rootdiskid/internal/sysfs"
)

type Config struct {
	// Live mount table in kernel mountinfo format
	MountTable string `yaml:"mount_table"`
	// Where sysfs is mounted; block attributes live under <root>/block
	SysfsRoot string `yaml:"sysfs_root"`
	// Use the device tag cache fallback when this build has one
	VolumeLookup *bool  `yaml:"volume_lookup,omitempty"`
	LogLevel     string `yaml:"log_level"`
}

// defaultConfig reads the live system
var defaultConfig = Config{
	MountTable: mount.DefaultTablePath,
	SysfsRoot:  sysfs.DefaultRoot,
	LogLevel:   "info",
}

// Load reads the config at path, or the first default location that
// exists. No file at all means defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		candidates := []string{
			"/etc/rootdiskid/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/rootdiskid/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// Apply defaults for missing fields
	if cfg.MountTable == "" {
		cfg.MountTable = defaultConfig.MountTable
	}
	if cfg.SysfsRoot == "" {
		cfg.SysfsRoot = defaultConfig.SysfsRoot
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultConfig.LogLevel
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// VolumeLookupEnabled reports whether the tag cache fallback may be used.
// It defaults to true.
func (c *Config) VolumeLookupEnabled() bool {
	return c.VolumeLookup == nil || *c.VolumeLookup
}

// ResolverOptions maps the config onto diskid options.
func (c *Config) ResolverOptions(logger *slog.Logger) diskid.Options {
	return diskid.Options{
		MountTable:          c.MountTable,
		SysfsRoot:           c.SysfsRoot,
		DisableVolumeLookup: !c.VolumeLookupEnabled(),
		Logger:              logger,
	}
}

// ParseLevel maps debug, info, warn and error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
