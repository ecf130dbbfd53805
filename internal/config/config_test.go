package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
mount_table: /tmp/mountinfo
sysfs_root: /tmp/sys
volume_lookup: false
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/mountinfo", cfg.MountTable)
	assert.Equal(t, "/tmp/sys", cfg.SysfsRoot)
	assert.False(t, cfg.VolumeLookupEnabled())
	assert.Equal(t, "debug", cfg.LogLevel)

	opts := cfg.ResolverOptions(nil)
	assert.Equal(t, "/tmp/mountinfo", opts.MountTable)
	assert.Equal(t, "/tmp/sys", opts.SysfsRoot)
	assert.True(t, opts.DisableVolumeLookup)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "log_level: warn\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/proc/self/mountinfo", cfg.MountTable)
	assert.Equal(t, "/sys", cfg.SysfsRoot)
	assert.True(t, cfg.VolumeLookupEnabled())
	assert.False(t, cfg.ResolverOptions(nil).DisableVolumeLookup)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "mount_table: [unterminated\n"))
	assert.Error(t, err)
}

func TestLoadBadLogLevel(t *testing.T) {
	_, err := Load(writeConfig(t, "log_level: chatty\n"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
