package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MOMENTUM_DB", "MOMENTUM_LOG_LEVEL", "MOMENTUM_LOG_FORMAT", "MOMENTUM_USER", "MOMENTUM_HISTORY_PAGE_SIZE", "MOMENTUM_EXPORT_DIR"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "momentum.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".momentum", "momentum.db"), cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 20, cfg.HistoryPageSize)
	assert.Equal(t, ".", cfg.ExportDir)
}

func TestLoad_FileValues(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "db_path: /tmp/m.db\nentered_by: dana\nhistory_page_size: 50\nlog_format: JSON\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/m.db", cfg.DBPath)
	assert.Equal(t, "dana", cfg.EnteredBy)
	assert.Equal(t, 50, cfg.HistoryPageSize)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "warn", cfg.LogLevel, "unset fields keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "db_path: /tmp/file.db\nentered_by: dana\n")
	t.Setenv("MOMENTUM_DB", "/tmp/env.db")
	t.Setenv("MOMENTUM_USER", "lee")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.Equal(t, "lee", cfg.EnteredBy)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "log_format: xml\n"))
	assert.ErrorContains(t, err, "log_format")

	_, err = Load(writeConfig(t, "history_page_size: -1\n"))
	assert.ErrorContains(t, err, "history_page_size")
}

func TestNewLogger_Level(t *testing.T) {
	logger, err := NewLogger(&Config{LogLevel: "debug", LogFormat: "json"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(&Config{LogLevel: "error", LogFormat: "console"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLogger(&Config{LogLevel: "loud", LogFormat: "console"})
	assert.Error(t, err)
}
