package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "inventory.json", cfg.DocumentPath)
	assert.Equal(t, "stockbook.xlsx", cfg.WorkbookPath)
	assert.Empty(t, cfg.Actor)
	assert.Equal(t, 10, cfg.BackupKeep)
	assert.Equal(t, 120*time.Second, cfg.BackupCooldown)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogConsole)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SBK_DOCUMENT_PATH", "/data/book.json")
	t.Setenv("SBK_ACTOR", "yoon")
	t.Setenv("SBK_BACKUP_KEEP", "3")
	t.Setenv("SBK_BACKUP_COOLDOWN_SECONDS", "30")
	t.Setenv("SBK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/book.json", cfg.DocumentPath)
	assert.Equal(t, "yoon", cfg.Actor)
	assert.Equal(t, 3, cfg.BackupKeep)
	assert.Equal(t, 30*time.Second, cfg.BackupCooldown)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	file := []byte("document_path: ledger.json\nworkbook_path: ledger.xlsx\nactor: staff\n")
	require.NoError(t, os.WriteFile("stockbook.yaml", file, 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ledger.json", cfg.DocumentPath)
	assert.Equal(t, "ledger.xlsx", cfg.WorkbookPath)
	assert.Equal(t, "staff", cfg.Actor)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10, cfg.BackupKeep)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("stockbook.yaml", []byte("actor: staff\n"), 0o644))
	t.Setenv("SBK_ACTOR", "yoon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "yoon", cfg.Actor)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "debug"},
		{" WARN ", "warn"},
		{"error", "error"},
		{"", "info"},
		{"nonsense", "info"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.input).String(), "input %q", tt.input)
	}
}
