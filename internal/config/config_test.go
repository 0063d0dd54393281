package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/tasks.json", cfg.SnapshotPath)
	assert.Equal(t, "data/import.csv", cfg.ImportPath)
	assert.Equal(t, "*", cfg.CORSOrigins)
}

func TestLoad_TOMLFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	content := `
port = "9090"
snapshot_path = "/var/lib/tasks/tasks.json"
import_path = "/var/lib/tasks/import.csv"
cors_origins = "https://example.com"
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", file)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/var/lib/tasks/tasks.json", cfg.SnapshotPath)
	assert.Equal(t, "/var/lib/tasks/import.csv", cfg.ImportPath)
	assert.Equal(t, "https://example.com", cfg.CORSOrigins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte(`port = "9090"`), 0o644))
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
}

func TestLoad_MalformedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("port = "), 0o644))
	t.Setenv("CONFIG_FILE", file)

	_, err := Load()
	assert.Error(t, err)
}
