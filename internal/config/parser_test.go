package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project_name: demo\n"), 0o644))

	cfg, err := ParseConfig(path)
	require.NoError(t, err)
	require.Equal(t, "demo", cfg.ProjectName)
	require.Equal(t, defaultCacheDir, cfg.CacheDir)
	require.Equal(t, defaultDocsDir, cfg.DocsDir)
}

func TestParseConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := ParseConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, defaultCacheDir, cfg.CacheDir)
	require.Equal(t, defaultDocsDir, cfg.DocsDir)
}

func TestParseConfigPreservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	content := "project_name: demo\ncustom_field: value\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := ParseConfig(path)
	require.NoError(t, err)
	require.Equal(t, "value", cfg.Extra["custom_field"])
}

func TestParseConfigRejectsMissingProjectName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_dir: /tmp/cache\n"), 0o644))

	_, err := ParseConfig(path)
	require.Error(t, err)
}
