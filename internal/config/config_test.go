package config

import (
	"os"
	"path/filepath"
	"testing"

	"tcreator/internal/extract"
	"tcreator/internal/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves into an empty directory so no stray .env, settings.txt or
// colors.TCtheme is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TCREATOR_MOD_ROOT", "TCREATOR_TEMPLATE_DIR", "TCREATOR_SETTINGS_FILE",
		"TCREATOR_THEME_FILE", "TCREATOR_ITEM_PAIRING", "TCREATOR_LOG_LEVEL",
		"TCREATOR_CACHE_SIZE", "DATABASE_URL", "NEO4J_URI", "NEO4J_USER",
		"NEO4J_PASSWORD", "WORKER_COUNT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults when nothing is configured", func(t *testing.T) {
		chdirTemp(t)
		clearEnvVars(t)

		cfg := Load()

		assert.Equal(t, "", cfg.ModRoot)
		assert.Equal(t, "Templates", cfg.TemplateDir)
		assert.Equal(t, theme.Default(), cfg.Theme)
		assert.Equal(t, extract.PairPositional, cfg.ItemPairing)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 512, cfg.CacheSize)
		assert.Equal(t, 4, cfg.WorkerCount)
		assert.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
	})

	t.Run("reads settings and theme files", func(t *testing.T) {
		dir := chdirTemp(t)
		clearEnvVars(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.txt"), []byte("/home/me/ModSources\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "colors.TCtheme"), []byte("#000000\n#111111\n#222222\n#333333\n"), 0644))

		cfg := Load()

		assert.Equal(t, "/home/me/ModSources", cfg.ModRoot)
		assert.Equal(t, "#222222", cfg.Theme.Accent)
	})

	t.Run("environment overrides", func(t *testing.T) {
		dir := chdirTemp(t)
		clearEnvVars(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.txt"), []byte("/ignored\n"), 0644))
		t.Setenv("TCREATOR_MOD_ROOT", "/srv/mods")
		t.Setenv("TCREATOR_ITEM_PAIRING", "named")
		t.Setenv("WORKER_COUNT", "9")
		t.Setenv("TCREATOR_CACHE_SIZE", "lots")

		cfg := Load()

		assert.Equal(t, "/srv/mods", cfg.ModRoot)
		assert.Equal(t, extract.PairNamed, cfg.ItemPairing)
		assert.Equal(t, 9, cfg.WorkerCount)
		assert.Equal(t, 512, cfg.CacheSize, "invalid integers fall back")
	})

	t.Run("empty settings file", func(t *testing.T) {
		dir := chdirTemp(t)
		clearEnvVars(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.txt"), nil, 0644))

		assert.Equal(t, "", Load().ModRoot)
	})
}
