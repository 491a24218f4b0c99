package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DOCFORGE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DOCFORGE_AI_PROVIDER", "")
	t.Setenv("DOCFORGE_MODEL", "")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "docforge.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Project.Root)
	assert.Equal(t, ".docforge/docs.db", cfg.Cache.Path)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Empty(t, cfg.AI.APIKey)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "docforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project:
  root: ./src
  ignore_folders:
    - generated
ai:
  provider: gemini
  model: gemini-2.0-flash
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./src", cfg.Project.Root)
	assert.Equal(t, []string{"generated"}, cfg.Project.IgnoreFolders)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	// Unset sections keep their defaults.
	assert.Equal(t, ".docforge/docs.db", cfg.Cache.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCFORGE_API_KEY", "env-key")
	t.Setenv("DOCFORGE_MODEL", "gpt-4o")

	path := filepath.Join(t.TempDir(), "docforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ai:
  api_key: file-key
  model: gpt-4o-mini
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.AI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
}

func TestLoad_OpenAIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg, err := Load(filepath.Join(t.TempDir(), "docforge.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sk-fallback", cfg.AI.APIKey)

	// The dedicated variable wins over the generic one.
	t.Setenv("DOCFORGE_API_KEY", "sk-dedicated")
	cfg, err = Load(filepath.Join(t.TempDir(), "docforge.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sk-dedicated", cfg.AI.APIKey)
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "docforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project: [not: valid\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
