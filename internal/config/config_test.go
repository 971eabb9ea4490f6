package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"BINGO_DATA_DIR", "BINGO_BASE_URL", "BINGO_STORE", "BINGO_REDIS_ADDR", "BINGO_REDIS_TTL", "BINGO_THEME", "BINGO_VERBOSE"} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".bingo"), cfg.DataDir)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "/home/tester/.bingo/draft.json", cfg.DraftPath())
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Run("redis addr implies redis store", func(t *testing.T) {
		t.Setenv("BINGO_REDIS_ADDR", "localhost:6379")
		t.Setenv("BINGO_REDIS_TTL", "720h")
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, StoreRedis, cfg.Store)
		assert.Equal(t, 720*time.Hour, cfg.RedisTTL)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("explicit store wins", func(t *testing.T) {
		t.Setenv("BINGO_REDIS_ADDR", "localhost:6379")
		t.Setenv("BINGO_STORE", "Memory")
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, StoreMemory, cfg.Store)
	})

	t.Run("bad ttl", func(t *testing.T) {
		t.Setenv("BINGO_REDIS_TTL", "soon")
		_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BINGO_BASE_URL=https://cards.example.org/play\nBINGO_THEME=neon\n"), 0o600))
	// godotenv does not override variables that are already set
	require.NoError(t, os.Unsetenv("BINGO_BASE_URL"))
	require.NoError(t, os.Unsetenv("BINGO_THEME"))
	t.Cleanup(func() {
		os.Unsetenv("BINGO_BASE_URL")
		os.Unsetenv("BINGO_THEME")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "https://cards.example.org/play", cfg.BaseURL)
	assert.Equal(t, "neon", cfg.Theme)
}

func TestValidate(t *testing.T) {
	base := Config{DataDir: "/tmp/x", BaseURL: DefaultBaseURL, Store: StoreFile}

	cases := map[string]func(c *Config){
		"unknown store":      func(c *Config) { c.Store = "sqlite" },
		"redis without addr": func(c *Config) { c.Store = StoreRedis },
		"relative base url":  func(c *Config) { c.BaseURL = "/play" },
		"negative ttl":       func(c *Config) { c.RedisTTL = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestEnsureDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	cfg := Config{DataDir: dir}
	require.NoError(t, cfg.EnsureDataDir())
	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}
