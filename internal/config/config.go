// Package config resolves settings from defaults, an optional .env file
// and BINGO_* environment variables. Root flags are applied last by the
// caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"

	DefaultBaseURL = "http://localhost:3000/"
)

type Config struct {
	DataDir   string
	BaseURL   string
	Store     string
	RedisAddr string
	RedisTTL  time.Duration
	Theme     string
	Verbose   bool
}

// Default uses ~/.bingo as the data directory.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("home: %w", err)
	}
	return Config{
		DataDir: filepath.Join(home, ".bingo"),
		BaseURL: DefaultBaseURL,
		Store:   StoreFile,
		Theme:   "classic",
	}, nil
}

// Load reads the given .env files (".env" when none are named; missing
// files are skipped) and then applies the environment on top of Default.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := env("BINGO_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := env("BINGO_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := env("BINGO_STORE"); v != "" {
		c.Store = strings.ToLower(v)
	}
	if v := env("BINGO_REDIS_ADDR"); v != "" {
		c.RedisAddr = v
		if env("BINGO_STORE") == "" {
			c.Store = StoreRedis
		}
	}
	if v := env("BINGO_REDIS_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BINGO_REDIS_TTL: %w", err)
		}
		c.RedisTTL = d
	}
	if v := env("BINGO_THEME"); v != "" {
		c.Theme = v
	}
	if v := env("BINGO_VERBOSE"); v == "1" || strings.EqualFold(v, "true") {
		c.Verbose = true
	}
	return nil
}

func env(key string) string { return strings.TrimSpace(os.Getenv(key)) }

func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("store redis needs BINGO_REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown store %q (want file, memory or redis)", c.Store)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base url %q must be absolute", c.BaseURL)
	}
	if c.RedisTTL < 0 {
		return errors.New("redis ttl must not be negative")
	}
	return nil
}

// EnsureDataDir creates the data directory owner-only.
func (c Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return nil
}

func (c Config) DraftPath() string { return filepath.Join(c.DataDir, "draft.json") }
func (c Config) MarksPath() string { return filepath.Join(c.DataDir, "marks.json") }
func (c Config) LogPath() string   { return filepath.Join(c.DataDir, "bingo.log") }
