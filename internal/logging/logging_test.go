package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bingo.log")

	log, err := New(Options{Output: path})
	require.NoError(t, err)
	log.Debugw("hidden", "k", 1)
	log.Warnw("shown", "card", "QUJD")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "shown")
	assert.Contains(t, string(b), "QUJD")
	assert.NotContains(t, string(b), "hidden")
}

func TestVerboseIncludesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bingo.log")

	log, err := New(Options{Output: path, Verbose: true})
	require.NoError(t, err)
	log.Debug("detail")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "detail")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Errorw("ignored") })
}
