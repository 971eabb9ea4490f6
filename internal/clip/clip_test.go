package clip

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	m := &Memory{}
	require.NoError(t, Copy(m, "http://x/?entries=abc"))
	assert.Equal(t, "http://x/?entries=abc", m.Text)
}

func TestCopyWrapsFailures(t *testing.T) {
	boom := errors.New("xclip: not found")
	err := Copy(&Memory{Err: boom}, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClipboardUnavailable)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "xclip")

	var cue *ClipboardUnavailableError
	require.ErrorAs(t, err, &cue)

	t.Run("already typed errors are not double wrapped", func(t *testing.T) {
		inner := &ClipboardUnavailableError{Err: boom}
		got := Copy(&Memory{Err: inner}, "x")
		assert.Same(t, inner, got)
	})

	t.Run("nil clipboard", func(t *testing.T) {
		assert.ErrorIs(t, Copy(nil, "x"), ErrClipboardUnavailable)
	})
}
