package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/bingo/internal/card"
	"github.com/Makepad-fr/bingo/internal/model"
)

func TestMain(m *testing.M) {
	SetColorForcing(false, true)
	m.Run()
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░ 1/2", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░ 0/1", ProgressBar(0, 0, 1))
}

func TestPanelAlignsWideText(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic"); SetColorForcing(false, true) })

	var buf bytes.Buffer
	Panel(&buf, []string{"日本", "abcd"})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "+------+", lines[0])
	assert.Equal(t, "| 日本 |", lines[1])
	assert.Equal(t, "| abcd |", lines[2])
}

func TestGridLines(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic"); SetColorForcing(false, true) })

	c := card.Card{ID: "x", Squares: []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}}
	marks := model.NewMarks(10).Toggle(0)

	lines := GridLines(c, marks)
	require.Len(t, lines, 3, "10 squares on a 4x4 grid take three rows")
	assert.Equal(t, " 1 [x] A   2 [ ] B   3 [ ] C   4 [ ] D", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], " 9 [ ] I"))
	assert.Contains(t, lines[2], "10 [ ] J")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 8))
	got := Truncate("a rather long entry", 8)
	assert.Equal(t, 8, lipgloss.Width(got))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, lipgloss.Width(Truncate("日本語日本語", 5)), 5)
}

func TestMonoThemeWinsOverColorForcing(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic"); SetColorForcing(false, true) })

	SetColorForcing(true, false)
	SetTheme("mono")
	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	Notice(&buf, "need 9")
	assert.NotContains(t, buf.String(), "\033[")
	assert.Equal(t, "✔ added\n✖ nope\n! need 9\n", buf.String())
}

func TestMessagesUseThemeColors(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic"); SetColorForcing(false, true) })

	SetTheme("classic")
	SetColorForcing(true, false)
	var buf bytes.Buffer
	Fail(&buf, "nope")
	Notice(&buf, "need 9")
	assert.Equal(t, Current().Error+"✖ nope"+reset+"\n"+Current().Pending+"! need 9"+reset+"\n", buf.String())
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	Notice(&buf, "need 9")
	assert.Equal(t, "✔ added\n✖ nope\n! need 9\n", buf.String())
}
