// Package tui is the interactive screen: collect entries, then play the
// generated card.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Makepad-fr/bingo/internal/clip"
	"github.com/Makepad-fr/bingo/internal/session"
	"github.com/Makepad-fr/bingo/internal/ui"
)

// listItem adapts an entry to bubbles/list.Item
type listItem string

func (i listItem) Title() string       { return string(i) }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return string(i) }

// Custom delegate to control how entries render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+mutedStyle.Render("•")+" "+ui.Truncate(string(it), 60))
}

type Options struct {
	Clipboard clip.Clipboard
	Logger    *zap.SugaredLogger
}

// Model implements tea.Model over a session. Entry edits, generation and
// toggles go straight to the session; marks are saved by the session on
// every toggle.
type Model struct {
	ctx  context.Context
	sess *session.Session
	clip clip.Clipboard
	log  *zap.SugaredLogger

	list   list.Model
	ti     textinput.Model
	help   help.Model
	cursor int

	notice    string
	noticeBad bool
	width     int
}

func New(ctx context.Context, sess *session.Session, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	l := list.New(nil, itemDelegate{}, 60, 10)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.Styles.PaginationStyle = mutedStyle

	m := Model{
		ctx:   ctx,
		sess:  sess,
		clip:  opts.Clipboard,
		log:   log,
		list:  l,
		ti:    textinput.New(),
		help:  help.New(),
		width: 80,
	}
	m.ti.Prompt = "> "
	m.ti.Placeholder = "Add an entry..."
	m.ti.CharLimit = 200
	m.ti.Focus()
	m.syncList()
	return m
}

// Run starts the program in the alternate screen and returns once the
// user quits.
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	p := tea.NewProgram(New(ctx, sess, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) syncList() {
	entries := m.sess.Entries()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, listItem(e))
	}
	m.list.SetItems(items)
}

func (m *Model) say(msg string, bad bool) {
	m.notice, m.noticeBad = msg, bad
}

// Init and Update implement Bubble Tea's Model
func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
		m.help.Width = ws.Width
		m.list.SetSize(ws.Width-4, max(3, ws.Height-12))
		return m, nil
	}
	if m.sess.State() == session.Generated {
		return m.updateCard(msg)
	}
	return m.updateCollect(msg)
}

func (m Model) updateCollect(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	switch {
	case key.Matches(k, collectKeyMap.Quit):
		return m, tea.Quit

	case key.Matches(k, collectKeyMap.Add):
		err := m.sess.AddEntry(m.ti.Value())
		switch {
		case errors.Is(err, session.ErrEmptyEntry):
			m.say("Entry cannot be empty", true)
		case errors.Is(err, session.ErrDuplicateEntry):
			m.say("That entry is already on the list", true)
		case err != nil:
			m.say(err.Error(), true)
		default:
			m.ti.SetValue("")
			m.say("", false)
			m.syncList()
			m.list.Select(len(m.sess.Entries()) - 1)
		}
		return m, nil

	case key.Matches(k, collectKeyMap.Remove):
		if len(m.sess.Entries()) == 0 {
			return m, nil
		}
		i := m.list.Index()
		if err := m.sess.RemoveEntry(i); err != nil {
			m.say(err.Error(), true)
			return m, nil
		}
		m.syncList()
		if i >= len(m.sess.Entries()) && i > 0 {
			m.list.Select(i - 1)
		}
		return m, nil

	case key.Matches(k, collectKeyMap.Up, collectKeyMap.Down):
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case key.Matches(k, collectKeyMap.Generate):
		if err := m.sess.Generate(m.ctx); err != nil {
			m.say(err.Error(), true)
			return m, nil
		}
		m.ti.Blur()
		m.cursor = 0
		m.say("", false)
		return m, nil
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateCard(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m, nil
	}
	c := m.sess.Card()
	size, n := c.Size(), len(c.Squares)
	owner := !m.sess.FromLink()

	switch {
	case key.Matches(k, cardKeyMap.Quit):
		return m, tea.Quit
	case key.Matches(k, cardKeyMap.Up):
		if m.cursor-size >= 0 {
			m.cursor -= size
		}
	case key.Matches(k, cardKeyMap.Down):
		if m.cursor+size < n {
			m.cursor += size
		}
	case key.Matches(k, cardKeyMap.Left):
		if m.cursor%size > 0 {
			m.cursor--
		}
	case key.Matches(k, cardKeyMap.Right):
		if m.cursor%size < size-1 && m.cursor+1 < n {
			m.cursor++
		}
	case key.Matches(k, cardKeyMap.Toggle):
		if err := m.sess.Toggle(m.ctx, m.cursor); err != nil {
			m.say("Could not save marks: "+err.Error(), true)
		}
	case owner && key.Matches(k, cardKeyMap.Copy):
		if err := clip.Copy(m.clip, m.sess.ShareURL()); err != nil {
			m.log.Warnw("copy failed", "error", err)
			m.say("Failed to copy, share this link by hand", true)
		} else {
			m.say("Link copied to clipboard!", false)
		}
	case owner && key.Matches(k, cardKeyMap.New):
		m.sess.Reset()
		m.syncList()
		m.cursor = 0
		m.say("", false)
		cmd := m.ti.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bingo Card Generator"))
	b.WriteString("\n\n")
	if m.sess.State() == session.Generated {
		m.viewCard(&b)
	} else {
		m.viewCollect(&b)
	}
	if m.notice != "" {
		style := successStyle
		if m.noticeBad {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(m.notice) + "\n")
	}
	return panelString(b.String())
}

func (m Model) viewCollect(b *strings.Builder) {
	entries := m.sess.Entries()
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Add entries one at a time. You need at least %d entries.", session.MinEntries)))
	b.WriteString("\n" + m.ti.View() + "\n\n")
	if len(entries) > 0 {
		count := fmt.Sprintf("Your Entries (%d)", len(entries))
		if len(entries) < session.MinEntries {
			count += "  " + pendingStyle.Render(fmt.Sprintf("%d more to go", session.MinEntries-len(entries)))
		} else {
			count += "  " + successStyle.Render("ready")
		}
		b.WriteString(accentStyle.Render(count) + "\n")
		b.WriteString(m.list.View() + "\n")
	}
	b.WriteString("\n" + m.help.View(collectKeyMap))
}

func (m Model) viewCard(b *strings.Builder) {
	c := m.sess.Card()
	marks := m.sess.Marks()
	size := c.Size()

	b.WriteString(titleStyle.Render("BINGO") + "  " + mutedStyle.Render(fmt.Sprintf("%d/%d marked", marks.Count(), len(c.Squares))))
	b.WriteString("\n")

	var rows []string
	for start := 0; start < len(c.Squares); start += size {
		var cells []string
		for i := start; i < min(start+size, len(c.Squares)); i++ {
			style := cellStyle
			if marks.Marked(i) {
				style = markedCellStyle
			}
			if i == m.cursor {
				style = style.BorderForeground(cursorBorder).Bold(true)
			}
			cells = append(cells, style.Render(ui.Truncate(c.Squares[i], cellWidth*cellHeight)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")

	keys := cardKeyMap
	keys.owner = !m.sess.FromLink()
	if keys.owner {
		b.WriteString("\n" + mutedStyle.Render(m.sess.ShareURL()) + "\n")
	}
	b.WriteString("\n" + m.help.View(keys))
}
