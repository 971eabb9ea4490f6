package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Makepad-fr/bingo/internal/card"
	"github.com/Makepad-fr/bingo/internal/clip"
	"github.com/Makepad-fr/bingo/internal/codec"
	"github.com/Makepad-fr/bingo/internal/config"
	"github.com/Makepad-fr/bingo/internal/session"
	"github.com/Makepad-fr/bingo/internal/store"
	"github.com/Makepad-fr/bingo/internal/store/jsonstore"
	"github.com/Makepad-fr/bingo/internal/tui"
	"github.com/Makepad-fr/bingo/internal/ui"
)

// Options carry the resolved config and the collaborators subcommands use.
type Options struct {
	Config    config.Config
	Log       *zap.SugaredLogger
	KV        store.KV
	Clipboard clip.Clipboard
	// Source overrides the shuffle randomness.
	Source card.Source
	Out    io.Writer
	Err    io.Writer
	// Interactive runs the full-screen UI; defaults to tui.Run.
	Interactive func(ctx context.Context, sess *session.Session) error
}

type runner struct {
	opt   Options
	out   io.Writer
	err   io.Writer
	marks *store.MarksStore
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	r := newRunner(opt)
	if len(args) == 0 {
		PrintHelp(r.out)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.out)
		return 0

	case "ls":
		return r.doList(ctx)

	case "add":
		if len(a) == 0 {
			ui.Fail(r.err, "usage: bingo add <entry...>")
			return 2
		}
		return r.doAdd(ctx, strings.Join(a, " "))

	case "rm":
		n, code := r.indexArg("rm", a)
		if code != 0 {
			return code
		}
		return r.doRemove(ctx, n)

	case "generate":
		return r.doGenerate(ctx)

	case "open":
		if len(a) != 1 {
			ui.Fail(r.err, "usage: bingo open <link|token>")
			return 2
		}
		return r.doOpen(ctx, a[0])

	case "mark":
		n, code := r.indexArg("mark", a)
		if code != 0 {
			return code
		}
		return r.doMark(ctx, n)

	case "show":
		return r.doShow(ctx)

	case "share":
		return r.doShare(ctx)

	case "reset":
		return r.doReset(ctx)

	case "tui":
		return r.doInteractive(ctx)
	}

	ui.Fail(r.err, "unknown subcommand: "+cmd)
	fmt.Fprintln(r.err)
	PrintHelp(r.err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `bingo - make a bingo card from your own entries

Usage:
  bingo [flags] <subcommand> [args]

Subcommands:
  add <entry...>     Add an entry (can be multiple words)
  ls                 List entries
  rm <index>         Remove entry at 1-based index
  generate           Build the card (needs at least %d entries)
  show               Print the current card
  mark <index>       Toggle the square at 1-based index
  share              Copy the share link to the clipboard
  open <link|token>  Load a card someone shared
  reset              Start over with an empty list
  tui                Interactive screen (default)

Examples:
  bingo add "Someone says synergy"
  bingo generate
  bingo mark 5
  bingo open "http://localhost:3000/?entries=WyJBIiwiQiJd"
`, session.MinEntries)
}

func newRunner(opt Options) *runner {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if opt.Log == nil {
		opt.Log = zap.NewNop().Sugar()
	}
	if opt.KV == nil {
		opt.KV = jsonstore.New(opt.Config.MarksPath())
	}
	if opt.Interactive == nil {
		cb, log := opt.Clipboard, opt.Log
		opt.Interactive = func(ctx context.Context, sess *session.Session) error {
			return tui.Run(ctx, sess, tui.Options{Clipboard: cb, Logger: log})
		}
	}
	return &runner{
		opt:   opt,
		out:   opt.Out,
		err:   opt.Err,
		marks: store.NewMarksStore(opt.KV, opt.Log),
	}
}

func (r *runner) indexArg(cmd string, a []string) (int, int) {
	if len(a) != 1 {
		ui.Fail(r.err, fmt.Sprintf("usage: bingo %s <index>", cmd))
		return 0, 2
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		ui.Fail(r.err, cmd+": not a number: "+a[0])
		return 0, 2
	}
	return n, 0
}

// -------------- session persistence ----------------

func (r *runner) load(ctx context.Context) (*session.Session, error) {
	var d session.Draft
	if _, err := jsonstore.ReadFile(r.opt.Config.DraftPath(), &d); err != nil {
		return nil, err
	}
	sess := session.New(session.Options{
		BaseURL: r.opt.Config.BaseURL,
		Source:  r.opt.Source,
		Marks:   r.marks,
		Logger:  r.opt.Log,
	})
	sess.Restore(ctx, d)
	return sess, nil
}

func (r *runner) save(sess *session.Session) error {
	return jsonstore.WriteFile(r.opt.Config.DraftPath(), sess.Snapshot())
}

// loaded wraps a subcommand with load and, when it reports a change,
// save. It returns the subcommand's exit code.
func (r *runner) loaded(ctx context.Context, fn func(sess *session.Session) (code int, changed bool)) int {
	sess, err := r.load(ctx)
	if err != nil {
		ui.Fail(r.err, "load: "+err.Error())
		return 1
	}
	code, changed := fn(sess)
	if changed {
		if err := r.save(sess); err != nil {
			ui.Fail(r.err, "save: "+err.Error())
			return 1
		}
	}
	return code
}

// -------------- subcommand impls ----------------

func (r *runner) doAdd(ctx context.Context, text string) int {
	return r.loaded(ctx, func(sess *session.Session) (int, bool) {
		if err := sess.AddEntry(text); err != nil {
			return r.editFailed("add", err), false
		}
		ui.OK(r.out, fmt.Sprintf("added (%d entries)", len(sess.Entries())))
		return 0, true
	})
}

func (r *runner) doRemove(ctx context.Context, userIndex int) int {
	return r.loaded(ctx, func(sess *session.Session) (int, bool) {
		if err := sess.RemoveEntry(userIndex - 1); err != nil {
			code := r.editFailed("rm", err)
			if errors.Is(err, session.ErrIndexOutOfRange) {
				fmt.Fprintln(r.err, ui.Dim("Hint: run `bingo ls` to see valid indexes"))
			}
			return code, false
		}
		ui.OK(r.out, "removed")
		return 0, true
	})
}

func (r *runner) editFailed(cmd string, err error) int {
	switch {
	case errors.Is(err, session.ErrLocked):
		ui.Fail(r.err, cmd+": "+err.Error())
		fmt.Fprintln(r.err, ui.Dim("Hint: run `bingo reset` to start a new card"))
	case errors.Is(err, session.ErrIndexOutOfRange):
		ui.Fail(r.err, err.Error())
	default:
		ui.Notice(r.err, cmd+": "+err.Error())
	}
	return 2
}

func (r *runner) doList(ctx context.Context) int {
	return r.loaded(ctx, func(sess *session.Session) (int, bool) {
		t := ui.Current()
		entries := sess.Entries()
		header := fmt.Sprintf("%s  %s %d  %s",
			ui.C(t.Title, "Entries"),
			ui.C(t.Accent, "Total"), len(entries),
			ui.C(t.Muted, sess.State().String()),
		)
		lines := []string{header}
		if sess.State() == session.Collecting {
			lines = append(lines, ui.C(t.Muted, ui.ProgressBar(min(len(entries), session.MinEntries), session.MinEntries, 27)))
			if left := session.MinEntries - len(entries); left > 0 {
				lines = append(lines, ui.C(t.Pending, fmt.Sprintf("%d more to go", left)))
			}
		}
		lines = append(lines, "")
		if len(entries) == 0 {
			lines = append(lines, ui.C(t.Muted, "no entries"))
		}
		for i, e := range entries {
			lines = append(lines, fmt.Sprintf("%s %s", ui.C(t.Muted, fmt.Sprintf("%2d.", i+1)), ui.Truncate(e, 80)))
		}
		lines = append(lines, "")
		if sess.State() == session.Collecting {
			lines = append(lines, ui.C(t.Muted, "Tip: add with `bingo add \"Free coffee\"`"))
		} else {
			lines = append(lines, ui.C(t.Muted, "Tip: `bingo show` prints the card"))
		}
		ui.Panel(r.out, lines)
		return 0, false
	})
}

func (r *runner) doGenerate(ctx context.Context) int {
	return r.loaded(ctx, func(sess *session.Session) (int, bool) {
		if sess.State() == session.Generated {
			ui.Notice(r.err, "card already generated")
			r.printCard(sess)
			return 0, false
		}
		if err := sess.Generate(ctx); err != nil {
			ui.Notice(r.err, err.Error())
			return 1, false
		}
		ui.OK(r.out, "card generated")
		r.printCard(sess)
		return 0, true
	})
}

func (r *runner) doOpen(ctx context.Context, raw string) int {
	return r.loaded(ctx, func(sess *session.Session) (int, bool) {
		err := sess.Open(ctx, raw)
		switch {
		case errors.Is(err, session.ErrLocked):
			ui.Fail(r.err, "open: "+err.Error())
			fmt.Fprintln(r.err, ui.Dim("Hint: run `bingo reset` first"))
			return 2, false
		case errors.Is(err, codec.ErrMalformedToken):
			ui.Notice(r.err, "could not read that link, starting with an empty list")
			return 1, true
		case err != nil:
			ui.Fail(r.err, "open: "+err.Error())
			return 1, false
		}
		if sess.State() != session.Generated {
			ui.Notice(r.err, "that link has no entries")
			return 0, true
		}
		ui.OK(r.out, fmt.Sprintf("opened card with %d entries", len(sess.Entries())))
		r.printCard(sess)
		return 0, true
	})
}

func (r *runner) doMark(ctx context.Context, userIndex int) int {
	return r.loaded(ctx, func(sess *session.Session) (int, bool) {
		if sess.State() != session.Generated {
			ui.Fail(r.err, "mark: "+session.ErrNotGenerated.Error())
			fmt.Fprintln(r.err, ui.Dim("Hint: run `bingo generate` first"))
			return 2, false
		}
		n := len(sess.Card().Squares)
		if userIndex < 1 || userIndex > n {
			ui.Fail(r.err, fmt.Sprintf("square out of range: have %d, got %d", n, userIndex))
			fmt.Fprintln(r.err, ui.Dim("Hint: run `bingo show` to see square numbers"))
			return 2, false
		}
		if err := sess.Toggle(ctx, userIndex-1); err != nil {
			ui.Fail(r.err, "save marks: "+err.Error())
			return 1, false
		}
		if sess.Marks().Marked(userIndex - 1) {
			ui.OK(r.out, fmt.Sprintf("marked %d", userIndex))
		} else {
			ui.OK(r.out, fmt.Sprintf("unmarked %d", userIndex))
		}
		r.printCard(sess)
		return 0, false
	})
}

func (r *runner) doShow(ctx context.Context) int {
	return r.loaded(ctx, func(sess *session.Session) (int, bool) {
		if sess.State() != session.Generated {
			ui.Notice(r.err, "no card yet; add entries and run `bingo generate`")
			return 1, false
		}
		r.printCard(sess)
		return 0, false
	})
}

func (r *runner) doShare(ctx context.Context) int {
	return r.loaded(ctx, func(sess *session.Session) (int, bool) {
		link := sess.ShareURL()
		if link == "" {
			ui.Notice(r.err, "no card yet; run `bingo generate` first")
			return 1, false
		}
		if err := clip.Copy(r.opt.Clipboard, link); err != nil {
			r.opt.Log.Warnw("copy to clipboard failed", "error", err)
			ui.Notice(r.err, "could not copy to clipboard, share this link instead:")
			fmt.Fprintln(r.out, link)
			return 0, false
		}
		ui.OK(r.out, "link copied to clipboard!")
		fmt.Fprintln(r.out, link)
		return 0, false
	})
}

func (r *runner) doReset(ctx context.Context) int {
	return r.loaded(ctx, func(sess *session.Session) (int, bool) {
		sess.Reset()
		ui.OK(r.out, "reset")
		return 0, true
	})
}

func (r *runner) doInteractive(ctx context.Context) int {
	return r.loaded(ctx, func(sess *session.Session) (int, bool) {
		if err := r.opt.Interactive(ctx, sess); err != nil {
			ui.Fail(r.err, "tui: "+err.Error())
			return 1, true
		}
		return 0, true
	})
}

// -------------- rendering helpers --------------

func (r *runner) printCard(sess *session.Session) {
	t := ui.Current()
	c, marks := sess.Card(), sess.Marks()
	size := c.Size()
	header := fmt.Sprintf("%s  %s  %s",
		ui.C(t.Title, "BINGO"),
		ui.C(t.Muted, fmt.Sprintf("%dx%d", size, size)),
		ui.C(t.Success, fmt.Sprintf("%d marked", marks.Count())),
	)
	lines := []string{header, ui.C(t.Muted, ui.ProgressBar(marks.Count(), len(c.Squares), 27)), ""}
	lines = append(lines, ui.GridLines(c, marks)...)
	if !sess.FromLink() {
		lines = append(lines, "", ui.C(t.Muted, sess.ShareURL()))
	}
	ui.Panel(r.out, lines)
}
