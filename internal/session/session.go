// Package session drives the life of one bingo card: collecting entries,
// generating the card and its share link, and toggling squares.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/Makepad-fr/bingo/internal/card"
	"github.com/Makepad-fr/bingo/internal/codec"
	"github.com/Makepad-fr/bingo/internal/model"
	"github.com/Makepad-fr/bingo/internal/store"
	"github.com/Makepad-fr/bingo/internal/store/memstore"
)

// MinEntries is how many entries a card needs before it can be generated.
const MinEntries = 9

type State int

const (
	Collecting State = iota
	Generated
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Generated:
		return "generated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Draft is the persisted form of a session.
type Draft struct {
	State    State         `json:"state"`
	Entries  model.Entries `json:"entries"`
	Token    string        `json:"token,omitempty"`
	Card     *card.Card    `json:"card,omitempty"`
	FromLink bool          `json:"from_link,omitempty"`
}

type Options struct {
	// BaseURL is the address share links point at.
	BaseURL string
	Source  card.Source
	Marks   *store.MarksStore
	Logger  *zap.SugaredLogger
}

// Session is not safe for concurrent use.
type Session struct {
	state    State
	entries  model.Entries
	token    string
	card     card.Card
	marks    model.Marks
	fromLink bool

	baseURL string
	deriver *card.Deriver
	store   *store.MarksStore
	log     *zap.SugaredLogger
}

func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ms := opts.Marks
	if ms == nil {
		ms = store.NewMarksStore(memstore.New(), log)
	}
	return &Session{
		baseURL: opts.BaseURL,
		deriver: card.NewDeriver(opts.Source),
		store:   ms,
		log:     log,
	}
}

func (s *Session) State() State           { return s.state }
func (s *Session) Entries() model.Entries { return s.entries }
func (s *Session) Token() string          { return s.token }
func (s *Session) Card() card.Card        { return s.card }
func (s *Session) Marks() model.Marks     { return s.marks }

// FromLink reports whether the card was opened from a share link rather
// than built here.
func (s *Session) FromLink() bool { return s.fromLink }

func (s *Session) AddEntry(text string) error {
	if s.state != Collecting {
		return ErrLocked
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyEntry
	}
	next, ok := s.entries.Add(text)
	if !ok {
		return ErrDuplicateEntry
	}
	s.entries = next
	return nil
}

// RemoveEntry drops the entry at 0-based index i.
func (s *Session) RemoveEntry(i int) error {
	if s.state != Collecting {
		return ErrLocked
	}
	next, ok := s.entries.Remove(i)
	if !ok {
		return fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(s.entries), i+1)
	}
	s.entries = next
	return nil
}

// Generate builds the card from the collected entries. With fewer than
// MinEntries it returns *InsufficientEntriesError and nothing changes.
// Generating an already generated card is a no-op.
func (s *Session) Generate(ctx context.Context) error {
	if s.state == Generated {
		return nil
	}
	if len(s.entries) < MinEntries {
		return &InsufficientEntriesError{Have: len(s.entries), Need: MinEntries}
	}
	s.token = codec.Encode(s.entries)
	s.activate(ctx)
	s.log.Infow("card generated", "card", s.card.ID, "entries", len(s.entries))
	return nil
}

// Open loads a card from a share link or a bare token. A missing or
// malformed token leaves an empty entry list in Collecting and is
// returned for the caller to report; it is never fatal.
func (s *Session) Open(ctx context.Context, raw string) error {
	if s.state != Collecting {
		return ErrLocked
	}
	token, err := tokenFrom(raw)
	if err == nil && token == "" {
		err = &codec.MalformedTokenError{Reason: "no " + codec.QueryParam + " parameter"}
	}
	var entries model.Entries
	if err == nil {
		entries, err = codec.Decode(token)
	}
	if err != nil {
		s.entries = nil
		s.log.Warnw("failed to parse entries from link", "error", err)
		return err
	}

	entries = model.Normalize(entries)
	if len(entries) == 0 {
		s.entries = nil
		s.log.Warnw("link carries no entries")
		return nil
	}
	s.entries = entries
	s.token = codec.Encode(entries)
	s.fromLink = true
	s.activate(ctx)
	s.log.Infow("card opened from link", "card", s.card.ID, "entries", len(entries))
	return nil
}

// Toggle flips square i and saves the marks right away. Indexes outside
// the card are ignored. The layout never changes on a toggle.
func (s *Session) Toggle(ctx context.Context, i int) error {
	if s.state != Generated {
		return ErrNotGenerated
	}
	if i < 0 || i >= len(s.card.Squares) {
		s.log.Debugw("toggle ignored", "index", i, "squares", len(s.card.Squares))
		return nil
	}
	s.marks = s.marks.Toggle(i)
	if err := s.store.Save(ctx, s.card.ID, s.marks); err != nil {
		s.log.Errorw("saving marks failed", "card", s.card.ID, "error", err)
		return err
	}
	return nil
}

// Reset is the only way back to Collecting. Saved marks are kept.
func (s *Session) Reset() {
	s.state = Collecting
	s.entries = nil
	s.token = ""
	s.card = card.Card{}
	s.marks = nil
	s.fromLink = false
	s.deriver.Reset()
}

// ShareURL is the base URL with the token in its entries parameter, or
// "" before a card exists.
func (s *Session) ShareURL() string {
	if s.token == "" {
		return ""
	}
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return s.baseURL + "?" + codec.QueryParam + "=" + s.token
	}
	q := u.Query()
	q.Set(codec.QueryParam, s.token)
	u.RawQuery = q.Encode()
	return u.String()
}

// Snapshot captures what Restore needs to bring the session back.
func (s *Session) Snapshot() Draft {
	d := Draft{
		State:    s.state,
		Entries:  s.entries,
		Token:    s.token,
		FromLink: s.fromLink,
	}
	if s.state == Generated {
		c := s.card
		d.Card = &c
	}
	return d
}

// Restore rebuilds a session from a Draft. A generated draft keeps its
// saved layout when it still matches the entries, and marks are read
// back from the store.
func (s *Session) Restore(ctx context.Context, d Draft) {
	s.Reset()
	s.entries = model.Normalize(d.Entries)
	if d.State != Generated || len(s.entries) == 0 {
		return
	}
	if d.Card != nil && !s.deriver.Restore(s.entries, *d.Card) {
		s.log.Warnw("saved layout does not match entries, reshuffling", "card", d.Card.ID)
	}
	s.token = codec.Encode(s.entries)
	s.fromLink = d.FromLink
	s.activate(ctx)
}

// activate derives identity and layout in one step and loads the marks
// for that identity. Marks saved for a smaller card that shares the
// identity are kept and padded so every square can be marked.
func (s *Session) activate(ctx context.Context) {
	c, _ := s.deriver.Derive(s.entries)
	s.card = c
	s.marks = s.store.LoadOrInit(ctx, c.ID, len(c.Squares)).Pad(len(c.Squares))
	s.state = Generated
}

func tokenFrom(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "?") {
		return raw, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", &codec.MalformedTokenError{Reason: "bad link", Err: err}
	}
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", &codec.MalformedTokenError{Reason: "bad query", Err: err}
	}
	return q.Get(codec.QueryParam), nil
}

// IsNotice reports whether err is one the user should see as a plain
// notice rather than a failure.
func IsNotice(err error) bool {
	return errors.Is(err, ErrInsufficientEntries) ||
		errors.Is(err, codec.ErrMalformedToken) ||
		errors.Is(err, ErrEmptyEntry) ||
		errors.Is(err, ErrDuplicateEntry)
}
