// Package store persists card marks in a key-value backend.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Makepad-fr/bingo/internal/model"
)

// MarksKeyPrefix prefixes every marks key; the card identity follows.
const MarksKeyPrefix = "bingo-marks-"

func MarksKey(id string) string { return MarksKeyPrefix + id }

// KV is a string key-value backend.
type KV interface {
	// Get reports found=false with a nil error for a missing key.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// MarksStore reads and writes marks keyed by card identity. Values are
// JSON arrays of booleans.
type MarksStore struct {
	kv  KV
	log *zap.SugaredLogger
}

func NewMarksStore(kv KV, log *zap.SugaredLogger) *MarksStore {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &MarksStore{kv: kv, log: log}
}

// Load returns the stored marks for id, verbatim.
func (s *MarksStore) Load(ctx context.Context, id string) (model.Marks, bool, error) {
	v, found, err := s.kv.Get(ctx, MarksKey(id))
	if err != nil {
		return nil, false, fmt.Errorf("get marks %s: %w", id, err)
	}
	if !found {
		return nil, false, nil
	}
	var m model.Marks
	if err := json.Unmarshal([]byte(v), &m); err != nil {
		return nil, false, fmt.Errorf("decode marks %s: %w", id, err)
	}
	if m == nil {
		m = model.Marks{}
	}
	return m, true, nil
}

func (s *MarksStore) Save(ctx context.Context, id string, m model.Marks) error {
	if m == nil {
		m = model.Marks{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode marks %s: %w", id, err)
	}
	if err := s.kv.Set(ctx, MarksKey(id), string(b)); err != nil {
		return fmt.Errorf("set marks %s: %w", id, err)
	}
	return nil
}

// LoadOrInit returns the stored marks for id, or n fresh ones when none
// are stored. Read and decode failures are logged and also yield fresh
// marks.
func (s *MarksStore) LoadOrInit(ctx context.Context, id string, n int) model.Marks {
	m, found, err := s.Load(ctx, id)
	if err != nil {
		s.log.Warnw("marks unreadable, starting unmarked", "card", id, "error", err)
		return model.NewMarks(n)
	}
	if !found {
		s.log.Debugw("no saved marks", "card", id)
		return model.NewMarks(n)
	}
	s.log.Debugw("restored marks", "card", id, "marked", m.Count())
	return m
}
