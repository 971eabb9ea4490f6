package redisstore

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/bingo/internal/model"
	"github.com/Makepad-fr/bingo/internal/store"
)

func newStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	s, err := Dial(context.Background(), mr.Addr(), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s, mr := newStore(t, 0)

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)
	assert.Zero(t, mr.TTL("k"))
}

func TestTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newStore(t, time.Hour)

	require.NoError(t, s.Set(ctx, "k", "v"))
	assert.Equal(t, time.Hour, mr.TTL("k"))

	mr.FastForward(2 * time.Hour)
	_, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMarksRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newStore(t, 0)
	ms := store.NewMarksStore(s, nil)

	want := model.NewMarks(9).Toggle(2)
	require.NoError(t, ms.Save(ctx, "QUJD", want))

	raw, err := mr.Get("bingo-marks-QUJD")
	require.NoError(t, err)
	assert.Equal(t, "[false,false,true,false,false,false,false,false,false]", raw)
	assert.Equal(t, want, ms.LoadOrInit(ctx, "QUJD", 9))
}

func TestDialFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = Dial(ctx, addr, 0)
	assert.Error(t, err)
}

func TestServerErrorSurfaces(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := New(client, 0)
	t.Cleanup(func() { _ = s.Close() })

	mr.SetError("LOADING")
	_, _, err = s.Get(context.Background(), "k")
	assert.Error(t, err)
}
