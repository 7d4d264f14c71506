package bookmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheuskafuri/techmood/internal/article"
	"github.com/matheuskafuri/techmood/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func open(t *testing.T, kv KV, opts ...Option) *Store {
	t.Helper()
	s, err := Open(kv, opts...)
	require.NoError(t, err)
	return s
}

func sample(id string) article.Article {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return article.Article{
		ID:             id,
		Title:          "Title " + id,
		SourceURL:      "https://www.example.com/" + id,
		SentimentLabel: "positive",
		SentimentScore: 0.8,
		PublishedAt:    &ts,
	}
}

func TestToggleSaveTwiceRestores(t *testing.T) {
	kv := NewMemoryKV()
	s := open(t, kv)

	saved, err := s.ToggleSave(sample("1"))
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, s.IsSaved("1"))

	saved, err = s.ToggleSave(sample("1"))
	require.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, s.IsSaved("1"))
	assert.Empty(t, s.Saved())

	raw, _, _ := kv.Get(KeySaved)
	assert.JSONEq(t, `[]`, raw)
}

func TestSavedNewestFirstAndPersisted(t *testing.T) {
	kv := NewMemoryKV()
	s := open(t, kv)
	for _, id := range []string{"1", "2", "3"} {
		_, err := s.ToggleSave(sample(id))
		require.NoError(t, err)
	}

	reopened := open(t, kv)
	got := reopened.Saved()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"3", "2", "1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, sample("1"), got[2], "the full snapshot survives a reload")
}

func TestRemoveSaved(t *testing.T) {
	s := open(t, NewMemoryKV())
	s.ToggleSave(sample("1"))
	s.ToggleSave(sample("2"))

	require.NoError(t, s.RemoveSaved("1"))
	assert.False(t, s.IsSaved("1"))
	assert.True(t, s.IsSaved("2"))

	err := s.RemoveSaved("1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMarkSeenIdempotent(t *testing.T) {
	kv := NewMemoryKV()
	s := open(t, kv)

	added, err := s.MarkSeen("a")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.MarkSeen("a")
	require.NoError(t, err)
	assert.False(t, added)

	assert.True(t, s.IsSeen("a"))
	assert.False(t, s.IsSeen("b"))
	assert.Equal(t, 1, s.SeenCount())

	raw, _, _ := kv.Get(KeySeen)
	assert.JSONEq(t, `["a"]`, raw)
}

func TestMarkSeenManyDedupes(t *testing.T) {
	s := open(t, NewMemoryKV())
	added, err := s.MarkSeenMany([]string{"a", "b", "a", "", "c"})
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 3, s.SeenCount())

	added, err = s.MarkSeenMany([]string{"b", "c"})
	require.NoError(t, err)
	assert.False(t, added)
}

func TestTrimSeenOnOpen(t *testing.T) {
	kv := NewMemoryKV()
	var ids []string
	for i := 0; i < 2500; i++ {
		ids = append(ids, fmt.Sprintf("id-%d", i))
	}
	raw, _ := jsonString(ids)
	require.NoError(t, kv.Set(KeySeen, raw))

	s := open(t, kv)
	assert.Equal(t, 2000, s.SeenCount())
	assert.False(t, s.IsSeen("id-0"), "oldest entries are dropped first")
	assert.False(t, s.IsSeen("id-499"))
	assert.True(t, s.IsSeen("id-500"))
	assert.True(t, s.IsSeen("id-2499"))
}

func TestMarkSeenEvictsOldest(t *testing.T) {
	s := open(t, NewMemoryKV(), WithSeenLimit(3))
	s.MarkSeenMany([]string{"a", "b", "c"})
	s.MarkSeen("d")

	assert.Equal(t, 3, s.SeenCount())
	assert.False(t, s.IsSeen("a"))
	assert.True(t, s.IsSeen("d"))
}

func TestResetSeen(t *testing.T) {
	kv := NewMemoryKV()
	s := open(t, kv)
	s.MarkSeen("a")

	require.NoError(t, s.ResetSeen())
	assert.Zero(t, s.SeenCount())
	assert.False(t, s.IsSeen("a"))
	_, ok, _ := kv.Get(KeySeen)
	assert.False(t, ok)
}

func TestRecentSearches(t *testing.T) {
	s := open(t, NewMemoryKV())
	for _, q := range []string{"rust", "go", "AI", "kubernetes", "wasm", "Rust", "  ", "llm"} {
		require.NoError(t, s.AddRecentSearch(q))
	}

	assert.Equal(t, []string{"llm", "Rust", "wasm", "kubernetes", "AI"}, s.RecentSearches())

	require.NoError(t, s.ClearRecentSearches())
	assert.Empty(t, s.RecentSearches())
}

func TestMalformedValuesTreatedAsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set(KeySaved, "{not json")
	kv.Set(KeySearches, `"a string"`)
	kv.Set(KeySeen, `[1,2`)

	core, logs := observer.New(zapcore.WarnLevel)
	s := open(t, kv, WithLogger(zap.New(core)))

	assert.Empty(t, s.Saved())
	assert.Empty(t, s.RecentSearches())
	assert.Zero(t, s.SeenCount())
	assert.Equal(t, 3, logs.FilterMessage("discarding malformed value").Len())

	_, err := s.ToggleSave(sample("1"))
	require.NoError(t, err)
	assert.True(t, s.IsSaved("1"))
}

func TestAnnotate(t *testing.T) {
	s := open(t, NewMemoryKV())
	s.ToggleSave(sample("1"))
	s.MarkSeen("2")

	got := s.Annotate([]article.Article{sample("1"), sample("2"), sample("3")})
	require.Len(t, got, 3)
	assert.True(t, got[0].Saved)
	assert.False(t, got[0].Seen)
	assert.False(t, got[1].Saved)
	assert.True(t, got[1].Seen)
	assert.False(t, got[2].Saved || got[2].Seen)
	assert.Equal(t, "Title 3", got[2].Title)
}

type failingKV struct{ *MemoryKV }

func (failingKV) Set(string, string) error { return errors.New("disk full") }

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	s := open(t, failingKV{NewMemoryKV()})

	saved, err := s.ToggleSave(sample("1"))
	require.Error(t, err)
	assert.False(t, saved)
	assert.False(t, s.IsSaved("1"))
}

func TestSQLiteBacked(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "techmood.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := open(t, db)
	s.ToggleSave(sample("1"))
	s.MarkSeen("1")
	s.AddRecentSearch("quantum")

	reopened := open(t, db)
	assert.True(t, reopened.IsSaved("1"))
	assert.True(t, reopened.IsSeen("1"))
	assert.Equal(t, []string{"quantum"}, reopened.RecentSearches())
}

func jsonString(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

func TestToggleSaveRejectsEmptyID(t *testing.T) {
	s := open(t, NewMemoryKV())

	_, err := s.ToggleSave(sample(""))
	assert.ErrorIs(t, err, ErrNoID)
	assert.Empty(t, s.Saved())
	assert.False(t, s.IsSaved(""))
}

func TestEmptyIDNeverMatchesStoredArticle(t *testing.T) {
	kv := NewMemoryKV()
	raw, err := json.Marshal([]article.Article{sample(""), sample("1")})
	require.NoError(t, err)
	require.NoError(t, kv.Set(KeySaved, string(raw)))
	s := open(t, kv)

	_, err = s.ToggleSave(sample(""))
	assert.ErrorIs(t, err, ErrNoID)
	assert.Len(t, s.Saved(), 2, "a stored article without an id must not be toggled off")
	assert.ErrorIs(t, s.RemoveSaved(""), ErrNotFound)
}
