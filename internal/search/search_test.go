package search

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/matheuskafuri/techmood/internal/api"
	"github.com/matheuskafuri/techmood/internal/article"
	"github.com/matheuskafuri/techmood/internal/bookmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type call struct {
	term  string
	page  int
	limit int
}

type fakeBackend struct {
	mu          sync.Mutex
	calls       []call
	prefixes    []string
	results     map[string]api.SearchResult // "term/page"
	fail        bool
	suggestions []string
}

func (f *fakeBackend) Search(ctx context.Context, q string, page, limit int) (api.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{q, page, limit})
	if f.fail {
		return api.SearchResult{}, api.ErrNetwork
	}
	return f.results[fmt.Sprintf("%s/%d", q, page)], nil
}

func (f *fakeBackend) Autocomplete(ctx context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefixes = append(f.prefixes, prefix)
	return f.suggestions, nil
}

func arts(prefix string, images, texts int) []article.Article {
	var out []article.Article
	for i := 0; i < images; i++ {
		out = append(out, article.Article{ID: fmt.Sprintf("%s-i%d", prefix, i), ImageURL: "https://img"})
	}
	for i := 0; i < texts; i++ {
		out = append(out, article.Article{ID: fmt.Sprintf("%s-t%d", prefix, i)})
	}
	return out
}

func idsOf(a []article.Article) []string {
	out := make([]string, len(a))
	for i := range a {
		out[i] = a[i].ID
	}
	return out
}

func TestAlternate(t *testing.T) {
	tests := []struct {
		name          string
		images, texts int
		want          []string
	}{
		{"even", 2, 2, []string{"x-i0", "x-t0", "x-i1", "x-t1"}},
		{"more images", 3, 1, []string{"x-i0", "x-t0", "x-i1", "x-i2"}},
		{"texts only", 0, 2, []string{"x-t0", "x-t1"}},
		{"empty", 0, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idsOf(Alternate(arts("x", tt.images, tt.texts), ShowLimit)))
		})
	}
}

func TestAlternateCapsAtLimit(t *testing.T) {
	got := Alternate(arts("x", 30, 20), ShowLimit)
	require.Len(t, got, ShowLimit)
	for i, a := range got {
		assert.Equal(t, i%2 == 0, a.HasImage(), "position %d", i)
	}
}

func TestSubmitUsesLowercasedTermAndRecords(t *testing.T) {
	b := &fakeBackend{results: map[string]api.SearchResult{
		"rust/0": {Articles: arts("r", 1, 1), Count: 60, HasMore: true},
	}}
	kv := bookmark.NewMemoryKV()
	rec, err := bookmark.Open(kv)
	require.NoError(t, err)
	s := New(b, WithRecorder(rec))

	res, ok := s.Submit(context.Background(), "  Rust ")
	require.True(t, ok)
	assert.Equal(t, "Rust", res.Query)
	assert.Equal(t, "rust", res.Term)
	assert.Empty(t, res.Corrected)
	assert.Equal(t, 60, res.Count)
	assert.True(t, res.HasMore)
	assert.Equal(t, []call{{"rust", 0, FetchLimit}}, b.calls)
	assert.Equal(t, []string{"Rust"}, rec.RecentSearches())
	assert.Equal(t, res, s.Current())
}

func TestSubmitBlankIgnored(t *testing.T) {
	b := &fakeBackend{}
	s := New(b)
	_, ok := s.Submit(context.Background(), "   ")
	assert.False(t, ok)
	assert.Empty(t, b.calls)
}

func TestCorrectedQueryDrivesPaging(t *testing.T) {
	b := &fakeBackend{results: map[string]api.SearchResult{
		"kubernets/0":  {Articles: arts("k", 2, 0), HasMore: true, CorrectedQuery: "kubernetes"},
		"kubernetes/1": {Articles: arts("k1", 1, 0), HasMore: false},
		"kubernetes/0": {Articles: arts("k0", 1, 0), HasMore: true},
	}}
	s := New(b)
	ctx := context.Background()

	res, _ := s.Submit(ctx, "Kubernets")
	assert.Equal(t, "kubernetes", res.Corrected)
	assert.Equal(t, "kubernetes", res.Term)

	res, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, "kubernetes", res.Term)
	assert.Equal(t, "Kubernets", res.Query)

	_, err = s.Next(ctx)
	assert.ErrorIs(t, err, ErrLastPage)

	res, err = s.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Page)
	assert.Equal(t, []string{"k0-i0"}, idsOf(res.Articles))

	_, err = s.Prev(ctx)
	assert.ErrorIs(t, err, ErrFirstPage)

	assert.Equal(t, []call{
		{"kubernets", 0, FetchLimit},
		{"kubernetes", 1, FetchLimit},
		{"kubernetes", 0, FetchLimit},
	}, b.calls)
}

func TestPagingWithoutQuery(t *testing.T) {
	s := New(&fakeBackend{})
	_, err := s.Next(context.Background())
	assert.ErrorIs(t, err, ErrNoQuery)
	_, err = s.Prev(context.Background())
	assert.ErrorIs(t, err, ErrNoQuery)
}

func TestFailureClearsResults(t *testing.T) {
	b := &fakeBackend{results: map[string]api.SearchResult{
		"go/0": {Articles: arts("g", 1, 1), CorrectedQuery: "golang"},
	}}
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(b, WithLogger(zap.New(core)))
	ctx := context.Background()

	s.Submit(ctx, "go")
	b.fail = true
	res, _ := s.Submit(ctx, "wasm")

	assert.True(t, res.Failed)
	assert.Empty(t, res.Articles)
	assert.Empty(t, res.Corrected)
	assert.Equal(t, 1, logs.FilterMessage("search failed").Len())
}

func TestIsCurrent(t *testing.T) {
	s := New(&fakeBackend{results: map[string]api.SearchResult{}})
	ctx := context.Background()

	first, _ := s.Submit(ctx, "a")
	second, _ := s.Submit(ctx, "b")
	assert.False(t, s.IsCurrent(first))
	assert.True(t, s.IsCurrent(second))

	s.Reset()
	assert.False(t, s.IsCurrent(second))
	assert.Empty(t, s.Current().Term)
}

func TestSuggestMinLength(t *testing.T) {
	b := &fakeBackend{suggestions: []string{"rust", "rustc"}}
	s := New(b)
	ctx := context.Background()

	got, err := s.Suggest(ctx, "r")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, b.prefixes)

	got, err = s.Suggest(ctx, " ru ")
	require.NoError(t, err)
	assert.Equal(t, []string{"rust", "rustc"}, got)
	assert.Equal(t, []string{"ru"}, b.prefixes)
}
