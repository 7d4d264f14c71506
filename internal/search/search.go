// Package search runs full-text queries against the API and pages through
// their results.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/matheuskafuri/techmood/internal/api"
	"github.com/matheuskafuri/techmood/internal/article"
	"go.uber.org/zap"
)

const (
	// FetchLimit is the number of results requested per page.
	FetchLimit = 50
	// ShowLimit is the number of results displayed per page.
	ShowLimit = 24
	// MinSuggest is the shortest prefix sent for autocomplete.
	MinSuggest = 2
)

var (
	ErrNoQuery   = errors.New("no active search")
	ErrFirstPage = errors.New("already on the first page")
	ErrLastPage  = errors.New("no more results")
)

// Backend is the part of the API a Session needs.
type Backend interface {
	Search(ctx context.Context, query string, page, limit int) (api.SearchResult, error)
	Autocomplete(ctx context.Context, prefix string) ([]string, error)
}

// Recorder remembers submitted queries.
type Recorder interface {
	AddRecentSearch(q string) error
}

// Result is one displayed page of search results.
type Result struct {
	Token     uint64
	Query     string // as typed
	Term      string // sent for this and following pages
	Corrected string // spelling the server searched for instead, if any
	Page      int    // zero-based
	Count     int
	HasMore   bool
	Articles  []article.Article
	Failed    bool
}

// Session holds the active query. Only the most recently issued request may
// replace the current result.
type Session struct {
	backend Backend
	rec     Recorder
	log     *zap.Logger

	mu      sync.Mutex
	cur     Result
	nextTok uint64
}

type Option func(*Session)

func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.rec = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func New(b Backend, opts ...Option) *Session {
	s := &Session{backend: b, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit starts a new query. Blank input is ignored and ok is false.
func (s *Session) Submit(ctx context.Context, raw string) (res Result, ok bool) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return Result{}, false
	}
	if s.rec != nil {
		if err := s.rec.AddRecentSearch(q); err != nil {
			s.log.Warn("recording search", zap.Error(err))
		}
	}
	return s.run(ctx, q, strings.ToLower(q), 0), true
}

// Next fetches the following page of the active query.
func (s *Session) Next(ctx context.Context) (Result, error) {
	cur := s.Current()
	switch {
	case cur.Term == "":
		return cur, ErrNoQuery
	case !cur.HasMore:
		return cur, ErrLastPage
	}
	return s.run(ctx, cur.Query, cur.Term, cur.Page+1), nil
}

// Prev fetches the preceding page of the active query.
func (s *Session) Prev(ctx context.Context) (Result, error) {
	cur := s.Current()
	switch {
	case cur.Term == "":
		return cur, ErrNoQuery
	case cur.Page == 0:
		return cur, ErrFirstPage
	}
	return s.run(ctx, cur.Query, cur.Term, cur.Page-1), nil
}

func (s *Session) run(ctx context.Context, query, term string, page int) Result {
	s.mu.Lock()
	s.nextTok++
	tok := s.nextTok
	s.mu.Unlock()

	res := Result{Token: tok, Query: query, Term: term, Page: page}
	sr, err := s.backend.Search(ctx, term, page, FetchLimit)
	if err != nil {
		s.log.Warn("search failed", zap.String("term", term), zap.Int("page", page), zap.Error(err))
		res.Failed = true
	} else {
		res.Articles = Alternate(sr.Articles, ShowLimit)
		res.Count = sr.Count
		res.HasMore = sr.HasMore
		if sr.CorrectedQuery != "" {
			res.Corrected = sr.CorrectedQuery
			res.Term = sr.CorrectedQuery
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok == s.nextTok {
		s.cur = res
	}
	return res
}

// Current returns the latest applied result.
func (s *Session) Current() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// IsCurrent reports whether res is still the latest result. Results of
// superseded requests are not.
func (s *Session) IsCurrent(res Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return res.Token == s.nextTok
}

// Reset drops the active query.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTok++
	s.cur = Result{}
}

// Suggest returns completions for prefix. Prefixes shorter than MinSuggest
// return nothing without a request.
func (s *Session) Suggest(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if len([]rune(prefix)) < MinSuggest {
		return nil, nil
	}
	return s.backend.Autocomplete(ctx, prefix)
}

// Alternate orders results image, text, image, text up to limit items, then
// fills any remaining room with the leftovers in their original order.
func Alternate(arts []article.Article, limit int) []article.Article {
	var images, texts []int
	for i, a := range arts {
		if a.HasImage() {
			images = append(images, i)
		} else {
			texts = append(texts, i)
		}
	}

	out := make([]article.Article, 0, min(len(arts), limit))
	used := make([]bool, len(arts))
	take := func(i int) {
		if len(out) < limit {
			out = append(out, arts[i])
			used[i] = true
		}
	}
	for i := 0; i < len(images) || i < len(texts); i++ {
		if i < len(images) {
			take(images[i])
		}
		if i < len(texts) {
			take(texts[i])
		}
	}
	for i := range arts {
		if !used[i] {
			take(i)
		}
	}
	return out
}
