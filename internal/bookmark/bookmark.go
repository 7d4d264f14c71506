// Package bookmark persists saved articles, recent searches and the set of
// articles the reader has already seen.
package bookmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/matheuskafuri/techmood/internal/article"
	"go.uber.org/zap"
)

// Storage keys.
const (
	KeySaved    = "savedArticles"
	KeySearches = "recentSearches"
	KeySeen     = "seenArticles"
)

const (
	DefaultSeenLimit = 2000
	maxSearches      = 5
)

var (
	// ErrNotFound is returned when removing a bookmark that does not exist.
	ErrNotFound = errors.New("bookmark not found")
	// ErrNoID is returned when saving an article without an ID.
	ErrNoID = errors.New("article has no id")
)

// KV is the persistence the store needs. A missing key reports ok=false.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Entry is an article annotated for rendering.
type Entry struct {
	article.Article
	Saved bool
	Seen  bool
}

// Store keeps bookmarks, recent searches and seen IDs in memory and writes
// every change through to a KV.
type Store struct {
	kv        KV
	log       *zap.Logger
	seenLimit int

	mu       sync.Mutex
	saved    []article.Article
	searches []string
	seen     []string
	seenSet  map[string]struct{}
}

type Option func(*Store)

// WithSeenLimit caps the number of remembered seen IDs.
func WithSeenLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.seenLimit = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open loads the store from kv. Values that cannot be decoded are treated as
// empty. The seen list is trimmed to its limit on open.
func Open(kv KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:        kv,
		log:       zap.NewNop(),
		seenLimit: DefaultSeenLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(KeySaved, &s.saved); err != nil {
		return nil, err
	}
	if err := s.load(KeySearches, &s.searches); err != nil {
		return nil, err
	}
	if err := s.load(KeySeen, &s.seen); err != nil {
		return nil, err
	}
	s.rebuildSeen()

	if _, err := s.TrimSeen(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(key string, into any) error {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		s.log.Warn("discarding malformed value", zap.String("key", key), zap.Error(err))
		switch v := into.(type) {
		case *[]article.Article:
			*v = nil
		case *[]string:
			*v = nil
		}
	}
	return nil
}

func (s *Store) persist(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(b)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func (s *Store) rebuildSeen() {
	s.seenSet = make(map[string]struct{}, len(s.seen))
	for _, id := range s.seen {
		s.seenSet[id] = struct{}{}
	}
}

// ToggleSave bookmarks a or, if it is already bookmarked, removes it. It
// reports whether a is saved afterwards.
func (s *Store) ToggleSave(a article.Article) (bool, error) {
	if a.ID == "" {
		return false, ErrNoID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(a.ID); i >= 0 {
		next := append(append([]article.Article{}, s.saved[:i]...), s.saved[i+1:]...)
		if err := s.persist(KeySaved, next); err != nil {
			return true, err
		}
		s.saved = next
		return false, nil
	}

	next := append([]article.Article{a}, s.saved...)
	if err := s.persist(KeySaved, next); err != nil {
		return false, err
	}
	s.saved = next
	return true, nil
}

func (s *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, a := range s.saved {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) IsSaved(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(id) >= 0
}

// Saved returns the bookmarked articles, most recently saved first.
func (s *Store) Saved() []article.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]article.Article(nil), s.saved...)
}

// RemoveSaved deletes the bookmark with the given ID.
func (s *Store) RemoveSaved(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	next := append(append([]article.Article{}, s.saved[:i]...), s.saved[i+1:]...)
	if err := s.persist(KeySaved, next); err != nil {
		return err
	}
	s.saved = next
	return nil
}

// MarkSeen records id as seen. It reports whether id was new.
func (s *Store) MarkSeen(id string) (bool, error) {
	return s.MarkSeenMany([]string{id})
}

// MarkSeenMany records every id as seen with a single write. It reports
// whether any id was new.
func (s *Store) MarkSeenMany(ids []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.seen
	added := map[string]struct{}{}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := s.seenSet[id]; ok {
			continue
		}
		if _, ok := added[id]; ok {
			continue
		}
		added[id] = struct{}{}
		next = append(next, id)
	}
	if len(added) == 0 {
		return false, nil
	}
	if over := len(next) - s.seenLimit; over > 0 {
		next = next[over:]
	}
	next = append([]string(nil), next...)
	if err := s.persist(KeySeen, next); err != nil {
		return false, err
	}
	s.seen = next
	s.rebuildSeen()
	return true, nil
}

func (s *Store) IsSeen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seenSet[id]
	return ok
}

func (s *Store) SeenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// TrimSeen drops the oldest seen IDs beyond the limit and reports how many
// were dropped.
func (s *Store) TrimSeen() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	over := len(s.seen) - s.seenLimit
	if over <= 0 {
		return 0, nil
	}
	next := append([]string(nil), s.seen[over:]...)
	if err := s.persist(KeySeen, next); err != nil {
		return 0, err
	}
	s.seen = next
	s.rebuildSeen()
	s.log.Debug("trimmed seen articles", zap.Int("dropped", over))
	return over, nil
}

// ResetSeen forgets every seen article.
func (s *Store) ResetSeen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(KeySeen); err != nil {
		return fmt.Errorf("clearing %s: %w", KeySeen, err)
	}
	s.seen = nil
	s.rebuildSeen()
	return nil
}

// AddRecentSearch moves q to the front of the recent searches. Matching is
// case-insensitive and only the latest few are kept.
func (s *Store) AddRecentSearch(q string) error {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := []string{q}
	for _, prev := range s.searches {
		if strings.EqualFold(prev, q) {
			continue
		}
		next = append(next, prev)
		if len(next) == maxSearches {
			break
		}
	}
	if err := s.persist(KeySearches, next); err != nil {
		return err
	}
	s.searches = next
	return nil
}

func (s *Store) RecentSearches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.searches...)
}

func (s *Store) ClearRecentSearches() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(KeySearches); err != nil {
		return fmt.Errorf("clearing %s: %w", KeySearches, err)
	}
	s.searches = nil
	return nil
}

// Annotate pairs each article with its saved and seen flags.
func (s *Store) Annotate(arts []article.Article) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(arts))
	for i, a := range arts {
		_, seen := s.seenSet[a.ID]
		out[i] = Entry{Article: a, Saved: s.indexLocked(a.ID) >= 0, Seen: seen}
	}
	return out
}
