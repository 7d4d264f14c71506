package feed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/matheuskafuri/techmood/internal/api"
	"github.com/matheuskafuri/techmood/internal/viewport"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrOutOfRange is returned when navigating before page 1 or past the last
// page. The state is left untouched.
var ErrOutOfRange = errors.New("page out of range")

const defaultCacheSize = 128

// Source is the part of the API the controller reads from.
type Source interface {
	Articles(ctx context.Context, q api.Query) (api.Page, error)
	Count(ctx context.Context, category, source string) (int, error)
}

// Request identifies one page load. It is produced by Begin and consumed by
// Fetch and Apply.
type Request struct {
	Token  uint64
	Filter Filter
	Page   int
	Limit  int
	Cached bool
	gen    uint64
}

func (r Request) key() string {
	return r.Filter.key(r.Page)
}

// Result is the outcome of fetching a Request.
type Result struct {
	Request Request
	Page    api.Page
	Err     error
}

// CountResult is the outcome of fetching the article count for a filter.
type CountResult struct {
	Filter Filter
	Count  int
	Err    error
}

// Controller resolves which articles to show for a page under a filter. It
// keeps a page cache scoped to the current filter and page size and discards
// responses that were superseded by a newer request.
//
// Controller is safe for concurrent use; state transitions happen under its
// lock through Reduce.
type Controller struct {
	src   Source
	log   *zap.Logger
	cache *lru.Cache[string, api.Page]
	group singleflight.Group

	mu      sync.Mutex
	state   State
	gen     uint64
	nextTok uint64
	rng     *rand.Rand
}

// Option configures a Controller.
type Option func(*Controller)

// WithLayout sets the initial layout.
func WithLayout(l viewport.Layout) Option {
	return func(c *Controller) { c.state.Layout = l }
}

// WithShuffle shuffles every page before bucketing, using r.
func WithShuffle(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithLogger sets the logger for swallowed failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCacheSize bounds the number of cached pages.
func WithCacheSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.cache, _ = lru.New[string, api.Page](n)
		}
	}
}

// New creates a Controller reading from src.
func New(src Source, opts ...Option) *Controller {
	cache, _ := lru.New[string, api.Page](defaultCacheSize)
	c := &Controller{
		src:   src,
		log:   zap.NewNop(),
		cache: cache,
		state: NewState(viewport.For(0)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetFilter switches to f, returning to page 1 and dropping every cached
// page. It reports whether the filter changed; setting the current filter
// again is a no-op.
func (c *Controller) SetFilter(f Filter) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f == c.state.Filter {
		return false
	}
	c.state = Reduce(c.state, SetFilter{Filter: f})
	c.purgeLocked()
	return true
}

// SetLayout records a new layout. When the page size changes the cache is
// dropped, since cached pages were requested with the old limit, and true is
// returned so the caller can reload.
func (c *Controller) SetLayout(l viewport.Layout) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := !c.state.Layout.SameShape(l)
	c.state = Reduce(c.state, SetLayout{Layout: l})
	if changed {
		c.purgeLocked()
	}
	return changed
}

func (c *Controller) purgeLocked() {
	c.gen++
	c.cache.Purge()
}

// Cached reports whether page is cached under the current filter.
func (c *Controller) Cached(page int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Contains(c.state.Filter.key(page))
}

// Begin starts loading page. If the page is cached it is applied immediately
// and the returned request has Cached set; otherwise the caller must Fetch
// and Apply it.
func (c *Controller) Begin(page int) (Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.InRange(page) {
		return Request{}, ErrOutOfRange
	}

	c.nextTok++
	req := Request{
		Token:  c.nextTok,
		Filter: c.state.Filter,
		Page:   page,
		Limit:  c.state.Layout.PageSize,
		gen:    c.gen,
	}
	c.state = Reduce(c.state, LoadStarted{Token: req.Token, Page: page})

	if p, ok := c.cache.Get(req.key()); ok {
		req.Cached = true
		c.applyLocked(Result{Request: req, Page: p})
	}
	return req, nil
}

// Fetch performs the network request for req and caches the result. Callers
// racing on the same page share one request. Fetch does not touch the state.
func (c *Controller) Fetch(ctx context.Context, req Request) Result {
	p, err := c.fetch(ctx, req)
	if err != nil {
		c.log.Warn("page load failed",
			zap.String("filter", req.Filter.Label()),
			zap.Int("page", req.Page),
			zap.Error(err),
		)
	}
	return Result{Request: req, Page: p, Err: err}
}

func (c *Controller) fetch(ctx context.Context, req Request) (api.Page, error) {
	if p, ok := c.cache.Get(req.key()); ok {
		return p, nil
	}
	// A purge starts a new flight; old flights were sized for the old layout.
	flight := fmt.Sprintf("%s|%d|%d", req.key(), req.Limit, req.gen)
	// Joined callers must not fail with the first caller's cancellation.
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(flight, func() (any, error) {
		if p, ok := c.cache.Get(req.key()); ok {
			return p, nil
		}
		p, err := c.src.Articles(shared, api.Query{
			Category: req.Filter.Category,
			Source:   req.Filter.Source,
			Page:     req.Page - 1,
			Limit:    req.Limit,
		})
		if err != nil {
			return api.Page{}, err
		}
		c.store(req, p)
		return p, nil
	})
	if err != nil {
		return api.Page{}, err
	}
	return v.(api.Page), nil
}

// store caches p unless the cache was purged after req was issued.
func (c *Controller) store(req Request, p api.Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if req.gen != c.gen {
		return
	}
	c.cache.Add(req.key(), p)
}

// Apply folds a fetch result into the state. Results for a request that has
// been superseded are dropped and applied is false.
func (c *Controller) Apply(res Result) (st State, applied bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	applied = c.applyLocked(res)
	return c.state, applied
}

func (c *Controller) applyLocked(res Result) bool {
	if res.Request.Token != c.state.Token || res.Request.gen != c.gen {
		return false
	}
	if res.Err != nil {
		c.state = Reduce(c.state, LoadFailed{Token: res.Request.Token})
		return true
	}

	raw := res.Page.Articles
	if c.rng != nil {
		raw = Shuffle(c.rng, raw)
	}
	l := c.state.Layout
	c.state = Reduce(c.state, PageLoaded{
		Token:    res.Request.Token,
		Articles: Bucket(raw, l.HalfCount, l.ChunkSize),
		Count:    res.Page.Count,
	})
	return true
}

// LoadPage loads page synchronously, from cache when possible. Failures are
// folded into the returned state; only ErrOutOfRange is returned.
func (c *Controller) LoadPage(ctx context.Context, page int) (State, error) {
	req, err := c.Begin(page)
	if err != nil {
		return c.State(), err
	}
	if req.Cached {
		return c.State(), nil
	}
	st, _ := c.Apply(c.Fetch(ctx, req))
	return st, nil
}

// PrefetchNext fetches the next page into the cache if it exists and is not
// cached yet. It never changes the state and swallows failures. It reports
// whether a request was made.
func (c *Controller) PrefetchNext(ctx context.Context) bool {
	c.mu.Lock()
	st := c.state
	next := st.Page + 1
	req := Request{
		Filter: st.Filter,
		Page:   next,
		Limit:  st.Layout.PageSize,
		gen:    c.gen,
	}
	skip := st.Status != StatusReady || !st.InRange(next) || c.cache.Contains(req.key())
	c.mu.Unlock()
	if skip {
		return false
	}

	if _, err := c.fetch(ctx, req); err != nil {
		c.log.Debug("prefetch failed", zap.Int("page", next), zap.Error(err))
	}
	return true
}

// FetchCount requests the article count for f.
func (c *Controller) FetchCount(ctx context.Context, f Filter) CountResult {
	n, err := c.src.Count(ctx, f.Category, f.Source)
	if err != nil {
		c.log.Warn("count failed", zap.String("filter", f.Label()), zap.Error(err))
	}
	return CountResult{Filter: f, Count: n, Err: err}
}

// ApplyCount folds a count into the state. Failed counts leave the total at
// whatever the page responses reported, or a single page.
func (c *Controller) ApplyCount(res CountResult) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if res.Err == nil {
		c.state = Reduce(c.state, CountLoaded{Filter: res.Filter, Count: res.Count})
	}
	return c.state
}

// RefreshCount fetches and applies the count for the current filter.
func (c *Controller) RefreshCount(ctx context.Context) State {
	return c.ApplyCount(c.FetchCount(ctx, c.State().Filter))
}
