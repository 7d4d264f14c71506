package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matheuskafuri/techmood/internal/article"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	// ErrNetwork covers transport failures and non-2xx responses.
	ErrNetwork = errors.New("network failure")
	// ErrMalformed is returned when a response body cannot be decoded.
	ErrMalformed = errors.New("malformed response")
	// ErrInvalidEmail is returned by Subscribe before any request is made.
	ErrInvalidEmail = errors.New("invalid email address")
)

const (
	defaultTimeout   = 10 * time.Second
	defaultRateLimit = 10
	defaultBurst     = 5
	maxErrorBody     = 1024
)

// Client talks to the Tech Mood article API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit caps outbound requests per second. Zero or less disables
// limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL scheme must be http or https, got %q", u.Scheme)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Categories lists the category names the API knows about.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var resp categoriesResponse
	if err := c.getJSON(ctx, "/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Articles fetches one page of the feed. Page 0 is served by /articles,
// later pages by /articles/page/{n}.
func (c *Client) Articles(ctx context.Context, q Query) (Page, error) {
	path := "/articles"
	if q.Page > 0 {
		path = "/articles/page/" + strconv.Itoa(q.Page)
	}
	return c.page(ctx, path, q.values(false))
}

// ImageArticles fetches a page drawn only from articles with an image.
func (c *Client) ImageArticles(ctx context.Context, q Query) (Page, error) {
	return c.page(ctx, "/articles/images", q.values(true))
}

// TextArticles fetches a page drawn only from articles without an image.
func (c *Client) TextArticles(ctx context.Context, q Query) (Page, error) {
	return c.page(ctx, "/articles/text", q.values(true))
}

func (c *Client) page(ctx context.Context, path string, params url.Values) (Page, error) {
	var resp articlesResponse
	if err := c.getJSON(ctx, path, params, &resp); err != nil {
		return Page{}, err
	}
	return resp.page(), nil
}

// Count returns the number of articles matching the filter.
func (c *Client) Count(ctx context.Context, category, source string) (int, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	if source != "" {
		params.Set("source", source)
	}
	var resp countResponse
	if err := c.getJSON(ctx, "/articles/count", params, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// CategoryCounts fetches the count for every category concurrently, at most
// four requests at a time.
func (c *Client) CategoryCounts(ctx context.Context, categories []string) (map[string]int, error) {
	counts := make([]int, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, cat := range categories {
		i, cat := i, cat
		g.Go(func() error {
			n, err := c.Count(gctx, cat, "")
			if err != nil {
				return fmt.Errorf("counting %q: %w", cat, err)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]int, len(categories))
	for i, cat := range categories {
		out[cat] = counts[i]
	}
	return out, nil
}

// Article fetches a single article by ID.
func (c *Client) Article(ctx context.Context, id string) (article.Article, error) {
	var resp articleResponse
	if err := c.getJSON(ctx, "/article/"+url.PathEscape(id), nil, &resp); err != nil {
		return article.Article{}, err
	}
	if resp.Data == nil {
		return article.Article{}, fmt.Errorf("%w: article %s: missing data", ErrMalformed, id)
	}
	return *resp.Data, nil
}

// Search runs a full-text query. page is zero-based.
func (c *Client) Search(ctx context.Context, query string, page, limit int) (SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var resp SearchResult
	if err := c.getJSON(ctx, "/search", params, &resp); err != nil {
		return SearchResult{}, err
	}
	return resp, nil
}

// Autocomplete returns query suggestions for a prefix.
func (c *Client) Autocomplete(ctx context.Context, prefix string) ([]string, error) {
	params := url.Values{}
	params.Set("q", prefix)
	var resp autocompleteResponse
	if err := c.getJSON(ctx, "/autocomplete", params, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Subscribe registers an email address for the newsletter. A rejection by the
// server is reported through the result, not as an error.
func (c *Client) Subscribe(ctx context.Context, email string) (SubscribeResult, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return SubscribeResult{}, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	body, err := json.Marshal(subscribeRequest{Email: email})
	if err != nil {
		return SubscribeResult{}, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/subscribe", nil, bytes.NewReader(body))
	if err != nil {
		return SubscribeResult{}, err
	}
	defer resp.Body.Close()

	var out SubscribeResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err != nil {
		if resp.StatusCode/100 != 2 {
			return SubscribeResult{}, fmt.Errorf("%w: POST /subscribe: status %d", ErrNetwork, resp.StatusCode)
		}
		return SubscribeResult{}, fmt.Errorf("%w: POST /subscribe: %v", ErrMalformed, err)
	}
	if resp.StatusCode/100 != 2 {
		out.Success = false
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: GET %s: status %d: %s", ErrNetwork, path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrMalformed, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)
	return resp, nil
}
