package api

import (
	"net/url"
	"strconv"

	"github.com/matheuskafuri/techmood/internal/article"
)

// Query selects a page of the feed. Empty Category and Source mean "all".
// Page is zero-based, as the API expects.
type Query struct {
	Category string
	Source   string
	Page     int
	Limit    int
}

func (q Query) values(withPage bool) url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Source != "" {
		v.Set("source", q.Source)
	}
	if withPage {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Page is one page of articles. Count is zero when the endpoint did not
// report a total.
type Page struct {
	Articles []article.Article
	Count    int
	HasMore  bool
}

// SearchResult is the response of GET /search.
type SearchResult struct {
	Articles       []article.Article `json:"articles"`
	Count          int               `json:"count"`
	HasMore        bool              `json:"has_more"`
	CorrectedQuery string            `json:"corrected_query,omitempty"`
}

// SubscribeResult is the response of POST /subscribe.
type SubscribeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

// articlesResponse also accepts the older split shape where the server
// pre-bucketed results into with_images and without_images.
type articlesResponse struct {
	Articles      []article.Article `json:"articles"`
	WithImages    []article.Article `json:"with_images"`
	WithoutImages []article.Article `json:"without_images"`
	Count         int               `json:"count"`
	HasMore       bool              `json:"has_more"`
}

func (r articlesResponse) page() Page {
	arts := r.Articles
	if arts == nil && (r.WithImages != nil || r.WithoutImages != nil) {
		arts = make([]article.Article, 0, len(r.WithImages)+len(r.WithoutImages))
		arts = append(arts, r.WithImages...)
		arts = append(arts, r.WithoutImages...)
	}
	return Page{Articles: arts, Count: r.Count, HasMore: r.HasMore}
}

type countResponse struct {
	Count int `json:"count"`
}

type articleResponse struct {
	Data *article.Article `json:"data"`
}

type autocompleteResponse struct {
	Suggestions []string `json:"suggestions"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}
