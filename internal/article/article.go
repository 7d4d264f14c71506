package article

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Sentiment is the label the API assigns to an article.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
	Mixed    Sentiment = "mixed"
)

// Article is a scored news article as served by the API. The client never
// modifies it.
type Article struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Summary        string     `json:"summary"`
	SourceURL      string     `json:"source_url"`
	ImageURL       string     `json:"image_url,omitempty"`
	Category       string     `json:"category,omitempty"`
	SentimentLabel string     `json:"sentiment_label"`
	SentimentScore float64    `json:"sentiment_score"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// UnmarshalJSON accepts numeric or string IDs and the timestamp formats the
// backend has been seen to emit. An unparseable timestamp becomes nil.
func (a *Article) UnmarshalJSON(data []byte) error {
	type alias Article
	aux := struct {
		*alias
		ID          json.RawMessage `json:"id"`
		PublishedAt json.RawMessage `json:"published_at"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := rawID(aux.ID)
	if err != nil {
		return err
	}
	a.ID = id
	a.PublishedAt = parseTime(aux.PublishedAt)
	return nil
}

func rawID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(raw), nil
}

func parseTime(raw json.RawMessage) *time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// HasImage reports whether the article belongs to the image bucket.
func (a Article) HasImage() bool {
	return strings.TrimSpace(a.ImageURL) != ""
}

// Sentiment returns the normalized label. Anything unrecognised is neutral.
func (a Article) Sentiment() Sentiment {
	switch s := Sentiment(strings.ToLower(strings.TrimSpace(a.SentimentLabel))); s {
	case Positive, Negative, Mixed:
		return s
	default:
		return Neutral
	}
}

// CleanSummary returns the summary with markup removed and whitespace
// collapsed.
func (a Article) CleanSummary() string {
	return StripHTML(a.Summary)
}

// SourceName derives a short publisher name from the source URL, e.g.
// "https://www.theverge.com/x" becomes "theverge".
func (a Article) SourceName() string {
	u, err := url.Parse(a.SourceURL)
	if err != nil || u.Hostname() == "" {
		return "Source"
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	return strings.Split(host, ".")[0]
}

// StripHTML removes tags and decodes entities.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
