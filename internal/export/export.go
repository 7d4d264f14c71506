// Package export writes saved articles as a syndication feed.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/matheuskafuri/techmood/internal/article"
)

// Format is an output feed format.
type Format string

const (
	RSS  Format = "rss"
	Atom Format = "atom"
	JSON Format = "json"
)

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case RSS, Atom, JSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want rss, atom or json)", s)
	}
}

// Options describes the exported feed itself.
type Options struct {
	Title string
	Link  string
	Now   time.Time
}

// Build turns articles into a feed. Articles without a publish time use
// opts.Now.
func Build(arts []article.Article, opts Options) *feeds.Feed {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Title == "" {
		opts.Title = "techmood saved articles"
	}

	feed := &feeds.Feed{
		Title:       opts.Title,
		Link:        &feeds.Link{Href: opts.Link},
		Description: "Articles bookmarked in techmood",
		Created:     opts.Now,
	}
	for _, a := range arts {
		created := opts.Now
		if a.PublishedAt != nil {
			created = *a.PublishedAt
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          a.ID,
			IsPermaLink: "false",
			Title:       a.Title,
			Link:        &feeds.Link{Href: a.SourceURL},
			Description: describe(a),
			Author:      &feeds.Author{Name: a.SourceName()},
			Created:     created,
		})
	}
	return feed
}

func describe(a article.Article) string {
	tag := fmt.Sprintf("[%s %.2f]", a.Sentiment(), a.SentimentScore)
	if a.Category != "" {
		tag += " " + a.Category + ":"
	}
	if s := a.CleanSummary(); s != "" {
		return tag + " " + s
	}
	return tag
}

// Write encodes arts to w in the given format.
func Write(w io.Writer, format Format, arts []article.Article, opts Options) error {
	feed := Build(arts, opts)

	var err error
	switch format {
	case RSS:
		err = feed.WriteRss(w)
	case Atom:
		err = feed.WriteAtom(w)
	case JSON:
		err = feed.WriteJSON(w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("writing %s feed: %w", format, err)
	}
	return nil
}
