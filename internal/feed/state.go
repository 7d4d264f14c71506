package feed

import (
	"fmt"

	"github.com/matheuskafuri/techmood/internal/article"
	"github.com/matheuskafuri/techmood/internal/viewport"
)

const all = "all"

// Filter narrows the feed. Empty fields mean no restriction.
type Filter struct {
	Category string
	Source   string
}

func (f Filter) key(page int) string {
	return fmt.Sprintf("%s|%s|%d", orAll(f.Category), orAll(f.Source), page)
}

// Label is a short human description of the filter.
func (f Filter) Label() string {
	switch {
	case f.Category == "" && f.Source == "":
		return "All"
	case f.Source == "":
		return f.Category
	case f.Category == "":
		return f.Source
	default:
		return f.Category + " · " + f.Source
	}
}

func orAll(s string) string {
	if s == "" {
		return all
	}
	return s
}

// Status is the load state of the current page.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "could not load"
	default:
		return "idle"
	}
}

// State is everything the view needs to render the feed. It is only changed
// through Reduce.
type State struct {
	Filter     Filter
	Layout     viewport.Layout
	Page       int
	Count      int
	CountKnown bool
	Articles   []article.Article
	Status     Status
	Token      uint64
}

// NewState returns the initial state for a layout.
func NewState(l viewport.Layout) State {
	return State{Layout: l, Page: 1}
}

// TotalPages is ceil(Count / PageSize), and at least 1.
func (s State) TotalPages() int {
	size := s.Layout.PageSize
	if size <= 0 || s.Count <= 0 {
		return 1
	}
	return (s.Count + size - 1) / size
}

// HasNext reports whether a page after the current one exists.
func (s State) HasNext() bool {
	return s.Page < s.TotalPages()
}

// HasPrev reports whether a page before the current one exists.
func (s State) HasPrev() bool {
	return s.Page > 1
}

// InRange reports whether page can be navigated to. Page 1 always can.
func (s State) InRange(page int) bool {
	return page == 1 || (page > 1 && page <= s.TotalPages())
}

// Action is an input to Reduce.
type Action interface {
	isAction()
}

// SetFilter switches the filter and returns to the first page.
type SetFilter struct{ Filter Filter }

// SetLayout records a new layout. A change of shape returns to a page that
// still exists under the new page size.
type SetLayout struct{ Layout viewport.Layout }

// GoTo moves to a page. Out of range pages are ignored.
type GoTo struct{ Page int }

// LoadStarted marks the page identified by Token as in flight.
type LoadStarted struct {
	Token uint64
	Page  int
}

// PageLoaded delivers the bucketed articles for a request.
type PageLoaded struct {
	Token    uint64
	Articles []article.Article
	Count    int
}

// LoadFailed reports that the request identified by Token failed.
type LoadFailed struct{ Token uint64 }

// CountLoaded delivers the total article count for a filter.
type CountLoaded struct {
	Filter Filter
	Count  int
}

func (SetFilter) isAction()   {}
func (SetLayout) isAction()   {}
func (GoTo) isAction()        {}
func (LoadStarted) isAction() {}
func (PageLoaded) isAction()  {}
func (LoadFailed) isAction()  {}
func (CountLoaded) isAction() {}

// Reduce applies an action to a state and returns the new state. It never
// mutates its input.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetFilter:
		if a.Filter == s.Filter {
			return s
		}
		s.Filter = a.Filter
		s.Page = 1
		s.Count = 0
		s.CountKnown = false
		s.Articles = nil
		s.Status = StatusIdle

	case SetLayout:
		shapeChanged := !s.Layout.SameShape(a.Layout)
		s.Layout = a.Layout
		if shapeChanged {
			s.Page = min(s.Page, s.TotalPages())
		}

	case GoTo:
		if s.InRange(a.Page) {
			s.Page = a.Page
		}

	case LoadStarted:
		s.Token = a.Token
		s.Page = a.Page
		s.Status = StatusLoading

	case PageLoaded:
		if a.Token != s.Token {
			return s
		}
		s.Articles = a.Articles
		s.Status = StatusReady
		if !s.CountKnown && a.Count > 0 {
			s.Count = a.Count
		}

	case LoadFailed:
		if a.Token != s.Token {
			return s
		}
		s.Articles = nil
		s.Status = StatusFailed

	case CountLoaded:
		if a.Filter != s.Filter {
			return s
		}
		s.Count = a.Count
		s.CountKnown = true
	}
	return s
}

// PageLink is one entry of a pager: a page number or a gap.
type PageLink struct {
	Page    int
	Gap     bool
	Current bool
}

// Window lays out a pager around current: the first page, a gap, current±2,
// a gap and the last page.
func Window(current, total int) []PageLink {
	if total < 1 {
		total = 1
	}
	current = max(1, min(current, total))

	var links []PageLink
	if current > 3 {
		links = append(links, PageLink{Page: 1})
		if current > 4 {
			links = append(links, PageLink{Gap: true})
		}
	}
	for p := max(1, current-2); p <= min(total, current+2); p++ {
		links = append(links, PageLink{Page: p, Current: p == current})
	}
	if current < total-2 {
		if current < total-3 {
			links = append(links, PageLink{Gap: true})
		}
		links = append(links, PageLink{Page: total})
	}
	return links
}
