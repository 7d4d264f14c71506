package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/techmood/internal/feed"
)

type statusInfo struct {
	count   int
	label   string
	pager   string
	hints   string
	fresh   bool
	loading bool
	failed  bool
	notice  string
}

func renderStatusBar(s statusInfo, width int) string {
	left := fmt.Sprintf(" %d articles", s.count)
	if s.label != "" && s.label != "All" {
		left += " · " + s.label
	}
	if s.fresh {
		left += " · " + itemSavedStyle.Render("fresh only")
	}
	if s.pager != "" {
		left += " · " + s.pager
	}
	switch {
	case s.loading:
		left += " (loading...)"
	case s.failed:
		left += " · " + errorStyle.Render(feed.StatusFailed.String())
	}
	if s.notice != "" {
		left += " · " + s.notice
	}

	right := " " + s.hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func newPager() paginator.Model {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.ArabicFormat = "page %d/%d"
	return p
}

// pagerView renders "page 3/10" from the bubbles paginator.
func pagerView(p paginator.Model, page, total int) string {
	p.TotalPages = max(1, total)
	p.Page = max(0, min(page-1, p.TotalPages-1))
	return p.View()
}

// renderWindow renders the numbered page links, e.g. "1 … 4 5 [6] 7 8 … 10".
func renderWindow(page, total int) string {
	links := feed.Window(page, total)
	parts := make([]string, 0, len(links))
	for _, l := range links {
		switch {
		case l.Gap:
			parts = append(parts, pagerStyle.Render("…"))
		case l.Current:
			parts = append(parts, pagerCurrentStyle.Render("["+strconv.Itoa(l.Page)+"]"))
		default:
			parts = append(parts, pagerStyle.Render(strconv.Itoa(l.Page)))
		}
	}
	return strings.Join(parts, " ")
}
