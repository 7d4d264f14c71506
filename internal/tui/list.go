package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/techmood/internal/bookmark"
)

// Each item is 2 lines + 1 blank line
const itemHeight = 3

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func formatScore(f float64) string {
	return fmt.Sprintf("%+.2f", f)
}

func renderListItem(e bookmark.Entry, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	marker := "  "
	if e.Saved {
		marker = itemSavedStyle.Render("★ ")
	}

	var title string
	switch {
	case selected:
		title = itemSelectedStyle.Render("> " + truncateStr(e.Title, width-4))
	case e.Seen:
		title = itemSeenStyle.Render(marker + truncateStr(e.Title, width-4))
	default:
		title = itemTitleStyle.Render(marker + truncateStr(e.Title, width-4))
	}

	meta := "  " + sentimentBadge(e.Article) + " " + itemSourceStyle.Render(e.SourceName())
	if e.PublishedAt != nil {
		meta += " " + itemTimeStyle.Render("· "+relativeTime(*e.PublishedAt))
	}
	if e.HasImage() {
		meta += " " + itemTimeStyle.Render("▣")
	}

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// visibleRange returns the half-open range of items on screen for a list of
// n items scrolled to keep cursor visible.
func visibleRange(n, cursor, height int) (int, int) {
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > n {
		end = n
		start = end - visible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func renderList(entries []bookmark.Entry, cursor int, height int, width int, empty string) string {
	if len(entries) == 0 {
		return lipglossCenter(empty, width, height)
	}

	start, end := visibleRange(len(entries), cursor, height)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(entries[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
